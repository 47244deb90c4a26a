package v1

import (
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
		r.OPTIONS("/import", OptionsImport)
		r.POST("/import", ImportTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", TransactionAppendOnly)
		r.DELETE("/:id", TransactionAppendOnly)
	}
}

func containsField(setFields []string, field string) bool {
	return slices.Contains(setFields, field)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs. Transactions cannot be changed or deleted.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	_, err := getTransaction(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	httputil.OptionsGet(c)
}

func getTransaction(c *gin.Context) (models.Transaction, error) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		return models.Transaction{}, err
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, id).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// @Summary		Record transactions
// @Description	Records transactions from the list of submitted transaction data. The response code is the highest response code number that recording a single transaction would have caused. If it is not equal to 201, at least one transaction has an error.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]models.TransactionCreate	true	"Transactions"
// @Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var creates []models.TransactionCreate

	err := httputil.BindData(c, &creates)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{Data: make([]TransactionCreatedResponse, 0, len(creates))}

	for _, create := range creates {
		record, err := models.RecordTransaction(models.DB, create)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, record)
		r.Data = append(r.Data, TransactionCreatedResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions ordered by date
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionListResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			task		query		uint	false	"Filter by task ID"
// @Param			phase		query		string	false	"Filter by phase of the task. Glob patterns like 'Phase *' are supported."
// @Param			fromDate	query		string	false	"Transactions at or after this date, YYYY-MM-DD"
// @Param			untilDate	query		string	false	"Transactions at or before this date, YYYY-MM-DD"
// @Param			offset		query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperrors.New(httperrors.ErrInvalidQueryString))
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, query)

	filter, err := query.model(setFields)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	records, total, err := models.ListTransactions(models.DB, filter)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	data := make([]Transaction, 0, len(records))
	for _, record := range records {
		data = append(data, newTransaction(c, record))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: Pagination{
			Count:  len(data),
			Total:  total,
			Offset: query.Offset,
			Limit:  filter.Limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, err := getTransaction(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(c, transaction)})
}

// @Summary		Update or delete transaction
// @Description	Transactions are append-only. Changing or deleting them is not allowed.
// @Tags			Transactions
// @Failure		405	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [patch]
// @Router			/v1/transactions/{id} [delete]
func TransactionAppendOnly(c *gin.Context) {
	c.JSON(httperrors.Status(httperrors.ErrMethodNotAllowed), httperrors.New(httperrors.ErrMethodNotAllowed))
}
