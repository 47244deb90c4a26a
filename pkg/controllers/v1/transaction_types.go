package v1

import (
	"fmt"

	"github.com/amasdatadriven/backend/internal/types"
	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/42"`    // The transaction itself
	Task    string `json:"task" example:"https://example.com/api/v1/tasks/7"`            // The task the money was spent on
	Summary string `json:"summary" example:"https://example.com/api/v1/tasks/7/summary"` // Spend summary of the task
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.Transaction
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		Transaction: model,
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%d", url, model.ID),
			Task:    fmt.Sprintf("%s/v1/tasks/%d", url, model.TaskID),
			Summary: fmt.Sprintf("%s/v1/tasks/%d/summary", url, model.TaskID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`       // List of transactions
	Pagination Pagination    `json:"pagination"` // Pagination information
}

type TransactionResponse struct {
	Data Transaction `json:"data"` // Data for the transaction
}

type TransactionCreateResponse struct {
	Data []TransactionCreatedResponse `json:"data"` // List of recorded transactions
}

type TransactionCreatedResponse struct {
	Error *string      `json:"error" example:"invalid input: the amount must be positive, is 0"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                             // The transaction data, if it was recorded
}

func (r *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TransactionCreatedResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := httperrors.Status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// TransactionQueryFilter contains the fields that transactions can be filtered with.
type TransactionQueryFilter struct {
	TaskID    uint   `form:"task"`      // By ID of the task
	Phase     string `form:"phase"`     // By phase of the task. This is a glob pattern.
	FromDate  string `form:"fromDate"`  // Transactions at or after this date, YYYY-MM-DD
	UntilDate string `form:"untilDate"` // Transactions at or before this date, YYYY-MM-DD
	Offset    uint   `form:"offset"`    // The offset of the first transaction returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of transactions to return. Defaults to 50.
}

// model converts the query filter to a filter for the ledger.
func (f TransactionQueryFilter) model(setFields []string) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{
		TaskID: f.TaskID,
		Phase:  f.Phase,
		Offset: int(f.Offset),
		Limit:  defaultLimit,
	}

	if containsField(setFields, "Limit") {
		filter.Limit = f.Limit
	}

	var err error
	if f.FromDate != "" {
		filter.From, err = types.ParseDate(f.FromDate)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("%w: fromDate: %w", httperrors.ErrInvalidQueryString, err)
		}
	}

	if f.UntilDate != "" {
		filter.Until, err = types.ParseDate(f.UntilDate)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("%w: untilDate: %w", httperrors.ErrInvalidQueryString, err)
		}
	}

	return filter, nil
}
