package v1

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/amasdatadriven/backend/internal/money"
	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

var formatter money.Formatter

// RegisterExportRoutes registers the CSV export routes. Amounts are
// formatted in the currency of the formatter.
func RegisterExportRoutes(r *gin.RouterGroup, f money.Formatter) {
	formatter = f

	r.OPTIONS("/phases", OptionsExport)
	r.GET("/phases", ExportPhases)
	r.OPTIONS("/transactions", OptionsExport)
	r.GET("/transactions", ExportTransactions)
}

// PhaseColumns are the columns of the phase export.
var PhaseColumns = []string{"Phase", "Tasks", "Start Date", "End Date", "Budget", "Spent", "Remaining"}

// TransactionColumns are the columns of the transaction export.
var TransactionColumns = []string{"transaction_id", "budget_id", "Task", "Phase", "transaction_date", "description", "amount_usd", "notes"}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export/phases [options]
// @Router			/v1/export/transactions [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// writeCSV sends the records as a CSV file download.
func writeCSV(c *gin.Context, name string, records [][]string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.csv", name, time.Now().Format("2006-01-02")))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	err := w.WriteAll(records)
	if err != nil {
		_ = c.Error(err)
	}
}

// @Summary		Export phase summary
// @Description	Returns the phase summary as CSV file. Amounts are rounded and formatted in the configured currency.
// @Tags			Export
// @Produce		text/csv
// @Success		200
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/v1/export/phases [get]
func ExportPhases(c *gin.Context) {
	rows, err := models.PhaseSummary(models.DB)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	records := [][]string{PhaseColumns}
	for _, row := range rows {
		records = append(records, []string{
			row.Phase,
			strconv.FormatInt(row.Tasks, 10),
			row.StartDate.String(),
			row.EndDate.String(),
			formatter.Format(row.Budget),
			formatter.Format(row.Spent),
			formatter.Format(row.Remaining),
		})
	}

	writeCSV(c, "phases", records)
}

// @Summary		Export transactions
// @Description	Returns the transactions matching the filter as CSV file. Amounts are rounded to the scale of the configured currency.
// @Tags			Export
// @Produce		text/csv
// @Success		200
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			task		query		uint	false	"Filter by task ID"
// @Param			phase		query		string	false	"Filter by phase of the task. Glob patterns like 'Phase *' are supported."
// @Param			fromDate	query		string	false	"Transactions at or after this date, YYYY-MM-DD"
// @Param			untilDate	query		string	false	"Transactions at or before this date, YYYY-MM-DD"
// @Router			/v1/export/transactions [get]
func ExportTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperrors.New(httperrors.ErrInvalidQueryString))
		return
	}

	filter, err := query.model(nil)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	// Exports are never paginated
	filter.Offset = 0
	filter.Limit = 0

	records, _, err := models.ListTransactions(models.DB, filter)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	var tasks []models.Task
	err = models.DB.Find(&tasks).Error
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	byID := make(map[uint]models.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	out := [][]string{TransactionColumns}
	for _, record := range records {
		task := byID[record.TaskID]
		out = append(out, []string{
			strconv.FormatUint(uint64(record.ID), 10),
			strconv.FormatUint(uint64(record.TaskID), 10),
			task.Name,
			task.Category,
			record.Date.String(),
			record.Description,
			formatter.Plain(record.Amount),
			record.Notes,
		})
	}

	writeCSV(c, "transactions", out)
}
