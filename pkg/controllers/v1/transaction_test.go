package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/amasdatadriven/backend/pkg/controllers/v1"
	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/amasdatadriven/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionCreate() {
	task := createTestTask(suite.T(), models.TaskCreate{})

	tests := []struct {
		name     string
		creates  []models.TransactionCreate
		failures []bool
		status   int
	}{
		{
			"All successful",
			[]models.TransactionCreate{
				{TaskID: task.Data.ID, Date: date(2025, 2, 14), Amount: decimal.NewFromInt(40), Description: "Fuel"},
				{TaskID: task.Data.ID, Date: date(2025, 2, 15), Amount: decimal.RequireFromString("12.5")},
			},
			[]bool{false, false},
			http.StatusCreated,
		},
		{
			"Zero amount",
			[]models.TransactionCreate{
				{TaskID: task.Data.ID, Date: date(2025, 2, 14), Amount: decimal.NewFromInt(40)},
				{TaskID: task.Data.ID, Date: date(2025, 2, 14), Amount: decimal.Zero},
			},
			[]bool{false, true},
			http.StatusBadRequest,
		},
		{
			"No date",
			[]models.TransactionCreate{
				{TaskID: task.Data.ID, Amount: decimal.NewFromInt(5)},
			},
			[]bool{true},
			http.StatusBadRequest,
		},
		{
			"Unknown task",
			[]models.TransactionCreate{
				{TaskID: 999, Date: date(2025, 2, 14), Amount: decimal.NewFromInt(5)},
			},
			[]bool{true},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.creates)
			test.AssertHTTPStatus(t, &r, tt.status)

			var res v1.TransactionCreateResponse
			test.DecodeResponse(t, &r, &res)

			for i, created := range res.Data {
				if tt.failures[i] {
					assert.NotNil(t, created.Error)
					assert.Nil(t, created.Data)
					continue
				}

				assert.Nil(t, created.Error)
				assert.Equal(t, fmt.Sprintf("http://example.com/v1/transactions/%d", created.Data.ID), created.Data.Links.Self)
				assert.Equal(t, task.Data.Links.Self, created.Data.Links.Task)
				assert.Equal(t, task.Data.Links.Summary, created.Data.Links.Summary)
			}
		})
	}

	// 40 + 12.5 from the first batch, 40 from the second
	summary := getTestSummary(suite.T(), task.Data.ID)
	assertDecimal(suite.T(), "92.5", summary.Spent)
	assertDecimal(suite.T(), "-92.5", summary.Remaining)
}

func (suite *TestSuiteStandard) TestTransactionCreateBrokenBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `[{"taskId": "one"}]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `[{"date": "yesterday"}]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionList() {
	survey := createTestTask(suite.T(), models.TaskCreate{Name: "Baseline survey", Category: "Phase 1"})
	training := createTestTask(suite.T(), models.TaskCreate{Name: "Training", Category: "Phase 1b"})
	analysis := createTestTask(suite.T(), models.TaskCreate{Name: "Analysis", Category: "Phase 2"})

	_ = createTestTransaction(suite.T(), models.TransactionCreate{TaskID: survey.Data.ID, Date: date(2025, 2, 14), Amount: decimal.NewFromInt(40), Description: "Fuel"})
	_ = createTestTransaction(suite.T(), models.TransactionCreate{TaskID: training.Data.ID, Date: date(2025, 1, 20), Amount: decimal.NewFromInt(300), Description: "Venue"})
	_ = createTestTransaction(suite.T(), models.TransactionCreate{TaskID: analysis.Data.ID, Date: date(2025, 4, 2), Amount: decimal.NewFromInt(80), Description: "Software"})
	_ = createTestTransaction(suite.T(), models.TransactionCreate{TaskID: survey.Data.ID, Date: date(2025, 3, 1), Amount: decimal.NewFromInt(15), Description: "Printing"})

	tests := []struct {
		name         string
		query        string
		descriptions []string
		total        int64
	}{
		{"All ordered by date", "", []string{"Venue", "Fuel", "Printing", "Software"}, 4},
		{"Task", fmt.Sprintf("task=%d", survey.Data.ID), []string{"Fuel", "Printing"}, 2},
		{"Exact phase", "phase=Phase%201", []string{"Fuel", "Printing"}, 2},
		{"Phase glob", "phase=Phase%201*", []string{"Venue", "Fuel", "Printing"}, 3},
		{"Unknown phase", "phase=Phase%209", []string{}, 0},
		{"From date", "fromDate=2025-02-14", []string{"Fuel", "Printing", "Software"}, 3},
		{"Until date", "untilDate=2025-02-14", []string{"Venue", "Fuel"}, 2},
		{"Date range", "fromDate=2025-02-01&untilDate=2025-03-31", []string{"Fuel", "Printing"}, 2},
		{"Limit", "limit=1", []string{"Venue"}, 4},
		{"Offset and limit", "offset=1&limit=2", []string{"Fuel", "Printing"}, 4},
		{"Task and dates", fmt.Sprintf("task=%d&fromDate=2025-02-15", survey.Data.ID), []string{"Printing"}, 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var res v1.TransactionListResponse
			test.DecodeResponse(t, &r, &res)

			descriptions := make([]string, 0)
			for _, transaction := range res.Data {
				descriptions = append(descriptions, transaction.Description)
			}

			assert.Equal(t, tt.descriptions, descriptions)
			assert.Equal(t, tt.total, res.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionListInvalidQuery() {
	tests := []string{
		"fromDate=yesterday",
		"untilDate=2025-13-45",
		"task=abc",
		"limit=all",
	}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Contains(t, test.DecodeError(t, &r), httperrors.ErrInvalidQueryString.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionGet() {
	task := createTestTask(suite.T(), models.TaskCreate{})
	created := createTestTransaction(suite.T(), models.TransactionCreate{TaskID: task.Data.ID, Date: date(2025, 2, 14), Amount: decimal.NewFromInt(40), Notes: " cash "})

	r := test.Request(suite.T(), http.MethodGet, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &res)
	assert.Equal(suite.T(), created.Data.ID, res.Data.ID)
	assert.Equal(suite.T(), "2025-02-14", res.Data.Date.String())
	assert.Equal(suite.T(), "cash", res.Data.Notes)
	assertDecimal(suite.T(), "40", res.Data.Amount)

	r = test.Request(suite.T(), http.MethodOptions, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/999", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/first", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionAppendOnly verifies that recorded transactions cannot be changed.
func (suite *TestSuiteStandard) TestTransactionAppendOnly() {
	task := createTestTask(suite.T(), models.TaskCreate{})
	created := createTestTransaction(suite.T(), models.TransactionCreate{TaskID: task.Data.ID, Date: date(2025, 2, 14), Amount: decimal.NewFromInt(40)})

	for _, method := range []string{http.MethodPatch, http.MethodDelete} {
		suite.T().Run(method, func(t *testing.T) {
			r := test.Request(t, method, created.Data.Links.Self, `{"amount": "1"}`)
			test.AssertHTTPStatus(t, &r, http.StatusMethodNotAllowed)
			assert.Equal(t, httperrors.ErrMethodNotAllowed.Error(), test.DecodeError(t, &r))
		})
	}

	assertDecimal(suite.T(), "40", getTestSummary(suite.T(), task.Data.ID).Spent)
}

func (suite *TestSuiteStandard) TestTransactionOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions/999", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
