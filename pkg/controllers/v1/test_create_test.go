package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/amasdatadriven/backend/internal/types"
	v1 "github.com/amasdatadriven/backend/pkg/controllers/v1"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/amasdatadriven/backend/test"
	"github.com/shopspring/decimal"
)

func createTestTask(t *testing.T, create models.TaskCreate, expectedStatus ...int) v1.TaskCreatedResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if create.Name == "" {
		create.Name = "Baseline survey"
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/tasks", []models.TaskCreate{create})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var res v1.TaskCreateResponse
	test.DecodeResponse(t, &r, &res)

	return res.Data[0]
}

func createTestLines(t *testing.T, taskID uint, lines []models.BudgetLineCreate, expectedStatus ...int) v1.BudgetLineBatchResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/tasks/%d/lines", taskID), lines)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var res v1.BudgetLineBatchResponse
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &res)
	}

	return res
}

func createTestTransaction(t *testing.T, create models.TransactionCreate, expectedStatus ...int) v1.TransactionCreatedResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []models.TransactionCreate{create})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var res v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &res)

	return res.Data[0]
}

func getTestSummary(t *testing.T, taskID uint) models.SpendSummary {
	r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/tasks/%d/summary", taskID), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var res v1.SpendSummaryResponse
	test.DecodeResponse(t, &r, &res)

	return res.Data
}

func line(quantity, unitCost int64) models.BudgetLineCreate {
	return models.BudgetLineCreate{
		Item:     "Enumerator fees",
		Unit:     "day",
		Quantity: decimal.NewFromInt(quantity),
		UnitCost: decimal.NewFromInt(unitCost),
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	if !decimal.RequireFromString(expected).Equal(actual) {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func date(year int, month time.Month, day int) types.Date {
	return types.NewDate(year, month, day)
}
