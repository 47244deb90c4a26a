package v1_test

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/amasdatadriven/backend/pkg/controllers/v1"
	"github.com/amasdatadriven/backend/pkg/importer/parser/transactions"
	"github.com/amasdatadriven/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, r *httptest.ResponseRecorder) [][]string {
	records, err := csv.NewReader(strings.NewReader(r.Body.String())).ReadAll()
	require.Nil(t, err, "Response is not a valid CSV file: %s", r.Body.String())
	return records
}

func (suite *TestSuiteStandard) TestExportPhases() {
	suite.createPhaseData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/phases", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.Equal(suite.T(), "text/csv; charset=utf-8", r.Header().Get("Content-Type"))
	assert.Contains(suite.T(), r.Header().Get("Content-Disposition"), "attachment; filename=phases-")

	records := readCSV(suite.T(), &r)
	suite.Require().Len(records, 4)
	assert.Equal(suite.T(), v1.PhaseColumns, records[0])

	assert.Equal(suite.T(), []string{"Phase 1", "2", "2025-01-02", "2025-03-31"}, records[1][:4])
	assert.Contains(suite.T(), records[1][4], "1,500.00")
	assert.Contains(suite.T(), records[1][5], "450.50")
	assert.Contains(suite.T(), records[1][6], "1,049.50")
	assert.Contains(suite.T(), records[2][6], "-100.00")

	assert.Equal(suite.T(), "Total", records[3][0])
	assert.Contains(suite.T(), records[3][4], "2,000.00")
}

func (suite *TestSuiteStandard) TestExportTransactions() {
	suite.createPhaseData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	records := readCSV(suite.T(), &r)
	suite.Require().Len(records, 3)
	assert.Equal(suite.T(), v1.TransactionColumns, records[0])
	assert.Equal(suite.T(), []string{"1", "1", "Baseline survey", "Phase 1", "2025-02-14", "Fuel", "450.50", "cash"}, records[1])
	assert.Equal(suite.T(), []string{"2", "3", "Analysis", "Phase 2", "2025-04-02", "Software", "600.00", ""}, records[2])

	// The export can be parsed by the transaction importer
	rows, err := transactions.Parse(strings.NewReader(r.Body.String()), 0)
	suite.Require().Nil(err)
	suite.Require().Len(rows, 2)
	assert.Empty(suite.T(), rows[0].Problem)
	assert.Equal(suite.T(), "1", rows[0].TaskRef)
}

func (suite *TestSuiteStandard) TestExportTransactionsFiltered() {
	suite.createPhaseData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/transactions?phase=Phase%202&limit=1&offset=5", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	records := readCSV(suite.T(), &r)
	suite.Require().Len(records, 2)
	assert.Equal(suite.T(), "Software", records[1][5])

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/transactions?fromDate=never", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExportOptions() {
	for _, url := range []string{"http://example.com/v1/export/phases", "http://example.com/v1/export/transactions"} {
		r := test.Request(suite.T(), http.MethodOptions, url, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
	}
}
