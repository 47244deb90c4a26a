package v1_test

import (
	"net/http"

	v1 "github.com/amasdatadriven/backend/pkg/controllers/v1"
	"github.com/amasdatadriven/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRoot() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.Response
	test.DecodeResponse(suite.T(), &r, &res)
	assert.Equal(suite.T(), v1.Links{
		Tasks:        "http://example.com/v1/tasks",
		Transactions: "http://example.com/v1/transactions",
		Phases:       "http://example.com/v1/phases",
		Export:       "http://example.com/v1/export",
	}, res.Links)
}

func (suite *TestSuiteStandard) TestRootOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}
