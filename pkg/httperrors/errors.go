package httperrors

import (
	"errors"
	"net/http"

	"github.com/amasdatadriven/backend/pkg/models"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"there is no task matching your query"`
}

// Request errors. All of them are client errors.
var (
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty   = errors.New("the request body must not be empty")
	ErrInvalidID          = errors.New("the specified resource ID is not a valid positive integer")
	ErrNoFilePost         = errors.New("you must send a file to this endpoint")
	ErrMethodNotAllowed   = errors.New("transactions are append-only and cannot be changed or deleted")
)

// Status returns the appropriate HTTP status for an error.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrStorage):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrTaskInUse):
		return http.StatusConflict
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	}

	return http.StatusBadRequest
}

// New returns the response body for an error.
func New(err error) HTTPError {
	return HTTPError{Error: err.Error()}
}
