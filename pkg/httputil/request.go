package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return httperrors.ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return httperrors.ErrInvalidBody
	}

	return nil
}

// IDFromString parses a resource ID. IDs are positive integers.
func IDFromString(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, httperrors.ErrInvalidID
	}

	return uint(id), nil
}

// IDFromParam parses the path parameter with the given name as a resource ID.
func IDFromParam(c *gin.Context, name string) (uint, error) {
	return IDFromString(c.Param(name))
}
