package version

import (
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/gin-gonic/gin"
)

// Info describes the running backend.
type Info struct {
	Version  string `json:"version" example:"1.4.0"` // Build version, "0.0.0" for development builds
	Currency string `json:"currency" example:"USD"`  // ISO 4217 code used when formatting amounts in exports
}

type Response struct {
	Data Info `json:"data"`
}

func RegisterRoutes(r *gin.RouterGroup, info Info) {
	r.GET("", Get(info))
	r.OPTIONS("", Options)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Backend version
// @Description	Returns the build version and the currency amounts are exported in
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(info Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{Data: info})
	}
}
