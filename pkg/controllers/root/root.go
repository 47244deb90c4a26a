package root

import (
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Database health
	Version string `json:"version" example:"https://example.com/api/version"`      // Build version and export currency
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // All v1 endpoints
	Tasks   string `json:"tasks" example:"https://example.com/api/v1/tasks"`       // Tasks with their budgets
	Phases  string `json:"phases" example:"https://example.com/api/v1/phases"`     // Budget and spend per phase
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

// links returns the links relative to the base URL of the API.
func links(base string) Links {
	return Links{
		Docs:    base + "/docs/index.html",
		Healthz: base + "/healthz",
		Version: base + "/version",
		Metrics: base + "/metrics",
		V1:      base + "/v1",
		Tasks:   base + "/v1/tasks",
		Phases:  base + "/v1/phases",
	}
}

// @Summary		API root
// @Description	Entrypoint for the API. Links to the documentation, operational endpoints, tasks and the phase summary.
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Links: links(c.GetString(string(models.DBContextURL)))})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
