package v1

import (
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

// RegisterPhaseRoutes registers the routes for the phase summary with
// the RouterGroup that is passed.
func RegisterPhaseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsPhases)
	r.GET("", GetPhases)
}

type PhaseListResponse struct {
	Data []models.PhaseRow `json:"data"` // One row per phase, followed by the total over all phases
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Phases
// @Success		204
// @Router			/v1/phases [options]
func OptionsPhases(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get phase summary
// @Description	Returns budget, spending and timeline per phase ordered by name. The last row is the total over all phases.
// @Tags			Phases
// @Produce		json
// @Success		200	{object}	PhaseListResponse
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/v1/phases [get]
func GetPhases(c *gin.Context) {
	rows, err := models.PhaseSummary(models.DB)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, PhaseListResponse{Data: rows})
}
