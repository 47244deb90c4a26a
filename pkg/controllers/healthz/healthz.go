package healthz

import (
	"fmt"
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/healthz [get]
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		err = fmt.Errorf("%w: %w", models.ErrStorage, err)
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	err = sqlDB.Ping()
	if err != nil {
		err = fmt.Errorf("%w: %w", models.ErrStorage, err)
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.Status(http.StatusNoContent)
}
