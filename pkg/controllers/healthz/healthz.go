// Package healthz reports whether the backend can reach its database.
package healthz

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/httperrors"
	"github.com/hearth-ledger/backend/pkg/httputil"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
)

// pingTimeout bounds the database check so health checks fail instead of hanging.
const pingTimeout = 2 * time.Second

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
// @Description	Returns no content when the database answers, an error otherwise
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/healthz [get]
func Get(c *gin.Context) {
	if err := ping(c.Request.Context()); err != nil {
		log.Warn().Err(err).Msg("health check failed")
		httperrors.Handler(c, models.ErrGeneral)
		return
	}

	c.Status(http.StatusNoContent)
}

func ping(ctx context.Context) error {
	if models.DB == nil {
		return models.ErrGeneral
	}

	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
