package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/http/api"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/schedule"
)

const readyTimeout = 2 * time.Second

type OpsController struct {
	store schedule.Pinger
}

// OpsModule mounts liveness, readiness and the Prometheus scrape endpoint.
func OpsModule(store schedule.Pinger, m *metrics.Metrics) api.Module {
	ctl := &OpsController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/healthz", ctl.healthz)
		c.PUBLIC_GET("/readyz", ctl.readyz)
		if m != nil {
			c.RAW_GET("/metrics", gin.WrapH(m.Handler()))
		}
	})
}

// GET /healthz
func (o *OpsController) healthz(ctx *gin.Context) (any, *api.Error) {
	return gin.H{"status": "ok"}, nil
}

// GET /readyz
func (o *OpsController) readyz(ctx *gin.Context) (any, *api.Error) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	if err := o.store.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Msg("readiness check failed")
		return nil, &api.Error{Code: http.StatusServiceUnavailable, Message: "store unavailable"}
	}
	return gin.H{"status": "ready"}, nil
}
