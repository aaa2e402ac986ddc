package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/waktusolat/solat-api/internal/config"
	"github.com/waktusolat/solat-api/internal/gazetteer"
	"github.com/waktusolat/solat-api/internal/http/api"
	adminapi "github.com/waktusolat/solat-api/internal/http/api/admin/endpoints"
	jadualapi "github.com/waktusolat/solat-api/internal/http/api/jadual/endpoints"
	opsapi "github.com/waktusolat/solat-api/internal/http/api/ops/endpoints"
	solatapi "github.com/waktusolat/solat-api/internal/http/api/solat/endpoints"
	zonesapi "github.com/waktusolat/solat-api/internal/http/api/zones/endpoints"
	"github.com/waktusolat/solat-api/internal/http/middleware"
	"github.com/waktusolat/solat-api/internal/jadual"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/notify"
	"github.com/waktusolat/solat-api/internal/schedule"
)

// MonthStore is what the routes need from the schedule store beyond reads.
type MonthStore interface {
	schedule.Writer
	schedule.Pinger
}

// Dependencies are the shared, read-only collaborators of the handlers.
type Dependencies struct {
	Config    *config.Config
	Zones     *gazetteer.Gazetteer
	Schedules *schedule.Resolver
	Locator   api.Locator
	Store     MonthStore
	Publisher notify.Publisher
	Metrics   *metrics.Metrics
	Clock     clockwork.Clock
}

// NewRouter builds the engine with global middleware and all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	RegisterRoutes(r, deps)
	return r
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	// CORS
	corsConfig := cors.Config{
		AllowMethods: []string{
			"GET",
			"PUT",
			"POST",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
			middleware.RequestIDHeader,
		},
		AllowCredentials: false,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsConfig))

	assembler := jadual.NewAssembler(deps.Schedules, deps.Zones)
	renderer := jadual.Renderer{Compress: cfg.PDFCompress}

	api.MountGroup(r, api.GroupConfig{},
		solatapi.SolatModule(deps.Schedules, deps.Locator, deps.Clock, deps.Metrics),
		jadualapi.JadualModule(assembler, renderer, deps.Clock, deps.Metrics),
		zonesapi.ZoneModule(deps.Zones, deps.Locator, deps.Metrics),
		opsapi.OpsModule(deps.Store, deps.Metrics),
	)

	if !cfg.AdminEnabled() {
		return
	}

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/admin",
	},
		adminapi.AuthPublicModule(cfg.JWTSecret, cfg.AdminUsername, cfg.AdminPasswordHash),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		adminapi.MonthModule(deps.Zones, deps.Store, deps.Publisher, deps.Clock),
	)
}
