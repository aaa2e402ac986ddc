package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/http/api"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/model"
	"github.com/waktusolat/solat-api/internal/schedule"
)

// ScheduleResolver is the month lookup behind the solat routes.
type ScheduleResolver interface {
	Resolve(ctx context.Context, zone string, requested *model.RequestedPeriod) (model.MonthSchedule, error)
}

type SolatController struct {
	schedules ScheduleResolver
	locator   api.Locator
	clock     clockwork.Clock
	metrics   *metrics.Metrics
}

func NewSolatController(schedules ScheduleResolver, locator api.Locator, clock clockwork.Clock, m *metrics.Metrics) *SolatController {
	return &SolatController{schedules: schedules, locator: locator, clock: clock, metrics: m}
}

func SolatModule(schedules ScheduleResolver, locator api.Locator, clock clockwork.Clock, m *metrics.Metrics) api.Module {
	ctl := NewSolatController(schedules, locator, clock, m)
	return api.ModuleFunc(func(c *api.Controller) {
		// legacy shape
		c.PUBLIC_GET("/solat/:zone", ctl.getMonthV1)
		c.PUBLIC_GET("/solat/gps/:lat/:lon", ctl.getMonthV1ByGPS)

		c.PUBLIC_GET("/v2/solat/:zone", ctl.getMonthV2)
		c.PUBLIC_GET("/v2/solat/gps/:lat/:lon", ctl.getMonthV2ByGPS)
	})
}

// GET /solat/:zone
func (s *SolatController) getMonthV1(ctx *gin.Context) (any, *api.Error) {
	return s.monthV1(ctx, ctx.Param("zone"))
}

// GET /solat/gps/:lat/:lon
func (s *SolatController) getMonthV1ByGPS(ctx *gin.Context) (any, *api.Error) {
	district, apiErr := api.Locate(s.locator, s.metrics, ctx.Param("lat"), ctx.Param("lon"))
	if apiErr != nil {
		return nil, apiErr
	}
	return s.monthV1(ctx, district.Zone)
}

// GET /v2/solat/:zone
func (s *SolatController) getMonthV2(ctx *gin.Context) (any, *api.Error) {
	return s.monthV2(ctx, ctx.Param("zone"))
}

// GET /v2/solat/gps/:lat/:lon
func (s *SolatController) getMonthV2ByGPS(ctx *gin.Context) (any, *api.Error) {
	district, apiErr := api.Locate(s.locator, s.metrics, ctx.Param("lat"), ctx.Param("lon"))
	if apiErr != nil {
		return nil, apiErr
	}
	return s.monthV2(ctx, district.Zone)
}

// monthV1 answers every failure with the opaque 500 legacy clients expect.
func (s *SolatController) monthV1(ctx *gin.Context, zone string) (any, *api.Error) {
	period, err := api.ParsePeriod(ctx, s.clock.Now())
	if err != nil {
		return nil, api.ServerError()
	}

	month, err := s.schedules.Resolve(ctx.Request.Context(), zone, period)
	if err != nil {
		log.Warn().Err(err).Str("zone", zone).Msg("v1 month lookup failed")
		return nil, api.ServerError()
	}
	return PresentV1(month), nil
}

func (s *SolatController) monthV2(ctx *gin.Context, zone string) (any, *api.Error) {
	period, err := api.ParsePeriod(ctx, s.clock.Now())
	if err != nil {
		return nil, api.MessageError(http.StatusBadRequest, err.Error())
	}

	month, err := s.schedules.Resolve(ctx.Request.Context(), zone, period)
	if err != nil {
		return nil, ScheduleError(err)
	}
	return PresentV2(month), nil
}

// ScheduleError maps a resolver failure to the v2 contract: 404 with the lookup
// message when the month is missing, an opaque 500 otherwise.
func ScheduleError(err error) *api.Error {
	var nf *schedule.NotFoundError
	if errors.As(err, &nf) {
		return api.MessageError(http.StatusNotFound, nf.Error())
	}
	log.Error().Err(err).Msg("month lookup failed")
	return api.ServerError()
}
