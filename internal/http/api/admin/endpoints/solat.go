package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/gazetteer"
	"github.com/waktusolat/solat-api/internal/http/api"
	"github.com/waktusolat/solat-api/internal/http/api/admin/packets"
	"github.com/waktusolat/solat-api/internal/model"
	"github.com/waktusolat/solat-api/internal/notify"
	"github.com/waktusolat/solat-api/internal/schedule"
)

type MonthController struct {
	zones     *gazetteer.Gazetteer
	writer    schedule.Writer
	publisher notify.Publisher
	clock     clockwork.Clock
}

func NewMonthController(zones *gazetteer.Gazetteer, writer schedule.Writer, publisher notify.Publisher, clock clockwork.Clock) *MonthController {
	return &MonthController{zones: zones, writer: writer, publisher: publisher, clock: clock}
}

// MonthModule mounts the month import endpoint (JWT required)
func MonthModule(zones *gazetteer.Gazetteer, writer schedule.Writer, publisher notify.Publisher, clock clockwork.Clock) api.Module {
	ctl := NewMonthController(zones, writer, publisher, clock)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUT("/solat/:zone/:year/:month", ctl.putMonth)
	})
}

// PUT /admin/solat/:zone/:year/:month
func (m *MonthController) putMonth(ctx *gin.Context, admin string) (any, *api.Error) {
	zone := ctx.Param("zone")
	if _, ok := m.zones.Get(zone); !ok {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "unknown zone"}
	}

	year, yErr := strconv.Atoi(ctx.Param("year"))
	month, mErr := strconv.Atoi(ctx.Param("month"))
	if yErr != nil || mErr != nil || month < 1 || month > 12 {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid year or month"}
	}
	period := model.NormalizedPeriod{Year: year, Month: time.Month(month)}

	var request packets.PutMonthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	records, err := schedule.BuildMonth(zone, period, toDays(request.Prayers))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := m.writer.UpsertMonth(ctx.Request.Context(), zone, period, records); err != nil {
		log.Error().Err(err).Str("zone", zone).Msg("month import failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not store month"}
	}

	evt := notify.ScheduleUpdated{
		Zone:      zone,
		Year:      year,
		Month:     month,
		Records:   len(records),
		UpdatedBy: admin,
		UpdatedAt: m.clock.Now().UTC(),
	}
	if err := m.publisher.PublishScheduleUpdated(ctx.Request.Context(), evt); err != nil {
		log.Warn().Err(err).Str("zone", zone).Msg("schedule update notification failed")
	}

	return packets.PutMonthResponse{Message: "updated", Count: len(records)}, nil
}

func toDays(prayers []packets.PrayerDay) []schedule.Day {
	days := make([]schedule.Day, len(prayers))
	for i, p := range prayers {
		days[i] = schedule.Day{
			Day:     p.Day,
			Hijri:   p.Hijri,
			Fajr:    p.Fajr,
			Syuruk:  p.Syuruk,
			Dhuhr:   p.Dhuhr,
			Asr:     p.Asr,
			Maghrib: p.Maghrib,
			Isha:    p.Isha,
		}
	}
	return days
}
