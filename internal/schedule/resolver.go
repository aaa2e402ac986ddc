// Package schedule resolves a zone and requested month to a validated month of
// prayer times.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/model"
)

type Resolver struct {
	store   Store
	clock   clockwork.Clock
	metrics *metrics.Metrics
}

func NewResolver(store Store, clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{store: store, clock: clock}
}

// WithMetrics records store fetch latency on m.
func (r *Resolver) WithMetrics(m *metrics.Metrics) *Resolver {
	r.metrics = m
	return r
}

// Resolve fetches the month for zone. A nil period means the current month in Malaysia
// time. The returned schedule has exactly one record per day, in date order.
func (r *Resolver) Resolve(ctx context.Context, zone string, requested *model.RequestedPeriod) (model.MonthSchedule, error) {
	var req model.RequestedPeriod
	if requested != nil {
		req = *requested
	} else {
		req = calendar.Current(r.clock.Now())
	}
	period := calendar.Normalize(req.Year, req.Month)

	start := r.clock.Now()
	records, err := r.store.FetchMonth(ctx, zone, period.Year, period.Month)
	elapsed := r.clock.Since(start)
	if r.metrics != nil {
		r.metrics.StoreFetchDuration.Observe(elapsed.Seconds())
	}
	if err != nil {
		return model.MonthSchedule{}, &ServerError{Zone: zone, Period: period, Err: err}
	}
	log.Debug().
		Str("zone", zone).
		Int("year", period.Year).
		Int("month", int(period.Month)).
		Int("records", len(records)).
		Dur("elapsed", elapsed).
		Msg("Fetched month")

	if len(records) == 0 {
		return model.MonthSchedule{}, &NotFoundError{Zone: zone, Period: period}
	}
	if err := validateMonth(zone, period, records); err != nil {
		log.Error().Err(err).Str("zone", zone).Msg("Inconsistent month in store")
		return model.MonthSchedule{}, &ServerError{Zone: zone, Period: period, Err: err}
	}

	return model.MonthSchedule{
		Zone:      zone,
		Requested: req,
		Period:    period,
		Records:   records,
	}, nil
}

// validateMonth checks one record per day, ascending from the 1st, all for zone.
func validateMonth(zone string, period model.NormalizedPeriod, records []model.PrayerRecord) error {
	if want := period.Days(); len(records) != want {
		return fmt.Errorf("expected %d records, got %d", want, len(records))
	}
	for i, rec := range records {
		if rec.ZoneCode != zone {
			return fmt.Errorf("record %d belongs to zone %s", i, rec.ZoneCode)
		}
		y, m, d := rec.Date.In(calendar.Location).Date()
		if y != period.Year || m != period.Month || d != i+1 {
			return fmt.Errorf("record %d dated %04d-%02d-%02d, want day %d", i, y, int(m), d, i+1)
		}
	}
	return nil
}

// DateOf returns local midnight of the given civil day.
func DateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, calendar.Location)
}
