package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/model"
	"github.com/waktusolat/solat-api/internal/schedule/scheduletest"
)

type failingStore struct{ err error }

func (f failingStore) FetchMonth(context.Context, string, int, time.Month) ([]model.PrayerRecord, error) {
	return nil, f.err
}

type fixedStore []model.PrayerRecord

func (f fixedStore) FetchMonth(context.Context, string, int, time.Month) ([]model.PrayerRecord, error) {
	return f, nil
}

func newStore() *MemoryStore {
	s := NewMemoryStore()
	s.Add(scheduletest.Month("KDH01", 2025, time.May, scheduletest.KDH01May2025)...)
	s.Add(scheduletest.Month("PNG01", 2026, time.January, scheduletest.PNG01Jan2026)...)
	return s
}

func TestResolve_ExplicitPeriod(t *testing.T) {
	r := NewResolver(newStore(), clockwork.NewFakeClock())

	got, err := r.Resolve(context.Background(), "KDH01", &model.RequestedPeriod{Year: 2025, Month: 5})
	require.NoError(t, err)
	assert.Equal(t, "KDH01", got.Zone)
	assert.Equal(t, model.NormalizedPeriod{Year: 2025, Month: time.May}, got.Period)
	require.Len(t, got.Records, 31)

	first := got.Records[0]
	assert.Equal(t, "1446-11-03", first.Hijri)
	assert.Equal(t, int64(1746050100), first.Fajr.Unix())
	assert.Equal(t, time.Thursday, first.Date.Weekday())
	assert.Equal(t, "05:55", first.Fajr.In(calendar.Location).Format("15:04"))
}

func TestResolve_MonthOverflow(t *testing.T) {
	r := NewResolver(newStore(), clockwork.NewFakeClock())

	got, err := r.Resolve(context.Background(), "PNG01", &model.RequestedPeriod{Year: 2025, Month: 13})
	require.NoError(t, err)
	assert.Equal(t, model.RequestedPeriod{Year: 2025, Month: 13}, got.Requested)
	assert.Equal(t, model.NormalizedPeriod{Year: 2026, Month: time.January}, got.Period)
	assert.Equal(t, int64(1767219240), got.Records[0].Fajr.Unix())

	same, err := r.Resolve(context.Background(), "PNG01", &model.RequestedPeriod{Year: 2026, Month: 1})
	require.NoError(t, err)
	assert.Equal(t, got.Records, same.Records)
}

func TestResolve_DefaultsToCurrentMonthInMalaysia(t *testing.T) {
	// 16:30 UTC on 31 Dec is already 1 Jan in Malaysia.
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.December, 31, 16, 30, 0, 0, time.UTC))
	r := NewResolver(newStore(), clock)

	got, err := r.Resolve(context.Background(), "PNG01", nil)
	require.NoError(t, err)
	assert.Equal(t, model.RequestedPeriod{Year: 2026, Month: 1}, got.Requested)
	assert.Len(t, got.Records, 31)
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(newStore(), clockwork.NewFakeClock())

	_, err := r.Resolve(context.Background(), "ABC01", &model.RequestedPeriod{Year: 2026, Month: 1})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "No data found for zone: ABC01 for Jan/2026", err.Error())

	_, err = r.Resolve(context.Background(), "KDH01", &model.RequestedPeriod{Year: 2025, Month: 0})
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "No data found for zone: KDH01 for Dec/2024", err.Error())
}

func TestResolve_StoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	r := NewResolver(failingStore{err: cause}, clockwork.NewFakeClock())

	_, err := r.Resolve(context.Background(), "SGR01", &model.RequestedPeriod{Year: 2025, Month: 5})
	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, cause)
}

func TestResolve_RejectsInconsistentMonths(t *testing.T) {
	full := scheduletest.Month("KDH01", 2025, time.May, scheduletest.KDH01May2025)
	period := &model.RequestedPeriod{Year: 2025, Month: 5}

	swapped := append([]model.PrayerRecord(nil), full...)
	swapped[3], swapped[4] = swapped[4], swapped[3]

	foreign := append([]model.PrayerRecord(nil), full...)
	foreign[10].ZoneCode = "KDH02"

	cases := map[string][]model.PrayerRecord{
		"short":     full[:30],
		"long":      append(append([]model.PrayerRecord(nil), full...), full[0]),
		"unordered": swapped,
		"foreign":   foreign,
		"gap":       append(append([]model.PrayerRecord(nil), full[:5]...), append(full[6:], full[6])...),
	}
	for name, recs := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewResolver(fixedStore(recs), clockwork.NewFakeClock())
			_, err := r.Resolve(context.Background(), "KDH01", period)
			var se *ServerError
			assert.True(t, errors.As(err, &se), "got %v", err)
		})
	}
}

func TestMemoryStore_UpsertMonth(t *testing.T) {
	s := NewMemoryStore()
	recs := scheduletest.Month("SGR01", 2025, time.February, scheduletest.KDH01May2025)
	for i := range recs {
		recs[i].ZoneCode = "SGR01"
	}
	period := model.NormalizedPeriod{Year: 2025, Month: time.February}

	require.NoError(t, s.UpsertMonth(context.Background(), "SGR01", period, recs))
	got, err := s.FetchMonth(context.Background(), "SGR01", 2025, time.February)
	require.NoError(t, err)
	assert.Len(t, got, 28)

	err = s.UpsertMonth(context.Background(), "SGR02", period, recs)
	assert.Error(t, err)
}
