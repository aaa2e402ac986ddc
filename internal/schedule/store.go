package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/model"
)

// Store reads precomputed prayer times. An empty result means no data for the month.
type Store interface {
	FetchMonth(ctx context.Context, zone string, year int, month time.Month) ([]model.PrayerRecord, error)
}

// Writer replaces a full month of records for one zone.
type Writer interface {
	UpsertMonth(ctx context.Context, zone string, period model.NormalizedPeriod, records []model.PrayerRecord) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type monthKey struct {
	zone  string
	year  int
	month time.Month
}

// MemoryStore keeps records in memory. It backs tests and local fixtures.
type MemoryStore struct {
	mu     sync.RWMutex
	months map[monthKey][]model.PrayerRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{months: make(map[monthKey][]model.PrayerRecord)}
}

// Add files records under the zone and Malaysia-time month of their dates.
func (s *MemoryStore) Add(records ...model.PrayerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	touched := make(map[monthKey]struct{})
	for _, r := range records {
		d := r.Date.In(calendar.Location)
		k := monthKey{zone: r.ZoneCode, year: d.Year(), month: d.Month()}
		s.months[k] = append(s.months[k], r)
		touched[k] = struct{}{}
	}
	for k := range touched {
		recs := s.months[k]
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
	}
}

func (s *MemoryStore) FetchMonth(ctx context.Context, zone string, year int, month time.Month) ([]model.PrayerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.months[monthKey{zone: zone, year: year, month: month}]
	out := make([]model.PrayerRecord, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *MemoryStore) UpsertMonth(ctx context.Context, zone string, period model.NormalizedPeriod, records []model.PrayerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, r := range records {
		if r.ZoneCode != zone {
			return fmt.Errorf("record for %s in %s month", r.ZoneCode, zone)
		}
	}
	s.mu.Lock()
	k := monthKey{zone: zone, year: period.Year, month: period.Month}
	s.months[k] = append([]model.PrayerRecord(nil), records...)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
