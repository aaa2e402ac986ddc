package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/model"
	"github.com/waktusolat/solat-api/internal/schedule"
)

const dateLayout = "2006-01-02"

// cachedDay is the cached form of a record. Times are unix seconds.
type cachedDay struct {
	Zone    string `json:"z"`
	Date    string `json:"d"`
	Hijri   string `json:"h"`
	Fajr    int64  `json:"f"`
	Syuruk  int64  `json:"s"`
	Dhuhr   int64  `json:"dh"`
	Asr     int64  `json:"a"`
	Maghrib int64  `json:"m"`
	Isha    int64  `json:"i"`
}

// CachedStore serves months from Redis and falls through to the wrapped store on a
// miss. Only non-empty months are cached. Redis failures are logged and bypassed.
type CachedStore struct {
	inner   schedule.Store
	rdb     *redis.Client
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
}

func NewCachedStore(inner schedule.Store, rdb *redis.Client, ttl time.Duration, m *metrics.Metrics) *CachedStore {
	return &CachedStore{inner: inner, rdb: rdb, ttl: ttl, metrics: m}
}

// Key is the cache key of a zone month.
func Key(zone string, year int, month time.Month) string {
	return fmt.Sprintf("solat:%s:%04d-%02d", zone, year, int(month))
}

func (c *CachedStore) FetchMonth(ctx context.Context, zone string, year int, month time.Month) ([]model.PrayerRecord, error) {
	key := Key(zone, year, month)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		recs, derr := decodeMonth(data)
		if derr == nil {
			c.metrics.CacheResult("hit")
			return recs, nil
		}
		log.Warn().Err(derr).Str("key", key).Msg("Discarding unreadable cache entry")
		c.metrics.CacheResult("error")
	case errors.Is(err, redis.Nil):
		c.metrics.CacheResult("miss")
	default:
		log.Warn().Err(err).Str("key", key).Msg("Redis get failed, reading store")
		c.metrics.CacheResult("error")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		recs, err := c.inner.FetchMonth(ctx, zone, year, month)
		if err != nil || len(recs) == 0 {
			return recs, err
		}
		c.set(ctx, key, recs)
		return recs, nil
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]model.PrayerRecord)
	out := make([]model.PrayerRecord, len(shared))
	copy(out, shared)
	return out, nil
}

func (c *CachedStore) set(ctx context.Context, key string, recs []model.PrayerRecord) {
	data, err := encodeMonth(recs)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode month for cache")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to add month to redis")
	}
}

// Invalidate drops the cached month.
func (c *CachedStore) Invalidate(ctx context.Context, zone string, year int, month time.Month) error {
	return c.rdb.Del(ctx, Key(zone, year, month)).Err()
}

// UpsertMonth writes through to the wrapped store and then invalidates the month.
func (c *CachedStore) UpsertMonth(ctx context.Context, zone string, period model.NormalizedPeriod, records []model.PrayerRecord) error {
	w, ok := c.inner.(schedule.Writer)
	if !ok {
		return errors.New("underlying store is read only")
	}
	if err := w.UpsertMonth(ctx, zone, period, records); err != nil {
		return err
	}
	if err := c.Invalidate(ctx, zone, period.Year, period.Month); err != nil {
		log.Warn().Err(err).Str("zone", zone).Msg("Failed to invalidate cached month")
	}
	return nil
}

// Ping checks the wrapped store. An unreachable cache only degrades latency.
func (c *CachedStore) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis ping failed")
	}
	if p, ok := c.inner.(schedule.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func encodeMonth(recs []model.PrayerRecord) ([]byte, error) {
	days := make([]cachedDay, len(recs))
	for i, r := range recs {
		days[i] = cachedDay{
			Zone:    r.ZoneCode,
			Date:    r.Date.In(calendar.Location).Format(dateLayout),
			Hijri:   r.Hijri,
			Fajr:    r.Fajr.Unix(),
			Syuruk:  r.Syuruk.Unix(),
			Dhuhr:   r.Dhuhr.Unix(),
			Asr:     r.Asr.Unix(),
			Maghrib: r.Maghrib.Unix(),
			Isha:    r.Isha.Unix(),
		}
	}
	return json.Marshal(days)
}

func decodeMonth(data []byte) ([]model.PrayerRecord, error) {
	var days []cachedDay
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, err
	}
	at := func(sec int64) time.Time { return time.Unix(sec, 0).In(calendar.Location) }

	out := make([]model.PrayerRecord, len(days))
	for i, d := range days {
		date, err := time.ParseInLocation(dateLayout, d.Date, calendar.Location)
		if err != nil {
			return nil, err
		}
		out[i] = model.PrayerRecord{
			ZoneCode: d.Zone,
			Date:     date,
			Hijri:    d.Hijri,
			Fajr:     at(d.Fajr),
			Syuruk:   at(d.Syuruk),
			Dhuhr:    at(d.Dhuhr),
			Asr:      at(d.Asr),
			Maghrib:  at(d.Maghrib),
			Isha:     at(d.Isha),
		}
	}
	return out, nil
}
