package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/model"
)

const dateLayout = "2006-01-02"

// prayerRow mirrors the prayer_times table. Times are unix seconds.
type prayerRow struct {
	ZoneCode string    `db:"zone_code"`
	Date     time.Time `db:"date"`
	Hijri    string    `db:"hijri"`
	Fajr     int64     `db:"fajr"`
	Syuruk   int64     `db:"syuruk"`
	Dhuhr    int64     `db:"dhuhr"`
	Asr      int64     `db:"asr"`
	Maghrib  int64     `db:"maghrib"`
	Isha     int64     `db:"isha"`
}

func (r prayerRow) record() model.PrayerRecord {
	at := func(sec int64) time.Time { return time.Unix(sec, 0).In(calendar.Location) }
	// DATE columns come back as UTC midnight; keep the civil day.
	y, m, d := r.Date.Date()
	return model.PrayerRecord{
		ZoneCode: r.ZoneCode,
		Date:     time.Date(y, m, d, 0, 0, 0, 0, calendar.Location),
		Hijri:    r.Hijri,
		Fajr:     at(r.Fajr),
		Syuruk:   at(r.Syuruk),
		Dhuhr:    at(r.Dhuhr),
		Asr:      at(r.Asr),
		Maghrib:  at(r.Maghrib),
		Isha:     at(r.Isha),
	}
}

// insertArgs is the named parameter set for one record.
func insertArgs(rec model.PrayerRecord) map[string]any {
	return map[string]any{
		"zone_code": rec.ZoneCode,
		"date":      rec.Date.In(calendar.Location).Format(dateLayout),
		"hijri":     rec.Hijri,
		"fajr":      rec.Fajr.Unix(),
		"syuruk":    rec.Syuruk.Unix(),
		"dhuhr":     rec.Dhuhr.Unix(),
		"asr":       rec.Asr.Unix(),
		"maghrib":   rec.Maghrib.Unix(),
		"isha":      rec.Isha.Unix(),
	}
}

func (s *pgStore) FetchMonth(ctx context.Context, zone string, year int, month time.Month) ([]model.PrayerRecord, error) {
	period := model.NormalizedPeriod{Year: year, Month: month}
	const q = `
	SELECT zone_code, date, hijri, fajr, syuruk, dhuhr, asr, maghrib, isha
	  FROM prayer_times
	 WHERE zone_code = $1 AND date >= $2 AND date < $3
	 ORDER BY date;`

	var rows []prayerRow
	err := s.db.SelectContext(ctx, &rows, q,
		zone,
		period.Start(time.UTC).Format(dateLayout),
		period.End(time.UTC).Format(dateLayout),
	)
	if err != nil {
		log.Error().Err(err).Str("zone", zone).Int("year", year).Int("month", int(month)).Msg("FetchMonth failed")
		return nil, err
	}

	out := make([]model.PrayerRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

// UpsertMonth replaces the zone's month with records in one transaction.
func (s *pgStore) UpsertMonth(ctx context.Context, zone string, period model.NormalizedPeriod, records []model.PrayerRecord) error {
	for _, rec := range records {
		if rec.ZoneCode != zone {
			return fmt.Errorf("record for %s in %s month", rec.ZoneCode, zone)
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM prayer_times WHERE zone_code = $1 AND date >= $2 AND date < $3;`,
		zone,
		period.Start(time.UTC).Format(dateLayout),
		period.End(time.UTC).Format(dateLayout),
	)
	if err != nil {
		log.Error().Err(err).Str("zone", zone).Msg("UpsertMonth delete failed")
		return err
	}

	const ins = `
	INSERT INTO prayer_times (zone_code, date, hijri, fajr, syuruk, dhuhr, asr, maghrib, isha, updated_at)
	VALUES (:zone_code, :date, :hijri, :fajr, :syuruk, :dhuhr, :asr, :maghrib, :isha, now())
	ON CONFLICT (zone_code, date) DO UPDATE
	   SET hijri = EXCLUDED.hijri,
	       fajr = EXCLUDED.fajr,
	       syuruk = EXCLUDED.syuruk,
	       dhuhr = EXCLUDED.dhuhr,
	       asr = EXCLUDED.asr,
	       maghrib = EXCLUDED.maghrib,
	       isha = EXCLUDED.isha,
	       updated_at = now();`
	for _, rec := range records {
		if _, err := tx.NamedExecContext(ctx, ins, insertArgs(rec)); err != nil {
			log.Error().Err(err).Str("zone", zone).Time("date", rec.Date).Msg("UpsertMonth insert failed")
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	log.Info().Str("zone", zone).Int("year", period.Year).Int("month", int(period.Month)).Int("records", len(records)).Msg("month upserted")
	return nil
}
