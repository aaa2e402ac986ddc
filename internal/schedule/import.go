package schedule

import (
	"fmt"
	"time"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/model"
)

// Day is one day of an imported month. Times are unix seconds.
type Day struct {
	Day     int
	Hijri   string
	Fajr    int64
	Syuruk  int64
	Dhuhr   int64
	Asr     int64
	Maghrib int64
	Isha    int64
}

// BuildMonth converts imported days into records. It requires exactly one entry per
// day of the month, in order, each with a hijri date.
func BuildMonth(zone string, period model.NormalizedPeriod, days []Day) ([]model.PrayerRecord, error) {
	if want := period.Days(); len(days) != want {
		return nil, fmt.Errorf("expected %d days, got %d", want, len(days))
	}

	at := func(sec int64) time.Time { return time.Unix(sec, 0).In(calendar.Location) }
	records := make([]model.PrayerRecord, len(days))
	for i, d := range days {
		if d.Day != i+1 {
			return nil, fmt.Errorf("entry %d is day %d, want %d", i, d.Day, i+1)
		}
		if d.Hijri == "" {
			return nil, fmt.Errorf("day %d has no hijri date", d.Day)
		}
		records[i] = model.PrayerRecord{
			ZoneCode: zone,
			Date:     DateOf(period.Year, period.Month, d.Day),
			Hijri:    d.Hijri,
			Fajr:     at(d.Fajr),
			Syuruk:   at(d.Syuruk),
			Dhuhr:    at(d.Dhuhr),
			Asr:      at(d.Asr),
			Maghrib:  at(d.Maghrib),
			Isha:     at(d.Isha),
		}
	}
	return records, nil
}
