// Package scheduletest builds synthetic months of prayer times for tests.
package scheduletest

import (
	"fmt"
	"time"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/model"
)

// Day holds the first day of a fixture month. Times are unix seconds.
type Day struct {
	Hijri                                    string
	Fajr, Syuruk, Dhuhr, Asr, Maghrib, Isha int64
}

// KDH01May2025 is the published first of May 2025 for Kedah zone 1.
var KDH01May2025 = Day{
	Hijri:   "1446-11-03",
	Fajr:    1746050100,
	Syuruk:  1746054240,
	Dhuhr:   1746076680,
	Asr:     1746088440,
	Maghrib: 1746098820,
	Isha:    1746103140,
}

// PNG01Jan2026 is the published first of January 2026 for Penang.
var PNG01Jan2026 = Day{
	Hijri:   "1447-07-11",
	Fajr:    1767219240,
	Syuruk:  1767223560,
	Dhuhr:   1767245040,
	Asr:     1767257160,
	Maghrib: 1767266280,
	Isha:    1767270780,
}

// Month returns a full month for zone whose first day is first. Later days repeat the
// first day's times shifted by whole days; the hijri day advances and wraps after 30.
func Month(zone string, year int, month time.Month, first Day) []model.PrayerRecord {
	var hy, hm, hd int
	if _, err := fmt.Sscanf(first.Hijri, "%d-%d-%d", &hy, &hm, &hd); err != nil {
		panic(fmt.Sprintf("scheduletest: bad hijri %q", first.Hijri))
	}

	days := calendar.DaysIn(year, month)
	out := make([]model.PrayerRecord, 0, days)
	for i := 0; i < days; i++ {
		shift := int64(i) * 86400
		at := func(sec int64) time.Time { return time.Unix(sec+shift, 0).In(calendar.Location) }

		out = append(out, model.PrayerRecord{
			ZoneCode: zone,
			Date:     time.Date(year, month, i+1, 0, 0, 0, 0, calendar.Location),
			Hijri:    fmt.Sprintf("%04d-%02d-%02d", hy, hm, hd),
			Fajr:     at(first.Fajr),
			Syuruk:   at(first.Syuruk),
			Dhuhr:    at(first.Dhuhr),
			Asr:      at(first.Asr),
			Maghrib:  at(first.Maghrib),
			Isha:     at(first.Isha),
		})

		hd++
		if hd > 30 {
			hd = 1
			hm++
			if hm > 12 {
				hm = 1
				hy++
			}
		}
	}
	return out
}
