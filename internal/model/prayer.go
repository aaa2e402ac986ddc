package model

import "time"

// PrayerRecord is one day of prayer times for one zone. Every time value carries the
// absolute instant; civil (wall clock) rendering happens in Malaysia time.
type PrayerRecord struct {
	ZoneCode string    `json:"zone"`
	Date     time.Time `json:"date"`  // local midnight of the Gregorian day
	Hijri    string    `json:"hijri"` // "YYYY-MM-DD"
	Fajr     time.Time `json:"fajr"`
	Syuruk   time.Time `json:"syuruk"`
	Dhuhr    time.Time `json:"dhuhr"`
	Asr      time.Time `json:"asr"`
	Maghrib  time.Time `json:"maghrib"`
	Isha     time.Time `json:"isha"`
}

// Times returns the six daily times in display order.
func (r PrayerRecord) Times() [6]time.Time {
	return [6]time.Time{r.Fajr, r.Syuruk, r.Dhuhr, r.Asr, r.Maghrib, r.Isha}
}

// MonthSchedule is the full month of records for one zone, ordered by date.
type MonthSchedule struct {
	Zone      string
	Requested RequestedPeriod
	Period    NormalizedPeriod
	Records   []PrayerRecord
}
