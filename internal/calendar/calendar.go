// Package calendar normalizes requested months and holds the civil time conventions
// used when formatting schedules.
package calendar

import (
	"time"

	"github.com/waktusolat/solat-api/internal/model"
)

// Location is Malaysia time. Peninsular and East Malaysia share UTC+08:00 and there is
// no daylight saving, so a fixed zone avoids depending on the host's tzdata.
var Location = time.FixedZone("MYT", 8*60*60)

var malayMonths = [...]string{
	"Januari", "Februari", "Mac", "April", "Mei", "Jun",
	"Julai", "Ogos", "September", "Oktober", "November", "Disember",
}

// Normalize maps a month that may be outside 1..12 onto the month timeline, carrying
// whole years into the year. It is total over all integers.
func Normalize(year, rawMonth int) model.NormalizedPeriod {
	idx := rawMonth - 1
	offset := floorDiv(idx, 12)
	return model.NormalizedPeriod{
		Year:  year + offset,
		Month: time.Month(idx-offset*12) + 1,
	}
}

// Current returns the requested period for the month containing t in Malaysia time.
func Current(t time.Time) model.RequestedPeriod {
	local := t.In(Location)
	return model.RequestedPeriod{Year: local.Year(), Month: int(local.Month())}
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return model.NormalizedPeriod{Year: year, Month: month}.Days()
}

// MalayMonth returns the Malay name of the month, e.g. "Januari".
func MalayMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return malayMonths[m-1]
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
