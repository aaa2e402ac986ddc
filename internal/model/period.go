package model

import (
	"strings"
	"time"
)

// RequestedPeriod is the (year, month) a caller asked for. Month is not range checked.
type RequestedPeriod struct {
	Year  int
	Month int
}

// NormalizedPeriod is a valid calendar month.
type NormalizedPeriod struct {
	Year  int
	Month time.Month
}

// Abbrev returns the English three letter month name, e.g. "Jan".
func (p NormalizedPeriod) Abbrev() string {
	return p.Month.String()[:3]
}

// Upper returns the abbreviation in upper case, e.g. "JAN".
func (p NormalizedPeriod) Upper() string {
	return strings.ToUpper(p.Abbrev())
}

// Days is the number of days in the Gregorian month.
func (p NormalizedPeriod) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start is midnight on the first day of the month in loc.
func (p NormalizedPeriod) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is midnight on the first day of the following month in loc.
func (p NormalizedPeriod) End(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, loc)
}
