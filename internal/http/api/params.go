package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/model"
)

// ErrInvalidPeriod is returned when year or month is not an integer.
var ErrInvalidPeriod = errors.New("year and month must be integers")

// ParsePeriod reads the optional year and month query parameters. With neither
// present it returns nil, meaning the current month. A missing half is taken from
// now in Malaysia time.
func ParsePeriod(ctx *gin.Context, now time.Time) (*model.RequestedPeriod, error) {
	yearRaw, hasYear := ctx.GetQuery("year")
	monthRaw, hasMonth := ctx.GetQuery("month")
	if !hasYear && !hasMonth {
		return nil, nil
	}

	period := calendar.Current(now)
	if hasYear {
		y, err := strconv.Atoi(strings.TrimSpace(yearRaw))
		if err != nil {
			return nil, ErrInvalidPeriod
		}
		period.Year = y
	}
	if hasMonth {
		m, err := strconv.Atoi(strings.TrimSpace(monthRaw))
		if err != nil {
			return nil, ErrInvalidPeriod
		}
		period.Month = m
	}
	return &period, nil
}

// ParseCoordinate parses a path segment as a float.
func ParseCoordinate(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
