package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/geo"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/model"
)

// Locator maps a coordinate to the district containing it.
type Locator interface {
	Resolve(lat, lon float64) (model.DistrictLocation, error)
}

// Locate parses the raw path coordinates and resolves them. Unparsable input is a 400;
// out of range and uncovered points are 500s carrying the resolver's message under
// "error".
func Locate(loc Locator, m *metrics.Metrics, latRaw, lonRaw string) (model.DistrictLocation, *Error) {
	lat, latErr := ParseCoordinate(latRaw)
	lon, lonErr := ParseCoordinate(lonRaw)
	if latErr != nil || lonErr != nil {
		return model.DistrictLocation{}, &Error{Code: http.StatusBadRequest, Message: "latitude and longitude must be numbers"}
	}

	district, err := loc.Resolve(lat, lon)
	if err == nil {
		m.GPSResult("found")
		return district, nil
	}

	var rangeErr *geo.RangeError
	switch {
	case errors.As(err, &rangeErr):
		m.GPSResult("out_of_range")
		return model.DistrictLocation{}, &Error{Code: http.StatusInternalServerError, Message: err.Error()}
	case errors.Is(err, geo.ErrNoZone):
		m.GPSResult("no_zone")
		return model.DistrictLocation{}, &Error{Code: http.StatusInternalServerError, Message: err.Error()}
	default:
		log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("zone lookup failed")
		return model.DistrictLocation{}, &Error{Code: http.StatusInternalServerError, Message: "Server Error"}
	}
}
