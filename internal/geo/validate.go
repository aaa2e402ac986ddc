package geo

import (
	"errors"
	"fmt"
)

// Axis names a coordinate component.
type Axis string

const (
	Latitude  Axis = "Latitude"
	Longitude Axis = "Longitude"
)

// ErrNoZone is returned for valid coordinates that no district contains.
var ErrNoZone = errors.New("No zone found for the given coordinates.")

// RangeError reports a coordinate outside its valid range. The message reproduces the
// spatial engine's wording exactly; clients match on it.
type RangeError struct {
	Axis  Axis
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %f is out of range in function st_geomfromtext. It must be within %s.", e.Axis, e.Value, e.Axis.bounds())
}

func (a Axis) bounds() string {
	if a == Longitude {
		return "(-180.000000, 180.000000]"
	}
	return "[-90.000000, 90.000000]"
}

// ValidateCoordinate checks one axis. NaN is out of range on both axes.
func ValidateCoordinate(axis Axis, v float64) error {
	var ok bool
	switch axis {
	case Longitude:
		ok = v > -180 && v <= 180
	case Latitude:
		ok = v >= -90 && v <= 90
	default:
		return fmt.Errorf("unknown axis %q", axis)
	}
	if !ok {
		return &RangeError{Axis: axis, Value: v}
	}
	return nil
}

// ValidatePoint checks longitude before latitude, the order the engine reports in.
func ValidatePoint(lat, lon float64) error {
	if err := ValidateCoordinate(Longitude, lon); err != nil {
		return err
	}
	return ValidateCoordinate(Latitude, lat)
}
