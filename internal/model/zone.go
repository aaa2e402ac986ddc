package model

import "strings"

// Zone is a JAKIM prayer time zone.
type Zone struct {
	Code      string
	State     string // code prefix, e.g. "SGR"
	Negeri    string
	Districts []string
}

// Daerah is the display label of the zone: its districts in gazetteer order.
func (z Zone) Daerah() string {
	return strings.Join(z.Districts, ", ")
}

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// DistrictLocation is the district polygon a coordinate falls in.
type DistrictLocation struct {
	Zone     string `json:"zone"`
	State    string `json:"state"`
	District string `json:"district"`
}
