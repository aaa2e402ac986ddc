// Package geo maps GPS coordinates to the district, and therefore the JAKIM zone,
// that contains them.
package geo

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Polygon follows GeoJSON: the first ring is the outer boundary, the rest are holes.
type Polygon struct {
	Rings [][]Point
	BBox  [4]float64 // minLon, minLat, maxLon, maxLat
}

// District is one boundary feature. A zone is usually made of several districts.
type District struct {
	Zone  string
	State string
	Name  string
	Polys []Polygon
}
