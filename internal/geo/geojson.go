package geo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Properties featureProperties `json:"properties"`
	Geometry   *geometry         `json:"geometry"`
}

type featureProperties struct {
	Zone     string `json:"zone"`
	State    string `json:"state"`
	District string `json:"district"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// DecodeGeoJSON reads a FeatureCollection of district boundaries. Each feature needs
// "zone", "state" and "district" properties and a Polygon or MultiPolygon geometry.
// Feature order is kept; it is the order containment is tested in.
func DecodeGeoJSON(r io.Reader) ([]District, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if !strings.EqualFold(fc.Type, "FeatureCollection") {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}

	districts := make([]District, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Properties.Zone == "" {
			return nil, fmt.Errorf("feature %d: missing zone property", i)
		}
		if f.Geometry == nil {
			return nil, fmt.Errorf("feature %d (%s): missing geometry", i, f.Properties.Zone)
		}
		polys, err := decodeGeometry(*f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", i, f.Properties.Zone, err)
		}
		districts = append(districts, District{
			Zone:  f.Properties.Zone,
			State: f.Properties.State,
			Name:  f.Properties.District,
			Polys: polys,
		})
	}
	return districts, nil
}

func decodeGeometry(g geometry) ([]Polygon, error) {
	switch strings.ToLower(g.Type) {
	case "polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("polygon coordinates: %w", err)
		}
		p, err := toPolygon(rings)
		if err != nil {
			return nil, err
		}
		return []Polygon{p}, nil
	case "multipolygon":
		var parts [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &parts); err != nil {
			return nil, fmt.Errorf("multipolygon coordinates: %w", err)
		}
		out := make([]Polygon, 0, len(parts))
		for _, rings := range parts {
			p, err := toPolygon(rings)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func toPolygon(rings [][][]float64) (Polygon, error) {
	var poly Polygon
	for _, ring := range rings {
		pts := make([]Point, 0, len(ring))
		for _, c := range ring {
			if len(c) < 2 {
				return Polygon{}, fmt.Errorf("position with %d values", len(c))
			}
			// GeoJSON positions are [lon, lat].
			pts = append(pts, Point{Lat: c[1], Lon: c[0]})
		}
		poly.Rings = append(poly.Rings, pts)
	}
	poly.BBox = computeBBox(poly)
	return poly, nil
}
