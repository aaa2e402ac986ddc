package geo

import (
	"fmt"

	"github.com/waktusolat/solat-api/internal/model"
)

const defaultCacheSize = 4096

// Resolver answers point-in-zone queries against an immutable set of districts.
type Resolver struct {
	districts []District
	cache     *lruCache
}

// NewResolver indexes districts in the given order. The slice must not be modified
// afterwards.
func NewResolver(districts []District) *Resolver {
	return &Resolver{
		districts: districts,
		cache:     newLRUCache(defaultCacheSize),
	}
}

// Len is the number of district features loaded.
func (r *Resolver) Len() int { return len(r.districts) }

// Resolve returns the first district, in load order, whose boundary contains the
// coordinate. Out of range input gives a *RangeError and uncovered input ErrNoZone.
func (r *Resolver) Resolve(lat, lon float64) (model.DistrictLocation, error) {
	if err := ValidatePoint(lat, lon); err != nil {
		return model.DistrictLocation{}, err
	}

	key := fmt.Sprintf("%.6f,%.6f", lat, lon)
	if loc, ok := r.cache.get(key); ok {
		return loc, nil
	}

	pt := Point{Lat: lat, Lon: lon}
	for i := range r.districts {
		d := &r.districts[i]
		for _, p := range d.Polys {
			if !inBBox(pt, p.BBox) || !pointInPoly(pt, p) {
				continue
			}
			loc := model.DistrictLocation{Zone: d.Zone, State: d.State, District: d.Name}
			r.cache.put(key, loc)
			return loc, nil
		}
	}
	return model.DistrictLocation{}, ErrNoZone
}
