// Package gazetteer is the fixed directory of JAKIM prayer time zones.
package gazetteer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/waktusolat/solat-api/internal/model"
)

// ZoneCount is the number of JAKIM zones.
const ZoneCount = 60

//go:embed zones.json
var zonesJSON []byte

type zoneEntry struct {
	Code      string   `json:"code"`
	State     string   `json:"state"`
	Negeri    string   `json:"negeri"`
	Districts []string `json:"districts"`
}

// Gazetteer is read-only after Load and safe for concurrent use.
type Gazetteer struct {
	zones  []model.Zone
	byCode map[string]int
}

// Load parses the embedded zone list.
func Load() (*Gazetteer, error) {
	return Parse(zonesJSON)
}

// MustLoad is Load for process start; the embedded data is validated by tests.
func MustLoad() *Gazetteer {
	g, err := Load()
	if err != nil {
		panic(err)
	}
	return g
}

// Parse builds a gazetteer from a JSON zone list.
func Parse(data []byte) (*Gazetteer, error) {
	var entries []zoneEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode zones: %w", err)
	}
	if len(entries) != ZoneCount {
		return nil, fmt.Errorf("expected %d zones, got %d", ZoneCount, len(entries))
	}

	g := &Gazetteer{
		zones:  make([]model.Zone, 0, len(entries)),
		byCode: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Code == "" {
			return nil, fmt.Errorf("zone with empty code")
		}
		if _, dup := g.byCode[e.Code]; dup {
			return nil, fmt.Errorf("duplicate zone %s", e.Code)
		}
		if len(e.Districts) == 0 {
			return nil, fmt.Errorf("zone %s has no districts", e.Code)
		}
		g.byCode[e.Code] = len(g.zones)
		g.zones = append(g.zones, model.Zone{
			Code:      e.Code,
			State:     e.State,
			Negeri:    e.Negeri,
			Districts: append([]string(nil), e.Districts...),
		})
	}
	return g, nil
}

// All returns every zone in gazetteer order.
func (g *Gazetteer) All() []model.Zone {
	out := make([]model.Zone, 0, len(g.zones))
	for _, z := range g.zones {
		out = append(out, clone(z))
	}
	return out
}

func clone(z model.Zone) model.Zone {
	z.Districts = append([]string(nil), z.Districts...)
	return z
}

// Get looks a zone up by its exact code.
func (g *Gazetteer) Get(code string) (model.Zone, bool) {
	i, ok := g.byCode[code]
	if !ok {
		return model.Zone{}, false
	}
	return clone(g.zones[i]), true
}

// FilterByState returns the zones whose code starts with prefix. The match is case
// sensitive; an unknown prefix gives an empty, non-nil slice.
func (g *Gazetteer) FilterByState(prefix string) []model.Zone {
	out := make([]model.Zone, 0)
	for _, z := range g.zones {
		if strings.HasPrefix(z.Code, prefix) {
			out = append(out, clone(z))
		}
	}
	return out
}
