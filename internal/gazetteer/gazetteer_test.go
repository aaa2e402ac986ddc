package gazetteer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SixtyUniqueZones(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	zones := g.All()
	require.Len(t, zones, ZoneCount)

	seen := map[string]bool{}
	for _, z := range zones {
		assert.False(t, seen[z.Code], "duplicate %s", z.Code)
		seen[z.Code] = true
		assert.NotEmpty(t, z.Districts, z.Code)
		assert.True(t, strings.HasPrefix(z.Code, z.State), z.Code)
		assert.NotEmpty(t, z.Negeri, z.Code)
	}
}

func TestGet(t *testing.T) {
	g := MustLoad()

	z, ok := g.Get("SGR01")
	require.True(t, ok)
	assert.Equal(t, "Selangor", z.Negeri)
	assert.Equal(t, "Gombak, Petaling, Sepang, Hulu Langat, Hulu Selangor, Shah Alam", z.Daerah())

	z, ok = g.Get("WLY01")
	require.True(t, ok)
	assert.Contains(t, z.Daerah(), "Kuala Lumpur")

	_, ok = g.Get("XXX99")
	assert.False(t, ok)

	_, ok = g.Get("sgr01")
	assert.False(t, ok)
}

func TestFilterByState(t *testing.T) {
	g := MustLoad()

	sgr := g.FilterByState("SGR")
	require.Len(t, sgr, 3)
	for _, z := range sgr {
		assert.True(t, strings.HasPrefix(z.Code, "SGR"))
	}

	empty := g.FilterByState("XYZ99")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Empty(t, g.FilterByState("sgr"), "match is case sensitive")
	assert.Len(t, g.FilterByState(""), ZoneCount)
}

func TestAll_ReturnsCopy(t *testing.T) {
	g := MustLoad()
	zones := g.All()
	zones[0].Code = "MUTATED"

	assert.NotEqual(t, "MUTATED", g.All()[0].Code)
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte(`[{"code":"SGR01","districts":["Gombak"]}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 60 zones")

	_, err = Parse([]byte(`not json`))
	require.Error(t, err)
}
