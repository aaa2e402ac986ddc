package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waktusolat/solat-api/internal/gazetteer"
	"github.com/waktusolat/solat-api/internal/notify"
	"github.com/waktusolat/solat-api/internal/schedule"
	"github.com/waktusolat/solat-api/internal/schedule/scheduletest"
)

func monthJSON(t *testing.T, zone string, year int, month time.Month, days int) string {
	t.Helper()
	type day struct {
		Day     int    `json:"day"`
		Hijri   string `json:"hijri"`
		Fajr    int64  `json:"fajr"`
		Syuruk  int64  `json:"syuruk"`
		Dhuhr   int64  `json:"dhuhr"`
		Asr     int64  `json:"asr"`
		Maghrib int64  `json:"maghrib"`
		Isha    int64  `json:"isha"`
	}
	var prayers []day
	for _, r := range scheduletest.Month(zone, year, month, scheduletest.PNG01Jan2026)[:days] {
		prayers = append(prayers, day{r.Date.Day(), r.Hijri, r.Fajr.Unix(), r.Syuruk.Unix(), r.Dhuhr.Unix(), r.Asr.Unix(), r.Maghrib.Unix(), r.Isha.Unix()})
	}
	data, err := json.Marshal(map[string]any{"zone": zone, "year": year, "month": int(month), "prayers": prayers})
	require.NoError(t, err)
	return string(data)
}

func TestParseMonthFile(t *testing.T) {
	zones := gazetteer.MustLoad()

	m, err := parseMonthFile(strings.NewReader(monthJSON(t, "PNG01", 2026, time.January, 31)), zones)
	require.NoError(t, err)
	assert.Equal(t, "PNG01", m.zone)
	assert.Len(t, m.records, 31)

	_, err = parseMonthFile(strings.NewReader(monthJSON(t, "PNG01", 2026, time.January, 30)), zones)
	assert.Error(t, err)

	_, err = parseMonthFile(strings.NewReader(monthJSON(t, "ZZZ01", 2026, time.January, 31)), zones)
	assert.ErrorContains(t, err, "unknown zone")

	_, err = parseMonthFile(strings.NewReader(`{"zone":"PNG01","year":2026,"month":1,"extra":true}`), zones)
	assert.Error(t, err)
}

func TestImportMonths(t *testing.T) {
	zones := gazetteer.MustLoad()
	m, err := parseMonthFile(strings.NewReader(monthJSON(t, "PNG01", 2026, time.January, 31)), zones)
	require.NoError(t, err)

	store := schedule.NewMemoryStore()
	var out bytes.Buffer
	require.NoError(t, importMonths(context.Background(), &out, store, notify.Nop{}, []parsedMonth{m}))
	assert.Equal(t, "imported PNG01 2026-01 (31 days)\n", out.String())

	got, err := store.FetchMonth(context.Background(), "PNG01", 2026, time.January)
	require.NoError(t, err)
	assert.Len(t, got, 31)
}

func TestZonesCommand(t *testing.T) {
	var out bytes.Buffer
	zonesCmd.SetOut(&out)
	require.NoError(t, runZones(zonesCmd, []string{"SGR"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "SGR01"))
}

func TestCheckBoundaryFile(t *testing.T) {
	n, zones, err := checkBoundaryFile("../../internal/geo/testdata/districts.geojson")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, zones["WLY01"])
	assert.Len(t, zones, 4)
}
