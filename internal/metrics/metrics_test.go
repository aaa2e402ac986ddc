package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForTesting_Independent(t *testing.T) {
	a := NewForTesting()
	b := NewForTesting()

	a.CacheResult("hit")
	a.CacheResult("hit")
	b.CacheResult("miss")

	assert.Equal(t, 2.0, testutil.ToFloat64(a.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.CacheLookups.WithLabelValues("miss")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheResult("hit")
		m.GPSResult("found")
	})
}

func TestHandler(t *testing.T) {
	m := NewForTesting()
	m.GPSResult("no_zone")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `solat_api_gps_lookups_total{outcome="no_zone"} 1`)
}
