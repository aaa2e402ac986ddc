// Package metrics defines the Prometheus instruments of the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solat_api"

// Metrics holds the Prometheus counters and histograms for the API.
type Metrics struct {
	Requests        *prometheus.CounterVec   // labels: route, method, status
	RequestDuration *prometheus.HistogramVec // labels: route

	// Schedule store metrics.
	StoreFetchDuration prometheus.Histogram
	CacheLookups       *prometheus.CounterVec // labels: result={hit,miss,error}

	GPSLookups    *prometheus.CounterVec // labels: outcome={found,no_zone,out_of_range}
	PDFsRendered  prometheus.Counter
	BoundaryCount prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates all metrics and registers them with reg. Go runtime and process
// collectors are registered too.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		StoreFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_fetch_duration_seconds",
			Help:      "Duration of month fetches from the schedule store.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Month cache lookups by result.",
		}, []string{"result"}),
		GPSLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gps_lookups_total",
			Help:      "Coordinate to zone lookups by outcome.",
		}, []string{"outcome"}),
		PDFsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_rendered_total",
			Help:      "Timetable PDFs rendered.",
		}),
		BoundaryCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "boundary_districts",
			Help:      "District boundaries loaded into the spatial index.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.RequestDuration,
		m.StoreFetchDuration,
		m.CacheLookups,
		m.GPSLookups,
		m.PDFsRendered,
		m.BoundaryCount,
	)
	return m
}

// NewForTesting creates Metrics on a fresh registry so tests can build as many as
// they like.
func NewForTesting() *Metrics {
	return New(prometheus.NewRegistry())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// CacheResult counts a cache lookup. Safe on a nil receiver.
func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// GPSResult counts a coordinate lookup. Safe on a nil receiver.
func (m *Metrics) GPSResult(outcome string) {
	if m == nil {
		return
	}
	m.GPSLookups.WithLabelValues(outcome).Inc()
}
