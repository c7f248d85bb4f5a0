package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fcbrates"

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the service collectors, registered on a dedicated registry
type Metrics struct {
	registry *prometheus.Registry

	ProviderFetchesTotal  *prometheus.CounterVec
	ProviderFetchDuration *prometheus.HistogramVec
	RatesSavedTotal       *prometheus.CounterVec
	LiveRequestsTotal     *prometheus.CounterVec
}

// New creates a new metrics set, with the Go runtime and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ProviderFetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_fetches_total",
				Help:      "Total number of provider fetch jobs",
			},
			[]string{"provider", "status"},
		),

		ProviderFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_fetch_duration_seconds",
				Help:      "Provider fetch job duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		RatesSavedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rates_saved_total",
				Help:      "Total number of saved exchange rate data points",
			},
			[]string{"source", "status"},
		),

		LiveRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "live_requests_total",
				Help:      "Total number of live rate conversion requests",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ProviderFetchesTotal,
		m.ProviderFetchDuration,
		m.RatesSavedTotal,
		m.LiveRequestsTotal,
	)

	return m
}

// Handler returns the Prometheus scrape handler for the metrics registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
