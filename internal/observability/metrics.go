// Package observability provides metrics and monitoring capabilities for the Koreality service.
package observability

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	AggregatorQueries  *prometheus.CounterVec
	AggregatorDuration *prometheus.HistogramVec
	AdTelemetry        *prometheus.CounterVec
}

// NewMetrics creates a new instance of Metrics, registering all collectors.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "koreality_http_requests_total",
			Help: "Total HTTP requests served, by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "koreality_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AggregatorQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "koreality_aggregator_queries_total",
			Help: "Location aggregation calls, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		AggregatorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "koreality_aggregator_duration_seconds",
			Help:    "Location aggregation latency by mode.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		AdTelemetry: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "koreality_ad_telemetry_total",
			Help: "Advertisement telemetry events, by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	collectors := []prometheus.Collector{
		m.HTTPRequests, m.HTTPDuration,
		m.AggregatorQueries, m.AggregatorDuration,
		m.AdTelemetry,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics collector: %w", err)
		}
	}

	return m, nil
}

// Handler returns an echo handler exposing the metrics registry.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
