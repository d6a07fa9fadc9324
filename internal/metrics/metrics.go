// Package metrics exposes Prometheus collectors for the HTTP surface and the store.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cnc_monitor"

// Metrics holds the collectors registered on a private registry.
// All methods are safe on a nil receiver so callers may run without metrics.
type Metrics struct {
	Registry *prometheus.Registry

	requests              *prometheus.CounterVec
	requestDuration       *prometheus.HistogramVec
	fallbackSubstitutions *prometheus.CounterVec
	fallbackMode          prometheus.Gauge
}

// New creates and registers all collectors, including the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		fallbackSubstitutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_substitutions_total",
			Help:      "Store reads answered from sample data after a database failure.",
		}, []string{"operation"}),
		fallbackMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fallback_mode",
			Help:      "1 when the process serves sample data for its whole lifetime.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.fallbackSubstitutions,
		m.fallbackMode,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format, uncompressed.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		Registry: m.Registry,
		// Compression is left to the router.
		DisableCompression: true,
	})
}

// Middleware records request counts and latency keyed by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// RecordFallback counts a single read served from sample data.
func (m *Metrics) RecordFallback(operation string) {
	if m == nil {
		return
	}
	m.fallbackSubstitutions.WithLabelValues(operation).Inc()
}

// SetFallbackMode publishes whether the process runs on sample data.
func (m *Metrics) SetFallbackMode(enabled bool) {
	if m == nil {
		return
	}
	if enabled {
		m.fallbackMode.Set(1)
	} else {
		m.fallbackMode.Set(0)
	}
}
