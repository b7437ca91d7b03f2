// Package metrics exposes Prometheus collectors for the API and the enrichment pipeline.
// Every method is safe to call on a nil *Metrics so components can run without metrics in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blog_showcase"

// Metrics holds all service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Enrichment
	PostsEnriched           prometheus.Counter
	ImageFallbacks          prometheus.Counter
	ImageValidationDuration prometheus.Histogram

	// Upstream
	UpstreamRequests *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New registers all collectors (plus Go runtime and process collectors) on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PostsEnriched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_enriched_total",
			Help:      "Total number of raw posts turned into display posts",
		}),
		ImageFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_fallbacks_total",
			Help:      "Total number of posts whose image failed validation and got the fallback image",
		}),
		ImageValidationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_validation_duration_seconds",
			Help:      "Duration of image HEAD validation requests",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream blog API calls by operation and result",
		}, []string{"operation", "result"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Raw record cache lookups by result",
		}, []string{"result"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveEnrichment(fallback bool) {
	if m == nil {
		return
	}
	m.PostsEnriched.Inc()
	if fallback {
		m.ImageFallbacks.Inc()
	}
}

func (m *Metrics) ObserveImageValidation(d time.Duration) {
	if m == nil {
		return
	}
	m.ImageValidationDuration.Observe(d.Seconds())
}

// ObserveUpstream records one upstream call; result is "ok", "not_found" or "error".
func (m *Metrics) ObserveUpstream(operation, result string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Middleware records request count and latency labelled by the matched gin route.
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
		method := c.Request.Method
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
