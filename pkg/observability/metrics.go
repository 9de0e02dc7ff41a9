package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics exposed by the client library.
// Embedding applications may expose the registry however they like; the
// collector never touches the default global registry so tests and multiple
// client instances do not collide.
type Collector struct {
	registry *prometheus.Registry

	// API adapter metrics
	APIRequests *prometheus.CounterVec
	APIDuration *prometheus.HistogramVec

	// Recommendation cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Slice operation metrics
	Operations *prometheus.CounterVec
}

// NewCollector creates a metrics collector with its own registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	apiRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_cache_hits_total",
			Help:      "Recommendation loads served from the local cache",
		},
	)

	cacheMisses := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_cache_misses_total",
			Help:      "Recommendation loads that required a network fetch",
		},
	)

	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_operations_total",
			Help:      "State slice operations by domain and outcome",
		},
		[]string{"domain", "operation", "outcome"},
	)

	registry.MustRegister(apiRequests, apiDuration, cacheHits, cacheMisses, operations)

	return &Collector{
		registry:    registry,
		APIRequests: apiRequests,
		APIDuration: apiDuration,
		CacheHits:   cacheHits,
		CacheMisses: cacheMisses,
		Operations:  operations,
	}
}

// Registry returns the registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records one API request.
func (c *Collector) ObserveRequest(method, path, status string, duration time.Duration) {
	c.APIRequests.WithLabelValues(method, path, status).Inc()
	c.APIDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOperation records one slice operation outcome.
func (c *Collector) RecordOperation(domain, operation, outcome string) {
	c.Operations.WithLabelValues(domain, operation, outcome).Inc()
}
