package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments for the service.
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Aggregation metrics
	EventsAggregated prometheus.Counter
	EventsSkipped    prometheus.Counter
	AggregationRuns  *prometheus.CounterVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec
}

// Default is the global metrics instance, set by Init.
var Default *Metrics

// New creates and registers all Prometheus metrics under the namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		EventsAggregated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_aggregated_total",
				Help:      "Total metric events folded into buckets",
			},
		),
		EventsSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_skipped_total",
				Help:      "Total metric events rejected for malformed timestamps",
			},
		),
		AggregationRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregation_runs_total",
				Help:      "Aggregation runs by granularity",
			},
			[]string{"granularity"},
		),
		CacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Insights cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Init creates the global metrics instance. Call once at startup.
func Init(namespace string) *Metrics {
	Default = New(namespace)
	return Default
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// ObserveAggregation records one aggregation run.
func (m *Metrics) ObserveAggregation(granularity string, folded, skipped int) {
	if m == nil {
		return
	}
	m.AggregationRuns.WithLabelValues(granularity).Inc()
	m.EventsAggregated.Add(float64(folded))
	m.EventsSkipped.Add(float64(skipped))
}

// ObserveCacheLookup records a cache hit or miss.
func (m *Metrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
