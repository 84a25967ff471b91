// Package metrics provides Prometheus metrics for the validation service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pitchvalidation"

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// AnalysisTotal counts full analyses by operation and outcome.
	AnalysisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_total",
			Help:      "Total number of full score computations",
		},
		[]string{"operation", "status"},
	)

	// AnalysisDuration measures engine plus cache write time.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of full analyses in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CacheLookups counts score cache reads by hit or miss.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Score cache lookups by operation and result",
		},
		[]string{"operation", "result"},
	)

	// BatchItems counts batch entries by outcome.
	BatchItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Batch analysis entries by outcome",
		},
		[]string{"status"},
	)

	// HTTPRequests counts HTTP requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	// HTTPDuration measures HTTP handler latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordAnalysis records a full analysis.
func RecordAnalysis(operation, status string, d time.Duration) {
	AnalysisTotal.WithLabelValues(operation, status).Inc()
	AnalysisDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordCacheLookup records a score cache read.
func RecordCacheLookup(operation string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(operation, result).Inc()
}

// RecordBatch records the outcome counts of one batch.
func RecordBatch(succeeded, failed int) {
	BatchItems.WithLabelValues(StatusOK).Add(float64(succeeded))
	BatchItems.WithLabelValues(StatusError).Add(float64(failed))
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route string, code int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
