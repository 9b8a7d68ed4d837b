// Package metrics provides Prometheus metrics for the portal.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	obserrors "github.com/BeauMercier/drasticClientPortal/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultMatched = "matched"
	ResultEmpty   = "empty"
)

const namespace = "portal"

var (
	// HTTPRequests counts handled requests by route pattern, method and status class.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration measures request latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// FolderStrategy counts folder resolution strategy outcomes.
	FolderStrategy = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "folder_strategy_total",
			Help:      "Folder resolution attempts by strategy and outcome",
		},
		[]string{"strategy", "result"},
	)

	// StorageCalls counts remote storage calls.
	StorageCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_calls_total",
			Help:      "Remote storage calls by operation and result",
		},
		[]string{"operation", "result", "error_class"},
	)

	// StorageDuration measures remote storage latency.
	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "storage_call_duration_seconds",
			Help:      "Duration of remote storage calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// AuthAttempts counts login and registration outcomes.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Authentication attempts by kind and result",
		},
		[]string{"kind", "result"},
	)
)

// RecordStorageCall records a remote storage call.
func RecordStorageCall(operation string, d time.Duration, err error) {
	result, class := ResultSuccess, ""
	if err != nil {
		result, class = ResultError, obserrors.Classify(err)
	}
	StorageCalls.WithLabelValues(operation, result, class).Inc()
	StorageDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordFolderStrategy records one folder resolution strategy outcome.
func RecordFolderStrategy(strategy, result string) {
	FolderStrategy.WithLabelValues(strategy, result).Inc()
}

// RecordAuth records a login or registration attempt.
func RecordAuth(kind string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	AuthAttempts.WithLabelValues(kind, result).Inc()
}

// RecordHTTP records a completed HTTP request.
func RecordHTTP(route, method string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(route, method, StatusClass(status)).Inc()
	HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// StatusClass buckets a status code into "2xx", "4xx" and so on.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
