// Package prommetrics provides an observability.MetricsRecorder backed by
// Prometheus collectors.
package prommetrics

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lexfrei/go-censys/observability"
)

const (
	// Namespace for all go-censys metrics
	namespace = "censys"
)

// Recorder records client and node metrics into Prometheus collectors.
type Recorder struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	retries           *prometheus.CounterVec
	rateLimitWait     *prometheus.HistogramVec
	errors            *prometheus.CounterVec
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

var _ observability.MetricsRecorder = (*Recorder)(nil)

// New creates a Recorder and registers its collectors with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests sent to the Censys API",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests to the Censys API in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_retries_total",
				Help:      "Total number of retried HTTP requests",
			},
			[]string{"path"},
		),
		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting on the client-side rate limiter",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"path"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of errors by operation and type",
			},
			[]string{"operation", "error_type"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_items_total",
				Help:      "Total number of node items processed by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "node_item_duration_seconds",
				Help:      "Duration of a single node item in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
	}

	for _, c := range r.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register censys collector")
		}
	}

	return r, nil
}

func (r *Recorder) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.httpRequests,
		r.httpDuration,
		r.retries,
		r.rateLimitWait,
		r.errors,
		r.operations,
		r.operationDuration,
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (r *Recorder) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	r.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRetry records a retry attempt.
func (r *Recorder) RecordRetry(_ int, endpoint string) {
	r.retries.WithLabelValues(endpoint).Inc()
}

// RecordRateLimit records time spent waiting on the rate limiter.
func (r *Recorder) RecordRateLimit(endpoint string, wait time.Duration) {
	r.rateLimitWait.WithLabelValues(endpoint).Observe(wait.Seconds())
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(operation, errorType string) {
	r.errors.WithLabelValues(operation, errorType).Inc()
}

// RecordOperation records one processed node item.
func (r *Recorder) RecordOperation(operation, outcome string, duration time.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
