// Package observability provides interfaces for logging and metrics collection
// in the go-censys library.
//
// This package defines standard interfaces that allow users to integrate their
// own logging and metrics implementations with the Censys search client and
// the Censys node.
//
// # Logger Interface
//
// The Logger interface supports structured logging with key-value pairs:
//
//	logger := zerologadapter.New(log.Logger)
//	client, err := search.NewWithConfig(&search.ClientConfig{
//		APIID:     apiID,
//		APISecret: apiSecret,
//		Logger:    logger,
//	})
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks client and node metrics:
//
//	metrics := prommetrics.New(prometheus.DefaultRegisterer)
//	n, err := node.New(&node.Config{
//		Credentials: creds,
//		Metrics:     metrics,
//	})
//
// Tracked metrics include:
//   - HTTP request count, status codes, and duration
//   - Retry attempts and rate limiting waits
//   - Error occurrences by type
//   - Processed node items by operation and outcome
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, no-op implementations are
// used that discard all events.
package observability
