package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lexfrei/go-censys/observability"
)

// Observability returns a middleware that logs and records metrics for HTTP requests.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	path := normalizePath(req.URL.Path)

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "path", Value: req.URL.Path},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "path", Value: req.URL.Path},
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "NetworkError")

		//nolint:wrapcheck // Observability middleware logs error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "path", Value: req.URL.Path},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, path, resp.StatusCode, duration)

	return resp, nil
}

// placeholders maps a collection segment to the placeholder used for the
// identifier that follows it. Collection-level actions are kept verbatim.
var (
	placeholders = map[string]string{
		"hosts":        ":ip",
		"certificates": ":fingerprint",
		"tags":         ":tag_id",
	}
	collectionActions = map[string]bool{
		"search":    true,
		"aggregate": true,
	}

	normalizedPathCache sync.Map
)

// normalizePath replaces IP addresses, certificate fingerprints and tag IDs
// with placeholders so metric labels stay bounded.
//
// Examples:
//   - /api/v2/hosts/8.8.8.8/tags/abc → /api/v2/hosts/:ip/tags/:tag_id
//   - /api/v2/certificates/<sha256> → /api/v2/certificates/:fingerprint
//   - /api/v2/hosts/search → /api/v2/hosts/search
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings, type assertion is safe
		return cached.(string)
	}

	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		placeholder, ok := placeholders[segments[i-1]]
		if !ok || segments[i] == "" || collectionActions[segments[i]] {
			continue
		}
		segments[i] = placeholder
	}

	normalized := strings.Join(segments, "/")
	normalizedPathCache.Store(path, normalized)

	return normalized
}
