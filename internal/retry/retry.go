// Package retry holds the retry predicates shared by the transport middleware.
package retry

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ShouldRetry returns true if the HTTP status code indicates a retryable error.
// Retryable errors include:
//   - 429 (Too Many Requests) - Censys rate limit exceeded
//   - 5xx (Server Errors) - temporary server-side issues
func ShouldRetry(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests
}

// ParseRetryAfter parses the Retry-After HTTP header and returns the duration to wait.
// The header can contain either a number of seconds or an HTTP-date, which is
// resolved relative to now.
//
// Returns 0 if the header is empty, cannot be parsed or lies in the past.
func ParseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	at, err := http.ParseTime(header)
	if err != nil {
		return 0
	}

	if wait := at.Sub(now); wait > 0 {
		return wait
	}

	return 0
}
