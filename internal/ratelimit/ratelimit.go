// Package ratelimit builds token-bucket limiters for the Censys client.
package ratelimit

import "golang.org/x/time/rate"

// NewRateLimiter creates a rate limiter allowing requestsPerMinute requests per
// minute with a burst of one, matching how Censys meters its per-second quota.
// A non-positive rate returns nil, which disables limiting.
func NewRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
}
