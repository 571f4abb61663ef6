package retry

import (
	"testing"
	"time"
)

func TestShouldRetry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		statusCode int
		want       bool
	}{
		{name: "429 Too Many Requests", statusCode: 429, want: true},
		{name: "500 Internal Server Error", statusCode: 500, want: true},
		{name: "502 Bad Gateway", statusCode: 502, want: true},
		{name: "503 Service Unavailable", statusCode: 503, want: true},
		{name: "200 OK", statusCode: 200, want: false},
		{name: "400 Bad Request", statusCode: 400, want: false},
		{name: "401 Unauthorized", statusCode: 401, want: false},
		{name: "404 Not Found", statusCode: 404, want: false},
		{name: "422 Unprocessable Entity", statusCode: 422, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ShouldRetry(tt.statusCode); got != tt.want {
				t.Errorf("ShouldRetry(%d) = %v, want %v", tt.statusCode, got, tt.want)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "empty", header: "", want: 0},
		{name: "seconds", header: "120", want: 120 * time.Second},
		{name: "seconds with spaces", header: " 5 ", want: 5 * time.Second},
		{name: "zero seconds", header: "0", want: 0},
		{name: "negative seconds", header: "-3", want: 0},
		{name: "http date in future", header: "Mon, 01 Jan 2024 12:00:30 GMT", want: 30 * time.Second},
		{name: "http date in past", header: "Mon, 01 Jan 2024 11:59:00 GMT", want: 0},
		{name: "garbage", header: "soon", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseRetryAfter(tt.header, now); got != tt.want {
				t.Errorf("ParseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
