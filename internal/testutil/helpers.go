// Package testutil provides common testing utilities and helpers.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test credentials accepted by the mock servers.
const (
	APIID     = "test-api-id"
	APISecret = "test-api-secret"
)

// Recorded is one request seen by a RecordingServer.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// RecordingServer is a Censys-shaped test server that checks Basic auth
// and records every request it receives.
type RecordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// Requests returns a copy of the recorded requests.
func (s *RecordingServer) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request.
func (s *RecordingServer) Last(t *testing.T) Recorded {
	t.Helper()

	reqs := s.Requests()
	require.NotEmpty(t, reqs, "no request was recorded")
	return reqs[len(reqs)-1]
}

// NewRecordingServer starts a server that validates Basic auth against
// APIID/APISecret, records the request, then delegates to handler.
// A nil handler answers every request with an empty JSON object.
func NewRecordingServer(t *testing.T, handler http.HandlerFunc) *RecordingServer {
	t.Helper()

	srv := &RecordingServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != APIID || pass != APISecret {
			WriteJSON(t, w, http.StatusUnauthorized, map[string]any{
				"code":   http.StatusUnauthorized,
				"status": "Unauthorized",
				"error":  "You must authenticate with a valid API ID and secret.",
			})
			return
		}

		rec := Recorded{Method: r.Method, Path: r.URL.EscapedPath(), Query: r.URL.Query()}
		if r.Body != nil {
			raw, err := io.ReadAll(r.Body)
			assert.NoError(t, err, "Failed to read request body")
			if len(raw) > 0 {
				assert.NoError(t, json.Unmarshal(raw, &rec.Body), "Request body should be JSON")
			}
		}

		srv.mu.Lock()
		srv.requests = append(srv.requests, rec)
		srv.mu.Unlock()

		if handler == nil {
			WriteJSON(t, w, http.StatusOK, map[string]any{})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// NewMockServer creates a test HTTP server with predefined response.
// It validates the request path and Basic auth, then returns the specified response.
func NewMockServer(t *testing.T, expectedPath, responseBody string, statusCode int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, expectedPath, r.URL.EscapedPath(), "Request path should match expected")

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth should be set")
		assert.Equal(t, APIID, user)
		assert.Equal(t, APISecret, pass)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, err := w.Write([]byte(responseBody))
		assert.NoError(t, err, "Failed to write response body")
	}))
	t.Cleanup(srv.Close)

	return srv
}

// Response is one canned answer of a sequence server.
type Response struct {
	Body       string
	StatusCode int
}

// NewMockServerSequence creates a test server that returns responses in sequence.
// Each call to the server returns the next response in the slice.
func NewMockServerSequence(t *testing.T, responses []Response) *httptest.Server {
	t.Helper()

	var (
		mu        sync.Mutex
		callCount int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		idx := callCount
		callCount++
		mu.Unlock()

		if idx >= len(responses) {
			t.Errorf("More requests than configured responses (got %d requests, have %d responses)",
				idx+1, len(responses))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		resp := responses[idx]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		_, err := w.Write([]byte(resp.Body))
		assert.NoError(t, err, "Failed to write response body")
	}))
	t.Cleanup(srv.Close)

	return srv
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v), "Failed to write response body")
}
