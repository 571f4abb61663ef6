package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-censys/internal/httpclient"
	"github.com/lexfrei/go-censys/internal/middleware"
	"github.com/lexfrei/go-censys/internal/ratelimit"
	"github.com/lexfrei/go-censys/internal/response"
	"github.com/lexfrei/go-censys/observability"
)

const (
	// DefaultBaseURL is the default Censys Search API base URL.
	DefaultBaseURL = "https://search.censys.io/api"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// NoTimeout disables the client-wide timeout; deadlines then come
	// only from the request context.
	NoTimeout time.Duration = -1

	// DefaultRetryWaitTime is the initial backoff when retries are enabled.
	DefaultRetryWaitTime = 1 * time.Second

	// UserAgent is sent with every request.
	UserAgent = "go-censys"

	// AccountPath is the endpoint used to test credentials.
	AccountPath = "/v1/account"
)

// ErrMissingCredentials is returned when the API ID or secret is empty.
var ErrMissingCredentials = errors.New("censys API ID and API secret are required")

// Object is a decoded JSON object as returned by the Censys API.
type Object = map[string]any

// APIError is returned for non-2xx responses.
type APIError = response.APIError

// ErrDecode marks a 2xx response whose body is not valid JSON.
var ErrDecode = response.ErrDecode

// Request describes one call against the Censys API.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is relative to the base URL, starts with "/" and has every
	// dynamic segment already percent-encoded.
	Path string
	// Query holds query-string parameters; absent keys are not sent.
	Query url.Values
	// Body is JSON encoded when non-nil.
	Body any
}

// Client is a Censys Search API v2 client.
type Client struct {
	baseURL string
	http    *http.Client
}

// Compile-time check to ensure Client implements SearchAPIClient interface.
var _ SearchAPIClient = (*Client)(nil)

// ClientConfig holds configuration for the Censys API client.
type ClientConfig struct {
	// APIID is the Censys API ID, sent as the Basic auth username
	APIID string

	// APISecret is the Censys API secret, sent as the Basic auth password
	APISecret string

	// BaseURL is the base URL for the API (defaults to https://search.censys.io/api)
	BaseURL string

	// HTTPClient is the HTTP client to use (optional)
	HTTPClient *http.Client

	// RateLimitPerMinute throttles requests client-side (0 disables)
	RateLimitPerMinute int

	// MaxRetries sets maximum number of retries for 429/5xx/network failures (0 disables)
	MaxRetries int

	// RetryWaitTime sets the initial wait time between retries
	RetryWaitTime time.Duration

	// Timeout sets the HTTP client timeout (NoTimeout disables it)
	Timeout time.Duration

	// TLSConfig overrides the transport TLS configuration (optional)
	TLSConfig *tls.Config

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

// New creates a new Censys API client with default settings.
//
// Example:
//
//	client, err := search.New(os.Getenv("CENSYS_API_ID"), os.Getenv("CENSYS_API_SECRET"))
func New(apiID, apiSecret string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		APIID:     apiID,
		APISecret: apiSecret,
	})
}

// NewWithConfig creates a new Censys API client with custom configuration.
//
// Example:
//
//	client, err := search.NewWithConfig(&search.ClientConfig{
//	    APIID:              apiID,
//	    APISecret:          apiSecret,
//	    RateLimitPerMinute: 24,
//	    MaxRetries:         2,
//	    Logger:             zerologadapter.New(log.Logger),
//	})
func NewWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.APIID == "" || cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", baseURL)
	}

	timeout := cfg.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}

	retryWait := cfg.RetryWaitTime
	if retryWait == 0 {
		retryWait = DefaultRetryWaitTime
	}

	// Order from outside to inside: Headers -> Auth -> Observability -> RateLimit -> Retry -> TLS
	httpClient := httpclient.New(
		httpclient.WithHTTPClient(cfg.HTTPClient),
		httpclient.WithTimeout(timeout),
		httpclient.WithMiddleware(
			middleware.Headers(map[string]string{
				"Accept":     "application/json",
				"User-Agent": UserAgent,
			}),
			middleware.BasicAuth(cfg.APIID, cfg.APISecret),
			middleware.Observability(cfg.Logger, cfg.Metrics),
			middleware.RateLimit(middleware.RateLimitConfig{
				Limiter: ratelimit.NewRateLimiter(cfg.RateLimitPerMinute),
				Logger:  cfg.Logger,
				Metrics: cfg.Metrics,
			}),
			middleware.Retry(middleware.RetryConfig{
				MaxRetries:  cfg.MaxRetries,
				InitialWait: retryWait,
				Logger:      cfg.Logger,
				Metrics:     cfg.Metrics,
			}),
			middleware.TLSConfig(cfg.TLSConfig),
		),
	)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient.HTTPClient(),
	}, nil
}

// Do sends req and decodes the JSON object it returns.
// Non-2xx responses are reported as *APIError.
func (c *Client) Do(ctx context.Context, req *Request) (Object, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	if !strings.HasPrefix(req.Path, "/") {
		return nil, errors.Newf("request path %q must start with /", req.Path)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s %s", method, req.Path)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, req.Path)
	}

	obj, err := response.Decode(resp)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, req.Path)
	}

	return obj, nil
}

// Account fetches the account bound to the credentials. It is the
// request used to test Censys credentials.
func (c *Client) Account(ctx context.Context) (Object, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: AccountPath})
}
