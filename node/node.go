package node

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/lexfrei/go-censys/api/search"
	"github.com/lexfrei/go-censys/observability"
)

var (
	// ErrInvalidCredentials is returned by New when the API ID or secret is missing.
	ErrInvalidCredentials = errors.New("no valid credentials provided")

	// ErrUnknownOperation is returned for an operation outside the registry.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrMissingParameter marks a required parameter that resolved to an empty value.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrInvalidParameter marks a parameter value of the wrong type or outside its options.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidTime marks a dateTime parameter that could not be parsed.
	ErrInvalidTime = errors.New("invalid date/time")
)

// Doer sends one request and returns the decoded response.
// *search.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *search.Request) (search.Object, error)
}

// Item is one unit of input.
type Item struct {
	Params Params
}

// Config configures a Node.
type Config struct {
	// Credentials are required even when Client is set.
	Credentials Credentials

	// Client sends requests. When nil a *search.Client is built from the
	// fields below.
	Client Doer

	// BaseURL overrides the Censys API base URL (optional)
	BaseURL string

	// HTTPClient is the HTTP client to build on (optional)
	HTTPClient *http.Client

	// RateLimitPerMinute throttles requests client-side (0 disables)
	RateLimitPerMinute int

	// MaxRetries enables transport retries for 429/5xx (0 disables)
	MaxRetries int

	// TLSConfig overrides the transport TLS configuration (optional)
	TLSConfig *tls.Config

	// ContinueOnFail records per-item failures as error objects
	// instead of aborting the execution.
	ContinueOnFail bool

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

// Node executes Censys operations over batches of items.
type Node struct {
	client         Doer
	continueOnFail bool
	logger         observability.Logger
	metrics        observability.MetricsRecorder
}

// New validates the credentials and builds a Node.
func New(cfg Config) (*Node, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}

	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	client := cfg.Client
	if client == nil {
		// Each item carries its own deadline, so the client gets none.
		sc, err := search.NewWithConfig(&search.ClientConfig{
			APIID:              cfg.Credentials.APIID,
			APISecret:          cfg.Credentials.APISecret,
			BaseURL:            cfg.BaseURL,
			HTTPClient:         cfg.HTTPClient,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			MaxRetries:         cfg.MaxRetries,
			Timeout:            search.NoTimeout,
			TLSConfig:          cfg.TLSConfig,
			Logger:             cfg.Logger,
			Metrics:            cfg.Metrics,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Censys client")
		}
		client = sc
	}

	return &Node{
		client:         client,
		continueOnFail: cfg.ContinueOnFail,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
	}, nil
}

// TestCredentials issues the credential test request and returns the
// account it reports.
func (n *Node) TestCredentials(ctx context.Context) (search.Object, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultItemTimeout)
	defer cancel()

	account, err := n.client.Do(ctx, &search.Request{Method: http.MethodGet, Path: search.AccountPath})
	if err != nil {
		return nil, errors.Wrap(err, "credential test failed")
	}
	return account, nil
}

// Execute runs op once per item, in order, and returns one output object
// per item.
//
// A failing item either aborts the execution, in which case the output is
// nil, or, with ContinueOnFail, yields an error record
// {"error", "operation", "itemIndex"} in its slot.
func (n *Node) Execute(ctx context.Context, op Operation, items []Item) ([]search.Object, error) {
	desc, ok := Lookup(op)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", op)
	}

	logger := n.logger.With(
		observability.F("execution_id", uuid.NewString()),
		observability.F("operation", string(op)),
	)
	logger.Info("execution started", observability.F("items", len(items)))

	out := make([]search.Object, 0, len(items))
	failed := 0

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			logger.Error("execution canceled", observability.F("item_index", i))
			return nil, errors.Wrap(err, "execution canceled")
		}

		start := time.Now()
		result, err := n.executeItem(ctx, desc, item)
		duration := time.Since(start)

		if err == nil {
			n.metrics.RecordOperation(string(op), observability.OutcomeSuccess, duration)
			out = append(out, result)
			continue
		}

		failed++
		n.metrics.RecordError(string(op), errorType(err))

		if ctxErr := ctx.Err(); ctxErr != nil {
			n.metrics.RecordOperation(string(op), observability.OutcomeFailed, duration)
			logger.Error("execution canceled", observability.F("item_index", i))
			return nil, errors.Wrap(ctxErr, "execution canceled")
		}

		if !n.continueOnFail {
			n.metrics.RecordOperation(string(op), observability.OutcomeFailed, duration)
			logger.Error("item failed",
				observability.F("item_index", i),
				observability.F("error", err.Error()),
			)
			return nil, errors.Wrapf(err, "item %d: %s", i, op)
		}

		n.metrics.RecordOperation(string(op), observability.OutcomeRecorded, duration)
		logger.Warn("item failed, recording error",
			observability.F("item_index", i),
			observability.F("error", err.Error()),
		)
		out = append(out, errorRecord(op, i, err))
	}

	logger.Info("execution finished",
		observability.F("items", len(items)),
		observability.F("failed", failed),
	)

	return out, nil
}

func (n *Node) executeItem(ctx context.Context, desc Descriptor, item Item) (search.Object, error) {
	opts, err := DecodeOptions(item.Params)
	if err != nil {
		return nil, err
	}

	req, err := desc.BuildRequest(item.Params)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.TimeoutDuration())
	defer cancel()

	resp, err := n.client.Do(ctx, req)
	if err != nil && (desc.Ack == "" || !errors.Is(err, search.ErrDecode)) {
		return nil, err
	}

	return postProcess(desc, opts, resp), nil
}

// postProcess shapes the decoded response into the item output.
//
// Acknowledgement operations ignore the response body. Otherwise the
// "result" envelope is unwrapped only when it holds a JSON object; arrays,
// strings and other values are returned with their envelope intact.
func postProcess(desc Descriptor, opts Options, resp search.Object) search.Object {
	if desc.Ack != "" {
		return search.Object{"success": true, "message": desc.Ack}
	}

	if opts.ReturnRawResponse {
		return resp
	}

	if result, ok := resp["result"].(map[string]any); ok && result != nil {
		return result
	}

	return resp
}

func errorRecord(op Operation, index int, err error) search.Object {
	return search.Object{
		"error":     err.Error(),
		"operation": string(op),
		"itemIndex": index,
	}
}

func errorType(err error) string {
	var apiErr *search.APIError

	switch {
	case errors.As(err, &apiErr):
		return "api_error"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrMissingParameter), errors.Is(err, ErrInvalidParameter), errors.Is(err, ErrInvalidTime):
		return "invalid_parameter"
	default:
		return "transport"
	}
}
