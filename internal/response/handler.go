// Package response decodes Censys API responses into generic JSON objects.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 64 << 20

// ErrDecode marks a 2xx response whose body is not valid JSON.
var ErrDecode = errors.New("failed to decode response body")

// APIError is returned for every non-2xx response from the Censys API.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Status is the textual status reported by Censys (e.g. "Not Found").
	Status string
	// Type is the v1 error_type field, when present.
	Type string
	// Message is the human readable error reported by Censys.
	Message string
	// Body is the raw response body.
	Body []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Status
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("censys API error: status=%d: %s", e.StatusCode, msg)
}

type errorBody struct {
	Code      any    `json:"code"`
	Status    string `json:"status"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
}

// Decode reads and closes resp.Body.
//
// 2xx responses are decoded as a JSON object. An empty body yields an empty
// object and a top-level value that is not an object is returned under the
// "data" key. A 2xx body that is not JSON is reported as ErrDecode. Any
// other status produces an *APIError.
func Decode(resp *http.Response) (map[string]any, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newAPIError(resp.StatusCode, body)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to decode response body"), ErrDecode)
	}

	if obj, ok := decoded.(map[string]any); ok {
		return obj, nil
	}

	return map[string]any{"data": decoded}, nil
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = string(bytes.TrimSpace(body))
		return apiErr
	}

	apiErr.Status = parsed.Status
	apiErr.Type = parsed.ErrorType
	apiErr.Message = parsed.Error
	if apiErr.Message == "" {
		apiErr.Message = parsed.Message
	}

	return apiErr
}
