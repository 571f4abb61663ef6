package observability_test

import (
	"testing"
	"time"

	"github.com/lexfrei/go-censys/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLogger(t *testing.T) {
	t.Parallel()

	logger := observability.NoopLogger()

	// All methods should execute without panicking
	logger.Debug("test debug")
	logger.Info("test info")
	logger.Warn("test warn")
	logger.Error("test error")

	newLogger := logger.With(observability.Field{Key: "key", Value: "value"})
	require.NotNil(t, newLogger)

	newLogger.Info("test with logger")
}

func TestField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field observability.Field
		key   string
		value any
	}{
		{
			name:  "string value",
			field: observability.F("operation", "getHost"),
			key:   "operation",
			value: "getHost",
		},
		{
			name:  "int value",
			field: observability.Field{Key: "item_index", Value: 3},
			key:   "item_index",
			value: 3,
		},
		{
			name:  "nil value",
			field: observability.F("null", nil),
			key:   "null",
			value: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.key, tt.field.Key)
			assert.Equal(t, tt.value, tt.field.Value)
		})
	}
}

func TestNoopMetricsRecorder(t *testing.T) {
	t.Parallel()

	recorder := observability.NoopMetricsRecorder()

	recorder.RecordHTTPRequest("GET", "/v2/hosts/:ip", 200, time.Second)
	recorder.RecordRetry(1, "/v2/hosts/search")
	recorder.RecordRateLimit("/v2/hosts/search", 100*time.Millisecond)
	recorder.RecordError("http_request", "NetworkError")
	recorder.RecordOperation("getHost", observability.OutcomeSuccess, time.Millisecond)
}

// BenchmarkNoopLogger measures the overhead of noop logger calls.
func BenchmarkNoopLogger(b *testing.B) {
	logger := observability.NoopLogger()

	b.Run("Info", func(b *testing.B) {
		for range b.N {
			logger.Info("test message")
		}
	})

	b.Run("InfoWithFields", func(b *testing.B) {
		fields := []observability.Field{
			{Key: "key1", Value: "value1"},
			{Key: "key2", Value: 42},
		}

		for range b.N {
			logger.Info("test message", fields...)
		}
	})
}
