// Package zerologadapter implements observability.Logger on top of zerolog.
package zerologadapter

import (
	"github.com/rs/zerolog"

	"github.com/lexfrei/go-censys/observability"
)

// Adapter forwards observability log calls to a zerolog.Logger.
type Adapter struct {
	logger zerolog.Logger
}

var _ observability.Logger = (*Adapter)(nil)

// New returns a new adapter for the given zerolog logger.
//
// e.g.
//
//	client, err := search.NewWithConfig(&search.ClientConfig{
//		Logger: zerologadapter.New(log.Logger),
//	})
func New(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

func (a *Adapter) Debug(msg string, fields ...observability.Field) {
	a.logger.Debug().Fields(convertToFields(fields)).Msg(msg)
}

func (a *Adapter) Info(msg string, fields ...observability.Field) {
	a.logger.Info().Fields(convertToFields(fields)).Msg(msg)
}

func (a *Adapter) Warn(msg string, fields ...observability.Field) {
	a.logger.Warn().Fields(convertToFields(fields)).Msg(msg)
}

func (a *Adapter) Error(msg string, fields ...observability.Field) {
	a.logger.Error().Fields(convertToFields(fields)).Msg(msg)
}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (a *Adapter) With(fields ...observability.Field) observability.Logger {
	return &Adapter{logger: a.logger.With().Fields(convertToFields(fields)).Logger()}
}

func convertToFields(fields []observability.Field) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			continue
		}
		out[f.Key] = f.Value
	}
	return out
}
