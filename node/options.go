package node

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
)

// AdditionalOptionsParam is the parameter holding the per-item Options.
const AdditionalOptionsParam = "additionalOptions"

// DefaultItemTimeout bounds a single item when no timeout is configured.
const DefaultItemTimeout = 30 * time.Second

// Options are the per-item additional options.
type Options struct {
	// ReturnRawResponse disables unwrapping of the "result" envelope.
	// Without it, only an object-valued "result" is unwrapped.
	ReturnRawResponse bool `mapstructure:"returnRawResponse"`
	// Timeout is the request timeout in milliseconds; zero means the default.
	Timeout int `mapstructure:"timeout"`
}

// TimeoutDuration returns the effective request timeout.
func (o Options) TimeoutDuration() time.Duration {
	if o.Timeout <= 0 {
		return DefaultItemTimeout
	}
	return time.Duration(o.Timeout) * time.Millisecond
}

// DecodeOptions reads Options from the additionalOptions parameter.
// Booleans and numbers may also be given as strings.
func DecodeOptions(params Params) (Options, error) {
	var opts Options

	raw, ok := params[AdditionalOptionsParam]
	if !ok || raw == nil {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return opts, errors.Wrap(err, "failed to create options decoder")
	}

	if err := decoder.Decode(raw); err != nil {
		return Options{}, errors.Wrapf(ErrInvalidParameter, "%s: %v", AdditionalOptionsParam, err)
	}

	return opts, nil
}

func additionalOptionSpecs() []ParamSpec {
	return []ParamSpec{
		{
			Name:        "returnRawResponse",
			DisplayName: "Return Raw Response",
			Description: "Return the full API response including metadata",
			Type:        TypeBoolean,
			Default:     false,
		},
		{
			Name:        "timeout",
			DisplayName: "Timeout",
			Description: "Request timeout in milliseconds",
			Type:        TypeNumber,
			Default:     int(DefaultItemTimeout / time.Millisecond),
		},
	}
}
