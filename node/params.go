package node

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-censys/api/search"
)

// Params holds the resolved parameter values of one item, keyed by
// parameter name.
type Params map[string]any

// Layouts accepted for dateTime parameters that carry no offset. They
// are read as UTC.
var localTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// resolve returns the value of spec in p, falling back to its default.
func (p Params) resolve(spec ParamSpec) any {
	if v, ok := p[spec.Name]; ok && v != nil {
		return v
	}
	return spec.Default
}

// Encode renders the value of spec as it goes on the wire. The boolean
// is false when the parameter is empty and must be left out.
func (p Params) Encode(spec ParamSpec) (string, bool, error) {
	value, err := encodeValue(spec, p.resolve(spec))
	if err != nil {
		return "", false, errors.Wrapf(err, "parameter %q", spec.Name)
	}

	if value == "" {
		if spec.Required {
			return "", false, errors.Wrapf(ErrMissingParameter, "parameter %q", spec.Name)
		}
		return "", false, nil
	}

	return value, true, nil
}

func encodeValue(spec ParamSpec, v any) (string, error) {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return "", nil
	}

	switch spec.Type {
	case TypeNumber:
		n, err := toNumber(v)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil

	case TypeDateTime:
		t, err := ParseTime(v)
		if err != nil {
			return "", err
		}
		return search.FormatTime(t), nil

	case TypeOptions:
		s, err := toString(v)
		if err != nil {
			return "", err
		}
		if len(spec.Options) == 0 {
			return s, nil
		}
		for _, opt := range spec.Options {
			if opt.Value == s {
				return s, nil
			}
		}
		return "", errors.Wrapf(ErrInvalidParameter, "%q is not one of the allowed values", s)

	case TypeBoolean:
		b, err := toBool(v)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil

	default:
		return toString(v)
	}
}

// ParseTime reads a dateTime parameter value.
//
// Strings may be RFC 3339 (with or without fractional seconds) or one of
// YYYY-MM-DDTHH:MM[:SS] and YYYY-MM-DD, which are taken as UTC.
func ParseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
	case string:
		s := strings.TrimSpace(t)
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return parsed, nil
		}
		for _, layout := range localTimeLayouts {
			if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, errors.Wrapf(ErrInvalidTime, "cannot parse %q", s)
	}

	return time.Time{}, errors.Wrapf(ErrInvalidTime, "unsupported value of type %T", v)
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidParameter, "%q is not a number", n.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidParameter, "%q is not a number", n)
		}
		return f, nil
	}

	return 0, errors.Wrapf(ErrInvalidParameter, "unsupported number of type %T", v)
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	case bool:
		return strconv.FormatBool(s), nil
	case []string:
		return strings.Join(s, ","), nil
	case []any:
		parts := make([]string, 0, len(s))
		for _, elem := range s {
			part, err := toString(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ","), nil
	}

	if n, err := toNumber(v); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}

	return "", errors.Wrapf(ErrInvalidParameter, "unsupported value of type %T", v)
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, errors.Wrapf(ErrInvalidParameter, "%q is not a boolean", b)
		}
		return parsed, nil
	}

	return false, errors.Wrapf(ErrInvalidParameter, "unsupported boolean of type %T", v)
}
