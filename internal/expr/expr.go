// Package expr resolves per-item parameter expressions.
//
// A parameter value that is a string starting with "=" is an expression.
// Every {{ ... }} block inside it is evaluated as JavaScript with $json
// bound to the current item and $index to its position. When the whole
// value is a single block the evaluated value is returned as is;
// otherwise the blocks are interpolated into a string.
//
//	"={{ $json.ip }}"                  -> "8.8.8.8"
//	"={{ $index * 10 }}"               -> int64(20)
//	"=services.port: {{ $json.port }}" -> "services.port: 443"
package expr

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dop251/goja"
)

// DefaultLimit bounds the evaluation time of one block.
const DefaultLimit = time.Second

// ErrExpression wraps every evaluation failure.
var ErrExpression = errors.New("expression evaluation failed")

// Scope is the data visible to expressions of one item.
type Scope struct {
	JSON  map[string]any
	Index int
}

// Evaluator evaluates expressions for one item. It is not safe for
// concurrent use.
type Evaluator struct {
	vm    *goja.Runtime
	limit time.Duration
}

// New creates an evaluator bound to scope.
func New(scope Scope) (*Evaluator, error) {
	vm := goja.New()

	item := scope.JSON
	if item == nil {
		item = map[string]any{}
	}
	if err := vm.Set("$json", item); err != nil {
		return nil, errors.Wrap(err, "failed to set $json")
	}
	if err := vm.Set("$index", scope.Index); err != nil {
		return nil, errors.Wrap(err, "failed to set $index")
	}

	return &Evaluator{vm: vm, limit: DefaultLimit}, nil
}

// IsExpression reports whether v is an expression string.
func IsExpression(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "=")
}

// Resolve resolves v. Maps and slices are resolved element by element;
// other non-expression values are returned unchanged.
func (e *Evaluator) Resolve(v any) (any, error) {
	switch val := v.(type) {
	case string:
		if !IsExpression(val) {
			return val, nil
		}
		return e.template(val[1:])
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			resolved, err := e.Resolve(elem)
			if err != nil {
				return nil, errors.Wrapf(err, "%s", k)
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			resolved, err := e.Resolve(elem)
			if err != nil {
				return nil, errors.Wrapf(err, "[%d]", i)
			}
			out[i] = resolved
		}
		return out, nil
	}
	return v, nil
}

// ResolveAll resolves every value of params into a new map.
func ResolveAll(params map[string]any, scope Scope) (map[string]any, error) {
	e, err := New(scope)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(params))
	for name, v := range params {
		resolved, err := e.Resolve(v)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %q", name)
		}
		out[name] = resolved
	}
	return out, nil
}

func (e *Evaluator) template(s string) (any, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{{") && strings.HasSuffix(trimmed, "}}") &&
		strings.Count(trimmed, "{{") == 1 {
		return e.eval(trimmed[2 : len(trimmed)-2])
	}

	var b strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			return nil, errors.Wrapf(ErrExpression, "unterminated {{ in %q", s)
		}

		b.WriteString(rest[:start])
		value, err := e.eval(rest[start+2 : start+end])
		if err != nil {
			return nil, err
		}
		if value != nil {
			b.WriteString(fmt.Sprint(value))
		}
		rest = rest[start+end+2:]
	}

	return b.String(), nil
}

func (e *Evaluator) eval(code string) (any, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.Wrap(ErrExpression, "empty expression")
	}

	timer := time.AfterFunc(e.limit, func() {
		e.vm.Interrupt("timeout")
	})
	defer timer.Stop()

	result, err := e.vm.RunString("(function() {\n return " + code + "\n})()")
	if err != nil {
		e.vm.ClearInterrupt()
		return nil, errors.Wrapf(ErrExpression, "%s: %v", code, err)
	}

	return result.Export(), nil
}
