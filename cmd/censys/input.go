package main

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/lexfrei/go-censys/internal/expr"
	"github.com/lexfrei/go-censys/node"
)

// loadItems reads a JSON or YAML list of objects. A single object is
// taken as a one-item list; an empty path yields one empty item.
func loadItems(path string) ([]map[string]any, error) {
	if path == "" {
		return []map[string]any{{}}, nil
	}

	raw, err := readInput(path)
	if err != nil {
		return nil, err
	}

	var list []map[string]any
	if err := yaml.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []map[string]any{}, nil
		}
		return list, nil
	}

	var single map[string]any
	if err := yaml.Unmarshal(raw, &single); err != nil {
		return nil, errors.Wrapf(err, "%s: expected a list of objects or an object", path)
	}
	return []map[string]any{single}, nil
}

// loadParams reads a JSON or YAML object of parameter values.
func loadParams(path string) (map[string]any, error) {
	params := map[string]any{}
	if path == "" {
		return params, nil
	}

	raw, err := readInput(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, &params); err != nil {
		return nil, errors.Wrapf(err, "%s: expected an object", path)
	}
	if params == nil {
		params = map[string]any{}
	}
	return params, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		return raw, errors.Wrap(err, "failed to read stdin")
	}

	raw, err := os.ReadFile(path)
	return raw, errors.Wrapf(err, "failed to read %s", path)
}

// setParam applies one name=value assignment. Dotted names address
// nested collections ("additionalOptions.timeout=5000"). A value holding
// a {{ }} block is an expression even without the leading "=".
func setParam(params map[string]any, assignment string) error {
	name, value, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return errors.Newf("invalid parameter %q, expected name=value", assignment)
	}

	keys := strings.Split(name, ".")
	target := params
	for _, key := range keys[:len(keys)-1] {
		child, ok := target[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			target[key] = child
		}
		target = child
	}
	if strings.Contains(value, "{{") && !expr.IsExpression(value) {
		value = "=" + value
	}
	target[keys[len(keys)-1]] = value

	return nil
}

// buildItems resolves the parameter template once per input item.
func buildItems(params map[string]any, inputs []map[string]any) ([]node.Item, error) {
	items := make([]node.Item, len(inputs))
	for i, input := range inputs {
		resolved, err := expr.ResolveAll(params, expr.Scope{JSON: input, Index: i})
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		items[i] = node.Item{Params: resolved}
	}
	return items, nil
}
