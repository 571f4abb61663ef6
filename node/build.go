package node

import (
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-censys/api/search"
)

// BuildRequest turns the parameters of one item into the request for op.
// It performs no I/O.
func BuildRequest(op Operation, params Params) (*search.Request, error) {
	desc, ok := Lookup(op)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", op)
	}
	return desc.BuildRequest(params)
}

// BuildRequest turns the parameters of one item into a request.
func (d Descriptor) BuildRequest(params Params) (*search.Request, error) {
	pathValues := make(map[string]string)
	query := url.Values{}
	var body search.Object

	for _, spec := range d.Params {
		value, present, err := params.Encode(spec)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}

		switch spec.Location {
		case InPath:
			pathValues[spec.Name] = value
		case InQuery:
			query.Set(spec.Key, value)
		case InBody:
			if body == nil {
				body = search.Object{}
			}
			setNested(body, spec.Key, value)
		}
	}

	path, err := expandPath(d.Path, pathValues)
	if err != nil {
		return nil, err
	}

	req := &search.Request{
		Method: d.Method,
		Path:   path,
		Query:  query,
	}
	if body != nil {
		req.Body = body
	}

	return req, nil
}

func expandPath(template string, values map[string]string) (string, error) {
	segments := strings.Split(strings.TrimPrefix(template, "/"), "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := seg[1 : len(seg)-1]
		value, ok := values[name]
		if !ok {
			return "", errors.Wrapf(ErrMissingParameter, "path parameter %q", name)
		}
		segments[i] = value
	}
	return search.Path(segments...), nil
}

func setNested(obj search.Object, key, value string) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := obj[part].(search.Object)
		if !ok {
			child = search.Object{}
			obj[part] = child
		}
		obj = child
	}
	obj[parts[len(parts)-1]] = value
}
