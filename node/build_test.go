package node_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-censys/api/search"
	"github.com/lexfrei/go-censys/node"
)

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		op     node.Operation
		params node.Params
		want   *search.Request
	}{
		{
			name:   "search hosts applies defaults",
			op:     node.OpSearchHosts,
			params: node.Params{"query": "services.service_name: HTTP"},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/search",
				Query: url.Values{
					"q":             {"services.service_name: HTTP"},
					"per_page":      {"50"},
					"virtual_hosts": {"EXCLUDE"},
					"sort":          {"RELEVANCE"},
				},
			},
		},
		{
			name: "search hosts with every parameter",
			op:   node.OpSearchHosts,
			params: node.Params{
				"query":        "location.country: Germany",
				"perPage":      "25",
				"virtualHosts": "ONLY",
				"sort":         "DESCENDING",
				"fields":       []any{"ip", "services.port"},
				"cursor":       "eyJhZnRlciI6WzFdfQ==",
			},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/search",
				Query: url.Values{
					"q":             {"location.country: Germany"},
					"per_page":      {"25"},
					"virtual_hosts": {"ONLY"},
					"sort":          {"DESCENDING"},
					"fields":        {"ip,services.port"},
					"cursor":        {"eyJhZnRlciI6WzFdfQ=="},
				},
			},
		},
		{
			name: "empty optional parameters are omitted",
			op:   node.OpSearchHosts,
			params: node.Params{
				"query":  "*",
				"sort":   "",
				"fields": "",
				"cursor": "  ",
			},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/search",
				Query: url.Values{
					"q":             {"*"},
					"per_page":      {"50"},
					"virtual_hosts": {"EXCLUDE"},
				},
			},
		},
		{
			name:   "aggregate hosts",
			op:     node.OpAggregateHosts,
			params: node.Params{"query": "*", "field": "services.port", "numBuckets": 10.0},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/aggregate",
				Query: url.Values{
					"q":             {"*"},
					"field":         {"services.port"},
					"num_buckets":   {"10"},
					"virtual_hosts": {"EXCLUDE"},
				},
			},
		},
		{
			name:   "get host normalises at time",
			op:     node.OpGetHost,
			params: node.Params{"ipAddress": "8.8.8.8", "atTime": "2024-01-01"},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/8.8.8.8",
				Query:  url.Values{"at_time": {"2024-01-01T00:00:00.000Z"}},
			},
		},
		{
			name:   "get host without at time",
			op:     node.OpGetHost,
			params: node.Params{"ipAddress": "8.8.8.8"},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/8.8.8.8",
				Query:  url.Values{},
			},
		},
		{
			name:   "get host names uses its own page size",
			op:     node.OpGetHostNames,
			params: node.Params{"ipAddress": "1.1.1.1", "cursorNames": "next"},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/1.1.1.1/names",
				Query:  url.Values{"per_page": {"100"}, "cursor": {"next"}},
			},
		},
		{
			name: "get host certificates converts time range",
			op:   node.OpGetHostCertificates,
			params: node.Params{
				"ipAddress": "1.1.1.1",
				"startTime": "2024-01-01T10:00:00+02:00",
				"endTime":   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/hosts/1.1.1.1/certificates",
				Query: url.Values{
					"per_page":   {"50"},
					"start_time": {"2024-01-01T08:00:00.000Z"},
					"end_time":   {"2024-02-01T00:00:00.000Z"},
				},
			},
		},
		{
			name:   "search certificates has no default sort",
			op:     node.OpSearchCertificates,
			params: node.Params{"query": "parsed.subject.country: US"},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/certificates/search",
				Query:  url.Values{"q": {"parsed.subject.country: US"}, "per_page": {"50"}},
			},
		},
		{
			name:   "aggregate certificates",
			op:     node.OpAggregateCertificates,
			params: node.Params{"query": "*", "field": "parsed.issuer.organization"},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/certificates/aggregate",
				Query: url.Values{
					"q":           {"*"},
					"field":       {"parsed.issuer.organization"},
					"num_buckets": {"50"},
				},
			},
		},
		{
			name:   "get certificate",
			op:     node.OpGetCertificate,
			params: node.Params{"fingerprint": "fb444eb8e68437bae06232b9f5091bccff62a768ca09e92eb5c9c2cf9d17c426"},
			want: &search.Request{
				Method: http.MethodGet,
				Path:   "/v2/certificates/fb444eb8e68437bae06232b9f5091bccff62a768ca09e92eb5c9c2cf9d17c426",
				Query:  url.Values{},
			},
		},
		{
			name: "list tags",
			op:   node.OpListTags,
			want: &search.Request{Method: http.MethodGet, Path: "/v2/tags", Query: url.Values{}},
		},
		{
			name:   "create tag with color",
			op:     node.OpCreateTag,
			params: node.Params{"tagName": "watchlist", "tagColor": "ff6113"},
			want: &search.Request{
				Method: http.MethodPost,
				Path:   "/v2/tags",
				Query:  url.Values{},
				Body:   search.Object{"name": "watchlist", "metadata": search.Object{"color": "ff6113"}},
			},
		},
		{
			name:   "create tag without color has no metadata",
			op:     node.OpCreateTag,
			params: node.Params{"tagName": "watchlist"},
			want: &search.Request{
				Method: http.MethodPost,
				Path:   "/v2/tags",
				Query:  url.Values{},
				Body:   search.Object{"name": "watchlist"},
			},
		},
		{
			name:   "update tag",
			op:     node.OpUpdateTag,
			params: node.Params{"tagId": "123", "tagName": "renamed", "tagColor": ""},
			want: &search.Request{
				Method: http.MethodPut,
				Path:   "/v2/tags/123",
				Query:  url.Values{},
				Body:   search.Object{"name": "renamed"},
			},
		},
		{
			name:   "delete tag",
			op:     node.OpDeleteTag,
			params: node.Params{"tagId": "123"},
			want:   &search.Request{Method: http.MethodDelete, Path: "/v2/tags/123", Query: url.Values{}},
		},
		{
			name:   "add host tag escapes segments",
			op:     node.OpAddHostTag,
			params: node.Params{"ipAddress": "2001:db8::1", "tagId": "a/b"},
			want:   &search.Request{Method: http.MethodPut, Path: "/v2/hosts/2001:db8::1/tags/a%2Fb", Query: url.Values{}},
		},
		{
			name:   "remove certificate tag",
			op:     node.OpRemoveCertTag,
			params: node.Params{"certificateFingerprint": "abc", "tagId": "9"},
			want:   &search.Request{Method: http.MethodDelete, Path: "/v2/certificates/abc/tags/9", Query: url.Values{}},
		},
		{
			name:   "tag certificates",
			op:     node.OpGetTagCertificates,
			params: node.Params{"tagId": "9"},
			want:   &search.Request{Method: http.MethodGet, Path: "/v2/tags/9/certificates", Query: url.Values{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := node.BuildRequest(tt.op, tt.params)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildRequestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		op      node.Operation
		params  node.Params
		wantErr error
	}{
		{name: "unknown operation", op: "scanEverything", wantErr: node.ErrUnknownOperation},
		{name: "missing query", op: node.OpSearchHosts, params: node.Params{}, wantErr: node.ErrMissingParameter},
		{name: "empty ip address", op: node.OpGetHost, params: node.Params{"ipAddress": ""}, wantErr: node.ErrMissingParameter},
		{name: "missing tag name", op: node.OpCreateTag, params: node.Params{"tagColor": "fff"}, wantErr: node.ErrMissingParameter},
		{
			name:    "missing aggregate field",
			op:      node.OpAggregateHosts,
			params:  node.Params{"query": "*"},
			wantErr: node.ErrMissingParameter,
		},
		{
			name:    "unparseable time",
			op:      node.OpGetHost,
			params:  node.Params{"ipAddress": "8.8.8.8", "atTime": "yesterday"},
			wantErr: node.ErrInvalidTime,
		},
		{
			name:    "not a number",
			op:      node.OpSearchHosts,
			params:  node.Params{"query": "*", "perPage": "lots"},
			wantErr: node.ErrInvalidParameter,
		},
		{
			name:    "option outside the allowed set",
			op:      node.OpSearchHosts,
			params:  node.Params{"query": "*", "virtualHosts": "SOMETIMES"},
			wantErr: node.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := node.BuildRequest(tt.op, tt.params)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildRequestIsPure(t *testing.T) {
	t.Parallel()

	params := node.Params{"tagName": "a", "tagColor": "b"}
	first, err := node.BuildRequest(node.OpCreateTag, params)
	require.NoError(t, err)
	second, err := node.BuildRequest(node.OpCreateTag, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, node.Params{"tagName": "a", "tagColor": "b"}, params)
}
