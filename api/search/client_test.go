package search_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-censys/api/search"
	"github.com/lexfrei/go-censys/internal/testutil"
)

func newTestClient(t *testing.T, baseURL string) *search.Client {
	t.Helper()

	client, err := search.NewWithConfig(&search.ClientConfig{
		APIID:     testutil.APIID,
		APISecret: testutil.APISecret,
		BaseURL:   baseURL,
	})
	require.NoError(t, err)
	return client
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *search.ClientConfig
		wantErr error
	}{
		{name: "nil config", cfg: nil},
		{name: "missing id", cfg: &search.ClientConfig{APISecret: "s"}, wantErr: search.ErrMissingCredentials},
		{name: "missing secret", cfg: &search.ClientConfig{APIID: "i"}, wantErr: search.ErrMissingCredentials},
		{name: "bad base url", cfg: &search.ClientConfig{APIID: "i", APISecret: "s", BaseURL: "::nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := search.NewWithConfig(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, client)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	client, err := search.New("id", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestAccount(t *testing.T) {
	t.Parallel()

	srv := testutil.NewMockServer(t, "/v1/account",
		`{"email":"analyst@example.com","login":"analyst","quota":{"used":3,"allowance":250}}`, http.StatusOK)
	client := newTestClient(t, srv.URL)

	account, err := client.Account(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "analyst", account["login"])
}

func TestAccountUnauthorized(t *testing.T) {
	t.Parallel()

	srv := testutil.NewRecordingServer(t, nil)
	client, err := search.NewWithConfig(&search.ClientConfig{
		APIID:     "wrong",
		APISecret: "credentials",
		BaseURL:   srv.URL,
	})
	require.NoError(t, err)

	_, err = client.Account(context.Background())
	require.Error(t, err)

	var apiErr *search.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Status)
	assert.Contains(t, apiErr.Error(), "valid API ID")
	assert.Empty(t, srv.Requests())
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 12, 30, 0, 0, time.FixedZone("CET", 3600))
	tag := search.TagInput{Name: "watch", Color: "#ff0000"}

	tests := []struct {
		name   string
		call   func(ctx context.Context, c *search.Client) error
		method string
		path   string
		query  url.Values
		body   map[string]any
	}{
		{
			name: "search hosts",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.SearchHosts(ctx, &search.SearchHostsParams{
					Query:        "services.port: 22",
					PerPage:      10,
					VirtualHosts: search.VirtualHostsInclude,
					Fields:       []string{"ip", "location.country"},
				})
				return err
			},
			method: http.MethodGet,
			path:   "/v2/hosts/search",
			query: url.Values{
				"q":             {"services.port: 22"},
				"per_page":      {"10"},
				"virtual_hosts": {"INCLUDE"},
				"fields":        {"ip,location.country"},
			},
		},
		{
			name: "aggregate hosts",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.AggregateHosts(ctx, &search.AggregateParams{Query: "*", Field: "services.port", NumBuckets: 5})
				return err
			},
			method: http.MethodGet,
			path:   "/v2/hosts/aggregate",
			query:  url.Values{"q": {"*"}, "field": {"services.port"}, "num_buckets": {"5"}},
		},
		{
			name: "get host at time",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.GetHost(ctx, "8.8.8.8", start)
				return err
			},
			method: http.MethodGet,
			path:   "/v2/hosts/8.8.8.8",
			query:  url.Values{"at_time": {"2024-01-01T00:00:00.000Z"}},
		},
		{
			name: "get host ipv6 is escaped",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.GetHost(ctx, "2001:db8::1", time.Time{})
				return err
			},
			method: http.MethodGet,
			path:   "/v2/hosts/2001:db8::1",
			query:  url.Values{},
		},
		{
			name: "host names",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.GetHostNames(ctx, "1.1.1.1", &search.PageParams{PerPage: 100, Cursor: "abc"})
				return err
			},
			method: http.MethodGet,
			path:   "/v2/hosts/1.1.1.1/names",
			query:  url.Values{"per_page": {"100"}, "cursor": {"abc"}},
		},
		{
			name: "host certificates",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.GetHostCertificates(ctx, "1.1.1.1", &search.HostCertificatesParams{
					StartTime: start,
					EndTime:   end,
				})
				return err
			},
			method: http.MethodGet,
			path:   "/v2/hosts/1.1.1.1/certificates",
			query: url.Values{
				"start_time": {"2024-01-01T00:00:00.000Z"},
				"end_time":   {"2024-02-01T11:30:00.000Z"},
			},
		},
		{
			name: "search certificates",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.SearchCertificates(ctx, &search.SearchCertificatesParams{Query: "parsed.subject.common_name: example.com"})
				return err
			},
			method: http.MethodGet,
			path:   "/v2/certificates/search",
			query:  url.Values{"q": {"parsed.subject.common_name: example.com"}},
		},
		{
			name: "create tag",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.CreateTag(ctx, tag)
				return err
			},
			method: http.MethodPost,
			path:   "/v2/tags",
			query:  url.Values{},
			body:   map[string]any{"name": "watch", "metadata": map[string]any{"color": "#ff0000"}},
		},
		{
			name: "update tag without color",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.UpdateTag(ctx, "t1", search.TagInput{Name: "renamed"})
				return err
			},
			method: http.MethodPut,
			path:   "/v2/tags/t1",
			query:  url.Values{},
			body:   map[string]any{"name": "renamed"},
		},
		{
			name: "delete tag",
			call: func(ctx context.Context, c *search.Client) error {
				return c.DeleteTag(ctx, "t1")
			},
			method: http.MethodDelete,
			path:   "/v2/tags/t1",
			query:  url.Values{},
		},
		{
			name: "add certificate tag",
			call: func(ctx context.Context, c *search.Client) error {
				return c.AddCertificateTag(ctx, "abcdef", "t 2")
			},
			method: http.MethodPut,
			path:   "/v2/certificates/abcdef/tags/t%202",
			query:  url.Values{},
		},
		{
			name: "tag hosts",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.ListTagHosts(ctx, "t1")
				return err
			},
			method: http.MethodGet,
			path:   "/v2/tags/t1/hosts",
			query:  url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := testutil.NewRecordingServer(t, nil)
			client := newTestClient(t, srv.URL)

			require.NoError(t, tt.call(context.Background(), client))

			got := srv.Last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			if diff := cmp.Diff(tt.query, got.Query); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.body, got.Body); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDoDecodesNonObject(t *testing.T) {
	t.Parallel()

	srv := testutil.NewMockServer(t, "/v2/tags", `[{"id":"t1"}]`, http.StatusOK)
	client := newTestClient(t, srv.URL)

	obj, err := client.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": "t1"}}, obj["data"])
}

func TestDoRejectsRelativePath(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.Do(context.Background(), &search.Request{Path: "v2/tags"})
	require.Error(t, err)

	_, err = client.Do(context.Background(), nil)
	require.Error(t, err)
}

func TestDoNotFound(t *testing.T) {
	t.Parallel()

	srv := testutil.NewMockServer(t, "/v2/hosts/10.0.0.1",
		`{"code":404,"status":"Not Found","error":"The requested IP is not in the dataset."}`, http.StatusNotFound)
	client := newTestClient(t, srv.URL)

	_, err := client.GetHost(context.Background(), "10.0.0.1", time.Time{})
	require.Error(t, err)

	var apiErr *search.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "The requested IP is not in the dataset.", apiErr.Message)
	assert.Contains(t, err.Error(), "GET /v2/hosts/10.0.0.1")
}

func TestRetryOnServerError(t *testing.T) {
	t.Parallel()

	srv := testutil.NewMockServerSequence(t, []testutil.Response{
		{Body: `{"code":503,"status":"Service Unavailable"}`, StatusCode: http.StatusServiceUnavailable},
		{Body: `{"code":200,"status":"OK","result":{"ip":"8.8.8.8"}}`, StatusCode: http.StatusOK},
	})

	client, err := search.NewWithConfig(&search.ClientConfig{
		APIID:         testutil.APIID,
		APISecret:     testutil.APISecret,
		BaseURL:       srv.URL,
		MaxRetries:    1,
		RetryWaitTime: time.Millisecond,
	})
	require.NoError(t, err)

	obj, err := client.GetHost(context.Background(), "8.8.8.8", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ip": "8.8.8.8"}, obj["result"])
}

func TestContextDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := testutil.NewRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	})
	defer close(release)

	client, err := search.NewWithConfig(&search.ClientConfig{
		APIID:     testutil.APIID,
		APISecret: testutil.APISecret,
		BaseURL:   srv.URL,
		Timeout:   search.NoTimeout,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.ListTags(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.FixedZone("X", -2*3600))
	assert.Equal(t, "2024-03-05T09:08:09.123Z", search.FormatTime(ts))
	assert.Equal(t, "/v2/certificates/a%2Fb/tags", search.Path("v2", "certificates", "a/b", "tags"))
}
