package search

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the RFC3339 layout, with millisecond precision, used for
// at_time, start_time and end_time.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Virtual host handling for host searches and aggregations.
const (
	VirtualHostsExclude = "EXCLUDE"
	VirtualHostsInclude = "INCLUDE"
	VirtualHostsOnly    = "ONLY"
)

// FormatTime renders t in UTC using TimeFormat.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// Path joins segments into a request path, percent-encoding each one.
//
//	Path("v2", "hosts", "8.8.8.8", "tags") == "/v2/hosts/8.8.8.8/tags"
func Path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

// SearchHostsParams are the query parameters of GET /v2/hosts/search.
type SearchHostsParams struct {
	Query        string
	PerPage      int
	VirtualHosts string
	Sort         string
	Fields       []string
	Cursor       string
}

// SearchCertificatesParams are the query parameters of GET /v2/certificates/search.
type SearchCertificatesParams struct {
	Query   string
	PerPage int
	Sort    []string
	Fields  []string
	Cursor  string
}

// AggregateParams are the query parameters of the aggregate endpoints.
// VirtualHosts only applies to hosts.
type AggregateParams struct {
	Query        string
	Field        string
	NumBuckets   int
	VirtualHosts string
}

// PageParams paginate list endpoints.
type PageParams struct {
	PerPage int
	Cursor  string
}

// HostCertificatesParams are the query parameters of GET /v2/hosts/{ip}/certificates.
type HostCertificatesParams struct {
	PerPage   int
	StartTime time.Time
	EndTime   time.Time
	Cursor    string
}

// TagInput is the body of tag creation and update requests.
type TagInput struct {
	Name  string
	Color string
}

// Body renders the request body; metadata is only present with a color.
func (t TagInput) Body() Object {
	body := Object{"name": t.Name}
	if t.Color != "" {
		body["metadata"] = Object{"color": t.Color}
	}
	return body
}

type query url.Values

func (q query) str(key, value string) {
	if value != "" {
		url.Values(q).Set(key, value)
	}
}

func (q query) num(key string, value int) {
	if value > 0 {
		url.Values(q).Set(key, strconv.Itoa(value))
	}
}

func (q query) list(key string, values []string) {
	if len(values) > 0 {
		url.Values(q).Set(key, strings.Join(values, ","))
	}
}

func (q query) time(key string, value time.Time) {
	if !value.IsZero() {
		url.Values(q).Set(key, FormatTime(value))
	}
}

func (c *Client) get(ctx context.Context, path string, q query) (Object, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: url.Values(q)})
}

// SearchHosts searches hosts matching a Censys Search Language query.
func (c *Client) SearchHosts(ctx context.Context, params *SearchHostsParams) (Object, error) {
	q := query{}
	if params != nil {
		q.str("q", params.Query)
		q.num("per_page", params.PerPage)
		q.str("virtual_hosts", params.VirtualHosts)
		q.str("sort", params.Sort)
		q.list("fields", params.Fields)
		q.str("cursor", params.Cursor)
	}
	return c.get(ctx, Path("v2", "hosts", "search"), q)
}

// AggregateHosts buckets hosts matching a query by field.
func (c *Client) AggregateHosts(ctx context.Context, params *AggregateParams) (Object, error) {
	q := query{}
	if params != nil {
		q.str("q", params.Query)
		q.str("field", params.Field)
		q.num("num_buckets", params.NumBuckets)
		q.str("virtual_hosts", params.VirtualHosts)
	}
	return c.get(ctx, Path("v2", "hosts", "aggregate"), q)
}

// GetHost fetches a host, optionally as it was at atTime.
func (c *Client) GetHost(ctx context.Context, ip string, atTime time.Time) (Object, error) {
	q := query{}
	q.time("at_time", atTime)
	return c.get(ctx, Path("v2", "hosts", ip), q)
}

// GetHostNames lists names observed for a host.
func (c *Client) GetHostNames(ctx context.Context, ip string, params *PageParams) (Object, error) {
	q := query{}
	if params != nil {
		q.num("per_page", params.PerPage)
		q.str("cursor", params.Cursor)
	}
	return c.get(ctx, Path("v2", "hosts", ip, "names"), q)
}

// GetHostCertificates lists certificates presented by a host.
func (c *Client) GetHostCertificates(ctx context.Context, ip string, params *HostCertificatesParams) (Object, error) {
	q := query{}
	if params != nil {
		q.num("per_page", params.PerPage)
		q.time("start_time", params.StartTime)
		q.time("end_time", params.EndTime)
		q.str("cursor", params.Cursor)
	}
	return c.get(ctx, Path("v2", "hosts", ip, "certificates"), q)
}

// SearchCertificates searches certificates matching a query.
func (c *Client) SearchCertificates(ctx context.Context, params *SearchCertificatesParams) (Object, error) {
	q := query{}
	if params != nil {
		q.str("q", params.Query)
		q.num("per_page", params.PerPage)
		q.list("sort", params.Sort)
		q.list("fields", params.Fields)
		q.str("cursor", params.Cursor)
	}
	return c.get(ctx, Path("v2", "certificates", "search"), q)
}

// AggregateCertificates buckets certificates matching a query by field.
func (c *Client) AggregateCertificates(ctx context.Context, params *AggregateParams) (Object, error) {
	q := query{}
	if params != nil {
		q.str("q", params.Query)
		q.str("field", params.Field)
		q.num("num_buckets", params.NumBuckets)
	}
	return c.get(ctx, Path("v2", "certificates", "aggregate"), q)
}

// GetCertificate fetches a certificate by SHA-256 fingerprint.
func (c *Client) GetCertificate(ctx context.Context, fingerprint string) (Object, error) {
	return c.get(ctx, Path("v2", "certificates", fingerprint), nil)
}

// ListTags lists the tags of the team.
func (c *Client) ListTags(ctx context.Context) (Object, error) {
	return c.get(ctx, Path("v2", "tags"), nil)
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, tag TagInput) (Object, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: Path("v2", "tags"), Body: tag.Body()})
}

// GetTag fetches a tag.
func (c *Client) GetTag(ctx context.Context, tagID string) (Object, error) {
	return c.get(ctx, Path("v2", "tags", tagID), nil)
}

// UpdateTag replaces the name and color of a tag.
func (c *Client) UpdateTag(ctx context.Context, tagID string, tag TagInput) (Object, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: Path("v2", "tags", tagID), Body: tag.Body()})
}

// DeleteTag deletes a tag.
func (c *Client) DeleteTag(ctx context.Context, tagID string) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: Path("v2", "tags", tagID)})
	return err
}

// GetHostTags lists the tags assigned to a host.
func (c *Client) GetHostTags(ctx context.Context, ip string) (Object, error) {
	return c.get(ctx, Path("v2", "hosts", ip, "tags"), nil)
}

// AddHostTag assigns a tag to a host.
func (c *Client) AddHostTag(ctx context.Context, ip, tagID string) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodPut, Path: Path("v2", "hosts", ip, "tags", tagID)})
	return err
}

// RemoveHostTag unassigns a tag from a host.
func (c *Client) RemoveHostTag(ctx context.Context, ip, tagID string) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: Path("v2", "hosts", ip, "tags", tagID)})
	return err
}

// GetCertificateTags lists the tags assigned to a certificate.
func (c *Client) GetCertificateTags(ctx context.Context, fingerprint string) (Object, error) {
	return c.get(ctx, Path("v2", "certificates", fingerprint, "tags"), nil)
}

// AddCertificateTag assigns a tag to a certificate.
func (c *Client) AddCertificateTag(ctx context.Context, fingerprint, tagID string) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodPut, Path: Path("v2", "certificates", fingerprint, "tags", tagID)})
	return err
}

// RemoveCertificateTag unassigns a tag from a certificate.
func (c *Client) RemoveCertificateTag(ctx context.Context, fingerprint, tagID string) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: Path("v2", "certificates", fingerprint, "tags", tagID)})
	return err
}

// ListTagHosts lists the hosts carrying a tag.
func (c *Client) ListTagHosts(ctx context.Context, tagID string) (Object, error) {
	return c.get(ctx, Path("v2", "tags", tagID, "hosts"), nil)
}

// ListTagCertificates lists the certificates carrying a tag.
func (c *Client) ListTagCertificates(ctx context.Context, tagID string) (Object, error) {
	return c.get(ctx, Path("v2", "tags", tagID, "certificates"), nil)
}
