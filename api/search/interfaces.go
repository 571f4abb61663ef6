package search

import (
	"context"
	"time"
)

// SearchAPIClient defines the interface for Censys Search API operations.
// This interface enables consumers to create mock implementations for testing.
//
// The Search API covers:
//   - Hosts (search, aggregate, lookup, names, certificates)
//   - Certificates (search, aggregate, lookup)
//   - Tags and their assignment to hosts and certificates
//
// Example usage with testify/mock:
//
//	type MockClient struct {
//	    mock.Mock
//	}
//
//	func (m *MockClient) GetHost(ctx context.Context, ip string, atTime time.Time) (search.Object, error) {
//	    args := m.Called(ctx, ip, atTime)
//	    return args.Get(0).(search.Object), args.Error(1)
//	}
//
//nolint:revive // SearchAPIClient is intentionally explicit to avoid confusion with Client struct
type SearchAPIClient interface {
	// Do sends an arbitrary request relative to the base URL.
	Do(ctx context.Context, req *Request) (Object, error)

	// Account fetches the account bound to the credentials.
	Account(ctx context.Context) (Object, error)

	// Hosts operations

	SearchHosts(ctx context.Context, params *SearchHostsParams) (Object, error)
	AggregateHosts(ctx context.Context, params *AggregateParams) (Object, error)
	GetHost(ctx context.Context, ip string, atTime time.Time) (Object, error)
	GetHostNames(ctx context.Context, ip string, params *PageParams) (Object, error)
	GetHostCertificates(ctx context.Context, ip string, params *HostCertificatesParams) (Object, error)

	// Certificates operations

	SearchCertificates(ctx context.Context, params *SearchCertificatesParams) (Object, error)
	AggregateCertificates(ctx context.Context, params *AggregateParams) (Object, error)
	GetCertificate(ctx context.Context, fingerprint string) (Object, error)

	// Tags operations

	ListTags(ctx context.Context) (Object, error)
	CreateTag(ctx context.Context, tag TagInput) (Object, error)
	GetTag(ctx context.Context, tagID string) (Object, error)
	UpdateTag(ctx context.Context, tagID string, tag TagInput) (Object, error)
	DeleteTag(ctx context.Context, tagID string) error
	ListTagHosts(ctx context.Context, tagID string) (Object, error)
	ListTagCertificates(ctx context.Context, tagID string) (Object, error)

	// Tag assignment operations

	GetHostTags(ctx context.Context, ip string) (Object, error)
	AddHostTag(ctx context.Context, ip, tagID string) error
	RemoveHostTag(ctx context.Context, ip, tagID string) error
	GetCertificateTags(ctx context.Context, fingerprint string) (Object, error)
	AddCertificateTag(ctx context.Context, fingerprint, tagID string) error
	RemoveCertificateTag(ctx context.Context, fingerprint, tagID string) error
}
