package node

import (
	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-censys/api/search"
)

// CredentialTypeName identifies the Censys credential type.
const CredentialTypeName = "censysApi"

// Credentials authenticate against the Censys Search API using HTTP
// Basic auth.
type Credentials struct {
	APIID     string `json:"apiId"`
	APISecret string `json:"apiSecret"`
}

// Validate reports ErrInvalidCredentials when either field is empty.
func (c Credentials) Validate() error {
	switch {
	case c.APIID == "" && c.APISecret == "":
		return errors.Wrap(ErrInvalidCredentials, "API ID and API secret are empty")
	case c.APIID == "":
		return errors.Wrap(ErrInvalidCredentials, "API ID is empty")
	case c.APISecret == "":
		return errors.Wrap(ErrInvalidCredentials, "API secret is empty")
	}
	return nil
}

// CredentialProperty is one field of the credential form.
type CredentialProperty struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Password    bool   `json:"password,omitempty"`
}

// CredentialTest is the request issued to check a credential.
type CredentialTest struct {
	BaseURL string `json:"baseURL"`
	Method  string `json:"method"`
	Path    string `json:"path"`
}

// CredentialDescriptor describes the credential type to a host.
type CredentialDescriptor struct {
	Name             string               `json:"name"`
	DisplayName      string               `json:"displayName"`
	DocumentationURL string               `json:"documentationUrl"`
	Properties       []CredentialProperty `json:"properties"`
	// Auth maps apiId to the Basic auth username and apiSecret to the password.
	Auth string         `json:"auth"`
	Test CredentialTest `json:"test"`
}

// CredentialType returns the descriptor of the Censys credential type.
func CredentialType() CredentialDescriptor {
	return CredentialDescriptor{
		Name:             CredentialTypeName,
		DisplayName:      "Censys API",
		DocumentationURL: "https://search.censys.io/account/api",
		Properties: []CredentialProperty{
			{
				Name:        "apiId",
				DisplayName: "API ID",
				Description: "Your Censys API ID",
				Required:    true,
			},
			{
				Name:        "apiSecret",
				DisplayName: "API Secret",
				Description: "Your Censys API Secret",
				Required:    true,
				Password:    true,
			},
		},
		Auth: "basic",
		Test: CredentialTest{
			BaseURL: search.DefaultBaseURL,
			Method:  "GET",
			Path:    search.AccountPath,
		},
	}
}
