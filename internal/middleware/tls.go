package middleware

import (
	"crypto/tls"
	"net/http"
)

// TLSConfig returns a middleware that installs config on the innermost
// *http.Transport, cloning it so shared transports stay untouched.
// It is meant to sit last in the chain, directly above the transport.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if config == nil {
			return next
		}

		transport, ok := next.(*http.Transport)
		if !ok {
			defaultTransport, ok := http.DefaultTransport.(*http.Transport)
			if !ok {
				return next
			}
			transport = defaultTransport
		}

		transport = transport.Clone()
		transport.TLSClientConfig = config

		return transport
	}
}
