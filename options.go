package appleauth

import (
	"net/http"

	"github.com/dmitrymomot/appleauth/pkg/jwks"
)

// Option configures an Adapter during New.
type Option func(*Adapter)

// WithHTTPClient sets the HTTP client used for provider round trips, both the
// token endpoint and signing-key fetches. Nil is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		if client != nil {
			a.httpClient = client
		}
	}
}

// WithOAuth2Client replaces the default token-endpoint client. Tests use this
// to cut the network out of the flow. Nil is ignored.
func WithOAuth2Client(client OAuth2Client) Option {
	return func(a *Adapter) {
		if client != nil {
			a.oauth = client
		}
	}
}

// WithKeySet shares a signing-key cache across adapters. Several adapters for
// different Services IDs can reuse one cache since Apple publishes a single
// key set. Nil is ignored.
func WithKeySet(keys *jwks.KeySet) Option {
	return func(a *Adapter) {
		if keys != nil {
			a.keys = keys
		}
	}
}
