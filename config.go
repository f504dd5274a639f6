package appleauth

import (
	"github.com/dmitrymomot/appleauth/pkg/nonce"
)

// Defaults the Apple flow is built around.
const (
	// DefaultIssuer is Apple's identity provider root. The authorize, token,
	// and signing-key endpoints all live under it.
	DefaultIssuer = "https://appleid.apple.com"

	// DefaultScope requests the two pieces of profile data Apple can share.
	DefaultScope = "email name"
)

// Config carries the Apple developer credentials and flow settings for one
// adapter instance. It is read once by New and never mutated afterwards.
type Config struct {
	// ClientID is the Services ID registered for web sign-in.
	ClientID string `env:"APPLE_CLIENT_ID,required"`

	// TeamID is the Apple Developer team identifier.
	TeamID string `env:"APPLE_TEAM_ID,required"`

	// KeyID identifies the signing key downloaded from the developer portal.
	KeyID string `env:"APPLE_KEY_ID,required"`

	// PrivateKey is the PEM-encoded contents of the .p8 signing key.
	PrivateKey string `env:"APPLE_PRIVATE_KEY,required"`

	// AuthorizedClientIDs lists extra audiences accepted in identity tokens
	// besides ClientID, e.g. the bundle id of a native app whose logins land
	// on the same backend.
	AuthorizedClientIDs []string `env:"APPLE_AUTHORIZED_CLIENT_IDS" envSeparator:","`

	// NonceMode selects the replay-protection strategy: session (default),
	// param, or ignore.
	NonceMode nonce.Mode `env:"APPLE_NONCE_MODE" envDefault:"session"`

	// Issuer is the identity provider root. Production always talks to
	// DefaultIssuer; tests point it at a fake provider.
	Issuer string `env:"APPLE_ISSUER" envDefault:"https://appleid.apple.com"`

	// RedirectURI is the registered callback URL. It is sent with the
	// authorize request and used as the rebuild target when a form_post
	// callback arrives without an explicit redirect_uri of its own.
	RedirectURI string `env:"APPLE_REDIRECT_URI"`

	// Scope is the space-separated scope list for authorize requests.
	Scope string `env:"APPLE_SCOPE" envDefault:"email name"`
}

// Validate reports missing credentials or an unrecognized nonce mode.
func (c Config) Validate() error {
	if c.ClientID == "" || c.TeamID == "" || c.KeyID == "" || c.PrivateKey == "" {
		return ErrMissingCredentials
	}
	return c.NonceMode.Validate()
}

// withDefaults fills the optional fields a zero-value config leaves empty.
func (c Config) withDefaults() Config {
	if c.Issuer == "" {
		c.Issuer = DefaultIssuer
	}
	if c.Scope == "" {
		c.Scope = DefaultScope
	}
	return c
}
