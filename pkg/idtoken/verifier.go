package idtoken

import (
	"context"
	"crypto/rsa"
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultIssuer is the iss value Apple places in every identity token.
const defaultIssuer = "https://appleid.apple.com"

// KeyStore resolves Apple signing keys by key id.
type KeyStore interface {
	Fetch(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// NonceFunc reports the nonce expected for the current login attempt. It is
// invoked only when the token declares nonce support. ok=false means the
// integration performs no nonce verification at all, which is a configuration
// problem once a token demands one.
type NonceFunc func() (value string, ok bool, err error)

// Verifier checks Apple identity tokens against a signing-key store and a set
// of accepted audiences.
type Verifier struct {
	keys      KeyStore
	issuer    string
	audiences []string
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithIssuer overrides the expected iss claim. Defaults to the Apple issuer URL.
func WithIssuer(issuer string) Option {
	return func(v *Verifier) {
		if issuer != "" {
			v.issuer = issuer
		}
	}
}

// WithAuthorizedClientIDs accepts tokens whose aud is one of the given ids in
// addition to the primary client id. Useful when one backend serves logins
// initiated by several registered Apple services.
func WithAuthorizedClientIDs(ids ...string) Option {
	return func(v *Verifier) {
		for _, id := range ids {
			if id != "" && !slices.Contains(v.audiences, id) {
				v.audiences = append(v.audiences, id)
			}
		}
	}
}

// New creates a Verifier that accepts tokens minted for clientID.
func New(keys KeyStore, clientID string, opts ...Option) (*Verifier, error) {
	if keys == nil || clientID == "" {
		return nil, ErrMissingConfig
	}

	v := &Verifier{
		keys:      keys,
		issuer:    defaultIssuer,
		audiences: []string{clientID},
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Verify runs the full pipeline over a compact token and returns its claims.
// Failures are distinguishable: ErrMalformedToken for undecodable input,
// ErrMissingKeyID/ErrKeyUnavailable for key resolution, ErrInvalidSignature
// for cryptographic failure, ClaimError for the first failing claim, and
// ErrNonceUnavailable when the token demands a nonce check that nonce cannot
// provide. nonce may be nil for integrations that never verify nonces.
func (v *Verifier) Verify(ctx context.Context, rawToken string, nonce NonceFunc) (*Claims, error) {
	unverified, _, err := jwt.NewParser().ParseUnverified(rawToken, &Claims{})
	if err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}

	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, ErrMissingKeyID
	}

	key, err := v.keys.Fetch(ctx, kid)
	if err != nil {
		return nil, errors.Join(ErrKeyUnavailable, err)
	}

	// Temporal claims go through our own pipeline below so failures carry the
	// claim name instead of the library's generic validation error.
	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithoutClaimsValidation()); err != nil {
		return nil, errors.Join(ErrInvalidSignature, err)
	}

	if err := v.validateClaims(claims, nonce); err != nil {
		return nil, err
	}

	return claims, nil
}

func (v *Verifier) validateClaims(claims *Claims, nonce NonceFunc) error {
	if claims.Issuer != v.issuer {
		return &ClaimError{Claim: "iss", Reason: "unexpected issuer " + strconv.Quote(claims.Issuer)}
	}

	if !v.audienceAllowed(claims.Audience) {
		return &ClaimError{Claim: "aud", Reason: "audience not authorized"}
	}

	now := time.Now()
	switch {
	case claims.IssuedAt == nil:
		return &ClaimError{Claim: "iat", Reason: "missing"}
	case claims.IssuedAt.After(now):
		return &ClaimError{Claim: "iat", Reason: "issued in the future"}
	}
	switch {
	case claims.ExpiresAt == nil:
		return &ClaimError{Claim: "exp", Reason: "missing"}
	case claims.ExpiresAt.Before(now):
		return &ClaimError{Claim: "exp", Reason: "token expired"}
	}

	if bool(claims.NonceSupported) {
		if nonce == nil {
			return ErrNonceUnavailable
		}
		expected, ok, err := nonce()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNonceUnavailable
		}
		if claims.Nonce == "" {
			return &ClaimError{Claim: "nonce", Reason: "missing"}
		}
		if claims.Nonce != expected {
			return &ClaimError{Claim: "nonce", Reason: "mismatch"}
		}
	}

	return nil
}

func (v *Verifier) audienceAllowed(aud jwt.ClaimStrings) bool {
	for _, got := range aud {
		if slices.Contains(v.audiences, got) {
			return true
		}
	}
	return false
}

// PeekAudience decodes a token without any verification and returns its aud
// values. Callers use this to pick which client id to present during code
// exchange; nothing about the token is trusted until Verify runs.
func PeekAudience(rawToken string) ([]string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	return claims.Audience, nil
}
