package appleauth

import (
	"errors"
	"strconv"

	"github.com/dmitrymomot/appleauth/pkg/clientsecret"
	"github.com/dmitrymomot/appleauth/pkg/idtoken"
	"github.com/dmitrymomot/appleauth/pkg/nonce"
)

var (
	// ErrMissingCredentials indicates the config lacks one of the four
	// required Apple developer values
	ErrMissingCredentials = errors.New("appleauth: client id, team id, key id, and private key are required")
)

// Kind classifies callback failures so callers can branch on them (and log
// them) without matching error strings.
type Kind string

const (
	// KindConfiguration covers invalid adapter setup discovered at runtime,
	// e.g. nonce verification demanded by a token while the mode is ignore.
	KindConfiguration Kind = "configuration_error"

	// KindKeyFetch covers signing-key retrieval failures: transport errors,
	// malformed key sets, or a kid absent from the published set.
	KindKeyFetch Kind = "jwks_fetching_failed"

	// KindSignature means the identity token's signature did not verify.
	KindSignature Kind = "id_token_signature_invalid"

	// KindClaims means a claim check failed; Error.Claim names the claim.
	KindClaims Kind = "id_token_claims_invalid"

	// KindTokenFormat means the identity token could not be decoded at all.
	KindTokenFormat Kind = "token_format_error"

	// KindInvalidState means the callback's state did not match the session.
	KindInvalidState Kind = "invalid_state"

	// KindExchange means the authorization-code exchange failed.
	KindExchange Kind = "exchange_failed"

	// KindMissingToken means neither the callback request nor the exchange
	// response carried an identity token.
	KindMissingToken Kind = "missing_id_token"

	// KindProviderError means the provider reported a failure instead of an
	// authorization result, e.g. the user cancelled the consent screen.
	KindProviderError Kind = "provider_error"

	// KindInternal covers infrastructure failures outside the protocol:
	// session storage, entropy, response writing.
	KindInternal Kind = "internal_error"
)

// Error is the failure surfaced by the callback path. It always carries a
// Kind; claim failures additionally name the offending claim. The underlying
// cause stays reachable through Unwrap for errors.Is/As inspection.
type Error struct {
	Kind  Kind
	Claim string
	Err   error
}

func (e *Error) Error() string {
	msg := "appleauth: " + string(e.Kind)
	if e.Claim != "" {
		msg += ": claim " + strconv.Quote(e.Claim)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps a verification-pipeline failure onto its callback Kind.
// Claim failures keep the claim name so callers see exactly which check
// rejected the token.
func classify(err error) *Error {
	var claimErr *idtoken.ClaimError
	switch {
	case errors.As(err, &claimErr):
		return &Error{Kind: KindClaims, Claim: claimErr.Claim, Err: err}
	case errors.Is(err, idtoken.ErrMalformedToken):
		return &Error{Kind: KindTokenFormat, Err: err}
	case errors.Is(err, idtoken.ErrMissingKeyID), errors.Is(err, idtoken.ErrKeyUnavailable):
		return &Error{Kind: KindKeyFetch, Err: err}
	case errors.Is(err, idtoken.ErrInvalidSignature):
		return &Error{Kind: KindSignature, Err: err}
	case errors.Is(err, idtoken.ErrNonceUnavailable),
		errors.Is(err, nonce.ErrInvalidMode),
		errors.Is(err, nonce.ErrNoSession),
		errors.Is(err, clientsecret.ErrSigningFailed):
		return &Error{Kind: KindConfiguration, Err: err}
	}
	return &Error{Kind: KindInternal, Err: err}
}
