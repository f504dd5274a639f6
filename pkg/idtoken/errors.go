package idtoken

import (
	"errors"
	"fmt"
)

var (
	ErrMissingConfig    = errors.New("idtoken: missing key store or client id")
	ErrMalformedToken   = errors.New("idtoken: malformed token")
	ErrMissingKeyID     = errors.New("idtoken: token header has no kid")
	ErrKeyUnavailable   = errors.New("idtoken: signing key unavailable")
	ErrInvalidSignature = errors.New("idtoken: signature verification failed")
	ErrNonceUnavailable = errors.New("idtoken: token requires a nonce check but none is configured")
)

// ClaimError reports the claim that failed validation. Verification stops at
// the first failing claim, so exactly one claim is ever named per attempt.
type ClaimError struct {
	Claim  string // claim name as it appears in the token payload
	Reason string
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("idtoken: invalid claim %q: %s", e.Claim, e.Reason)
}
