// Package idtoken verifies Apple identity tokens.
//
// Verification is a fixed pipeline: structural decode, signing-key resolution
// by kid, RS256 signature check, then claim validation. A malformed token
// never triggers a key fetch, and claims are never inspected before the
// signature proves who produced them. Claim validation stops at the first
// failing claim and reports it by name via ClaimError.
//
// The nonce claim is only compared when the token declares nonce support;
// the expected value is pulled lazily through a NonceFunc so single-use
// session nonces are consumed only when a comparison actually happens.
//
// # Usage
//
//	keys := jwks.New("https://appleid.apple.com")
//	verifier, err := idtoken.New(keys, "com.example.service",
//		idtoken.WithAuthorizedClientIDs("com.example.ios"),
//	)
//	if err != nil {
//		return err
//	}
//
//	claims, err := verifier.Verify(ctx, rawToken, func() (string, bool, error) {
//		return storedNonce, true, nil
//	})
//	if err != nil {
//		var claimErr *idtoken.ClaimError
//		if errors.As(err, &claimErr) {
//			log.Printf("rejected: claim %s", claimErr.Claim)
//		}
//		return err
//	}
//	log.Printf("verified subject %s", claims.Subject)
package idtoken
