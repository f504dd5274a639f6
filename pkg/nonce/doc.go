// Package nonce issues and recalls the nonce tied to a Sign in with Apple
// login attempt.
//
// Three modes cover the deployment shapes that exist in practice: session
// stores the nonce server-side and consumes it on first read (single use),
// param trusts the value echoed back in the callback request, and ignore
// opts out entirely, never creating a nonce in the first place. The mode is
// fixed at construction and anything outside the three is rejected.
package nonce
