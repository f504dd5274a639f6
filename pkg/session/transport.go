package session

import (
	"net/http"
	"time"
)

// Transport moves the session token between client and server. The cookie
// implementation is the default; an alternative carrier only needs to
// satisfy this interface.
type Transport interface {
	// GetToken reads the session token from the request.
	GetToken(r *http.Request) (string, error)

	// SetToken delivers a fresh session token with its lifetime.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken instructs the client to drop its token.
	ClearToken(w http.ResponseWriter) error
}
