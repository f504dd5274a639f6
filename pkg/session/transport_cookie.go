package session

import (
	"net/http"
	"time"
)

// CookieTransport carries the session token in a plain HTTP cookie.
//
// The cookie is SameSite=Lax: the provider's cross-site POST callback arrives
// without it, and the adapter re-enters the callback through a top-level GET
// redirect, which Lax cookies do accompany.
type CookieTransport struct {
	name   string
	secure bool
}

// NewCookieTransport creates a new cookie-based transport
func NewCookieTransport(name string, secure bool) *CookieTransport {
	return &CookieTransport{
		name:   name,
		secure: secure,
	}
}

// GetToken extracts the session token from the cookie
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrSessionNotFound
	}
	return c.Value, nil
}

// SetToken stores the session token in a cookie
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   t.secure,
	})
	return nil
}

// ClearToken removes the session cookie
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   t.secure,
	})
	return nil
}
