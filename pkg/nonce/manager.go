package nonce

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Mode selects where the nonce lives between the authorize redirect and the
// callback.
type Mode string

const (
	ModeSession Mode = "session" // stored server-side, consumed on first read
	ModeParam   Mode = "param"   // read back from the callback's nonce parameter
	ModeIgnore  Mode = "ignore"  // no nonce verification at all
)

// Validate rejects modes outside the recognized set. The empty mode is valid
// and treated as ModeSession.
func (m Mode) Validate() error {
	switch m {
	case "", ModeSession, ModeParam, ModeIgnore:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
}

// sessionKey is where the pending nonce lives inside the caller's session.
const sessionKey = "appleauth.nonce"

// SessionStore is the minimal per-request session capability the manager
// needs. The adapter's session implementation satisfies it.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Request exposes the pieces of the callback request the manager reads from.
type Request interface {
	Param(name string) (string, bool)
	Session() SessionStore
}

// Manager issues nonces for authorize requests and recalls them during token
// verification according to the configured mode.
type Manager struct {
	mode Mode
}

// New validates the mode and returns a Manager. An empty mode defaults to
// ModeSession.
func New(mode Mode) (*Manager, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeSession
	}
	return &Manager{mode: mode}, nil
}

// Issue generates a fresh random nonce for the authorize request. In session
// mode the value is also stored under a fixed session key, overwriting
// whatever a previous login attempt left behind. In ignore mode no nonce is
// created at all and the empty string is returned.
func (m *Manager) Issue(session SessionStore) (string, error) {
	switch m.mode {
	case ModeSession:
		if session == nil {
			return "", ErrNoSession
		}
		value, err := generate()
		if err != nil {
			return "", err
		}
		session.Set(sessionKey, value)
		return value, nil
	case ModeParam:
		return generate()
	case ModeIgnore:
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, string(m.mode))
}

// Retrieve reports the value an identity token's nonce claim should equal.
// required=false means the integration performs no nonce verification.
// Session mode consumes the stored value as it reads: a second call finds
// nothing, so a replayed callback cannot pass the comparison twice.
func (m *Manager) Retrieve(req Request) (value string, required bool, err error) {
	switch m.mode {
	case ModeSession:
		session := req.Session()
		if session == nil {
			return "", true, ErrNoSession
		}
		value, _ := session.Get(sessionKey)
		session.Delete(sessionKey)
		return value, true, nil
	case ModeParam:
		value, _ := req.Param("nonce")
		return value, true, nil
	case ModeIgnore:
		return "", false, nil
	}
	return "", false, fmt.Errorf("%w: %q", ErrInvalidMode, string(m.mode))
}

func generate() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("nonce: generate random value: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
