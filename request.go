package appleauth

import (
	"net/http"
)

// SessionStore is the per-attempt key-value state the adapter keeps between
// the authorize redirect and the callback: the OAuth2 state and, in session
// nonce mode, the pending nonce. *session.Session satisfies it.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// RequestContext exposes the pieces of the inbound callback the adapter
// reads. Keeping it an interface makes the core testable without an HTTP
// stack and lets non-HTTP frontends drive the same flow.
type RequestContext interface {
	// Method is the HTTP method of the current request.
	Method() string

	// Param returns a request parameter by name, merged from the query
	// string and the form body.
	Param(name string) (string, bool)

	// Session returns the per-attempt store, or nil when the caller manages
	// none (param and ignore nonce modes need no session).
	Session() SessionStore
}

type httpRequest struct {
	r    *http.Request
	sess SessionStore
}

// NewHTTPRequest binds an incoming HTTP request and an optional session
// store to the RequestContext the adapter consumes. Query and form
// parameters are merged; on POST the body values take precedence.
func NewHTTPRequest(r *http.Request, sess SessionStore) RequestContext {
	_ = r.ParseForm()
	return &httpRequest{r: r, sess: sess}
}

func (h *httpRequest) Method() string { return h.r.Method }

func (h *httpRequest) Param(name string) (string, bool) {
	if vs, ok := h.r.Form[name]; ok && len(vs) > 0 {
		return vs[0], true
	}
	return "", false
}

func (h *httpRequest) Session() SessionStore {
	if h.sess == nil {
		return nil
	}
	return h.sess
}
