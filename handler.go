package appleauth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/appleauth/pkg/logger"
	"github.com/dmitrymomot/appleauth/pkg/session"
)

// sessionStateKey is where the pending login's state value lives inside the
// session between the authorize redirect and the callback.
const sessionStateKey = "appleauth.state"

// SuccessHandler receives the verified identity at the end of the callback.
type SuccessHandler func(w http.ResponseWriter, r *http.Request, identity *Identity)

// ErrorHandler receives the classified failure for any leg of the flow.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err *Error)

// Handler mounts ready-made login and callback endpoints around an Adapter.
// It owns state issuance and comparison; nonce handling stays inside the
// adapter. Without hooks it answers with JSON, which is enough for APIs and
// for trying the flow out.
type Handler struct {
	adapter  *Adapter
	sessions *session.Manager
	log      *slog.Logger
	success  SuccessHandler
	failure  ErrorHandler
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger for flow events. Defaults to slog.Default().
func WithLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithSuccessHandler runs fn instead of the JSON response after a verified
// callback. This is where applications establish their own signed-in state.
func WithSuccessHandler(fn SuccessHandler) HandlerOption {
	return func(h *Handler) { h.success = fn }
}

// WithErrorHandler runs fn instead of the JSON error response.
func WithErrorHandler(fn ErrorHandler) HandlerOption {
	return func(h *Handler) { h.failure = fn }
}

// NewHandler wires a Handler around the adapter. A nil sessions manager gets
// an in-memory one, which is fine for a single process.
func NewHandler(adapter *Adapter, sessions *session.Manager, opts ...HandlerOption) *Handler {
	h := &Handler{adapter: adapter, sessions: sessions}
	for _, opt := range opts {
		opt(h)
	}
	if h.sessions == nil {
		h.sessions = session.New()
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// Handle returns the routes ready to mount: GET /login starts the flow,
// GET and POST /callback finish it.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/login", h.login)
	r.Get("/callback", h.callback)
	r.Post("/callback", h.callback)
	return r
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Ensure(ctx, w, r)
	if err != nil {
		h.fail(w, r, &Error{Kind: KindInternal, Err: err})
		return
	}

	state, err := newState()
	if err != nil {
		h.fail(w, r, &Error{Kind: KindInternal, Err: err})
		return
	}
	sess.Set(sessionStateKey, state)

	authorizeURL, err := h.adapter.AuthorizeURL(NewHTTPRequest(r, sess), state, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// The nonce was written into the session by AuthorizeURL; persist it
	// before handing the browser to the provider.
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.fail(w, r, &Error{Kind: KindInternal, Err: err})
		return
	}

	h.log.InfoContext(ctx, "redirecting to authorize endpoint",
		logger.Component("appleauth"),
		logger.Event("login_started"),
		logger.Provider("apple"))

	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Apple reports user-facing failures, cancellation included, as an error
	// parameter on the raw form post.
	if reason := r.FormValue("error"); reason != "" {
		h.fail(w, r, &Error{Kind: KindProviderError, Err: errors.New(reason)})
		return
	}

	// The cross-site form post carries no session cookie, so it cannot be
	// processed directly. Rewrite it into a same-URL GET; the top-level
	// redirect that follows does carry the cookie.
	if redirect, ok := NormalizeCallback(r, h.adapter.cfg.RedirectURI); ok {
		http.Redirect(w, r, redirect.URL, http.StatusFound)
		return
	}

	sess, err := h.sessions.Get(ctx, r)
	if err != nil {
		h.fail(w, r, &Error{Kind: KindInvalidState, Err: err})
		return
	}

	expected, _ := sess.Get(sessionStateKey)
	sess.Delete(sessionStateKey)
	got := r.URL.Query().Get("state")
	stateOK := expected != "" && subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
	if !stateOK {
		// Persist the deletion so a second attempt with the right state
		// cannot ride on a value this request already burned.
		_ = h.sessions.Save(ctx, sess)
		h.fail(w, r, &Error{Kind: KindInvalidState})
		return
	}

	identity, cbErr := h.adapter.HandleCallback(ctx, NewHTTPRequest(r, sess))

	// Verification consumes the session nonce. Persist that even on failure
	// so a replayed callback finds nothing to match against.
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.fail(w, r, &Error{Kind: KindInternal, Err: err})
		return
	}
	if cbErr != nil {
		h.fail(w, r, cbErr)
		return
	}

	h.log.InfoContext(ctx, "sign in completed",
		logger.Component("appleauth"),
		logger.Event("login_completed"),
		logger.Provider("apple"),
		logger.UserID(identity.Profile.Sub))

	if h.success != nil {
		h.success(w, r, identity)
		return
	}
	writeJSON(w, http.StatusOK, identity.Profile)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *Error
	if !errors.As(err, &authErr) {
		authErr = &Error{Kind: KindInternal, Err: err}
	}

	attrs := []any{
		logger.Component("appleauth"),
		logger.Event("login_failed"),
		logger.Provider("apple"),
		slog.String("kind", string(authErr.Kind)),
		logger.Error(authErr),
	}
	if authErr.Claim != "" {
		attrs = append(attrs, logger.Claim(authErr.Claim))
	}
	h.log.ErrorContext(r.Context(), "sign in failed", attrs...)

	if h.failure != nil {
		h.failure(w, r, authErr)
		return
	}

	status := http.StatusUnauthorized
	if authErr.Kind == KindConfiguration || authErr.Kind == KindInternal {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": string(authErr.Kind)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newState returns a fresh random state value for one login attempt.
func newState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
