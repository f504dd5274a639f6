package appleauth

import (
	"net/http"
	"net/url"
	"strings"
)

// Redirect is the GET hop that resumes a normalized form_post callback.
type Redirect struct {
	// URL is the rebuilt callback location carrying code, state, and user as
	// query parameters.
	URL string

	// SuppressSession instructs the HTTP layer not to issue a session cookie
	// on this leg. The POST arrived cross-site without cookies; creating a
	// session here would orphan the one already holding state and nonce.
	SuppressSession bool
}

// NormalizeCallback detects Apple's form_post callback delivery and rewrites
// it into the canonical GET request generic OAuth2 handling expects. Apple
// POSTs the authorization result because response_mode=form_post is the only
// mode it supports with name/email scopes; everything downstream wants query
// parameters on a GET.
//
// The rebuild target is the request's explicit redirect_uri parameter when
// present, else the configured redirectURI, else the request's own path.
// code and state transfer only as a pair; the one-time user payload
// transfers whenever present. Non-POST requests are not normalization
// candidates and return ok=false.
func NormalizeCallback(r *http.Request, redirectURI string) (*Redirect, bool) {
	if r.Method != http.MethodPost {
		return nil, false
	}
	_ = r.ParseForm()

	target := r.FormValue("redirect_uri")
	if target == "" {
		target = redirectURI
	}
	if target == "" {
		target = r.URL.Path
	}

	query := url.Values{}
	if code, state := r.FormValue("code"), r.FormValue("state"); code != "" && state != "" {
		query.Set("code", code)
		query.Set("state", state)
	}
	if user := r.FormValue("user"); user != "" {
		query.Set("user", user)
	}

	if encoded := query.Encode(); encoded != "" {
		if strings.Contains(target, "?") {
			target += "&" + encoded
		} else {
			target += "?" + encoded
		}
	}

	return &Redirect{URL: target, SuppressSession: true}, true
}
