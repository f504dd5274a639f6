package appleauth

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/dmitrymomot/appleauth/pkg/clientsecret"
	"github.com/dmitrymomot/appleauth/pkg/idtoken"
	"github.com/dmitrymomot/appleauth/pkg/jwks"
	"github.com/dmitrymomot/appleauth/pkg/nonce"
	"github.com/dmitrymomot/appleauth/pkg/profile"
)

// Adapter orchestrates the full Sign in with Apple flow: authorize
// parameters with a fresh nonce on the way out; code exchange, identity
// token verification, and profile assembly on the way back.
type Adapter struct {
	cfg        Config
	httpClient *http.Client
	oauth      OAuth2Client
	secrets    *clientsecret.Issuer
	verifier   *idtoken.Verifier
	nonces     *nonce.Manager
	keys       *jwks.KeySet
}

// New validates the config, parses the signing key, and wires the adapter's
// collaborators. Options may substitute the OAuth2 client, share a key
// cache, or set the HTTP client used for provider round trips.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Adapter{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	secrets, err := clientsecret.New(clientsecret.Config{
		TeamID:     cfg.TeamID,
		ClientID:   cfg.ClientID,
		KeyID:      cfg.KeyID,
		PrivateKey: cfg.PrivateKey,
		Audience:   cfg.Issuer,
	})
	if err != nil {
		return nil, err
	}
	a.secrets = secrets

	nonces, err := nonce.New(cfg.NonceMode)
	if err != nil {
		return nil, err
	}
	a.nonces = nonces

	if a.keys == nil {
		var keyOpts []jwks.Option
		if a.httpClient != nil {
			keyOpts = append(keyOpts, jwks.WithHTTPClient(a.httpClient))
		}
		a.keys = jwks.New(cfg.Issuer, keyOpts...)
	}

	verifier, err := idtoken.New(a.keys, cfg.ClientID,
		idtoken.WithIssuer(cfg.Issuer),
		idtoken.WithAuthorizedClientIDs(cfg.AuthorizedClientIDs...),
	)
	if err != nil {
		return nil, err
	}
	a.verifier = verifier

	if a.oauth == nil {
		a.oauth = newOAuthClient(cfg.ClientID, cfg.Issuer, cfg.RedirectURI, a.httpClient)
	}

	return a, nil
}

// AuthorizationParams returns the query parameters for the authorize
// request: response_mode=form_post, the configured scope, a freshly issued
// nonce, and finally the caller's overrides, which win on conflict. rc may
// be nil when the nonce mode stores nothing.
func (a *Adapter) AuthorizationParams(rc RequestContext, overrides url.Values) (url.Values, error) {
	params := url.Values{}
	params.Set("response_mode", "form_post")
	params.Set("scope", a.cfg.Scope)

	var sess SessionStore
	if rc != nil {
		sess = rc.Session()
	}
	value, err := a.nonces.Issue(sess)
	if err != nil {
		return nil, classify(err)
	}
	if value != "" {
		params.Set("nonce", value)
	}

	for key, values := range overrides {
		params[key] = values
	}

	return params, nil
}

// AuthorizeURL builds the provider authorize URL for the given state,
// delegating URL construction to the OAuth2 client.
func (a *Adapter) AuthorizeURL(rc RequestContext, state string, overrides url.Values) (string, error) {
	params, err := a.AuthorizationParams(rc, overrides)
	if err != nil {
		return "", err
	}
	return a.oauth.AuthCodeURL(state, params), nil
}

// Identity is the result of a verified callback.
type Identity struct {
	// Profile is the normalized, pruned user profile.
	Profile profile.Profile

	// Claims are the verified identity-token claims.
	Claims *idtoken.Claims

	// RawUser is the unparsed one-time user parameter. Apple sends it on the
	// first authorization only; callers who want the name must capture it
	// here or lose it.
	RawUser string

	// IDToken is the original compact identity token.
	IDToken string
}

// Extra returns the auxiliary payload {raw_info: {id_info, user_info,
// id_token}} with empty entries pruned.
func (id *Identity) Extra() map[string]any {
	return profile.Extra(id.Claims, id.RawUser, id.IDToken)
}

// HandleCallback drives a normalized (GET-shape) callback through the
// verification pipeline and returns the verified identity. Every failure is
// an *Error carrying its Kind; no partially verified identity is ever
// returned. The form_post leg must be normalized before this runs.
func (a *Adapter) HandleCallback(ctx context.Context, rc RequestContext) (*Identity, error) {
	code, _ := rc.Param("code")
	rawToken, _ := rc.Param("id_token")

	secret, err := a.secrets.Issue()
	if err != nil {
		return nil, classify(err)
	}

	exchanged, err := a.oauth.Exchange(ctx, code, a.effectiveClientID(rawToken), secret)
	if err != nil {
		return nil, &Error{Kind: KindExchange, Err: err}
	}

	// The request's own id_token wins; the exchange response is the
	// fallback source.
	if rawToken == "" {
		rawToken = exchanged.IDToken
	}
	if rawToken == "" {
		return nil, &Error{Kind: KindMissingToken}
	}

	claims, err := a.verifier.Verify(ctx, rawToken, a.nonceSource(rc))
	if err != nil {
		return nil, classify(err)
	}

	rawUser, _ := rc.Param("user")
	return &Identity{
		Profile: profile.Assemble(claims, profile.ParseUserPayload(rawUser)),
		Claims:  claims,
		RawUser: rawUser,
		IDToken: rawToken,
	}, nil
}

// effectiveClientID picks the client id presented during code exchange.
// With no identity token in sight the configured id is the only choice;
// once a token is present, the exchange must speak for whichever authorized
// audience the token was actually minted for. Nothing here is trusted: an
// unauthorized or undecodable audience falls back to the configured id and
// verification rejects the token properly later.
func (a *Adapter) effectiveClientID(rawToken string) string {
	if rawToken == "" {
		return a.cfg.ClientID
	}

	audiences, err := idtoken.PeekAudience(rawToken)
	if err != nil {
		return a.cfg.ClientID
	}
	for _, aud := range audiences {
		if aud == a.cfg.ClientID || slices.Contains(a.cfg.AuthorizedClientIDs, aud) {
			return aud
		}
	}

	return a.cfg.ClientID
}

// nonceSource adapts the nonce manager to the verifier's lazy lookup. The
// lookup only runs when the token declares nonce support, so single-use
// session nonces are not consumed by tokens that never carry one.
func (a *Adapter) nonceSource(rc RequestContext) idtoken.NonceFunc {
	return func() (string, bool, error) {
		return a.nonces.Retrieve(nonceRequest{rc})
	}
}

// nonceRequest bridges RequestContext to the nonce package's request shape.
type nonceRequest struct{ rc RequestContext }

func (r nonceRequest) Param(name string) (string, bool) { return r.rc.Param(name) }

func (r nonceRequest) Session() nonce.SessionStore {
	sess := r.rc.Session()
	if sess == nil {
		return nil
	}
	return sess
}
