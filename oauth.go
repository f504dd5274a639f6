package appleauth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Provider endpoint paths, fixed under the issuer root.
const (
	authorizePath = "/auth/authorize"
	tokenPath     = "/auth/token"
)

// TokenResponse is the outcome of the authorization-code exchange.
type TokenResponse struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Expiry       time.Time

	// IDToken is the identity token Apple delivers alongside the access
	// token. Empty when the response carried none.
	IDToken string
}

// OAuth2Client performs the two provider round trips of the code flow. The
// default implementation binds golang.org/x/oauth2 to Apple's endpoints;
// tests and non-standard deployments can substitute their own.
type OAuth2Client interface {
	// AuthCodeURL builds the authorization URL for the given state, carrying
	// the extra query parameters verbatim.
	AuthCodeURL(state string, params url.Values) string

	// Exchange trades the authorization code for tokens, authenticating as
	// clientID with the given client secret. The client id varies per call
	// because multi-audience setups must exchange under the audience the
	// identity token was minted for.
	Exchange(ctx context.Context, code, clientID, clientSecret string) (*TokenResponse, error)
}

// oauthClient is the x/oauth2 binding. Apple deviates from the library
// defaults in two ways: client credentials go in the request body rather
// than basic auth, and the authorize URL must encode spaces as %20 because
// Apple rejects '+'.
type oauthClient struct {
	clientID    string
	issuer      string
	redirectURL string
	httpClient  *http.Client
}

func newOAuthClient(clientID, issuer, redirectURL string, httpClient *http.Client) *oauthClient {
	return &oauthClient{
		clientID:    clientID,
		issuer:      strings.TrimSuffix(issuer, "/"),
		redirectURL: redirectURL,
		httpClient:  httpClient,
	}
}

func (c *oauthClient) config(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  c.redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.issuer + authorizePath,
			TokenURL:  c.issuer + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func (c *oauthClient) AuthCodeURL(state string, params url.Values) string {
	opts := make([]oauth2.AuthCodeOption, 0, len(params))
	for key := range params {
		opts = append(opts, oauth2.SetAuthURLParam(key, params.Get(key)))
	}

	u := c.config(c.clientID, "").AuthCodeURL(state, opts...)
	return strings.ReplaceAll(u, "+", "%20")
}

func (c *oauthClient) Exchange(ctx context.Context, code, clientID, clientSecret string) (*TokenResponse, error) {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	token, err := c.config(clientID, clientSecret).Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	res := &TokenResponse{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	if idToken, ok := token.Extra("id_token").(string); ok {
		res.IDToken = idToken
	}

	return res, nil
}
