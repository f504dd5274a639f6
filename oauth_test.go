package appleauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCodeURL(t *testing.T) {
	t.Parallel()

	client := newOAuthClient("com.example.web", "https://appleid.apple.com", "https://example.com/cb", nil)

	t.Run("builds the authorize url with extras", func(t *testing.T) {
		raw := client.AuthCodeURL("state-1", url.Values{
			"response_mode": {"form_post"},
			"scope":         {"email name"},
			"nonce":         {"n-1"},
		})

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "appleid.apple.com", u.Host)
		assert.Equal(t, "/auth/authorize", u.Path)

		q := u.Query()
		assert.Equal(t, "com.example.web", q.Get("client_id"))
		assert.Equal(t, "https://example.com/cb", q.Get("redirect_uri"))
		assert.Equal(t, "code", q.Get("response_type"))
		assert.Equal(t, "state-1", q.Get("state"))
		assert.Equal(t, "form_post", q.Get("response_mode"))
		assert.Equal(t, "email name", q.Get("scope"))
		assert.Equal(t, "n-1", q.Get("nonce"))
	})

	t.Run("spaces encode as percent-20", func(t *testing.T) {
		raw := client.AuthCodeURL("s", url.Values{"scope": {"email name"}})

		assert.Contains(t, raw, "scope=email%20name")
		assert.NotContains(t, raw, "+")
	})

	t.Run("trailing issuer slash is tolerated", func(t *testing.T) {
		c := newOAuthClient("com.example.web", "https://appleid.apple.com/", "https://example.com/cb", nil)
		raw := c.AuthCodeURL("s", nil)

		assert.True(t, strings.HasPrefix(raw, "https://appleid.apple.com/auth/authorize?"))
	})
}

func TestExchange(t *testing.T) {
	t.Parallel()

	t.Run("sends credentials in the body and extracts id_token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/token", r.URL.Path)

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "code-1", r.PostForm.Get("code"))
			assert.Equal(t, "com.example.web", r.PostForm.Get("client_id"))
			assert.Equal(t, "secret-1", r.PostForm.Get("client_secret"))
			assert.Empty(t, r.Header.Get("Authorization"), "credentials must not ride in basic auth")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"access_token": "at-1",
				"token_type": "Bearer",
				"expires_in": 3600,
				"refresh_token": "rt-1",
				"id_token": "header.payload.signature"
			}`))
		}))
		defer srv.Close()

		client := newOAuthClient("com.example.web", srv.URL, "https://example.com/cb", nil)

		res, err := client.Exchange(context.Background(), "code-1", "com.example.web", "secret-1")
		require.NoError(t, err)
		assert.Equal(t, "at-1", res.AccessToken)
		assert.Equal(t, "Bearer", res.TokenType)
		assert.Equal(t, "rt-1", res.RefreshToken)
		assert.Equal(t, "header.payload.signature", res.IDToken)
		assert.False(t, res.Expiry.IsZero())
	})

	t.Run("per-call client id overrides the configured one", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "com.example.ios", r.PostForm.Get("client_id"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer"}`))
		}))
		defer srv.Close()

		client := newOAuthClient("com.example.web", srv.URL, "https://example.com/cb", nil)

		res, err := client.Exchange(context.Background(), "code-1", "com.example.ios", "secret-1")
		require.NoError(t, err)
		assert.Empty(t, res.IDToken)
	})

	t.Run("provider rejection surfaces as an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		client := newOAuthClient("com.example.web", srv.URL, "https://example.com/cb", nil)

		res, err := client.Exchange(context.Background(), "stale-code", "com.example.web", "secret-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid_grant")
		assert.Nil(t, res)
	})

	t.Run("custom http client is used for the round trip", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer"}`))
		}))
		defer srv.Close()

		rt := &countingTransport{next: http.DefaultTransport}
		client := newOAuthClient("com.example.web", srv.URL, "https://example.com/cb", &http.Client{Transport: rt})

		_, err := client.Exchange(context.Background(), "code-1", "com.example.web", "secret-1")
		require.NoError(t, err)
		assert.Equal(t, 1, rt.calls)
	})
}

type countingTransport struct {
	next  http.RoundTripper
	calls int
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.calls++
	return t.next.RoundTrip(r)
}
