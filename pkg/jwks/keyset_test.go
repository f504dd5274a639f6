package jwks_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appleauth/pkg/jwks"
)

func jwksPayload(t *testing.T, kids map[string]*rsa.PublicKey) []byte {
	t.Helper()

	type rawKey struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		Use string `json:"use"`
		Alg string `json:"alg"`
		N   string `json:"n"`
		E   string `json:"e"`
	}

	var payload struct {
		Keys []rawKey `json:"keys"`
	}
	for kid, key := range kids {
		payload.Keys = append(payload.Keys, rawKey{
			Kty: "RSA",
			Kid: kid,
			Use: "sig",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		})
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func TestKeySetFetch(t *testing.T) {
	t.Parallel()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	t.Run("miss fetches set and caches it", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			assert.Equal(t, "/auth/keys", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(jwksPayload(t, map[string]*rsa.PublicKey{"kid-1": &priv.PublicKey}))
		}))
		defer srv.Close()

		set := jwks.New(srv.URL)

		key, err := set.Fetch(context.Background(), "kid-1")
		require.NoError(t, err)
		assert.Equal(t, 0, key.N.Cmp(priv.PublicKey.N))
		assert.Equal(t, priv.PublicKey.E, key.E)
		assert.Equal(t, int32(1), hits.Load())

		// Second lookup is served from cache.
		_, err = set.Fetch(context.Background(), "kid-1")
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())
		assert.Equal(t, 1, set.Len())
	})

	t.Run("unknown kid refetches and fails", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write(jwksPayload(t, map[string]*rsa.PublicKey{"kid-1": &priv.PublicKey}))
		}))
		defer srv.Close()

		set := jwks.New(srv.URL)

		_, err := set.Fetch(context.Background(), "kid-2")
		require.ErrorIs(t, err, jwks.ErrKeyNotFound)

		// Every miss triggers a live refetch; nothing is cached negatively.
		_, err = set.Fetch(context.Background(), "kid-2")
		require.ErrorIs(t, err, jwks.ErrKeyNotFound)
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("rotation picked up on miss", func(t *testing.T) {
		t.Parallel()

		rotated, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		var generation atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if generation.Load() == 0 {
				_, _ = w.Write(jwksPayload(t, map[string]*rsa.PublicKey{"kid-old": &priv.PublicKey}))
				return
			}
			_, _ = w.Write(jwksPayload(t, map[string]*rsa.PublicKey{"kid-new": &rotated.PublicKey}))
		}))
		defer srv.Close()

		set := jwks.New(srv.URL)

		_, err = set.Fetch(context.Background(), "kid-old")
		require.NoError(t, err)

		generation.Store(1)

		key, err := set.Fetch(context.Background(), "kid-new")
		require.NoError(t, err)
		assert.Equal(t, 0, key.N.Cmp(rotated.PublicKey.N))

		// The swap replaced the index: the old kid is gone with the fetch.
		assert.Equal(t, 1, set.Len())
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		set := jwks.New(srv.URL)
		_, err := set.Fetch(context.Background(), "kid-1")
		require.ErrorIs(t, err, jwks.ErrFetchFailed)
	})

	t.Run("unexpected status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		set := jwks.New(srv.URL)
		_, err := set.Fetch(context.Background(), "kid-1")
		require.ErrorIs(t, err, jwks.ErrFetchFailed)
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		set := jwks.New(srv.URL)
		_, err := set.Fetch(context.Background(), "kid-1")
		require.ErrorIs(t, err, jwks.ErrInvalidKeySet)
	})

	t.Run("empty key set", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"keys":[]}`))
		}))
		defer srv.Close()

		set := jwks.New(srv.URL)
		_, err := set.Fetch(context.Background(), "kid-1")
		require.ErrorIs(t, err, jwks.ErrInvalidKeySet)
	})

	t.Run("unsupported key type", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"keys":[{"kty":"EC","kid":"kid-1","crv":"P-256"}]}`))
		}))
		defer srv.Close()

		set := jwks.New(srv.URL)
		_, err := set.Fetch(context.Background(), "kid-1")
		require.ErrorIs(t, err, jwks.ErrInvalidKeySet)
	})
}

func TestKeySetConcurrentFetch(t *testing.T) {
	t.Parallel()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jwksPayload(t, map[string]*rsa.PublicKey{"kid-1": &priv.PublicKey}))
	}))
	defer srv.Close()

	set := jwks.New(srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := set.Fetch(context.Background(), "kid-1")
			assert.NoError(t, err)
			assert.NotNil(t, key)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, set.Len())
}
