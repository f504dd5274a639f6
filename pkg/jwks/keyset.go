package jwks

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	keysPath = "/auth/keys"

	// Apple rejects requests without a User-Agent header.
	defaultUserAgent = "appleauth-go"

	defaultTimeout = 10 * time.Second
)

// KeySet caches provider signing keys by kid and refetches the published set
// on a cache miss.
type KeySet struct {
	keysURL    string
	httpClient *http.Client

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

// Option configures a KeySet.
type Option func(*KeySet)

// WithHTTPClient sets a custom HTTP client for key set retrieval.
// Nil clients are ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(s *KeySet) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// New creates a KeySet for the given issuer root, e.g.
// "https://appleid.apple.com". The key set endpoint is fixed relative to it.
func New(issuerURL string, opts ...Option) *KeySet {
	s := &KeySet{
		keysURL:    strings.TrimSuffix(issuerURL, "/") + keysPath,
		httpClient: &http.Client{Timeout: defaultTimeout},
		keys:       make(map[string]*rsa.PublicKey),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fetch returns the public key for kid. A miss refetches the whole set and
// replaces the cached index before resolving kid against the fresh copy.
func (s *KeySet) Fetch(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	s.mu.RLock()
	key, ok := s.keys[kid]
	s.mu.RUnlock()
	if ok {
		return key, nil
	}

	keys, err := s.fetchKeys(ctx)
	if err != nil {
		return nil, err
	}

	// Whole-map swap: readers never observe a partially built index.
	s.mu.Lock()
	s.keys = keys
	s.mu.Unlock()

	key, ok = keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, kid)
	}

	return key, nil
}

// Len reports how many keys are currently cached.
func (s *KeySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

func (s *KeySet) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.keysURL, nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, res.StatusCode)
	}

	var payload struct {
		Keys []rawKey `json:"keys"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, errors.Join(ErrInvalidKeySet, err)
	}
	if len(payload.Keys) == 0 {
		return nil, fmt.Errorf("%w: empty key set", ErrInvalidKeySet)
	}

	keys := make(map[string]*rsa.PublicKey, len(payload.Keys))
	for _, raw := range payload.Keys {
		key, err := raw.publicKey()
		if err != nil {
			return nil, err
		}
		keys[raw.Kid] = key
	}

	return keys, nil
}

// rawKey is a single JWK entry as published by the provider (RFC 7517).
type rawKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k rawKey) publicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("%w: unsupported key type %q", ErrInvalidKeySet, k.Kty)
	}

	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("%w: modulus: %v", ErrInvalidKeySet, err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("%w: exponent: %v", ErrInvalidKeySet, err)
	}

	exp := 0
	for _, b := range e {
		exp = exp<<8 + int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: exp,
	}, nil
}
