package clientsecret

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Apple accepts client secret lifetimes up to six months. Secrets here are
	// minted fresh per token-endpoint call, so one minute is all they need.
	assertionTTL = time.Minute

	// defaultAudience is the issuer URL Apple expects in the aud claim.
	defaultAudience = "https://appleid.apple.com"
)

// Config carries the Apple developer credentials used to sign client secrets.
type Config struct {
	TeamID     string // Apple Developer team identifier (iss claim)
	ClientID   string // Services ID the secret is minted for (sub claim)
	KeyID      string // signing key identifier from the developer portal (kid header)
	PrivateKey string // PEM-encoded ES256 private key (.p8 file contents)
	Audience   string // aud claim override, defaults to the Apple issuer URL
}

// Issuer mints the short-lived ES256 assertion Apple requires in place of a
// static client secret. The private key is parsed once at construction.
type Issuer struct {
	teamID   string
	clientID string
	keyID    string
	audience string
	key      *ecdsa.PrivateKey
}

// New validates the config, parses the private key, and returns a ready Issuer.
func New(cfg Config) (*Issuer, error) {
	if cfg.TeamID == "" || cfg.ClientID == "" || cfg.KeyID == "" {
		return nil, ErrMissingConfig
	}

	key, err := ParsePrivateKey([]byte(cfg.PrivateKey))
	if err != nil {
		return nil, err
	}

	audience := cfg.Audience
	if audience == "" {
		audience = defaultAudience
	}

	return &Issuer{
		teamID:   cfg.TeamID,
		clientID: cfg.ClientID,
		keyID:    cfg.KeyID,
		audience: audience,
		key:      key,
	}, nil
}

// Issue signs a fresh assertion valid for one minute from now. Every call
// produces a new token; callers should not cache the result across requests.
func (i *Issuer) Issue() (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    i.teamID,
		Subject:   i.clientID,
		Audience:  jwt.ClaimStrings{i.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = i.keyID

	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}

	return signed, nil
}

// ParsePrivateKey decodes a PEM-encoded ECDSA private key in either PKCS#8 or
// SEC 1 form. Apple ships signing keys as PKCS#8 .p8 files.
func ParsePrivateKey(pemBytes []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, ErrInvalidPrivateKey
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, ErrInvalidPrivateKey
		}
		return ecKey, nil
	}

	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Join(ErrInvalidPrivateKey, err)
	}

	return key, nil
}
