package idtoken_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appleauth/pkg/idtoken"
)

func TestBoolishCoercion(t *testing.T) {
	t.Parallel()

	var payload struct {
		A idtoken.Boolish `json:"a"`
		B idtoken.Boolish `json:"b"`
		C idtoken.Boolish `json:"c"`
		D idtoken.Boolish `json:"d"`
		E idtoken.Boolish `json:"e"`
		F idtoken.Boolish `json:"f"`
	}
	doc := `{"a": true, "b": "true", "c": false, "d": "false", "e": 1, "f": null}`
	require.NoError(t, json.Unmarshal([]byte(doc), &payload))

	assert.True(t, bool(payload.A), "json true")
	assert.True(t, bool(payload.B), "string true")
	assert.False(t, bool(payload.C), "json false")
	assert.False(t, bool(payload.D), "string false")
	assert.False(t, bool(payload.E), "number")
	assert.False(t, bool(payload.F), "null")
}

func TestClaimsDecode(t *testing.T) {
	t.Parallel()

	doc := `{
		"iss": "https://appleid.apple.com",
		"aud": "com.example.service",
		"sub": "001234.abcdef5678",
		"iat": 1724500000,
		"exp": 1724503600,
		"email": "hidden@privaterelay.appleid.com",
		"email_verified": "true",
		"is_private_email": true,
		"nonce_supported": true,
		"real_user_status": 2,
		"auth_time": 1724499990
	}`

	var claims idtoken.Claims
	require.NoError(t, json.Unmarshal([]byte(doc), &claims))

	assert.Equal(t, "https://appleid.apple.com", claims.Issuer)
	assert.Equal(t, "001234.abcdef5678", claims.Subject)
	assert.Equal(t, "hidden@privaterelay.appleid.com", claims.Email)
	assert.True(t, bool(claims.EmailVerified))
	assert.True(t, bool(claims.IsPrivateEmail))
	assert.True(t, bool(claims.NonceSupported))
	assert.Equal(t, 2, claims.RealUserStatus)
	require.NotNil(t, claims.AuthTime)
	assert.EqualValues(t, 1724499990, claims.AuthTime.Unix())
}
