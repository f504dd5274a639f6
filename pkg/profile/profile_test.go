package profile_test

import (
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appleauth/pkg/idtoken"
	"github.com/dmitrymomot/appleauth/pkg/profile"
)

func claimsFixture() *idtoken.Claims {
	return &idtoken.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "001234.abcdef5678",
		},
		Email:          "user@example.com",
		EmailVerified:  idtoken.Boolish(true),
		IsPrivateEmail: idtoken.Boolish(false),
	}
}

func TestParseUserPayload(t *testing.T) {
	t.Parallel()

	t.Run("valid payload", func(t *testing.T) {
		payload := profile.ParseUserPayload(`{"name":{"firstName":"Ada","lastName":"Lovelace"},"email":"ada@example.com"}`)
		assert.Equal(t, "Ada", payload.Name.FirstName)
		assert.Equal(t, "Lovelace", payload.Name.LastName)
		assert.Equal(t, "ada@example.com", payload.Email)
	})

	t.Run("malformed payload degrades to zero", func(t *testing.T) {
		payload := profile.ParseUserPayload(`{"name":{`)
		assert.Equal(t, profile.UserPayload{}, payload)
	})

	t.Run("empty input", func(t *testing.T) {
		payload := profile.ParseUserPayload("")
		assert.Equal(t, profile.UserPayload{}, payload)
	})
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("full name from user payload", func(t *testing.T) {
		user := profile.ParseUserPayload(`{"name":{"firstName":"Ada","lastName":"Lovelace"}}`)
		p := profile.Assemble(claimsFixture(), user)

		assert.Equal(t, "001234.abcdef5678", p.Sub)
		assert.Equal(t, "user@example.com", p.Email)
		assert.Equal(t, "Ada", p.FirstName)
		assert.Equal(t, "Lovelace", p.LastName)
		assert.Equal(t, "Ada Lovelace", p.Name)
		assert.True(t, p.EmailVerified)
		assert.False(t, p.IsPrivateEmail)
	})

	t.Run("single name part stands alone", func(t *testing.T) {
		user := profile.ParseUserPayload(`{"name":{"firstName":"Ada"}}`)
		p := profile.Assemble(claimsFixture(), user)
		assert.Equal(t, "Ada", p.Name)
	})

	t.Run("name falls back to email", func(t *testing.T) {
		p := profile.Assemble(claimsFixture(), profile.UserPayload{})
		assert.Equal(t, "user@example.com", p.Name)
	})

	t.Run("private relay flags carried over", func(t *testing.T) {
		claims := claimsFixture()
		claims.Email = "hidden@privaterelay.appleid.com"
		claims.IsPrivateEmail = idtoken.Boolish(true)

		p := profile.Assemble(claims, profile.UserPayload{})
		assert.True(t, p.IsPrivateEmail)
		assert.Equal(t, "hidden@privaterelay.appleid.com", p.Email)
	})
}

func TestProfileJSON(t *testing.T) {
	t.Parallel()

	t.Run("empty fields are omitted", func(t *testing.T) {
		p := profile.Profile{
			Sub:           "001234.abcdef5678",
			Email:         "user@example.com",
			Name:          "user@example.com",
			EmailVerified: true,
		}

		buf, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"sub": "001234.abcdef5678",
			"email": "user@example.com",
			"name": "user@example.com",
			"email_verified": true
		}`, string(buf))
	})
}
