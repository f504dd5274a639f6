package profile_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appleauth/pkg/idtoken"
	"github.com/dmitrymomot/appleauth/pkg/profile"
)

func TestPrune(t *testing.T) {
	t.Parallel()

	t.Run("removes nil entries recursively", func(t *testing.T) {
		got := profile.Prune(map[string]any{
			"a": nil,
			"b": map[string]any{"c": nil, "d": 1},
		})
		assert.Equal(t, map[string]any{"b": map[string]any{"d": 1}}, got)
	})

	t.Run("drops empty strings slices and maps", func(t *testing.T) {
		got := profile.Prune(map[string]any{
			"s":     "",
			"list":  []any{},
			"inner": map[string]any{"gone": nil},
			"kept":  "value",
			"flag":  false,
		})
		assert.Equal(t, map[string]any{"kept": "value", "flag": false}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := map[string]any{
			"a": nil,
			"b": map[string]any{"c": "", "d": "x"},
		}
		once := profile.Prune(in)
		twice := profile.Prune(once)
		assert.Equal(t, once, twice)
	})
}

func TestExtra(t *testing.T) {
	t.Parallel()

	claims := &idtoken.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://appleid.apple.com",
			Subject:   "001234.abcdef5678",
			Audience:  jwt.ClaimStrings{"com.example.service"},
			IssuedAt:  jwt.NewNumericDate(time.Unix(1724500000, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(1724503600, 0)),
		},
		Email:         "user@example.com",
		EmailVerified: idtoken.Boolish(true),
	}

	t.Run("bundles claims user info and token", func(t *testing.T) {
		extra := profile.Extra(claims, `{"name":{"firstName":"Ada"}}`, "raw.jwt.value")

		raw, ok := extra["raw_info"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "raw.jwt.value", raw["id_token"])

		idInfo, ok := raw["id_info"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "001234.abcdef5678", idInfo["sub"])
		assert.Equal(t, "user@example.com", idInfo["email"])

		userInfo, ok := raw["user_info"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"firstName": "Ada"}, userInfo["name"])
	})

	t.Run("absent user payload is pruned away", func(t *testing.T) {
		extra := profile.Extra(claims, "", "raw.jwt.value")

		raw, ok := extra["raw_info"].(map[string]any)
		require.True(t, ok)
		_, present := raw["user_info"]
		assert.False(t, present)
	})

	t.Run("nothing to bundle prunes to empty map", func(t *testing.T) {
		extra := profile.Extra(nil, "", "")
		assert.Empty(t, extra)
	})
}
