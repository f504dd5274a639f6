package appleauth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appleauth"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("kind only", func(t *testing.T) {
		err := &appleauth.Error{Kind: appleauth.KindMissingToken}
		assert.Equal(t, "appleauth: missing_id_token", err.Error())
	})

	t.Run("kind with claim", func(t *testing.T) {
		err := &appleauth.Error{Kind: appleauth.KindClaims, Claim: "nonce"}
		assert.Equal(t, `appleauth: id_token_claims_invalid: claim "nonce"`, err.Error())
	})

	t.Run("kind with cause", func(t *testing.T) {
		err := &appleauth.Error{Kind: appleauth.KindExchange, Err: errors.New("invalid_grant")}
		assert.Equal(t, "appleauth: exchange_failed: invalid_grant", err.Error())
	})
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &appleauth.Error{Kind: appleauth.KindInternal, Err: cause}

	require.ErrorIs(t, err, cause)

	var authErr *appleauth.Error
	require.ErrorAs(t, error(err), &authErr)
	assert.Equal(t, appleauth.KindInternal, authErr.Kind)
}
