package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/appleauth/pkg/logger"
)

func TestErrorAttr(t *testing.T) {
	t.Parallel()

	t.Run("wraps an error under error key", func(t *testing.T) {
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.Any().(error).Error())
	})

	t.Run("nil error yields empty attr", func(t *testing.T) {
		attr := logger.Error(nil)
		assert.Empty(t, attr.Key)
	})
}

func TestErrorsAttr(t *testing.T) {
	t.Parallel()

	t.Run("groups non-nil errors", func(t *testing.T) {
		attr := logger.Errors(errors.New("one"), nil, errors.New("two"))
		assert.Equal(t, "errors", attr.Key)
		assert.Len(t, attr.Value.Group(), 2)
	})

	t.Run("all nil yields empty attr", func(t *testing.T) {
		attr := logger.Errors(nil, nil)
		assert.Empty(t, attr.Key)
	})
}

func TestGroupAttr(t *testing.T) {
	t.Parallel()

	attr := logger.Group("flow", slog.String("step", "callback"))
	assert.Equal(t, "flow", attr.Key)
	assert.Len(t, attr.Value.Group(), 1)
}

func TestIdentityAttrs(t *testing.T) {
	t.Parallel()

	t.Run("user id", func(t *testing.T) {
		attr := logger.UserID("001234.abcdef")
		assert.Equal(t, "user_id", attr.Key)
		assert.Equal(t, "001234.abcdef", attr.Value.Any())
	})

	t.Run("nil user id yields empty attr", func(t *testing.T) {
		assert.Empty(t, logger.UserID(nil).Key)
	})

	t.Run("request id", func(t *testing.T) {
		attr := logger.RequestID("req-1")
		assert.Equal(t, "request_id", attr.Key)
	})
}

func TestFlowAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Component("appleauth").Equal(slog.String("component", "appleauth")))
	assert.True(t, logger.Event("login_completed").Equal(slog.String("event", "login_completed")))
	assert.True(t, logger.Provider("apple").Equal(slog.String("provider", "apple")))
	assert.True(t, logger.Claim("nonce").Equal(slog.String("claim", "nonce")))
}
