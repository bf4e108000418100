package tokens_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequire(t *testing.T) {
	t.Run("passes present values through", func(t *testing.T) {
		got, err := tokens.Require("alice", "username")
		require.NoError(t, err)
		assert.Equal(t, "alice", got)

		ttl, err := tokens.Require(15*time.Minute, "expiresIn")
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, ttl)
	})

	t.Run("rejects zero values", func(t *testing.T) {
		_, err := tokens.Require("", "username")
		require.Error(t, err)
		assert.True(t, tokens.IsMissingField(err))
		assert.Contains(t, err.Error(), "username")

		_, err = tokens.Require(time.Duration(0), "expiresIn")
		require.Error(t, err)
		assert.True(t, tokens.IsMissingField(err))
	})
}

func TestRequireOr(t *testing.T) {
	t.Run("prefers the present value", func(t *testing.T) {
		got, err := tokens.RequireOr("custom", "issuer", "default")
		require.NoError(t, err)
		assert.Equal(t, "custom", got)
	})

	t.Run("falls back when absent", func(t *testing.T) {
		got, err := tokens.RequireOr("", "issuer", "default")
		require.NoError(t, err)
		assert.Equal(t, "default", got)
	})

	t.Run("fails when both are absent", func(t *testing.T) {
		_, err := tokens.RequireOr("", "issuer", "")
		require.Error(t, err)
		assert.True(t, tokens.IsMissingField(err))
	})
}

func TestRequireSlice(t *testing.T) {
	t.Run("nil is absent", func(t *testing.T) {
		_, err := tokens.RequireSlice[[]tokens.Capability](nil, "authorities")
		require.Error(t, err)
		assert.True(t, tokens.IsMissingField(err))
	})

	t.Run("empty is present", func(t *testing.T) {
		got, err := tokens.RequireSlice([]tokens.Capability{}, "authorities")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("elements pass through", func(t *testing.T) {
		got, err := tokens.RequireSlice([]tokens.Capability{"admin"}, "authorities")
		require.NoError(t, err)
		assert.Equal(t, []tokens.Capability{"admin"}, got)
	})
}
