package tokens_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticConfigValidate(t *testing.T) {
	t.Run("accepts a complete HMAC config", func(t *testing.T) {
		cfg := newTestConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects a missing signing key", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.SigningKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects an unknown signing method", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.SigningMethod = "none"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a missing issuer", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Issuer = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects an empty audience", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Audience = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects zero expirations", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.AccessExpiration = 0
		assert.Error(t, cfg.Validate())

		cfg = newTestConfig()
		cfg.RefreshExpiration = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("asymmetric methods need a verifying key", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.SigningMethod = "RS256"
		cfg.VerifyingKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("HMAC reuses the shared secret", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.SigningMethod = "HS512"
		cfg.VerifyingKey = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestStaticConfigGetters(t *testing.T) {
	cfg := newTestConfig()
	assert.Equal(t, "test-signing-secret", cfg.GetSigningKey())
	assert.Equal(t, "HS256", cfg.GetSigningMethod())
	assert.Equal(t, "go-tokens-test", cfg.GetIssuer())
	assert.Equal(t, []string{"api.example.com"}, cfg.GetAudience())
	assert.Equal(t, 15*time.Minute, cfg.GetAccessTokenExpiration())
	assert.Equal(t, 24*time.Hour, cfg.GetRefreshTokenExpiration())
}
