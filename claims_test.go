package tokens_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-tokens"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenClaimsAccessors(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	expires := issued.Add(15 * time.Minute)
	jti := uuid.NewString()

	claims := &tokens.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   tokens.SubjectAuth,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID:      uuid.NewString(),
		Authorities: []tokens.Capability{"admin", "billing"},
	}

	assert.Equal(t, jti, claims.TokenID())
	assert.Equal(t, tokens.SubjectAuth, claims.Subject())
	assert.Equal(t, issued, claims.IssuedAt())
	assert.Equal(t, expires, claims.Expires())
	assert.True(t, claims.HasAuthority("admin"))
	assert.False(t, claims.HasAuthority("superuser"))
	assert.Equal(t, []string{"admin", "billing"}, claims.AuthorityNames())
}

func TestTokenClaimsZeroTimes(t *testing.T) {
	claims := &tokens.TokenClaims{}
	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())
	assert.Empty(t, claims.AuthorityNames())
}
