package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Capability is a named permission granted to a user. A dedicated type keeps
// authority names from mixing with other identifier strings.
type Capability string

// Token subjects. Access tokens authorize API calls; refresh tokens mint a
// new pair exactly once.
const (
	SubjectAuth    = "auth"
	SubjectRefresh = "refresh"
)

// TokenClaims is the signed payload carried by every issued token. Every
// token embeds userId, the authority set, and a unique jti; the codec
// rejects tokens missing any of them, it never fills a default.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID      string       `json:"userId,omitempty"`
	Authorities []Capability `json:"authorities"`
}

// TokenID returns the unique token identifier (jti).
func (c *TokenClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

// Subject returns the subject claim.
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time.
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time.
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// HasAuthority checks whether the claim set grants a capability.
func (c *TokenClaims) HasAuthority(name Capability) bool {
	for _, authority := range c.Authorities {
		if authority == name {
			return true
		}
	}
	return false
}

// AuthorityNames flattens the authority set to plain strings for callers
// that log or serialize them.
func (c *TokenClaims) AuthorityNames() []string {
	names := make([]string, 0, len(c.Authorities))
	for _, authority := range c.Authorities {
		names = append(names, string(authority))
	}
	return names
}
