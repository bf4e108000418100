package tokens

import (
	"time"

	"github.com/google/uuid"
)

// Session is the read-only view request middleware gets over a verified
// access token.
type Session interface {
	GetUserID() string
	GetUserUUID() (uuid.UUID, error)
	GetAuthorities() []Capability
	GetIssuer() string
	GetAudience() []string
	GetIssuedAt() *time.Time
	GetExpiration() *time.Time
	HasAuthority(name Capability) bool
}

var _ Session = (*SessionObject)(nil)

type SessionObject struct {
	UserID         string       `json:"user_id,omitempty"`
	Authorities    []Capability `json:"authorities,omitempty"`
	Issuer         string       `json:"issuer,omitempty"`
	Audience       []string     `json:"audience,omitempty"`
	IssuedAt       *time.Time   `json:"issued_at,omitempty"`
	ExpirationDate *time.Time   `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetAuthorities() []Capability {
	return s.Authorities
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiration() *time.Time {
	return s.ExpirationDate
}

// HasAuthority checks whether the session grants a capability.
func (s *SessionObject) HasAuthority(name Capability) bool {
	for _, authority := range s.Authorities {
		if authority == name {
			return true
		}
	}
	return false
}

// sessionFromClaims converts verified token claims into a session view.
func sessionFromClaims(claims *TokenClaims) (Session, error) {
	if claims == nil {
		return nil, ErrTokenMalformed
	}

	session := &SessionObject{
		UserID:      claims.UserID,
		Authorities: append([]Capability{}, claims.Authorities...),
		Issuer:      claims.RegisteredClaims.Issuer,
		Audience:    claims.RegisteredClaims.Audience,
	}

	if claims.RegisteredClaims.IssuedAt != nil {
		issuedAt := claims.RegisteredClaims.IssuedAt.Time
		session.IssuedAt = &issuedAt
	}

	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt := claims.RegisteredClaims.ExpiresAt.Time
		session.ExpirationDate = &expiresAt
	}

	return session, nil
}
