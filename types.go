package tokens

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds the operations the transport layer consumes. Every
// authentication path returns the same matched access/refresh pair or a
// typed failure.
type Authenticator interface {
	AuthenticateByPassword(ctx context.Context, username, password string) (*AuthResult, error)
	AuthenticateByID(ctx context.Context, userID uuid.UUID) (*AuthResult, error)
	AuthenticateByRefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	VerifyAccessToken(ctx context.Context, tokenString string) (Session, error)
}

// AuthResult pairs the access and refresh token records minted in one
// logical issuance. It is a view over two persisted records, not an entity
// of its own.
type AuthResult struct {
	Auth    *Token `json:"auth"`
	Refresh *Token `json:"refresh"`
}

// PasswordAuthenticator authenticates passwords.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, stored string) bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] TOKENS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] TOKENS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] TOKENS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] TOKENS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
