package tokens

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Auther composes the credential verifier, the token codec, and the
// repositories into the authentication flows. All durable state lives in
// storage; Auther itself is safe for concurrent use.
type Auther struct {
	repos        RepositoryManager
	tokenService TokenService
	accessTTL    time.Duration
	refreshTTL   time.Duration
	logger       Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator builds an Auther from the repository manager and the
// deployment configuration.
func NewAuthenticator(repos RepositoryManager, cfg Config) (*Auther, error) {
	tokenService, err := NewTokenService(cfg, nil)
	if err != nil {
		return nil, err
	}

	if _, err := Require(cfg.GetAccessTokenExpiration(), "accessExpiresIn"); err != nil {
		return nil, err
	}
	if _, err := Require(cfg.GetRefreshTokenExpiration(), "refreshExpiresIn"); err != nil {
		return nil, err
	}

	return &Auther{
		repos:        repos,
		tokenService: tokenService,
		accessTTL:    cfg.GetAccessTokenExpiration(),
		refreshTTL:   cfg.GetRefreshTokenExpiration(),
		logger:       defLogger{},
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService sets a custom codec, e.g. one wrapped for metrics.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the codec used by this authenticator.
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// AuthenticateByPassword resolves the user by username and verifies the
// password. An unknown username and a password mismatch produce the same
// bad-credentials error, so callers cannot enumerate usernames.
func (s *Auther) AuthenticateByPassword(ctx context.Context, username, password string) (*AuthResult, error) {
	if _, err := Require(username, "username"); err != nil {
		return nil, err
	}
	if _, err := Require(password, "password"); err != nil {
		return nil, err
	}

	user, err := s.repos.Users().GetByUsername(ctx, username)
	if err != nil {
		if IsNotFound(err) {
			s.logger.Debug("unknown username %s", username)
			return nil, badCredentials(username)
		}
		return nil, ensureDomain(err, "failed to resolve user during authentication")
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.logger.Debug("password mismatch for user %s", user.ID)
		return nil, badCredentials(username)
	}

	return s.AuthenticateByID(ctx, user.ID)
}

// AuthenticateByID loads the user and its current authorities, then signs
// and persists a matched access/refresh pair in one transaction. If either
// record fails to persist, the whole issuance fails and no orphaned single
// token remains.
func (s *Auther) AuthenticateByID(ctx context.Context, userID uuid.UUID) (*AuthResult, error) {
	if userID == uuid.Nil {
		return nil, MissingField("userId")
	}

	user, err := s.repos.Users().GetByUserID(ctx, userID)
	if err != nil {
		return nil, ensureDomain(err, "failed to resolve user")
	}

	authorities, err := s.repos.Users().FindAuthoritiesByUserID(ctx, user.ID)
	if err != nil {
		return nil, ensureDomain(err, "failed to resolve user authorities")
	}

	result := &AuthResult{}
	err = s.repos.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if result.Auth, err = s.issueTx(ctx, tx, user.ID, authorities, SubjectAuth, s.accessTTL); err != nil {
			return err
		}
		if result.Refresh, err = s.issueTx(ctx, tx, user.ID, authorities, SubjectRefresh, s.refreshTTL); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, ensureDomain(err, "failed to issue token pair")
	}

	s.logger.Info("issued token pair for user %s", user.ID)
	return result, nil
}

// AuthenticateByRefreshToken rotates a refresh token: verify, cross-check
// the persisted record, invalidate it, then issue a new pair. Invalidation
// commits strictly before the new pair's persistence begins. If invalidation
// fails no pair is issued; if issuance fails afterwards the refresh token is
// burned and the caller must re-authenticate by password.
func (s *Auther) AuthenticateByRefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if _, err := Require(refreshToken, "refreshToken"); err != nil {
		return nil, err
	}

	claims, err := s.tokenService.Verify(refreshToken, VerifyOptions{Subject: SubjectRefresh})
	if err != nil {
		return nil, err
	}

	tokenID, err := uuid.Parse(claims.TokenID())
	if err != nil {
		return nil, malformedToken(err)
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, malformedToken(err)
	}

	if _, err := s.repos.Tokens().FindActive(ctx, tokenID, refreshToken, userID); err != nil {
		return nil, ensureDomain(err, "failed to locate refresh token record")
	}

	if _, err := s.repos.Tokens().Invalidate(ctx, tokenID); err != nil {
		return nil, ensureDomain(err, "failed to invalidate refresh token")
	}

	return s.AuthenticateByID(ctx, userID)
}

// VerifyAccessToken checks the envelope and payload of an access token and
// returns a session view over its claims. Authorities come from the claims
// embedded at issuance; they are not re-read from storage for the token's
// stated lifetime.
func (s *Auther) VerifyAccessToken(ctx context.Context, tokenString string) (Session, error) {
	claims, err := s.tokenService.Verify(tokenString, VerifyOptions{Subject: SubjectAuth})
	if err != nil {
		return nil, err
	}
	return sessionFromClaims(claims)
}

func (s *Auther) issueTx(ctx context.Context, tx bun.IDB, userID uuid.UUID, authorities []Capability, subject string, ttl time.Duration) (*Token, error) {
	tokenID := NewTokenID()
	claims := &TokenClaims{
		UserID:      userID.String(),
		Authorities: authorities,
	}

	signed, err := s.tokenService.Sign(claims, SignOptions{
		Subject:    subject,
		Expiration: ttl,
		TokenID:    tokenID.String(),
	})
	if err != nil {
		return nil, ensureDomain(err, "failed to sign "+subject+" token")
	}

	return s.repos.Tokens().CreateTx(ctx, tx, tokenID, signed, userID)
}
