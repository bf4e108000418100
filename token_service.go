package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService signs and verifies claim-bearing tokens.
type TokenService interface {
	Sign(claims *TokenClaims, opts SignOptions) (string, error)
	Verify(tokenString string, opts VerifyOptions) (*TokenClaims, error)
}

// SignOptions selects the per-token signing inputs. Every field is
// mandatory: the codec never signs with an implicit subject, expiry, or
// token id, so a token minted for one context cannot be replayed in another.
type SignOptions struct {
	Subject    string
	Expiration time.Duration
	TokenID    string
}

// VerifyOptions selects the expected subject for verification. Issuer and
// audience come from the service configuration and are always enforced.
type VerifyOptions struct {
	Subject string
}

// TokenServiceImpl implements the TokenService interface over a single
// static signing key pair.
type TokenServiceImpl struct {
	material *signingMaterial
	issuer   string
	audience jwt.ClaimStrings
	logger   Logger
}

var _ TokenService = (*TokenServiceImpl)(nil)

// NewTokenService resolves the configured key material and returns a codec
// bound to the deployment's issuer and audience.
func NewTokenService(cfg Config, logger Logger) (*TokenServiceImpl, error) {
	if logger == nil {
		logger = defLogger{}
	}

	material, err := resolveSigningMaterial(cfg.GetSigningMethod(), cfg.GetSigningKey(), cfg.GetVerifyingKey())
	if err != nil {
		return nil, err
	}

	return &TokenServiceImpl{
		material: material,
		issuer:   cfg.GetIssuer(),
		audience: jwt.ClaimStrings(cfg.GetAudience()),
		logger:   logger,
	}, nil
}

// Sign validates the claim payload and options, stamps the registered
// claims, and returns the signed token string.
func (ts *TokenServiceImpl) Sign(claims *TokenClaims, opts SignOptions) (string, error) {
	if claims == nil {
		return "", MissingField("claims")
	}
	if _, err := Require(claims.UserID, "userId"); err != nil {
		return "", err
	}
	if _, err := RequireSlice(claims.Authorities, "authorities"); err != nil {
		return "", err
	}
	if _, err := Require(ts.issuer, "issuer"); err != nil {
		return "", err
	}
	if len(ts.audience) == 0 {
		return "", MissingField("audience")
	}
	if _, err := Require(opts.Subject, "subject"); err != nil {
		return "", err
	}
	if _, err := Require(opts.Expiration, "expiresIn"); err != nil {
		return "", err
	}
	if _, err := Require(opts.TokenID, "jwtid"); err != nil {
		return "", err
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    ts.issuer,
		Subject:   opts.Subject,
		Audience:  append(jwt.ClaimStrings(nil), ts.audience...),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(opts.Expiration)),
		ID:        opts.TokenID,
	}

	token := jwt.NewWithClaims(ts.material.method, claims)

	signed, err := token.SignedString(ts.material.signKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	ts.logger.Debug("signed %s token %s for user %s", opts.Subject, opts.TokenID, claims.UserID)
	return signed, nil
}

// Verify checks the envelope with the verification key (signature, pinned
// algorithm, issuer, audience, subject, expiry) and then the payload shape.
// An expired token fails with ErrTokenExpired; every other problem,
// including a cryptographically valid but incomplete payload, fails with
// ErrTokenMalformed.
func (ts *TokenServiceImpl) Verify(tokenString string, opts VerifyOptions) (*TokenClaims, error) {
	if _, err := Require(tokenString, "token"); err != nil {
		return nil, err
	}
	if _, err := Require(opts.Subject, "subject"); err != nil {
		return nil, err
	}
	if _, err := Require(ts.issuer, "issuer"); err != nil {
		return nil, err
	}
	if len(ts.audience) == 0 {
		return nil, MissingField("audience")
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{ts.material.method.Alg()}),
		jwt.WithIssuer(ts.issuer),
		jwt.WithAudience(ts.audience...),
		jwt.WithSubject(opts.Subject),
		jwt.WithExpirationRequired(),
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		return ts.material.verifyKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService verify could not decode claims")
		return nil, ErrTokenMalformed
	}

	if err := validatePayloadShape(claims); err != nil {
		ts.logger.Error("TokenService verify rejected incomplete payload: %v", err)
		return nil, err
	}

	return claims, nil
}

// validatePayloadShape rejects tokens whose envelope verified but whose
// decoded payload is missing userId, authorities, or jti. A structurally
// valid but semantically incomplete token is equally untrustworthy.
func validatePayloadShape(claims *TokenClaims) error {
	if _, err := Require(claims.UserID, "userId"); err != nil {
		return malformedToken(err)
	}
	if _, err := RequireSlice(claims.Authorities, "authorities"); err != nil {
		return malformedToken(err)
	}
	if _, err := Require(claims.RegisteredClaims.ID, "jti"); err != nil {
		return malformedToken(err)
	}
	return nil
}
