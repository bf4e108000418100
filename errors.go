package tokens

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeMissingField   = "tokens_missing_field"
	TextCodeNotUnique      = "tokens_not_unique"
	TextCodeNotFound       = "tokens_not_found"
	TextCodeBadCredentials = "tokens_bad_credentials"
	TextCodeTokenExpired   = "tokens_token_expired"
	TextCodeTokenMalformed = "tokens_token_malformed"
)

// ErrNotFound is returned when a user or token record does not resolve.
var ErrNotFound = errors.New("record was not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrNotUnique is returned when persistence rejects a duplicate token id or
// signed string. Collisions are never silently overwritten.
var ErrNotUnique = errors.New("record must be unique", errors.CategoryConflict).
	WithTextCode(TextCodeNotUnique).
	WithCode(errors.CodeConflict)

// ErrBadCredentials is returned for a password mismatch and for an unknown
// username alike, so the two cases cannot be told apart by a caller.
var ErrBadCredentials = errors.New("bad credentials", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token's envelope verifies but its
// expiry has passed.
var ErrTokenExpired = errors.New("token has expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for a bad signature, wrong algorithm, a
// failed registered claim, or a payload missing userId/authorities/jti.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// MissingField is the validation error for a required value that is absent.
func MissingField(key string) *errors.Error {
	return errors.New(key+" cannot be empty", errors.CategoryValidation).
		WithTextCode(TextCodeMissingField).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"key": key})
}

// IsMissingField reports whether err is a missing required field.
func IsMissingField(err error) bool {
	return hasTextCode(err, TextCodeMissingField)
}

// IsNotUnique reports whether err is a persistence uniqueness violation.
func IsNotUnique(err error) bool {
	return hasTextCode(err, TextCodeNotUnique)
}

// IsNotFound reports whether err is a missing user or token record.
func IsNotFound(err error) bool {
	return hasTextCode(err, TextCodeNotFound)
}

// IsBadCredentials reports whether err is a credential rejection.
func IsBadCredentials(err error) bool {
	return hasTextCode(err, TextCodeBadCredentials)
}

// IsTokenExpiredError reports whether err is an expired token.
func IsTokenExpiredError(err error) bool {
	return hasTextCode(err, TextCodeTokenExpired)
}

// IsMalformedError reports whether err is a malformed token.
func IsMalformedError(err error) bool {
	return hasTextCode(err, TextCodeTokenMalformed)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == code
	}
	return false
}

// ensureDomain passes domain errors through unchanged and wraps anything
// else as internal, keeping the cause for diagnostics only.
func ensureDomain(err error, msg string) error {
	if err == nil {
		return nil
	}
	var rich *errors.Error
	if errors.As(err, &rich) {
		return err
	}
	return errors.Wrap(err, errors.CategoryInternal, msg)
}

func userNotFound(field, value string) error {
	clone := ErrNotFound.Clone()
	clone.Message = "user was not found"
	return clone.WithMetadata(map[string]any{field: value})
}

func tokenNotFound(tokenID string) error {
	clone := ErrNotFound.Clone()
	clone.Message = "token was not found"
	return clone.WithMetadata(map[string]any{"tokenId": tokenID})
}

func badCredentials(username string) error {
	return ErrBadCredentials.Clone().WithMetadata(map[string]any{
		"username": username,
	})
}

func malformedToken(cause error) error {
	clone := ErrTokenMalformed.Clone()
	if cause == nil {
		return clone
	}
	clone.Source = cause
	return clone.WithMetadata(map[string]any{"cause": cause.Error()})
}
