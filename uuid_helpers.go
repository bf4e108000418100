package tokens

import "github.com/google/uuid"

// NewTokenID mints the unique token identifier (jti) for an issued token.
func NewTokenID() uuid.UUID {
	return uuid.New()
}

// HasUserUUID reports whether Session.GetUserUUID will succeed.
func HasUserUUID(session Session) bool {
	if session == nil {
		return false
	}
	_, err := session.GetUserUUID()
	return err == nil
}
