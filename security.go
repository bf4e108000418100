package tokens

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes       = 16
	kdfIterations   = 2048
	kdfKeyLength    = 32
	storedSeparator = "$"
)

// RandomHex returns length random bytes as a hex string.
func RandomHex(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to read random bytes")
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a stored credential from a clear text password using
// PBKDF2-SHA512 over a fresh random salt. The salt is embedded in the
// result, so hashing the same password twice yields different values.
func HashPassword(password string) (string, error) {
	if _, err := Require(password, "password"); err != nil {
		return "", err
	}

	salt, err := RandomHex(saltBytes)
	if err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), kdfIterations, kdfKeyLength, sha512.New)
	return salt + storedSeparator + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key with the salt embedded in the stored
// credential and compares in constant time. Stored credentials are assumed
// well formed by construction; anything unsplittable simply fails to match.
func VerifyPassword(password, stored string) bool {
	salt, hash, ok := strings.Cut(stored, storedSeparator)
	if !ok {
		return false
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), kdfIterations, kdfKeyLength, sha512.New)
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(key)), []byte(hash)) == 1
}
