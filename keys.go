package tokens

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// signingMaterial is the resolved key material for one deployment: a single
// static signing/verification pair. With an asymmetric method the verifying
// side never holds the private key; with HMAC both sides share the secret.
type signingMaterial struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
}

func resolveSigningMaterial(method, signingKey, verifyingKey string) (*signingMaterial, error) {
	if _, err := Require(method, "algorithm"); err != nil {
		return nil, err
	}
	if _, err := Require(signingKey, "secret"); err != nil {
		return nil, err
	}

	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return nil, errors.New("unsupported signing method: "+method, errors.CategoryBadInput).
			WithMetadata(map[string]any{"algorithm": method})
	}

	material := &signingMaterial{method: signingMethod}

	switch signingMethod.(type) {
	case *jwt.SigningMethodHMAC:
		secret := []byte(signingKey)
		material.signKey = secret
		material.verifyKey = secret
		if verifyingKey != "" {
			material.verifyKey = []byte(verifyingKey)
		}

	case *jwt.SigningMethodRSA:
		if _, err := Require(verifyingKey, "publicKey"); err != nil {
			return nil, err
		}
		private, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(signingKey))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse RSA signing key")
		}
		public, err := jwt.ParseRSAPublicKeyFromPEM([]byte(verifyingKey))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse RSA verifying key")
		}
		material.signKey = private
		material.verifyKey = public

	case *jwt.SigningMethodECDSA:
		if _, err := Require(verifyingKey, "publicKey"); err != nil {
			return nil, err
		}
		private, err := jwt.ParseECPrivateKeyFromPEM([]byte(signingKey))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse ECDSA signing key")
		}
		public, err := jwt.ParseECPublicKeyFromPEM([]byte(verifyingKey))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse ECDSA verifying key")
		}
		material.signKey = private
		material.verifyKey = public

	case *jwt.SigningMethodEd25519:
		if _, err := Require(verifyingKey, "publicKey"); err != nil {
			return nil, err
		}
		private, err := jwt.ParseEdPrivateKeyFromPEM([]byte(signingKey))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse Ed25519 signing key")
		}
		public, err := jwt.ParseEdPublicKeyFromPEM([]byte(verifyingKey))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse Ed25519 verifying key")
		}
		material.signKey = private
		material.verifyKey = public

	default:
		return nil, errors.New("unsupported signing method: "+method, errors.CategoryBadInput).
			WithMetadata(map[string]any{"algorithm": method})
	}

	return material, nil
}

func supportedSigningMethods() []any {
	return []any{
		"HS256", "HS384", "HS512",
		"RS256", "RS384", "RS512",
		"ES256", "ES384", "ES512",
		"EdDSA",
	}
}
