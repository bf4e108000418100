package tokens

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Config carries the process-lifetime token settings: a single static
// signing key pair per deployment, issuer/audience strings, and the two
// expiry policies.
type Config interface {
	GetSigningKey() string
	GetVerifyingKey() string
	GetSigningMethod() string
	GetIssuer() string
	GetAudience() []string
	GetAccessTokenExpiration() time.Duration
	GetRefreshTokenExpiration() time.Duration
}

// StaticConfig implements Config from literal values.
type StaticConfig struct {
	SigningKey        string        `json:"signing_key,omitempty"`
	VerifyingKey      string        `json:"verifying_key,omitempty"`
	SigningMethod     string        `json:"signing_method,omitempty"`
	Issuer            string        `json:"issuer,omitempty"`
	Audience          []string      `json:"audience,omitempty"`
	AccessExpiration  time.Duration `json:"access_expiration,omitempty"`
	RefreshExpiration time.Duration `json:"refresh_expiration,omitempty"`
}

var _ Config = (*StaticConfig)(nil)

func (c *StaticConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *StaticConfig) GetVerifyingKey() string {
	return c.VerifyingKey
}

func (c *StaticConfig) GetSigningMethod() string {
	return c.SigningMethod
}

func (c *StaticConfig) GetIssuer() string {
	return c.Issuer
}

func (c *StaticConfig) GetAudience() []string {
	return c.Audience
}

func (c *StaticConfig) GetAccessTokenExpiration() time.Duration {
	return c.AccessExpiration
}

func (c *StaticConfig) GetRefreshTokenExpiration() time.Duration {
	return c.RefreshExpiration
}

// Validate checks the configuration before services are built from it.
// Asymmetric methods require distinct verifying key material; HMAC reuses
// the shared secret.
func (c StaticConfig) Validate() error {
	verifyingRules := []validation.Rule{}
	if !strings.HasPrefix(c.SigningMethod, "HS") {
		verifyingRules = append(verifyingRules, validation.Required)
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.SigningKey, validation.Required),
		validation.Field(&c.VerifyingKey, verifyingRules...),
		validation.Field(&c.SigningMethod, validation.Required, validation.In(supportedSigningMethods()...)),
		validation.Field(&c.Issuer, validation.Required),
		validation.Field(&c.Audience, validation.Required),
		validation.Field(&c.AccessExpiration, validation.Required),
		validation.Field(&c.RefreshExpiration, validation.Required),
	)
}
