package core

import (
	"log/slog"

	"github.com/lborres/bantay/pkg/crypto"
)

type Config struct {
	// Secret signs bearer tokens. Minimum of 32 characters.
	Secret string

	Database AuthStorage
	Mailer   Mailer

	// Optional config
	HTTP           HTTPAdapter
	CacheAdapter   Cache
	DisableCache   bool
	SessionConfig  *SessionConfig
	PasswordHasher crypto.PasswordHandler
	OTP            *crypto.OTPCodec
	Logger         *slog.Logger
	BasePath       string

	// Issuer is the label shown by authenticator apps for provisioned
	// TOTP secrets.
	Issuer string

	// FailRegistrationOnDispatchError makes Register fail when the first
	// verification email cannot be handed to the mailer. The created user
	// row is kept either way; registration email is best-effort by
	// default.
	FailRegistrationOnDispatchError bool
}

// HTTPAdapter binds an HTTP framework's routes to the engine.
type HTTPAdapter interface {
	RegisterRoutes(b *Bantay) error
}

type Bantay struct {
	Store     AuthStorage
	Passwords crypto.PasswordHandler
	OTP       *crypto.OTPCodec
	Tokens    *TokenIssuer
	Mailer    Mailer
	Cache     Cache
	Logger    *slog.Logger
	BasePath  string

	FailRegistrationOnDispatchError bool
}
