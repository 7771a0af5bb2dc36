package bantay

import (
	"fmt"
	"time"

	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/pkg/crypto"
)

// interfaces
type (
	AuthStorage    = core.AuthStorage
	UserStorage    = core.UserStorage
	SessionStorage = core.SessionStorage
	Cache          = core.Cache

	HTTPAdapter = core.HTTPAdapter
	Mailer      = core.Mailer

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Bantay        = core.Bantay
	Config        = core.Config
	SessionConfig = core.SessionConfig
	CacheConfig   = core.CacheConfig
	TokenIssuer   = core.TokenIssuer
	OTPCodec      = crypto.OTPCodec
)

type (
	User        = core.User
	Session     = core.Session
	SessionData = core.SessionData
	TokenClaims = core.TokenClaims
	CacheStats  = core.CacheStats
)

// workflow inputs & results
type (
	RegisterInput   = core.RegisterInput
	RegisterResult  = core.RegisterResult
	LoginInput      = core.LoginInput
	LoginResult     = core.LoginResult
	AuthResult      = core.AuthResult
	OTPOutcome      = core.OTPOutcome
	VerifyOTPResult = core.VerifyOTPResult
)

const (
	OutcomeRegistrationCompleted = core.OutcomeRegistrationCompleted
	OutcomeAuthenticated         = core.OutcomeAuthenticated
)

const (
	defaultBasePath  = "/api/auth"
	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache     = core.NewInMemoryCache
	NewTokenIssuer       = core.NewTokenIssuer
	NewArgon2            = crypto.NewArgon2
	NewOTPCodec          = crypto.NewOTPCodec
	DefaultSessionConfig = core.DefaultSessionConfig
)

var (
	ErrDuplicateAccount   = core.ErrDuplicateAccount
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrNotVerified        = core.ErrNotVerified
	ErrUserNotFound       = core.ErrUserNotFound
)

var (
	ErrOTPNotConfigured = core.ErrOTPNotConfigured
	ErrInvalidCode      = core.ErrInvalidCode
)

var (
	ErrTokenGeneration = core.ErrTokenGeneration
	ErrEmailDispatch   = core.ErrEmailDispatch
	ErrInvalidToken    = core.ErrInvalidToken
	ErrSessionExpired  = core.ErrSessionExpired
	ErrCacheNotFound   = core.ErrCacheNotFound
)

var (
	ErrUsernameRequired = core.ErrUsernameRequired
	ErrEmailRequired    = core.ErrEmailRequired
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrPasswordTooShort = core.ErrPasswordTooShort
	ErrPasswordTooLong  = core.ErrPasswordTooLong
	ErrInvalidEmail     = core.ErrInvalidEmail
)

var (
	ErrStorageRequired = core.ErrStorageRequired
	ErrMailerRequired  = core.ErrMailerRequired
	ErrSecretRequired  = core.ErrSecretRequired
	ErrSecretTooShort  = core.ErrSecretTooShort
)

var (
	ErrNotImplemented = core.ErrNotImplemented
)

func New(config Config) (*Bantay, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Database == nil {
		return nil, ErrStorageRequired
	}
	if config.Mailer == nil {
		return nil, ErrMailerRequired
	}

	// Set Defaults

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheAdapter = NewInMemoryCache(CacheConfig{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		defaults := DefaultSessionConfig()
		sessionConfig = &defaults
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	otpCodec := config.OTP
	if otpCodec == nil {
		otpCodec = crypto.NewOTPCodec(config.Issuer)
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	tokens := core.NewTokenIssuer(config.Secret, *sessionConfig, config.Database)

	bantay := &Bantay{
		Store:     config.Database,
		Passwords: passwordHasher,
		OTP:       otpCodec,
		Tokens:    tokens,
		Mailer:    config.Mailer,
		Cache:     cacheAdapter,
		Logger:    config.Logger,
		BasePath:  basePath,

		FailRegistrationOnDispatchError: config.FailRegistrationOnDispatchError,
	}

	// Transport is an optional collaborator; the engine is fully usable
	// as a plain library.
	if config.HTTP != nil {
		if err := config.HTTP.RegisterRoutes(bantay); err != nil {
			return nil, err
		}
	}

	return bantay, nil
}
