package core

import "errors"

// Authentication errors
var (
	ErrDuplicateAccount   = errors.New("username or email already exists") // 409 Conflict
	ErrInvalidCredentials = errors.New("invalid username or password")     // 401 Unauthorized
	ErrNotVerified        = errors.New("account is not verified yet")      // 403 Forbidden
	ErrUserNotFound       = errors.New("user not found")                   // 404 Not Found
)

// Second-factor errors
var (
	ErrOTPNotConfigured = errors.New("otp is not set up for this user") // 400
	ErrInvalidCode      = errors.New("invalid verification code")       // 401
)

// Token and dispatch errors
var (
	ErrTokenGeneration = errors.New("failed to generate token")  // 500
	ErrEmailDispatch   = errors.New("failed to dispatch email")  // 502
	ErrInvalidToken    = errors.New("invalid session token")     // 401
	ErrSessionExpired  = errors.New("session expired")           // 401
	ErrCacheNotFound   = errors.New("session not found in cache")
)

// Validation errors (client input)
var (
	ErrUsernameRequired = errors.New("username is required")  // 400
	ErrEmailRequired    = errors.New("email is required")     // 400
	ErrPasswordRequired = errors.New("password is required")  // 400
	ErrPasswordTooShort = errors.New("password is too short") // 400
	ErrPasswordTooLong  = errors.New("password is too long")  // 400
	ErrInvalidEmail     = errors.New("invalid email format")  // 400
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("storage adapter is required") // 500
	ErrMailerRequired  = errors.New("mailer is required")          // 500
	ErrSecretRequired  = errors.New("secret is required")          // 500
	ErrSecretTooShort  = errors.New("secret too short")            // 500
)

var (
	ErrNotImplemented = errors.New("not implemented") // 501
)
