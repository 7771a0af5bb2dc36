package core

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/lborres/bantay/pkg/crypto"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// RegisterInput contains the data needed to register a new account
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResult identifies the newly created, still-unverified account.
// No token: the account must verify its first OTP code and then log in.
type RegisterResult struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// LoginInput contains the credentials for authentication
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is a completed authentication: a signed token pair plus the
// authenticated user.
type AuthResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// LoginResult is either a completed authentication or a second-factor
// challenge. Requires2FA and Auth are mutually exclusive: when Requires2FA
// is set no token has been issued yet.
type LoginResult struct {
	Requires2FA bool        `json:"requires2FA"`
	UserID      string      `json:"userId,omitempty"`
	Auth        *AuthResult `json:"auth,omitempty"`
}

// OTPOutcome tags which branch a VerifyOTP call took.
type OTPOutcome int

const (
	// OutcomeRegistrationCompleted is the first-ever successful code for
	// a freshly registered account. No token; the caller logs in
	// separately.
	OutcomeRegistrationCompleted OTPOutcome = iota + 1

	// OutcomeAuthenticated is a login-time second factor; Auth carries
	// the issued token pair.
	OutcomeAuthenticated
)

func (o OTPOutcome) String() string {
	switch o {
	case OutcomeRegistrationCompleted:
		return "registration_completed"
	case OutcomeAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// VerifyOTPResult is the tagged result of a VerifyOTP call. Auth is
// non-nil exactly when Outcome is OutcomeAuthenticated.
type VerifyOTPResult struct {
	Outcome OTPOutcome  `json:"outcome"`
	Auth    *AuthResult `json:"auth,omitempty"`
}

// Register creates a new unverified account, provisions its TOTP secret,
// and emails the first verification code.
//
// The user row is never rolled back on dispatch failure; whether that
// failure surfaces to the caller is governed by
// Config.FailRegistrationOnDispatchError.
func (b *Bantay) Register(input RegisterInput) (*RegisterResult, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	// Step 1: Hash the password
	hash, err := b.Passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 2: Create the user. The store's uniqueness constraint settles
	// duplicates, including concurrent ones.
	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := b.Store.CreateUser(user); err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Step 3: Provision a fresh TOTP secret and persist it on the user
	secret, err := b.OTP.NewSecret(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp secret: %w", err)
	}
	if err := b.Store.SetUserOTPSecret(user.ID, secret); err != nil {
		return nil, fmt.Errorf("failed to store otp secret: %w", err)
	}

	// Step 4: Email the first verification code
	code, err := b.OTP.GenerateCode(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp code: %w", err)
	}

	subject, text, html := verificationEmail(code)
	if err := b.Mailer.Send(user.Email, subject, text, html); err != nil {
		if b.FailRegistrationOnDispatchError {
			return nil, fmt.Errorf("%w: %v", ErrEmailDispatch, err)
		}
		if b.Logger != nil {
			b.Logger.Warn("verification email not sent", "email", user.Email, "error", err)
		}
	}

	return &RegisterResult{UserID: user.ID, Email: user.Email}, nil
}

// Login authenticates an account with username and password.
//
// When the account has the second factor enabled, Login emails a fresh
// code from the existing secret and returns a Requires2FA challenge
// instead of a token; VerifyOTP completes that flow.
func (b *Bantay) Login(input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, ErrUsernameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	// Step 1: Find the user. An unknown username yields the same error
	// kind as a wrong password; login never reveals whether the
	// username exists.
	user, err := b.Store.GetUserByUsername(input.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Verify the password
	valid, err := b.Passwords.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	// Step 3: An unverified account cannot log in, 2FA flag or not
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	// Step 4: Second factor required - mail a code from the existing
	// secret, no token on this path
	if user.OTPEnabled && user.OTPSecret != "" {
		code, err := b.OTP.GenerateCode(user.OTPSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to generate otp code: %w", err)
		}
		subject, text, html := loginCodeEmail(code)
		if err := b.Mailer.Send(user.Email, subject, text, html); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmailDispatch, err)
		}
		return &LoginResult{Requires2FA: true, UserID: user.ID}, nil
	}

	// Step 5: Issue the token pair
	auth, err := b.authenticate(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Auth: auth}, nil
}

// VerifyOTP checks a code against the account's stored secret and follows
// one of two branches, distinguished solely by the IsVerified flag: the
// first-ever verification completes registration (no token); any later one
// is a login-time second factor and issues a token pair.
func (b *Bantay) VerifyOTP(userID, code string) (*VerifyOTPResult, error) {
	user, err := b.lookupOTPUser(userID)
	if err != nil {
		return nil, err
	}

	if !b.OTP.VerifyCode(code, user.OTPSecret) {
		return nil, ErrInvalidCode
	}

	if !user.IsVerified {
		if err := b.Store.MarkUserVerified(user.ID); err != nil {
			return nil, fmt.Errorf("failed to mark user verified: %w", err)
		}
		return &VerifyOTPResult{Outcome: OutcomeRegistrationCompleted}, nil
	}

	auth, err := b.authenticate(user)
	if err != nil {
		return nil, err
	}
	return &VerifyOTPResult{Outcome: OutcomeAuthenticated, Auth: auth}, nil
}

// ResendOTP emails a fresh code derived from the account's existing
// secret. Idempotent: no account state changes, only the dispatch side
// effect.
func (b *Bantay) ResendOTP(userID string) error {
	user, err := b.lookupOTPUser(userID)
	if err != nil {
		return err
	}

	code, err := b.OTP.GenerateCode(user.OTPSecret)
	if err != nil {
		return fmt.Errorf("failed to generate otp code: %w", err)
	}

	subject, text, html := resendCodeEmail(code)
	if err := b.Mailer.Send(user.Email, subject, text, html); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDispatch, err)
	}
	return nil
}

// SetTwoFactor toggles whether login requires the TOTP second factor.
// Enabling requires a provisioned secret.
func (b *Bantay) SetTwoFactor(userID string, enabled bool) error {
	user, err := b.Store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if enabled && user.OTPSecret == "" {
		return ErrOTPNotConfigured
	}
	return b.Store.SetUserTwoFactor(user.ID, enabled)
}

// GetSession verifies a bearer token and resolves the owning user,
// consulting the session-data cache before the store.
func (b *Bantay) GetSession(token string) (*SessionData, error) {
	claims, err := b.Tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	key := crypto.HashToken(token)
	if b.Cache != nil {
		if data, err := b.Cache.Get(key); err == nil && data != nil {
			return data, nil
		}
	}

	user, err := b.Store.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	data := &SessionData{User: user, Claims: claims}
	if b.Cache != nil {
		// Best effort; a failing cache must not break auth
		_ = b.Cache.Set(key, data)
	}
	return data, nil
}

func (b *Bantay) authenticate(user *User) (*AuthResult, error) {
	issued, err := b.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:        issued.Token,
		RefreshToken: issued.RefreshToken,
		User:         user,
	}, nil
}

func (b *Bantay) lookupOTPUser(userID string) (*User, error) {
	user, err := b.Store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.OTPSecret == "" {
		return nil, ErrOTPNotConfigured
	}
	return user, nil
}

func validateRegisterInput(input RegisterInput) error {
	if strings.TrimSpace(input.Username) == "" {
		return ErrUsernameRequired
	}
	if strings.TrimSpace(input.Email) == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}
	if input.Password == "" {
		return ErrPasswordRequired
	}
	if len(input.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(input.Password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
