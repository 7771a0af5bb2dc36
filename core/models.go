package core

import "time"

// User represents one registered account.
//
// This is the "identity" - who someone is. The password hash and the TOTP
// secret live on the same row; neither is ever serialized to callers.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsVerified   bool      `json:"isVerified"`
	OTPEnabled   bool      `json:"otpEnabled"`
	OTPSecret    string    `json:"-"` // Never expose in JSON (security!)
	OTPVerified  bool      `json:"otpVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session represents one issued bearer token pair.
//
// A row exists for every completed login. Validity at request time is
// decided by token signature verification, not by a row lookup; ExpiresAt
// is advisory metadata for external cleanup.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Token        string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionData combines the verified token claims with the owning user.
// The model handed to transport middleware.
type SessionData struct {
	User   *User        `json:"user"`
	Claims *TokenClaims `json:"claims"`
}
