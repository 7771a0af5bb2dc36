package core

type UserStorage interface {
	// CreateUser inserts the row and fills in ID/CreatedAt/UpdatedAt.
	// A username or email collision surfaces as ErrDuplicateAccount; the
	// store's uniqueness constraint is the authority, never an
	// application-level pre-check, so concurrent duplicate submissions
	// cannot race past it.
	CreateUser(u *User) error

	// Query methods
	GetUserByID(id string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	GetUserByUsernameOrEmail(username, email string) (*User, error)

	// Partial updates
	SetUserOTPSecret(id, secret string) error
	MarkUserVerified(id string) error // sets is_verified and otp_verified together
	SetUserTwoFactor(id string, enabled bool) error
}

type SessionStorage interface {
	CreateSession(session *Session) error

	// Query methods
	GetSessionByID(id string) (*Session, error)
	GetUserSessions(userID string) ([]*Session, error)

	// Cleanup. Never called by the engine itself; expiry is enforced by
	// token signature verification, rows are swept externally.
	DeleteExpiredSessions() (int, error)
}

type AuthStorage interface {
	UserStorage
	SessionStorage
}
