package core

import (
	"fmt"
	"sync"
	"time"
)

// FakeAuthStorage is a test-only fake implementing AuthStorage. It keeps
// users and sessions in maps, enforces username/email uniqueness the way a
// real store's constraint would, and exposes error fields for behavior
// injection.
type FakeAuthStorage struct {
	mu       sync.RWMutex
	users    map[string]*User
	sessions map[string]*Session
	nextID   int

	createUserErr    error
	getUserErr       error
	updateUserErr    error
	createSessionErr error
}

func NewFakeAuthStorage() *FakeAuthStorage {
	return &FakeAuthStorage{
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

// UserStorage implementation

func (f *FakeAuthStorage) CreateUser(u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createUserErr != nil {
		return f.createUserErr
	}

	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrDuplicateAccount
		}
	}

	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *FakeAuthStorage) GetUserByID(id string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ErrUserNotFound
}

func (f *FakeAuthStorage) GetUserByUsername(username string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeAuthStorage) GetUserByUsernameOrEmail(username, email string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeAuthStorage) SetUserOTPSecret(id, secret string) error {
	return f.updateUser(id, func(u *User) {
		u.OTPSecret = secret
	})
}

func (f *FakeAuthStorage) MarkUserVerified(id string) error {
	return f.updateUser(id, func(u *User) {
		u.IsVerified = true
		u.OTPVerified = true
	})
}

func (f *FakeAuthStorage) SetUserTwoFactor(id string, enabled bool) error {
	return f.updateUser(id, func(u *User) {
		u.OTPEnabled = enabled
	})
}

func (f *FakeAuthStorage) updateUser(id string, apply func(*User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateUserErr != nil {
		return f.updateUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	apply(u)
	u.UpdatedAt = time.Now()
	return nil
}

// SessionStorage implementation

func (f *FakeAuthStorage) CreateSession(s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createSessionErr != nil {
		return f.createSessionErr
	}
	clone := *s
	f.sessions[s.ID] = &clone
	return nil
}

func (f *FakeAuthStorage) GetSessionByID(id string) (*Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if s, ok := f.sessions[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, ErrInvalidToken
}

func (f *FakeAuthStorage) GetUserSessions(userID string) ([]*Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var sessions []*Session
	for _, s := range f.sessions {
		if s.UserID == userID {
			clone := *s
			sessions = append(sessions, &clone)
		}
	}
	return sessions, nil
}

func (f *FakeAuthStorage) DeleteExpiredSessions() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	now := time.Now()
	for id, s := range f.sessions {
		if s.ExpiresAt.Before(now) {
			delete(f.sessions, id)
			count++
		}
	}
	return count, nil
}

// Test helper methods

func (f *FakeAuthStorage) UserCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.users)
}

func (f *FakeAuthStorage) SessionCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

// SentMail records one Mailer.Send call.
type SentMail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// FakeMailer is a test-only fake implementing Mailer. It records sent
// messages and exposes an error field for behavior injection.
type FakeMailer struct {
	mu      sync.Mutex
	sent    []SentMail
	sendErr error
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{}
}

func (f *FakeMailer) Send(to, subject, textBody, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, SentMail{To: to, Subject: subject, Text: textBody, HTML: htmlBody})
	return nil
}

func (f *FakeMailer) Sent() []SentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SentMail, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *FakeMailer) SetSendError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
}
