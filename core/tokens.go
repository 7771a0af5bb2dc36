package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lborres/bantay/pkg/crypto"
)

// refreshTokenMaxAge is fixed: the Session row's ExpiresAt tracks the
// longer-lived refresh token.
const refreshTokenMaxAge = 7 * 24 * time.Hour

type SessionConfig struct {
	MaxAge time.Duration // access token lifetime
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxAge: 24 * time.Hour,
	}
}

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenIssuer mints signed, time-limited bearer token pairs and records
// each pair as a Session row. Signature verification, not a row lookup,
// decides token validity at request time; there is no revocation here.
type TokenIssuer struct {
	secret  []byte
	config  SessionConfig
	storage SessionStorage
}

func NewTokenIssuer(secret string, config SessionConfig, storage SessionStorage) *TokenIssuer {
	if config.MaxAge == 0 {
		config = DefaultSessionConfig()
	}
	return &TokenIssuer{
		secret:  []byte(secret),
		config:  config,
		storage: storage,
	}
}

type IssueResult struct {
	Session      *Session `json:"session"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
}

// Issue signs a fresh access/refresh token pair for the user and persists
// the Session row. Each token carries its own random jti, so the two are
// never equal even when signed within the same second.
func (ti *TokenIssuer) Issue(userID string) (*IssueResult, error) {
	now := time.Now()

	token, err := ti.sign(userID, now, ti.config.MaxAge)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	refreshToken, err := ti.sign(userID, now, refreshTokenMaxAge)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	id, err := crypto.NanoID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &Session{
		ID:           id,
		UserID:       userID,
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(refreshTokenMaxAge),
		CreatedAt:    now,
	}

	if err := ti.storage.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	return &IssueResult{
		Session:      session,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (ti *TokenIssuer) sign(userID string, now time.Time, maxAge time.Duration) (string, error) {
	jti, err := crypto.NanoID()
	if err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(maxAge)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// Verify checks signature and expiry of a bearer token and returns its
// claims. No storage access.
func (ti *TokenIssuer) Verify(token string) (*TokenClaims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	verified := &TokenClaims{UserID: claims.Subject}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}
	return verified, nil
}
