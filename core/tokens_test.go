package core

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssuer_Issue(t *testing.T) {
	// Arrange
	storage := NewFakeAuthStorage()
	issuer := NewTokenIssuer(testSecret, SessionConfig{MaxAge: time.Hour}, storage)

	// Act
	issued, err := issuer.Issue("user-1")

	// Assert
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if issued.Token == "" || issued.RefreshToken == "" {
		t.Fatal("issued tokens should be non-empty")
	}
	if issued.Token == issued.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}

	session, err := storage.GetSessionByID(issued.Session.ID)
	if err != nil {
		t.Fatalf("session row not persisted: %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("session UserID = %q, want %q", session.UserID, "user-1")
	}
	if session.Token != issued.Token || session.RefreshToken != issued.RefreshToken {
		t.Error("session row does not carry the issued token pair")
	}

	// The row tracks the refresh token's fixed 7-day lifetime
	wantExpiry := time.Now().Add(7 * 24 * time.Hour)
	if diff := session.ExpiresAt.Sub(wantExpiry); diff > time.Minute || diff < -time.Minute {
		t.Errorf("session ExpiresAt = %v, want about %v", session.ExpiresAt, wantExpiry)
	}
}

func TestTokenIssuer_Issue_DistinctPairs(t *testing.T) {
	// Arrange
	storage := NewFakeAuthStorage()
	issuer := NewTokenIssuer(testSecret, SessionConfig{MaxAge: time.Hour}, storage)

	// Act
	first, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	second, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Assert
	seen := map[string]bool{}
	for _, token := range []string{first.Token, first.RefreshToken, second.Token, second.RefreshToken} {
		if seen[token] {
			t.Fatal("issued tokens must be unique across pairs")
		}
		seen[token] = true
	}
	if storage.SessionCount() != 2 {
		t.Errorf("session count = %d, want 2", storage.SessionCount())
	}
}

func TestTokenIssuer_Verify(t *testing.T) {
	storage := NewFakeAuthStorage()
	issuer := NewTokenIssuer(testSecret, SessionConfig{MaxAge: time.Hour}, storage)

	t.Run("round trip", func(t *testing.T) {
		// Arrange
		issued, err := issuer.Issue("user-42")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		// Act
		claims, err := issuer.Verify(issued.Token)

		// Assert
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if claims.UserID != "user-42" {
			t.Errorf("UserID = %q, want %q", claims.UserID, "user-42")
		}
		wantExpiry := time.Now().Add(time.Hour)
		if diff := claims.ExpiresAt.Sub(wantExpiry); diff > time.Minute || diff < -time.Minute {
			t.Errorf("ExpiresAt = %v, want about %v", claims.ExpiresAt, wantExpiry)
		}
	})

	t.Run("refresh token verifies too", func(t *testing.T) {
		issued, err := issuer.Issue("user-42")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, err := issuer.Verify(issued.RefreshToken); err != nil {
			t.Fatalf("Verify(refresh) error = %v", err)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, err := issuer.Verify(""); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := issuer.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		// Arrange
		other := NewTokenIssuer("another-secret-of-sufficient-length", SessionConfig{MaxAge: time.Hour}, storage)
		issued, err := other.Issue("user-42")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		// Act
		_, err = issuer.Verify(issued.Token)

		// Assert
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		// Arrange: MaxAge in the past expires the access token immediately
		expiring := NewTokenIssuer(testSecret, SessionConfig{MaxAge: -time.Minute}, storage)
		issued, err := expiring.Issue("user-42")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		// Act
		_, err = issuer.Verify(issued.Token)

		// Assert
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("Verify() error = %v, want ErrSessionExpired", err)
		}
	})

	t.Run("token without a subject", func(t *testing.T) {
		// Arrange: well-signed but anonymous
		claims := jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("SignedString() error = %v", err)
		}

		// Act
		_, err = issuer.Verify(token)

		// Assert
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
		}
	})
}
