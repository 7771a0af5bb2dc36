package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/bantay"
)

// handleRegister returns a handler for the register endpoint
func handleRegister(b *bantay.Bantay) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input bantay.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		result, err := b.Register(input)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(result)
	}
}

// handleLogin returns a handler for the login endpoint. A 2FA-enabled
// account gets a challenge response instead of a token.
func handleLogin(b *bantay.Bantay) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input bantay.LoginInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		result, err := b.Login(input)
		if err != nil {
			return handleAuthError(c, err)
		}

		if result.Requires2FA {
			return c.Status(http.StatusAccepted).JSON(result)
		}

		setAuthCookie(c, b, result.Auth)
		return c.Status(http.StatusOK).JSON(result)
	}
}

type verifyOTPRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// handleVerifyOTP serves both branches: registration completion and
// login-time second factor. The response tags which one occurred.
func handleVerifyOTP(b *bantay.Bantay) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input verifyOTPRequest
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		result, err := b.VerifyOTP(input.UserID, input.Code)
		if err != nil {
			return handleAuthError(c, err)
		}

		if result.Outcome == bantay.OutcomeAuthenticated {
			setAuthCookie(c, b, result.Auth)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status": result.Outcome.String(),
			"auth":   result.Auth,
		})
	}
}

type resendOTPRequest struct {
	UserID string `json:"userId"`
}

// handleResendOTP returns a handler for the resend-otp endpoint
func handleResendOTP(b *bantay.Bantay) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input resendOTPRequest
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if err := b.ResendOTP(input.UserID); err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "verification code sent",
		})
	}
}

// handleGetSession returns the session data stored by RequireAuth
func handleGetSession() fiber.Handler {
	return func(c fiber.Ctx) error {
		user := c.Locals("user").(*bantay.User)
		claims := c.Locals("claims").(*bantay.TokenClaims)

		return c.Status(http.StatusOK).JSON(bantay.SessionData{
			User:   user,
			Claims: claims,
		})
	}
}

type twoFactorRequest struct {
	Enabled bool `json:"enabled"`
}

// handleSetTwoFactor toggles the second-factor requirement for the
// authenticated account.
func handleSetTwoFactor(b *bantay.Bantay) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input twoFactorRequest
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		user := c.Locals("user").(*bantay.User)
		if err := b.SetTwoFactor(user.ID, input.Enabled); err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"otpEnabled": input.Enabled,
		})
	}
}

// handleGoogleAuth is a placeholder; the token exchange is not wired up.
func handleGoogleAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.Status(http.StatusNotImplemented).JSON(fiber.Map{
			"error": bantay.ErrNotImplemented.Error(),
		})
	}
}

// setAuthCookie mirrors the issued access token into an HTTP-only cookie
// for browser clients. Header-based clients can ignore it.
func setAuthCookie(c fiber.Ctx, b *bantay.Bantay, auth *bantay.AuthResult) {
	cookie := &fiber.Cookie{
		Name:     "auth_token",
		Value:    auth.Token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	}
	if claims, err := b.Tokens.Verify(auth.Token); err == nil {
		cookie.Expires = claims.ExpiresAt
	}
	c.Cookie(cookie)
}

// handleAuthError maps authentication errors to appropriate HTTP responses
func handleAuthError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		// Unexpected store/signer failures must not leak internal detail
		return c.Status(status).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps bantay error types to HTTP status codes
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, bantay.ErrInvalidCredentials),
		errors.Is(err, bantay.ErrInvalidCode),
		errors.Is(err, bantay.ErrInvalidToken),
		errors.Is(err, bantay.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, bantay.ErrNotVerified):
		return http.StatusForbidden

	case errors.Is(err, bantay.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, bantay.ErrDuplicateAccount):
		return http.StatusConflict

	case errors.Is(err, bantay.ErrUsernameRequired),
		errors.Is(err, bantay.ErrEmailRequired),
		errors.Is(err, bantay.ErrPasswordRequired),
		errors.Is(err, bantay.ErrPasswordTooShort),
		errors.Is(err, bantay.ErrPasswordTooLong),
		errors.Is(err, bantay.ErrInvalidEmail),
		errors.Is(err, bantay.ErrOTPNotConfigured):
		return http.StatusBadRequest

	case errors.Is(err, bantay.ErrEmailDispatch):
		return http.StatusBadGateway

	case errors.Is(err, bantay.ErrNotImplemented):
		return http.StatusNotImplemented

	default:
		return http.StatusInternalServerError
	}
}
