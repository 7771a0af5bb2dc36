package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/bantay"
)

// RequireAuth validates the bearer token and stores user/claims in the
// context for downstream handlers.
func RequireAuth(b *bantay.Bantay) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing token",
			})
		}

		sessionData, err := b.GetSession(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("user", sessionData.User)
		c.Locals("claims", sessionData.Claims)

		return c.Next()
	}
}

// extractToken extracts the authentication token from the request.
// Checks Authorization header (Bearer token) first, then falls back to cookie.
func extractToken(c fiber.Ctx) string {
	// Try Bearer token first
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	// Fall back to cookie
	return c.Cookies("auth_token")
}
