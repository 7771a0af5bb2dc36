package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/bantay"
)

type Adapter struct {
	app *fiber.App
}

var _ bantay.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

func (a *Adapter) RegisterRoutes(b *bantay.Bantay) error {
	api := a.app.Group(b.BasePath)

	// Public routes
	api.Post("/register", handleRegister(b))
	api.Post("/login", handleLogin(b))
	api.Post("/verify-otp", handleVerifyOTP(b))
	api.Post("/resend-otp", handleResendOTP(b))

	// Federated login is stubbed; no working token exchange
	api.Get("/google", handleGoogleAuth())

	// Protected routes (middleware runs before the handler)
	api.Get("/session", RequireAuth(b), handleGetSession())
	api.Post("/two-factor", RequireAuth(b), handleSetTwoFactor(b))

	return nil
}
