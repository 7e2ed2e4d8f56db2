package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/referral-api/referral_api/internal/auth"
)

// RegisterAuthRoutes wires the login and verification endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	if rateLimiter != nil {
		r.Post("/login/", rateLimiter, h.Login)
	} else {
		r.Post("/login/", h.Login)
	}
	r.Post("/verify/", h.Verify)
}
