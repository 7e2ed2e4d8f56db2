package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/referral-api/referral_api/internal/referral"
)

// RegisterDataRoutes wires the authenticated referral data endpoints.
func RegisterDataRoutes(r fiber.Router, h *referral.Handler) {
	r.Get("/data/", h.Overview)
	r.Post("/data/", h.Register)
}
