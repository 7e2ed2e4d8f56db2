package referral

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/referral-api/referral_api/internal/identity"
)

// Handler exposes the authenticated referral data endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a referral HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type overviewResponse struct {
	Users   []string `json:"users"`
	Ref     string   `json:"ref"`
	Invited string   `json:"invited"`
}

// Overview returns the caller's referral network.
func (h *Handler) Overview(c *fiber.Ctx) error {
	phone, _ := c.Locals("phone").(string)
	if phone == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	ov, err := h.service.Overview(c.UserContext(), phone)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "User not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(overviewResponse{Users: ov.Users, Ref: ov.Ref, Invited: ov.Invited})
}

type registerRequest struct {
	RefCode string `json:"ref_code"`
}

// Register records the caller's inviter. Failure statuses follow the check
// order in Service.Register.
func (h *Handler) Register(c *fiber.Ctx) error {
	phone, _ := c.Locals("phone").(string)
	if phone == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req registerRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	if err := h.service.Register(c.UserContext(), phone, req.RefCode); err != nil {
		switch {
		case errors.Is(err, ErrCodeRequired), errors.Is(err, ErrAlreadyRegistered), errors.Is(err, ErrSelfInvite):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, identity.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "User not found.")
		case errors.Is(err, ErrNoSuchCode):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Referral code %s successfully registered.", req.RefCode),
		"invited": req.RefCode,
	})
}
