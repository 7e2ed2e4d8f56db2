package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the login and verification endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Phone string `json:"phone"`
}

type loginResponse struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// Login issues a verification code for a valid phone number.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	res, err := h.service.Login(c.UserContext(), req.Phone)
	if err != nil {
		if errors.Is(err, ErrInvalidPhone) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(loginResponse{Phone: res.Phone, Code: res.Code})
}

type verifyRequest struct {
	Phone  string `json:"phone"`
	Code   string `json:"code"`
	Verify string `json:"verify"`
}

type verifyResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Verify confirms the code and logs the user in, creating the account on
// first contact. Responds 201 for a fresh account, 200 for a returning one.
func (h *Handler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	res, err := h.service.Verify(c.UserContext(), req.Phone, req.Code, req.Verify)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if res.Created {
		return c.Status(http.StatusCreated).JSON(verifyResponse{Message: "User created and logged in.", Token: res.Token})
	}
	return c.Status(http.StatusOK).JSON(verifyResponse{Message: "Login successful.", Token: res.Token})
}
