package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/referral-api/referral_api/internal/auth"
)

const tokenScheme = "Token "

// TokenAuth returns a middleware that resolves an opaque bearer key from the
// Authorization header ("Token <key>", the scheme issued at verification)
// against the token store. The owning phone lands in request locals.
func TokenAuth(tokens auth.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), strings.ToLower(tokenScheme)) {
			return fiber.NewError(http.StatusUnauthorized, "missing token")
		}
		key := strings.TrimSpace(authz[len(tokenScheme):])
		if key == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing token")
		}

		token, err := tokens.FindByKey(c.UserContext(), key)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals("phone", token.Phone)
		return c.Next()
	}
}
