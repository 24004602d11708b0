package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired loads the current user. Accounts flagged for a password
// change may only change the password or log out.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	if user.MustChangePassword && !passwordChangeAllowedPath(c.Path()) {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}
	return c.Next()
}

func passwordChangeAllowedPath(path string) bool {
	switch path {
	case "/api/auth/change-password", "/api/auth/logout", "/api/auth/me":
		return true
	default:
		return false
	}
}
