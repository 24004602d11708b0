package api

import (
	"github.com/HarshitaThota/Flow-State/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName      = "flowstate_auth"
	requestIDHeader     = "X-Request-ID"
	contextUserKey      = "current_user"
	contextRequestIDKey = "request_id"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(contextRequestIDKey).(string)
	return id
}
