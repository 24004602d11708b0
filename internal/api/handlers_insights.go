package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Insights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.insightsService.Insights(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(insights)
}
