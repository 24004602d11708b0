package api

import (
	"strings"

	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListEnergy(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	rawFrom := strings.TrimSpace(c.Query("from"))
	rawTo := strings.TrimSpace(c.Query("to"))
	if rawFrom != "" || rawTo != "" {
		from, err := services.ParseDay(rawFrom, handler.location)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		to, err := services.ParseDay(rawTo, handler.location)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		logs, err := handler.energyService.ListEnergyRange(user.ID, from, to)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{"logs": logs})
	}

	limit, valid := queryInt(c, "limit", 0)
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}
	logs, err := handler.energyService.ListEnergy(user.ID, limit)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs})
}

func (handler *Handler) LogEnergy(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.EnergyInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	entry, err := handler.energyService.LogEnergy(*user, input, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) TodayEnergy(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.energyService.TodayEnergy(user.ID, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}
