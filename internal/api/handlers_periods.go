package api

import (
	"strings"

	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type periodStartInput struct {
	Date string `json:"date"`
}

type periodEndInput struct {
	EndDate string `json:"end_date"`
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit, valid := queryInt(c, "limit", 0)
	if !valid || limit < 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}
	periods, err := handler.periodService.ListPeriods(user.ID, limit)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	response := fiber.Map{"periods": periods}
	if average, known := services.AverageCycleLength(periods); known {
		response["average_cycle_length"] = average
	}
	return c.JSON(response)
}

func (handler *Handler) LogPeriodStart(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := periodStartInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	now := handler.now()
	day := now
	if raw := strings.TrimSpace(input.Date); raw != "" {
		parsed, err := services.ParseDay(raw, handler.location)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		day = parsed
	}

	entry, created, err := handler.periodService.LogPeriodStart(user.ID, day, now)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
		handler.log.Info("period start logged", zap.Uint("user_id", user.ID), zap.Uint("period_id", entry.ID))
	}
	return c.Status(status).JSON(entry)
}

func (handler *Handler) LogPeriodEnd(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	periodID, valid := paramID(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	input := periodEndInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	endDate, err := services.ParseDay(input.EndDate, handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	entry, err := handler.periodService.LogPeriodEnd(user.ID, periodID, endDate)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}
