package api

import (
	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CycleToday(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	snapshot, err := handler.cycleService.Snapshot(*user, handler.now(), handler.forecastDays)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(snapshot)
}

func (handler *Handler) CycleForecast(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, valid := queryInt(c, "days", handler.forecastDays)
	if !valid || days < 1 || days > maxForecastDays {
		return apiError(c, fiber.StatusBadRequest, "invalid days")
	}

	forecast, err := handler.cycleService.Forecast(*user, handler.now(), days)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"days": forecast})
}

func (handler *Handler) CycleNextPeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, configured := services.CycleProfile(*user, handler.location)
	if !configured {
		return handler.respondServiceError(c, services.ErrCycleNotConfigured)
	}
	today := services.DateAtLocation(handler.now(), handler.location)
	next := cycle.NextPeriodDate(profile, today)
	return c.JSON(fiber.Map{
		"next_period": next.Format(dayLayout),
		"days_until":  cycle.DaysBetween(today, next),
	})
}

func (handler *Handler) PhaseDetails(c *fiber.Ctx) error {
	phase, err := cycle.ParsePhase(c.Params("phase"))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "unknown phase")
	}
	return c.JSON(fiber.Map{
		"info":              cycle.InfoFor(phase),
		"recommendations":   cycle.RecommendationsFor(phase),
		"energy_multiplier": cycle.EnergyMultiplier(phase),
	})
}

func (handler *Handler) TaskCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": cycle.TaskCategories()})
}
