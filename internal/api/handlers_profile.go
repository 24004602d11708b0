package api

import (
	"encoding/json"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
)

const dayLayout = "2006-01-02"

type profileView struct {
	ID              uint             `json:"id"`
	Email           string           `json:"email"`
	Name            string           `json:"name"`
	CycleLength     int              `json:"cycle_length"`
	PeriodLength    int              `json:"period_length"`
	LastPeriodStart *string          `json:"last_period_start"`
	Chronotype      string           `json:"chronotype"`
	PeakHours       *cycle.PeakHours `json:"peak_hours"`
	Onboarded       bool             `json:"onboarded"`
}

type onboardedInput struct {
	Onboarded *bool `json:"onboarded"`
}

func (handler *Handler) profileView(user models.User) profileView {
	view := profileView{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		CycleLength:  user.CycleLength,
		PeriodLength: user.PeriodLength,
		Chronotype:   user.Chronotype,
		PeakHours:    services.PeakHoursOf(user),
		Onboarded:    user.Onboarded,
	}
	if user.LastPeriodStart != nil {
		formatted := user.LastPeriodStart.Format(dayLayout)
		view.LastPeriodStart = &formatted
	}
	return view
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(handler.profileView(*user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	update, err := parseProfileUpdate(c.Body())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.profileService.UpdateProfile(user.ID, update, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.profileView(updated))
}

// parseProfileUpdate tells an absent peak_hours key apart from an explicit null.
func parseProfileUpdate(body []byte) (services.ProfileUpdate, error) {
	if len(body) == 0 {
		return services.ProfileUpdate{}, nil
	}
	update := services.ProfileUpdate{}
	if err := json.Unmarshal(body, &update); err != nil {
		return services.ProfileUpdate{}, err
	}
	keys := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &keys); err != nil {
		return services.ProfileUpdate{}, err
	}
	_, update.PeakHoursSet = keys["peak_hours"]
	return update, nil
}

func (handler *Handler) SetOnboarded(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := onboardedInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	onboarded := input.Onboarded == nil || *input.Onboarded
	if onboarded {
		if _, configured := services.CycleProfile(*user, handler.location); !configured {
			return handler.respondServiceError(c, services.ErrCycleNotConfigured)
		}
	}

	if err := handler.profileService.SetOnboarded(user.ID, onboarded); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "onboarded": onboarded})
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := handler.profileService.ClearAllData(user.ID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
