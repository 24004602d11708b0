package api

import (
	"errors"

	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var badRequestErrors = []error{
	services.ErrInvalidDate,
	services.ErrInvalidEmail,
	services.ErrWeakPassword,
	services.ErrPasswordTooLong,
	services.ErrCurrentPasswordWrong,
	services.ErrPasswordUnchanged,
	services.ErrProfileCycleLengthOutOfRange,
	services.ErrProfilePeriodLengthOutOfRange,
	services.ErrProfilePeriodLengthIncompatible,
	services.ErrProfileStartDateInvalid,
	services.ErrProfileChronotypeInvalid,
	services.ErrProfilePeakHoursInvalid,
	services.ErrProfileNameTooLong,
	services.ErrPeriodStartInFuture,
	services.ErrPeriodEndBeforeStart,
	services.ErrPeriodEndTooLate,
	services.ErrEnergyLevelInvalid,
	services.ErrFocusLevelInvalid,
	services.ErrMoodInvalid,
	services.ErrFocusInvalid,
	services.ErrRangeInvalid,
	services.ErrSymptomSeverityInvalid,
	services.ErrSleepHoursInvalid,
	services.ErrSleepQualityInvalid,
	services.ErrExerciseMinutesInvalid,
	services.ErrSymptomDateInFuture,
	services.ErrGoalTitleRequired,
	services.ErrGoalTitleTooLong,
	services.ErrGoalTypeInvalid,
	services.ErrCognitiveLoadInvalid,
	services.ErrGoalStatusInvalid,
	services.ErrGoalProgressInvalid,
	services.ErrTaskCategoryInvalid,
	services.ErrTaskEstimateInvalid,
	services.ErrTaskEnergyInvalid,
	services.ErrExportFromDateInvalid,
	services.ErrExportToDateInvalid,
	services.ErrExportRangeInvalid,
}

// serviceErrorStatus maps a service error to a status and a client message.
// Unknown errors become a generic 500.
func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "not found"
	case errors.Is(err, services.ErrCycleNotConfigured):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrEmailAlreadyExists), errors.Is(err, services.ErrTaskAlreadyCompleted):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return fiber.StatusUnauthorized, err.Error()
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			return fiber.StatusBadRequest, known.Error()
		}
	}
	return fiber.StatusInternalServerError, "internal error"
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	status, message := serviceErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		handler.log.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
	}
	return apiError(c, status, message)
}
