package api

import (
	"github.com/HarshitaThota/Flow-State/internal/db"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repos := db.NewRepositories(database)
	handler.authService = services.NewAuthService(repos.Users)
	handler.profileService = services.NewProfileService(repos.Users, handler.location)
	handler.cycleService = services.NewCycleService(handler.location)
	handler.periodService = services.NewPeriodService(repos.Periods, handler.location)
	handler.energyService = services.NewEnergyService(repos.Energy, handler.location)
	handler.symptomService = services.NewSymptomService(repos.Symptoms, handler.location)
	handler.goalService = services.NewGoalService(repos.Goals, handler.location)
	handler.insightsService = services.NewInsightsService(repos.Energy, repos.Symptoms, repos.Periods)
	handler.exportService = services.NewExportService(repos.Energy, repos.Symptoms, repos.Periods, handler.location)
	return handler
}
