package api

import (
	"errors"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/logger"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	defaultForecastDays = 30
	maxForecastDays     = 366
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	forecastDays int
	log          *zap.Logger
	clock        func() time.Time
	loginLimiter *attemptLimiter

	authService     *services.AuthService
	profileService  *services.ProfileService
	cycleService    *services.CycleService
	periodService   *services.PeriodService
	energyService   *services.EnergyService
	symptomService  *services.SymptomService
	goalService     *services.GoalService
	insightsService *services.InsightsService
	exportService   *services.ExportService
}

type HandlerOptions struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	ForecastDays int
	Logger       *zap.Logger
}

func NewHandler(database *gorm.DB, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	forecastDays := options.ForecastDays
	if forecastDays <= 0 {
		forecastDays = defaultForecastDays
	}

	handler := &Handler{
		secretKey:    []byte(options.SecretKey),
		location:     location,
		cookieSecure: options.CookieSecure,
		forecastDays: forecastDays,
		log:          logger.OrNop(options.Logger).Named("api"),
		clock:        time.Now,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) now() time.Time {
	return handler.clock().In(handler.location)
}
