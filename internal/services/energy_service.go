package services

import (
	"errors"
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
)

var (
	ErrEnergyLevelInvalid = errors.New("energy level must be between 1 and 10")
	ErrFocusLevelInvalid  = errors.New("focus level must be between 1 and 10")
	ErrMoodInvalid        = errors.New("mood invalid")
	ErrFocusInvalid       = errors.New("focus invalid")
	ErrRangeInvalid       = errors.New("range invalid")
)

const (
	minEnergyLevel = 1
	maxEnergyLevel = 10

	maxNotesLength = 2000

	defaultEnergyListLimit = 100
	maxEnergyListLimit     = 500
)

var (
	energyMoods   = map[string]struct{}{"great": {}, "good": {}, "okay": {}, "low": {}, "rough": {}}
	energyFocuses = map[string]struct{}{"sharp": {}, "good": {}, "scattered": {}, "foggy": {}}
)

type EnergyLogRepository interface {
	Create(entry *models.EnergyLog) error
	ListByUser(userID uint, limit int) ([]models.EnergyLog, error)
	ListRange(userID uint, from time.Time, to time.Time) ([]models.EnergyLog, error)
	LatestInRange(userID uint, from time.Time, to time.Time) (models.EnergyLog, error)
}

type EnergyInput struct {
	EnergyLevel int     `json:"energy_level"`
	FocusLevel  *int    `json:"focus_level"`
	Mood        *string `json:"mood"`
	Focus       *string `json:"focus"`
	Notes       string  `json:"notes"`
}

type EnergyService struct {
	logs     EnergyLogRepository
	location *time.Location
}

func NewEnergyService(logs EnergyLogRepository, location *time.Location) *EnergyService {
	if location == nil {
		location = time.UTC
	}
	return &EnergyService{logs: logs, location: location}
}

// LogEnergy stores a check-in stamped with the user's cycle day and phase.
func (service *EnergyService) LogEnergy(user models.User, input EnergyInput, now time.Time) (models.EnergyLog, error) {
	entry, err := buildEnergyLog(input)
	if err != nil {
		return models.EnergyLog{}, err
	}

	entry.UserID = user.ID
	entry.LoggedAt = now.In(service.location)
	entry.CycleDay, entry.CyclePhase = cycleStamp(user, now, service.location)
	if err := service.logs.Create(&entry); err != nil {
		return models.EnergyLog{}, err
	}
	return entry, nil
}

func (service *EnergyService) ListEnergy(userID uint, limit int) ([]models.EnergyLog, error) {
	switch {
	case limit <= 0:
		limit = defaultEnergyListLimit
	case limit > maxEnergyListLimit:
		limit = maxEnergyListLimit
	}
	return service.logs.ListByUser(userID, limit)
}

// ListEnergyRange returns logs on the calendar days from..to inclusive.
func (service *EnergyService) ListEnergyRange(userID uint, from time.Time, to time.Time) ([]models.EnergyLog, error) {
	start := DateAtLocation(from, service.location)
	end := DateAtLocation(to, service.location).AddDate(0, 0, 1)
	if !start.Before(end) {
		return nil, ErrRangeInvalid
	}
	return service.logs.ListRange(userID, start, end)
}

func (service *EnergyService) TodayEnergy(userID uint, now time.Time) (models.EnergyLog, error) {
	start, end := DayRange(now, service.location)
	entry, err := service.logs.LatestInRange(userID, start, end)
	if err != nil {
		return models.EnergyLog{}, notFound(err)
	}
	return entry, nil
}

func buildEnergyLog(input EnergyInput) (models.EnergyLog, error) {
	if input.EnergyLevel < minEnergyLevel || input.EnergyLevel > maxEnergyLevel {
		return models.EnergyLog{}, ErrEnergyLevelInvalid
	}
	if input.FocusLevel != nil && (*input.FocusLevel < minEnergyLevel || *input.FocusLevel > maxEnergyLevel) {
		return models.EnergyLog{}, ErrFocusLevelInvalid
	}

	mood, err := optionalChoice(input.Mood, energyMoods, ErrMoodInvalid)
	if err != nil {
		return models.EnergyLog{}, err
	}
	focus, err := optionalChoice(input.Focus, energyFocuses, ErrFocusInvalid)
	if err != nil {
		return models.EnergyLog{}, err
	}

	return models.EnergyLog{
		EnergyLevel: input.EnergyLevel,
		FocusLevel:  input.FocusLevel,
		Mood:        mood,
		Focus:       focus,
		Notes:       truncateRunes(strings.TrimSpace(input.Notes), maxNotesLength),
	}, nil
}

// optionalChoice lowercases value and checks it against allowed. Empty means unset.
func optionalChoice(value *string, allowed map[string]struct{}, invalid error) (*string, error) {
	trimmed := optionalTrimmed(value)
	if trimmed == nil {
		return nil, nil
	}
	normalized := strings.ToLower(*trimmed)
	if _, ok := allowed[normalized]; !ok {
		return nil, invalid
	}
	return &normalized, nil
}
