package services

import (
	"errors"
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

var (
	ErrProfileCycleLengthOutOfRange    = errors.New("cycle length out of range")
	ErrProfilePeriodLengthOutOfRange   = errors.New("period length out of range")
	ErrProfilePeriodLengthIncompatible = errors.New("period length incompatible with cycle length")
	ErrProfileStartDateInvalid         = errors.New("last period start invalid")
	ErrProfileChronotypeInvalid        = errors.New("chronotype invalid")
	ErrProfilePeakHoursInvalid         = errors.New("peak hours invalid")
	ErrProfileNameTooLong              = errors.New("name too long")
)

const (
	MinCycleLength  = 15
	MaxCycleLength  = 90
	MinPeriodLength = 1
	MaxPeriodLength = 14

	// MinNonPeriodDays is the shortest allowed gap between period end and the next start.
	MinNonPeriodDays = 8

	maxProfileNameLength = 80
)

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	Save(user *models.User) error
	SetOnboarded(userID uint, onboarded bool) error
	ClearAllDataAndResetSettings(userID uint) error
}

// ProfileUpdate is a partial update. Nil fields are left untouched.
type ProfileUpdate struct {
	Name            *string `json:"name"`
	CycleLength     *int    `json:"cycle_length"`
	PeriodLength    *int    `json:"period_length"`
	LastPeriodStart *string `json:"last_period_start"`
	Chronotype      *string `json:"chronotype"`
	// PeakHours replaces the override; an explicit null clears it.
	PeakHours    *cycle.PeakHours `json:"peak_hours"`
	PeakHoursSet bool             `json:"-"`
}

type ProfileService struct {
	users    ProfileUserRepository
	location *time.Location
}

func NewProfileService(users ProfileUserRepository, location *time.Location) *ProfileService {
	if location == nil {
		location = time.UTC
	}
	return &ProfileService{users: users, location: location}
}

func (service *ProfileService) GetProfile(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}

func (service *ProfileService) UpdateProfile(userID uint, update ProfileUpdate, now time.Time) (models.User, error) {
	user, err := service.GetProfile(userID)
	if err != nil {
		return models.User{}, err
	}
	if err := service.applyUpdate(&user, update, now); err != nil {
		return models.User{}, err
	}
	user.UpdatedAt = now
	if err := service.users.Save(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *ProfileService) SetOnboarded(userID uint, onboarded bool) error {
	if _, err := service.GetProfile(userID); err != nil {
		return err
	}
	return service.users.SetOnboarded(userID, onboarded)
}

func (service *ProfileService) ClearAllData(userID uint) error {
	if _, err := service.GetProfile(userID); err != nil {
		return err
	}
	return service.users.ClearAllDataAndResetSettings(userID)
}

func (service *ProfileService) applyUpdate(user *models.User, update ProfileUpdate, now time.Time) error {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if len([]rune(name)) > maxProfileNameLength {
			return ErrProfileNameTooLong
		}
		user.Name = name
	}

	cycleLength := user.CycleLength
	if update.CycleLength != nil {
		cycleLength = *update.CycleLength
	}
	periodLength := user.PeriodLength
	if update.PeriodLength != nil {
		periodLength = *update.PeriodLength
	}
	if err := ValidateCycleLengths(cycleLength, periodLength); err != nil {
		return err
	}
	user.CycleLength = cycleLength
	user.PeriodLength = periodLength

	if update.LastPeriodStart != nil {
		start, err := service.parseLastPeriodStart(*update.LastPeriodStart, now)
		if err != nil {
			return err
		}
		user.LastPeriodStart = start
	}

	if update.Chronotype != nil {
		raw := strings.TrimSpace(*update.Chronotype)
		if raw == "" {
			user.Chronotype = ""
		} else {
			chronotype, ok := cycle.ParseChronotype(raw)
			if !ok {
				return ErrProfileChronotypeInvalid
			}
			user.Chronotype = string(chronotype)
		}
	}

	if update.PeakHoursSet {
		if update.PeakHours == nil {
			user.PeakHoursStart = nil
			user.PeakHoursEnd = nil
		} else {
			if !update.PeakHours.Valid() {
				return ErrProfilePeakHoursInvalid
			}
			start, end := update.PeakHours.Start, update.PeakHours.End
			user.PeakHoursStart = &start
			user.PeakHoursEnd = &end
		}
	}

	return nil
}

// parseLastPeriodStart accepts an empty string to clear the date.
func (service *ProfileService) parseLastPeriodStart(raw string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	day, err := ParseDay(raw, service.location)
	if err != nil {
		return nil, ErrProfileStartDateInvalid
	}
	if day.After(DateAtLocation(now, service.location)) {
		return nil, ErrProfileStartDateInvalid
	}
	return &day, nil
}

// ValidateCycleLengths checks the editable bounds for cycle and period length.
func ValidateCycleLengths(cycleLength int, periodLength int) error {
	if cycleLength < MinCycleLength || cycleLength > MaxCycleLength {
		return ErrProfileCycleLengthOutOfRange
	}
	if periodLength < MinPeriodLength || periodLength > MaxPeriodLength {
		return ErrProfilePeriodLengthOutOfRange
	}
	if cycleLength-periodLength < MinNonPeriodDays {
		return ErrProfilePeriodLengthIncompatible
	}
	return nil
}

// PeakHoursOf returns the stored override, or nil when none is set.
func PeakHoursOf(user models.User) *cycle.PeakHours {
	if user.PeakHoursStart == nil || user.PeakHoursEnd == nil {
		return nil
	}
	peak := cycle.PeakHours{Start: *user.PeakHoursStart, End: *user.PeakHoursEnd}
	if !peak.Valid() {
		return nil
	}
	return &peak
}
