package services

import (
	"errors"
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

var ErrInvalidDate = errors.New("invalid date")

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD string as midnight in location.
func ParseDay(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(dayLayout, strings.TrimSpace(raw), location)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// CycleProfile converts a stored user into the calculator's read-only view.
// ok is false when no period start has been recorded yet.
func CycleProfile(user models.User, location *time.Location) (cycle.Profile, bool) {
	if user.LastPeriodStart == nil || user.LastPeriodStart.IsZero() {
		return cycle.Profile{}, false
	}
	return cycle.Profile{
		CycleLength:     user.CycleLength,
		PeriodLength:    user.PeriodLength,
		LastPeriodStart: civilDate(*user.LastPeriodStart, location),
	}, true
}

// civilDate keeps the stored calendar date and moves it into location.
// Stored dates may come back from sqlite in UTC.
func civilDate(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// cycleStamp classifies day for users with a configured cycle.
func cycleStamp(user models.User, day time.Time, location *time.Location) (*int, *string) {
	if location == nil {
		location = time.UTC
	}
	profile, ok := CycleProfile(user, location)
	if !ok {
		return nil, nil
	}
	info := cycle.TodayInfo(profile, day.In(location))
	dayOfCycle := info.DayOfCycle
	phase := info.Phase.String()
	return &dayOfCycle, &phase
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func optionalTrimmed(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
