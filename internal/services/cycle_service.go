package services

import (
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

// staleCycleSlackDays is how far past the expected length a cycle may run
// before the snapshot flags the data as stale.
const staleCycleSlackDays = 7

type CycleSnapshot struct {
	Today               cycle.CycleDay       `json:"today"`
	RawDay              int                  `json:"raw_day"`
	CycleLength         int                  `json:"cycle_length"`
	PeriodLength        int                  `json:"period_length"`
	Forecast            []cycle.CycleDay     `json:"forecast"`
	NextPeriod          string               `json:"next_period"`
	DaysUntilNextPeriod int                  `json:"days_until_next_period"`
	EnergyMultiplier    float64              `json:"energy_multiplier"`
	Recommendations     cycle.Recommendation `json:"recommendations"`
	PhaseInfo           cycle.PhaseInfo      `json:"phase_info"`
	EnergyPattern       []cycle.HourlyEnergy `json:"energy_pattern"`
	Stale               bool                 `json:"stale"`
}

// CycleService recomputes everything from the stored profile on each call.
type CycleService struct {
	location *time.Location
}

func NewCycleService(location *time.Location) *CycleService {
	if location == nil {
		location = time.UTC
	}
	return &CycleService{location: location}
}

func (service *CycleService) Snapshot(user models.User, now time.Time, forecastDays int) (CycleSnapshot, error) {
	profile, ok := CycleProfile(user, service.location)
	if !ok {
		return CycleSnapshot{}, ErrCycleNotConfigured
	}

	today := DateAtLocation(now, service.location)
	info := cycle.TodayInfo(profile, today)
	rawDay := cycle.DayOfCycle(today, profile.LastPeriodStart)
	next := cycle.NextPeriodDate(profile, today)

	return CycleSnapshot{
		Today:               info,
		RawDay:              rawDay,
		CycleLength:         profile.CycleLength,
		PeriodLength:        profile.PeriodLength,
		Forecast:            cycle.Forecast(profile, today, forecastDays),
		NextPeriod:          next.Format(dayLayout),
		DaysUntilNextPeriod: cycle.DaysBetween(today, next),
		EnergyMultiplier:    cycle.EnergyMultiplier(info.Phase),
		Recommendations:     cycle.RecommendationsFor(info.Phase),
		PhaseInfo:           cycle.InfoFor(info.Phase),
		EnergyPattern:       cycle.EnergyPattern(info.Phase, cycle.Chronotype(user.Chronotype), PeakHoursOf(user)),
		Stale:               CycleDayLooksLong(rawDay, profile.CycleLength),
	}, nil
}

func (service *CycleService) Forecast(user models.User, now time.Time, days int) ([]cycle.CycleDay, error) {
	profile, ok := CycleProfile(user, service.location)
	if !ok {
		return nil, ErrCycleNotConfigured
	}
	return cycle.Forecast(profile, DateAtLocation(now, service.location), days), nil
}

// CurrentPhase returns today's phase, or ok=false without a configured cycle.
func (service *CycleService) CurrentPhase(user models.User, now time.Time) (cycle.Phase, bool) {
	profile, ok := CycleProfile(user, service.location)
	if !ok {
		return "", false
	}
	return cycle.TodayInfo(profile, DateAtLocation(now, service.location)).Phase, true
}

// CycleDayLooksLong reports a raw day well past the expected cycle length,
// which usually means a period start was not logged.
func CycleDayLooksLong(rawDay int, cycleLength int) bool {
	if rawDay <= 0 || cycleLength <= 0 {
		return false
	}
	return rawDay > cycleLength+staleCycleSlackDays
}
