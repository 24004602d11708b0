package cycle

import (
	"encoding/json"
	"time"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	// LutealPhaseDays is the assumed distance from ovulation to the next period.
	LutealPhaseDays = 14
	// OvulationWindowRadius widens the ovulation day into a three day window.
	OvulationWindowRadius = 1

	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// Profile is the read-only snapshot of a user's cycle settings.
type Profile struct {
	CycleLength     int
	PeriodLength    int
	LastPeriodStart time.Time
}

// CycleDay is the classification of a single calendar day.
type CycleDay struct {
	Date        time.Time
	Phase       Phase
	DayOfCycle  int
	PeriodStart bool
}

type cycleDayJSON struct {
	Date        string `json:"date"`
	Phase       Phase  `json:"phase"`
	DayOfCycle  int    `json:"day_of_cycle"`
	PeriodStart bool   `json:"period_start"`
}

func (day CycleDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(cycleDayJSON{
		Date:        day.Date.Format(dateLayout),
		Phase:       day.Phase,
		DayOfCycle:  day.DayOfCycle,
		PeriodStart: day.PeriodStart,
	})
}

func (day *CycleDay) UnmarshalJSON(data []byte) error {
	var wire cycleDayJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	parsed, err := time.Parse(dateLayout, wire.Date)
	if err != nil {
		return err
	}
	*day = CycleDay{
		Date:        parsed,
		Phase:       wire.Phase,
		DayOfCycle:  wire.DayOfCycle,
		PeriodStart: wire.PeriodStart,
	}
	return nil
}

// DateOnly truncates value to midnight of its calendar day in its own location.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

// DaysBetween counts calendar days from one date to another. Each value is read
// as a calendar date in its own location, so DST shifts never skew the result.
func DaysBetween(from time.Time, to time.Time) int {
	return int((civilMidnight(to).Unix() - civilMidnight(from).Unix()) / secondsPerDay)
}

func civilMidnight(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOfCycle returns the raw 1-based offset of today from lastPeriodStart.
// The result is zero or negative when lastPeriodStart lies in the future.
func DayOfCycle(today time.Time, lastPeriodStart time.Time) int {
	return DaysBetween(lastPeriodStart, today) + 1
}

// NormalizeDay wraps a raw day into [1, cycleLength] with a floor modulo.
func NormalizeDay(day int, cycleLength int) int {
	cycleLength, _ = sanitizeLengths(cycleLength, 0)
	return floorMod(day-1, cycleLength) + 1
}

// OvulationDay estimates the ovulation day within a normalized cycle. When
// cycleLength-14 <= periodLength it is clamped to the first day after the
// period so the window never has negative bounds.
func OvulationDay(cycleLength int, periodLength int) int {
	cycleLength, periodLength = sanitizeLengths(cycleLength, periodLength)
	day := cycleLength - LutealPhaseDays
	if day < periodLength+1 {
		day = periodLength + 1
	}
	return day
}

// ClassifyPhase maps any raw day to exactly one phase.
func ClassifyPhase(dayOfCycle int, cycleLength int, periodLength int) Phase {
	cycleLength, periodLength = sanitizeLengths(cycleLength, periodLength)
	normalized := NormalizeDay(dayOfCycle, cycleLength)
	if normalized <= periodLength {
		return PhaseMenstrual
	}

	ovulationDay := OvulationDay(cycleLength, periodLength)
	switch {
	case normalized < ovulationDay-OvulationWindowRadius:
		return PhaseFollicular
	case normalized <= ovulationDay+OvulationWindowRadius:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

// TodayInfo classifies today. DayOfCycle is normalized, the same as Forecast.
func TodayInfo(profile Profile, today time.Time) CycleDay {
	day := DateOnly(today)
	return classifyDay(profile, day, DayOfCycle(day, profile.LastPeriodStart))
}

// Forecast returns daysAhead consecutive classified days starting at today.
func Forecast(profile Profile, today time.Time, daysAhead int) []CycleDay {
	if daysAhead <= 0 {
		return []CycleDay{}
	}

	start := DateOnly(today)
	days := make([]CycleDay, 0, daysAhead)
	for offset := 0; offset < daysAhead; offset++ {
		date := start.AddDate(0, 0, offset)
		days = append(days, classifyDay(profile, date, DayOfCycle(date, profile.LastPeriodStart)))
	}
	return days
}

// NextPeriodDate returns the next day 1 strictly after today. On day 1 itself
// the answer is a full cycle later.
func NextPeriodDate(profile Profile, today time.Time) time.Time {
	cycleLength, _ := sanitizeLengths(profile.CycleLength, profile.PeriodLength)
	day := DateOnly(today)
	rawDay := DayOfCycle(day, profile.LastPeriodStart)
	daysUntilNext := cycleLength - floorMod(rawDay-1, cycleLength)
	return day.AddDate(0, 0, daysUntilNext)
}

// DaysUntilNextPeriod is NextPeriodDate expressed as a day count, always >= 1.
func DaysUntilNextPeriod(profile Profile, today time.Time) int {
	return DaysBetween(today, NextPeriodDate(profile, today))
}

func classifyDay(profile Profile, date time.Time, rawDay int) CycleDay {
	cycleLength, periodLength := sanitizeLengths(profile.CycleLength, profile.PeriodLength)
	normalized := NormalizeDay(rawDay, cycleLength)
	return CycleDay{
		Date:        date,
		Phase:       ClassifyPhase(rawDay, cycleLength, periodLength),
		DayOfCycle:  normalized,
		PeriodStart: normalized == 1,
	}
}

func sanitizeLengths(cycleLength int, periodLength int) (int, int) {
	if cycleLength < 1 {
		cycleLength = DefaultCycleLength
	}
	if periodLength < 0 {
		periodLength = 0
	}
	return cycleLength, periodLength
}

func floorMod(value int, modulus int) int {
	remainder := value % modulus
	if remainder < 0 {
		remainder += modulus
	}
	return remainder
}
