package cycle

import (
	"math"
	"strings"
)

type Chronotype string

const (
	ChronotypeEarlyBird    Chronotype = "early_bird"
	ChronotypeNightOwl     Chronotype = "night_owl"
	ChronotypeIntermediate Chronotype = "intermediate"
	// ChronotypeThirdBird is the onboarding name for the intermediate curve.
	ChronotypeThirdBird Chronotype = "third_bird"
)

func ParseChronotype(raw string) (Chronotype, bool) {
	chronotype := Chronotype(strings.ToLower(strings.TrimSpace(raw)))
	switch chronotype {
	case ChronotypeEarlyBird, ChronotypeNightOwl, ChronotypeIntermediate, ChronotypeThirdBird:
		return chronotype, true
	default:
		return "", false
	}
}

// PeakHours overrides the chronotype peak with [Start, End) in local hours.
type PeakHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (peak PeakHours) Valid() bool {
	return peak.Start >= 0 && peak.Start < peak.End && peak.End <= 24
}

type HourlyEnergy struct {
	Hour           int     `json:"hour"`
	ExpectedEnergy float64 `json:"expected_energy"`
}

const (
	minExpectedEnergy = 1.0
	maxExpectedEnergy = 10.0
)

var (
	earlyBirdCurve    = [24]float64{2, 2, 2, 2, 3, 4, 6, 7, 8, 8, 8, 7, 6, 5, 6, 6, 6, 5, 5, 4, 3, 3, 2, 2}
	nightOwlCurve     = [24]float64{3, 3, 2, 2, 2, 2, 2, 3, 4, 5, 5, 6, 6, 6, 6, 7, 7, 8, 8, 8, 7, 6, 5, 4}
	intermediateCurve = [24]float64{2, 2, 2, 2, 2, 3, 4, 5, 6, 7, 8, 8, 7, 6, 6, 7, 7, 6, 5, 5, 4, 3, 3, 2}
)

// EnergyPattern predicts hourly energy on a 1..10 scale for a day in phase.
// An empty or unknown chronotype uses the intermediate curve.
func EnergyPattern(phase Phase, chronotype Chronotype, peak *PeakHours) []HourlyEnergy {
	curve := baseCurve(chronotype)
	if peak != nil && peak.Valid() {
		peakValue := maxOf(curve)
		for hour := peak.Start; hour < peak.End; hour++ {
			curve[hour] = peakValue
		}
	}

	multiplier := EnergyMultiplier(phase)
	pattern := make([]HourlyEnergy, 0, len(curve))
	for hour, base := range curve {
		expected := math.Min(maxExpectedEnergy, math.Max(minExpectedEnergy, base*multiplier))
		pattern = append(pattern, HourlyEnergy{
			Hour:           hour,
			ExpectedEnergy: math.Round(expected*10) / 10,
		})
	}
	return pattern
}

func baseCurve(chronotype Chronotype) [24]float64 {
	switch chronotype {
	case ChronotypeEarlyBird:
		return earlyBirdCurve
	case ChronotypeNightOwl:
		return nightOwlCurve
	default:
		return intermediateCurve
	}
}

func maxOf(curve [24]float64) float64 {
	peak := curve[0]
	for _, value := range curve[1:] {
		if value > peak {
			peak = value
		}
	}
	return peak
}
