package cycle

import (
	"fmt"
	"strings"
)

// Phase is one of the four contiguous segments of a cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

var orderedPhases = [...]Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal}

// Phases returns the phases in cycle order.
func Phases() []Phase {
	phases := make([]Phase, len(orderedPhases))
	copy(phases, orderedPhases[:])
	return phases
}

func (p Phase) Valid() bool {
	switch p {
	case PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal:
		return true
	default:
		return false
	}
}

func (p Phase) String() string {
	return string(p)
}

// ParsePhase accepts a phase name in any case with surrounding whitespace.
func ParsePhase(raw string) (Phase, error) {
	phase := Phase(strings.ToLower(strings.TrimSpace(raw)))
	if !phase.Valid() {
		return "", fmt.Errorf("cycle: unknown phase %q", raw)
	}
	return phase, nil
}
