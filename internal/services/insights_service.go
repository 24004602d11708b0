package services

import (
	"math"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

// MinCheckInsForInsights is the number of energy logs needed before
// per-phase averages are shown.
const MinCheckInsForInsights = 5

type PhaseEnergy struct {
	Phase         cycle.Phase `json:"phase"`
	AverageEnergy float64     `json:"average_energy"`
	Count         int         `json:"count"`
}

type PhaseSymptoms struct {
	Phase    cycle.Phase        `json:"phase"`
	Count    int                `json:"count"`
	Averages map[string]float64 `json:"averages"`
}

type Insights struct {
	TotalCheckIns     int             `json:"total_check_ins"`
	HasEnoughData     bool            `json:"has_enough_data"`
	RemainingCheckIns int             `json:"remaining_check_ins"`
	EnergyByPhase     []PhaseEnergy   `json:"energy_by_phase"`
	BestPhase         *cycle.Phase    `json:"best_phase"`
	SymptomAverages   []PhaseSymptoms `json:"symptom_averages"`
	AverageCycle      *float64        `json:"average_cycle_length"`
}

type InsightsService struct {
	energy   EnergyLogRepository
	symptoms SymptomLogRepository
	periods  PeriodLogRepository
}

func NewInsightsService(energy EnergyLogRepository, symptoms SymptomLogRepository, periods PeriodLogRepository) *InsightsService {
	return &InsightsService{energy: energy, symptoms: symptoms, periods: periods}
}

func (service *InsightsService) Insights(userID uint) (Insights, error) {
	energyLogs, err := service.energy.ListByUser(userID, 0)
	if err != nil {
		return Insights{}, err
	}
	symptomLogs, err := service.symptoms.ListByUser(userID, 0)
	if err != nil {
		return Insights{}, err
	}
	periods, err := service.periods.ListByUser(userID, 0)
	if err != nil {
		return Insights{}, err
	}

	total := len(energyLogs)
	insights := Insights{
		TotalCheckIns:     total,
		HasEnoughData:     total >= MinCheckInsForInsights,
		RemainingCheckIns: max(0, MinCheckInsForInsights-total),
		EnergyByPhase:     EnergyByPhase(energyLogs),
		SymptomAverages:   SymptomAveragesByPhase(symptomLogs),
	}
	if best, ok := BestPhase(insights.EnergyByPhase); ok {
		insights.BestPhase = &best
	}
	if average, ok := AverageCycleLength(periods); ok {
		rounded := roundTenth(average)
		insights.AverageCycle = &rounded
	}
	return insights, nil
}

// EnergyByPhase averages energy per phase in canonical phase order.
// Logs without a phase stamp are ignored and empty phases are omitted.
func EnergyByPhase(logs []models.EnergyLog) []PhaseEnergy {
	totals := make(map[cycle.Phase]int, 4)
	counts := make(map[cycle.Phase]int, 4)
	for _, log := range logs {
		phase, ok := stampedPhase(log.CyclePhase)
		if !ok {
			continue
		}
		totals[phase] += log.EnergyLevel
		counts[phase]++
	}

	result := make([]PhaseEnergy, 0, len(counts))
	for _, phase := range cycle.Phases() {
		count := counts[phase]
		if count == 0 {
			continue
		}
		result = append(result, PhaseEnergy{
			Phase:         phase,
			AverageEnergy: roundTenth(float64(totals[phase]) / float64(count)),
			Count:         count,
		})
	}
	return result
}

// BestPhase picks the highest average; ties keep the earlier phase.
func BestPhase(energy []PhaseEnergy) (cycle.Phase, bool) {
	if len(energy) == 0 {
		return "", false
	}
	best := energy[0]
	for _, entry := range energy[1:] {
		if entry.AverageEnergy > best.AverageEnergy {
			best = entry
		}
	}
	return best.Phase, true
}

func SymptomAveragesByPhase(logs []models.SymptomLog) []PhaseSymptoms {
	sums := make(map[cycle.Phase]map[string]int, 4)
	counts := make(map[cycle.Phase]int, 4)
	for _, log := range logs {
		phase, ok := stampedPhase(log.CyclePhase)
		if !ok {
			continue
		}
		if sums[phase] == nil {
			sums[phase] = make(map[string]int, 9)
		}
		for name, severity := range symptomSeverities(log) {
			sums[phase][name] += severity
		}
		counts[phase]++
	}

	result := make([]PhaseSymptoms, 0, len(counts))
	for _, phase := range cycle.Phases() {
		count := counts[phase]
		if count == 0 {
			continue
		}
		averages := make(map[string]float64, len(sums[phase]))
		for name, sum := range sums[phase] {
			averages[name] = roundTenth(float64(sum) / float64(count))
		}
		result = append(result, PhaseSymptoms{Phase: phase, Count: count, Averages: averages})
	}
	return result
}

func symptomSeverities(log models.SymptomLog) map[string]int {
	return map[string]int{
		"cramps":            log.Cramps,
		"headache":          log.Headache,
		"bloating":          log.Bloating,
		"breast_tenderness": log.BreastTenderness,
		"acne":              log.Acne,
		"fatigue":           log.Fatigue,
		"cravings":          log.Cravings,
		"mood_swings":       log.MoodSwings,
		"anxiety":           log.Anxiety,
	}
}

func stampedPhase(raw *string) (cycle.Phase, bool) {
	if raw == nil {
		return "", false
	}
	phase, err := cycle.ParsePhase(*raw)
	if err != nil {
		return "", false
	}
	return phase, true
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
