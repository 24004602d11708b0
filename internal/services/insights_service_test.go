package services

import (
	"testing"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

func energyAt(userID uint, level int, phase string) models.EnergyLog {
	entry := models.EnergyLog{UserID: userID, EnergyLevel: level}
	if phase != "" {
		entry.CyclePhase = &phase
	}
	return entry
}

func TestEnergyByPhase(t *testing.T) {
	t.Parallel()

	logs := []models.EnergyLog{
		energyAt(1, 8, "luteal"),
		energyAt(1, 3, "menstrual"),
		energyAt(1, 4, "menstrual"),
		energyAt(1, 9, ""),
		energyAt(1, 6, "bogus"),
		energyAt(1, 7, "luteal"),
	}

	result := EnergyByPhase(logs)
	if len(result) != 2 {
		t.Fatalf("expected two phases, got %+v", result)
	}
	if result[0].Phase != cycle.PhaseMenstrual || result[0].AverageEnergy != 3.5 || result[0].Count != 2 {
		t.Fatalf("unexpected menstrual average %+v", result[0])
	}
	if result[1].Phase != cycle.PhaseLuteal || result[1].AverageEnergy != 7.5 {
		t.Fatalf("unexpected luteal average %+v", result[1])
	}
}

func TestBestPhaseTieKeepsEarlierPhase(t *testing.T) {
	t.Parallel()

	if _, ok := BestPhase(nil); ok {
		t.Fatal("expected no best phase without data")
	}
	best, ok := BestPhase([]PhaseEnergy{
		{Phase: cycle.PhaseFollicular, AverageEnergy: 7},
		{Phase: cycle.PhaseOvulation, AverageEnergy: 7},
		{Phase: cycle.PhaseLuteal, AverageEnergy: 5},
	})
	if !ok || best != cycle.PhaseFollicular {
		t.Fatalf("expected follicular, got %q", best)
	}
}

func TestSymptomAveragesByPhase(t *testing.T) {
	t.Parallel()

	menstrual := "menstrual"
	result := SymptomAveragesByPhase([]models.SymptomLog{
		{Cramps: 3, Fatigue: 2, CyclePhase: &menstrual},
		{Cramps: 2, CyclePhase: &menstrual},
		{Cramps: 3},
	})
	if len(result) != 1 || result[0].Count != 2 {
		t.Fatalf("expected one menstrual group of two, got %+v", result)
	}
	if result[0].Averages["cramps"] != 2.5 || result[0].Averages["fatigue"] != 1 || result[0].Averages["acne"] != 0 {
		t.Fatalf("unexpected averages %+v", result[0].Averages)
	}
}

func TestInsightsThreshold(t *testing.T) {
	t.Parallel()

	energy := &stubEnergyRepo{}
	periods := &stubPeriodRepo{}
	service := NewInsightsService(energy, &stubSymptomRepo{}, periods)

	for index := 0; index < 3; index++ {
		energy.logs = append(energy.logs, energyAt(1, 6, "follicular"))
	}
	energy.logs = append(energy.logs, energyAt(2, 10, "ovulation"))

	insights, err := service.Insights(1)
	if err != nil {
		t.Fatalf("Insights() unexpected error: %v", err)
	}
	if insights.TotalCheckIns != 3 || insights.HasEnoughData || insights.RemainingCheckIns != 2 {
		t.Fatalf("unexpected threshold fields %+v", insights)
	}
	if insights.BestPhase == nil || *insights.BestPhase != cycle.PhaseFollicular {
		t.Fatalf("expected follicular best phase, got %v", insights.BestPhase)
	}
	if insights.AverageCycle != nil {
		t.Fatalf("expected no average cycle, got %v", *insights.AverageCycle)
	}

	energy.logs = append(energy.logs, energyAt(1, 9, "ovulation"), energyAt(1, 9, "ovulation"))
	periods.periods = []models.PeriodLog{
		{ID: 1, UserID: 1, StartDate: dayUTC(2024, 1, 1)},
		{ID: 2, UserID: 1, StartDate: dayUTC(2024, 1, 30)},
	}

	insights, err = service.Insights(1)
	if err != nil {
		t.Fatalf("Insights() unexpected error: %v", err)
	}
	if !insights.HasEnoughData || insights.RemainingCheckIns != 0 {
		t.Fatalf("expected enough data, got %+v", insights)
	}
	if *insights.BestPhase != cycle.PhaseOvulation {
		t.Fatalf("expected ovulation best phase, got %v", *insights.BestPhase)
	}
	if insights.AverageCycle == nil || *insights.AverageCycle != 29 {
		t.Fatalf("expected average cycle 29, got %v", insights.AverageCycle)
	}
}
