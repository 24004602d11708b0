package services

import (
	"errors"
	"testing"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

func TestLogSymptomsDefaultsToToday(t *testing.T) {
	t.Parallel()

	repo := &stubSymptomRepo{}
	service := NewSymptomService(repo, nil)
	sleep := 7.5

	entry, err := service.LogSymptoms(configuredUser(1, dayUTC(2024, 1, 1)), SymptomInput{
		Cramps:       2,
		Fatigue:      3,
		SleepHours:   &sleep,
		SleepQuality: stringPtr("Good"),
		Exercised:    true,
		ExerciseType: stringPtr("  yoga "),
	}, dayUTC(2024, 1, 3).Add(21*time.Hour))
	if err != nil {
		t.Fatalf("LogSymptoms() unexpected error: %v", err)
	}
	if !entry.Date.Equal(dayUTC(2024, 1, 3)) {
		t.Fatalf("expected today's date, got %v", entry.Date)
	}
	if entry.CyclePhase == nil || *entry.CyclePhase != string(cycle.PhaseMenstrual) {
		t.Fatalf("expected menstrual stamp, got %v", entry.CyclePhase)
	}
	if entry.SleepQuality == nil || *entry.SleepQuality != "good" {
		t.Fatalf("expected normalized sleep quality, got %v", entry.SleepQuality)
	}
	if entry.ExerciseType == nil || *entry.ExerciseType != "yoga" {
		t.Fatalf("expected trimmed exercise type, got %v", entry.ExerciseType)
	}
	if len(repo.logs) != 1 {
		t.Fatalf("expected one stored log, got %d", len(repo.logs))
	}
}

func TestLogSymptomsBackfillsPastDate(t *testing.T) {
	t.Parallel()

	service := NewSymptomService(&stubSymptomRepo{}, nil)
	entry, err := service.LogSymptoms(configuredUser(1, dayUTC(2024, 1, 1)), SymptomInput{Date: "2024-01-14"}, dayUTC(2024, 1, 20))
	if err != nil {
		t.Fatalf("LogSymptoms() unexpected error: %v", err)
	}
	if entry.CycleDay == nil || *entry.CycleDay != 14 || *entry.CyclePhase != string(cycle.PhaseOvulation) {
		t.Fatalf("expected ovulation day 14 stamp, got day=%v phase=%v", entry.CycleDay, entry.CyclePhase)
	}
}

func TestLogSymptomsValidation(t *testing.T) {
	t.Parallel()

	tooMuchSleep := 25.0
	tests := []struct {
		name  string
		input SymptomInput
		want  error
	}{
		{name: "severity high", input: SymptomInput{Headache: 4}, want: ErrSymptomSeverityInvalid},
		{name: "severity negative", input: SymptomInput{Anxiety: -1}, want: ErrSymptomSeverityInvalid},
		{name: "sleep hours", input: SymptomInput{SleepHours: &tooMuchSleep}, want: ErrSleepHoursInvalid},
		{name: "sleep quality", input: SymptomInput{SleepQuality: stringPtr("dreamy")}, want: ErrSleepQualityInvalid},
		{name: "exercise minutes", input: SymptomInput{ExerciseMinutes: intPtr(1441)}, want: ErrExerciseMinutesInvalid},
		{name: "future date", input: SymptomInput{Date: "2024-01-21"}, want: ErrSymptomDateInFuture},
		{name: "bad date", input: SymptomInput{Date: "yesterday"}, want: ErrInvalidDate},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			service := NewSymptomService(&stubSymptomRepo{}, nil)
			if _, err := service.LogSymptoms(models.User{ID: 1}, testCase.input, dayUTC(2024, 1, 20)); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestListSymptomsDefaultLimit(t *testing.T) {
	t.Parallel()

	repo := &stubSymptomRepo{}
	for index := 0; index < 70; index++ {
		repo.logs = append(repo.logs, models.SymptomLog{UserID: 1})
	}
	service := NewSymptomService(repo, nil)

	logs, err := service.ListSymptoms(1, 0)
	if err != nil {
		t.Fatalf("ListSymptoms() unexpected error: %v", err)
	}
	if len(logs) != 60 {
		t.Fatalf("expected 60 logs, got %d", len(logs))
	}
}
