package services

import (
	"errors"
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
)

var (
	ErrSymptomSeverityInvalid = errors.New("symptom severity must be between 0 and 3")
	ErrSleepHoursInvalid      = errors.New("sleep hours must be between 0 and 24")
	ErrSleepQualityInvalid    = errors.New("sleep quality invalid")
	ErrExerciseMinutesInvalid = errors.New("exercise minutes must be between 0 and 1440")
	ErrSymptomDateInFuture    = errors.New("symptom date is in the future")
)

const (
	maxSymptomSeverity  = 3
	maxExerciseMinutes  = 24 * 60
	maxExerciseTypeRune = 80

	defaultSymptomListLimit = 60
)

var sleepQualities = map[string]struct{}{"great": {}, "good": {}, "okay": {}, "poor": {}, "terrible": {}}

type SymptomLogRepository interface {
	Create(entry *models.SymptomLog) error
	ListByUser(userID uint, limit int) ([]models.SymptomLog, error)
}

// SymptomInput holds 0..3 severities. Date is YYYY-MM-DD and defaults to today.
type SymptomInput struct {
	Date             string   `json:"date"`
	Cramps           int      `json:"cramps"`
	Headache         int      `json:"headache"`
	Bloating         int      `json:"bloating"`
	BreastTenderness int      `json:"breast_tenderness"`
	Acne             int      `json:"acne"`
	Fatigue          int      `json:"fatigue"`
	Cravings         int      `json:"cravings"`
	MoodSwings       int      `json:"mood_swings"`
	Anxiety          int      `json:"anxiety"`
	SleepHours       *float64 `json:"sleep_hours"`
	SleepQuality     *string  `json:"sleep_quality"`
	Exercised        bool     `json:"exercised"`
	ExerciseType     *string  `json:"exercise_type"`
	ExerciseMinutes  *int     `json:"exercise_minutes"`
	Notes            string   `json:"notes"`
}

type SymptomService struct {
	logs     SymptomLogRepository
	location *time.Location
}

func NewSymptomService(logs SymptomLogRepository, location *time.Location) *SymptomService {
	if location == nil {
		location = time.UTC
	}
	return &SymptomService{logs: logs, location: location}
}

func (service *SymptomService) LogSymptoms(user models.User, input SymptomInput, now time.Time) (models.SymptomLog, error) {
	today := DateAtLocation(now, service.location)
	day := today
	if strings.TrimSpace(input.Date) != "" {
		parsed, err := ParseDay(input.Date, service.location)
		if err != nil {
			return models.SymptomLog{}, err
		}
		if parsed.After(today) {
			return models.SymptomLog{}, ErrSymptomDateInFuture
		}
		day = parsed
	}

	entry, err := buildSymptomLog(input)
	if err != nil {
		return models.SymptomLog{}, err
	}
	entry.UserID = user.ID
	entry.Date = day
	entry.CycleDay, entry.CyclePhase = cycleStamp(user, day, service.location)

	if err := service.logs.Create(&entry); err != nil {
		return models.SymptomLog{}, err
	}
	return entry, nil
}

func (service *SymptomService) ListSymptoms(userID uint, limit int) ([]models.SymptomLog, error) {
	if limit <= 0 {
		limit = defaultSymptomListLimit
	}
	return service.logs.ListByUser(userID, limit)
}

func buildSymptomLog(input SymptomInput) (models.SymptomLog, error) {
	for _, severity := range []int{
		input.Cramps, input.Headache, input.Bloating, input.BreastTenderness, input.Acne,
		input.Fatigue, input.Cravings, input.MoodSwings, input.Anxiety,
	} {
		if severity < 0 || severity > maxSymptomSeverity {
			return models.SymptomLog{}, ErrSymptomSeverityInvalid
		}
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return models.SymptomLog{}, ErrSleepHoursInvalid
	}
	if input.ExerciseMinutes != nil && (*input.ExerciseMinutes < 0 || *input.ExerciseMinutes > maxExerciseMinutes) {
		return models.SymptomLog{}, ErrExerciseMinutesInvalid
	}
	sleepQuality, err := optionalChoice(input.SleepQuality, sleepQualities, ErrSleepQualityInvalid)
	if err != nil {
		return models.SymptomLog{}, err
	}

	exerciseType := optionalTrimmed(input.ExerciseType)
	if exerciseType != nil {
		truncated := truncateRunes(*exerciseType, maxExerciseTypeRune)
		exerciseType = &truncated
	}

	return models.SymptomLog{
		Cramps:           input.Cramps,
		Headache:         input.Headache,
		Bloating:         input.Bloating,
		BreastTenderness: input.BreastTenderness,
		Acne:             input.Acne,
		Fatigue:          input.Fatigue,
		Cravings:         input.Cravings,
		MoodSwings:       input.MoodSwings,
		Anxiety:          input.Anxiety,
		SleepHours:       input.SleepHours,
		SleepQuality:     sleepQuality,
		Exercised:        input.Exercised,
		ExerciseType:     exerciseType,
		ExerciseMinutes:  input.ExerciseMinutes,
		Notes:            truncateRunes(strings.TrimSpace(input.Notes), maxNotesLength),
	}, nil
}
