package services

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

var (
	ErrGoalTitleRequired    = errors.New("goal title is required")
	ErrGoalTitleTooLong     = errors.New("goal title too long")
	ErrGoalTypeInvalid      = errors.New("goal type invalid")
	ErrCognitiveLoadInvalid = errors.New("cognitive load invalid")
	ErrGoalStatusInvalid    = errors.New("goal status invalid")
	ErrGoalProgressInvalid  = errors.New("goal progress must be between 0 and 100")
	ErrTaskCategoryInvalid  = errors.New("task category invalid")
	ErrTaskEstimateInvalid  = errors.New("task estimate must not be negative")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
	ErrTaskEnergyInvalid    = errors.New("task energy must be between 1 and 10")
)

const maxGoalTitleLength = 120

var (
	goalTypes    = map[string]struct{}{models.GoalTypeDaily: {}, models.GoalTypeWeekly: {}, models.GoalTypeMonthly: {}, models.GoalTypeLongterm: {}}
	goalStatuses = map[string]struct{}{models.GoalStatusActive: {}, models.GoalStatusCompleted: {}, models.GoalStatusArchived: {}}
)

type GoalRepository interface {
	Create(goal *models.Goal) error
	ListByUser(userID uint) ([]models.Goal, error)
	FindByIDForUser(goalID uint, userID uint) (models.Goal, error)
	Save(goal *models.Goal) error
	CreateTask(task *models.GoalTask) error
	SaveTaskAndProgress(task *models.GoalTask, goal *models.Goal) error
}

type GoalInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	CognitiveLoad string  `json:"cognitive_load"`
	TargetDate    *string `json:"target_date"`
}

type GoalUpdate struct {
	Title    *string `json:"title"`
	Status   *string `json:"status"`
	Progress *int    `json:"progress"`
}

type TaskInput struct {
	Title            string `json:"title"`
	Category         string `json:"category"`
	CognitiveLoad    string `json:"cognitive_load"`
	EstimatedMinutes *int   `json:"estimated_minutes"`
}

// GoalView is a goal annotated with its fit for the current phase.
type GoalView struct {
	models.Goal
	FitsPhase bool `json:"fits_phase"`
}

type GoalService struct {
	goals    GoalRepository
	location *time.Location
}

func NewGoalService(goals GoalRepository, location *time.Location) *GoalService {
	if location == nil {
		location = time.UTC
	}
	return &GoalService{goals: goals, location: location}
}

func (service *GoalService) CreateGoal(userID uint, input GoalInput, now time.Time) (models.Goal, error) {
	title, err := validateGoalTitle(input.Title)
	if err != nil {
		return models.Goal{}, err
	}
	goalType, err := choiceOrDefault(input.Type, models.GoalTypeWeekly, goalTypes, ErrGoalTypeInvalid)
	if err != nil {
		return models.Goal{}, err
	}
	load, err := parseCognitiveLoad(input.CognitiveLoad)
	if err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		UserID:        userID,
		Title:         title,
		Description:   truncateRunes(strings.TrimSpace(input.Description), maxNotesLength),
		Type:          goalType,
		CognitiveLoad: string(load),
		Status:        models.GoalStatusActive,
		Tasks:         []models.GoalTask{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.TargetDate != nil && strings.TrimSpace(*input.TargetDate) != "" {
		target, err := ParseDay(*input.TargetDate, service.location)
		if err != nil {
			return models.Goal{}, err
		}
		goal.TargetDate = &target
	}

	if err := service.goals.Create(&goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// ListGoals returns goals newest first. With a known phase, goals whose
// cognitive load suits it move to the front and keep their relative order.
func (service *GoalService) ListGoals(userID uint, phase *cycle.Phase) ([]GoalView, error) {
	goals, err := service.goals.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]GoalView, 0, len(goals))
	for _, goal := range goals {
		fits := phase != nil && cycle.GoalFitsPhase(*phase, cycle.CognitiveLoad(goal.CognitiveLoad))
		views = append(views, GoalView{Goal: goal, FitsPhase: fits})
	}
	if phase != nil {
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].FitsPhase && !views[j].FitsPhase
		})
	}
	return views, nil
}

func (service *GoalService) UpdateGoal(userID uint, goalID uint, update GoalUpdate, now time.Time) (models.Goal, error) {
	goal, err := service.goals.FindByIDForUser(goalID, userID)
	if err != nil {
		return models.Goal{}, notFound(err)
	}

	if update.Title != nil {
		title, err := validateGoalTitle(*update.Title)
		if err != nil {
			return models.Goal{}, err
		}
		goal.Title = title
	}
	if update.Status != nil {
		status, err := choiceOrDefault(*update.Status, "", goalStatuses, ErrGoalStatusInvalid)
		if err != nil || status == "" {
			return models.Goal{}, ErrGoalStatusInvalid
		}
		goal.Status = status
	}
	if update.Progress != nil {
		if *update.Progress < 0 || *update.Progress > 100 {
			return models.Goal{}, ErrGoalProgressInvalid
		}
		goal.Progress = *update.Progress
	}

	goal.UpdatedAt = now
	if err := service.goals.Save(&goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (service *GoalService) AddTask(userID uint, goalID uint, input TaskInput, now time.Time) (models.GoalTask, error) {
	goal, err := service.goals.FindByIDForUser(goalID, userID)
	if err != nil {
		return models.GoalTask{}, notFound(err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.GoalTask{}, ErrGoalTitleRequired
	}
	if len([]rune(title)) > maxGoalTitleLength {
		return models.GoalTask{}, ErrGoalTitleTooLong
	}
	category := cycle.TaskAdmin
	if raw := strings.ToLower(strings.TrimSpace(input.Category)); raw != "" {
		category = cycle.TaskCategory(raw)
		if !category.Valid() {
			return models.GoalTask{}, ErrTaskCategoryInvalid
		}
	}
	load, err := parseCognitiveLoad(input.CognitiveLoad)
	if err != nil {
		return models.GoalTask{}, err
	}
	if input.EstimatedMinutes != nil && *input.EstimatedMinutes < 0 {
		return models.GoalTask{}, ErrTaskEstimateInvalid
	}

	task := models.GoalTask{
		GoalID:           goal.ID,
		Title:            title,
		Category:         string(category),
		CognitiveLoad:    string(load),
		EstimatedMinutes: input.EstimatedMinutes,
		CreatedAt:        now,
	}
	if err := service.goals.CreateTask(&task); err != nil {
		return models.GoalTask{}, err
	}
	return task, nil
}

// CompleteTask marks a task done and recomputes the goal's progress from
// the share of completed tasks.
func (service *GoalService) CompleteTask(userID uint, goalID uint, taskID uint, energy *int, now time.Time) (models.Goal, error) {
	if energy != nil && (*energy < minEnergyLevel || *energy > maxEnergyLevel) {
		return models.Goal{}, ErrTaskEnergyInvalid
	}

	goal, err := service.goals.FindByIDForUser(goalID, userID)
	if err != nil {
		return models.Goal{}, notFound(err)
	}

	index := -1
	for position := range goal.Tasks {
		if goal.Tasks[position].ID == taskID {
			index = position
			break
		}
	}
	if index < 0 {
		return models.Goal{}, ErrNotFound
	}
	task := &goal.Tasks[index]
	if task.Completed {
		return models.Goal{}, ErrTaskAlreadyCompleted
	}

	completedAt := now
	task.Completed = true
	task.CompletedAt = &completedAt
	task.EnergyWhenCompleted = energy

	goal.Progress = TaskProgress(goal.Tasks)
	goal.UpdatedAt = now
	if err := service.goals.SaveTaskAndProgress(task, &goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// TaskProgress is the rounded percentage of completed tasks.
func TaskProgress(tasks []models.GoalTask) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}

func validateGoalTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrGoalTitleRequired
	}
	if len([]rune(title)) > maxGoalTitleLength {
		return "", ErrGoalTitleTooLong
	}
	return title, nil
}

func parseCognitiveLoad(raw string) (cycle.CognitiveLoad, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return cycle.LoadMedium, nil
	}
	load := cycle.CognitiveLoad(normalized)
	if !load.Valid() {
		return "", ErrCognitiveLoadInvalid
	}
	return load, nil
}

func choiceOrDefault(raw string, fallback string, allowed map[string]struct{}, invalid error) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return fallback, nil
	}
	if _, ok := allowed[normalized]; !ok {
		return "", invalid
	}
	return normalized, nil
}
