package services

import (
	"errors"
	"testing"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

func TestCreateGoalDefaults(t *testing.T) {
	t.Parallel()

	service := NewGoalService(&stubGoalRepo{}, nil)
	goal, err := service.CreateGoal(1, GoalInput{Title: "  Draft proposal ", TargetDate: stringPtr("2024-02-01")}, dayUTC(2024, 1, 10))
	if err != nil {
		t.Fatalf("CreateGoal() unexpected error: %v", err)
	}
	if goal.ID == 0 || goal.Title != "Draft proposal" {
		t.Fatalf("expected stored trimmed goal, got %+v", goal)
	}
	if goal.Type != models.GoalTypeWeekly || goal.CognitiveLoad != string(cycle.LoadMedium) || goal.Status != models.GoalStatusActive {
		t.Fatalf("expected weekly medium active defaults, got %+v", goal)
	}
	if goal.TargetDate == nil || !goal.TargetDate.Equal(dayUTC(2024, 2, 1)) {
		t.Fatalf("expected target date 2024-02-01, got %v", goal.TargetDate)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input GoalInput
		want  error
	}{
		{name: "blank title", input: GoalInput{Title: "  "}, want: ErrGoalTitleRequired},
		{name: "type", input: GoalInput{Title: "x", Type: "yearly"}, want: ErrGoalTypeInvalid},
		{name: "load", input: GoalInput{Title: "x", CognitiveLoad: "extreme"}, want: ErrCognitiveLoadInvalid},
		{name: "target date", input: GoalInput{Title: "x", TargetDate: stringPtr("soon")}, want: ErrInvalidDate},
	}
	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			service := NewGoalService(&stubGoalRepo{}, nil)
			if _, err := service.CreateGoal(1, testCase.input, dayUTC(2024, 1, 10)); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestListGoalsOrdersByPhaseFit(t *testing.T) {
	t.Parallel()

	repo := &stubGoalRepo{}
	service := NewGoalService(repo, nil)
	now := dayUTC(2024, 1, 10)
	for _, input := range []GoalInput{
		{Title: "deep", CognitiveLoad: "deep"},
		{Title: "light", CognitiveLoad: "light"},
		{Title: "autopilot", CognitiveLoad: "autopilot"},
		{Title: "medium", CognitiveLoad: "medium"},
	} {
		if _, err := service.CreateGoal(1, input, now); err != nil {
			t.Fatalf("CreateGoal() unexpected error: %v", err)
		}
	}

	plain, err := service.ListGoals(1, nil)
	if err != nil {
		t.Fatalf("ListGoals() unexpected error: %v", err)
	}
	if titles(plain) != "medium,autopilot,light,deep" {
		t.Fatalf("expected newest first, got %s", titles(plain))
	}

	menstrual := cycle.PhaseMenstrual
	ordered, err := service.ListGoals(1, &menstrual)
	if err != nil {
		t.Fatalf("ListGoals() unexpected error: %v", err)
	}
	if titles(ordered) != "autopilot,light,medium,deep" {
		t.Fatalf("expected fitting goals first, got %s", titles(ordered))
	}
	if !ordered[0].FitsPhase || ordered[3].FitsPhase {
		t.Fatalf("expected fit flags on views, got %+v", ordered)
	}
}

func titles(views []GoalView) string {
	joined := ""
	for index, view := range views {
		if index > 0 {
			joined += ","
		}
		joined += view.Title
	}
	return joined
}

func TestUpdateGoal(t *testing.T) {
	t.Parallel()

	repo := &stubGoalRepo{}
	service := NewGoalService(repo, nil)
	goal, err := service.CreateGoal(1, GoalInput{Title: "Ship"}, dayUTC(2024, 1, 10))
	if err != nil {
		t.Fatalf("CreateGoal() unexpected error: %v", err)
	}

	updated, err := service.UpdateGoal(1, goal.ID, GoalUpdate{Status: stringPtr("Completed"), Progress: intPtr(100)}, dayUTC(2024, 1, 11))
	if err != nil {
		t.Fatalf("UpdateGoal() unexpected error: %v", err)
	}
	if updated.Status != models.GoalStatusCompleted || updated.Progress != 100 {
		t.Fatalf("expected completed at 100%%, got %+v", updated)
	}

	if _, err := service.UpdateGoal(1, goal.ID, GoalUpdate{Status: stringPtr("")}, dayUTC(2024, 1, 11)); !errors.Is(err, ErrGoalStatusInvalid) {
		t.Fatalf("expected ErrGoalStatusInvalid, got %v", err)
	}
	if _, err := service.UpdateGoal(1, goal.ID, GoalUpdate{Progress: intPtr(101)}, dayUTC(2024, 1, 11)); !errors.Is(err, ErrGoalProgressInvalid) {
		t.Fatalf("expected ErrGoalProgressInvalid, got %v", err)
	}
	if _, err := service.UpdateGoal(2, goal.ID, GoalUpdate{Progress: intPtr(10)}, dayUTC(2024, 1, 11)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestCompleteTaskRecomputesProgress(t *testing.T) {
	t.Parallel()

	repo := &stubGoalRepo{}
	service := NewGoalService(repo, nil)
	now := dayUTC(2024, 1, 10)
	goal, err := service.CreateGoal(1, GoalInput{Title: "Launch"}, now)
	if err != nil {
		t.Fatalf("CreateGoal() unexpected error: %v", err)
	}

	taskIDs := make([]uint, 0, 3)
	for _, title := range []string{"outline", "write", "review"} {
		task, err := service.AddTask(1, goal.ID, TaskInput{Title: title, Category: "deep_work"}, now)
		if err != nil {
			t.Fatalf("AddTask() unexpected error: %v", err)
		}
		taskIDs = append(taskIDs, task.ID)
	}

	updated, err := service.CompleteTask(1, goal.ID, taskIDs[0], intPtr(8), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("CompleteTask() unexpected error: %v", err)
	}
	if updated.Progress != 33 {
		t.Fatalf("expected progress 33, got %d", updated.Progress)
	}
	if stored, _ := repo.FindByIDForUser(goal.ID, 1); stored.Progress != 33 || !stored.Tasks[0].Completed {
		t.Fatalf("expected stored progress and completion, got %+v", stored)
	}
	if stored, _ := repo.FindByIDForUser(goal.ID, 1); stored.Tasks[0].EnergyWhenCompleted == nil || *stored.Tasks[0].EnergyWhenCompleted != 8 {
		t.Fatalf("expected energy 8 recorded, got %+v", stored.Tasks[0])
	}

	if _, err := service.CompleteTask(1, goal.ID, taskIDs[0], nil, now); !errors.Is(err, ErrTaskAlreadyCompleted) {
		t.Fatalf("expected ErrTaskAlreadyCompleted, got %v", err)
	}
	if _, err := service.CompleteTask(1, goal.ID, 999, nil, now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown task, got %v", err)
	}
	if _, err := service.CompleteTask(1, goal.ID, taskIDs[1], intPtr(11), now); !errors.Is(err, ErrTaskEnergyInvalid) {
		t.Fatalf("expected ErrTaskEnergyInvalid, got %v", err)
	}
	if _, err := service.CompleteTask(2, goal.ID, taskIDs[1], nil, now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestAddTaskValidation(t *testing.T) {
	t.Parallel()

	repo := &stubGoalRepo{}
	service := NewGoalService(repo, nil)
	goal, err := service.CreateGoal(1, GoalInput{Title: "Launch"}, dayUTC(2024, 1, 10))
	if err != nil {
		t.Fatalf("CreateGoal() unexpected error: %v", err)
	}

	task, err := service.AddTask(1, goal.ID, TaskInput{Title: "file invoices"}, dayUTC(2024, 1, 10))
	if err != nil {
		t.Fatalf("AddTask() unexpected error: %v", err)
	}
	if task.Category != string(cycle.TaskAdmin) || task.CognitiveLoad != string(cycle.LoadMedium) {
		t.Fatalf("expected admin/medium defaults, got %+v", task)
	}

	tests := []struct {
		name  string
		input TaskInput
		want  error
	}{
		{name: "blank title", input: TaskInput{Title: ""}, want: ErrGoalTitleRequired},
		{name: "category", input: TaskInput{Title: "x", Category: "chores"}, want: ErrTaskCategoryInvalid},
		{name: "estimate", input: TaskInput{Title: "x", EstimatedMinutes: intPtr(-5)}, want: ErrTaskEstimateInvalid},
	}
	for _, testCase := range tests {
		if _, err := service.AddTask(1, goal.ID, testCase.input, dayUTC(2024, 1, 10)); !errors.Is(err, testCase.want) {
			t.Fatalf("%s: expected %v, got %v", testCase.name, testCase.want, err)
		}
	}
}

func TestTaskProgress(t *testing.T) {
	t.Parallel()

	if got := TaskProgress(nil); got != 0 {
		t.Fatalf("expected 0 for no tasks, got %d", got)
	}
	tasks := []models.GoalTask{{Completed: true}, {Completed: true}, {Completed: false}}
	if got := TaskProgress(tasks); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}
