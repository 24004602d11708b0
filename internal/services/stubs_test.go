package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users       map[uint]models.User
	nextID      uint
	saveErr     error
	clearCalled bool
}

func newStubUserRepo(users ...models.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[uint]models.User), nextID: 1}
	for _, user := range users {
		repo.users[user.ID] = user
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
	}
	return repo
}

func (stub *stubUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *stubUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := stub.FindByNormalizedEmail(email)
	return err == nil, nil
}

func (stub *stubUserRepo) Create(user *models.User) error {
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.ID] = *user
	return nil
}

func (stub *stubUserRepo) Save(user *models.User) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.users[user.ID] = *user
	return nil
}

func (stub *stubUserRepo) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	user := stub.users[userID]
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	stub.users[userID] = user
	return nil
}

func (stub *stubUserRepo) SetOnboarded(userID uint, onboarded bool) error {
	user := stub.users[userID]
	user.Onboarded = onboarded
	stub.users[userID] = user
	return nil
}

func (stub *stubUserRepo) ClearAllDataAndResetSettings(userID uint) error {
	stub.clearCalled = true
	user := stub.users[userID]
	user.CycleLength = models.DefaultCycleLength
	user.PeriodLength = models.DefaultPeriodLength
	user.LastPeriodStart = nil
	user.Onboarded = false
	stub.users[userID] = user
	return nil
}

func (stub *stubUserRepo) ListReminderCandidates() ([]models.User, error) {
	users := make([]models.User, 0, len(stub.users))
	for _, user := range stub.users {
		if user.Onboarded && user.LastPeriodStart != nil {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type stubEnergyRepo struct {
	logs []models.EnergyLog
}

func (stub *stubEnergyRepo) Create(entry *models.EnergyLog) error {
	entry.ID = uint(len(stub.logs) + 1)
	stub.logs = append(stub.logs, *entry)
	return nil
}

func (stub *stubEnergyRepo) ListByUser(userID uint, limit int) ([]models.EnergyLog, error) {
	result := make([]models.EnergyLog, 0)
	for index := len(stub.logs) - 1; index >= 0; index-- {
		if stub.logs[index].UserID == userID {
			result = append(result, stub.logs[index])
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (stub *stubEnergyRepo) ListRange(userID uint, from time.Time, to time.Time) ([]models.EnergyLog, error) {
	result := make([]models.EnergyLog, 0)
	for _, entry := range stub.logs {
		if entry.UserID == userID && !entry.LoggedAt.Before(from) && entry.LoggedAt.Before(to) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (stub *stubEnergyRepo) LatestInRange(userID uint, from time.Time, to time.Time) (models.EnergyLog, error) {
	entries, _ := stub.ListRange(userID, from, to)
	if len(entries) == 0 {
		return models.EnergyLog{}, gorm.ErrRecordNotFound
	}
	return entries[len(entries)-1], nil
}

type stubSymptomRepo struct {
	logs []models.SymptomLog
}

func (stub *stubSymptomRepo) Create(entry *models.SymptomLog) error {
	entry.ID = uint(len(stub.logs) + 1)
	stub.logs = append(stub.logs, *entry)
	return nil
}

func (stub *stubSymptomRepo) ListByUser(userID uint, limit int) ([]models.SymptomLog, error) {
	result := make([]models.SymptomLog, 0)
	for _, entry := range stub.logs {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type stubPeriodRepo struct {
	periods []models.PeriodLog
}

func (stub *stubPeriodRepo) RecordStart(userID uint, start time.Time) (models.PeriodLog, bool, error) {
	for _, period := range stub.periods {
		if period.UserID == userID && period.StartDate.Equal(start) {
			return period, false, nil
		}
	}
	entry := models.PeriodLog{ID: uint(len(stub.periods) + 1), UserID: userID, StartDate: start}
	stub.periods = append(stub.periods, entry)
	return entry, true, nil
}

func (stub *stubPeriodRepo) FindByIDForUser(periodID uint, userID uint) (models.PeriodLog, error) {
	for _, period := range stub.periods {
		if period.ID == periodID && period.UserID == userID {
			return period, nil
		}
	}
	return models.PeriodLog{}, gorm.ErrRecordNotFound
}

func (stub *stubPeriodRepo) UpdateEnd(entry *models.PeriodLog) error {
	for index := range stub.periods {
		if stub.periods[index].ID == entry.ID {
			stub.periods[index].EndDate = entry.EndDate
		}
	}
	return nil
}

func (stub *stubPeriodRepo) ListByUser(userID uint, limit int) ([]models.PeriodLog, error) {
	result := make([]models.PeriodLog, 0)
	for _, period := range stub.periods {
		if period.UserID == userID {
			result = append(result, period)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type stubGoalRepo struct {
	goals  []models.Goal
	nextID uint
}

func (stub *stubGoalRepo) Create(goal *models.Goal) error {
	stub.nextID++
	goal.ID = stub.nextID
	stub.goals = append(stub.goals, *goal)
	return nil
}

func (stub *stubGoalRepo) ListByUser(userID uint) ([]models.Goal, error) {
	result := make([]models.Goal, 0)
	for index := len(stub.goals) - 1; index >= 0; index-- {
		if stub.goals[index].UserID == userID {
			result = append(result, stub.goals[index])
		}
	}
	return result, nil
}

func (stub *stubGoalRepo) FindByIDForUser(goalID uint, userID uint) (models.Goal, error) {
	for _, goal := range stub.goals {
		if goal.ID == goalID && goal.UserID == userID {
			goal.Tasks = append([]models.GoalTask(nil), goal.Tasks...)
			return goal, nil
		}
	}
	return models.Goal{}, gorm.ErrRecordNotFound
}

func (stub *stubGoalRepo) Save(goal *models.Goal) error {
	for index := range stub.goals {
		if stub.goals[index].ID == goal.ID {
			tasks := stub.goals[index].Tasks
			stub.goals[index] = *goal
			stub.goals[index].Tasks = tasks
		}
	}
	return nil
}

func (stub *stubGoalRepo) CreateTask(task *models.GoalTask) error {
	stub.nextID++
	task.ID = stub.nextID
	for index := range stub.goals {
		if stub.goals[index].ID == task.GoalID {
			stub.goals[index].Tasks = append(stub.goals[index].Tasks, *task)
		}
	}
	return nil
}

func (stub *stubGoalRepo) SaveTaskAndProgress(task *models.GoalTask, goal *models.Goal) error {
	for index := range stub.goals {
		if stub.goals[index].ID != goal.ID {
			continue
		}
		for taskIndex := range stub.goals[index].Tasks {
			if stub.goals[index].Tasks[taskIndex].ID == task.ID {
				stub.goals[index].Tasks[taskIndex] = *task
			}
		}
		stub.goals[index].Progress = goal.Progress
	}
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (notifier *recordingNotifier) Notify(_ context.Context, _ models.User, message string) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.err != nil {
		return notifier.err
	}
	notifier.messages = append(notifier.messages, message)
	return nil
}

func dayUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func configuredUser(id uint, lastPeriodStart time.Time) models.User {
	start := lastPeriodStart
	return models.User{
		ID:              id,
		Email:           "user@example.com",
		CycleLength:     28,
		PeriodLength:    5,
		LastPeriodStart: &start,
		Onboarded:       true,
	}
}
