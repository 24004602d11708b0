package db

import (
	"github.com/HarshitaThota/Flow-State/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) Create(goal *models.Goal) error {
	return repo.database.Omit("Tasks").Create(goal).Error
}

// ListByUser returns goals newest first with their tasks in creation order.
func (repo *GoalRepository) ListByUser(userID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) FindByIDForUser(goalID uint, userID uint) (models.Goal, error) {
	var goal models.Goal
	if err := repo.database.
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error; err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (repo *GoalRepository) Save(goal *models.Goal) error {
	return repo.database.Omit("Tasks").Save(goal).Error
}

func (repo *GoalRepository) CreateTask(task *models.GoalTask) error {
	return repo.database.Create(task).Error
}

// SaveTaskAndProgress stores task and the goal's recomputed progress together.
func (repo *GoalRepository) SaveTaskAndProgress(task *models.GoalTask, goal *models.Goal) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		return tx.Model(&models.Goal{}).Where("id = ?", goal.ID).Updates(map[string]any{
			"progress":   goal.Progress,
			"status":     goal.Status,
			"updated_at": goal.UpdatedAt,
		}).Error
	})
}
