package db

import (
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

func (repo *UserRepository) SetOnboarded(userID uint, onboarded bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("onboarded", onboarded).Error
}

// ListReminderCandidates returns onboarded users that have a period start on record.
func (repo *UserRepository) ListReminderCandidates() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.
		Where("onboarded = ? AND last_period_start IS NOT NULL", true).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) ClearAllDataAndResetSettings(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		goalIDs := make([]uint, 0)
		if err := tx.Model(&models.Goal{}).Where("user_id = ?", userID).Pluck("id", &goalIDs).Error; err != nil {
			return err
		}
		if len(goalIDs) > 0 {
			if err := tx.Where("goal_id IN ?", goalIDs).Delete(&models.GoalTask{}).Error; err != nil {
				return err
			}
		}
		for _, model := range []any{&models.Goal{}, &models.EnergyLog{}, &models.SymptomLog{}, &models.PeriodLog{}} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"cycle_length":      models.DefaultCycleLength,
			"period_length":     models.DefaultPeriodLength,
			"last_period_start": nil,
			"onboarded":         false,
			"updated_at":        time.Now(),
		}).Error
	})
}
