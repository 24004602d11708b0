package db

import (
	"errors"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
	"gorm.io/gorm"
)

type PeriodLogRepository struct {
	database *gorm.DB
}

func NewPeriodLogRepository(database *gorm.DB) *PeriodLogRepository {
	return &PeriodLogRepository{database: database}
}

// RecordStart stores a period start and moves the user's last_period_start
// forward when start is the newest known start. An existing entry for the
// same day is returned unchanged with created=false.
func (repo *PeriodLogRepository) RecordStart(userID uint, start time.Time) (models.PeriodLog, bool, error) {
	var entry models.PeriodLog
	created := false

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND start_date = ?", userID, start).First(&entry)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		entry = models.PeriodLog{UserID: userID, StartDate: start}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		created = true

		return tx.Model(&models.User{}).
			Where("id = ? AND (last_period_start IS NULL OR last_period_start < ?)", userID, start).
			Update("last_period_start", start).Error
	})
	if err != nil {
		return models.PeriodLog{}, false, err
	}
	return entry, created, nil
}

func (repo *PeriodLogRepository) FindByIDForUser(periodID uint, userID uint) (models.PeriodLog, error) {
	var entry models.PeriodLog
	if err := repo.database.Where("id = ? AND user_id = ?", periodID, userID).First(&entry).Error; err != nil {
		return models.PeriodLog{}, err
	}
	return entry, nil
}

func (repo *PeriodLogRepository) UpdateEnd(entry *models.PeriodLog) error {
	return repo.database.Model(entry).Update("end_date", entry.EndDate).Error
}

// ListByUser returns newest starts first. A non-positive limit returns everything.
func (repo *PeriodLogRepository) ListByUser(userID uint, limit int) ([]models.PeriodLog, error) {
	entries := make([]models.PeriodLog, 0)
	query := repo.database.Where("user_id = ?", userID).Order("start_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
