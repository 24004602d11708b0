package db

import (
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
	"gorm.io/gorm"
)

type EnergyLogRepository struct {
	database *gorm.DB
}

func NewEnergyLogRepository(database *gorm.DB) *EnergyLogRepository {
	return &EnergyLogRepository{database: database}
}

func (repo *EnergyLogRepository) Create(entry *models.EnergyLog) error {
	return repo.database.Create(entry).Error
}

// ListByUser returns newest logs first. A non-positive limit returns everything.
func (repo *EnergyLogRepository) ListByUser(userID uint, limit int) ([]models.EnergyLog, error) {
	entries := make([]models.EnergyLog, 0)
	query := repo.database.Where("user_id = ?", userID).Order("logged_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRange returns logs with from <= logged_at < to, oldest first.
func (repo *EnergyLogRepository) ListRange(userID uint, from time.Time, to time.Time) ([]models.EnergyLog, error) {
	entries := make([]models.EnergyLog, 0)
	if err := repo.database.
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EnergyLogRepository) LatestInRange(userID uint, from time.Time, to time.Time) (models.EnergyLog, error) {
	var entry models.EnergyLog
	if err := repo.database.
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at DESC, id DESC").
		First(&entry).Error; err != nil {
		return models.EnergyLog{}, err
	}
	return entry, nil
}
