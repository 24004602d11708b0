package db

import (
	"github.com/HarshitaThota/Flow-State/internal/models"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

func (repo *SymptomLogRepository) Create(entry *models.SymptomLog) error {
	return repo.database.Create(entry).Error
}

// ListByUser returns newest dates first. A non-positive limit returns everything.
func (repo *SymptomLogRepository) ListByUser(userID uint, limit int) ([]models.SymptomLog, error) {
	entries := make([]models.SymptomLog, 0)
	query := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
