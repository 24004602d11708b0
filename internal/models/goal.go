package models

import "time"

const (
	GoalTypeDaily    = "daily"
	GoalTypeWeekly   = "weekly"
	GoalTypeMonthly  = "monthly"
	GoalTypeLongterm = "longterm"

	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusArchived  = "archived"
)

type Goal struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"-"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"not null;default:''" json:"description"`
	Type          string     `gorm:"not null;default:weekly" json:"type"`
	CognitiveLoad string     `gorm:"not null;default:medium" json:"cognitive_load"`
	TargetDate    *time.Time `gorm:"type:date" json:"target_date"`
	Status        string     `gorm:"not null;default:active" json:"status"`
	Progress      int        `gorm:"not null;default:0" json:"progress"`
	Tasks         []GoalTask `gorm:"foreignKey:GoalID" json:"tasks"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type GoalTask struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	GoalID              uint       `gorm:"not null;index" json:"goal_id"`
	Title               string     `gorm:"not null" json:"title"`
	Category            string     `gorm:"not null;default:admin" json:"category"`
	CognitiveLoad       string     `gorm:"not null;default:medium" json:"cognitive_load"`
	EstimatedMinutes    *int       `json:"estimated_minutes"`
	Completed           bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt         *time.Time `json:"completed_at"`
	EnergyWhenCompleted *int       `json:"energy_when_completed"`
	CreatedAt           time.Time  `json:"created_at"`
}
