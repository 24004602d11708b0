package models

import "time"

type EnergyLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	LoggedAt    time.Time `gorm:"not null;index" json:"logged_at"`
	EnergyLevel int       `gorm:"not null" json:"energy_level"`
	FocusLevel  *int      `json:"focus_level"`
	Mood        *string   `json:"mood"`
	Focus       *string   `json:"focus"`
	CycleDay    *int      `json:"cycle_day"`
	CyclePhase  *string   `json:"cycle_phase"`
	Notes       string    `gorm:"not null;default:''" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

type SymptomLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"-"`
	Date             time.Time `gorm:"type:date;not null" json:"date"`
	Cramps           int       `gorm:"not null;default:0" json:"cramps"`
	Headache         int       `gorm:"not null;default:0" json:"headache"`
	Bloating         int       `gorm:"not null;default:0" json:"bloating"`
	BreastTenderness int       `gorm:"not null;default:0" json:"breast_tenderness"`
	Acne             int       `gorm:"not null;default:0" json:"acne"`
	Fatigue          int       `gorm:"not null;default:0" json:"fatigue"`
	Cravings         int       `gorm:"not null;default:0" json:"cravings"`
	MoodSwings       int       `gorm:"not null;default:0" json:"mood_swings"`
	Anxiety          int       `gorm:"not null;default:0" json:"anxiety"`
	SleepHours       *float64  `json:"sleep_hours"`
	SleepQuality     *string   `json:"sleep_quality"`
	Exercised        bool      `gorm:"not null;default:false" json:"exercised"`
	ExerciseType     *string   `json:"exercise_type"`
	ExerciseMinutes  *int      `json:"exercise_minutes"`
	CycleDay         *int      `json:"cycle_day"`
	CyclePhase       *string   `json:"cycle_phase"`
	Notes            string    `gorm:"not null;default:''" json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

type PeriodLog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:uidx_period_user_start" json:"-"`
	StartDate time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_period_user_start" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
}
