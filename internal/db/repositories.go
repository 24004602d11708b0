package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Energy   *EnergyLogRepository
	Symptoms *SymptomLogRepository
	Periods  *PeriodLogRepository
	Goals    *GoalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Energy:   NewEnergyLogRepository(database),
		Symptoms: NewSymptomLogRepository(database),
		Periods:  NewPeriodLogRepository(database),
		Goals:    NewGoalRepository(database),
	}
}
