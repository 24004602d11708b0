package services

import (
	"errors"
	"sort"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/models"
)

var (
	ErrPeriodStartInFuture  = errors.New("period start is in the future")
	ErrPeriodEndBeforeStart = errors.New("period end before start")
	ErrPeriodEndTooLate     = errors.New("period end too late")
)

const (
	defaultPeriodListLimit = 12
	recentCycleWindow      = 6
)

type PeriodLogRepository interface {
	RecordStart(userID uint, start time.Time) (models.PeriodLog, bool, error)
	FindByIDForUser(periodID uint, userID uint) (models.PeriodLog, error)
	UpdateEnd(entry *models.PeriodLog) error
	ListByUser(userID uint, limit int) ([]models.PeriodLog, error)
}

type PeriodService struct {
	periods  PeriodLogRepository
	location *time.Location
}

func NewPeriodService(periods PeriodLogRepository, location *time.Location) *PeriodService {
	if location == nil {
		location = time.UTC
	}
	return &PeriodService{periods: periods, location: location}
}

// LogPeriodStart records a period start and advances the profile's last
// period start. created is false when the day was already logged.
func (service *PeriodService) LogPeriodStart(userID uint, date time.Time, now time.Time) (models.PeriodLog, bool, error) {
	day := DateAtLocation(date, service.location)
	if day.After(DateAtLocation(now, service.location)) {
		return models.PeriodLog{}, false, ErrPeriodStartInFuture
	}
	return service.periods.RecordStart(userID, day)
}

func (service *PeriodService) LogPeriodEnd(userID uint, periodID uint, endDate time.Time) (models.PeriodLog, error) {
	entry, err := service.periods.FindByIDForUser(periodID, userID)
	if err != nil {
		return models.PeriodLog{}, notFound(err)
	}

	start := civilDate(entry.StartDate, service.location)
	end := DateAtLocation(endDate, service.location)
	if end.Before(start) {
		return models.PeriodLog{}, ErrPeriodEndBeforeStart
	}
	if end.After(start.AddDate(0, 0, MaxPeriodLength)) {
		return models.PeriodLog{}, ErrPeriodEndTooLate
	}

	entry.EndDate = &end
	if err := service.periods.UpdateEnd(&entry); err != nil {
		return models.PeriodLog{}, err
	}
	return entry, nil
}

func (service *PeriodService) ListPeriods(userID uint, limit int) ([]models.PeriodLog, error) {
	if limit <= 0 {
		limit = defaultPeriodListLimit
	}
	return service.periods.ListByUser(userID, limit)
}

// ObservedCycleLengths returns day gaps between consecutive starts, oldest first.
func ObservedCycleLengths(periods []models.PeriodLog) []int {
	if len(periods) < 2 {
		return []int{}
	}

	starts := make([]time.Time, 0, len(periods))
	for _, period := range periods {
		starts = append(starts, period.StartDate)
	}
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})

	lengths := make([]int, 0, len(starts)-1)
	for index := 1; index < len(starts); index++ {
		lengths = append(lengths, cycle.DaysBetween(starts[index-1], starts[index]))
	}
	return lengths
}

// AverageCycleLength averages the last six observed cycles. ok is false
// when fewer than two starts are known.
func AverageCycleLength(periods []models.PeriodLog) (float64, bool) {
	lengths := tailInts(ObservedCycleLengths(periods), recentCycleWindow)
	if len(lengths) == 0 {
		return 0, false
	}
	return averageInts(lengths), true
}

func tailInts(values []int, n int) []int {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}
