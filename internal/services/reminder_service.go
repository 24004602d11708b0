package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/logger"
	"github.com/HarshitaThota/Flow-State/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	ReminderKindPeriod    = "period"
	ReminderKindOvulation = "ovulation"

	maxTrackedReminders = 500
)

type ReminderUserRepository interface {
	ListReminderCandidates() ([]models.User, error)
}

type ReminderService struct {
	users      ReminderUserRepository
	notifier   Notifier
	log        *zap.Logger
	location   *time.Location
	daysBefore int

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewReminderService(users ReminderUserRepository, notifier Notifier, log *zap.Logger, location *time.Location, daysBefore int) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		users:      users,
		notifier:   notifier,
		log:        logger.OrNop(log).Named("reminders"),
		location:   location,
		daysBefore: daysBefore,
		sent:       make(map[string]time.Time),
	}
}

// Start schedules RunOnce on a standard five-field cron spec in the service
// location. The scheduler stops when ctx is cancelled.
func (service *ReminderService) Start(ctx context.Context, schedule string) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithLocation(service.location))
	if _, err := scheduler.AddFunc(schedule, func() {
		if _, err := service.RunOnce(ctx, time.Now()); err != nil {
			service.log.Error("reminder run failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule reminders: %w", err)
	}

	scheduler.Start()
	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()
	return scheduler, nil
}

// RunOnce sends the reminders due at now and returns how many went out.
// A failed send is logged and does not stop the run.
func (service *ReminderService) RunOnce(ctx context.Context, now time.Time) (int, error) {
	users, err := service.users.ListReminderCandidates()
	if err != nil {
		return 0, fmt.Errorf("list reminder candidates: %w", err)
	}

	today := DateAtLocation(now, service.location)
	sent := 0
	for _, user := range users {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		for _, reminder := range service.dueReminders(user, today) {
			key := fmt.Sprintf("%s:%d:%s", reminder.kind, user.ID, today.Format(dayLayout))
			if !service.shouldSend(key, today) {
				continue
			}
			if err := service.notifier.Notify(ctx, user, reminder.message); err != nil {
				service.forget(key)
				service.log.Warn("send reminder failed",
					zap.String("kind", reminder.kind),
					zap.Uint("user_id", user.ID),
					zap.Error(err),
				)
				continue
			}
			sent++
		}
	}
	return sent, nil
}

type dueReminder struct {
	kind    string
	message string
}

func (service *ReminderService) dueReminders(user models.User, today time.Time) []dueReminder {
	profile, ok := CycleProfile(user, service.location)
	if !ok {
		return nil
	}

	reminders := make([]dueReminder, 0, 2)
	next := cycle.NextPeriodDate(profile, today)
	if cycle.DaysBetween(today, next) == service.daysBefore {
		reminders = append(reminders, dueReminder{
			kind: ReminderKindPeriod,
			message: fmt.Sprintf("Flow State reminder: your next period is expected in %d day(s), on %s.",
				service.daysBefore, next.Format("Jan 2")),
		})
	}

	info := cycle.TodayInfo(profile, today)
	if info.Phase == cycle.PhaseOvulation && info.DayOfCycle == cycle.OvulationDay(profile.CycleLength, profile.PeriodLength) {
		reminders = append(reminders, dueReminder{
			kind:    ReminderKindOvulation,
			message: "Flow State: today is your estimated ovulation day. " + cycle.RecommendationsFor(cycle.PhaseOvulation).Tips,
		})
	}
	return reminders
}

func (service *ReminderService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sent[key]; ok && sentOn.Equal(today) {
		return false
	}
	if len(service.sent) >= maxTrackedReminders {
		service.sent = make(map[string]time.Time)
	}
	service.sent[key] = today
	return true
}

func (service *ReminderService) forget(key string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.sent, key)
}
