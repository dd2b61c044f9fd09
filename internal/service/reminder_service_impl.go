package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/habits/internal/delivery"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/reminder"
	"github.com/alexanderramin/habits/internal/repository"
)

type reminderService struct {
	routines repository.RoutineRepo
	settings repository.SettingsRepo
	notifier delivery.Notifier
	observer UseCaseObserver
}

// NewReminderService builds plans from stored state. notifier may be nil
// when only BuildNotificationPlan is used.
func NewReminderService(
	routines repository.RoutineRepo,
	settings repository.SettingsRepo,
	notifier delivery.Notifier,
	observers ...UseCaseObserver,
) ReminderService {
	return &reminderService{
		routines: routines,
		settings: settings,
		notifier: notifier,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reminderService) BuildNotificationPlan(ctx context.Context, today domain.Date) (plan []domain.ScheduledNotification, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": today.String()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "build_plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	plan, err = s.plan(ctx, today)
	fields["notifications"] = len(plan)
	return plan, err
}

func (s *reminderService) plan(ctx context.Context, today domain.Date) ([]domain.ScheduledNotification, error) {
	settings, err := loadSettings(ctx, s.settings)
	if err != nil {
		return nil, err
	}
	stored, err := s.routines.List(ctx, false)
	if err != nil {
		return nil, storageError("load routines", err)
	}
	routines := dereference(stored)
	warnInvalidFrequencies(ctx, routines)
	return reminder.BuildPlan(*settings, routines, today), nil
}

func (s *reminderService) Sync(ctx context.Context, now time.Time) (result *SyncResult, err error) {
	startedAt := time.Now().UTC()
	today := domain.DateOf(now)
	fields := map[string]any{"date": today.String()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "sync_reminders",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if s.notifier == nil {
		return nil, fmt.Errorf("no notifier configured")
	}

	plan, err := s.plan(ctx, today)
	if err != nil {
		return nil, err
	}
	result = &SyncResult{Date: today, Plan: plan}
	fields["planned"] = len(plan)

	if err := s.notifier.CancelAll(ctx); err != nil {
		return nil, fmt.Errorf("cancelling scheduled reminders: %w", err)
	}

	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		return nil, fmt.Errorf("requesting notification permission: %w", err)
	}
	if !granted {
		fields["granted"] = false
		return result, domain.ErrPermissionDenied
	}
	result.Granted = true

	nowTod, err := domain.NewTimeOfDay(now.Hour(), now.Minute())
	if err != nil {
		return nil, err
	}
	for _, n := range reminder.PendingAfter(plan, nowTod) {
		h, err := s.notifier.Schedule(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("scheduling reminder at %s: %w", n.Time, err)
		}
		result.Scheduled = append(result.Scheduled, n)
		result.Handles = append(result.Handles, h)
	}
	fields["scheduled"] = len(result.Scheduled)
	return result, nil
}
