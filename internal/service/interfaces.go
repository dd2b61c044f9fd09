package service

import (
	"context"
	"time"

	"github.com/alexanderramin/habits/internal/delivery"
	"github.com/alexanderramin/habits/internal/domain"
)

type RoutineService interface {
	Create(ctx context.Context, r *domain.Routine) error
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	// Resolve finds a routine by exact id, case-insensitive name, or unique
	// id prefix.
	Resolve(ctx context.Context, ref string) (*domain.Routine, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Routine, error)
	Update(ctx context.Context, r *domain.Routine) error
	Pause(ctx context.Context, id string) error
	Resume(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string, limit int) ([]*domain.CheckIn, error)
}

type CheckInService interface {
	ConfirmRoutine(ctx context.Context, routineID string, completed bool, today domain.Date) (*domain.Routine, error)
	RunCatchUp(ctx context.Context, today domain.Date) ([]*domain.Routine, error)
}

type SettingsService interface {
	// Get returns the normalized settings, falling back to defaults when
	// nothing is stored.
	Get(ctx context.Context) (*domain.NotificationSettings, error)
	// Update normalizes s, persists the result and returns it.
	Update(ctx context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error)
}

// SyncResult holds the outcome of handing today's plan to a Notifier.
type SyncResult struct {
	Date      domain.Date
	Plan      []domain.ScheduledNotification
	Scheduled []domain.ScheduledNotification
	Handles   []delivery.Handle
	Granted   bool
}

type ReminderService interface {
	BuildNotificationPlan(ctx context.Context, today domain.Date) ([]domain.ScheduledNotification, error)
	// Sync cancels everything previously scheduled and schedules the
	// instants of today's plan that are still ahead of now. When permission
	// is denied the full plan is returned with domain.ErrPermissionDenied and
	// nothing is scheduled.
	Sync(ctx context.Context, now time.Time) (*SyncResult, error)
}
