package repository

import (
	"context"

	"github.com/alexanderramin/habits/internal/domain"
)

// RoutineRepo persists routines as an ordered list keyed by ID.
type RoutineRepo interface {
	Create(ctx context.Context, r *domain.Routine) error
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Routine, error)
	Update(ctx context.Context, r *domain.Routine) error
	// SaveAll writes back a snapshot list. Run it inside a unit of work for
	// all-or-nothing semantics.
	SaveAll(ctx context.Context, routines []*domain.Routine) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepo persists the single notification settings record.
type SettingsRepo interface {
	Get(ctx context.Context) (*domain.NotificationSettings, error)
	Upsert(ctx context.Context, s *domain.NotificationSettings) error
}

// CheckInRepo persists the confirm/skip history of routines.
type CheckInRepo interface {
	Create(ctx context.Context, c *domain.CheckIn) error
	ListByRoutine(ctx context.Context, routineID string, limit int) ([]*domain.CheckIn, error)
	ListByDate(ctx context.Context, date domain.Date) ([]*domain.CheckIn, error)
}
