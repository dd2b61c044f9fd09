package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/google/uuid"
)

var routineCounter atomic.Int64

// Monday is a fixed reference date (2025-01-06) for deterministic tests.
var Monday = domain.NewDate(2025, 1, 6)

type RoutineOption func(*domain.Routine)

func WithFrequency(f domain.Frequency) RoutineOption {
	return func(r *domain.Routine) {
		r.Frequency = f
	}
}

// WithStreak sets the current streak and raises BestStreak to match.
func WithStreak(n int) RoutineOption {
	return func(r *domain.Routine) {
		r.Streak = n
		if r.BestStreak < n {
			r.BestStreak = n
		}
	}
}

func WithLastConfirmed(d domain.Date) RoutineOption {
	return func(r *domain.Routine) {
		r.LastConfirmed = &d
	}
}

func WithCreatedOn(d domain.Date) RoutineOption {
	return func(r *domain.Routine) {
		r.CreatedOn = d
		if r.Frequency.Kind == domain.FrequencyInterval {
			r.Frequency.Anchor = d
		}
	}
}

func WithInactive() RoutineOption {
	return func(r *domain.Routine) {
		r.Active = false
	}
}

func WithAppearance(color, icon string) RoutineOption {
	return func(r *domain.Routine) {
		r.Color = color
		r.Icon = icon
	}
}

// NewTestRoutine returns an active daily routine created on Monday. An
// empty name gets a unique generated one.
func NewTestRoutine(name string, opts ...RoutineOption) *domain.Routine {
	if name == "" {
		name = fmt.Sprintf("Routine %d", routineCounter.Add(1))
	}
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.Routine{
		ID:        uuid.New().String(),
		Name:      name,
		Frequency: domain.Daily(),
		Active:    true,
		CreatedOn: Monday,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestCheckIn(routineID string, date domain.Date, completed bool) *domain.CheckIn {
	return &domain.CheckIn{
		ID:        uuid.New().String(),
		RoutineID: routineID,
		Date:      date,
		Completed: completed,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Settings returns enabled settings with the given reminder times and the
// default cap.
func Settings(times ...string) *domain.NotificationSettings {
	s := domain.DefaultSettings()
	for _, t := range times {
		s.ReminderTimes = append(s.ReminderTimes, domain.MustTimeOfDay(t))
	}
	return &s
}
