package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/repository"
	"github.com/google/uuid"
)

type routineService struct {
	routines repository.RoutineRepo
	checkIns repository.CheckInRepo
}

func NewRoutineService(routines repository.RoutineRepo, checkIns repository.CheckInRepo) RoutineService {
	return &routineService{routines: routines, checkIns: checkIns}
}

// Create assigns an id and creation date when missing and anchors interval
// frequencies at the creation date.
func (s *routineService) Create(ctx context.Context, r *domain.Routine) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("routine name is required")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if r.CreatedOn.IsZero() {
		r.CreatedOn = domain.DateOf(time.Now())
	}
	if r.Frequency.Kind == domain.FrequencyInterval && r.Frequency.Anchor.IsZero() {
		r.Frequency.Anchor = r.CreatedOn
	}
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	r.Active = true
	r.Streak = 0
	r.BestStreak = 0
	r.LastConfirmed = nil
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.routines.Create(ctx, r)
}

func (s *routineService) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	return s.routines.GetByID(ctx, id)
}

func (s *routineService) Resolve(ctx context.Context, ref string) (*domain.Routine, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty habit reference: %w", repository.ErrNotFound)
	}
	all, err := s.routines.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.ID == ref {
			return r, nil
		}
	}
	for _, r := range all {
		if strings.EqualFold(r.Name, ref) {
			return r, nil
		}
	}
	var matches []*domain.Routine
	for _, r := range all {
		if strings.HasPrefix(r.ID, strings.ToLower(ref)) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("habit %q: %w", ref, repository.ErrNotFound)
	default:
		return nil, fmt.Errorf("habit %q matches %d ids, use more characters", ref, len(matches))
	}
}

func (s *routineService) List(ctx context.Context, includeInactive bool) ([]*domain.Routine, error) {
	return s.routines.List(ctx, includeInactive)
}

// Update persists name, appearance and frequency changes. Streak state is
// owned by the check-in service and kept from the stored row.
func (s *routineService) Update(ctx context.Context, r *domain.Routine) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("routine name is required")
	}
	if r.Frequency.Kind == domain.FrequencyInterval && r.Frequency.Anchor.IsZero() {
		r.Frequency.Anchor = r.CreatedOn
	}
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	stored, err := s.routines.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	stored.Name = r.Name
	stored.Color = r.Color
	stored.Icon = r.Icon
	stored.Frequency = r.Frequency
	stored.UpdatedAt = time.Now().UTC()
	if err := s.routines.Update(ctx, stored); err != nil {
		return err
	}
	*r = *stored
	return nil
}

func (s *routineService) Pause(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

func (s *routineService) Resume(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

func (s *routineService) setActive(ctx context.Context, id string, active bool) error {
	r, err := s.routines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.Active == active {
		return nil
	}
	r.Active = active
	r.UpdatedAt = time.Now().UTC()
	return s.routines.Update(ctx, r)
}

func (s *routineService) Delete(ctx context.Context, id string) error {
	return s.routines.Delete(ctx, id)
}

func (s *routineService) History(ctx context.Context, id string, limit int) ([]*domain.CheckIn, error) {
	if _, err := s.routines.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.checkIns.ListByRoutine(ctx, id, limit)
}
