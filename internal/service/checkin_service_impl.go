package service

import (
	"context"
	"time"

	"github.com/alexanderramin/habits/internal/db"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/repository"
	"github.com/alexanderramin/habits/internal/streak"
	"github.com/google/uuid"
)

type checkInService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCheckInService(uow db.UnitOfWork, observers ...UseCaseObserver) CheckInService {
	return &checkInService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// ConfirmRoutine records a confirm or skip for today. The routine is caught
// up first so a streak that already lapsed is not extended. Load, update and
// the check-in insert share one transaction; on any failure the stored
// routine is left as it was.
func (s *checkInService) ConfirmRoutine(ctx context.Context, routineID string, completed bool, today domain.Date) (routine *domain.Routine, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"routine_id": routineID,
		"completed":  completed,
		"date":       today.String(),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "confirm_routine",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		routines := repository.NewSQLiteRoutineRepo(tx)
		checkIns := repository.NewSQLiteCheckInRepo(tx)

		stored, err := routines.GetByID(ctx, routineID)
		if err != nil {
			return err
		}

		next, err := streak.Confirm(streak.CatchUp(*stored, today), completed, today)
		if err != nil {
			return err
		}
		next.UpdatedAt = time.Now().UTC()
		if err := routines.Update(ctx, &next); err != nil {
			return err
		}

		if err := checkIns.Create(ctx, &domain.CheckIn{
			ID:          uuid.New().String(),
			RoutineID:   next.ID,
			Date:        today,
			Completed:   completed,
			StreakAfter: next.Streak,
			CreatedAt:   next.UpdatedAt,
		}); err != nil {
			return err
		}
		routine = &next
		return nil
	})
	if err != nil {
		return nil, storageError("confirm routine", err)
	}
	fields["streak"] = routine.Streak
	return routine, nil
}

// RunCatchUp resets lapsed streaks and writes back only the routines that
// changed, all or nothing.
func (s *checkInService) RunCatchUp(ctx context.Context, today domain.Date) (result []*domain.Routine, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": today.String()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "run_catch_up",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteRoutineRepo(tx)

		stored, err := repo.List(ctx, true)
		if err != nil {
			return err
		}
		before := dereference(stored)
		if n := warnInvalidFrequencies(ctx, before); n > 0 {
			fields["invalid_frequencies"] = n
		}

		after := streak.RunCatchUp(before, today)
		now := time.Now().UTC()
		var changed []*domain.Routine
		result = make([]*domain.Routine, len(after))
		for i := range after {
			if after[i].Streak != before[i].Streak {
				after[i].UpdatedAt = now
				changed = append(changed, &after[i])
			}
			result[i] = &after[i]
		}
		fields["reset"] = len(changed)
		return repo.SaveAll(ctx, changed)
	})
	if err != nil {
		return nil, storageError("run catch-up", err)
	}
	return result, nil
}
