package streak

import (
	"fmt"

	"github.com/alexanderramin/habits/internal/domain"
)

// Confirm applies a confirm (completed) or skip (!completed) event for today
// and returns the updated snapshot. The input routine is never modified.
//
// A routine can be confirmed at most once per day; a second call returns
// ErrAlreadyConfirmed. A skip resets the streak but still records today as
// observed so catch-up does not penalize the same day again.
func Confirm(r domain.Routine, completed bool, today domain.Date) (domain.Routine, error) {
	if r.ConfirmedOn(today) {
		return r, fmt.Errorf("%s on %s: %w", r.Name, today, domain.ErrAlreadyConfirmed)
	}
	if r.LastConfirmed != nil && today.Before(*r.LastConfirmed) {
		return r, fmt.Errorf("%s on %s (last %s): %w", r.Name, today, r.LastConfirmed, domain.ErrConfirmBeforeLast)
	}
	if !r.Active {
		return r, fmt.Errorf("%s: %w", r.Name, domain.ErrRoutineInactive)
	}

	next := r.Clone()
	if completed {
		next.Streak++
		if next.Streak > next.BestStreak {
			next.BestStreak = next.Streak
		}
	} else {
		next.Streak = 0
	}
	d := today
	next.LastConfirmed = &d
	return next, nil
}

// CatchUp reconciles a routine whose due days may have elapsed without a
// confirmation. Only the last confirmation date is known, so any due day
// strictly between it and today counts as missed and resets the streak.
// LastConfirmed is never changed. Applying CatchUp twice for the same day
// yields the same result.
func CatchUp(r domain.Routine, today domain.Date) domain.Routine {
	next := r.Clone()
	if next.Streak < 0 {
		next.Streak = 0
	}
	if next.LastConfirmed == nil {
		next.Streak = 0
		return next
	}
	if !next.Active || next.Streak == 0 || !next.LastConfirmed.Before(today) {
		return next
	}
	if _, missed := FirstDueBetween(next.Frequency, *next.LastConfirmed, today); missed {
		next.Streak = 0
	}
	return next
}

// RunCatchUp applies CatchUp to every routine and returns new snapshots in
// the same order.
func RunCatchUp(routines []domain.Routine, today domain.Date) []domain.Routine {
	out := make([]domain.Routine, len(routines))
	for i, r := range routines {
		out[i] = CatchUp(r, today)
	}
	return out
}

// AtRisk reports whether r is due today, not yet confirmed, and still holds
// a streak after catch-up. A streak that already lapsed has nothing left to
// lose.
func AtRisk(r domain.Routine, today domain.Date) bool {
	if !r.Active || r.ConfirmedOn(today) || !IsDue(r.Frequency, today) {
		return false
	}
	return CatchUp(r, today).Streak > 0
}
