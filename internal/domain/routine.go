package domain

import "time"

// Routine is a recurring habit together with its streak state. The streak
// engine receives Routine values and returns mutated copies.
type Routine struct {
	ID         string
	Name       string
	Color      string
	Icon       string
	Frequency  Frequency
	OrderIndex int
	Active     bool

	Streak        int
	BestStreak    int
	LastConfirmed *Date

	CreatedOn Date
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConfirmedOn reports whether the routine's last confirmation is d.
func (r *Routine) ConfirmedOn(d Date) bool {
	return SameDate(r.LastConfirmed, d)
}

// Clone returns a deep copy so callers can mutate snapshots independently.
func (r Routine) Clone() Routine {
	c := r
	if r.LastConfirmed != nil {
		lc := *r.LastConfirmed
		c.LastConfirmed = &lc
	}
	if r.Frequency.Weekdays != nil {
		c.Frequency.Weekdays = append([]time.Weekday(nil), r.Frequency.Weekdays...)
	}
	if r.Frequency.DaysOfMonth != nil {
		c.Frequency.DaysOfMonth = append([]int(nil), r.Frequency.DaysOfMonth...)
	}
	return c
}

// CheckIn records a single confirm or skip of a routine on a date.
type CheckIn struct {
	ID          string
	RoutineID   string
	Date        Date
	Completed   bool
	StreakAfter int
	CreatedAt   time.Time
}
