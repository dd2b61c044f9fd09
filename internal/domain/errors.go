package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConfirmed is returned when a routine is confirmed twice on the
	// same day. No state is mutated.
	ErrAlreadyConfirmed = errors.New("routine already confirmed today")

	// ErrConfirmBeforeLast is returned when a confirmation date precedes the
	// routine's last confirmed date.
	ErrConfirmBeforeLast = errors.New("confirmation date is before the last confirmed date")

	// ErrRoutineInactive is returned when confirming a paused routine.
	ErrRoutineInactive = errors.New("routine is paused")

	// ErrInvalidFrequency marks a frequency configuration that can never be
	// due (empty weekday or day-of-month set, non-positive interval).
	ErrInvalidFrequency = errors.New("invalid frequency configuration")

	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// ErrPermissionDenied is surfaced by the delivery side when the user has
	// not granted notification permission.
	ErrPermissionDenied = errors.New("notification permission denied")
)

// StorageError wraps a failure of the persistence store. The failed
// operation left previously persisted state intact.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err as a StorageError for op. A nil err returns nil,
// and an err that already is a StorageError is returned unchanged.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
