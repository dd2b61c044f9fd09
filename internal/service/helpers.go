package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/repository"
)

// passthroughErrors are returned to callers unchanged; anything else that
// fails inside a unit of work is reported as a storage failure.
var passthroughErrors = []error{
	repository.ErrNotFound,
	repository.ErrDuplicate,
	domain.ErrAlreadyConfirmed,
	domain.ErrConfirmBeforeLast,
	domain.ErrRoutineInactive,
	domain.ErrInvalidFrequency,
	context.Canceled,
	context.DeadlineExceeded,
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range passthroughErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return domain.NewStorageError(op, err)
}

func dereference(routines []*domain.Routine) []domain.Routine {
	out := make([]domain.Routine, len(routines))
	for i, r := range routines {
		out[i] = *r
	}
	return out
}

// warnInvalidFrequencies logs stored routines whose frequency can never be
// due. They stay in place and are treated as never due.
func warnInvalidFrequencies(ctx context.Context, routines []domain.Routine) int {
	n := 0
	for _, r := range routines {
		if err := r.Frequency.Validate(); err != nil {
			n++
			slog.WarnContext(ctx, "data_repair",
				"routine_id", r.ID,
				"routine", r.Name,
				"frequency_kind", string(r.Frequency.Kind),
				"error", err.Error(),
			)
		}
	}
	return n
}
