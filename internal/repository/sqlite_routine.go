package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/habits/internal/db"
	"github.com/alexanderramin/habits/internal/domain"
)

// frequencyParams is the JSON shape of routines.frequency_params.
type frequencyParams struct {
	EveryNDays  int    `json:"every_n_days,omitempty"`
	Anchor      string `json:"anchor,omitempty"`
	Weekdays    []int  `json:"weekdays,omitempty"`
	DaysOfMonth []int  `json:"days_of_month,omitempty"`
}

const routineColumns = `id, name, color, icon, frequency_kind, frequency_params, order_index,
	active, streak, best_streak, last_confirmed, created_on, created_at, updated_at`

// SQLiteRoutineRepo implements RoutineRepo using a SQLite database.
type SQLiteRoutineRepo struct {
	db db.DBTX
}

func NewSQLiteRoutineRepo(conn db.DBTX) *SQLiteRoutineRepo {
	return &SQLiteRoutineRepo{db: conn}
}

// Create inserts r at the end of the routine list and sets r.OrderIndex.
func (r *SQLiteRoutineRepo) Create(ctx context.Context, rt *domain.Routine) error {
	params, err := encodeFrequency(rt.Frequency)
	if err != nil {
		return err
	}
	query := `INSERT INTO routines (id, name, color, icon, frequency_kind, frequency_params, order_index,
			active, streak, best_streak, last_confirmed, created_on, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(order_index), -1) + 1 FROM routines),
			?, ?, ?, ?, ?, ?, ?)
		RETURNING order_index`
	err = r.db.QueryRowContext(ctx, query,
		rt.ID,
		rt.Name,
		rt.Color,
		rt.Icon,
		string(rt.Frequency.Kind),
		params,
		boolToInt(rt.Active),
		rt.Streak,
		rt.BestStreak,
		nullableDateToValue(rt.LastConfirmed),
		rt.CreatedOn.String(),
		formatTimestamp(rt.CreatedAt),
		formatTimestamp(rt.UpdatedAt),
	).Scan(&rt.OrderIndex)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("routine %q: %w", rt.Name, ErrDuplicate)
		}
		return fmt.Errorf("inserting routine: %w", err)
	}
	return nil
}

func (r *SQLiteRoutineRepo) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE id = ?`
	rt, err := scanRoutine(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("routine %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return rt, nil
}

func (r *SQLiteRoutineRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY order_index, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing routines: %w", err)
	}
	defer rows.Close()

	var routines []*domain.Routine
	for rows.Next() {
		rt, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating routines: %w", err)
	}
	return routines, nil
}

func (r *SQLiteRoutineRepo) Update(ctx context.Context, rt *domain.Routine) error {
	params, err := encodeFrequency(rt.Frequency)
	if err != nil {
		return err
	}
	query := `UPDATE routines SET name = ?, color = ?, icon = ?, frequency_kind = ?, frequency_params = ?,
			order_index = ?, active = ?, streak = ?, best_streak = ?, last_confirmed = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rt.Name,
		rt.Color,
		rt.Icon,
		string(rt.Frequency.Kind),
		params,
		rt.OrderIndex,
		boolToInt(rt.Active),
		rt.Streak,
		rt.BestStreak,
		nullableDateToValue(rt.LastConfirmed),
		formatTimestamp(rt.UpdatedAt),
		rt.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("routine %q: %w", rt.Name, ErrDuplicate)
		}
		return fmt.Errorf("updating routine: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating routine: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("routine %s: %w", rt.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRoutineRepo) SaveAll(ctx context.Context, routines []*domain.Routine) error {
	for _, rt := range routines {
		if err := r.Update(ctx, rt); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRoutineRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting routine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("routine %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoutine(row rowScanner) (*domain.Routine, error) {
	var rt domain.Routine
	var kind, params, createdOn, createdAt, updatedAt string
	var active int
	var lastConfirmed sql.NullString

	err := row.Scan(
		&rt.ID, &rt.Name, &rt.Color, &rt.Icon, &kind, &params, &rt.OrderIndex,
		&active, &rt.Streak, &rt.BestStreak, &lastConfirmed, &createdOn, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning routine: %w", err)
	}

	rt.Active = intToBool(active)
	rt.LastConfirmed = parseNullableDate(lastConfirmed)
	if rt.Frequency, err = decodeFrequency(domain.FrequencyKind(kind), params); err != nil {
		return nil, fmt.Errorf("routine %s: %w", rt.ID, err)
	}
	if rt.CreatedOn, err = domain.ParseDate(createdOn); err != nil {
		return nil, fmt.Errorf("parsing created_on: %w", err)
	}
	if rt.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rt.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rt, nil
}

func encodeFrequency(f domain.Frequency) (string, error) {
	var p frequencyParams
	switch f.Kind {
	case domain.FrequencyInterval:
		p.EveryNDays = f.EveryNDays
		p.Anchor = f.Anchor.String()
	case domain.FrequencyWeekly:
		p.Weekdays = make([]int, len(f.Weekdays))
		for i, d := range f.Weekdays {
			p.Weekdays[i] = int(d)
		}
	case domain.FrequencyMonthly:
		p.DaysOfMonth = f.DaysOfMonth
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding frequency: %w", err)
	}
	return string(b), nil
}

// decodeFrequency rebuilds a Frequency from its stored form. Empty sets are
// preserved as-is; the evaluator treats them as never due.
func decodeFrequency(kind domain.FrequencyKind, raw string) (domain.Frequency, error) {
	var p frequencyParams
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return domain.Frequency{}, fmt.Errorf("decoding frequency params: %w", err)
		}
	}

	f := domain.Frequency{Kind: kind}
	switch kind {
	case domain.FrequencyInterval:
		f.EveryNDays = p.EveryNDays
		if p.Anchor != "" {
			anchor, err := domain.ParseDate(p.Anchor)
			if err != nil {
				return domain.Frequency{}, fmt.Errorf("decoding interval anchor: %w", err)
			}
			f.Anchor = anchor
		}
	case domain.FrequencyWeekly:
		f.Weekdays = make([]time.Weekday, len(p.Weekdays))
		for i, d := range p.Weekdays {
			f.Weekdays[i] = time.Weekday(d)
		}
	case domain.FrequencyMonthly:
		f.DaysOfMonth = append([]int{}, p.DaysOfMonth...)
	}
	return f, nil
}
