package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/habits/internal/db"
	"github.com/alexanderramin/habits/internal/domain"
)

// SQLiteCheckInRepo implements CheckInRepo using a SQLite database.
type SQLiteCheckInRepo struct {
	db db.DBTX
}

func NewSQLiteCheckInRepo(conn db.DBTX) *SQLiteCheckInRepo {
	return &SQLiteCheckInRepo{db: conn}
}

// Create records a check-in. A second check-in for the same routine and date
// fails with domain.ErrAlreadyConfirmed.
func (r *SQLiteCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	query := `INSERT INTO check_ins (id, routine_id, date, completed, streak_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.RoutineID,
		c.Date.String(),
		boolToInt(c.Completed),
		c.StreakAfter,
		formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("check-in for %s on %s: %w", c.RoutineID, c.Date, domain.ErrAlreadyConfirmed)
		}
		return fmt.Errorf("inserting check-in: %w", err)
	}
	return nil
}

// ListByRoutine returns the most recent check-ins first. A non-positive
// limit returns all of them.
func (r *SQLiteCheckInRepo) ListByRoutine(ctx context.Context, routineID string, limit int) ([]*domain.CheckIn, error) {
	query := `SELECT id, routine_id, date, completed, streak_after, created_at
		FROM check_ins WHERE routine_id = ? ORDER BY date DESC`
	args := []any{routineID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing check-ins by routine: %w", err)
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

func (r *SQLiteCheckInRepo) ListByDate(ctx context.Context, date domain.Date) ([]*domain.CheckIn, error) {
	query := `SELECT id, routine_id, date, completed, streak_after, created_at
		FROM check_ins WHERE date = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, date.String())
	if err != nil {
		return nil, fmt.Errorf("listing check-ins by date: %w", err)
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

func scanCheckIns(rows *sql.Rows) ([]*domain.CheckIn, error) {
	var out []*domain.CheckIn
	for rows.Next() {
		var c domain.CheckIn
		var date, createdAt string
		var completed int
		if err := rows.Scan(&c.ID, &c.RoutineID, &date, &completed, &c.StreakAfter, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning check-in row: %w", err)
		}
		var err error
		if c.Date, err = domain.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parsing check-in date: %w", err)
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing check-in created_at: %w", err)
		}
		c.Completed = intToBool(completed)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating check-ins: %w", err)
	}
	return out, nil
}
