package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/habits/internal/db"
	"github.com/alexanderramin/habits/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database. The
// record is stored raw; normalization is the caller's concern.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.NotificationSettings, error) {
	query := `SELECT enabled, reminder_times, custom_times_set, escalating_reminders,
		only_if_incomplete, streak_protection, max_notifications_per_day
		FROM notification_settings WHERE id = 'default'`

	var s domain.NotificationSettings
	var enabled, custom, escalating, onlyIncomplete, protection int
	var times string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&enabled, &times, &custom, &escalating, &onlyIncomplete, &protection, &s.MaxNotificationsPerDay,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notification settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning notification settings: %w", err)
	}

	s.Enabled = intToBool(enabled)
	s.CustomTimesSet = intToBool(custom)
	s.EscalatingReminders = intToBool(escalating)
	s.OnlyIfIncomplete = intToBool(onlyIncomplete)
	s.StreakProtection = intToBool(protection)
	if s.ReminderTimes, err = domain.ParseTimesOfDay(times); err != nil {
		return nil, fmt.Errorf("parsing reminder_times: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.NotificationSettings) error {
	query := `INSERT OR REPLACE INTO notification_settings (id, enabled, reminder_times, custom_times_set,
		escalating_reminders, only_if_incomplete, streak_protection, max_notifications_per_day)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		boolToInt(s.Enabled),
		domain.JoinTimesOfDay(s.ReminderTimes),
		boolToInt(s.CustomTimesSet),
		boolToInt(s.EscalatingReminders),
		boolToInt(s.OnlyIfIncomplete),
		boolToInt(s.StreakProtection),
		s.MaxNotificationsPerDay,
	)
	if err != nil {
		return fmt.Errorf("upserting notification settings: %w", err)
	}
	return nil
}
