package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent and run
// on every open; ALTER TABLE additions that already exist are skipped.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillBestStreak(db); err != nil {
		return fmt.Errorf("backfilling best_streak: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS routines (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		color            TEXT NOT NULL DEFAULT '',
		icon             TEXT NOT NULL DEFAULT '',
		frequency_kind   TEXT NOT NULL
		                 CHECK(frequency_kind IN ('daily','interval','weekly','monthly')),
		frequency_params TEXT NOT NULL DEFAULT '{}',
		order_index      INTEGER NOT NULL DEFAULT 0,
		active           INTEGER NOT NULL DEFAULT 1,
		streak           INTEGER NOT NULL DEFAULT 0 CHECK(streak >= 0),
		last_confirmed   TEXT,
		created_on       TEXT NOT NULL,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_routines_order ON routines(order_index)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_routines_name ON routines(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS check_ins (
		id           TEXT PRIMARY KEY,
		routine_id   TEXT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
		date         TEXT NOT NULL,
		completed    INTEGER NOT NULL,
		streak_after INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		UNIQUE(routine_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_check_ins_date ON check_ins(date)`,

	`CREATE TABLE IF NOT EXISTS notification_settings (
		id                        TEXT PRIMARY KEY DEFAULT 'default',
		enabled                   INTEGER NOT NULL DEFAULT 1,
		reminder_times            TEXT NOT NULL DEFAULT '',
		custom_times_set          INTEGER NOT NULL DEFAULT 0,
		escalating_reminders      INTEGER NOT NULL DEFAULT 0,
		only_if_incomplete        INTEGER NOT NULL DEFAULT 1,
		streak_protection         INTEGER NOT NULL DEFAULT 1,
		max_notifications_per_day INTEGER NOT NULL DEFAULT 6
	)`,

	`INSERT OR IGNORE INTO notification_settings (id) VALUES ('default')`,

	// best_streak arrived after the first release.
	`ALTER TABLE routines ADD COLUMN best_streak INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillBestStreak raises best_streak to the current streak for
// rows created before the column existed.
func migrateBackfillBestStreak(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`UPDATE routines SET best_streak = streak WHERE best_streak < streak`)
	return err
}
