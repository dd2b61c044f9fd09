// Package config reads runtime settings from the environment. A .env file in
// the working directory is loaded first when present; variables already set
// in the environment win.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	DefaultResyncSpec = "*/15 * * * *"
	// CatchUpSpec runs the nightly catch-up shortly after the date changes.
	CatchUpSpec = "1 0 * * *"
)

type Config struct {
	DBPath      string
	LogLevel    slog.Level
	LogUseCases bool
	Notify      bool
	ResyncSpec  string
	Location    *time.Location
}

// Default returns the configuration used when nothing is set. DBPath stays
// empty when the home directory cannot be determined.
func Default() Config {
	cfg := Config{
		LogLevel:   slog.LevelInfo,
		Notify:     true,
		ResyncSpec: DefaultResyncSpec,
		Location:   time.Local,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DBPath = filepath.Join(home, ".habits", "habits.db")
	}
	return cfg
}

// Load reads HABITS_* variables on top of Default. Unparseable values are
// ignored.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("HABITS_DB"); v != "" {
		cfg.DBPath = v
	}
	if cfg.DBPath == "" {
		return cfg, fmt.Errorf("HABITS_DB is not set and no home directory was found")
	}
	if v := getenv("HABITS_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := getenv("HABITS_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := getenv("HABITS_NOTIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Notify = b
		}
	}
	if v := getenv("HABITS_RESYNC_CRON"); v != "" {
		if _, err := cron.ParseStandard(v); err == nil {
			cfg.ResyncSpec = v
		}
	}
	if v := getenv("HABITS_TZ"); v != "" {
		if loc, err := time.LoadLocation(v); err == nil {
			cfg.Location = loc
		}
	}
	return cfg, nil
}

// Now returns the current time in the configured location.
func (c Config) Now() time.Time {
	return time.Now().In(c.Location)
}
