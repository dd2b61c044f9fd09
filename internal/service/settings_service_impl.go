package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/reminder"
	"github.com/alexanderramin/habits/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*domain.NotificationSettings, error) {
	raw, err := loadSettings(ctx, s.settings)
	if err != nil {
		return nil, err
	}
	normalized := reminder.Normalize(*raw)
	return &normalized, nil
}

// Update stores what the user chose and returns the normalized form.
// Reminder times only count as user data when CustomTimesSet is true; the
// built-in defaults are never written back.
func (s *settingsService) Update(ctx context.Context, in *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	raw := in.Clone()
	if raw.CustomTimesSet {
		raw.ReminderTimes = reminder.DedupeTimes(raw.ReminderTimes)
	} else {
		raw.ReminderTimes = nil
	}
	if err := s.settings.Upsert(ctx, &raw); err != nil {
		return nil, storageError("save settings", err)
	}
	normalized := reminder.Normalize(raw)
	return &normalized, nil
}

// loadSettings returns the stored record, or the defaults when none exists.
func loadSettings(ctx context.Context, repo repository.SettingsRepo) (*domain.NotificationSettings, error) {
	raw, err := repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		def := domain.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, storageError("load settings", err)
	}
	return raw, nil
}
