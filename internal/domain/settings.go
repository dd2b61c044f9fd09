package domain

// DefaultMaxNotificationsPerDay is the cap applied when none is configured.
const DefaultMaxNotificationsPerDay = 6

// NotificationSettings controls how reminders are planned for a day.
type NotificationSettings struct {
	Enabled                bool
	ReminderTimes          []TimeOfDay
	CustomTimesSet         bool
	EscalatingReminders    bool
	OnlyIfIncomplete       bool
	StreakProtection       bool
	MaxNotificationsPerDay int
}

// DefaultSettings returns the settings used before the user changes anything.
// ReminderTimes is left empty so the validator substitutes its defaults.
func DefaultSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:                true,
		OnlyIfIncomplete:       true,
		StreakProtection:       true,
		MaxNotificationsPerDay: DefaultMaxNotificationsPerDay,
	}
}

// Clone returns a copy that does not share the ReminderTimes backing array.
func (s NotificationSettings) Clone() NotificationSettings {
	c := s
	c.ReminderTimes = append([]TimeOfDay(nil), s.ReminderTimes...)
	return c
}
