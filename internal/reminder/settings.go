package reminder

import (
	"sort"

	"github.com/alexanderramin/habits/internal/domain"
)

const (
	MinNotificationsPerDay = 1
	MaxNotificationsPerDay = 8
	MaxReminderTimes       = 8
)

// DefaultReminderTimes is substituted when no reminder time is configured.
var DefaultReminderTimes = []domain.TimeOfDay{
	domain.MustTimeOfDay("09:00"),
	domain.MustTimeOfDay("13:00"),
	domain.MustTimeOfDay("19:00"),
}

// Normalize repairs raw settings into a consistent configuration. It never
// fails and is idempotent. It is the single place where conflicting flags
// are reconciled: an explicit multi-time configuration always disables
// escalation.
func Normalize(raw domain.NotificationSettings) domain.NotificationSettings {
	s := raw.Clone()

	s.ReminderTimes = DedupeTimes(s.ReminderTimes)
	if len(s.ReminderTimes) > MaxReminderTimes {
		s.ReminderTimes = s.ReminderTimes[:MaxReminderTimes]
	}
	if len(s.ReminderTimes) == 0 {
		s.ReminderTimes = append([]domain.TimeOfDay(nil), DefaultReminderTimes...)
	}

	s.MaxNotificationsPerDay = clamp(s.MaxNotificationsPerDay, MinNotificationsPerDay, MaxNotificationsPerDay)

	if s.CustomTimesSet && len(s.ReminderTimes) > 1 {
		s.EscalatingReminders = false
	}
	return s
}

// DedupeTimes drops invalid and duplicate times and sorts the rest. The
// result never aliases the input.
func DedupeTimes(times []domain.TimeOfDay) []domain.TimeOfDay {
	seen := make(map[domain.TimeOfDay]bool, len(times))
	out := make([]domain.TimeOfDay, 0, len(times))
	for _, t := range times {
		if !t.Valid() || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
