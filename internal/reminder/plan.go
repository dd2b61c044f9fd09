package reminder

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/streak"
)

// BuildPlan turns settings and the current routine state into the ordered
// list of reminders for today. It is deterministic and never fails; the
// result never holds more than the normalized MaxNotificationsPerDay entries.
func BuildPlan(settings domain.NotificationSettings, routines []domain.Routine, today domain.Date) []domain.ScheduledNotification {
	s := Normalize(settings)
	if !s.Enabled {
		return nil
	}

	var incomplete, atRisk []domain.Routine
	for _, r := range routines {
		if !r.Active || !streak.IsDue(r.Frequency, today) {
			continue
		}
		if r.ConfirmedOn(today) {
			continue
		}
		incomplete = append(incomplete, r)
		if streak.AtRisk(r, today) {
			atRisk = append(atRisk, r)
		}
	}

	if s.OnlyIfIncomplete && len(incomplete) == 0 {
		return nil
	}

	instants := s.ReminderTimes
	if s.EscalatingReminders {
		instants = Escalate(instants, s.MaxNotificationsPerDay)
	}
	instants = DedupeTimes(instants)
	if len(instants) > s.MaxNotificationsPerDay {
		instants = instants[:s.MaxNotificationsPerDay]
	}

	incompleteIDs := routineIDs(incomplete)
	plan := make([]domain.ScheduledNotification, 0, len(instants))
	for _, at := range instants {
		plan = append(plan, reminderNotification(at, today, incomplete, incompleteIDs))
	}

	if s.StreakProtection && len(atRisk) > 0 && len(plan) > 0 {
		last := &plan[len(plan)-1]
		last.Payload.Kind = domain.NotificationStreakAtRisk
		last.Payload.AtRiskRoutineIDs = routineIDs(atRisk)
		last.Title, last.Body = atRiskCopy(atRisk)
	}
	return plan
}

// PendingAfter returns the notifications of plan scheduled strictly after
// the given time of day.
func PendingAfter(plan []domain.ScheduledNotification, after domain.TimeOfDay) []domain.ScheduledNotification {
	i := sort.Search(len(plan), func(i int) bool { return plan[i].Time > after })
	return plan[i:]
}

func reminderNotification(at domain.TimeOfDay, today domain.Date, incomplete []domain.Routine, ids []string) domain.ScheduledNotification {
	title, body := reminderCopy(incomplete)
	return domain.ScheduledNotification{
		Time:  at,
		Title: title,
		Body:  body,
		Payload: domain.NotificationPayload{
			Kind:                 domain.NotificationReminder,
			Date:                 today,
			IncompleteRoutineIDs: append([]string(nil), ids...),
		},
	}
}

func reminderCopy(incomplete []domain.Routine) (string, string) {
	const title = "Habit check-in"
	switch len(incomplete) {
	case 0:
		return title, "Everything is done for today."
	case 1:
		return title, fmt.Sprintf("%s is still open today.", incomplete[0].Name)
	default:
		return title, fmt.Sprintf("%d habits are still open today.", len(incomplete))
	}
}

func atRiskCopy(atRisk []domain.Routine) (string, string) {
	const title = "Streak at risk"
	if len(atRisk) == 1 {
		r := atRisk[0]
		return title, fmt.Sprintf("Your %d-day %s streak resets at midnight.", r.Streak, r.Name)
	}
	return title, fmt.Sprintf("%d streaks reset at midnight unless you check in.", len(atRisk))
}

func routineIDs(routines []domain.Routine) []string {
	ids := make([]string, len(routines))
	for i, r := range routines {
		ids[i] = r.ID
	}
	return ids
}
