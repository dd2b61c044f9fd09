package reminder

import "github.com/alexanderramin/habits/internal/domain"

// EscalationInterval is the spacing between synthesized reminders.
const EscalationInterval domain.TimeOfDay = 3 * 60

// EscalationCutoff is the latest time of day an escalated reminder may fire.
var EscalationCutoff = domain.MustTimeOfDay("22:00")

// Escalate appends reminder instants after the latest base instant, spaced
// EscalationInterval apart, until the cutoff is passed or the total reaches
// limit. Base instants are returned unchanged and in their original order.
func Escalate(base []domain.TimeOfDay, limit int) []domain.TimeOfDay {
	out := append([]domain.TimeOfDay(nil), base...)
	if len(base) == 0 {
		return out
	}

	latest := base[0]
	for _, t := range base[1:] {
		if t > latest {
			latest = t
		}
	}

	for next := latest + EscalationInterval; next <= EscalationCutoff && len(out) < limit; next += EscalationInterval {
		out = append(out, next)
	}
	return out
}
