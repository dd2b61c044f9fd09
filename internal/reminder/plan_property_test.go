package reminder

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/stretchr/testify/assert"
)

func randomSettings(rng *rand.Rand) domain.NotificationSettings {
	n := rng.Intn(10)
	ts := make([]domain.TimeOfDay, n)
	for i := range ts {
		ts[i] = domain.TimeOfDay(rng.Intn(domain.MinutesPerDay/15) * 15)
	}
	return domain.NotificationSettings{
		Enabled:                rng.Intn(5) != 0,
		ReminderTimes:          ts,
		CustomTimesSet:         rng.Intn(2) == 0,
		EscalatingReminders:    rng.Intn(2) == 0,
		OnlyIfIncomplete:       rng.Intn(2) == 0,
		StreakProtection:       rng.Intn(2) == 0,
		MaxNotificationsPerDay: rng.Intn(14) - 2,
	}
}

func randomRoutines(rng *rand.Rand) []domain.Routine {
	n := rng.Intn(5)
	out := make([]domain.Routine, n)
	for i := range out {
		var f domain.Frequency
		switch rng.Intn(3) {
		case 0:
			f = domain.Daily()
		case 1:
			f = domain.Weekly(time.Weekday(rng.Intn(7)))
		default:
			f = domain.EveryNDays(rng.Intn(3)+1, today.AddDays(-rng.Intn(10)))
		}
		var last *domain.Date
		if rng.Intn(3) > 0 {
			last = ptr(today.AddDays(-rng.Intn(3)))
		}
		out[i] = testRoutine(string(rune('a'+i)), f, rng.Intn(5), last)
		out[i].Active = rng.Intn(6) != 0
	}
	return out
}

// TestBuildPlan_Invariants property-tests the cap, ordering and escalation
// exclusivity guarantees across random settings and routine sets.
func TestBuildPlan_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		raw := randomSettings(rng)
		routines := randomRoutines(rng)
		normalized := Normalize(raw)

		plan := BuildPlan(raw, routines, today)

		// Cap invariant.
		assert.LessOrEqual(t, len(plan), normalized.MaxNotificationsPerDay, "trial %d", trial)

		// Strictly increasing instants.
		for i := 1; i < len(plan); i++ {
			assert.Greater(t, plan[i].Time, plan[i-1].Time, "trial %d", trial)
		}

		// Escalation exclusivity.
		if raw.CustomTimesSet && len(normalized.ReminderTimes) > 1 && len(plan) > 0 {
			want := len(normalized.ReminderTimes)
			if want > normalized.MaxNotificationsPerDay {
				want = normalized.MaxNotificationsPerDay
			}
			assert.Equal(t, want, len(plan), "trial %d: escalation must not fire", trial)
		}

		// At most one at-risk notification, always the last one.
		for i, n := range plan {
			if n.Payload.Kind == domain.NotificationStreakAtRisk {
				assert.Equal(t, len(plan)-1, i, "trial %d", trial)
			}
		}

		// Determinism.
		assert.Equal(t, plan, BuildPlan(raw, routines, today), "trial %d", trial)
	}
}
