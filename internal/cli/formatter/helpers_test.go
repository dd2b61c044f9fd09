package formatter

import (
	"testing"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTruncID(t *testing.T) {
	assert.Contains(t, TruncID("0f3a9c21-77aa-4bd0-9e1f-1c2d3e4f5a6b"), "0f3a9c21")
	assert.NotContains(t, TruncID("0f3a9c21-77aa-4bd0-9e1f-1c2d3e4f5a6b"), "-77aa")
	assert.Contains(t, TruncID("abc"), "abc")
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 habit", Pluralize(1, "habit"))
	assert.Equal(t, "0 habits", Pluralize(0, "habit"))
	assert.Equal(t, "4 reminders", Pluralize(4, "reminder"))
}

func TestLastConfirmed(t *testing.T) {
	r := &domain.Routine{}
	assert.Contains(t, LastConfirmed(r, monday), "never")

	yesterday := monday.AddDays(-1)
	r.LastConfirmed = &yesterday
	assert.Contains(t, LastConfirmed(r, monday), "Yesterday")
}

func TestRoutineColor_FallsBackOnInvalidHex(t *testing.T) {
	assert.Contains(t, RoutineColor("#8ec07c", "Read"), "Read")
	assert.Contains(t, RoutineColor("green", "Read"), "Read")
	assert.Contains(t, RoutineColor("", "Read"), "Read")
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(true), "Active")
	assert.Contains(t, StatusPill(false), "Paused")
}
