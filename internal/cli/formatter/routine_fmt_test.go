package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/stretchr/testify/assert"
)

var monday = domain.NewDate(2025, 1, 6)

func datePtr(d domain.Date) *domain.Date { return &d }

func TestFormatRoutineList_ShowsStateForToday(t *testing.T) {
	routines := []*domain.Routine{
		{ID: "aaaaaaaa-1111", Name: "Read", Icon: "📖", Frequency: domain.Daily(), Active: true,
			Streak: 3, BestStreak: 5, LastConfirmed: datePtr(monday)},
		{ID: "bbbbbbbb-2222", Name: "Gym", Frequency: domain.Weekly(time.Monday, time.Friday), Active: true,
			Streak: 2, LastConfirmed: datePtr(monday.AddDays(-3))},
		{ID: "cccccccc-3333", Name: "Piano", Frequency: domain.Weekly(time.Sunday), Active: true},
		{ID: "dddddddd-4444", Name: "Swim", Frequency: domain.Daily(), Active: false},
	}

	out := FormatRoutineList(routines, monday)

	assert.Contains(t, out, "HABITS")
	assert.Contains(t, out, "📖 Read")
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "✔ done")
	assert.Contains(t, out, "▲ at risk")
	assert.Contains(t, out, "· rest")
	assert.Contains(t, out, "○ paused")
	assert.Contains(t, out, "Mon, Fri")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "3d ago")
}

func TestFormatRoutineInspect(t *testing.T) {
	r := &domain.Routine{ID: "abc", Name: "Stretch", Frequency: domain.Daily(), Active: true,
		Streak: 8, BestStreak: 8, CreatedOn: monday.AddDays(-10)}

	out := FormatRoutineInspect(RoutineInspectData{
		Routine:  r,
		Today:    monday,
		Upcoming: []domain.Date{monday, monday.AddDays(1)},
		History: []*domain.CheckIn{
			{RoutineID: "abc", Date: monday.AddDays(-1), Completed: true, StreakAfter: 8},
		},
	})

	assert.Contains(t, out, "Stretch")
	assert.Contains(t, out, "NEXT DUE")
	assert.Contains(t, out, "Tue 2025-01-07")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "2024-12-27")
}

func TestFormatRoutineInspect_Empty(t *testing.T) {
	r := &domain.Routine{ID: "abc", Name: "Stretch", Frequency: domain.Monthly(31), Active: true}

	out := FormatRoutineInspect(RoutineInspectData{Routine: r, Today: monday})
	assert.Contains(t, out, "nothing scheduled")
	assert.Contains(t, out, "no check-ins yet")
}

func TestFormatHistory(t *testing.T) {
	r := &domain.Routine{Name: "Read"}
	out := FormatHistory(r, []*domain.CheckIn{
		{Date: monday, Completed: false},
		{Date: monday.AddDays(-1), Completed: true, StreakAfter: 4},
	}, monday)

	assert.Contains(t, out, "READ HISTORY")
	assert.Contains(t, out, "⊘ skipped")
	assert.Contains(t, out, "✔ done")
	assert.Contains(t, out, "2025-01-05")
}

func TestRelativeDay(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "Today"},
		{-1, "Yesterday"},
		{1, "Tomorrow"},
		{-5, "5d ago"},
		{3, "In 3d"},
		{-30, "2024-12-07"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeDay(monday.AddDays(tt.offset), monday))
	}
}
