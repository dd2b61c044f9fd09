package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/streak"
	"github.com/charmbracelet/lipgloss"
)

// RoutineInspectData holds everything the inspect card shows.
type RoutineInspectData struct {
	Routine  *domain.Routine
	Today    domain.Date
	Upcoming []domain.Date
	History  []*domain.CheckIn
}

// FormatRoutineList renders the routine table for today.
func FormatRoutineList(routines []*domain.Routine, today domain.Date) string {
	headers := []string{"ID", "HABIT", "SCHEDULE", "STREAK", "BEST", "TODAY", "LAST"}
	rows := make([][]string, 0, len(routines))

	for _, r := range routines {
		rows = append(rows, []string{
			TruncID(r.ID),
			RoutineColor(r.Color, routineLabel(r)),
			StyleFg.Render(r.Frequency.Describe()),
			StreakBadge(r.Streak),
			Dim(fmt.Sprintf("%d", r.BestStreak)),
			TodayState(r, today),
			LastConfirmed(r, today),
		})
	}

	return RenderBox("Habits", RenderTable(headers, rows))
}

// TodayState summarizes what today means for r.
func TodayState(r *domain.Routine, today domain.Date) string {
	switch {
	case !r.Active:
		return StyleYellow.Render("○ paused")
	case r.ConfirmedOn(today):
		return StyleGreen.Render("✔ done")
	case streak.AtRisk(*r, today):
		return StyleRed.Render("▲ at risk")
	case streak.IsDue(r.Frequency, today):
		return StyleBlue.Render("● due")
	default:
		return Dim("· rest")
	}
}

// FormatRoutineInspect renders a two-column card with routine metadata on
// the left and upcoming due days plus recent check-ins on the right.
func FormatRoutineInspect(data RoutineInspectData) string {
	left := routineMetadata(data.Routine, data.Today)
	right := routineActivity(data)
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func routineMetadata(r *domain.Routine, today domain.Date) string {
	var b strings.Builder
	b.WriteString(RoutineColor(r.Color, routineLabel(r)) + "\n")
	b.WriteString(Dim(r.Frequency.Describe()) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}
	field("STATUS", StatusPill(r.Active))
	field("ID", TruncID(r.ID))
	field("STREAK", StreakBadge(r.Streak))
	field("BEST", StyleFg.Render(fmt.Sprintf("%d", r.BestStreak)))
	field("TODAY", TodayState(r, today))
	field("LAST", LastConfirmed(r, today))
	field("SINCE", StyleFg.Render(r.CreatedOn.String()))
	return b.String()
}

func routineActivity(data RoutineInspectData) string {
	var b strings.Builder
	b.WriteString(Header("Next due") + "\n")
	if len(data.Upcoming) == 0 {
		b.WriteString(Dim("  nothing scheduled") + "\n")
	}
	for _, d := range data.Upcoming {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleFg.Render(d.Weekday().String()[:3]+" "+d.String()), Dim(RelativeDay(d, data.Today))))
	}

	b.WriteString("\n" + Header("Recent") + "\n")
	if len(data.History) == 0 {
		b.WriteString(Dim("  no check-ins yet") + "\n")
	}
	for _, c := range data.History {
		b.WriteString("  " + checkInLine(c, data.Today) + "\n")
	}
	return b.String()
}

// FormatHistory renders the check-in log of one routine.
func FormatHistory(r *domain.Routine, history []*domain.CheckIn, today domain.Date) string {
	headers := []string{"DATE", "WHEN", "RESULT", "STREAK"}
	rows := make([][]string, 0, len(history))
	for _, c := range history {
		rows = append(rows, []string{
			StyleFg.Render(c.Date.String()),
			Dim(RelativeDay(c.Date, today)),
			checkInResult(c),
			StreakBadge(c.StreakAfter),
		})
	}
	return RenderBox(routineLabel(r)+" history", RenderTable(headers, rows))
}

func checkInLine(c *domain.CheckIn, today domain.Date) string {
	return fmt.Sprintf("%s %s %s", checkInResult(c), StyleFg.Render(c.Date.String()), Dim(RelativeDay(c.Date, today)))
}

func checkInResult(c *domain.CheckIn) string {
	if c.Completed {
		return StyleGreen.Render("✔ done")
	}
	return StyleYellow.Render("⊘ skipped")
}

func routineLabel(r *domain.Routine) string {
	if r.Icon == "" {
		return r.Name
	}
	return r.Icon + " " + r.Name
}
