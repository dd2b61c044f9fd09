package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// RelativeDay describes d relative to today ("Today", "Yesterday", "3d ago",
// "In 2d"), falling back to the date itself beyond two weeks.
func RelativeDay(d, today domain.Date) string {
	days := today.DaysUntil(d)
	switch {
	case days == 0:
		return "Today"
	case days == -1:
		return "Yesterday"
	case days == 1:
		return "Tomorrow"
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	default:
		return d.String()
	}
}

// LastConfirmed renders a routine's last confirmation, or a dim dash when it
// was never confirmed.
func LastConfirmed(r *domain.Routine, today domain.Date) string {
	if r.LastConfirmed == nil {
		return Dim("never")
	}
	text := RelativeDay(*r.LastConfirmed, today)
	if r.LastConfirmed.Equal(today) {
		return StyleGreen.Render(text)
	}
	return StyleFg.Render(text)
}

// StatusPill returns the active/paused indicator of a routine.
func StatusPill(active bool) string {
	if active {
		return StyleGreen.Render("● Active")
	}
	return StyleYellow.Render("○ Paused")
}

// StreakBadge renders a streak count colored by its length.
func StreakBadge(streak int) string {
	return StreakStyle(streak).Render(fmt.Sprintf("%d", streak))
}

// Pluralize returns "1 habit" / "3 habits".
func Pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
