package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/habits/internal/domain"
)

// FormatPlan renders the notifications planned for one day. names maps
// routine ids to display names for the payload column.
func FormatPlan(date domain.Date, plan []domain.ScheduledNotification, names map[string]string) string {
	title := "Reminders " + date.String()
	if len(plan) == 0 {
		return RenderBox(title, Dim("Nothing to remind you about."))
	}

	headers := []string{"TIME", "KIND", "MESSAGE", "HABITS"}
	rows := make([][]string, 0, len(plan))
	for _, n := range plan {
		rows = append(rows, []string{
			Bold(n.Time.String()),
			KindBadge(n.Payload.Kind),
			StyleFg.Render(n.Body),
			Dim(joinNames(n.Payload.IncompleteRoutineIDs, names)),
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// KindBadge labels a notification kind.
func KindBadge(kind domain.NotificationKind) string {
	if kind == domain.NotificationStreakAtRisk {
		return StyleRed.Render("▲ streak")
	}
	return StyleBlue.Render("● reminder")
}

// FormatPreviewSummary reports how many of the planned reminders are still
// ahead today and would be handed to a running notifier.
func FormatPreviewSummary(planned, pending int, granted bool) string {
	if !granted {
		return StyleYellow.Render("Notifications are turned off") +
			Dim(fmt.Sprintf(" (%s planned, none would be delivered)", Pluralize(planned, "reminder")))
	}
	return StyleGreen.Render(fmt.Sprintf("%s still ahead today", Pluralize(pending, "reminder"))) +
		Dim(fmt.Sprintf(" of %d planned", planned))
}

// FormatAlert renders a notification as it fires.
func FormatAlert(n domain.ScheduledNotification) string {
	style := StyleBlue
	if n.Payload.Kind == domain.NotificationStreakAtRisk {
		style = StyleRed
	}
	return fmt.Sprintf("%s %s %s", Dim(n.Time.String()), style.Render(n.Title), StyleFg.Render(n.Body))
}

func joinNames(ids []string, names map[string]string) string {
	if len(ids) == 0 {
		return "--"
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
			continue
		}
		out = append(out, id)
	}
	return strings.Join(out, ", ")
}
