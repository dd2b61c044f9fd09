package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/habits/internal/domain"
)

// FormatSettings renders the notification settings as a labelled list.
func FormatSettings(s *domain.NotificationSettings) string {
	times := make([]string, len(s.ReminderTimes))
	for i, t := range s.ReminderTimes {
		times[i] = t.String()
	}
	source := "default"
	if s.CustomTimesSet {
		source = "custom"
	}

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-18s", label)), value))
	}
	line("notifications", onOff(s.Enabled))
	line("reminder times", StyleFg.Render(strings.Join(times, ", "))+Dim(" ("+source+")"))
	line("escalating", onOff(s.EscalatingReminders))
	line("only if incomplete", onOff(s.OnlyIfIncomplete))
	line("streak protection", onOff(s.StreakProtection))
	line("max per day", StyleFg.Render(fmt.Sprintf("%d", s.MaxNotificationsPerDay)))
	return RenderBox("Notification settings", strings.TrimRight(b.String(), "\n"))
}

func onOff(b bool) string {
	if b {
		return StyleGreen.Render("on")
	}
	return Dim("off")
}
