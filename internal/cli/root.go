package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// App holds the services and runtime settings used by CLI commands.
type App struct {
	Routines  service.RoutineService
	CheckIns  service.CheckInService
	Reminders service.ReminderService
	Settings  service.SettingsService

	// Engine runs reminder jobs for `remind daemon`. The daemon adds its own
	// re-sync and catch-up jobs to it.
	Engine     *cron.Cron
	ResyncSpec string
	Logger     *slog.Logger

	Location      *time.Location
	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

func (a *App) today() domain.Date {
	return domain.DateOf(a.now())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "habits" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "habits",
		Short:         "Track daily habits, keep streaks, and plan reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newHabitCmd(app),
		newCheckCmd(app),
		newCatchUpCmd(app),
		newPlanCmd(app),
		newSettingsCmd(app),
		newRemindCmd(app),
	)

	return root
}
