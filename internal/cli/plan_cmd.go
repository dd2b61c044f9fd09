package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/habits/internal/cli/formatter"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var date domain.Date

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the reminders planned for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date.IsZero() {
				date = app.today()
			}
			plan, err := app.Reminders.BuildNotificationPlan(cmd.Context(), date)
			if err != nil {
				return describeError(err)
			}
			names, err := routineNames(cmd, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(date, plan, names))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&date), "date", "Plan date (YYYY-MM-DD, default today)")

	return cmd
}

func routineNames(cmd *cobra.Command, app *App) (map[string]string, error) {
	routines, err := app.Routines.List(cmd.Context(), true)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(routines))
	for _, r := range routines {
		names[r.ID] = r.Name
	}
	return names, nil
}

func newRemindCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Deliver today's reminders",
	}

	cmd.AddCommand(
		newRemindPreviewCmd(app),
		newRemindDaemonCmd(app),
	)

	return cmd
}

// newRemindPreviewCmd runs the same sync the daemon runs and reports what it
// would deliver. Reminders only fire while `remind daemon` keeps the engine
// running, so nothing outlives this command.
func newRemindPreviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "preview",
		Aliases: []string{"dry-run"},
		Short:   "Show which of today's reminders the daemon would still deliver",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Reminders.Sync(cmd.Context(), app.now())
			if err != nil && !errors.Is(err, domain.ErrPermissionDenied) {
				return describeError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatPreviewSummary(len(res.Plan), len(res.Scheduled), res.Granted))
			for _, n := range res.Scheduled {
				fmt.Fprintln(out, "  "+formatter.FormatAlert(n))
			}
			if res.Granted && len(res.Scheduled) > 0 {
				fmt.Fprintln(out, formatter.Dim("Nothing was delivered. Run `habits remind daemon` to receive these."))
			}
			return nil
		},
	}
}
