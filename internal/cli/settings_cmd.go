package cli

import (
	"fmt"

	"github.com/alexanderramin/habits/internal/cli/formatter"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change notification settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show notification settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var times []domain.TimeOfDay
	var enabled, escalating, onlyIncomplete, protection, resetTimes bool
	var maxPerDay int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change notification settings",
		Long: `Change notification settings. Only the flags you pass are changed.

Several custom reminder times turn escalation off; escalation only applies to
a single reminder time or the defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("times") {
				s.ReminderTimes = times
				s.CustomTimesSet = len(times) > 0
			}
			if resetTimes {
				s.ReminderTimes = nil
				s.CustomTimesSet = false
			}
			if flags.Changed("enabled") {
				s.Enabled = enabled
			}
			if flags.Changed("escalating") {
				s.EscalatingReminders = escalating
			}
			if flags.Changed("only-incomplete") {
				s.OnlyIfIncomplete = onlyIncomplete
			}
			if flags.Changed("streak-protection") {
				s.StreakProtection = protection
			}
			if flags.Changed("max") {
				s.MaxNotificationsPerDay = maxPerDay
			}

			saved, err := app.Settings.Update(ctx, s)
			if err != nil {
				return describeError(err)
			}
			if escalating && !saved.EscalatingReminders {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Escalation is off while several custom times are set."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(saved))
			return nil
		},
	}

	cmd.Flags().Var(newTimesValue(&times), "times", "Reminder times, e.g. 08:00,20:30")
	cmd.Flags().BoolVar(&resetTimes, "reset-times", false, "Go back to the default reminder times")
	cmd.Flags().BoolVar(&enabled, "enabled", true, "Turn notifications on or off")
	cmd.Flags().BoolVar(&escalating, "escalating", false, "Add follow-up reminders every 3 hours")
	cmd.Flags().BoolVar(&onlyIncomplete, "only-incomplete", true, "Stay quiet once everything is done")
	cmd.Flags().BoolVar(&protection, "streak-protection", true, "Mark the last reminder when a streak is at risk")
	cmd.Flags().IntVar(&maxPerDay, "max", domain.DefaultMaxNotificationsPerDay, "Maximum reminders per day (1-8)")

	return cmd
}
