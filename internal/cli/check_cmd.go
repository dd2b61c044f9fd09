package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/habits/internal/cli/formatter"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var skip bool
	var date domain.Date

	cmd := &cobra.Command{
		Use:   "check HABIT",
		Short: "Check in a habit for today (or --skip it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if date.IsZero() {
				date = app.today()
			}

			r, err := app.Routines.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			updated, err := app.CheckIns.ConfirmRoutine(ctx, r.ID, !skip, date)
			switch {
			case errors.Is(err, domain.ErrAlreadyConfirmed):
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already checked in for %s.\n", r.Name, date)
				return nil
			case err != nil:
				return describeError(err)
			}

			out := cmd.OutOrStdout()
			if skip {
				fmt.Fprintf(out, "Skipped %s for %s. Streak reset.\n", updated.Name, date)
			} else {
				fmt.Fprintf(out, "%s %s  streak %s\n",
					formatter.StyleGreen.Render("✔"), formatter.Bold(updated.Name), formatter.StreakBadge(updated.Streak))
				if updated.Streak > 1 && updated.Streak == updated.BestStreak {
					fmt.Fprintln(out, formatter.Dim("New personal best."))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, "skip", false, "Record a skip; the streak resets")
	cmd.Flags().Var(newDateValue(&date), "date", "Check-in date (YYYY-MM-DD, default today)")

	return cmd
}

func newCatchUpCmd(app *App) *cobra.Command {
	var date domain.Date

	cmd := &cobra.Command{
		Use:   "catchup",
		Short: "Reset streaks whose due days went by without a check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date.IsZero() {
				date = app.today()
			}

			before, err := app.Routines.List(cmd.Context(), true)
			if err != nil {
				return err
			}
			streaks := make(map[string]int, len(before))
			for _, r := range before {
				streaks[r.ID] = r.Streak
			}

			after, err := app.CheckIns.RunCatchUp(cmd.Context(), date)
			if err != nil {
				return describeError(err)
			}

			reset := 0
			for _, r := range after {
				if prev := streaks[r.ID]; prev > 0 && r.Streak == 0 {
					reset++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s lost a %d-day streak\n",
						formatter.StyleRed.Render("▼"), r.Name, prev)
				}
			}
			if reset == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All streaks intact.")
			}
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&date), "date", "Reference date (YYYY-MM-DD, default today)")

	return cmd
}

// describeError adds a retry hint to storage failures. Other errors pass
// through unchanged.
func describeError(err error) error {
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		return fmt.Errorf("%w (nothing was changed, try again)", err)
	}
	return err
}
