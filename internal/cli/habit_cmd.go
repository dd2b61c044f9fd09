package cli

import (
	"fmt"

	"github.com/alexanderramin/habits/internal/cli/formatter"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/streak"
	"github.com/spf13/cobra"
)

const (
	inspectUpcoming = 5
	inspectHistory  = 7
)

func newHabitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits", "h"},
		Short:   "Manage habits",
	}

	cmd.AddCommand(
		newHabitAddCmd(app),
		newHabitListCmd(app),
		newHabitInspectCmd(app),
		newHabitUpdateCmd(app),
		newHabitPauseCmd(app),
		newHabitResumeCmd(app),
		newHabitRemoveCmd(app),
		newHabitHistoryCmd(app),
	)

	return cmd
}

func newHabitAddCmd(app *App) *cobra.Command {
	var name, color, icon string
	var freq frequencyFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.today()
			r := &domain.Routine{Name: name, Color: color, Icon: icon, CreatedOn: today}

			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				if err := runHabitForm(r, today); err != nil {
					return err
				}
			} else {
				f, err := freq.build(today)
				if err != nil {
					return err
				}
				r.Frequency = f
			}

			if err := app.Routines.Create(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created habit %s (%s) [%s]\n",
				r.Name, r.Frequency.Describe(), formatter.TruncID(r.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Habit name")
	cmd.Flags().StringVar(&color, "color", "", "Display color, e.g. #8ec07c")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon")
	freq.register(cmd.Flags())

	return cmd
}

func newHabitListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits with today's state",
		RunE: func(cmd *cobra.Command, args []string) error {
			routines, err := app.Routines.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(routines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No habits yet. Add one with `habits habit add --name ...`.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoutineList(routines, app.today()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include paused habits")

	return cmd
}

func newHabitInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect HABIT",
		Short: "Show a habit's streak, schedule and recent check-ins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := app.Routines.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			history, err := app.Routines.History(ctx, r.ID, inspectHistory)
			if err != nil {
				return err
			}

			today := app.today()
			data := formatter.RoutineInspectData{
				Routine:  r,
				Today:    today,
				Upcoming: streak.UpcomingDueDays(r.Frequency, today, inspectUpcoming),
				History:  history,
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoutineInspect(data))
			return nil
		},
	}
}

func newHabitUpdateCmd(app *App) *cobra.Command {
	var name, color, icon string
	var freq frequencyFlags

	cmd := &cobra.Command{
		Use:   "update HABIT",
		Short: "Change a habit's name, look or schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := app.Routines.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				r.Name = name
			}
			if cmd.Flags().Changed("color") {
				r.Color = color
			}
			if cmd.Flags().Changed("icon") {
				r.Icon = icon
			}
			if freq.changed(cmd.Flags()) {
				f, err := freq.build(r.CreatedOn)
				if err != nil {
					return err
				}
				r.Frequency = f
			}

			if err := app.Routines.Update(ctx, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated habit %s (%s)\n", r.Name, r.Frequency.Describe())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New display color")
	cmd.Flags().StringVar(&icon, "icon", "", "New display icon")
	freq.register(cmd.Flags())

	return cmd
}

func newHabitPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause HABIT",
		Short: "Pause a habit; it is neither reminded nor reset while paused",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Routines.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Routines.Pause(cmd.Context(), r.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paused %s\n", r.Name)
			return nil
		},
	}
}

func newHabitResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume HABIT",
		Short: "Resume a paused habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Routines.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Routines.Resume(cmd.Context(), r.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resumed %s\n", r.Name)
			return nil
		},
	}
}

func newHabitRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove HABIT",
		Aliases: []string{"rm"},
		Short:   "Delete a habit and its check-in history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := app.Routines.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s without --yes", r.Name)
				}
				confirmed := false
				title := fmt.Sprintf("Delete %s and its %d-day streak?", r.Name, r.Streak)
				if err := confirmForm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
					return nil
				}
			}

			if err := app.Routines.Delete(ctx, r.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", r.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newHabitHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history HABIT",
		Short: "Show a habit's check-ins, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := app.Routines.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			history, err := app.Routines.History(ctx, r.ID, limit)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No check-ins for %s yet.\n", r.Name)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(r, history, app.today()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 30, "Maximum entries (0 for all)")

	return cmd
}
