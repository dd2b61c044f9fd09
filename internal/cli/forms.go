package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/habits/internal/cli/formatter"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// habitsHuhTheme styles huh forms with the formatter palette.
func habitsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// habitFormValues is what the add form collects before it becomes a Routine.
type habitFormValues struct {
	Name      string
	Kind      string
	Every     string
	Weekdays  []string
	MonthDays string
	Icon      string
}

// toRoutine fills r from the form answers.
func (v habitFormValues) toRoutine(r *domain.Routine, today domain.Date) error {
	r.Name = strings.TrimSpace(v.Name)
	r.Icon = strings.TrimSpace(v.Icon)

	var freq frequencyFlags
	switch domain.FrequencyKind(v.Kind) {
	case domain.FrequencyInterval:
		n, err := strconv.Atoi(strings.TrimSpace(v.Every))
		if err != nil {
			return fmt.Errorf("every N days: %w", domain.ErrInvalidFrequency)
		}
		freq.every = n
	case domain.FrequencyWeekly:
		freq.weekdays = strings.Join(v.Weekdays, ",")
	case domain.FrequencyMonthly:
		freq.monthDays = v.MonthDays
	}
	f, err := freq.build(today)
	if err != nil {
		return err
	}
	r.Frequency = f
	return nil
}

func runHabitForm(r *domain.Routine, today domain.Date) error {
	v := habitFormValues{Kind: string(domain.FrequencyDaily)}

	first := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Placeholder("Read 10 pages").
				Value(&v.Name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Icon (optional)").
				Value(&v.Icon),
			huh.NewSelect[string]().
				Title("How often?").
				Options(
					huh.NewOption("Every day", string(domain.FrequencyDaily)),
					huh.NewOption("Every N days", string(domain.FrequencyInterval)),
					huh.NewOption("On certain weekdays", string(domain.FrequencyWeekly)),
					huh.NewOption("On certain days of the month", string(domain.FrequencyMonthly)),
				).
				Value(&v.Kind),
		),
	).WithTheme(habitsHuhTheme()).WithShowHelp(false)
	if err := first.Run(); err != nil {
		return err
	}

	if detail := frequencyDetailForm(&v); detail != nil {
		if err := detail.Run(); err != nil {
			return err
		}
	}
	return v.toRoutine(r, today)
}

// frequencyDetailForm asks for the parameters of the chosen kind, or
// returns nil for daily habits.
func frequencyDetailForm(v *habitFormValues) *huh.Form {
	var field huh.Field
	switch domain.FrequencyKind(v.Kind) {
	case domain.FrequencyInterval:
		field = huh.NewInput().
			Title("Every how many days?").
			Placeholder("2").
			Value(&v.Every).
			Validate(validatePositiveInt)
	case domain.FrequencyWeekly:
		options := make([]huh.Option[string], 0, 7)
		for _, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
			options = append(options, huh.NewOption(name, strings.ToLower(name)))
		}
		field = huh.NewMultiSelect[string]().
			Title("Which weekdays?").
			Options(options...).
			Value(&v.Weekdays).
			Validate(func(days []string) error {
				if len(days) == 0 {
					return fmt.Errorf("pick at least one day")
				}
				return nil
			})
	case domain.FrequencyMonthly:
		field = huh.NewInput().
			Title("Which days of the month?").
			Placeholder("1,15").
			Value(&v.MonthDays).
			Validate(func(s string) error {
				_, err := parseMonthDays(s)
				return err
			})
	default:
		return nil
	}
	return huh.NewForm(huh.NewGroup(field)).WithTheme(habitsHuhTheme()).WithShowHelp(false)
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(habitsHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
