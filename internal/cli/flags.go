package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag. Unset means "today".
type dateValue struct {
	date *domain.Date
}

var _ pflag.Value = dateValue{}

func newDateValue(d *domain.Date) dateValue { return dateValue{date: d} }

func (v dateValue) String() string {
	if v.date == nil || v.date.IsZero() {
		return ""
	}
	return v.date.String()
}

func (v dateValue) Set(s string) error {
	d, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	*v.date = d
	return nil
}

func (dateValue) Type() string { return "date" }

// timesValue is a comma-separated HH:MM list flag.
type timesValue struct {
	times *[]domain.TimeOfDay
}

var _ pflag.Value = timesValue{}

func newTimesValue(t *[]domain.TimeOfDay) timesValue { return timesValue{times: t} }

func (v timesValue) String() string {
	if v.times == nil {
		return ""
	}
	return domain.JoinTimesOfDay(*v.times)
}

func (v timesValue) Set(s string) error {
	parsed, err := domain.ParseTimesOfDay(s)
	if err != nil {
		return err
	}
	*v.times = parsed
	return nil
}

func (timesValue) Type() string { return "times" }

// frequencyFlags collects the schedule options shared by add and update.
type frequencyFlags struct {
	every     int
	weekdays  string
	monthDays string
}

func (f *frequencyFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.every, "every", 0, "Due every N days (counted from the creation date)")
	fs.StringVar(&f.weekdays, "weekdays", "", "Due on these weekdays, e.g. mon,wed,fri")
	fs.StringVar(&f.monthDays, "monthdays", "", "Due on these days of the month, e.g. 1,15")
}

func (f *frequencyFlags) changed(fs *pflag.FlagSet) bool {
	return fs.Changed("every") || fs.Changed("weekdays") || fs.Changed("monthdays")
}

// build returns the frequency the flags describe; no flag means daily.
func (f *frequencyFlags) build(anchor domain.Date) (domain.Frequency, error) {
	if f.every < 0 {
		return domain.Frequency{}, fmt.Errorf("every %d days: %w", f.every, domain.ErrInvalidFrequency)
	}
	set := 0
	for _, on := range []bool{f.every > 0, f.weekdays != "", f.monthDays != ""} {
		if on {
			set++
		}
	}
	if set > 1 {
		return domain.Frequency{}, fmt.Errorf("choose only one of --every, --weekdays, --monthdays")
	}

	switch {
	case f.every > 0:
		return domain.EveryNDays(f.every, anchor), nil
	case f.weekdays != "":
		days, err := parseWeekdays(f.weekdays)
		if err != nil {
			return domain.Frequency{}, err
		}
		return domain.Weekly(days...), nil
	case f.monthDays != "":
		days, err := parseMonthDays(f.monthDays)
		if err != nil {
			return domain.Frequency{}, err
		}
		return domain.Monthly(days...), nil
	default:
		return domain.Daily(), nil
	}
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range splitList(s) {
		d, err := domain.ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays in %q: %w", s, domain.ErrInvalidFrequency)
	}
	return days, nil
}

func parseMonthDays(s string) ([]int, error) {
	var days []int
	for _, part := range splitList(s) {
		d, err := strconv.Atoi(part)
		if err != nil || d < 1 || d > 31 {
			return nil, fmt.Errorf("day of month %q: %w", part, domain.ErrInvalidFrequency)
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no days in %q: %w", s, domain.ErrInvalidFrequency)
	}
	return days, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
