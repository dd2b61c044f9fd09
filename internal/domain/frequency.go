package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type FrequencyKind string

const (
	FrequencyDaily    FrequencyKind = "daily"
	FrequencyInterval FrequencyKind = "interval"
	FrequencyWeekly   FrequencyKind = "weekly"
	FrequencyMonthly  FrequencyKind = "monthly"
)

// ValidFrequencyKinds is the canonical set of accepted frequency kind strings.
var ValidFrequencyKinds = map[string]bool{
	"daily": true, "interval": true, "weekly": true, "monthly": true,
}

// Frequency describes on which calendar dates a routine is due. Only the
// fields belonging to Kind are meaningful.
type Frequency struct {
	Kind FrequencyKind

	// Interval
	EveryNDays int
	Anchor     Date

	// Weekly, 0 = Sunday .. 6 = Saturday
	Weekdays []time.Weekday

	// Monthly, 1..31
	DaysOfMonth []int
}

func Daily() Frequency {
	return Frequency{Kind: FrequencyDaily}
}

// EveryNDays returns an interval frequency counted from anchor, which is
// itself a due day.
func EveryNDays(n int, anchor Date) Frequency {
	return Frequency{Kind: FrequencyInterval, EveryNDays: n, Anchor: anchor}
}

func Weekly(days ...time.Weekday) Frequency {
	return Frequency{Kind: FrequencyWeekly, Weekdays: normalizeWeekdays(days)}
}

func Monthly(days ...int) Frequency {
	return Frequency{Kind: FrequencyMonthly, DaysOfMonth: normalizeDays(days)}
}

// Validate reports ErrInvalidFrequency when the configuration can never be
// due.
func (f Frequency) Validate() error {
	switch f.Kind {
	case FrequencyDaily:
		return nil
	case FrequencyInterval:
		if f.EveryNDays < 1 {
			return fmt.Errorf("every %d days: %w", f.EveryNDays, ErrInvalidFrequency)
		}
		if f.Anchor.IsZero() {
			return fmt.Errorf("interval without anchor date: %w", ErrInvalidFrequency)
		}
		return nil
	case FrequencyWeekly:
		if len(f.Weekdays) == 0 {
			return fmt.Errorf("empty weekday set: %w", ErrInvalidFrequency)
		}
		for _, d := range f.Weekdays {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("weekday %d: %w", d, ErrInvalidFrequency)
			}
		}
		return nil
	case FrequencyMonthly:
		if len(f.DaysOfMonth) == 0 {
			return fmt.Errorf("empty day-of-month set: %w", ErrInvalidFrequency)
		}
		for _, d := range f.DaysOfMonth {
			if d < 1 || d > 31 {
				return fmt.Errorf("day of month %d: %w", d, ErrInvalidFrequency)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown kind %q: %w", f.Kind, ErrInvalidFrequency)
	}
}

// Describe returns a short human-readable summary such as "every 3 days" or
// "Mon, Wed, Fri".
func (f Frequency) Describe() string {
	switch f.Kind {
	case FrequencyDaily:
		return "daily"
	case FrequencyInterval:
		if f.EveryNDays == 1 {
			return "every day"
		}
		return fmt.Sprintf("every %d days", f.EveryNDays)
	case FrequencyWeekly:
		names := make([]string, len(f.Weekdays))
		for i, d := range f.Weekdays {
			names[i] = d.String()[:3]
		}
		return strings.Join(names, ", ")
	case FrequencyMonthly:
		days := make([]string, len(f.DaysOfMonth))
		for i, d := range f.DaysOfMonth {
			days[i] = fmt.Sprintf("%d", d)
		}
		return "monthly on " + strings.Join(days, ", ")
	default:
		return string(f.Kind)
	}
}

// ParseWeekday accepts English weekday names or abbreviations ("mon",
// "Tuesday") and digits 0..6.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return time.Weekday(s[0] - '0'), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func normalizeDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
