package streak

import (
	"github.com/alexanderramin/habits/internal/domain"
)

// maxScanDays bounds walks over date ranges. Valid weekly and monthly
// frequencies always have a due day inside this window; intervals are
// computed arithmetically.
const maxScanDays = 366 * 2

// IsDue reports whether d is a due day for f. It is a pure function of its
// arguments. Invalid configurations are never due.
func IsDue(f domain.Frequency, d domain.Date) bool {
	if f.Validate() != nil {
		return false
	}
	switch f.Kind {
	case domain.FrequencyDaily:
		return true
	case domain.FrequencyInterval:
		n := f.Anchor.DaysUntil(d)
		return n >= 0 && n%f.EveryNDays == 0
	case domain.FrequencyWeekly:
		wd := d.Weekday()
		for _, w := range f.Weekdays {
			if w == wd {
				return true
			}
		}
		return false
	case domain.FrequencyMonthly:
		// No clamping: day 31 is simply not due in shorter months.
		day := d.Day()
		for _, m := range f.DaysOfMonth {
			if m == day {
				return true
			}
		}
		return false
	}
	return false
}

// FirstDueBetween returns the earliest due day strictly after from and
// strictly before to.
func FirstDueBetween(f domain.Frequency, from, to domain.Date) (domain.Date, bool) {
	if f.Validate() != nil || from.DaysUntil(to) < 2 {
		return domain.Date{}, false
	}
	if f.Kind == domain.FrequencyInterval {
		start := from.AddDays(1)
		if start.Before(f.Anchor) {
			start = f.Anchor
		}
		offset := f.Anchor.DaysUntil(start) % f.EveryNDays
		if offset != 0 {
			start = start.AddDays(f.EveryNDays - offset)
		}
		if start.Before(to) {
			return start, true
		}
		return domain.Date{}, false
	}

	d := from.AddDays(1)
	for i := 0; i < maxScanDays && d.Before(to); i++ {
		if IsDue(f, d) {
			return d, true
		}
		d = d.AddDays(1)
	}
	return domain.Date{}, false
}

// NextDue returns the first due day on or after from.
func NextDue(f domain.Frequency, from domain.Date) (domain.Date, bool) {
	if IsDue(f, from) {
		return from, true
	}
	return FirstDueBetween(f, from, from.AddDays(maxScanDays))
}

// UpcomingDueDays lists up to n due days starting on from. Invalid
// frequencies have none.
func UpcomingDueDays(f domain.Frequency, from domain.Date, n int) []domain.Date {
	var out []domain.Date
	for len(out) < n {
		next, ok := NextDue(f, from)
		if !ok {
			break
		}
		out = append(out, next)
		from = next.AddDays(1)
	}
	return out
}
