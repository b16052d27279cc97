package finance

import (
	"fmt"
	"time"

	"dreamplan/internal/store"
)

// Period is the reporting granularity of the finance screens.
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	default:
		return false
	}
}

// InPeriod reports whether a transaction day key falls in the same
// calendar-aligned bucket as the anchor: month+year, quarter+year, or year.
func InPeriod(dayKey string, p Period, anchor time.Time) bool {
	d, err := store.ParseDayKey(dayKey)
	if err != nil {
		return false
	}
	switch p {
	case PeriodMonth:
		return d.Month() == anchor.Month() && d.Year() == anchor.Year()
	case PeriodQuarter:
		return (int(d.Month())-1)/3 == (int(anchor.Month())-1)/3 && d.Year() == anchor.Year()
	case PeriodYear:
		return d.Year() == anchor.Year()
	default:
		return false
	}
}

// Navigate steps the anchor by delta units of the period granularity.
// The anchor is pinned to the first of its month before stepping, so a
// month-end day cannot overflow AddDate into the period after next.
func Navigate(p Period, anchor time.Time, delta int) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	switch p {
	case PeriodMonth:
		return first.AddDate(0, delta, 0)
	case PeriodQuarter:
		return first.AddDate(0, delta*3, 0)
	case PeriodYear:
		return first.AddDate(delta, 0, 0)
	default:
		return anchor
	}
}

// Label renders the period heading, e.g. "August 2026", "Q3 2026", "2026".
func Label(p Period, anchor time.Time) string {
	switch p {
	case PeriodMonth:
		return anchor.Format("January 2006")
	case PeriodQuarter:
		return fmt.Sprintf("Q%d %d", (int(anchor.Month())-1)/3+1, anchor.Year())
	default:
		return fmt.Sprintf("%d", anchor.Year())
	}
}
