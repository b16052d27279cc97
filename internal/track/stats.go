package track

import (
	"time"

	"dreamplan/internal/store"
)

// ActivityDay is one activity's share of a day.
type ActivityDay struct {
	Activity store.Activity
	Minutes  int
	Sessions []store.Session
}

// DayStats sums completed-session minutes per non-archived activity for
// one day. An activity appears when it has minutes logged or is a
// favorite, so favorites always show even at zero.
func DayStats(s store.Store, dayKey string) []ActivityDay {
	var out []ActivityDay
	for _, a := range s.Activities {
		if a.IsArchived {
			continue
		}
		var minutes int
		var sessions []store.Session
		for _, sess := range s.Sessions {
			if sess.ActivityID == a.ID && sess.Date == dayKey && !sess.Running() {
				minutes += sess.DurationMinutes
				sessions = append(sessions, sess)
			}
		}
		if minutes > 0 || a.IsFavorite {
			out = append(out, ActivityDay{Activity: a, Minutes: minutes, Sessions: sessions})
		}
	}
	return out
}

// TotalDayMinutes sums completed-session minutes for one day. It counts
// the same sessions DayStats shows, so archived activities and sessions
// left behind by a deleted activity stay out of the total.
func TotalDayMinutes(s store.Store, dayKey string) int {
	total := 0
	for _, ad := range DayStats(s, dayKey) {
		total += ad.Minutes
	}
	return total
}

// GoalProgress is the daily-goal ring percentage, capped at 100. The
// second return is false when no daily goal is set and the ring hides.
func GoalProgress(a store.Activity, minutes int) (int, bool) {
	if a.DailyGoal <= 0 {
		return 0, false
	}
	pct := minutes * 100 / a.DailyGoal
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// WeekStart is the Monday midnight of the week holding t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - 1
	if offset < 0 { // Sunday
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

// WeekChart returns seven daily totals, Monday first, for the week of t.
func WeekChart(s store.Store, t time.Time) [7]int {
	var out [7]int
	start := WeekStart(t)
	for i := 0; i < 7; i++ {
		out[i] = TotalDayMinutes(s, store.DayKey(start.AddDate(0, 0, i)))
	}
	return out
}

// MonthChart returns four week buckets for the month of t, each clipped
// to days inside the month.
func MonthChart(s store.Store, t time.Time) [4]int {
	var out [4]int
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	for w := 0; w < 4; w++ {
		for d := 0; d < 7; d++ {
			day := start.AddDate(0, 0, w*7+d)
			if day.Month() != t.Month() {
				continue
			}
			out[w] += TotalDayMinutes(s, store.DayKey(day))
		}
	}
	return out
}
