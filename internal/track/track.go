// Package track is the single-timer time tracker: activities, their timed
// sessions, and the per-day and per-week aggregates.
package track

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dreamplan/internal/store"
)

// RunningSessionError refuses a plain start while another activity's
// timer runs; the caller confirms and uses SwitchSession.
type RunningSessionError struct {
	ActivityID string
}

func (e RunningSessionError) Error() string {
	return fmt.Sprintf("a session is already running for activity %s; switch instead", e.ActivityID)
}

// DefaultActivities are seeded the first time the tracker is used.
func DefaultActivities() []store.Activity {
	return []store.Activity{
		{ID: "activity_work", Name: "Work", Icon: "💼", Color: "#4A90D9", IsFavorite: true},
		{ID: "activity_study", Name: "Study", Icon: "📚", Color: "#9B59B6", IsFavorite: true},
		{ID: "activity_sport", Name: "Sport", Icon: "🏃", Color: "#27AE60", IsFavorite: true},
		{ID: "activity_rest", Name: "Rest", Icon: "☕", Color: "#E67E22"},
		{ID: "activity_creative", Name: "Creative", Icon: "🎨", Color: "#E91E63"},
	}
}

// EnsureDefaults seeds activities on first use; nil means never used.
func EnsureDefaults(s store.Store) store.Store {
	if s.Activities != nil {
		return s
	}
	s.Activities = DefaultActivities()
	s.Sessions = []store.Session{}
	return s
}

type ActivityInput struct {
	ID         string // empty creates
	Name       string
	Icon       string
	Color      string
	IsFavorite bool
	DailyGoal  int // minutes; 0 unsets the goal
	IsArchived bool
}

// SaveActivity inserts or replaces an activity by id.
func SaveActivity(s store.Store, in ActivityInput, now time.Time) (store.Store, store.Activity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return s, store.Activity{}, errors.New("name is required")
	}
	if in.DailyGoal < 0 {
		return s, store.Activity{}, errors.New("daily goal cannot be negative")
	}

	a := store.Activity{
		ID:         in.ID,
		Name:       name,
		Icon:       in.Icon,
		Color:      in.Color,
		IsFavorite: in.IsFavorite,
		DailyGoal:  in.DailyGoal,
		IsArchived: in.IsArchived,
		CreatedAt:  now,
	}
	if a.ID == "" {
		a.ID = store.NewID("activity", now)
	}

	out := make([]store.Activity, 0, len(s.Activities)+1)
	replaced := false
	for _, cur := range s.Activities {
		if cur.ID == a.ID {
			a.CreatedAt = cur.CreatedAt
			cur = a
			replaced = true
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, a)
	}
	s.Activities = out
	return s, a, nil
}

// DeleteActivity removes the activity only. Its sessions keep the
// dangling id and fall out of the day view.
func DeleteActivity(s store.Store, activityID string) store.Store {
	out := s.Activities[:0:0]
	for _, a := range s.Activities {
		if a.ID != activityID {
			out = append(out, a)
		}
	}
	s.Activities = out
	return s
}

// StartSession opens the timer on an activity. If the same activity is
// already running this is a no-op; if a different one is, the start is
// refused and the caller confirms a SwitchSession.
func StartSession(s store.Store, activityID string, now time.Time) (store.Store, error) {
	if s.ActivityByID(activityID) == nil {
		return s, fmt.Errorf("activity %s not found", activityID)
	}
	if running := s.RunningSession(); running != nil {
		if running.ActivityID == activityID {
			return s, nil
		}
		return s, RunningSessionError{ActivityID: running.ActivityID}
	}
	return startSession(s, activityID, now), nil
}

// SwitchSession stops whatever is running and starts the new activity in
// the same mutation, so no observer ever sees two open timers.
func SwitchSession(s store.Store, activityID string, now time.Time) (store.Store, error) {
	if s.ActivityByID(activityID) == nil {
		return s, fmt.Errorf("activity %s not found", activityID)
	}
	s = stopRunning(s, now)
	return startSession(s, activityID, now), nil
}

func startSession(s store.Store, activityID string, now time.Time) store.Store {
	sess := store.Session{
		ID:         store.NewID("session", now),
		ActivityID: activityID,
		StartAt:    now,
		Date:       store.DayKey(now),
	}
	s.Sessions = append(append([]store.Session{}, s.Sessions...), sess)
	return s
}

// StopSession closes the running timer, stamping the end and the whole
// minutes elapsed. Without a running session it is a no-op.
func StopSession(s store.Store, now time.Time) store.Store {
	return stopRunning(s, now)
}

func stopRunning(s store.Store, now time.Time) store.Store {
	running := s.RunningSession()
	if running == nil {
		return s
	}
	out := make([]store.Session, len(s.Sessions))
	for i, sess := range s.Sessions {
		if sess.ID == running.ID {
			end := now
			sess.EndAt = &end
			sess.DurationMinutes = int(now.Sub(sess.StartAt).Minutes())
		}
		out[i] = sess
	}
	s.Sessions = out
	return s
}

// UpdateSession rewrites a finished session's bounds, rederiving the day
// key and duration from them.
func UpdateSession(s store.Store, sessionID string, startAt, endAt time.Time) (store.Store, error) {
	if endAt.Before(startAt) {
		return s, errors.New("session end precedes start")
	}
	out := make([]store.Session, len(s.Sessions))
	found := false
	for i, sess := range s.Sessions {
		if sess.ID == sessionID {
			end := endAt
			sess.StartAt = startAt
			sess.EndAt = &end
			sess.Date = store.DayKey(startAt)
			sess.DurationMinutes = int(endAt.Sub(startAt).Minutes())
			found = true
		}
		out[i] = sess
	}
	if !found {
		return s, fmt.Errorf("session %s not found", sessionID)
	}
	s.Sessions = out
	return s, nil
}

// DeleteSession removes one session record.
func DeleteSession(s store.Store, sessionID string) (store.Store, error) {
	out := s.Sessions[:0:0]
	found := false
	for _, sess := range s.Sessions {
		if sess.ID == sessionID {
			found = true
			continue
		}
		out = append(out, sess)
	}
	if !found {
		return s, fmt.Errorf("session %s not found", sessionID)
	}
	s.Sessions = out
	return s, nil
}

// Elapsed is the running session's age; the display poll computes this on
// every tick without touching the store.
func Elapsed(sess store.Session, now time.Time) time.Duration {
	return now.Sub(sess.StartAt)
}
