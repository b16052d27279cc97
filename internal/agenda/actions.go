// Package agenda is the daily action scheduler: per-day task visibility,
// ordering, and completion bookkeeping over the store snapshot.
package agenda

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"dreamplan/internal/store"
)

type ActionInput struct {
	Title          string
	Description    string
	Date           string // day key; empty puts the action in the undated backlog
	Time           string // HH:MM
	Deadline       string
	Priority       store.ActionPriority
	Strength       store.ActionStrength
	StepID         string
	RepeatType     store.RepeatType
	RepeatInterval int
	Subtasks       []string
}

// CreateAction appends a to-do item. sortOrder is stamped from the
// creation timestamp, which keeps untimed actions in creation order.
func CreateAction(s store.Store, in ActionInput, now time.Time) (store.Store, store.Action, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return s, store.Action{}, errors.New("title is required")
	}

	priority := in.Priority
	if priority == "" {
		priority = store.ActionCanWait
	}
	strength := in.Strength
	if strength == "" {
		strength = store.StrengthNeutral
	}
	repeat := in.RepeatType
	if repeat == "" {
		repeat = store.RepeatNone
	}
	interval := 0
	if repeat == store.RepeatCustom {
		interval = in.RepeatInterval
	}

	var subtasks []store.Subtask
	for i, t := range in.Subtasks {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		subtasks = append(subtasks, store.Subtask{
			ID:    store.NewID("subtask", now.Add(time.Duration(i)*time.Millisecond)),
			Title: t,
		})
	}

	a := store.Action{
		ID:             store.NewID("action", now),
		Title:          title,
		Description:    in.Description,
		Date:           in.Date,
		Time:           in.Time,
		Deadline:       in.Deadline,
		Priority:       priority,
		Strength:       strength,
		StepID:         in.StepID,
		RepeatType:     repeat,
		RepeatInterval: interval,
		Subtasks:       subtasks,
		Status:         store.ActionActive,
		SortOrder:      now.UnixMilli(),
		CreatedAt:      now,
	}
	s.Actions = append(append([]store.Action{}, s.Actions...), a)
	return s, a, nil
}

// UpdateAction replaces the action with the same id and stamps updatedAt.
func UpdateAction(s store.Store, a store.Action, now time.Time) (store.Store, error) {
	out := make([]store.Action, len(s.Actions))
	found := false
	for i, cur := range s.Actions {
		if cur.ID == a.ID {
			a.CreatedAt = cur.CreatedAt
			a.UpdatedAt = &now
			cur = a
			found = true
		}
		out[i] = cur
	}
	if !found {
		return s, fmt.Errorf("action %s not found", a.ID)
	}
	s.Actions = out
	return s, nil
}

// CompleteAction marks the action done and stamps completedAt. Completing
// an already-done action is a no-op; this operation does not reverse.
func CompleteAction(s store.Store, actionID string, now time.Time) (store.Store, error) {
	out := make([]store.Action, len(s.Actions))
	found := false
	for i, a := range s.Actions {
		if a.ID == actionID {
			found = true
			if a.Status != store.ActionDone {
				a.Status = store.ActionDone
				a.CompletedAt = &now
			}
		}
		out[i] = a
	}
	if !found {
		return s, fmt.Errorf("action %s not found", actionID)
	}
	s.Actions = out
	return s, nil
}

// CancelAction marks the action cancelled, hiding it from day views.
func CancelAction(s store.Store, actionID string) (store.Store, error) {
	out := make([]store.Action, len(s.Actions))
	found := false
	for i, a := range s.Actions {
		if a.ID == actionID {
			a.Status = store.ActionCancelled
			found = true
		}
		out[i] = a
	}
	if !found {
		return s, fmt.Errorf("action %s not found", actionID)
	}
	s.Actions = out
	return s, nil
}

// DeleteAction removes the action outright.
func DeleteAction(s store.Store, actionID string) (store.Store, error) {
	out := s.Actions[:0:0]
	found := false
	for _, a := range s.Actions {
		if a.ID == actionID {
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		return s, fmt.Errorf("action %s not found", actionID)
	}
	s.Actions = out
	return s, nil
}

// ToggleSubtask flips one subtask checkbox inside an action.
func ToggleSubtask(s store.Store, actionID, subtaskID string) (store.Store, error) {
	out := make([]store.Action, len(s.Actions))
	found := false
	for i, a := range s.Actions {
		if a.ID == actionID {
			subs := make([]store.Subtask, len(a.Subtasks))
			for j, sub := range a.Subtasks {
				if sub.ID == subtaskID {
					sub.IsCompleted = !sub.IsCompleted
					found = true
				}
				subs[j] = sub
			}
			a.Subtasks = subs
		}
		out[i] = a
	}
	if !found {
		return s, fmt.Errorf("subtask %s not found on action %s", subtaskID, actionID)
	}
	s.Actions = out
	return s, nil
}

// DayPlan is the scheduler's view of one day: timed actions by clock
// time, untimed by sortOrder, finished ones apart, and the permanent
// undated backlog.
type DayPlan struct {
	Timed   []store.Action
	Untimed []store.Action
	Done    []store.Action
	Undated []store.Action
}

// PlanFor buckets actions by exact day-key equality. Cancelled actions
// are invisible. An action with no date shows in the backlog regardless
// of the day being viewed.
func PlanFor(s store.Store, dayKey string) DayPlan {
	var p DayPlan
	for _, a := range s.Actions {
		if a.Status == store.ActionCancelled {
			continue
		}
		if a.Date == "" {
			if a.Status == store.ActionActive {
				p.Undated = append(p.Undated, a)
			}
			continue
		}
		if a.Date != dayKey {
			continue
		}
		switch {
		case a.Status == store.ActionDone:
			p.Done = append(p.Done, a)
		case a.Time != "":
			p.Timed = append(p.Timed, a)
		default:
			p.Untimed = append(p.Untimed, a)
		}
	}
	sort.SliceStable(p.Timed, func(i, j int) bool { return p.Timed[i].Time < p.Timed[j].Time })
	sort.SliceStable(p.Untimed, func(i, j int) bool { return p.Untimed[i].SortOrder < p.Untimed[j].SortOrder })
	return p
}

// DaysUntil returns whole days from now to the deadline day key, negative
// when overdue. Both ends are truncated to local midnight, so "tomorrow"
// is 1 regardless of the hour. Display urgency only; nothing reschedules.
func DaysUntil(deadline string, now time.Time) (int, error) {
	d, err := store.ParseDayKey(deadline)
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(d.Sub(today).Hours() / 24), nil
}
