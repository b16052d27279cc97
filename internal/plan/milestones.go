package plan

import (
	"fmt"
	"sort"
	"time"

	"dreamplan/internal/store"
)

type MilestoneInput struct {
	GoalID      string
	Quarter     store.Quarter
	Year        int
	Title       string
	Description string
	Criteria    string
	Deadline    string
	Notes       string
}

// CreateMilestone inserts the quarterly checkpoint for a goal. Each
// (goal, quarter, year) slot holds at most one milestone; a second insert
// is refused rather than silently shadowed by scan order.
func CreateMilestone(s store.Store, in MilestoneInput, now time.Time) (store.Store, store.Milestone, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return s, store.Milestone{}, err
	}
	if !in.Quarter.IsValid() {
		return s, store.Milestone{}, fmt.Errorf("invalid quarter: %q", in.Quarter)
	}
	if s.GoalByID(in.GoalID) == nil {
		return s, store.Milestone{}, fmt.Errorf("goal %s not found", in.GoalID)
	}
	if existing := MilestoneFor(s, in.GoalID, in.Quarter, in.Year); existing != nil {
		return s, store.Milestone{}, MilestoneExistsError{GoalID: in.GoalID, Quarter: in.Quarter, Year: in.Year}
	}

	m := store.Milestone{
		ID:          store.NewID("milestone", now),
		GoalID:      in.GoalID,
		Quarter:     in.Quarter,
		Year:        in.Year,
		Title:       title,
		Description: in.Description,
		Criteria:    in.Criteria,
		Deadline:    in.Deadline,
		Notes:       in.Notes,
		Status:      store.MilestonePending,
		CreatedAt:   now,
	}
	s.Milestones = append(append([]store.Milestone{}, s.Milestones...), m)
	return s, m, nil
}

// UpdateMilestone replaces the milestone with the same id. Moving it onto
// an occupied (goal, quarter, year) slot is refused.
func UpdateMilestone(s store.Store, m store.Milestone) (store.Store, error) {
	if existing := MilestoneFor(s, m.GoalID, m.Quarter, m.Year); existing != nil && existing.ID != m.ID {
		return s, MilestoneExistsError{GoalID: m.GoalID, Quarter: m.Quarter, Year: m.Year}
	}

	out := make([]store.Milestone, len(s.Milestones))
	found := false
	for i, cur := range s.Milestones {
		if cur.ID == m.ID {
			m.CreatedAt = cur.CreatedAt
			cur = m
			found = true
		}
		out[i] = cur
	}
	if !found {
		return s, fmt.Errorf("milestone %s not found", m.ID)
	}
	s.Milestones = out
	return s, nil
}

// SetMilestoneStatus overwrites the status. All transitions are allowed in
// both directions.
func SetMilestoneStatus(s store.Store, milestoneID string, status store.MilestoneStatus) (store.Store, error) {
	if !status.IsValid() {
		return s, fmt.Errorf("invalid milestone status: %q", status)
	}
	out := make([]store.Milestone, len(s.Milestones))
	found := false
	for i, m := range s.Milestones {
		if m.ID == milestoneID {
			m.Status = status
			found = true
		}
		out[i] = m
	}
	if !found {
		return s, fmt.Errorf("milestone %s not found", milestoneID)
	}
	s.Milestones = out
	return s, nil
}

// MilestoneFor looks up the milestone occupying a (goal, quarter, year) slot.
func MilestoneFor(s store.Store, goalID string, q store.Quarter, year int) *store.Milestone {
	for i := range s.Milestones {
		m := s.Milestones[i]
		if m.GoalID == goalID && m.Quarter == q && m.Year == year {
			return &m
		}
	}
	return nil
}

type StepInput struct {
	MilestoneID string
	Title       string
	Description string
	Month       int
	Year        int
	Deadline    string
}

// CreateStep inserts a monthly sub-task under a milestone. The month must
// fall inside the owning milestone's quarter.
func CreateStep(s store.Store, in StepInput, now time.Time) (store.Store, store.Step, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return s, store.Step{}, err
	}
	m := s.MilestoneByID(in.MilestoneID)
	if m == nil {
		return s, store.Step{}, fmt.Errorf("milestone %s not found", in.MilestoneID)
	}
	if !m.Quarter.Contains(in.Month) {
		return s, store.Step{}, MonthOutsideQuarterError{Month: in.Month, Quarter: m.Quarter}
	}

	st := store.Step{
		ID:          store.NewID("step", now),
		MilestoneID: in.MilestoneID,
		Title:       title,
		Description: in.Description,
		Month:       in.Month,
		Year:        in.Year,
		Deadline:    in.Deadline,
		Status:      store.StepPending,
		SortOrder:   nextStepOrder(s.Steps, in.MilestoneID),
		CreatedAt:   now,
	}
	s.Steps = append(append([]store.Step{}, s.Steps...), st)
	return s, st, nil
}

func nextStepOrder(steps []store.Step, milestoneID string) int64 {
	var max int64
	for i := range steps {
		if steps[i].MilestoneID == milestoneID && steps[i].SortOrder > max {
			max = steps[i].SortOrder
		}
	}
	return max + 1
}

// UpdateStep replaces the step with the same id, re-checking the month
// against the owning milestone's quarter.
func UpdateStep(s store.Store, st store.Step) (store.Store, error) {
	m := s.MilestoneByID(st.MilestoneID)
	if m == nil {
		return s, fmt.Errorf("milestone %s not found", st.MilestoneID)
	}
	if !m.Quarter.Contains(st.Month) {
		return s, MonthOutsideQuarterError{Month: st.Month, Quarter: m.Quarter}
	}

	out := make([]store.Step, len(s.Steps))
	found := false
	for i, cur := range s.Steps {
		if cur.ID == st.ID {
			st.CreatedAt = cur.CreatedAt
			cur = st
			found = true
		}
		out[i] = cur
	}
	if !found {
		return s, fmt.Errorf("step %s not found", st.ID)
	}
	s.Steps = out
	return s, nil
}

// ToggleStep flips a pending step to completed and anything else,
// failed included, back to pending. Failed itself is only reached
// through SetStepStatus.
func ToggleStep(s store.Store, stepID string) (store.Store, error) {
	out := make([]store.Step, len(s.Steps))
	found := false
	for i, st := range s.Steps {
		if st.ID == stepID {
			if st.Status == store.StepPending {
				st.Status = store.StepCompleted
			} else {
				st.Status = store.StepPending
			}
			found = true
		}
		out[i] = st
	}
	if !found {
		return s, fmt.Errorf("step %s not found", stepID)
	}
	s.Steps = out
	return s, nil
}

// SetStepStatus overwrites a step's status, the explicit path to "failed".
func SetStepStatus(s store.Store, stepID string, status store.StepStatus) (store.Store, error) {
	switch status {
	case store.StepPending, store.StepCompleted, store.StepFailed:
	default:
		return s, fmt.Errorf("invalid step status: %q", status)
	}
	out := make([]store.Step, len(s.Steps))
	found := false
	for i, st := range s.Steps {
		if st.ID == stepID {
			st.Status = status
			found = true
		}
		out[i] = st
	}
	if !found {
		return s, fmt.Errorf("step %s not found", stepID)
	}
	s.Steps = out
	return s, nil
}

// StepsFor returns a milestone's steps ordered by sortOrder.
func StepsFor(s store.Store, milestoneID string) []store.Step {
	var out []store.Step
	for _, st := range s.Steps {
		if st.MilestoneID == milestoneID {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}
