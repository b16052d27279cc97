package plan

import (
	"errors"
	"testing"
	"time"

	"dreamplan/internal/store"
)

func seedGoal(t *testing.T) (store.Store, store.Goal) {
	t.Helper()
	s, d := seedDream(t)
	return addGoal(t, s, d.ID, "ship the project", 0)
}

func addMilestone(t *testing.T, s store.Store, goalID string, q store.Quarter, offset int) (store.Store, store.Milestone) {
	t.Helper()
	now := testClock.Add(time.Duration(offset) * time.Second)
	s, m, err := CreateMilestone(s, MilestoneInput{GoalID: goalID, Quarter: q, Year: 2026, Title: "checkpoint " + string(q)}, now)
	if err != nil {
		t.Fatalf("create milestone %s: %v", q, err)
	}
	return s, m
}

func TestMilestoneSlotIsUnique(t *testing.T) {
	s, g := seedGoal(t)
	s, _ = addMilestone(t, s, g.ID, store.Q1, 0)

	_, _, err := CreateMilestone(s, MilestoneInput{GoalID: g.ID, Quarter: store.Q1, Year: 2026, Title: "double"}, testClock.Add(time.Second))
	var exists MilestoneExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("got %v, want MilestoneExistsError", err)
	}

	// Other quarters and other years stay open.
	s, _ = addMilestone(t, s, g.ID, store.Q2, 2)
	if _, _, err := CreateMilestone(s, MilestoneInput{GoalID: g.ID, Quarter: store.Q1, Year: 2027, Title: "next year"}, testClock.Add(3*time.Second)); err != nil {
		t.Fatalf("next-year milestone: %v", err)
	}
}

func TestUpdateMilestoneRefusesOccupiedSlot(t *testing.T) {
	s, g := seedGoal(t)
	s, m1 := addMilestone(t, s, g.ID, store.Q1, 0)
	s, m2 := addMilestone(t, s, g.ID, store.Q2, 1)

	m2.Quarter = store.Q1
	_, err := UpdateMilestone(s, m2)
	var exists MilestoneExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("got %v, want MilestoneExistsError", err)
	}

	// Editing in place, same slot, is fine.
	m1.Title = "renamed"
	s, err = UpdateMilestone(s, m1)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if s.MilestoneByID(m1.ID).Title != "renamed" {
		t.Fatal("rename not applied")
	}
}

func TestMilestoneStatusTransitions(t *testing.T) {
	s, g := seedGoal(t)
	s, m := addMilestone(t, s, g.ID, store.Q3, 0)

	var err error
	for _, status := range []store.MilestoneStatus{store.MilestonePassed, store.MilestoneFailed, store.MilestonePending} {
		if s, err = SetMilestoneStatus(s, m.ID, status); err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
		if got := s.MilestoneByID(m.ID).Status; got != status {
			t.Fatalf("status = %s, want %s", got, status)
		}
	}

	if _, err := SetMilestoneStatus(s, m.ID, "done"); err == nil {
		t.Fatal("invalid status must be refused")
	}
}

func TestCreateStepChecksQuarterMonth(t *testing.T) {
	s, g := seedGoal(t)
	s, m := addMilestone(t, s, g.ID, store.Q2, 0)

	_, _, err := CreateStep(s, StepInput{MilestoneID: m.ID, Title: "outline", Month: 8, Year: 2026}, testClock)
	var outside MonthOutsideQuarterError
	if !errors.As(err, &outside) {
		t.Fatalf("got %v, want MonthOutsideQuarterError", err)
	}

	s, st, err := CreateStep(s, StepInput{MilestoneID: m.ID, Title: "outline", Month: 5, Year: 2026}, testClock)
	if err != nil {
		t.Fatalf("create step: %v", err)
	}
	if st.Status != store.StepPending || st.SortOrder != 1 {
		t.Fatalf("fresh step: %+v", st)
	}

	_, st2, err := CreateStep(s, StepInput{MilestoneID: m.ID, Title: "draft", Month: 6, Year: 2026}, testClock.Add(time.Second))
	if err != nil {
		t.Fatalf("second step: %v", err)
	}
	if st2.SortOrder != 2 {
		t.Fatalf("second sortOrder = %d, want 2", st2.SortOrder)
	}
}

func TestToggleStep(t *testing.T) {
	s, g := seedGoal(t)
	s, m := addMilestone(t, s, g.ID, store.Q1, 0)
	s, st, err := CreateStep(s, StepInput{MilestoneID: m.ID, Title: "outline", Month: 2, Year: 2026}, testClock)
	if err != nil {
		t.Fatalf("create step: %v", err)
	}

	if s, err = ToggleStep(s, st.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := StepsFor(s, m.ID)[0].Status; got != store.StepCompleted {
		t.Fatalf("status = %s, want completed", got)
	}

	if s, err = ToggleStep(s, st.ID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if got := StepsFor(s, m.ID)[0].Status; got != store.StepPending {
		t.Fatalf("status = %s, want pending", got)
	}

	// A failed step toggles back to pending, not completed.
	if s, err = SetStepStatus(s, st.ID, store.StepFailed); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if s, err = ToggleStep(s, st.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if got := StepsFor(s, m.ID)[0].Status; got != store.StepPending {
		t.Fatalf("status = %s, want pending", got)
	}
}

func TestStepsForOrdersBySortOrder(t *testing.T) {
	s, g := seedGoal(t)
	s, m := addMilestone(t, s, g.ID, store.Q1, 0)

	var err error
	for i, title := range []string{"one", "two", "three"} {
		if s, _, err = CreateStep(s, StepInput{MilestoneID: m.ID, Title: title, Month: 1, Year: 2026}, testClock.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	steps := StepsFor(s, m.ID)
	if len(steps) != 3 || steps[0].Title != "one" || steps[2].Title != "three" {
		t.Fatalf("order wrong: %+v", steps)
	}
}
