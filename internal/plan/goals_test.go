package plan

import (
	"errors"
	"testing"
	"time"

	"dreamplan/internal/store"
)

// seedDream returns a store holding one active dream to hang goals on.
func seedDream(t *testing.T) (store.Store, store.Dream) {
	t.Helper()
	s := store.Default()
	return addDreamReturn(t, s)
}

func addDreamReturn(t *testing.T, s store.Store) (store.Store, store.Dream) {
	t.Helper()
	s, d, err := CreateDream(s, DreamInput{Type: store.DreamTypeDream, Title: "write a book"}, testClock)
	if err != nil {
		t.Fatalf("create dream: %v", err)
	}
	return s, d
}

func addGoal(t *testing.T, s store.Store, dreamID, title string, offset int) (store.Store, store.Goal) {
	t.Helper()
	now := testClock.Add(time.Duration(offset) * time.Second)
	s, g, err := CreateGoal(s, GoalInput{Title: title, DreamID: dreamID}, now)
	if err != nil {
		t.Fatalf("create goal %q: %v", title, err)
	}
	return s, g
}

func TestCreateGoalNeedsActiveDream(t *testing.T) {
	_, _, err := CreateGoal(store.Default(), GoalInput{Title: "finish draft", DreamID: "dream_1"}, testClock)
	if !errors.Is(err, ErrNoEligibleDream) {
		t.Fatalf("got %v, want ErrNoEligibleDream", err)
	}
}

func TestCreateGoalRefusesPrayerAnchor(t *testing.T) {
	s, _ := seedDream(t)
	s, p, err := CreateDream(s, DreamInput{Type: store.DreamTypePrayer, Title: "pray"}, testClock.Add(time.Second))
	if err != nil {
		t.Fatalf("create prayer: %v", err)
	}
	if _, _, err := CreateGoal(s, GoalInput{Title: "finish draft", DreamID: p.ID}, testClock); err == nil {
		t.Fatal("goal anchored on a prayer must be refused")
	}
}

func TestCreateGoalStampsYearAndDefaultsPriority(t *testing.T) {
	s, d := seedDream(t)
	s, g, err := CreateGoal(s, GoalInput{Title: "finish draft", DreamID: d.ID, Priority: "nonsense"}, testClock)
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if g.Year != testClock.Year() {
		t.Fatalf("year = %d, want %d", g.Year, testClock.Year())
	}
	if g.Priority != store.PriorityNone {
		t.Fatalf("priority = %q, want none", g.Priority)
	}

	// Year survives any edit.
	g.Year = 1999
	g.Title = "finish second draft"
	s, err = UpdateGoal(s, g)
	if err != nil {
		t.Fatalf("update goal: %v", err)
	}
	got := s.GoalByID(g.ID)
	if got.Year != testClock.Year() {
		t.Fatalf("year mutated to %d", got.Year)
	}
	if got.Title != "finish second draft" {
		t.Fatalf("title not updated: %q", got.Title)
	}
}

func TestGoalProgressMixesCriterionKinds(t *testing.T) {
	s, d := seedDream(t)
	s, g := addGoal(t, s, d.ID, "get strong", 0)

	s, err := UpdateGoalCriteria(s, g.ID, []CriterionInput{
		{Type: store.CriterionNumeric, Name: "workouts", TargetValue: 10, ActualValue: 5},
		{Type: store.CriterionText, Name: "join a gym", IsCompleted: true},
	}, testClock)
	if err != nil {
		t.Fatalf("set criteria: %v", err)
	}

	// (50 + 100) / 2
	if got := GoalProgress(g, CriteriaFor(s, g.ID)); got != 75 {
		t.Fatalf("progress = %d, want 75", got)
	}
}

func TestGoalProgressEdgeCases(t *testing.T) {
	s, d := seedDream(t)
	s, g := addGoal(t, s, d.ID, "edge", 0)

	if got := GoalProgress(g, CriteriaFor(s, g.ID)); got != 0 {
		t.Fatalf("no criteria: progress = %d, want 0", got)
	}

	s, err := UpdateGoalCriteria(s, g.ID, []CriterionInput{
		{Type: store.CriterionNumeric, Name: "zero target", TargetValue: 0, ActualValue: 50},
		{Type: store.CriterionNumeric, Name: "overshoot", TargetValue: 10, ActualValue: 30},
	}, testClock)
	if err != nil {
		t.Fatalf("set criteria: %v", err)
	}
	// Zero target scores 0, overshoot caps at 100: (0+100)/2.
	if got := GoalProgress(g, CriteriaFor(s, g.ID)); got != 50 {
		t.Fatalf("progress = %d, want 50", got)
	}

	// A negative actual floors at 0 instead of dragging the mean below it.
	s, err = UpdateGoalCriteria(s, g.ID, []CriterionInput{
		{Type: store.CriterionNumeric, Name: "regressed", TargetValue: 10, ActualValue: -5},
	}, testClock)
	if err != nil {
		t.Fatalf("set criteria: %v", err)
	}
	if got := GoalProgress(g, CriteriaFor(s, g.ID)); got != 0 {
		t.Fatalf("negative actual: progress = %d, want 0", got)
	}
}

func TestUpdateGoalCriteriaReplacesOnlyOwnSet(t *testing.T) {
	s, d := seedDream(t)
	s, g1 := addGoal(t, s, d.ID, "one", 0)
	s, g2 := addGoal(t, s, d.ID, "two", 1)

	var err error
	s, err = UpdateGoalCriteria(s, g1.ID, []CriterionInput{{Type: store.CriterionText, Name: "old"}}, testClock)
	if err != nil {
		t.Fatalf("criteria g1: %v", err)
	}
	s, err = UpdateGoalCriteria(s, g2.ID, []CriterionInput{{Type: store.CriterionText, Name: "keep"}}, testClock.Add(time.Second))
	if err != nil {
		t.Fatalf("criteria g2: %v", err)
	}
	s, err = UpdateGoalCriteria(s, g1.ID, []CriterionInput{
		{Type: store.CriterionText, Name: "new a"},
		{Type: store.CriterionText, Name: "new b"},
	}, testClock.Add(2*time.Second))
	if err != nil {
		t.Fatalf("replace criteria g1: %v", err)
	}

	if got := len(CriteriaFor(s, g1.ID)); got != 2 {
		t.Fatalf("g1 criteria = %d, want 2", got)
	}
	if got := CriteriaFor(s, g2.ID); len(got) != 1 || got[0].Name != "keep" {
		t.Fatalf("g2 criteria disturbed: %+v", got)
	}

	// Batch-minted ids must not collide.
	seen := map[string]bool{}
	for _, c := range s.GoalCriteria {
		if seen[c.ID] {
			t.Fatalf("duplicate criterion id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestAchieveGoalStampsTime(t *testing.T) {
	s, d := seedDream(t)
	s, g := addGoal(t, s, d.ID, "done soon", 0)

	done := testClock.Add(48 * time.Hour)
	s, err := AchieveGoal(s, g.ID, done)
	if err != nil {
		t.Fatalf("achieve: %v", err)
	}
	got := s.GoalByID(g.ID)
	if got.Status != store.DreamAchieved || got.AchievedAt == nil || !got.AchievedAt.Equal(done) {
		t.Fatalf("achieve result: %+v", got)
	}

	s, err = ArchiveGoal(s, g.ID)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if s.GoalByID(g.ID).Status != store.DreamArchived {
		t.Fatal("archive did not change status")
	}
}

func TestSortGoalsByDeadlinePutsUndatedLast(t *testing.T) {
	s, d := seedDream(t)
	s, late := addGoal(t, s, d.ID, "late", 0)
	s, early := addGoal(t, s, d.ID, "early", 1)
	s, undated := addGoal(t, s, d.ID, "undated", 2)

	var err error
	late.Deadline = "2026-12-01"
	if s, err = UpdateGoal(s, late); err != nil {
		t.Fatalf("update late: %v", err)
	}
	early.Deadline = "2026-02-01"
	if s, err = UpdateGoal(s, early); err != nil {
		t.Fatalf("update early: %v", err)
	}

	out := SortGoals(s.Goals, SortByDeadline, s.Dreams)
	want := []string{early.ID, late.ID, undated.ID}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, out[i].ID, id)
		}
	}
}

func TestSortGoalsByPriority(t *testing.T) {
	s, d := seedDream(t)
	s, none := addGoal(t, s, d.ID, "none", 0)
	s, g2, err := CreateGoal(s, GoalInput{Title: "strategic", DreamID: d.ID, Priority: store.PriorityStrategicFocus}, testClock.Add(time.Second))
	if err != nil {
		t.Fatalf("create strategic: %v", err)
	}

	out := SortGoals(s.Goals, SortByPriority, s.Dreams)
	if out[0].ID != g2.ID || out[1].ID != none.ID {
		t.Fatalf("priority order wrong: %s, %s", out[0].ID, out[1].ID)
	}
}
