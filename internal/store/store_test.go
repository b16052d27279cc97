package store

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDefaultStartsWithFiveSpheres(t *testing.T) {
	s := Default()
	if len(s.Spheres) != 5 {
		t.Fatalf("default spheres = %d, want 5", len(s.Spheres))
	}
	for _, sp := range s.Spheres {
		if !sp.IsDefault {
			t.Fatalf("sphere %s not marked default", sp.ID)
		}
	}
	if s.Activities != nil || s.FinanceCategories != nil {
		t.Fatal("lazy collections must stay nil on a fresh store")
	}
}

func TestMigrateFillsMissingPlannerCollections(t *testing.T) {
	s := Migrate(Store{})
	if s.Dreams == nil || s.Goals == nil || s.GoalCriteria == nil ||
		s.Milestones == nil || s.Steps == nil || s.Actions == nil || s.Spheres == nil {
		t.Fatal("planner collections must be non-nil after migrate")
	}
	if s.Activities != nil || s.Sessions != nil || s.Funds != nil {
		t.Fatal("migrate must not touch lazily seeded collections")
	}
}

func TestMigrateKeepsExistingData(t *testing.T) {
	in := Store{Dreams: []Dream{{ID: "dream_1", Title: "sail"}}}
	out := Migrate(in)
	if len(out.Dreams) != 1 || out.Dreams[0].ID != "dream_1" {
		t.Fatalf("migrate rewrote dreams: %+v", out.Dreams)
	}
}

func TestNewIDUsesMillisecondTimestamp(t *testing.T) {
	now := time.UnixMilli(1724800000000)
	if got := NewID("dream", now); got != "dream_1724800000000" {
		t.Fatalf("NewID = %q", got)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	day := time.Date(2026, 3, 9, 17, 45, 0, 0, time.Local)
	key := DayKey(day)
	if key != "2026-03-09" {
		t.Fatalf("DayKey = %q", key)
	}
	back, err := ParseDayKey(key)
	if err != nil {
		t.Fatalf("parse day key: %v", err)
	}
	if back.Hour() != 0 || back.Day() != 9 {
		t.Fatalf("parsed day = %v, want local midnight of the same day", back)
	}
	if _, err := ParseDayKey("03/09/2026"); err == nil {
		t.Fatal("expected error for malformed key")
	}
}

func TestQuarterMonths(t *testing.T) {
	if QuarterOf(1) != Q1 || QuarterOf(6) != Q2 || QuarterOf(9) != Q3 || QuarterOf(12) != Q4 {
		t.Fatal("quarter boundaries wrong")
	}
	if !Q2.Contains(4) || Q2.Contains(7) {
		t.Fatal("Q2 must contain April and not July")
	}
	if Quarter("Q5").IsValid() {
		t.Fatal("Q5 must be invalid")
	}
}

func TestRunningSession(t *testing.T) {
	end := time.Now()
	s := Store{Sessions: []Session{
		{ID: "s1", ActivityID: "a1", EndAt: &end},
		{ID: "s2", ActivityID: "a2"},
	}}
	run := s.RunningSession()
	if run == nil || run.ID != "s2" {
		t.Fatalf("running session = %+v, want s2", run)
	}
	run.ActivityID = "mutated"
	if s.Sessions[1].ActivityID != "a2" {
		t.Fatal("RunningSession must return a copy")
	}
}

func TestLookupsReturnCopies(t *testing.T) {
	s := Store{Dreams: []Dream{{ID: "dream_1", Title: "sail"}}}
	d := s.DreamByID("dream_1")
	if d == nil {
		t.Fatal("dream not found")
	}
	d.Title = "mutated"
	if s.Dreams[0].Title != "sail" {
		t.Fatal("DreamByID must return a copy")
	}
	if s.DreamByID("nope") != nil {
		t.Fatal("missing id must return nil")
	}
}

func TestSnapshotJSONKeepsNilCollectionsAbsent(t *testing.T) {
	raw, err := json.Marshal(Default())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["activities"]; ok {
		t.Fatal("nil activities must not serialize")
	}
	if _, ok := m["dreams"]; !ok {
		t.Fatal("dreams must always serialize")
	}
}
