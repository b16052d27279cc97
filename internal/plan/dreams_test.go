package plan

import (
	"errors"
	"testing"
	"time"

	"dreamplan/internal/store"
)

var testClock = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

// addDream creates a dream with a unique id by offsetting the clock.
func addDream(t *testing.T, s store.Store, title string, offset int) (store.Store, store.Dream) {
	t.Helper()
	now := testClock.Add(time.Duration(offset) * time.Second)
	s, d, err := CreateDream(s, DreamInput{Type: store.DreamTypeDream, Title: title}, now)
	if err != nil {
		t.Fatalf("create dream %q: %v", title, err)
	}
	return s, d
}

func TestCreateDreamRequiresTitle(t *testing.T) {
	_, _, err := CreateDream(store.Default(), DreamInput{Type: store.DreamTypeDream, Title: "  "}, testClock)
	if err == nil {
		t.Fatal("expected refusal for blank title")
	}
}

func TestCreatePrayerDropsSphereAndPeriod(t *testing.T) {
	s := store.Default()
	s, p, err := CreateDream(s, DreamInput{
		Type:       store.DreamTypePrayer,
		Title:      "peace at home",
		SphereID:   "sphere_health",
		PeriodKind: store.PeriodYears,
	}, testClock)
	if err != nil {
		t.Fatalf("create prayer: %v", err)
	}
	if p.SphereID != "" || p.PeriodKind != "" || p.PeriodYears != 0 {
		t.Fatalf("prayer kept sphere/period: %+v", p)
	}
	_ = s
}

func TestCreateDreamSortOrderGrows(t *testing.T) {
	s := store.Default()
	s, d1 := addDream(t, s, "first", 0)
	s, d2 := addDream(t, s, "second", 1)
	if d2.SortOrder <= d1.SortOrder {
		t.Fatalf("sortOrder not increasing: %d then %d", d1.SortOrder, d2.SortOrder)
	}
	_ = s
}

func TestFirstFocusedDreamLeads(t *testing.T) {
	s := store.Default()
	s, d1 := addDream(t, s, "sail the world", 0)

	s, err := ToggleDreamFocus(s, d1.ID)
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	got := s.DreamByID(d1.ID)
	if !got.IsFocused || !got.IsLeading {
		t.Fatalf("first focused dream must lead: %+v", got)
	}

	// Unfocus clears both flags.
	s, err = ToggleDreamFocus(s, d1.ID)
	if err != nil {
		t.Fatalf("unfocus: %v", err)
	}
	got = s.DreamByID(d1.ID)
	if got.IsFocused || got.IsLeading {
		t.Fatalf("unfocus must clear both flags: %+v", got)
	}
}

func TestFocusLimitIsThree(t *testing.T) {
	s := store.Default()
	var ids []string
	for i, title := range []string{"a", "b", "c", "d"} {
		var d store.Dream
		s, d = addDream(t, s, title, i)
		ids = append(ids, d.ID)
	}
	var err error
	for _, id := range ids[:3] {
		if s, err = ToggleDreamFocus(s, id); err != nil {
			t.Fatalf("focus %s: %v", id, err)
		}
	}

	_, err = ToggleDreamFocus(s, ids[3])
	var limitErr FocusLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("fourth focus: got %v, want FocusLimitError", err)
	}
	if limitErr.Limit != MaxFocusedDreams {
		t.Fatalf("limit = %d, want %d", limitErr.Limit, MaxFocusedDreams)
	}
	if len(FocusedDreams(s)) != 3 {
		t.Fatalf("focused = %d after refusal, want 3", len(FocusedDreams(s)))
	}
}

func TestReplaceFocusCarriesLeading(t *testing.T) {
	s := store.Default()
	var ids []string
	for i, title := range []string{"a", "b", "c", "d"} {
		var d store.Dream
		s, d = addDream(t, s, title, i)
		ids = append(ids, d.ID)
	}
	var err error
	for _, id := range ids[:3] {
		if s, err = ToggleDreamFocus(s, id); err != nil {
			t.Fatalf("focus %s: %v", id, err)
		}
	}

	// ids[0] leads; swapping it out hands leadership to the replacement.
	s, err = ReplaceFocus(s, ids[0], ids[3])
	if err != nil {
		t.Fatalf("replace focus: %v", err)
	}
	if old := s.DreamByID(ids[0]); old.IsFocused || old.IsLeading {
		t.Fatalf("old dream kept flags: %+v", old)
	}
	nd := s.DreamByID(ids[3])
	if !nd.IsFocused || !nd.IsLeading {
		t.Fatalf("replacement must be focused and leading: %+v", nd)
	}
	if len(FocusedDreams(s)) != 3 {
		t.Fatalf("focused = %d, want 3", len(FocusedDreams(s)))
	}
}

func TestReplaceFocusRefusesUnfocusedSource(t *testing.T) {
	s := store.Default()
	s, d1 := addDream(t, s, "a", 0)
	s, d2 := addDream(t, s, "b", 1)

	_, err := ReplaceFocus(s, d1.ID, d2.ID)
	var nf NotFocusedError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFocusedError", err)
	}
}

func TestSetLeadingDream(t *testing.T) {
	s := store.Default()
	s, d1 := addDream(t, s, "a", 0)
	s, d2 := addDream(t, s, "b", 1)

	var err error
	if s, err = ToggleDreamFocus(s, d1.ID); err != nil {
		t.Fatalf("focus a: %v", err)
	}
	if s, err = ToggleDreamFocus(s, d2.ID); err != nil {
		t.Fatalf("focus b: %v", err)
	}

	s, err = SetLeadingDream(s, d2.ID)
	if err != nil {
		t.Fatalf("set leading: %v", err)
	}
	if s.DreamByID(d1.ID).IsLeading {
		t.Fatal("previous leader kept the flag")
	}
	if !s.DreamByID(d2.ID).IsLeading {
		t.Fatal("new leader missing the flag")
	}

	// An unfocused dream cannot lead.
	s, d3 := addDream(t, s, "c", 2)
	_, err = SetLeadingDream(s, d3.ID)
	var nf NotFocusedError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFocusedError", err)
	}
}

func TestArchiveFreesFocusSlot(t *testing.T) {
	s := store.Default()
	s, d1 := addDream(t, s, "a", 0)

	var err error
	if s, err = ToggleDreamFocus(s, d1.ID); err != nil {
		t.Fatalf("focus: %v", err)
	}
	s, err = ArchiveDream(s, d1.ID)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	got := s.DreamByID(d1.ID)
	if got.Status != store.DreamArchived || got.IsFocused || got.IsLeading {
		t.Fatalf("archive left flags: %+v", got)
	}
	if len(FocusedDreams(s)) != 0 {
		t.Fatal("slot not freed")
	}
}

func TestAchieveStampsTime(t *testing.T) {
	s := store.Default()
	s, d1 := addDream(t, s, "a", 0)

	done := testClock.Add(time.Hour)
	s, err := AchieveDream(s, d1.ID, done)
	if err != nil {
		t.Fatalf("achieve: %v", err)
	}
	got := s.DreamByID(d1.ID)
	if got.Status != store.DreamAchieved || got.AchievedAt == nil || !got.AchievedAt.Equal(done) {
		t.Fatalf("achieve result: %+v", got)
	}
}

func TestSortDreamsOrder(t *testing.T) {
	s := store.Default()
	s, plain := addDream(t, s, "plain", 0)
	s, focused := addDream(t, s, "focused", 1)
	s, leader := addDream(t, s, "leader", 2)
	s, prayer, err := CreateDream(s, DreamInput{Type: store.DreamTypePrayer, Title: "pray"}, testClock.Add(3*time.Second))
	if err != nil {
		t.Fatalf("create prayer: %v", err)
	}

	if s, err = ToggleDreamFocus(s, leader.ID); err != nil {
		t.Fatalf("focus leader: %v", err)
	}
	if s, err = ToggleDreamFocus(s, focused.ID); err != nil {
		t.Fatalf("focus second: %v", err)
	}

	out := SortDreams(s.Dreams)
	wantOrder := []string{leader.ID, focused.ID, plain.ID, prayer.ID}
	for i, want := range wantOrder {
		if out[i].ID != want {
			t.Fatalf("position %d = %s, want %s", i, out[i].ID, want)
		}
	}
}

func TestDeleteSphereGuardsActiveDreams(t *testing.T) {
	s := store.Default()
	s, d, err := CreateDream(s, DreamInput{Type: store.DreamTypeDream, Title: "get fit", SphereID: "sphere_health"}, testClock)
	if err != nil {
		t.Fatalf("create dream: %v", err)
	}

	_, err = DeleteSphere(s, "sphere_health")
	var inUse SphereInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("got %v, want SphereInUseError", err)
	}

	// Archiving the dream releases the sphere.
	s, err = ArchiveDream(s, d.ID)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	s, err = DeleteSphere(s, "sphere_health")
	if err != nil {
		t.Fatalf("delete sphere: %v", err)
	}
	for _, sp := range s.Spheres {
		if sp.ID == "sphere_health" {
			t.Fatal("sphere still present")
		}
	}
}

func TestCreateSphere(t *testing.T) {
	s := store.Default()
	s, sp, err := CreateSphere(s, "Travel", "plane", testClock)
	if err != nil {
		t.Fatalf("create sphere: %v", err)
	}
	if sp.SortOrder != 6 {
		t.Fatalf("sortOrder = %d, want 6", sp.SortOrder)
	}
	if len(s.Spheres) != 6 {
		t.Fatalf("spheres = %d, want 6", len(s.Spheres))
	}
}
