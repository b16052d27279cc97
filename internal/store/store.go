package store

import (
	"fmt"
	"time"
)

// Store is the whole application snapshot. Mutation operations never edit
// a snapshot in place: they return a replacement with the changed
// collections copied and the rest shared.
//
// The lazily seeded collections (finance trio, activities, sessions) keep
// the nil/empty distinction: nil means the feature was never used and its
// defaults may still be seeded, an empty slice means the user emptied it.
type Store struct {
	PIN     string   `json:"pin,omitempty"`
	Spheres []Sphere `json:"spheres"`
	Dreams  []Dream  `json:"dreams"`

	Goals        []Goal      `json:"goals"`
	GoalCriteria []Criterion `json:"goalCriteria"`
	Milestones   []Milestone `json:"milestones"`
	Steps        []Step      `json:"steps"`

	Actions []Action `json:"actions"`

	Activities []Activity `json:"activities,omitempty"`
	Sessions   []Session  `json:"sessions,omitempty"`

	FinanceCategories []Category    `json:"financeCategories,omitempty"`
	Funds             []Fund        `json:"funds,omitempty"`
	Transactions      []Transaction `json:"transactions,omitempty"`
}

// DefaultSpheres are the five life areas every fresh store starts with.
func DefaultSpheres() []Sphere {
	return []Sphere{
		{ID: "sphere_money", Name: "Finance", IconID: "wallet", IsDefault: true, SortOrder: 1},
		{ID: "sphere_health", Name: "Health", IconID: "heart", IsDefault: true, SortOrder: 2},
		{ID: "sphere_business", Name: "Business", IconID: "briefcase", IsDefault: true, SortOrder: 3},
		{ID: "sphere_relationships", Name: "Relationships", IconID: "heart", IsDefault: true, SortOrder: 4},
		{ID: "sphere_growth", Name: "Growth", IconID: "book", IsDefault: true, SortOrder: 5},
	}
}

// Default returns the bootstrap store for a first run: default spheres,
// everything else empty. Finance and productivity collections stay nil so
// their defaults seed lazily on first use.
func Default() Store {
	return Store{
		Spheres:      DefaultSpheres(),
		Dreams:       []Dream{},
		Goals:        []Goal{},
		GoalCriteria: []Criterion{},
		Milestones:   []Milestone{},
		Steps:        []Step{},
		Actions:      []Action{},
	}
}

// Migrate fills planner collections absent from a loaded snapshot with
// empty sequences. Additive and order-independent; safe to run on every
// load. Lazily seeded collections are left nil on purpose.
func Migrate(s Store) Store {
	if s.Spheres == nil {
		s.Spheres = []Sphere{}
	}
	if s.Dreams == nil {
		s.Dreams = []Dream{}
	}
	if s.Goals == nil {
		s.Goals = []Goal{}
	}
	if s.GoalCriteria == nil {
		s.GoalCriteria = []Criterion{}
	}
	if s.Milestones == nil {
		s.Milestones = []Milestone{}
	}
	if s.Steps == nil {
		s.Steps = []Step{}
	}
	if s.Actions == nil {
		s.Actions = []Action{}
	}
	return s
}

// NewID mints an entity id from the creation timestamp, e.g. "dream_1724800000000".
func NewID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, now.UnixMilli())
}

// DayKey formats t as the day-resolution bucket key used across the store.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDayKey parses a day key back into a local midnight time.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day key %q: %w", key, err)
	}
	return t, nil
}

// DreamByID returns the dream with the given id, or nil.
func (s Store) DreamByID(id string) *Dream {
	for i := range s.Dreams {
		if s.Dreams[i].ID == id {
			d := s.Dreams[i]
			return &d
		}
	}
	return nil
}

// GoalByID returns the goal with the given id, or nil.
func (s Store) GoalByID(id string) *Goal {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			g := s.Goals[i]
			return &g
		}
	}
	return nil
}

// MilestoneByID returns the milestone with the given id, or nil.
func (s Store) MilestoneByID(id string) *Milestone {
	for i := range s.Milestones {
		if s.Milestones[i].ID == id {
			m := s.Milestones[i]
			return &m
		}
	}
	return nil
}

// ActionByID returns the action with the given id, or nil.
func (s Store) ActionByID(id string) *Action {
	for i := range s.Actions {
		if s.Actions[i].ID == id {
			a := s.Actions[i]
			return &a
		}
	}
	return nil
}

// ActivityByID returns the activity with the given id, or nil.
func (s Store) ActivityByID(id string) *Activity {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			a := s.Activities[i]
			return &a
		}
	}
	return nil
}

// FundByID returns the fund with the given id, or nil.
func (s Store) FundByID(id string) *Fund {
	for i := range s.Funds {
		if s.Funds[i].ID == id {
			f := s.Funds[i]
			return &f
		}
	}
	return nil
}

// CategoryByID returns the finance category with the given id, or nil.
func (s Store) CategoryByID(id string) *Category {
	for i := range s.FinanceCategories {
		if s.FinanceCategories[i].ID == id {
			c := s.FinanceCategories[i]
			return &c
		}
	}
	return nil
}

// RunningSession returns the single session with no end time, or nil.
func (s Store) RunningSession() *Session {
	for i := range s.Sessions {
		if s.Sessions[i].Running() {
			sess := s.Sessions[i]
			return &sess
		}
	}
	return nil
}
