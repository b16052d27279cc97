package plan

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"dreamplan/internal/store"
)

// ErrNoEligibleDream refuses goal creation while no active dream of type
// "dream" exists to anchor it.
var ErrNoEligibleDream = errors.New("no active dream to link the goal to")

type GoalInput struct {
	Title       string
	Description string
	Icon        string
	DreamID     string
	Priority    store.GoalPriority
	Deadline    string
	RewardText  string
	RewardImage string
}

// CreateGoal appends a yearly goal anchored to an active dream. The year
// is stamped from the wall clock and never changes afterwards.
func CreateGoal(s store.Store, in GoalInput, now time.Time) (store.Store, store.Goal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return s, store.Goal{}, err
	}
	if !hasEligibleDream(s) {
		return s, store.Goal{}, ErrNoEligibleDream
	}
	d := s.DreamByID(in.DreamID)
	if d == nil || d.Status != store.DreamActive || d.Type != store.DreamTypeDream {
		return s, store.Goal{}, fmt.Errorf("dream %s is not an active dream", in.DreamID)
	}
	priority := in.Priority
	if !priority.IsValid() {
		priority = store.PriorityNone
	}

	g := store.Goal{
		ID:          store.NewID("goal", now),
		Title:       title,
		Description: in.Description,
		Icon:        in.Icon,
		DreamID:     in.DreamID,
		Year:        now.Year(),
		Priority:    priority,
		Deadline:    in.Deadline,
		RewardText:  in.RewardText,
		RewardImage: in.RewardImage,
		Status:      store.DreamActive,
		CreatedAt:   now,
	}
	s.Goals = append(append([]store.Goal{}, s.Goals...), g)
	return s, g, nil
}

func hasEligibleDream(s store.Store) bool {
	for _, d := range s.Dreams {
		if d.Status == store.DreamActive && d.Type == store.DreamTypeDream {
			return true
		}
	}
	return false
}

// UpdateGoal replaces the goal with the same id. Year is immutable.
func UpdateGoal(s store.Store, g store.Goal) (store.Store, error) {
	out := make([]store.Goal, len(s.Goals))
	found := false
	for i, cur := range s.Goals {
		if cur.ID == g.ID {
			g.Year = cur.Year
			g.CreatedAt = cur.CreatedAt
			cur = g
			found = true
		}
		out[i] = cur
	}
	if !found {
		return s, fmt.Errorf("goal %s not found", g.ID)
	}
	s.Goals = out
	return s, nil
}

// ArchiveGoal soft-removes the goal from the active list.
func ArchiveGoal(s store.Store, goalID string) (store.Store, error) {
	return setGoalStatus(s, goalID, store.DreamArchived, nil)
}

// AchieveGoal marks the goal achieved, stamping the moment.
func AchieveGoal(s store.Store, goalID string, now time.Time) (store.Store, error) {
	return setGoalStatus(s, goalID, store.DreamAchieved, &now)
}

func setGoalStatus(s store.Store, goalID string, status store.DreamStatus, achievedAt *time.Time) (store.Store, error) {
	out := make([]store.Goal, len(s.Goals))
	found := false
	for i, g := range s.Goals {
		if g.ID == goalID {
			g.Status = status
			if achievedAt != nil {
				g.AchievedAt = achievedAt
			}
			found = true
		}
		out[i] = g
	}
	if !found {
		return s, fmt.Errorf("goal %s not found", goalID)
	}
	s.Goals = out
	return s, nil
}

type CriterionInput struct {
	Type        store.CriterionType
	Name        string
	NumericType string
	Unit        string
	TargetValue float64
	ActualValue float64
	IsCompleted bool
}

// UpdateGoalCriteria replaces the goal's full criterion set atomically.
// The edit form resubmits the complete list, so the old set for this goal
// is discarded and the new one inserted; other goals' criteria are untouched.
func UpdateGoalCriteria(s store.Store, goalID string, criteria []CriterionInput, now time.Time) (store.Store, error) {
	if s.GoalByID(goalID) == nil {
		return s, fmt.Errorf("goal %s not found", goalID)
	}

	out := s.GoalCriteria[:0:0]
	for _, c := range s.GoalCriteria {
		if c.GoalID != goalID {
			out = append(out, c)
		}
	}
	for i, in := range criteria {
		name, err := normalizeTitle(in.Name)
		if err != nil {
			return s, err
		}
		out = append(out, store.Criterion{
			// Offset per item so batch-minted ids stay unique.
			ID:          store.NewID("crit", now.Add(time.Duration(i)*time.Millisecond)),
			GoalID:      goalID,
			Type:        in.Type,
			Name:        name,
			NumericType: in.NumericType,
			Unit:        in.Unit,
			TargetValue: in.TargetValue,
			ActualValue: in.ActualValue,
			IsCompleted: in.IsCompleted,
		})
	}
	s.GoalCriteria = out
	return s, nil
}

// UpdateCriterion replaces a single criterion in place (progress edits on
// the goal card update actual values and checkboxes one at a time).
func UpdateCriterion(s store.Store, c store.Criterion) (store.Store, error) {
	out := make([]store.Criterion, len(s.GoalCriteria))
	found := false
	for i, cur := range s.GoalCriteria {
		if cur.ID == c.ID {
			cur = c
			found = true
		}
		out[i] = cur
	}
	if !found {
		return s, fmt.Errorf("criterion %s not found", c.ID)
	}
	s.GoalCriteria = out
	return s, nil
}

// CriteriaFor returns the goal's criteria in insertion order.
func CriteriaFor(s store.Store, goalID string) []store.Criterion {
	var out []store.Criterion
	for _, c := range s.GoalCriteria {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	return out
}

// GoalProgress is the rounded mean of per-criterion percentages. Numeric
// criteria score min(100, actual/target*100) with a zero or absent target
// scoring 0; text criteria score 100 when checked. Criteria with
// different units thereby contribute equally. No criteria means 0.
func GoalProgress(goal store.Goal, criteria []store.Criterion) int {
	var own []store.Criterion
	for _, c := range criteria {
		if c.GoalID == goal.ID {
			own = append(own, c)
		}
	}
	if len(own) == 0 {
		return 0
	}

	total := 0.0
	for _, c := range own {
		total += criterionProgress(c)
	}
	return int(math.Round(total / float64(len(own))))
}

func criterionProgress(c store.Criterion) float64 {
	if c.Type == store.CriterionNumeric {
		if c.TargetValue == 0 {
			return 0
		}
		return math.Max(0, math.Min(100, c.ActualValue/c.TargetValue*100))
	}
	if c.IsCompleted {
		return 100
	}
	return 0
}

// GoalSort names a goal display order.
type GoalSort string

const (
	SortByDeadline GoalSort = "deadline"
	SortByDream    GoalSort = "dream"
	SortByPriority GoalSort = "priority"
)

// SortGoals returns goals in the requested display order. Goals without a
// deadline sort last; unknown dreams sort as empty titles.
func SortGoals(goals []store.Goal, by GoalSort, dreams []store.Dream) []store.Goal {
	titles := make(map[string]string, len(dreams))
	for _, d := range dreams {
		titles[d.ID] = d.Title
	}
	priorityRank := map[store.GoalPriority]int{
		store.PriorityStrategicFocus: 0,
		store.PriorityImportant:      1,
		store.PriorityNone:           2,
	}

	out := append([]store.Goal{}, goals...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case SortByDeadline:
			if a.Deadline == "" && b.Deadline == "" {
				return false
			}
			if a.Deadline == "" {
				return false
			}
			if b.Deadline == "" {
				return true
			}
			return a.Deadline < b.Deadline
		case SortByDream:
			return strings.Compare(titles[a.DreamID], titles[b.DreamID]) < 0
		case SortByPriority:
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		default:
			return false
		}
	})
	return out
}
