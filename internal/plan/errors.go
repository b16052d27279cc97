package plan

import (
	"fmt"

	"dreamplan/internal/store"
)

// MaxFocusedDreams is the hard cap on dreams occupying focus slots.
const MaxFocusedDreams = 3

// FocusLimitError indicates all focus slots are taken. The caller must
// free one explicitly via ReplaceFocus.
type FocusLimitError struct {
	Limit int
}

func (e FocusLimitError) Error() string {
	return fmt.Sprintf("all %d focus slots are taken; replace one instead", e.Limit)
}

// SphereInUseError indicates a sphere still referenced by an active dream.
type SphereInUseError struct {
	SphereID string
}

func (e SphereInUseError) Error() string {
	return fmt.Sprintf("sphere %s has an active dream and cannot be deleted", e.SphereID)
}

// NotFocusedError indicates a dream must occupy a focus slot first.
type NotFocusedError struct {
	DreamID string
}

func (e NotFocusedError) Error() string {
	return fmt.Sprintf("dream %s is not focused", e.DreamID)
}

// MilestoneExistsError indicates the (goal, quarter, year) slot is taken.
type MilestoneExistsError struct {
	GoalID  string
	Quarter store.Quarter
	Year    int
}

func (e MilestoneExistsError) Error() string {
	return fmt.Sprintf("goal %s already has a %s %d milestone", e.GoalID, e.Quarter, e.Year)
}

// MonthOutsideQuarterError indicates a step month outside its milestone's quarter.
type MonthOutsideQuarterError struct {
	Month   int
	Quarter store.Quarter
}

func (e MonthOutsideQuarterError) Error() string {
	return fmt.Sprintf("month %d is outside quarter %s", e.Month, e.Quarter)
}
