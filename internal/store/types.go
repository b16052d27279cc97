package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type DreamType string

const (
	DreamTypeDream  DreamType = "dream"
	DreamTypePrayer DreamType = "prayer"
)

func (t DreamType) IsValid() bool {
	switch t {
	case DreamTypeDream, DreamTypePrayer:
		return true
	default:
		return false
	}
}

type DreamStatus string

const (
	DreamActive   DreamStatus = "active"
	DreamArchived DreamStatus = "archived"
	DreamAchieved DreamStatus = "achieved"
)

type PeriodKind string

const (
	PeriodYears PeriodKind = "years"
	PeriodDate  PeriodKind = "date"
)

// Sphere is a life-area tag for dreams.
type Sphere struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IconID    string `json:"iconId"`
	IsDefault bool   `json:"isDefault"`
	SortOrder int64  `json:"sortOrder"`
}

type Dream struct {
	ID          string      `json:"id"`
	Type        DreamType   `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	SphereID    string      `json:"sphereId,omitempty"` // empty for prayers
	PeriodKind  PeriodKind  `json:"periodType,omitempty"`
	PeriodYears int         `json:"periodYears,omitempty"`
	PeriodDate  string      `json:"periodDate,omitempty"`
	PrayerText  string      `json:"prayerText,omitempty"`
	CoverImage  string      `json:"coverImage,omitempty"`
	IsFocused   bool        `json:"isFocused"`
	IsLeading   bool        `json:"isLeading"`
	Status      DreamStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	AchievedAt  *time.Time  `json:"achievedAt,omitempty"`
	SortOrder   int64       `json:"sortOrder"`
}

type GoalPriority string

const (
	PriorityNone           GoalPriority = "none"
	PriorityImportant      GoalPriority = "important"
	PriorityStrategicFocus GoalPriority = "strategic_focus"
)

func (p GoalPriority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityImportant, PriorityStrategicFocus:
		return true
	default:
		return false
	}
}

type Goal struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	DreamID     string       `json:"dreamId"`
	Year        int          `json:"year"`
	Priority    GoalPriority `json:"priority"`
	Deadline    string       `json:"deadline,omitempty"` // day key
	RewardText  string       `json:"rewardText,omitempty"`
	RewardImage string       `json:"rewardImage,omitempty"`
	Status      DreamStatus  `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	AchievedAt  *time.Time   `json:"achievedAt,omitempty"`
}

type CriterionType string

const (
	CriterionNumeric CriterionType = "numeric"
	CriterionText    CriterionType = "text"
)

// Criterion measures goal completion: numeric plan/fact or text+checkbox.
type Criterion struct {
	ID          string        `json:"id"`
	GoalID      string        `json:"goalId"`
	Type        CriterionType `json:"type"`
	Name        string        `json:"name"`
	NumericType string        `json:"numericType,omitempty"`
	Unit        string        `json:"unit,omitempty"`
	TargetValue float64       `json:"targetValue,omitempty"`
	ActualValue float64       `json:"actualValue,omitempty"`
	IsCompleted bool          `json:"isCompleted,omitempty"`
}

type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

func (q Quarter) IsValid() bool {
	switch q {
	case Q1, Q2, Q3, Q4:
		return true
	default:
		return false
	}
}

// Months returns the 1-based calendar months covered by the quarter.
func (q Quarter) Months() []int {
	switch q {
	case Q1:
		return []int{1, 2, 3}
	case Q2:
		return []int{4, 5, 6}
	case Q3:
		return []int{7, 8, 9}
	case Q4:
		return []int{10, 11, 12}
	default:
		return nil
	}
}

// Contains reports whether the 1-based month falls inside the quarter.
func (q Quarter) Contains(month int) bool {
	for _, m := range q.Months() {
		if m == month {
			return true
		}
	}
	return false
}

// QuarterOf returns the quarter containing the 1-based month.
func QuarterOf(month int) Quarter {
	switch {
	case month <= 3:
		return Q1
	case month <= 6:
		return Q2
	case month <= 9:
		return Q3
	default:
		return Q4
	}
}

type MilestoneStatus string

const (
	MilestonePending MilestoneStatus = "pending"
	MilestonePassed  MilestoneStatus = "passed"
	MilestoneFailed  MilestoneStatus = "failed"
)

func (s MilestoneStatus) IsValid() bool {
	switch s {
	case MilestonePending, MilestonePassed, MilestoneFailed:
		return true
	default:
		return false
	}
}

// Milestone is the quarterly checkpoint of a goal. At most one exists per
// (GoalID, Quarter, Year).
type Milestone struct {
	ID          string          `json:"id"`
	GoalID      string          `json:"goalId"`
	Quarter     Quarter         `json:"quarter"`
	Year        int             `json:"year"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Criteria    string          `json:"criteria,omitempty"`
	Deadline    string          `json:"deadline,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Status      MilestoneStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// Step is a monthly sub-task of a milestone.
type Step struct {
	ID          string     `json:"id"`
	MilestoneID string     `json:"milestoneId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Month       int        `json:"month"` // 1..12, inside the milestone's quarter
	Year        int        `json:"year"`
	Deadline    string     `json:"deadline,omitempty"`
	Status      StepStatus `json:"status"`
	SortOrder   int64      `json:"sortOrder"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ActionPriority string

const (
	ActionCanWait      ActionPriority = "can_wait"
	ActionNotImportant ActionPriority = "not_important"
	ActionImportant    ActionPriority = "important"
	ActionCritical     ActionPriority = "critical"
	ActionUrgent       ActionPriority = "urgent"
)

type ActionStrength string

const (
	StrengthPositive ActionStrength = "positive"
	StrengthNeutral  ActionStrength = "neutral"
	StrengthNegative ActionStrength = "negative"
)

type RepeatType string

const (
	RepeatNone     RepeatType = "none"
	RepeatDaily    RepeatType = "daily"
	RepeatWeekly   RepeatType = "weekly"
	RepeatMonthly  RepeatType = "monthly"
	RepeatWeekdays RepeatType = "weekdays"
	RepeatCustom   RepeatType = "custom"
)

type ActionStatus string

const (
	ActionActive    ActionStatus = "active"
	ActionDone      ActionStatus = "done"
	ActionCancelled ActionStatus = "cancelled"
)

type Subtask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Action is a dated or undated to-do item. StepID is a weak reference:
// the step may be gone and the action still stands.
type Action struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Date           string         `json:"date,omitempty"` // day key; empty means the undated backlog
	Time           string         `json:"time,omitempty"` // HH:MM
	Deadline       string         `json:"deadline,omitempty"`
	Priority       ActionPriority `json:"priority"`
	Strength       ActionStrength `json:"strength"`
	StepID         string         `json:"stepId,omitempty"`
	RepeatType     RepeatType     `json:"repeatType"`
	RepeatInterval int            `json:"repeatInterval,omitempty"`
	Subtasks       []Subtask      `json:"subtasks,omitempty"`
	Status         ActionStatus   `json:"status"`
	SortOrder      int64          `json:"sortOrder"`
	CreatedAt      time.Time      `json:"createdAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
}

type Activity struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon,omitempty"`
	Color      string    `json:"color,omitempty"`
	IsFavorite bool      `json:"isFavorite"`
	DailyGoal  int       `json:"dailyGoal,omitempty"` // minutes; 0 means unset
	IsArchived bool      `json:"isArchived,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Session is one timed occurrence of an activity. EndAt is nil while the
// timer runs; at most one session per store is running.
type Session struct {
	ID              string     `json:"id"`
	ActivityID      string     `json:"activityId"`
	StartAt         time.Time  `json:"startAt"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	Date            string     `json:"date"` // day key derived from StartAt
	DurationMinutes int        `json:"durationMinutes"`
}

func (s Session) Running() bool { return s.EndAt == nil }

type TransactionType string

const (
	TxIncome  TransactionType = "income"
	TxExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TxIncome, TxExpense:
		return true
	default:
		return false
	}
}

type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Icon  string          `json:"icon,omitempty"`
	Color string          `json:"color,omitempty"`
}

type FundRule string

const (
	FundRulePercent FundRule = "percent"
	FundRuleFixed   FundRule = "fixed"
	FundRuleChoice  FundRule = "choice"
)

func (r FundRule) IsValid() bool {
	switch r {
	case FundRulePercent, FundRuleFixed, FundRuleChoice:
		return true
	default:
		return false
	}
}

// Fund is an earmarked savings bucket. Balance is a running total mutated
// by transaction side effects, not recomputable from the ledger.
type Fund struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	RuleType  FundRule        `json:"ruleType"`
	RuleValue decimal.Decimal `json:"ruleValue,omitempty"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

type Transaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID string          `json:"categoryId"`
	Comment    string          `json:"comment,omitempty"`
	Date       string          `json:"date"` // day key
	FundID     string          `json:"fundId,omitempty"` // expenses only
	CreatedAt  time.Time       `json:"createdAt"`
}
