package models

import "time"

type GoalType string

const (
	GoalChecklist GoalType = "checklist"
	GoalNumeric   GoalType = "numeric"
	GoalTimeBased GoalType = "time-based"
	GoalHabit     GoalType = "habit"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalPaused    GoalStatus = "paused"
	GoalCompleted GoalStatus = "completed"
)

// Goal task statuses.
const (
	TaskNotStarted = "not-started"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

// GoalTask is a child task of a goal. Completed mirrors Status and is kept in
// sync by the goal service whenever the status changes.
type GoalTask struct {
	ID        string    `bson:"id" json:"id"`
	Content   string    `bson:"content" json:"content"`
	Status    string    `bson:"status" json:"status"` // not-started | in-progress | completed
	Completed bool      `bson:"completed" json:"completed"`
	Order     int       `bson:"order" json:"order"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Goal owns an ordered list of tasks. Progress is derived from the type
// formula and recomputed after every task mutation; it only deviates when a
// caller explicitly overrides it (force-complete).
type Goal struct {
	ID           string     `bson:"id" json:"id"`
	UserID       string     `bson:"user_id" json:"user_id"`
	Title        string     `bson:"title" json:"title"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
	Type         GoalType   `bson:"type" json:"type"`
	Status       GoalStatus `bson:"status" json:"status"`
	Progress     int        `bson:"progress" json:"progress"` // 0-100
	Tasks        []GoalTask `bson:"tasks" json:"tasks"`
	TargetValue  float64    `bson:"target_value,omitempty" json:"target_value,omitempty"`
	CurrentValue float64    `bson:"current_value,omitempty" json:"current_value,omitempty"`
	TargetDate   *time.Time `bson:"target_date,omitempty" json:"target_date,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
