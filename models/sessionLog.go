package models

import "time"

// Timer phases. Any phase counts toward the daily streak, breaks included.
const (
	PhaseWork       = "work"
	PhaseShortBreak = "shortBreak"
	PhaseLongBreak  = "longBreak"
)

// Default pomodoro durations in seconds, used when a quick log omits one.
const (
	DefaultWorkSeconds       = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60
)

// TaskEntry is a lightweight task attached to a session log. It is not the
// same entity as a goal task — it only records what got done during the session.
type TaskEntry struct {
	ID        string `bson:"id" json:"id"`
	Content   string `bson:"content" json:"content"`
	Completed bool   `bson:"completed" json:"completed"`
}

// SessionLog is one completed timer session or manually entered quick log.
// Immutable after creation except for Content; deletes are hard deletes.
type SessionLog struct {
	ID        string      `bson:"id" json:"id"`
	UserID    string      `bson:"user_id" json:"user_id"`
	Phase     string      `bson:"phase" json:"phase"` // work | shortBreak | longBreak
	StartTime time.Time   `bson:"start_time" json:"start_time"`
	EndTime   time.Time   `bson:"end_time" json:"end_time"`
	Duration  int         `bson:"duration" json:"duration"` // seconds; quick logs set this directly
	Content   string      `bson:"content" json:"content"`
	Tasks     []TaskEntry `bson:"tasks,omitempty" json:"tasks,omitempty"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}

// DefaultDuration returns the conventional length for a phase.
func DefaultDuration(phase string) int {
	switch phase {
	case PhaseShortBreak:
		return DefaultShortBreakSeconds
	case PhaseLongBreak:
		return DefaultLongBreakSeconds
	default:
		return DefaultWorkSeconds
	}
}
