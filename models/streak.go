package models

import "time"

// StreakData is the per-user streak summary. It is derived state: replaying
// the full session log set through the streak engine must always reproduce it.
type StreakData struct {
	UserID         string    `bson:"user_id" json:"user_id"`
	CurrentStreak  int       `bson:"current_streak" json:"current_streak"`
	LongestStreak  int       `bson:"longest_streak" json:"longest_streak"`
	LastLoggedDate string    `bson:"last_logged_date" json:"last_logged_date"` // YYYY-MM-DD, empty before first log
	GraceUsed      bool      `bson:"grace_used" json:"grace_used"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
