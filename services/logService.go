package services

import (
	"context"
	"errors"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
	"github.com/adithyapradeep05/kibi-cruz-sub000/store"

	"github.com/google/uuid"
)

// ErrInvalidInterval is the one validation the log store enforces.
var ErrInvalidInterval = errors.New("end time must not be before start time")

func loadLogs(userID string) []models.SessionLog {
	logs, _ := store.ReadThrough(store.LogsKey(userID), func(ctx context.Context) ([]models.SessionLog, bool, error) {
		out, err := store.ListLogs(ctx, userID)
		if err != nil {
			return nil, false, err
		}
		return out, len(out) > 0, nil
	})
	return logs
}

// ListLogs returns all session logs in insertion order. Callers sort by
// start time for display.
func ListLogs(userID string) []models.SessionLog {
	return loadLogs(userID)
}

// AppendLog records a completed timer session or manual quick log, persists
// it local-first, and re-runs the streak engine on the grown set. synced is
// false when the entry only reached local storage.
func AppendLog(userID string, entry models.SessionLog) (models.SessionLog, models.StreakData, bool, error) {
	if entry.EndTime.Before(entry.StartTime) {
		return models.SessionLog{}, models.StreakData{}, false, ErrInvalidInterval
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.UserID = userID
	if entry.Phase == "" {
		entry.Phase = models.PhaseWork
	}
	if entry.Duration <= 0 {
		// Quick logs may carry a duration directly; otherwise derive it.
		if d := int(entry.EndTime.Sub(entry.StartTime).Seconds()); d > 0 {
			entry.Duration = d
		} else {
			entry.Duration = models.DefaultDuration(entry.Phase)
		}
	}
	entry.CreatedAt = time.Now()

	logs := append(loadLogs(userID), entry)
	synced := store.WriteThrough(store.LogsKey(userID), logs, func(ctx context.Context) error {
		return store.UpsertLog(ctx, entry)
	})

	sd, _ := RecomputeStreak(userID, logs, time.Now())
	return entry, sd, synced, nil
}

// UpdateLogContent edits the free-text content of a log. Everything else on
// a log is immutable. A missing id is a silent no-op, returning nil.
func UpdateLogContent(userID, id, content string) *models.SessionLog {
	logs := loadLogs(userID)
	for i := range logs {
		if logs[i].ID == id {
			logs[i].Content = content
			updated := logs[i]
			store.WriteThrough(store.LogsKey(userID), logs, func(ctx context.Context) error {
				return store.UpsertLog(ctx, updated)
			})
			return &updated
		}
	}
	return nil
}

// DeleteLog hard-deletes a log and re-runs the streak engine on the reduced
// set — deleting today's only log drops today's streak credit immediately.
func DeleteLog(userID, id string) (models.StreakData, bool) {
	logs := loadLogs(userID)
	kept := make([]models.SessionLog, 0, len(logs))
	removed := false
	for _, l := range logs {
		if l.ID == id {
			removed = true
			continue
		}
		kept = append(kept, l)
	}

	if removed {
		store.WriteThrough(store.LogsKey(userID), kept, func(ctx context.Context) error {
			return store.DeleteLog(ctx, userID, id)
		})
	}

	sd, _ := RebuildStreak(userID, kept, time.Now())
	return sd, removed
}
