package services

import (
	"testing"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
)

func TestAppendLog(t *testing.T) {
	initStore(t)

	t.Run("rejects end before start", func(t *testing.T) {
		now := time.Now()
		_, _, _, err := AppendLog("u1", models.SessionLog{
			StartTime: now,
			EndTime:   now.Add(-time.Minute),
		})
		if err != ErrInvalidInterval {
			t.Errorf("expected ErrInvalidInterval, got %v", err)
		}
		if len(ListLogs("u1")) != 0 {
			t.Error("rejected log must not be stored")
		}
	})

	t.Run("fills defaults and credits the streak", func(t *testing.T) {
		now := time.Now()
		entry, streak, synced, err := AppendLog("u1", models.SessionLog{
			StartTime: now,
			EndTime:   now.Add(25 * time.Minute),
			Content:   "wrote the parser",
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if entry.ID == "" {
			t.Error("expected a generated id")
		}
		if entry.Phase != models.PhaseWork {
			t.Errorf("expected default phase work, got %q", entry.Phase)
		}
		if entry.Duration != 25*60 {
			t.Errorf("expected derived duration 1500, got %d", entry.Duration)
		}
		if streak.CurrentStreak != 1 {
			t.Errorf("expected streak credit, got %d", streak.CurrentStreak)
		}
		if synced {
			t.Error("no remote store configured, write must report local-only")
		}
	})

	t.Run("quick log keeps its explicit duration", func(t *testing.T) {
		now := time.Now()
		entry, _, _, err := AppendLog("u1", models.SessionLog{
			Phase:     models.PhaseWork,
			StartTime: now,
			EndTime:   now, // zero interval, duration set directly
			Duration:  10 * 60,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if entry.Duration != 10*60 {
			t.Errorf("explicit duration overwritten: got %d", entry.Duration)
		}
	})
}

func TestListLogs_LocalFallback(t *testing.T) {
	initStore(t)

	// Nothing ever written: the read degrades to an empty set, no error.
	if logs := ListLogs("fresh-user"); len(logs) != 0 {
		t.Fatalf("expected no logs, got %d", len(logs))
	}

	now := time.Now()
	first, _, _, _ := AppendLog("fresh-user", models.SessionLog{StartTime: now, EndTime: now.Add(30 * time.Minute)})
	second, _, _, _ := AppendLog("fresh-user", models.SessionLog{StartTime: now, EndTime: now.Add(20 * time.Minute)})

	logs := ListLogs("fresh-user")
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].ID != first.ID || logs[1].ID != second.ID {
		t.Error("insertion order not preserved")
	}
}

func TestUpdateLogContent(t *testing.T) {
	initStore(t)

	now := time.Now()
	entry, _, _, _ := AppendLog("u1", models.SessionLog{StartTime: now, EndTime: now.Add(time.Hour)})

	t.Run("edits content only", func(t *testing.T) {
		updated := UpdateLogContent("u1", entry.ID, "new summary")
		if updated == nil {
			t.Fatal("expected the updated log")
		}
		if updated.Content != "new summary" {
			t.Errorf("content not updated: %q", updated.Content)
		}
		if !updated.StartTime.Equal(entry.StartTime) || !updated.EndTime.Equal(entry.EndTime) {
			t.Error("timestamps must stay immutable")
		}
		stored := ListLogs("u1")[0]
		if stored.Content != "new summary" {
			t.Error("edit not persisted")
		}
	})

	t.Run("emptying content is allowed", func(t *testing.T) {
		if updated := UpdateLogContent("u1", entry.ID, ""); updated == nil || updated.Content != "" {
			t.Error("empty content should be accepted")
		}
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		if UpdateLogContent("u1", "missing", "x") != nil {
			t.Error("expected nil for unknown id")
		}
		if len(ListLogs("u1")) != 1 {
			t.Error("log set must be unchanged")
		}
	})
}

func TestDeleteLog(t *testing.T) {
	initStore(t)

	now := time.Now()
	entry, streak, _, _ := AppendLog("u1", models.SessionLog{StartTime: now, EndTime: now.Add(time.Hour)})
	if streak.CurrentStreak != 1 {
		t.Fatalf("setup: expected streak 1, got %d", streak.CurrentStreak)
	}

	// Deleting today's only log takes today's credit with it.
	streak, removed := DeleteLog("u1", entry.ID)
	if !removed {
		t.Fatal("expected delete to succeed")
	}
	if len(ListLogs("u1")) != 0 {
		t.Error("log still listed after delete")
	}
	if streak.CurrentStreak != 0 {
		t.Errorf("expected streak credit revoked, got %d", streak.CurrentStreak)
	}

	if _, removed := DeleteLog("u1", entry.ID); removed {
		t.Error("second delete should report missing")
	}
}
