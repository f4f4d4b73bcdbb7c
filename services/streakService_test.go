package services

import (
	"testing"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
)

// Fixed clock: 2026-03-10 09:00 UTC.
var day0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func logAt(t time.Time) models.SessionLog {
	return models.SessionLog{
		ID:        "log-" + t.Format("2006-01-02-15-04"),
		Phase:     models.PhaseWork,
		StartTime: t,
		EndTime:   t.Add(25 * time.Minute),
		Duration:  25 * 60,
	}
}

func TestNextStreak_FirstRun(t *testing.T) {
	t.Run("no logs leaves everything zero", func(t *testing.T) {
		sd := NextStreak(models.StreakData{}, nil, day0)
		if sd.CurrentStreak != 0 || sd.LongestStreak != 0 || sd.LastLoggedDate != "" || sd.GraceUsed {
			t.Errorf("expected zero state, got %+v", sd)
		}
	})

	t.Run("first log starts the streak at 1", func(t *testing.T) {
		sd := NextStreak(models.StreakData{}, []models.SessionLog{logAt(day0)}, day0)
		if sd.CurrentStreak != 1 || sd.LongestStreak != 1 {
			t.Errorf("expected streak 1/1, got %d/%d", sd.CurrentStreak, sd.LongestStreak)
		}
		if sd.LastLoggedDate != "2026-03-10" {
			t.Errorf("expected last logged 2026-03-10, got %q", sd.LastLoggedDate)
		}
		if sd.GraceUsed {
			t.Error("grace should not be consumed on first log")
		}
	})
}

func TestNextStreak_IdempotentWithinDay(t *testing.T) {
	logs := []models.SessionLog{logAt(day0)}
	first := NextStreak(models.StreakData{}, logs, day0)
	second := NextStreak(first, logs, day0)
	if first != second {
		t.Errorf("second run changed state: %+v vs %+v", first, second)
	}
}

func TestNextStreak_ConsecutiveDay(t *testing.T) {
	prev := models.StreakData{CurrentStreak: 3, LongestStreak: 5, LastLoggedDate: "2026-03-09"}
	sd := NextStreak(prev, []models.SessionLog{logAt(day0)}, day0)
	if sd.CurrentStreak != 4 {
		t.Errorf("expected streak 4, got %d", sd.CurrentStreak)
	}
	if sd.LongestStreak != 5 {
		t.Errorf("longest should stay 5, got %d", sd.LongestStreak)
	}
	if sd.GraceUsed {
		t.Error("grace should stay clear on a consecutive day")
	}
}

func TestNextStreak_GraceRecovery(t *testing.T) {
	// Last logged two calendar days ago, grace still available: logging
	// today extends the streak and consumes the grace.
	prev := models.StreakData{CurrentStreak: 4, LongestStreak: 4, LastLoggedDate: "2026-03-08"}
	sd := NextStreak(prev, []models.SessionLog{logAt(day0)}, day0)
	if sd.CurrentStreak != 5 {
		t.Errorf("expected streak 5, got %d", sd.CurrentStreak)
	}
	if !sd.GraceUsed {
		t.Error("grace should be consumed")
	}
	if sd.LongestStreak != 5 {
		t.Errorf("longest should follow to 5, got %d", sd.LongestStreak)
	}
}

func TestNextStreak_GraceOnlyOncePerStreak(t *testing.T) {
	// Grace was already burned on this streak; a second two-day gap resets.
	prev := models.StreakData{CurrentStreak: 7, LongestStreak: 7, LastLoggedDate: "2026-03-08", GraceUsed: true}
	sd := NextStreak(prev, []models.SessionLog{logAt(day0)}, day0)
	if sd.CurrentStreak != 1 {
		t.Errorf("expected restart at 1, got %d", sd.CurrentStreak)
	}
	if sd.GraceUsed {
		t.Error("grace should be re-armed after a restart")
	}
	if sd.LongestStreak != 7 {
		t.Errorf("longest should keep the old maximum, got %d", sd.LongestStreak)
	}
}

func TestNextStreak_RestartAfterLongGap(t *testing.T) {
	// Three days since the last log: even with grace available the streak
	// restarts and grace stays armed.
	prev := models.StreakData{CurrentStreak: 9, LongestStreak: 9, LastLoggedDate: "2026-03-07"}
	sd := NextStreak(prev, []models.SessionLog{logAt(day0)}, day0)
	if sd.CurrentStreak != 1 {
		t.Errorf("expected restart at 1, got %d", sd.CurrentStreak)
	}
	if sd.GraceUsed {
		t.Error("grace should not be consumed on a restart")
	}
}

func TestNextStreak_NoLogToday(t *testing.T) {
	cases := []struct {
		name       string
		prev       models.StreakData
		wantStreak int
		wantGrace  bool
	}{
		{
			name:       "yesterday logged, still waiting",
			prev:       models.StreakData{CurrentStreak: 2, LongestStreak: 2, LastLoggedDate: "2026-03-09"},
			wantStreak: 2,
		},
		{
			name:       "two days ago, grace window open",
			prev:       models.StreakData{CurrentStreak: 2, LongestStreak: 2, LastLoggedDate: "2026-03-08"},
			wantStreak: 2,
		},
		{
			name:       "two days ago, grace already used",
			prev:       models.StreakData{CurrentStreak: 2, LongestStreak: 2, LastLoggedDate: "2026-03-08", GraceUsed: true},
			wantStreak: 0,
		},
		{
			name:       "three days ago",
			prev:       models.StreakData{CurrentStreak: 6, LongestStreak: 6, LastLoggedDate: "2026-03-07"},
			wantStreak: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sd := NextStreak(tc.prev, nil, day0)
			if sd.CurrentStreak != tc.wantStreak {
				t.Errorf("expected streak %d, got %d", tc.wantStreak, sd.CurrentStreak)
			}
			if sd.GraceUsed != tc.wantGrace {
				t.Errorf("expected grace %v, got %v", tc.wantGrace, sd.GraceUsed)
			}
			if sd.LongestStreak != tc.prev.LongestStreak {
				t.Errorf("longest must never decrease: %d -> %d", tc.prev.LongestStreak, sd.LongestStreak)
			}
		})
	}
}

func TestNextStreak_CalendarDaysNotWindows(t *testing.T) {
	t.Run("11pm then 1am counts as consecutive days", func(t *testing.T) {
		lateLog := logAt(time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC))
		prev := NextStreak(models.StreakData{}, []models.SessionLog{lateLog}, lateLog.StartTime)
		if prev.CurrentStreak != 1 {
			t.Fatalf("setup: expected streak 1, got %d", prev.CurrentStreak)
		}

		earlyLog := logAt(time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC))
		sd := NextStreak(prev, []models.SessionLog{lateLog, earlyLog}, earlyLog.StartTime)
		if sd.CurrentStreak != 2 {
			t.Errorf("expected streak 2 across midnight, got %d", sd.CurrentStreak)
		}
	})

	t.Run("20 hours apart on the same day does not advance", func(t *testing.T) {
		morning := logAt(time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC))
		evening := logAt(time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC))
		prev := NextStreak(models.StreakData{}, []models.SessionLog{morning}, morning.StartTime)
		sd := NextStreak(prev, []models.SessionLog{morning, evening}, evening.StartTime)
		if sd.CurrentStreak != 1 {
			t.Errorf("same calendar day must not advance the streak: got %d", sd.CurrentStreak)
		}
	})
}

func TestNextStreak_BreakPhaseQualifies(t *testing.T) {
	breakLog := logAt(day0)
	breakLog.Phase = models.PhaseShortBreak
	sd := NextStreak(models.StreakData{}, []models.SessionLog{breakLog}, day0)
	if sd.CurrentStreak != 1 {
		t.Errorf("any phase should qualify for the streak, got %d", sd.CurrentStreak)
	}
}

func TestNextStreak_LongestMonotonic(t *testing.T) {
	// Walk a month of mixed logging and verify longest never decreases.
	var logs []models.SessionLog
	sd := models.StreakData{}
	longest := 0
	logged := []int{0, 1, 2, 4, 5, 6, 7, 10, 11, 12, 13, 14, 20, 22}
	daySet := map[int]bool{}
	for _, d := range logged {
		daySet[d] = true
	}
	for d := 0; d < 25; d++ {
		now := day0.AddDate(0, 0, d)
		if daySet[d] {
			logs = append(logs, logAt(now))
		}
		sd = NextStreak(sd, logs, now)
		if sd.LongestStreak < longest {
			t.Fatalf("day %d: longest decreased %d -> %d", d, longest, sd.LongestStreak)
		}
		longest = sd.LongestStreak
		if sd.LongestStreak < sd.CurrentStreak {
			t.Fatalf("day %d: longest %d below current %d", d, sd.LongestStreak, sd.CurrentStreak)
		}
	}
}

func TestNextStreak_EndToEndScenario(t *testing.T) {
	// Day 1: log at 09:00 -> streak 1. Day 2: nothing. Day 3: log -> streak 2
	// with grace consumed. Days 4 and 5: nothing. Day 6: log -> restart at 1
	// with grace re-armed.
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	logs := []models.SessionLog{logAt(day1)}
	sd := NextStreak(models.StreakData{}, logs, day1)
	if sd.CurrentStreak != 1 {
		t.Fatalf("day 1: expected streak 1, got %d", sd.CurrentStreak)
	}

	day3 := day1.AddDate(0, 0, 2)
	logs = append(logs, logAt(day3))
	sd = NextStreak(sd, logs, day3)
	if sd.CurrentStreak != 2 || !sd.GraceUsed {
		t.Fatalf("day 3: expected streak 2 with grace consumed, got %d grace=%v", sd.CurrentStreak, sd.GraceUsed)
	}

	day6 := day1.AddDate(0, 0, 5)
	logs = append(logs, logAt(day6))
	sd = NextStreak(sd, logs, day6)
	if sd.CurrentStreak != 1 || sd.GraceUsed {
		t.Fatalf("day 6: expected restart at 1 with grace re-armed, got %d grace=%v", sd.CurrentStreak, sd.GraceUsed)
	}
	if sd.LongestStreak != 2 {
		t.Errorf("longest should hold at 2, got %d", sd.LongestStreak)
	}
}

func TestNextStreak_CorruptLastDateTreatedAsFirstRun(t *testing.T) {
	prev := models.StreakData{CurrentStreak: 3, LongestStreak: 3, LastLoggedDate: "not-a-date"}
	sd := NextStreak(prev, []models.SessionLog{logAt(day0)}, day0)
	if sd.CurrentStreak != 1 {
		t.Errorf("expected first-run handling, got streak %d", sd.CurrentStreak)
	}
	if sd.LastLoggedDate != "2026-03-10" {
		t.Errorf("expected date repaired to today, got %q", sd.LastLoggedDate)
	}
}

func TestReplayStreak(t *testing.T) {
	t.Run("empty set yields zero state", func(t *testing.T) {
		sd := ReplayStreak(nil, day0)
		if sd.CurrentStreak != 0 || sd.LongestStreak != 0 || sd.LastLoggedDate != "" {
			t.Errorf("expected zero state, got %+v", sd)
		}
	})

	t.Run("matches incremental updates", func(t *testing.T) {
		day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		days := []int{0, 1, 2, 4} // day 4 redeems via grace after missing day 3
		var logs []models.SessionLog
		inc := models.StreakData{}
		var now time.Time
		for _, d := range days {
			now = day1.AddDate(0, 0, d)
			logs = append(logs, logAt(now))
			inc = NextStreak(inc, logs, now)
		}

		replayed := ReplayStreak(logs, now)
		if replayed.CurrentStreak != inc.CurrentStreak ||
			replayed.LongestStreak != inc.LongestStreak ||
			replayed.LastLoggedDate != inc.LastLoggedDate ||
			replayed.GraceUsed != inc.GraceUsed {
			t.Errorf("replay diverged: %+v vs incremental %+v", replayed, inc)
		}
	})

	t.Run("dropping today's only log removes the credit", func(t *testing.T) {
		yesterday := logAt(day0.AddDate(0, 0, -1))
		today := logAt(day0)

		with := ReplayStreak([]models.SessionLog{yesterday, today}, day0)
		if with.CurrentStreak != 2 {
			t.Fatalf("setup: expected streak 2, got %d", with.CurrentStreak)
		}

		without := ReplayStreak([]models.SessionLog{yesterday}, day0)
		if without.CurrentStreak != 1 {
			t.Errorf("expected streak back to 1, got %d", without.CurrentStreak)
		}
		if without.LastLoggedDate != "2026-03-09" {
			t.Errorf("expected last logged yesterday, got %q", without.LastLoggedDate)
		}
	})
}
