package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
	"github.com/adithyapradeep05/kibi-cruz-sub000/store"
)

const dateLayout = "2006-01-02"

// dayOf returns the calendar day of t in loc.
func dayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// daysBetween counts whole local calendar days from the earlier date string
// up to the day containing now. Calendar days, not 24-hour windows: 11pm and
// 1am the next day are one day apart.
func daysBetween(now time.Time, earlier string, loc *time.Location) int {
	e, err := time.ParseInLocation(dateLayout, earlier, loc)
	if err != nil {
		return 0
	}
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	// Round absorbs DST shifts around midnight.
	return int(math.Round(today.Sub(e).Hours() / 24))
}

// NextStreak advances prev given the full session log set. Pure: the clock
// and calendar location both come from now, so callers and tests control the
// day boundary. Any phase counts as a qualifying log, breaks included.
//
// A single missed day can be recovered once per unbroken streak ("streak
// insurance"): logging after exactly one empty day extends the streak and
// consumes the grace, which is only re-armed when the streak restarts from 0.
func NextStreak(prev models.StreakData, logs []models.SessionLog, now time.Time) models.StreakData {
	loc := now.Location()
	today := dayOf(now, loc)

	loggedToday := false
	for i := range logs {
		if dayOf(logs[i].StartTime, loc) == today {
			loggedToday = true
			break
		}
	}

	last := prev.LastLoggedDate
	if last != "" {
		if _, err := time.ParseInLocation(dateLayout, last, loc); err != nil {
			// Unparseable date from a corrupt store: treat as first run.
			last = ""
		}
	}

	next := prev
	if last == "" {
		if loggedToday {
			next.CurrentStreak = 1
			next.LastLoggedDate = today
			next.GraceUsed = false
		}
	} else {
		daysSince := daysBetween(now, last, loc)
		if loggedToday {
			switch {
			case daysSince == 0:
				// Already counted today.
			case daysSince == 1:
				next.CurrentStreak++
				next.LastLoggedDate = today
				next.GraceUsed = false
			case daysSince == 2 && !prev.GraceUsed:
				next.CurrentStreak++
				next.LastLoggedDate = today
				next.GraceUsed = true
			default:
				next.CurrentStreak = 1
				next.LastLoggedDate = today
				next.GraceUsed = false
			}
		} else {
			switch {
			case daysSince <= 1:
				// Today isn't over; nothing breaks yet.
			case daysSince == 2 && !prev.GraceUsed:
				// Still inside the grace window, redeemable by logging today.
			default:
				next.CurrentStreak = 0
				next.GraceUsed = false
			}
		}
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.UpdatedAt = now
	return next
}

// ReplayStreak rebuilds streak state from nothing by running the engine once
// per logged day in order, then once at now. Used after deletes, where the
// incremental update cannot un-count a day: replaying the reduced set is the
// only way deleting today's single log drops today's credit.
func ReplayStreak(logs []models.SessionLog, now time.Time) models.StreakData {
	loc := now.Location()

	seen := make(map[string]struct{})
	var days []string
	for i := range logs {
		d := dayOf(logs[i].StartTime, loc)
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}
	sort.Strings(days)

	var sd models.StreakData
	for _, d := range days {
		// Noon keeps the replay clock clear of DST boundaries.
		t, err := time.ParseInLocation(dateLayout, d, loc)
		if err != nil || t.After(now) {
			continue
		}
		sd = NextStreak(sd, logs, t.Add(12*time.Hour))
	}
	return NextStreak(sd, logs, now)
}

func loadStreak(userID string) models.StreakData {
	sd, _ := store.ReadThrough(store.StreakKey(userID), func(ctx context.Context) (models.StreakData, bool, error) {
		return store.GetStreak(ctx, userID)
	})
	sd.UserID = userID
	return sd
}

// RecomputeStreak runs the engine over logs and persists the result: local
// storage synchronously, remote best-effort. synced reports whether a remote
// mirror was attempted.
func RecomputeStreak(userID string, logs []models.SessionLog, now time.Time) (models.StreakData, bool) {
	next := NextStreak(loadStreak(userID), logs, now)
	next.UserID = userID
	synced := store.WriteThrough(store.StreakKey(userID), next, func(ctx context.Context) error {
		return store.UpsertStreak(ctx, next)
	})
	return next, synced
}

// RebuildStreak replays the full log set from scratch and persists the
// result. Used after deletes.
func RebuildStreak(userID string, logs []models.SessionLog, now time.Time) (models.StreakData, bool) {
	next := ReplayStreak(logs, now)
	next.UserID = userID
	synced := store.WriteThrough(store.StreakKey(userID), next, func(ctx context.Context) error {
		return store.UpsertStreak(ctx, next)
	})
	return next, synced
}

// GetStreak returns the current streak, re-running the engine so a window
// missed since the last visit breaks the streak on read rather than lingering.
func GetStreak(userID string, now time.Time) (models.StreakData, bool) {
	return RecomputeStreak(userID, ListLogs(userID), now)
}
