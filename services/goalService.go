package services

import (
	"context"
	"math"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
	"github.com/adithyapradeep05/kibi-cruz-sub000/store"

	"github.com/google/uuid"
)

// ComputeProgress derives the 0-100 progress of a goal from its type formula.
// Checklist goals roll up completed child tasks; the value-based types clamp
// current/target at 100 and read 0 when no target is set.
func ComputeProgress(g models.Goal) int {
	switch g.Type {
	case models.GoalChecklist:
		if len(g.Tasks) == 0 {
			return 0
		}
		done := 0
		for _, t := range g.Tasks {
			if t.Completed {
				done++
			}
		}
		return int(math.Round(100 * float64(done) / float64(len(g.Tasks))))
	case models.GoalNumeric, models.GoalTimeBased, models.GoalHabit:
		if g.TargetValue <= 0 {
			return 0
		}
		p := int(math.Round(100 * g.CurrentValue / g.TargetValue))
		if p > 100 {
			p = 100
		}
		if p < 0 {
			p = 0
		}
		return p
	default:
		return 0
	}
}

// GoalPatch is a partial goal update. Progress, when set, is an explicit
// override that bypasses the recompute for that call only (force-complete).
type GoalPatch struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Type         *models.GoalType   `json:"type"`
	Status       *models.GoalStatus `json:"status"`
	Progress     *int               `json:"progress"`
	TargetValue  *float64           `json:"target_value"`
	CurrentValue *float64           `json:"current_value"`
	TargetDate   *time.Time         `json:"target_date"`
}

// TaskPatch is a partial goal-task update.
type TaskPatch struct {
	Content *string `json:"content"`
	Status  *string `json:"status"`
	Notes   *string `json:"notes"`
}

func loadGoals(userID string) []models.Goal {
	goals, _ := store.ReadThrough(store.GoalsKey(userID), func(ctx context.Context) ([]models.Goal, bool, error) {
		out, err := store.ListGoals(ctx, userID)
		if err != nil {
			return nil, false, err
		}
		return out, len(out) > 0, nil
	})
	return goals
}

// saveGoals persists the whole set locally and mirrors the changed goal to
// the remote store best-effort.
func saveGoals(userID string, goals []models.Goal, changed models.Goal) bool {
	return store.WriteThrough(store.GoalsKey(userID), goals, func(ctx context.Context) error {
		return store.UpsertGoal(ctx, changed)
	})
}

// ListGoals returns all goals for the user.
func ListGoals(userID string) []models.Goal {
	return loadGoals(userID)
}

// CreateGoal registers a new goal, normalizing defaults and deriving its
// initial progress.
func CreateGoal(userID string, g models.Goal) models.Goal {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.UserID = userID
	if g.Type == "" {
		g.Type = models.GoalChecklist
	}
	if g.Status == "" {
		g.Status = models.GoalActive
	}
	g.CreatedAt = time.Now()
	g.CompletedAt = nil
	if g.Tasks == nil {
		g.Tasks = []models.GoalTask{}
	}
	for i := range g.Tasks {
		if g.Tasks[i].ID == "" {
			g.Tasks[i].ID = uuid.NewString()
		}
		normalizeTask(&g.Tasks[i])
		g.Tasks[i].Order = i
		g.Tasks[i].CreatedAt = g.CreatedAt
	}
	g.Progress = ComputeProgress(g)

	goals := append(loadGoals(userID), g)
	saveGoals(userID, goals, g)
	return g
}

// UpdateGoal applies a partial update. Unless the patch sets Progress
// explicitly, progress is recomputed from the formula; setting status to
// completed forces 100 and stamps CompletedAt.
func UpdateGoal(userID, id string, patch GoalPatch) *models.Goal {
	goals := loadGoals(userID)
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		g := &goals[i]
		if patch.Title != nil {
			g.Title = *patch.Title
		}
		if patch.Description != nil {
			g.Description = *patch.Description
		}
		if patch.Type != nil {
			g.Type = *patch.Type
		}
		if patch.TargetValue != nil {
			g.TargetValue = *patch.TargetValue
		}
		if patch.CurrentValue != nil {
			g.CurrentValue = *patch.CurrentValue
		}
		if patch.TargetDate != nil {
			g.TargetDate = patch.TargetDate
		}
		if patch.Status != nil {
			g.Status = *patch.Status
			if g.Status == models.GoalCompleted {
				now := time.Now()
				g.CompletedAt = &now
			} else {
				g.CompletedAt = nil
			}
		}

		switch {
		case patch.Progress != nil:
			g.Progress = clampPercent(*patch.Progress)
		case g.Status == models.GoalCompleted:
			g.Progress = 100
		default:
			g.Progress = ComputeProgress(*g)
		}

		saveGoals(userID, goals, *g)
		return g
	}
	return nil
}

// DeleteGoal hard-removes a goal and its tasks.
func DeleteGoal(userID, id string) bool {
	goals := loadGoals(userID)
	kept := make([]models.Goal, 0, len(goals))
	removed := false
	for _, g := range goals {
		if g.ID == id {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	if removed {
		store.WriteThrough(store.GoalsKey(userID), kept, func(ctx context.Context) error {
			return store.DeleteGoal(ctx, userID, id)
		})
	}
	return removed
}

// AddTask appends a task to a goal and recomputes progress.
func AddTask(userID, goalID string, task models.GoalTask) *models.Goal {
	return mutateGoal(userID, goalID, func(g *models.Goal) bool {
		if task.ID == "" {
			task.ID = uuid.NewString()
		}
		normalizeTask(&task)
		task.Order = len(g.Tasks)
		task.CreatedAt = time.Now()
		g.Tasks = append(g.Tasks, task)
		return true
	})
}

// UpdateTask applies a partial update to one task and recomputes progress.
// A missing task id is a no-op.
func UpdateTask(userID, goalID, taskID string, patch TaskPatch) *models.Goal {
	return mutateGoal(userID, goalID, func(g *models.Goal) bool {
		for i := range g.Tasks {
			if g.Tasks[i].ID != taskID {
				continue
			}
			if patch.Content != nil {
				g.Tasks[i].Content = *patch.Content
			}
			if patch.Status != nil {
				g.Tasks[i].Status = *patch.Status
			}
			if patch.Notes != nil {
				g.Tasks[i].Notes = *patch.Notes
			}
			normalizeTask(&g.Tasks[i])
			return true
		}
		return false
	})
}

// DeleteTask removes a task and recomputes progress.
func DeleteTask(userID, goalID, taskID string) *models.Goal {
	return mutateGoal(userID, goalID, func(g *models.Goal) bool {
		for i := range g.Tasks {
			if g.Tasks[i].ID == taskID {
				g.Tasks = append(g.Tasks[:i], g.Tasks[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ReorderTasks rewrites task ordering to follow the given id sequence. Tasks
// not named keep their relative order after the named ones.
func ReorderTasks(userID, goalID string, order []string) *models.Goal {
	return mutateGoal(userID, goalID, func(g *models.Goal) bool {
		pos := make(map[string]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		reordered := make([]models.GoalTask, 0, len(g.Tasks))
		for _, id := range order {
			for _, t := range g.Tasks {
				if t.ID == id {
					reordered = append(reordered, t)
					break
				}
			}
		}
		for _, t := range g.Tasks {
			if _, named := pos[t.ID]; !named {
				reordered = append(reordered, t)
			}
		}
		for i := range reordered {
			reordered[i].Order = i
		}
		g.Tasks = reordered
		return true
	})
}

// mutateGoal runs fn against the named goal and, when fn reports a change,
// recomputes progress and persists. Every task mutation funnels through here
// so progress can never drift from the formula.
func mutateGoal(userID, goalID string, fn func(g *models.Goal) bool) *models.Goal {
	goals := loadGoals(userID)
	for i := range goals {
		if goals[i].ID != goalID {
			continue
		}
		if !fn(&goals[i]) {
			return &goals[i]
		}
		goals[i].Progress = ComputeProgress(goals[i])
		saveGoals(userID, goals, goals[i])
		return &goals[i]
	}
	return nil
}

func normalizeTask(t *models.GoalTask) {
	switch t.Status {
	case models.TaskInProgress, models.TaskCompleted:
	default:
		t.Status = models.TaskNotStarted
	}
	t.Completed = t.Status == models.TaskCompleted
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
