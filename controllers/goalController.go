package controllers

import (
	"net/http"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
	"github.com/adithyapradeep05/kibi-cruz-sub000/services"

	"github.com/gin-gonic/gin"
)

// CreateGoal registers a new goal for the current user.
func CreateGoal() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Title        string            `json:"title"`
			Description  string            `json:"description"`
			Type         models.GoalType   `json:"type"`
			TargetValue  float64           `json:"target_value"`
			CurrentValue float64           `json:"current_value"`
			TargetDate   *time.Time        `json:"target_date"`
			Tasks        []models.GoalTask `json:"tasks"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal payload"})
			return
		}
		if body.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}

		goal := services.CreateGoal(userID, models.Goal{
			Title:        body.Title,
			Description:  body.Description,
			Type:         body.Type,
			TargetValue:  body.TargetValue,
			CurrentValue: body.CurrentValue,
			TargetDate:   body.TargetDate,
			Tasks:        body.Tasks,
		})
		c.JSON(http.StatusOK, goal)
	}
}

// GetGoals lists the user's goals.
func GetGoals() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		goals := services.ListGoals(userID)
		if goals == nil {
			goals = []models.Goal{}
		}
		c.JSON(http.StatusOK, goals)
	}
}

// UpdateGoal applies a partial update. Progress in the payload is an
// explicit override; otherwise the formula recomputes it.
func UpdateGoal() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var patch services.GoalPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal patch"})
			return
		}
		goal := services.UpdateGoal(userID, c.Param("id"), patch)
		if goal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

// DeleteGoal hard-removes a goal and its tasks.
func DeleteGoal() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		if !services.DeleteGoal(userID, c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

// AddGoalTask appends a task to a goal.
func AddGoalTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Content string `json:"content"`
			Status  string `json:"status"`
			Notes   string `json:"notes"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
			return
		}
		goal := services.AddTask(userID, c.Param("id"), models.GoalTask{
			Content: body.Content,
			Status:  body.Status,
			Notes:   body.Notes,
		})
		if goal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

// UpdateGoalTask patches one task (status, content, notes).
func UpdateGoalTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var patch services.TaskPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task patch"})
			return
		}
		goal := services.UpdateTask(userID, c.Param("id"), c.Param("taskId"), patch)
		if goal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

// DeleteGoalTask removes a task from a goal.
func DeleteGoalTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		goal := services.DeleteTask(userID, c.Param("id"), c.Param("taskId"))
		if goal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

// ReorderGoalTasks rewrites the task order to the provided id sequence.
func ReorderGoalTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Order []string `json:"order"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
			return
		}
		goal := services.ReorderTasks(userID, c.Param("id"), body.Order)
		if goal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}
