package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/helpers"
	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
	"github.com/adithyapradeep05/kibi-cruz-sub000/services"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) string {
	claimsVal, ok := c.Get("claims")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return ""
	}
	claims, ok := claimsVal.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
		return ""
	}
	return claims.UserID
}

// syncLabel marks responses so the client can show a non-blocking notice
// when a write only reached local storage.
func syncLabel(synced bool) string {
	if synced {
		return "remote"
	}
	return "local-only"
}

// AppendLog records a finished timer session or a manual quick log.
func AppendLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Phase     string             `json:"phase"`
			StartTime time.Time          `json:"start_time"`
			EndTime   time.Time          `json:"end_time"`
			Duration  int                `json:"duration"`
			Content   string             `json:"content"`
			Tasks     []models.TaskEntry `json:"tasks"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log payload"})
			return
		}

		entry, streak, synced, err := services.AppendLog(userID, models.SessionLog{
			Phase:     body.Phase,
			StartTime: body.StartTime,
			EndTime:   body.EndTime,
			Duration:  body.Duration,
			Content:   body.Content,
			Tasks:     body.Tasks,
		})
		if errors.Is(err, services.ErrInvalidInterval) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"log":    entry,
			"streak": streak,
			"sync":   syncLabel(synced),
		})
	}
}

// GetLogs lists the user's session logs in insertion order.
func GetLogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		logs := services.ListLogs(userID)
		if logs == nil {
			logs = []models.SessionLog{}
		}
		c.JSON(http.StatusOK, logs)
	}
}

// UpdateLog edits a log's content. Only content is editable; an unknown id
// is a silent no-op, matching the store contract.
func UpdateLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Content string `json:"content"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		updated := services.UpdateLogContent(userID, c.Param("id"), body.Content)
		if updated == nil {
			c.JSON(http.StatusOK, gin.H{"updated": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true, "log": updated})
	}
}

// DeleteLog hard-deletes a log and returns the recomputed streak.
func DeleteLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		streak, removed := services.DeleteLog(userID, c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"deleted": removed, "streak": streak})
	}
}

// GetStreak returns the user's streak, recomputed against today.
func GetStreak() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		streak, synced := services.GetStreak(userID, time.Now())
		c.JSON(http.StatusOK, gin.H{"streak": streak, "sync": syncLabel(synced)})
	}
}
