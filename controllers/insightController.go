package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/services"

	"github.com/gin-gonic/gin"
)

// GenerateInsight asks the LLM for a productivity write-up over the user's
// log history. Gateway failures come back as a substituted message in the
// text field, never as an error status — the rest of the app is unaffected.
func GenerateInsight(client *services.AnthropicClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
		defer cancel()

		result := services.GenerateInsight(ctx, client, userID)
		c.JSON(http.StatusOK, result)
	}
}
