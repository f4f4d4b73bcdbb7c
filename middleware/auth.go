package middleware

import (
	"net/http"
	"strings"

	"github.com/adithyapradeep05/kibi-cruz-sub000/config"
	"github.com/adithyapradeep05/kibi-cruz-sub000/helpers"
	"github.com/adithyapradeep05/kibi-cruz-sub000/models"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	// Legacy clients send the raw token in a "token" header.
	return c.GetHeader("token")
}

// Authenticate requires a valid access token and stores its claims in the
// request context.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// Identify resolves the acting identity for the core endpoints. With a valid
// token it behaves like Authenticate. Without one, requests are only allowed
// when no remote store is configured — they then act as the anonymous
// local-only identity, mirroring unauthenticated browser usage.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)

		if tokenString != "" {
			claims, err := helpers.ValidateToken(tokenString)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
			c.Set("claims", claims)
			c.Next()
			return
		}

		if config.Connected() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		c.Set("claims", &helpers.Claims{UserID: models.AnonymousUserID, Role: "USER"})
		c.Next()
	}
}

// Authorize allows only the listed roles. Must run after Authenticate.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsVal, ok := c.Get("claims")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		claims, ok := claimsVal.(*helpers.Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		c.Abort()
	}
}
