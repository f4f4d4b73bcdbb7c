package routes

import (
	"github.com/adithyapradeep05/kibi-cruz-sub000/controllers"
	"github.com/adithyapradeep05/kibi-cruz-sub000/middleware"
	"github.com/adithyapradeep05/kibi-cruz-sub000/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.RouterGroup, insight *services.AnthropicClient) {
	router.POST("/signup", controllers.Signup())
	router.POST("/login", controllers.Login())
	router.POST("/forgot-password", controllers.ForgotPassword())
	router.POST("/reset-password", controllers.ResetPassword())

	// Account endpoints require a real authenticated user.
	account := router.Group("/")
	account.Use(middleware.Authenticate())
	{
		account.GET("/me", controllers.GetMe())

		account.GET("/users",
			middleware.Authorize("ADMIN"),
			controllers.GetUsers(),
		)

		account.GET("/user/:id",
			middleware.Authorize("ADMIN", "USER"),
			controllers.GetUser(),
		)
	}

	// Core app endpoints: authenticated users, or the anonymous local-only
	// identity when no remote store is configured.
	core := router.Group("/")
	core.Use(middleware.Identify())
	{
		core.POST("/logs", controllers.AppendLog())
		core.GET("/logs", controllers.GetLogs())
		core.PATCH("/logs/:id", controllers.UpdateLog())
		core.DELETE("/logs/:id", controllers.DeleteLog())

		core.GET("/streak", controllers.GetStreak())

		core.POST("/goals", controllers.CreateGoal())
		core.GET("/goals", controllers.GetGoals())
		core.PATCH("/goals/:id", controllers.UpdateGoal())
		core.DELETE("/goals/:id", controllers.DeleteGoal())
		core.POST("/goals/:id/tasks", controllers.AddGoalTask())
		core.PATCH("/goals/:id/tasks/:taskId", controllers.UpdateGoalTask())
		core.DELETE("/goals/:id/tasks/:taskId", controllers.DeleteGoalTask())
		core.PUT("/goals/:id/tasks/order", controllers.ReorderGoalTasks())

		core.POST("/insights", controllers.GenerateInsight(insight))
	}
}
