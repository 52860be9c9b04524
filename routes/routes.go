package routes

import (
	"net/http"

	"eduleave-api/controllers"
	"eduleave-api/middleware"
	"eduleave-api/models"
	"eduleave-api/monitor"

	"github.com/gin-gonic/gin"
)

// Deps carries the handlers and auth plumbing the routes are wired to.
type Deps struct {
	Tokens middleware.TokenParser
	Users  middleware.UserLookup
	DB     controllers.Pinger

	Auth          *controllers.AuthController
	Leaves        *controllers.LeaveController
	Directory     *controllers.DirectoryController
	Notifications *controllers.NotificationController

	LogPath string
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	api := router.Group("/api")
	{
		// Public routes
		api.GET("/health", controllers.Health(deps.DB))

		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.Auth.Register)
			auth.POST("/login", deps.Auth.Login)
		}

		// Protected routes (require authentication)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.Users))
		{
			protected.GET("/auth/profile", deps.Auth.GetProfile)

			leave := protected.Group("/leave")
			{
				leave.GET("/summary", deps.Leaves.GetSummary)

				applications := leave.Group("/applications")
				applications.POST("", deps.Leaves.CreateApplication)
				applications.GET("", deps.Leaves.GetApplications)
				applications.GET("/:id", deps.Leaves.GetApplication)
				applications.GET("/:id/history", deps.Leaves.GetApplicationHistory)

				// Advisor/HOD role checks happen in the service
				applications.PUT("/:id/advisor-action", deps.Leaves.AdvisorAction)
				applications.PUT("/:id/hod-action", deps.Leaves.HodAction)
			}

			protected.GET("/departments", deps.Directory.GetDepartments)
			protected.GET("/classes", deps.Directory.GetClasses)
			protected.GET("/users", middleware.RequireRole(models.RoleAdmin), deps.Directory.GetUsers)

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", deps.Notifications.GetNotifications)
				notifications.GET("/counter", deps.Notifications.GetNotificationCounter)
				notifications.PUT("/read-all", deps.Notifications.MarkAllNotificationsRead)
				notifications.PUT("/:id/read", deps.Notifications.MarkNotificationRead)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			monitor.RegisterLogsRoute(admin, deps.LogPath)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}
