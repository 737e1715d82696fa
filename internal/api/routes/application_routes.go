package routes

import (
	"jobboard/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers application and notification routes.
// All of them require a login; admin checks happen in the services.
func RegisterApplicationRoutes(
	router gin.IRouter,
	applicationHandler handlers.ApplicationHandlerInterface,
	notificationHandler handlers.NotificationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	applications := router.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.GET("/apply/:jobId/", applicationHandler.ApplyForm)
		applications.POST("/apply/:jobId/", applicationHandler.Apply)
		applications.GET("/admin/applications/", applicationHandler.ListApplications)

		api := applications.Group("/api")
		api.GET("/application/:id/", applicationHandler.GetApplication)
		api.GET("/application/:id/resume/", applicationHandler.DownloadResume)
		api.POST("/application/:id/update-status/", applicationHandler.UpdateStatus)

		api.GET("/notifications/", notificationHandler.ListUnread)
		api.POST("/notifications/read-all/", notificationHandler.MarkAllRead)
		api.POST("/notifications/:id/read/", notificationHandler.MarkRead)
	}
}
