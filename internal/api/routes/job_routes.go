package routes

import (
	"jobboard/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers the public listing and the job routes.
// Detail is public; everything else requires a login.
func RegisterJobRoutes(router gin.IRouter, jobHandler handlers.JobHandlerInterface, authMiddleware gin.HandlerFunc) {
	router.GET("/", jobHandler.ListActiveJobs)

	jobs := router.Group("/jobs")
	{
		jobs.GET("/api/job/:id/", jobHandler.GetJobDetail)
		jobs.POST("/create/", authMiddleware, jobHandler.CreateJob)
		jobs.POST("/:id/update/", authMiddleware, jobHandler.UpdateJob)
		jobs.GET("/admin/jobs/", authMiddleware, jobHandler.ListAllJobs)
	}
}
