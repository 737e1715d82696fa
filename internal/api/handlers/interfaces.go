package handlers

import "github.com/gin-gonic/gin"

// AccountHandlerInterface defines the methods needed by the account routes.
type AccountHandlerInterface interface {
	RegisterForm(c *gin.Context)
	Register(c *gin.Context)
	LoginForm(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	ListActiveJobs(c *gin.Context)
	GetJobDetail(c *gin.Context)
	CreateJob(c *gin.Context)
	UpdateJob(c *gin.Context)
	ListAllJobs(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	ApplyForm(c *gin.Context)
	Apply(c *gin.Context)
	ListApplications(c *gin.Context)
	GetApplication(c *gin.Context)
	DownloadResume(c *gin.Context)
	UpdateStatus(c *gin.Context)
}

// NotificationHandlerInterface defines the methods needed by the notification routes.
type NotificationHandlerInterface interface {
	ListUnread(c *gin.Context)
	MarkRead(c *gin.Context)
	MarkAllRead(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ AccountHandlerInterface = (*AccountHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
var _ NotificationHandlerInterface = (*NotificationHandler)(nil)
