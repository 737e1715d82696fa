package services

import (
	"context"
	"io"

	"jobboard/internal/models"
	"jobboard/internal/transport/dto"
)

// UserService defines the interface for account-related business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error)
	// EnsureAdmin creates the admin account unless the username exists. The bool reports creation.
	EnsureAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*models.User, bool, error)
}

// JobService defines the interface for job-related business logic.
type JobService interface {
	ListActiveJobs(ctx context.Context) ([]models.Job, error)
	GetActiveJob(ctx context.Context, id int64) (*models.Job, error)
	CreateJob(ctx context.Context, actor *models.User, req *dto.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, actor *models.User, req *dto.UpdateJobRequest) (*models.Job, error)
	ListAllJobs(ctx context.Context, actor *models.User) ([]models.Job, error)
	// EnsureJob creates the job unless one with the same title and company exists. The bool reports creation.
	EnsureJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, bool, error)
}

// ApplicationService defines the interface for application submission and triage.
type ApplicationService interface {
	PrepareApplication(ctx context.Context, user *models.User, jobID int64) (*models.Job, *dto.ApplicationInitial, error)
	Apply(ctx context.Context, user *models.User, req *dto.ApplyRequest) (*models.Application, error)
	ListApplications(ctx context.Context, actor *models.User, req *dto.ListApplicationsRequest) ([]models.Application, error)
	GetApplication(ctx context.Context, actor *models.User, id int64) (*models.Application, error)
	// OpenResume returns the stored resume and its storage key. The caller closes the reader.
	OpenResume(ctx context.Context, actor *models.User, id int64) (io.ReadCloser, string, error)
	// UpdateStatus reports whether the stored status actually changed.
	UpdateStatus(ctx context.Context, actor *models.User, req *dto.UpdateStatusRequest) (*models.Application, bool, error)
}

// NotificationService defines the interface for the recipient's notification inbox.
type NotificationService interface {
	// ListUnread returns the latest unread notifications and the total unread count.
	ListUnread(ctx context.Context, userID int64) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}
