package services_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"jobboard/internal/filestore"
	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/storage/storagetest"
	"jobboard/internal/transport/dto"

	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }

func ptrBool(b bool) *bool { return &b }

type fixture struct {
	ctx           context.Context
	store         *storagetest.Store
	filesRoot     string
	users         services.UserService
	jobs          services.JobService
	applications  services.ApplicationService
	notifications services.NotificationService
	admin         *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storagetest.NewStore()
	root := t.TempDir()
	files, err := filestore.NewLocal(root)
	require.NoError(t, err)

	f := &fixture{
		ctx:       context.Background(),
		store:     store,
		filesRoot: root,
		users:     services.NewUserService(store, logging.Nop()),
		jobs:      services.NewJobService(store, logging.Nop()),
		applications: services.NewApplicationService(services.ApplicationServiceConfig{
			Store:          store,
			Files:          files,
			MaxResumeBytes: 1024,
			Logger:         logging.Nop(),
		}),
		notifications: services.NewNotificationService(store),
	}
	f.admin = f.createUser(t, "admin", models.RoleAdmin, false)
	return f
}

func (f *fixture) createUser(t *testing.T, username string, role models.Role, superuser bool) *models.User {
	t.Helper()
	u, err := f.store.Users().Create(f.ctx, &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsSuperuser:  superuser,
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) seeker(t *testing.T, username string) *models.User {
	t.Helper()
	return f.createUser(t, username, models.RoleJobSeeker, false)
}

func (f *fixture) createJob(t *testing.T, title, company string) *models.Job {
	t.Helper()
	job, err := f.jobs.CreateJob(f.ctx, f.admin, &dto.CreateJobRequest{
		Title:       title,
		CompanyName: company,
		Location:    "Remote",
		Description: "Build things.",
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) apply(t *testing.T, user *models.User, job *models.Job, fullName string) *models.Application {
	t.Helper()
	app, err := f.applications.Apply(f.ctx, user, &dto.ApplyRequest{
		JobID:    job.ID,
		FullName: fullName,
		Email:    user.Email,
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	return app
}

// storedFiles lists every file under the resume root.
func (f *fixture) storedFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(f.filesRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}
