package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/slug"
	"jobboard/internal/storage"
	"jobboard/internal/transport/dto"
)

const constraintJobSlug = "jobs_slug_key"

type jobService struct {
	store storage.Store
	log   logging.Logger
}

// NewJobService creates a new instance of JobService.
func NewJobService(store storage.Store, log logging.Logger) JobService {
	return &jobService{store: store, log: log}
}

func (s *jobService) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.store.Jobs().ListActive(ctx)
	if err != nil {
		return nil, MapRepoError(err, "listing active jobs")
	}
	return jobs, nil
}

// GetActiveJob hides inactive jobs behind ErrNotFound.
func (s *jobService) GetActiveJob(ctx context.Context, id int64) (*models.Job, error) {
	job, err := s.store.Jobs().GetActiveByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching job %d", id))
	}
	return job, nil
}

func (s *jobService) CreateJob(ctx context.Context, actor *models.User, req *dto.CreateJobRequest) (*models.Job, error) {
	if !models.IsAdminUser(actor) {
		return nil, ErrForbidden
	}

	job, err := s.create(ctx, s.store, req)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "job created", "job_id", job.ID, "slug", job.Slug, "admin_id", actor.ID)
	return job, nil
}

func (s *jobService) create(ctx context.Context, repos storage.Repositories, req *dto.CreateJobRequest) (*models.Job, error) {
	job := jobFromRequest(req)
	job.Slug = slug.ForJob(job.Title, job.CompanyName)

	created, err := repos.Jobs().Create(ctx, job)
	if err != nil {
		if storage.ConflictConstraint(err) == constraintJobSlug {
			return nil, fieldError(ErrDuplicateSlug, "slug", MsgDuplicateSlug)
		}
		return nil, MapRepoError(err, "creating job")
	}
	return created, nil
}

func jobFromRequest(req *dto.CreateJobRequest) *models.Job {
	jobType := strings.TrimSpace(req.JobType)
	if jobType == "" {
		jobType = models.DefaultJobType
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &models.Job{
		Title:            strings.TrimSpace(req.Title),
		CompanyName:      strings.TrimSpace(req.CompanyName),
		Location:         strings.TrimSpace(req.Location),
		Description:      strings.TrimSpace(req.Description),
		Requirements:     optional(req.Requirements),
		Responsibilities: optional(req.Responsibilities),
		SalaryRange:      optional(req.SalaryRange),
		JobType:          jobType,
		IsActive:         isActive,
	}
}

// UpdateJob applies the fields present in req. The slug is kept as first generated.
func (s *jobService) UpdateJob(ctx context.Context, actor *models.User, req *dto.UpdateJobRequest) (*models.Job, error) {
	if !models.IsAdminUser(actor) {
		return nil, ErrForbidden
	}

	var updated *models.Job
	err := s.store.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		job, err := repos.Jobs().GetByID(ctx, req.ID)
		if err != nil {
			return MapRepoError(err, fmt.Sprintf("fetching job %d", req.ID))
		}

		applyJobUpdate(job, req)

		updated, err = repos.Jobs().Update(ctx, job)
		if err != nil {
			return MapRepoError(err, fmt.Sprintf("updating job %d", req.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "job updated", "job_id", updated.ID, "is_active", updated.IsActive, "admin_id", actor.ID)
	return updated, nil
}

func applyJobUpdate(job *models.Job, req *dto.UpdateJobRequest) {
	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.CompanyName != nil {
		job.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		job.Description = strings.TrimSpace(*req.Description)
	}
	if req.Requirements != nil {
		job.Requirements = optionalPtr(req.Requirements)
	}
	if req.Responsibilities != nil {
		job.Responsibilities = optionalPtr(req.Responsibilities)
	}
	if req.SalaryRange != nil {
		job.SalaryRange = optionalPtr(req.SalaryRange)
	}
	if req.JobType != nil {
		job.JobType = strings.TrimSpace(*req.JobType)
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
}

func (s *jobService) ListAllJobs(ctx context.Context, actor *models.User) ([]models.Job, error) {
	if !models.IsAdminUser(actor) {
		return nil, ErrForbidden
	}
	jobs, err := s.store.Jobs().ListAll(ctx)
	if err != nil {
		return nil, MapRepoError(err, "listing jobs")
	}
	return jobs, nil
}

func (s *jobService) EnsureJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, bool, error) {
	var (
		job     *models.Job
		created bool
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		existing, err := repos.Jobs().GetByTitleAndCompany(ctx, strings.TrimSpace(req.Title), strings.TrimSpace(req.CompanyName))
		if err == nil {
			job = existing
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return MapRepoError(err, "looking up job")
		}

		job, err = s.create(ctx, repos, req)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return job, created, nil
}
