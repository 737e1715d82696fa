package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"jobboard/internal/filestore"
	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/storage"
	"jobboard/internal/transport/dto"
)

const constraintOneApplicationPerJob = "applications_user_id_job_id_key"

// ApplicationServiceConfig carries the collaborators of the application service.
type ApplicationServiceConfig struct {
	Store          storage.Store
	Files          filestore.Store
	Notifier       StatusChangeNotifier
	MaxResumeBytes int64
	Logger         logging.Logger
}

type applicationService struct {
	store          storage.Store
	files          filestore.Store
	notifier       StatusChangeNotifier
	maxResumeBytes int64
	log            logging.Logger
	now            func() time.Time
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(cfg ApplicationServiceConfig) ApplicationService {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NewInboxNotifier()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &applicationService{
		store:          cfg.Store,
		files:          cfg.Files,
		notifier:       notifier,
		maxResumeBytes: cfg.MaxResumeBytes,
		log:            log,
		now:            time.Now,
	}
}

// loadApplicableJob returns the active job or ErrNotFound, then ErrAlreadyApplied
// if user already has an application for it.
func (s *applicationService) loadApplicableJob(ctx context.Context, repos storage.Repositories, userID, jobID int64) (*models.Job, error) {
	job, err := repos.Jobs().GetActiveByID(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching job %d", jobID))
	}

	applied, err := repos.Applications().ExistsForUserAndJob(ctx, userID, jobID)
	if err != nil {
		return nil, MapRepoError(err, "checking existing application")
	}
	if applied {
		return nil, ErrAlreadyApplied
	}
	return job, nil
}

func (s *applicationService) PrepareApplication(ctx context.Context, user *models.User, jobID int64) (*models.Job, *dto.ApplicationInitial, error) {
	job, err := s.loadApplicableJob(ctx, s.store, user.ID, jobID)
	if err != nil {
		return nil, nil, err
	}

	return job, &dto.ApplicationInitial{
		FullName: user.FullName(),
		Email:    user.Email,
		Phone:    user.Phone,
		LinkedIn: user.LinkedIn,
	}, nil
}

func (s *applicationService) Apply(ctx context.Context, user *models.User, req *dto.ApplyRequest) (*models.Application, error) {
	if _, err := s.loadApplicableJob(ctx, s.store, user.ID, req.JobID); err != nil {
		return nil, err
	}

	resumeKey, err := s.storeResume(ctx, req.Resume)
	if err != nil {
		return nil, err
	}

	var created *models.Application
	err = s.store.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		app, err := repos.Applications().Create(ctx, &models.Application{
			UserID:      user.ID,
			JobID:       req.JobID,
			FullName:    strings.TrimSpace(req.FullName),
			Email:       strings.TrimSpace(req.Email),
			Phone:       strings.TrimSpace(req.Phone),
			LinkedIn:    optional(req.LinkedIn),
			ResumeKey:   resumeKey,
			Portfolio:   optional(req.Portfolio),
			CoverLetter: optional(req.CoverLetter),
			Status:      models.ApplicationStatusNew,
		})
		if err != nil {
			if storage.ConflictConstraint(err) == constraintOneApplicationPerJob {
				return ErrAlreadyApplied
			}
			return MapRepoError(err, "creating application")
		}

		if err := s.notifier.ApplicationSubmitted(ctx, repos, app); err != nil {
			return err
		}
		created = app
		return nil
	})
	if err != nil {
		s.discardResume(ctx, resumeKey)
		return nil, err
	}

	s.log.Info(ctx, "application submitted",
		"application_id", created.ID, "job_id", created.JobID, "user_id", created.UserID, "has_resume", created.HasResume())
	return created, nil
}

// storeResume validates and saves the upload, returning its key or nil when there is none.
func (s *applicationService) storeResume(ctx context.Context, resume *dto.ResumeFile) (*string, error) {
	if resume == nil || resume.Content == nil {
		return nil, nil
	}

	ext, ok := filestore.ResumeExtension(resume.Filename)
	if !ok {
		return nil, fieldError(ErrValidation, "resume", "Upload a PDF, DOC or DOCX file.")
	}
	if s.maxResumeBytes > 0 && resume.Size > s.maxResumeBytes {
		return nil, fieldError(ErrValidation, "resume",
			fmt.Sprintf("The file is too large. Maximum size is %s.", humanSize(s.maxResumeBytes)))
	}
	if s.files == nil {
		return nil, fmt.Errorf("internal error saving resume: no file store configured")
	}

	key := filestore.NewResumeKey(s.now(), ext)
	if err := s.files.Save(ctx, key, resume.Content, resume.Size, filestore.ContentType(key)); err != nil {
		return nil, fmt.Errorf("internal error saving resume: %w", err)
	}
	return &key, nil
}

func humanSize(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%d MB", n>>20)
	}
	return fmt.Sprintf("%d KB", n>>10)
}

func (s *applicationService) discardResume(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	if err := s.files.Delete(context.WithoutCancel(ctx), *key); err != nil {
		s.log.Warn(ctx, "failed to remove orphaned resume", "key", *key, "error", err)
	}
}

func (s *applicationService) ListApplications(ctx context.Context, actor *models.User, req *dto.ListApplicationsRequest) ([]models.Application, error) {
	if !models.IsAdminUser(actor) {
		return nil, ErrForbidden
	}

	apps, err := s.store.Applications().List(ctx, storage.ApplicationFilter{
		Status: strings.TrimSpace(req.Status),
		Search: strings.TrimSpace(req.Search),
	})
	if err != nil {
		return nil, MapRepoError(err, "listing applications")
	}
	return apps, nil
}

func (s *applicationService) GetApplication(ctx context.Context, actor *models.User, id int64) (*models.Application, error) {
	if !models.IsAdminUser(actor) {
		return nil, ErrForbidden
	}

	app, err := s.store.Applications().GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %d", id))
	}
	return app, nil
}

func (s *applicationService) OpenResume(ctx context.Context, actor *models.User, id int64) (io.ReadCloser, string, error) {
	app, err := s.GetApplication(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if !app.HasResume() || s.files == nil {
		return nil, "", fmt.Errorf("%w: application %d has no resume", ErrNotFound, id)
	}

	rc, err := s.files.Open(ctx, *app.ResumeKey)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: resume of application %d", ErrNotFound, id)
		}
		return nil, "", fmt.Errorf("internal error opening resume: %w", err)
	}
	return rc, *app.ResumeKey, nil
}

// UpdateStatus stores the new status and notifies the applicant once per actual change.
func (s *applicationService) UpdateStatus(ctx context.Context, actor *models.User, req *dto.UpdateStatusRequest) (*models.Application, bool, error) {
	if !models.IsAdminUser(actor) {
		return nil, false, ErrForbidden
	}

	status := models.ApplicationStatus(strings.TrimSpace(req.Status))
	if !status.IsValid() {
		return nil, false, ErrInvalidStatus
	}

	var (
		result   *models.Application
		previous models.ApplicationStatus
		changed  bool
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		app, err := repos.Applications().GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return MapRepoError(err, fmt.Sprintf("fetching application %d", req.ID))
		}

		previous = app.Status
		if previous == status {
			result = app
			return nil
		}

		updated, err := repos.Applications().UpdateStatus(ctx, app.ID, status)
		if err != nil {
			return MapRepoError(err, fmt.Sprintf("updating application %d", app.ID))
		}
		if err := s.notifier.StatusChanged(ctx, repos, updated, previous); err != nil {
			return err
		}

		result = updated
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		s.log.Info(ctx, "application status changed",
			"application_id", result.ID, "from", previous, "to", result.Status, "admin_id", actor.ID)
	}
	return result, changed, nil
}
