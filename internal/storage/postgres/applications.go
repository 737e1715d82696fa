package postgres

import (
	"context"
	"fmt"

	"jobboard/internal/dbx"
	"jobboard/internal/models"
	"jobboard/internal/storage"
)

const applicationColumns = `a.id, a.user_id, a.job_id, a.full_name, a.email, a.phone, a.linkedin, a.resume, a.portfolio, a.cover_letter, a.status, a.applied_date, a.updated_date, j.title, j.company_name`

const applicationFrom = ` FROM applications a JOIN jobs j ON j.id = a.job_id`

// ApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type ApplicationRepo struct {
	db dbx.DBTX
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db dbx.DBTX) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func scanApplication(row rowScanner) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.JobID,
		&a.FullName,
		&a.Email,
		&a.Phone,
		&a.LinkedIn,
		&a.ResumeKey,
		&a.Portfolio,
		&a.CoverLetter,
		&a.Status,
		&a.AppliedDate,
		&a.UpdatedDate,
		&a.JobTitle,
		&a.JobCompanyName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an application with status "new" unless app.Status is set.
// A second application for the same (user, job) fails with a storage.ConflictError.
func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	status := app.Status
	if status == "" {
		status = models.ApplicationStatusNew
	}

	query := `
		WITH a AS (
			INSERT INTO applications (user_id, job_id, full_name, email, phone, linkedin, resume, portfolio, cover_letter, status, applied_date, updated_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			RETURNING *
		)
		SELECT ` + applicationColumns + ` FROM a JOIN jobs j ON j.id = a.job_id`

	created, err := scanApplication(r.db.QueryRowContext(ctx, query,
		app.UserID,
		app.JobID,
		app.FullName,
		app.Email,
		app.Phone,
		app.LinkedIn,
		app.ResumeKey,
		app.Portfolio,
		app.CoverLetter,
		status,
	))
	if err != nil {
		return nil, mapError(err, "create application")
	}
	return created, nil
}

// GetByID retrieves an application together with its job title and company.
func (r *ApplicationRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + applicationFrom + ` WHERE a.id = $1`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get application by id")
	}
	return a, nil
}

// GetByIDForUpdate is GetByID holding a row lock until the transaction ends.
func (r *ApplicationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + applicationFrom + ` WHERE a.id = $1 FOR UPDATE OF a`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "lock application")
	}
	return a, nil
}

// ExistsForUserAndJob reports whether the user already applied to the job.
func (r *ApplicationRepo) ExistsForUserAndJob(ctx context.Context, userID, jobID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, "check existing application")
	}
	return exists, nil
}

// List returns applications matching filter, newest first.
func (r *ApplicationRepo) List(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	var conditions []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("a.full_name ILIKE $%d", len(args)))
	}

	query := buildListQuery(`SELECT `+applicationColumns+applicationFrom, conditions, "a.applied_date DESC, a.id DESC")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list applications")
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, mapError(err, "scan applications")
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list applications")
	}
	return apps, nil
}

// UpdateStatus sets the status of an application.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	query := `
		WITH a AS (
			UPDATE applications SET status = $1, updated_date = NOW()
			WHERE id = $2
			RETURNING *
		)
		SELECT ` + applicationColumns + ` FROM a JOIN jobs j ON j.id = a.job_id`

	a, err := scanApplication(r.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		return nil, mapError(err, "update application status")
	}
	return a, nil
}
