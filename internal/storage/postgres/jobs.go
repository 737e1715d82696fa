// internal/storage/postgres/jobs.go
package postgres

import (
	"context"

	"jobboard/internal/dbx"
	"jobboard/internal/models"
	"jobboard/internal/storage"
)

const jobColumns = `id, title, company_name, location, description, requirements, responsibilities, salary_range, job_type, is_active, slug, posted_date, updated_date`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db dbx.DBTX
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db dbx.DBTX) *JobRepo {
	return &JobRepo{db: db}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

func scanJob(row rowScanner) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.CompanyName,
		&j.Location,
		&j.Description,
		&j.Requirements,
		&j.Responsibilities,
		&j.SalaryRange,
		&j.JobType,
		&j.IsActive,
		&j.Slug,
		&j.PostedDate,
		&j.UpdatedDate,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting. The slug must already be set.
func (r *JobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `
		INSERT INTO jobs (title, company_name, location, description, requirements, responsibilities, salary_range, job_type, is_active, slug, posted_date, updated_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + jobColumns

	created, err := scanJob(r.db.QueryRowContext(ctx, query,
		job.Title,
		job.CompanyName,
		job.Location,
		job.Description,
		job.Requirements,
		job.Responsibilities,
		job.SalaryRange,
		job.JobType,
		job.IsActive,
		job.Slug,
	))
	if err != nil {
		return nil, mapError(err, "create job")
	}
	return created, nil
}

// GetByID retrieves a job regardless of its active flag.
func (r *JobRepo) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get job by id")
	}
	return j, nil
}

// GetActiveByID retrieves a job only if it is active.
func (r *JobRepo) GetActiveByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND is_active = TRUE`
	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get active job by id")
	}
	return j, nil
}

// GetByTitleAndCompany retrieves the oldest job with the exact title and company.
func (r *JobRepo) GetByTitleAndCompany(ctx context.Context, title, companyName string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE title = $1 AND company_name = $2 ORDER BY id LIMIT 1`
	j, err := scanJob(r.db.QueryRowContext(ctx, query, title, companyName))
	if err != nil {
		return nil, mapError(err, "get job by title and company")
	}
	return j, nil
}

// ListActive returns active jobs, newest first.
func (r *JobRepo) ListActive(ctx context.Context) ([]models.Job, error) {
	query := buildListQuery(`SELECT `+jobColumns+` FROM jobs`, []string{"is_active = TRUE"}, "posted_date DESC, id DESC")
	return r.list(ctx, query, "list active jobs")
}

// ListAll returns every job, newest first.
func (r *JobRepo) ListAll(ctx context.Context) ([]models.Job, error) {
	query := buildListQuery(`SELECT `+jobColumns+` FROM jobs`, nil, "posted_date DESC, id DESC")
	return r.list(ctx, query, "list jobs")
}

func (r *JobRepo) list(ctx context.Context, query, operation string, args ...any) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, operation)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, mapError(err, operation)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, operation)
	}
	return jobs, nil
}

// Update stores every editable field of job. The slug column is never touched.
func (r *JobRepo) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET title = $1, company_name = $2, location = $3, description = $4, requirements = $5,
		    responsibilities = $6, salary_range = $7, job_type = $8, is_active = $9, updated_date = NOW()
		WHERE id = $10
		RETURNING ` + jobColumns

	updated, err := scanJob(r.db.QueryRowContext(ctx, query,
		job.Title,
		job.CompanyName,
		job.Location,
		job.Description,
		job.Requirements,
		job.Responsibilities,
		job.SalaryRange,
		job.JobType,
		job.IsActive,
		job.ID,
	))
	if err != nil {
		return nil, mapError(err, "update job")
	}
	return updated, nil
}
