package dto

import "time"

// CreateJobRequest defines the structure for posting a new job.
type CreateJobRequest struct {
	Title            string `json:"title" form:"title" validate:"required,max=200"`
	CompanyName      string `json:"company_name" form:"company_name" validate:"required,max=200"`
	Location         string `json:"location" form:"location" validate:"required,max=200"`
	Description      string `json:"description" form:"description" validate:"required"`
	Requirements     string `json:"requirements" form:"requirements"`
	Responsibilities string `json:"responsibilities" form:"responsibilities"`
	SalaryRange      string `json:"salary_range" form:"salary_range" validate:"omitempty,max=100"`
	JobType          string `json:"job_type" form:"job_type" validate:"omitempty,max=50"`
	IsActive         *bool  `json:"is_active" form:"is_active"` // Defaults to true
}

// UpdateJobRequest updates only the fields that are present.
type UpdateJobRequest struct {
	ID               int64   `json:"-" form:"-"` // From URL path
	Title            *string `json:"title" form:"title" validate:"omitempty,min=1,max=200"`
	CompanyName      *string `json:"company_name" form:"company_name" validate:"omitempty,min=1,max=200"`
	Location         *string `json:"location" form:"location" validate:"omitempty,min=1,max=200"`
	Description      *string `json:"description" form:"description" validate:"omitempty,min=1"`
	Requirements     *string `json:"requirements" form:"requirements"`
	Responsibilities *string `json:"responsibilities" form:"responsibilities"`
	SalaryRange      *string `json:"salary_range" form:"salary_range" validate:"omitempty,max=100"`
	JobType          *string `json:"job_type" form:"job_type" validate:"omitempty,min=1,max=50"`
	IsActive         *bool   `json:"is_active" form:"is_active"`
}

// JobListItem is one row of the public job listing.
type JobListItem struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	CompanyName      string    `json:"company_name"`
	Location         string    `json:"location"`
	JobType          string    `json:"job_type"`
	SalaryRange      *string   `json:"salary_range"`
	ShortDescription string    `json:"short_description"`
	Slug             string    `json:"slug"`
	PostedDate       time.Time `json:"posted_date"`
}

// JobListResponse wraps the public job listing.
type JobListResponse struct {
	Count int           `json:"count"`
	Jobs  []JobListItem `json:"jobs"`
}

// JobDetailResponse is the job detail returned to the listing modal.
type JobDetailResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Company          string  `json:"company"`
	Location         string  `json:"location"`
	Description      string  `json:"description"`
	Requirements     *string `json:"requirements"`
	Responsibilities *string `json:"responsibilities"`
	SalaryRange      *string `json:"salary_range"`
	JobType          string  `json:"job_type"`
	PostedDate       string  `json:"posted_date"`
}

// JobResponse is the full admin view of a job.
type JobResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	CompanyName      string    `json:"company_name"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	Requirements     *string   `json:"requirements"`
	Responsibilities *string   `json:"responsibilities"`
	SalaryRange      *string   `json:"salary_range"`
	JobType          string    `json:"job_type"`
	IsActive         bool      `json:"is_active"`
	Slug             string    `json:"slug"`
	PostedDate       time.Time `json:"posted_date"`
	UpdatedDate      time.Time `json:"updated_date"`
}

// JobMutationResponse is returned by create and update.
type JobMutationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Job     JobResponse `json:"job"`
}
