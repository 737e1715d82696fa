package dto

import (
	"io"
	"time"
)

// ResumeFile is an uploaded resume handed from the handler to the service.
type ResumeFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ApplyRequest defines the structure of an application submission.
type ApplyRequest struct {
	JobID       int64       `json:"-" form:"-"` // From URL path
	UserID      int64       `json:"-" form:"-"` // Set from session
	FullName    string      `json:"full_name" form:"full_name" validate:"required,max=200"`
	Email       string      `json:"email" form:"email" validate:"required,email,max=254"`
	Phone       string      `json:"phone" form:"phone" validate:"required,max=15"`
	LinkedIn    string      `json:"linkedin" form:"linkedin" validate:"omitempty,url,max=200"`
	Portfolio   string      `json:"portfolio" form:"portfolio" validate:"omitempty,url,max=200"`
	CoverLetter string      `json:"cover_letter" form:"cover_letter"`
	Resume      *ResumeFile `json:"-" form:"-"`
}

// ApplicationInitial holds the apply form defaults taken from the profile.
type ApplicationInitial struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
}

// ApplyFormResponse is returned when opening the apply form.
type ApplyFormResponse struct {
	Job     JobDetailResponse  `json:"job"`
	Initial ApplicationInitial `json:"initial"`
}

// ListApplicationsRequest holds the admin listing filters.
type ListApplicationsRequest struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

// ApplicationListItem is one row of the admin listing.
type ApplicationListItem struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	JobID       int64     `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	HasResume   bool      `json:"has_resume"`
	AppliedDate time.Time `json:"applied_date"`
}

// ApplicationListResponse wraps the admin listing.
type ApplicationListResponse struct {
	Count        int                   `json:"count"`
	Status       string                `json:"status"`
	Search       string                `json:"search"`
	Applications []ApplicationListItem `json:"applications"`
}

// ApplicationDetailResponse is the admin detail view.
type ApplicationDetailResponse struct {
	ID          int64   `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	LinkedIn    *string `json:"linkedin"`
	Portfolio   *string `json:"portfolio"`
	CoverLetter *string `json:"cover_letter"`
	Status      string  `json:"status"`
	JobTitle    string  `json:"job_title"`
	AppliedDate string  `json:"applied_date"`
	ResumeURL   *string `json:"resume_url"`
}

// UpdateStatusRequest defines the admin status change.
type UpdateStatusRequest struct {
	ID     int64  `json:"-" form:"-"` // From URL path
	Status string `json:"status" form:"status" validate:"required,application_status"`
}
