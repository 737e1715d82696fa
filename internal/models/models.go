package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// --- Role Enum ---
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleAdmin     Role = "admin"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, err := scanString(value, "Role")
	if err != nil {
		return err
	}
	v := Role(strVal)
	switch v {
	case RoleJobSeeker, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusNew                ApplicationStatus = "new"
	ApplicationStatusReviewing          ApplicationStatus = "reviewing"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status in display order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusNew,
	ApplicationStatusReviewing,
	ApplicationStatusInterviewScheduled,
	ApplicationStatusRejected,
}

// IsValid reports whether s is one of the fixed statuses.
func (s ApplicationStatus) IsValid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human readable form, e.g. "Interview Scheduled".
func (s ApplicationStatus) Label() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (s *ApplicationStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "ApplicationStatus")
	if err != nil {
		return err
	}
	v := ApplicationStatus(strVal)
	if !v.IsValid() {
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (s ApplicationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func scanString(value interface{}, typeName string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}

// User is an account that can log in. Admin capability is derived, see IsAdminUser.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Role         Role      `json:"role" db:"role"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	LinkedIn     *string   `json:"linkedin,omitempty" db:"linkedin"`
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdminUser reports whether u may perform admin operations.
func IsAdminUser(u *User) bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.IsSuperuser
}

// FullName returns "first last" or the username when both are empty.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Job is a posting. Slug is assigned once on first save and never recomputed.
type Job struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	CompanyName      string    `json:"company_name" db:"company_name"`
	Location         string    `json:"location" db:"location"`
	Description      string    `json:"description" db:"description"`
	Requirements     *string   `json:"requirements" db:"requirements"`
	Responsibilities *string   `json:"responsibilities" db:"responsibilities"`
	SalaryRange      *string   `json:"salary_range" db:"salary_range"`
	JobType          string    `json:"job_type" db:"job_type"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	Slug             string    `json:"slug" db:"slug"`
	PostedDate       time.Time `json:"posted_date" db:"posted_date"`
	UpdatedDate      time.Time `json:"updated_date" db:"updated_date"`
}

// DefaultJobType is used when a job is posted without a type.
const DefaultJobType = "Full-time"

// ShortDescription truncates the description to length runes followed by "...".
func (j *Job) ShortDescription(length int) string {
	r := []rune(j.Description)
	if len(r) > length {
		return string(r[:length]) + "..."
	}
	return j.Description
}

// Application links a user to a job. At most one per (UserID, JobID).
type Application struct {
	ID          int64             `json:"id" db:"id"`
	UserID      int64             `json:"user_id" db:"user_id"`
	JobID       int64             `json:"job_id" db:"job_id"`
	FullName    string            `json:"full_name" db:"full_name"`
	Email       string            `json:"email" db:"email"`
	Phone       string            `json:"phone" db:"phone"`
	LinkedIn    *string           `json:"linkedin" db:"linkedin"`
	ResumeKey   *string           `json:"-" db:"resume"`
	Portfolio   *string           `json:"portfolio" db:"portfolio"`
	CoverLetter *string           `json:"cover_letter" db:"cover_letter"`
	Status      ApplicationStatus `json:"status" db:"status"`
	AppliedDate time.Time         `json:"applied_date" db:"applied_date"`
	UpdatedDate time.Time         `json:"updated_date" db:"updated_date"`

	// Populated by queries that join the job.
	JobTitle       string `json:"job_title,omitempty" db:"-"`
	JobCompanyName string `json:"job_company_name,omitempty" db:"-"`
}

// HasResume reports whether a resume file was uploaded.
func (a *Application) HasResume() bool {
	return a.ResumeKey != nil && *a.ResumeKey != ""
}

// Notification is a message for the applicant about one of their applications.
type Notification struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	ApplicationID int64     `json:"application_id" db:"application_id"`
	Message       string    `json:"message" db:"message"`
	IsRead        bool      `json:"is_read" db:"is_read"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
