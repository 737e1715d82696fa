package handlers

import (
	"net/http"
	"strconv"

	"jobboard/internal/api/middleware"
	"jobboard/internal/models"
	"jobboard/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter. It replies 404 and
// returns false when the value is not one.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
		return 0, false
	}
	return id, true
}

// mustUser returns the authenticated caller. Routes using it sit behind RequireAuth.
func mustUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required"})
		return nil, false
	}
	return user, true
}

// MapUserModelToUserResponse converts a models.User to a dto.UserResponse
func MapUserModelToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       string(user.Role),
		Phone:      user.Phone,
		LinkedIn:   user.LinkedIn,
		IsAdmin:    models.IsAdminUser(user),
		DateJoined: user.CreatedAt,
	}
}

// MapJobModelToJobResponse converts a models.Job to the admin dto.JobResponse
func MapJobModelToJobResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:               job.ID,
		Title:            job.Title,
		CompanyName:      job.CompanyName,
		Location:         job.Location,
		Description:      job.Description,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
		SalaryRange:      job.SalaryRange,
		JobType:          job.JobType,
		IsActive:         job.IsActive,
		Slug:             job.Slug,
		PostedDate:       job.PostedDate,
		UpdatedDate:      job.UpdatedDate,
	}
}

const shortDescriptionLength = 150

// MapJobModelToListItem converts a models.Job to a row of the public listing
func MapJobModelToListItem(job *models.Job) dto.JobListItem {
	return dto.JobListItem{
		ID:               job.ID,
		Title:            job.Title,
		CompanyName:      job.CompanyName,
		Location:         job.Location,
		JobType:          job.JobType,
		SalaryRange:      job.SalaryRange,
		ShortDescription: job.ShortDescription(shortDescriptionLength),
		Slug:             job.Slug,
		PostedDate:       job.PostedDate,
	}
}

// MapJobModelToDetailResponse converts a models.Job to the detail modal payload
func MapJobModelToDetailResponse(job *models.Job) dto.JobDetailResponse {
	return dto.JobDetailResponse{
		ID:               job.ID,
		Title:            job.Title,
		Company:          job.CompanyName,
		Location:         job.Location,
		Description:      job.Description,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
		SalaryRange:      job.SalaryRange,
		JobType:          job.JobType,
		PostedDate:       job.PostedDate.Format(dto.DisplayDateFormat),
	}
}

// MapApplicationModelToListItem converts a models.Application to a row of the admin listing
func MapApplicationModelToListItem(app *models.Application) dto.ApplicationListItem {
	return dto.ApplicationListItem{
		ID:          app.ID,
		FullName:    app.FullName,
		Email:       app.Email,
		JobID:       app.JobID,
		JobTitle:    app.JobTitle,
		CompanyName: app.JobCompanyName,
		Status:      string(app.Status),
		StatusLabel: app.Status.Label(),
		HasResume:   app.HasResume(),
		AppliedDate: app.AppliedDate,
	}
}

// MapApplicationModelToDetailResponse converts a models.Application to the admin detail payload.
// resumeURL is nil when no resume was uploaded.
func MapApplicationModelToDetailResponse(app *models.Application, resumeURL *string) dto.ApplicationDetailResponse {
	return dto.ApplicationDetailResponse{
		ID:          app.ID,
		FullName:    app.FullName,
		Email:       app.Email,
		Phone:       app.Phone,
		LinkedIn:    app.LinkedIn,
		Portfolio:   app.Portfolio,
		CoverLetter: app.CoverLetter,
		Status:      string(app.Status),
		JobTitle:    app.JobTitle,
		AppliedDate: app.AppliedDate.Format(dto.DisplayDateFormat),
		ResumeURL:   resumeURL,
	}
}

// MapNotificationModelToResponse converts a models.Notification to a dto.NotificationResponse
func MapNotificationModelToResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}
