package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"jobboard/internal/filestore"
	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const resumeFormField = "resume"

// ApplicationHandler holds dependencies for application operations.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
	log       logging.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate, log logging.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validate,
		log:       log,
	}
}

// ApplyForm godoc
// @Summary      Apply form defaults
// @Description  Returns the job and the form values taken from the caller's profile.
// @Tags         applications
// @Produce      json
// @Param        jobId path      int true "Job ID"
// @Success      200   {object}  dto.ApplyFormResponse
// @Failure      400   {object}  dto.MessageResponse "Already applied"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /applications/apply/{jobId}/ [get]
func (h *ApplicationHandler) ApplyForm(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	jobID, ok := parseID(c, "jobId")
	if !ok {
		return
	}

	job, initial, err := h.service.PrepareApplication(c.Request.Context(), user, jobID)
	if err != nil {
		respondServiceError(c, h.log, "preparing application", err)
		return
	}

	c.JSON(http.StatusOK, dto.ApplyFormResponse{
		Job:     MapJobModelToDetailResponse(job),
		Initial: *initial,
	})
}

// Apply godoc
// @Summary      Apply for a job
// @Description  Multipart form with an optional resume file (.pdf, .doc, .docx).
// @Description  Unknown or closed jobs and repeat applications are rejected before the form is validated.
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        jobId path      int true "Job ID"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /applications/apply/{jobId}/ [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	jobID, ok := parseID(c, "jobId")
	if !ok {
		return
	}

	// Closed jobs and repeat applications are reported before any form errors.
	if _, _, err := h.service.PrepareApplication(c.Request.Context(), user, jobID); err != nil {
		respondServiceError(c, h.log, "submitting application", err)
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.JobID = jobID
	req.UserID = user.ID
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	fileHeader, err := c.FormFile(resumeFormField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		respondBindError(c, err)
		return
	default:
		file, err := fileHeader.Open()
		if err != nil {
			respondServiceError(c, h.log, "opening uploaded resume", err)
			return
		}
		defer file.Close()
		req.Resume = &dto.ResumeFile{Filename: fileHeader.Filename, Size: fileHeader.Size, Content: file}
	}

	if _, err := h.service.Apply(c.Request.Context(), user, &req); err != nil {
		respondServiceError(c, h.log, "submitting application", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Application submitted successfully!"})
}

// ListApplications godoc
// @Summary      List applications
// @Description  Admin only. status is an exact match, search a case-insensitive match on the applicant name.
// @Tags         applications
// @Produce      json
// @Param        status query     string false "Status filter"
// @Param        search query     string false "Name search"
// @Success      200    {object}  dto.ApplicationListResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /applications/admin/applications/ [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	apps, err := h.service.ListApplications(c.Request.Context(), user, &req)
	if err != nil {
		respondServiceError(c, h.log, "listing applications", err)
		return
	}

	items := make([]dto.ApplicationListItem, 0, len(apps))
	for i := range apps {
		items = append(items, MapApplicationModelToListItem(&apps[i]))
	}
	c.JSON(http.StatusOK, dto.ApplicationListResponse{
		Count:        len(items),
		Status:       req.Status,
		Search:       req.Search,
		Applications: items,
	})
}

// GetApplication godoc
// @Summary      Application detail
// @Description  Admin only. resume_url is null when no resume was uploaded.
// @Tags         applications
// @Produce      json
// @Param        id  path      int true "Application ID"
// @Success      200 {object}  dto.ApplicationDetailResponse
// @Failure      403 {object}  dto.ErrorResponse
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /applications/api/application/{id}/ [get]
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	app, err := h.service.GetApplication(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, h.log, "fetching application", err)
		return
	}

	var resumeURL *string
	if app.HasResume() {
		u := ResumeURL(app.ID)
		resumeURL = &u
	}
	c.JSON(http.StatusOK, MapApplicationModelToDetailResponse(app, resumeURL))
}

// ResumeURL is where the resume of application id can be downloaded.
func ResumeURL(id int64) string {
	return fmt.Sprintf("/applications/api/application/%d/resume/", id)
}

// DownloadResume godoc
// @Summary      Download a resume
// @Tags         applications
// @Produce      application/octet-stream
// @Param        id  path      int true "Application ID"
// @Success      200 {file}    file
// @Failure      403 {object}  dto.ErrorResponse
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /applications/api/application/{id}/resume/ [get]
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rc, key, err := h.service.OpenResume(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, h.log, "opening resume", err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, filestore.ContentType(key), rc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, path.Base(key)),
	})
}

// UpdateStatus godoc
// @Summary      Change an application's status
// @Description  Admin only. The applicant is notified when the status actually changes.
// @Tags         applications
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id     path      int true "Application ID"
// @Param        status body      dto.UpdateStatusRequest true "New status"
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.MessageResponse "Invalid status."
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /applications/api/application/{id}/update-status/ [post]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if !models.IsAdminUser(user) {
		respondServiceError(c, h.log, "updating application status", services.ErrForbidden)
		return
	}

	var req dto.UpdateStatusRequest
	// A body that cannot be decoded is treated like a missing status.
	_ = c.ShouldBind(&req)
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		respondServiceError(c, h.log, "updating application status", services.ErrInvalidStatus)
		return
	}

	if _, _, err := h.service.UpdateStatus(c.Request.Context(), user, &req); err != nil {
		respondServiceError(c, h.log, "updating application status", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Status updated successfully!"})
}
