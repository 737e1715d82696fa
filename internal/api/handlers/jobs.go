package handlers

import (
	"net/http"

	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
	log       logging.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate, log logging.Logger) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
		log:       log,
	}
}

// ListActiveJobs godoc
// @Summary      List open jobs
// @Description  Active jobs, newest first.
// @Tags         jobs
// @Produce      json
// @Success      200 {object}  dto.JobListResponse
// @Router       / [get]
func (h *JobHandler) ListActiveJobs(c *gin.Context) {
	jobs, err := h.service.ListActiveJobs(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, "listing active jobs", err)
		return
	}

	items := make([]dto.JobListItem, 0, len(jobs))
	for i := range jobs {
		items = append(items, MapJobModelToListItem(&jobs[i]))
	}
	c.JSON(http.StatusOK, dto.JobListResponse{Count: len(items), Jobs: items})
}

// GetJobDetail godoc
// @Summary      Job detail
// @Description  Inactive and unknown jobs are reported as 404.
// @Tags         jobs
// @Produce      json
// @Param        id path      int true  "Job ID"
// @Success      200 {object}  dto.JobDetailResponse
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /jobs/api/job/{id}/ [get]
func (h *JobHandler) GetJobDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	job, err := h.service.GetActiveJob(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, "fetching job", err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToDetailResponse(job))
}

// CreateJob godoc
// @Summary      Post a job
// @Description  Admin only. The slug is derived from title and company.
// @Tags         jobs
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        job body      dto.CreateJobRequest true "Job details"
// @Success      201 {object}  dto.JobMutationResponse
// @Failure      400 {object}  dto.ValidationErrorResponse
// @Failure      403 {object}  dto.ErrorResponse
// @Router       /jobs/create/ [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	if !models.IsAdminUser(user) {
		respondServiceError(c, h.log, "creating job", services.ErrForbidden)
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), user, &req)
	if err != nil {
		respondServiceError(c, h.log, "creating job", err)
		return
	}

	c.JSON(http.StatusCreated, dto.JobMutationResponse{
		Success: true,
		Message: "Job posted successfully!",
		Job:     MapJobModelToJobResponse(job),
	})
}

// UpdateJob godoc
// @Summary      Edit a job
// @Description  Admin only. Only the fields present are changed; the slug never changes.
// @Tags         jobs
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id  path      int true "Job ID"
// @Param        job body      dto.UpdateJobRequest true "Fields to change"
// @Success      200 {object}  dto.JobMutationResponse
// @Failure      400 {object}  dto.ValidationErrorResponse
// @Failure      403 {object}  dto.ErrorResponse
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /jobs/{id}/update/ [post]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !models.IsAdminUser(user) {
		respondServiceError(c, h.log, "updating job", services.ErrForbidden)
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	job, err := h.service.UpdateJob(c.Request.Context(), user, &req)
	if err != nil {
		respondServiceError(c, h.log, "updating job", err)
		return
	}

	c.JSON(http.StatusOK, dto.JobMutationResponse{
		Success: true,
		Message: "Job updated successfully!",
		Job:     MapJobModelToJobResponse(job),
	})
}

// ListAllJobs godoc
// @Summary      List every job
// @Description  Admin only. Includes inactive jobs.
// @Tags         jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse
// @Failure      403 {object}  dto.ErrorResponse
// @Router       /jobs/admin/jobs/ [get]
func (h *JobHandler) ListAllJobs(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	jobs, err := h.service.ListAllJobs(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, h.log, "listing jobs", err)
		return
	}

	resp := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, resp)
}
