package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"jobboard/internal/api/handlers"
	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/transport/dto"
	"jobboard/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupJobRouter(user *models.User, svc *MockJobService) *gin.Engine {
	h := handlers.NewJobHandler(svc, validation.New(), logging.Nop())
	router := newRouter(user)
	router.GET("/", h.ListActiveJobs)
	router.GET("/jobs/api/job/:id/", h.GetJobDetail)
	router.POST("/jobs/create/", h.CreateJob)
	router.POST("/jobs/:id/update/", h.UpdateJob)
	router.GET("/jobs/admin/jobs/", h.ListAllJobs)
	return router
}

func sampleJob(id int64, title string) models.Job {
	salary := "$100k"
	return models.Job{
		ID:          id,
		Title:       title,
		CompanyName: "Acme",
		Location:    "Remote",
		Description: strings.Repeat("x", 160),
		SalaryRange: &salary,
		JobType:     models.DefaultJobType,
		IsActive:    true,
		Slug:        "slug-" + title,
		PostedDate:  time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		UpdatedDate: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestListActiveJobs(t *testing.T) {
	svc := new(MockJobService)
	svc.On("ListActiveJobs", mock.Anything).Return([]models.Job{sampleJob(2, "b"), sampleJob(1, "a")}, nil)

	w := serve(setupJobRouter(nil, svc), newRequest(http.MethodGet, "/"))

	require.Equal(t, http.StatusOK, w.Code)
	var got dto.JobListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	salary := "$100k"
	want := dto.JobListResponse{Count: 2, Jobs: []dto.JobListItem{
		{ID: 2, Title: "b", CompanyName: "Acme", Location: "Remote", JobType: "Full-time", SalaryRange: &salary,
			ShortDescription: strings.Repeat("x", 150) + "...", Slug: "slug-b", PostedDate: sampleJob(2, "b").PostedDate},
		{ID: 1, Title: "a", CompanyName: "Acme", Location: "Remote", JobType: "Full-time", SalaryRange: &salary,
			ShortDescription: strings.Repeat("x", 150) + "...", Slug: "slug-a", PostedDate: sampleJob(1, "a").PostedDate},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("job listing mismatch (-want +got):\n%s", diff)
	}
}

func TestListActiveJobs_Empty(t *testing.T) {
	svc := new(MockJobService)
	svc.On("ListActiveJobs", mock.Anything).Return([]models.Job{}, nil)

	w := serve(setupJobRouter(nil, svc), newRequest(http.MethodGet, "/"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"jobs":[]}`, w.Body.String())
}

func TestGetJobDetail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockJobService)
		job := sampleJob(7, "Backend")
		svc.On("GetActiveJob", mock.Anything, int64(7)).Return(&job, nil)

		w := serve(setupJobRouter(nil, svc), newRequest(http.MethodGet, "/jobs/api/job/7/"))

		require.Equal(t, http.StatusOK, w.Code)
		var got dto.JobDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Acme", got.Company)
		assert.Equal(t, "March 05, 2024", got.PostedDate)
		assert.Nil(t, got.Requirements)
	})

	t.Run("inactive or missing", func(t *testing.T) {
		svc := new(MockJobService)
		svc.On("GetActiveJob", mock.Anything, int64(8)).Return(nil, services.ErrNotFound)

		w := serve(setupJobRouter(nil, svc), newRequest(http.MethodGet, "/jobs/api/job/8/"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})

	t.Run("non numeric id", func(t *testing.T) {
		svc := new(MockJobService)
		w := serve(setupJobRouter(nil, svc), newRequest(http.MethodGet, "/jobs/api/job/abc/"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertNotCalled(t, "GetActiveJob", mock.Anything, mock.Anything)
	})
}

func TestCreateJob(t *testing.T) {
	body := `{"title":"Backend Engineer","company_name":"Acme","location":"Remote","description":"Build things."}`

	t.Run("admin", func(t *testing.T) {
		svc := new(MockJobService)
		job := sampleJob(3, "Backend Engineer")
		svc.On("CreateJob", mock.Anything, testAdmin, mock.MatchedBy(func(req *dto.CreateJobRequest) bool {
			return req.Title == "Backend Engineer" && req.IsActive == nil
		})).Return(&job, nil)

		w := serve(setupJobRouter(testAdmin, svc), jsonRequest(http.MethodPost, "/jobs/create/", body))

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.JobMutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Job posted successfully!", resp.Message)
		assert.Equal(t, int64(3), resp.Job.ID)
		svc.AssertExpectations(t)
	})

	nonAdminBodies := map[string]string{
		"valid body":   body,
		"empty body":   `{}`,
		"invalid body": `{"title":"","is_active":"yes"}`,
	}
	for name, payload := range nonAdminBodies {
		t.Run("non admin with "+name, func(t *testing.T) {
			svc := new(MockJobService)

			w := serve(setupJobRouter(testSeeker, svc), jsonRequest(http.MethodPost, "/jobs/create/", payload))

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			svc.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("missing required fields", func(t *testing.T) {
		svc := new(MockJobService)
		w := serve(setupJobRouter(testAdmin, svc), jsonRequest(http.MethodPost, "/jobs/create/", `{"title":"x"}`))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "This field is required.", resp.Errors["company_name"])
		assert.Equal(t, "This field is required.", resp.Errors["description"])
		svc.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc := new(MockJobService)
		svc.On("CreateJob", mock.Anything, testAdmin, mock.Anything).
			Return(nil, services.FieldErrors{"slug": services.MsgDuplicateSlug})

		w := serve(setupJobRouter(testAdmin, svc), jsonRequest(http.MethodPost, "/jobs/create/", body))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), services.MsgDuplicateSlug)
	})
}

func TestUpdateJob(t *testing.T) {
	t.Run("partial form update", func(t *testing.T) {
		svc := new(MockJobService)
		job := sampleJob(4, "Renamed")
		job.IsActive = false
		svc.On("UpdateJob", mock.Anything, testAdmin, mock.MatchedBy(func(req *dto.UpdateJobRequest) bool {
			return req.ID == 4 &&
				req.Title != nil && *req.Title == "Renamed" &&
				req.IsActive != nil && !*req.IsActive &&
				req.Location == nil
		})).Return(&job, nil)

		w := serve(setupJobRouter(testAdmin, svc), formRequest(http.MethodPost, "/jobs/4/update/", "title=Renamed&is_active=false"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.JobMutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Job updated successfully!", resp.Message)
		assert.False(t, resp.Job.IsActive)
		svc.AssertExpectations(t)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		svc := new(MockJobService)
		w := serve(setupJobRouter(testAdmin, svc), jsonRequest(http.MethodPost, "/jobs/4/update/", `{"title":""}`))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"title"`)
	})

	t.Run("non admin with blank title", func(t *testing.T) {
		svc := new(MockJobService)
		w := serve(setupJobRouter(testSeeker, svc), jsonRequest(http.MethodPost, "/jobs/4/update/", `{"title":""}`))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		svc.AssertNotCalled(t, "UpdateJob", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		svc := new(MockJobService)
		svc.On("UpdateJob", mock.Anything, testAdmin, mock.Anything).Return(nil, services.ErrNotFound)

		w := serve(setupJobRouter(testAdmin, svc), jsonRequest(http.MethodPost, "/jobs/99/update/", `{"location":"Berlin"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListAllJobs(t *testing.T) {
	t.Run("admin sees inactive jobs", func(t *testing.T) {
		svc := new(MockJobService)
		inactive := sampleJob(5, "old")
		inactive.IsActive = false
		svc.On("ListAllJobs", mock.Anything, testAdmin).Return([]models.Job{sampleJob(6, "new"), inactive}, nil)

		w := serve(setupJobRouter(testAdmin, svc), newRequest(http.MethodGet, "/jobs/admin/jobs/"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp []dto.JobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.False(t, resp[1].IsActive)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := new(MockJobService)
		svc.On("ListAllJobs", mock.Anything, testSeeker).Return(nil, services.ErrForbidden)

		w := serve(setupJobRouter(testSeeker, svc), newRequest(http.MethodGet, "/jobs/admin/jobs/"))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
