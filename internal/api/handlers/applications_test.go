package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupApplicationRouter(user *models.User, svc *MockApplicationService) *gin.Engine {
	h := handlers.NewApplicationHandler(svc, validation.New(), logging.Nop())
	router := newRouter(user)
	router.GET("/applications/apply/:jobId/", h.ApplyForm)
	router.POST("/applications/apply/:jobId/", h.Apply)
	router.GET("/applications/admin/applications/", h.ListApplications)
	router.GET("/applications/api/application/:id/", h.GetApplication)
	router.GET("/applications/api/application/:id/resume/", h.DownloadResume)
	router.POST("/applications/api/application/:id/update-status/", h.UpdateStatus)
	return router
}

// multipartRequest builds an apply form. A non-empty filename attaches content as the resume.
func multipartRequest(t *testing.T, target string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, target, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// expectApplicable lets the pre-submission check for job 3 pass.
func expectApplicable(svc *MockApplicationService, user *models.User) {
	job := sampleJob(3, "Backend")
	svc.On("PrepareApplication", mock.Anything, user, int64(3)).Return(&job, &dto.ApplicationInitial{}, nil)
}

func applyFields() map[string]string {
	return map[string]string{
		"full_name":    "Alice Applicant",
		"email":        "alice@example.com",
		"phone":        "555-0100",
		"cover_letter": "Hire me.",
	}
}

func sampleApplication(resume bool) *models.Application {
	app := &models.Application{
		ID:          11,
		UserID:      testSeeker.ID,
		JobID:       3,
		FullName:    "Alice Applicant",
		Email:       "alice@example.com",
		Phone:       "555-0100",
		Status:      models.ApplicationStatusReviewing,
		AppliedDate: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC),
		JobTitle:    "Backend Engineer",
	}
	if resume {
		key := "resumes/2024/06/01/abc.pdf"
		app.ResumeKey = &key
	}
	return app
}

func TestApplyForm(t *testing.T) {
	t.Run("prefills from profile", func(t *testing.T) {
		svc := new(MockApplicationService)
		job := sampleJob(3, "Backend")
		phone := "555-0100"
		initial := &dto.ApplicationInitial{FullName: "Alice A", Email: "alice@example.com", Phone: &phone}
		svc.On("PrepareApplication", mock.Anything, testSeeker, int64(3)).Return(&job, initial, nil)

		w := serve(setupApplicationRouter(testSeeker, svc), newRequest(http.MethodGet, "/applications/apply/3/"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.ApplyFormResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Alice A", resp.Initial.FullName)
		assert.Equal(t, int64(3), resp.Job.ID)
		assert.Nil(t, resp.Initial.LinkedIn)
	})

	t.Run("already applied", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("PrepareApplication", mock.Anything, testSeeker, int64(3)).Return(nil, nil, services.ErrAlreadyApplied)

		w := serve(setupApplicationRouter(testSeeker, svc), newRequest(http.MethodGet, "/applications/apply/3/"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"You have already applied for this job."}`, w.Body.String())
	})
}

func TestApply(t *testing.T) {
	t.Run("with resume", func(t *testing.T) {
		svc := new(MockApplicationService)
		expectApplicable(svc, testSeeker)
		var gotResume []byte
		svc.On("Apply", mock.Anything, testSeeker, mock.MatchedBy(func(req *dto.ApplyRequest) bool {
			return req.JobID == 3 && req.UserID == testSeeker.ID && req.FullName == "Alice Applicant" &&
				req.Resume != nil && req.Resume.Filename == "cv.pdf" && req.Resume.Size == 9
		})).Run(func(args mock.Arguments) {
			req := args.Get(2).(*dto.ApplyRequest)
			gotResume, _ = io.ReadAll(req.Resume.Content)
		}).Return(sampleApplication(true), nil)

		req := multipartRequest(t, "/applications/apply/3/", applyFields(), "cv.pdf", []byte("%PDF-1.4\n"))
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Application submitted successfully!"}`, w.Body.String())
		assert.Equal(t, "%PDF-1.4\n", string(gotResume))
		svc.AssertExpectations(t)
	})

	t.Run("without resume", func(t *testing.T) {
		svc := new(MockApplicationService)
		expectApplicable(svc, testSeeker)
		svc.On("Apply", mock.Anything, testSeeker, mock.MatchedBy(func(req *dto.ApplyRequest) bool {
			return req.Resume == nil && req.CoverLetter == "Hire me."
		})).Return(sampleApplication(false), nil)

		req := multipartRequest(t, "/applications/apply/3/", applyFields(), "", nil)
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		require.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("url encoded form", func(t *testing.T) {
		svc := new(MockApplicationService)
		expectApplicable(svc, testSeeker)
		svc.On("Apply", mock.Anything, testSeeker, mock.Anything).Return(sampleApplication(false), nil)

		req := formRequest(http.MethodPost, "/applications/apply/3/", "full_name=Alice&email=alice%40example.com&phone=555")
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("already applied with incomplete form", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("PrepareApplication", mock.Anything, testSeeker, int64(3)).Return(nil, nil, services.ErrAlreadyApplied)

		req := multipartRequest(t, "/applications/apply/3/", map[string]string{"full_name": "A"}, "", nil)
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"You have already applied for this job."}`, w.Body.String())
		svc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate", func(t *testing.T) {
		svc := new(MockApplicationService)
		expectApplicable(svc, testSeeker)
		svc.On("Apply", mock.Anything, testSeeker, mock.Anything).Return(nil, services.ErrAlreadyApplied)

		req := multipartRequest(t, "/applications/apply/3/", applyFields(), "", nil)
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), services.MsgAlreadyApplied)
	})

	t.Run("invalid fields", func(t *testing.T) {
		svc := new(MockApplicationService)
		expectApplicable(svc, testSeeker)
		fields := applyFields()
		fields["email"] = "not-an-email"
		fields["phone"] = strings.Repeat("5", 16)
		fields["linkedin"] = "linkedin"

		req := multipartRequest(t, "/applications/apply/3/", fields, "", nil)
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Enter a valid email address.", resp.Errors["email"])
		assert.Equal(t, "Ensure this value has at most 15 characters.", resp.Errors["phone"])
		assert.Equal(t, "Enter a valid URL.", resp.Errors["linkedin"])
		svc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad resume", func(t *testing.T) {
		svc := new(MockApplicationService)
		expectApplicable(svc, testSeeker)
		svc.On("Apply", mock.Anything, testSeeker, mock.Anything).
			Return(nil, services.FieldErrors{"resume": "Unsupported file extension. Allowed: .pdf, .doc, .docx"})

		req := multipartRequest(t, "/applications/apply/3/", applyFields(), "cv.exe", []byte("MZ"))
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"resume"`)
	})

	t.Run("closed job with incomplete form", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("PrepareApplication", mock.Anything, testSeeker, int64(3)).Return(nil, nil, services.ErrNotFound)

		req := multipartRequest(t, "/applications/apply/3/", map[string]string{"full_name": "A"}, "", nil)
		w := serve(setupApplicationRouter(testSeeker, svc), req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
		svc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListApplications(t *testing.T) {
	svc := new(MockApplicationService)
	svc.On("ListApplications", mock.Anything, testAdmin, &dto.ListApplicationsRequest{Status: "reviewing", Search: "ali"}).
		Return([]models.Application{*sampleApplication(true)}, nil)

	w := serve(setupApplicationRouter(testAdmin, svc), newRequest(http.MethodGet, "/applications/admin/applications/?status=reviewing&search=ali"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ApplicationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "reviewing", resp.Status)
	assert.Equal(t, "ali", resp.Search)
	require.Len(t, resp.Applications, 1)
	assert.Equal(t, "Reviewing", resp.Applications[0].StatusLabel)
	assert.True(t, resp.Applications[0].HasResume)
	svc.AssertExpectations(t)
}

func TestListApplications_Forbidden(t *testing.T) {
	svc := new(MockApplicationService)
	svc.On("ListApplications", mock.Anything, testSeeker, mock.Anything).Return(nil, services.ErrForbidden)

	w := serve(setupApplicationRouter(testSeeker, svc), newRequest(http.MethodGet, "/applications/admin/applications/"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestGetApplication(t *testing.T) {
	tests := []struct {
		name          string
		resume        bool
		wantResumeURL any
	}{
		{name: "with resume", resume: true, wantResumeURL: "/applications/api/application/11/resume/"},
		{name: "without resume", resume: false, wantResumeURL: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockApplicationService)
			svc.On("GetApplication", mock.Anything, testAdmin, int64(11)).Return(sampleApplication(tt.resume), nil)

			w := serve(setupApplicationRouter(testAdmin, svc), newRequest(http.MethodGet, "/applications/api/application/11/"))

			require.Equal(t, http.StatusOK, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantResumeURL, resp["resume_url"])
			assert.Equal(t, "June 01, 2024", resp["applied_date"])
			assert.Equal(t, "reviewing", resp["status"])
			assert.Equal(t, "Backend Engineer", resp["job_title"])
		})
	}
}

func TestDownloadResume(t *testing.T) {
	t.Run("streams file", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("OpenResume", mock.Anything, testAdmin, int64(11)).
			Return(io.NopCloser(strings.NewReader("%PDF-1.4")), "resumes/2024/06/01/abc.pdf", nil)

		w := serve(setupApplicationRouter(testAdmin, svc), newRequest(http.MethodGet, "/applications/api/application/11/resume/"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="abc.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF-1.4", w.Body.String())
	})

	t.Run("no resume", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("OpenResume", mock.Anything, testAdmin, int64(11)).Return(nil, "", services.ErrNotFound)

		w := serve(setupApplicationRouter(testAdmin, svc), newRequest(http.MethodGet, "/applications/api/application/11/resume/"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("changes status", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("UpdateStatus", mock.Anything, testAdmin, &dto.UpdateStatusRequest{ID: 11, Status: "interview_scheduled"}).
			Return(sampleApplication(false), true, nil)

		w := serve(setupApplicationRouter(testAdmin, svc),
			formRequest(http.MethodPost, "/applications/api/application/11/update-status/", "status=interview_scheduled"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Status updated successfully!"}`, w.Body.String())
		svc.AssertExpectations(t)
	})

	invalid := map[string]string{
		"unknown value": "status=hired",
		"missing":       "",
		"wrong case":    "status=Reviewing",
	}
	for name, body := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			svc := new(MockApplicationService)
			w := serve(setupApplicationRouter(testAdmin, svc),
				formRequest(http.MethodPost, "/applications/api/application/11/update-status/", body))

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"success":false,"message":"Invalid status."}`, w.Body.String())
			svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("non admin", func(t *testing.T) {
		svc := new(MockApplicationService)
		w := serve(setupApplicationRouter(testSeeker, svc),
			jsonRequest(http.MethodPost, "/applications/api/application/11/update-status/", `{"status":"rejected"}`))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("missing application", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("UpdateStatus", mock.Anything, testAdmin, mock.Anything).Return(nil, false, services.ErrNotFound)

		w := serve(setupApplicationRouter(testAdmin, svc),
			jsonRequest(http.MethodPost, "/applications/api/application/12/update-status/", `{"status":"rejected"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := new(MockApplicationService)
		svc.On("UpdateStatus", mock.Anything, testAdmin, mock.Anything).Return(nil, false, errors.New("connection reset"))

		w := serve(setupApplicationRouter(testAdmin, svc),
			jsonRequest(http.MethodPost, "/applications/api/application/11/update-status/", `{"status":"rejected"}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}
