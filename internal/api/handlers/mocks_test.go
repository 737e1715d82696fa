package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"jobboard/internal/api/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/session"
	"jobboard/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock type for services.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*models.User, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

var _ services.UserService = (*MockUserService)(nil)

// MockJobService is a mock type for services.JobService
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobService) GetActiveJob(ctx context.Context, id int64) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) CreateJob(ctx context.Context, actor *models.User, req *dto.CreateJobRequest) (*models.Job, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) UpdateJob(ctx context.Context, actor *models.User, req *dto.UpdateJobRequest) (*models.Job, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) ListAllJobs(ctx context.Context, actor *models.User) ([]models.Job, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobService) EnsureJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Job), args.Bool(1), args.Error(2)
}

var _ services.JobService = (*MockJobService)(nil)

// MockApplicationService is a mock type for services.ApplicationService
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) PrepareApplication(ctx context.Context, user *models.User, jobID int64) (*models.Job, *dto.ApplicationInitial, error) {
	args := m.Called(ctx, user, jobID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Job), args.Get(1).(*dto.ApplicationInitial), args.Error(2)
}

func (m *MockApplicationService) Apply(ctx context.Context, user *models.User, req *dto.ApplyRequest) (*models.Application, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) ListApplications(ctx context.Context, actor *models.User, req *dto.ListApplicationsRequest) ([]models.Application, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationService) GetApplication(ctx context.Context, actor *models.User, id int64) (*models.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) OpenResume(ctx context.Context, actor *models.User, id int64) (io.ReadCloser, string, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, actor *models.User, req *dto.UpdateStatusRequest) (*models.Application, bool, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Application), args.Bool(1), args.Error(2)
}

var _ services.ApplicationService = (*MockApplicationService)(nil)

// MockNotificationService is a mock type for services.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListUnread(ctx context.Context, userID int64) ([]models.Notification, int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

var _ services.NotificationService = (*MockNotificationService)(nil)

// MockSessionManager is a mock type for handlers.SessionManager
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Create(ctx context.Context, userID int64) (*session.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionManager) Destroy(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// --- Helpers ---

var (
	testAdmin  = &models.User{ID: 1, Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	testSeeker = &models.User{ID: 2, Username: "alice", Email: "alice@example.com", Role: models.RoleJobSeeker, IsActive: true}
)

// newRouter returns a test engine whose requests run as user (nil = anonymous).
func newRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			middleware.SetCurrentUser(c, user)
		}
		c.Next()
	})
	return router
}

func newSession(token string) *session.Session {
	return &session.Session{ID: "sid", UserID: 2, Token: token, ExpiresAt: time.Now().Add(time.Hour)}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
