package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobboard/internal/api/middleware"
	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/session"
	"jobboard/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const homePath = "/"

// SessionManager starts and ends login sessions.
type SessionManager interface {
	Create(ctx context.Context, userID int64) (*session.Session, error)
	Destroy(ctx context.Context, token string) error
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AccountHandler holds dependencies for account operations.
type AccountHandler struct {
	users     services.UserService
	sessions  SessionManager
	cookie    CookieConfig
	validator *validator.Validate
	log       logging.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(users services.UserService, sessions SessionManager, cookie CookieConfig, validate *validator.Validate, log logging.Logger) *AccountHandler {
	return &AccountHandler{
		users:     users,
		sessions:  sessions,
		cookie:    cookie,
		validator: validate,
		log:       log,
	}
}

// RegisterForm godoc
// @Summary      Registration form
// @Description  Lists the registration fields. Authenticated callers are redirected home.
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  dto.AuthFormResponse
// @Success      302
// @Router       /accounts/register/ [get]
func (h *AccountHandler) RegisterForm(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, homePath)
		return
	}
	c.JSON(http.StatusOK, dto.AuthFormResponse{
		Form:   "register",
		Fields: []string{"username", "email", "password1", "password2"},
	})
}

// LoginForm godoc
// @Summary      Login form
// @Description  Lists the login fields and echoes a local next path. Authenticated callers are redirected home.
// @Tags         accounts
// @Produce      json
// @Param        next query string false "Where to go after login"
// @Success      200  {object}  dto.AuthFormResponse
// @Success      302
// @Router       /accounts/login/ [get]
func (h *AccountHandler) LoginForm(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, homePath)
		return
	}
	resp := dto.AuthFormResponse{Form: "login", Fields: []string{"username", "password"}}
	if next := c.Query("next"); next != "" {
		resp.Next = SafeRedirect(next)
	}
	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary      Create an account
// @Description  Registers a job seeker and logs them in. Authenticated callers are redirected home.
// @Tags         accounts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        user body      dto.RegisterRequest true "Account details"
// @Success      201  {object}  dto.AuthResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /accounts/register/ [post]
func (h *AccountHandler) Register(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, homePath)
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.log, "registering user", err)
		return
	}

	h.startSession(c, user, http.StatusCreated, "Account created successfully!", homePath)
}

// Login godoc
// @Summary      Log in
// @Description  Starts a session. The optional next parameter is honored when it is a local path.
// @Tags         accounts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        credentials body dto.LoginRequest true "Credentials"
// @Param        next query string false "Where to go after login"
// @Success      200  {object}  dto.AuthResponse
// @Failure      400  {object}  dto.MessageResponse
// @Router       /accounts/login/ [post]
func (h *AccountHandler) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, homePath)
		return
	}

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	next := req.Next
	if next == "" {
		next = c.Query("next")
	}

	user, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.log, "logging in", err)
		return
	}

	h.startSession(c, user, http.StatusOK, fmt.Sprintf("Welcome back, %s!", user.Username), SafeRedirect(next))
}

func (h *AccountHandler) startSession(c *gin.Context, user *models.User, status int, message, redirect string) {
	sess, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.log, "creating session", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, sess.Token, int(time.Until(sess.ExpiresAt).Seconds()), "/", "", h.cookie.Secure, true)
	middleware.SetCurrentUser(c, user)

	c.JSON(status, dto.AuthResponse{
		Success:  true,
		Message:  message,
		Redirect: redirect,
		Token:    sess.Token,
		User:     MapUserModelToUserResponse(user),
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the caller's session and clears the cookie.
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /accounts/logout/ [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			h.log.Warn(c.Request.Context(), "Error revoking session", "error", err)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, dto.MessageResponse{
		Success:  true,
		Message:  "You have been logged out successfully.",
		Redirect: homePath,
	})
}

// GetProfile godoc
// @Summary      Current account
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /accounts/profile/ [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, MapUserModelToUserResponse(user))
}

// UpdateProfile godoc
// @Summary      Edit the current account
// @Tags         accounts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        profile body dto.UpdateProfileRequest true "Profile fields"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /accounts/profile/ [post]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.UserID = user.ID
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.log, "updating profile", err)
		return
	}
	c.JSON(http.StatusOK, MapUserModelToUserResponse(updated))
}

// SafeRedirect returns next when it is a path on this site, otherwise "/".
func SafeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return homePath
	}
	return next
}
