package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "currentUser"
	tokenCtx            = "sessionToken"

	// LoginPath is where browsers are sent when a page needs a login.
	LoginPath = "/accounts/login/"
)

// SessionResolver resolves a session token to its session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

// UserLoader loads the account behind a session.
type UserLoader interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// SessionAuth loads the caller from the session cookie or a Bearer token.
// Anonymous requests pass through; use RequireAuth to reject them.
func SessionAuth(sessions SessionResolver, users UserLoader, cookieName string, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		sess, err := sessions.Resolve(ctx, token)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidSession) {
				log.Error(ctx, "Auth middleware: failed to resolve session", "error", err)
			}
			c.Next()
			return
		}

		user, err := users.GetProfile(ctx, sess.UserID)
		if err != nil {
			if !errors.Is(err, services.ErrNotFound) {
				log.Error(ctx, "Auth middleware: failed to load user", "user_id", sess.UserID, "error", err)
			}
			c.Next()
			return
		}
		if !user.IsActive {
			c.Next()
			return
		}

		c.Set(userCtx, user)
		c.Set(tokenCtx, token)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader(authorizationHeader); authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) == 2 && strings.EqualFold(headerParts[0], "bearer") {
			return headerParts[1]
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireAuth rejects anonymous callers. Browsers are redirected to the
// login page, API clients get a 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		if WantsHTML(c) {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
}

// WantsHTML reports whether the client prefers an HTML response.
func WantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// CurrentUser returns the authenticated caller, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userCtx)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// SessionToken returns the token the caller authenticated with.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenCtx)
}

// SetCurrentUser is used by tests and by handlers that start a session mid-request.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userCtx, user)
}
