package handlers

import (
	"net/http"

	"jobboard/internal/logging"
	"jobboard/internal/services"
	"jobboard/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the caller's notification inbox.
type NotificationHandler struct {
	service services.NotificationService
	log     logging.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service services.NotificationService, log logging.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

// ListUnread godoc
// @Summary      Unread notifications
// @Description  The ten newest unread notifications and the total unread count.
// @Tags         notifications
// @Produce      json
// @Success      200 {object}  dto.NotificationListResponse
// @Router       /applications/api/notifications/ [get]
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	notifications, count, err := h.service.ListUnread(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.log, "listing notifications", err)
		return
	}

	resp := dto.NotificationListResponse{
		Count:         count,
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
	}
	for i := range notifications {
		resp.Notifications = append(resp.Notifications, MapNotificationModelToResponse(&notifications[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead godoc
// @Summary      Mark one notification read
// @Description  Notifications of other users are reported as 404.
// @Tags         notifications
// @Produce      json
// @Param        id  path      int true "Notification ID"
// @Success      200 {object}  map[string]bool
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /applications/api/notifications/{id}/read/ [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), user.ID, id); err != nil {
		respondServiceError(c, h.log, "marking notification read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllRead godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Success      200 {object}  map[string]bool
// @Router       /applications/api/notifications/read-all/ [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	if _, err := h.service.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		respondServiceError(c, h.log, "marking notifications read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
