package dto

import "time"

// NotificationResponse is one unread notification.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse carries the latest unread notifications and the
// total unread count, which may exceed len(Notifications).
type NotificationListResponse struct {
	Count         int                    `json:"count"`
	Notifications []NotificationResponse `json:"notifications"`
}
