package services

import (
	"context"
	"fmt"

	"jobboard/internal/models"
	"jobboard/internal/storage"
)

// UnreadLimit caps how many unread notifications are returned at once.
const UnreadLimit = 10

type notificationService struct {
	store storage.Store
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(store storage.Store) NotificationService {
	return &notificationService{store: store}
}

func (s *notificationService) ListUnread(ctx context.Context, userID int64) ([]models.Notification, int, error) {
	notifications, err := s.store.Notifications().ListUnread(ctx, userID, UnreadLimit)
	if err != nil {
		return nil, 0, MapRepoError(err, "listing notifications")
	}
	count, err := s.store.Notifications().CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, MapRepoError(err, "counting notifications")
	}
	return notifications, count, nil
}

// MarkRead reports ErrNotFound for ids owned by someone else.
func (s *notificationService) MarkRead(ctx context.Context, userID, id int64) error {
	if err := s.store.Notifications().MarkRead(ctx, id, userID); err != nil {
		return MapRepoError(err, fmt.Sprintf("marking notification %d read", id))
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.store.Notifications().MarkAllRead(ctx, userID)
	if err != nil {
		return 0, MapRepoError(err, "marking notifications read")
	}
	return n, nil
}
