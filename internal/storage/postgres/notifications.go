package postgres

import (
	"context"

	"jobboard/internal/dbx"
	"jobboard/internal/models"
	"jobboard/internal/storage"
)

const notificationColumns = `id, user_id, application_id, message, is_read, created_at`

// NotificationRepo implements the storage.NotificationRepository interface using PostgreSQL.
type NotificationRepo struct {
	db dbx.DBTX
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db dbx.DBTX) *NotificationRepo {
	return &NotificationRepo{db: db}
}

var _ storage.NotificationRepository = (*NotificationRepo)(nil)

func scanNotification(row rowScanner) (*models.Notification, error) {
	var n models.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.ApplicationID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, application_id, message, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING ` + notificationColumns

	created, err := scanNotification(r.db.QueryRowContext(ctx, query, n.UserID, n.ApplicationID, n.Message))
	if err != nil {
		return nil, mapError(err, "create notification")
	}
	return created, nil
}

func (r *NotificationRepo) ListUnread(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, mapError(err, "list unread notifications")
	}
	defer rows.Close()

	list := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, mapError(err, "scan notifications")
		}
		list = append(list, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list unread notifications")
	}
	return list, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, "count unread notifications")
	}
	return count, nil
}

// MarkRead flags one notification owned by userID as read. A notification
// owned by someone else is reported as storage.ErrNotFound.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return mapError(err, "mark notification read")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, "mark notification read")
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of userID and returns how many changed.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID,
	)
	if err != nil {
		return 0, mapError(err, "mark all notifications read")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err, "mark all notifications read")
	}
	return n, nil
}
