package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

// NotificationRepository handles parent notification data access.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts a notification with a fresh NOTIF number.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (notify_no, parent_id, subject, message, type)
		 VALUES ('NOTIF' || lpad(nextval('notify_no_seq')::text, 6, '0'), $1, $2, $3, $4)
		 RETURNING id, notify_no, read, sent_at`,
		n.ParentID, n.Subject, n.Message, n.Type,
	).Scan(&n.ID, &n.NotifyNo, &n.Read, &n.SentAt)
}

// ListByParent retrieves a parent's inbox, newest first. When unreadOnly
// is set, read notifications are skipped.
func (r *NotificationRepository) ListByParent(ctx context.Context, parentID int, unreadOnly bool, limit, offset int) ([]model.Notification, int, error) {
	where := ` WHERE parent_id = $1`
	if unreadOnly {
		where += ` AND read = FALSE`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+where, parentID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, notify_no, parent_id, subject, message, type, read, sent_at
		 FROM notifications`+where+` ORDER BY sent_at DESC LIMIT $2 OFFSET $3`,
		parentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.NotifyNo, &n.ParentID, &n.Subject, &n.Message, &n.Type, &n.Read, &n.SentAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// MarkRead flags a notification as read. Returns false when the
// notification does not belong to the parent.
func (r *NotificationRepository) MarkRead(ctx context.Context, parentID, notificationID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND parent_id = $2`,
		notificationID, parentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountUnread returns the number of unread notifications for a parent.
func (r *NotificationRepository) CountUnread(ctx context.Context, parentID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE parent_id = $1 AND read = FALSE`, parentID,
	).Scan(&n)
	return n, err
}
