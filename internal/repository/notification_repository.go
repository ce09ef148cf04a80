package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sqlx.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts one notification record for a recipient. The row is unread
// at creation; id and created_at are server-assigned.
func (r *NotificationRepository) Create(
	ctx context.Context,
	recipientID int64,
	typ model.NotificationType,
	title, message string,
	data model.NotificationData,
) (model.Notification, error) {
	query := `INSERT INTO notifications (recipient_id, type, title, message, data_json)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, recipient_id, type, title, message, data_json, is_read, created_at`

	var n model.Notification
	err := r.db.GetContext(ctx, &n, query, recipientID, typ, title, message, data)
	if err != nil {
		r.logger.Error("Failed to create notification",
			zap.Int64("recipient_id", recipientID),
			zap.String("type", string(typ)),
			zap.Error(err))
		return model.Notification{}, fmt.Errorf("create notification: %w", apperr.ErrTransientStore)
	}

	return n, nil
}

// ListForUser retrieves one page of a user's notifications, newest first
// with a stable id tie-break.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error) {
	query := `SELECT id, recipient_id, type, title, message, data_json, is_read, created_at
	          FROM notifications
	          WHERE recipient_id = $1
	          ORDER BY created_at DESC, id DESC
	          LIMIT $2 OFFSET $3`

	notifications := []model.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list notifications: %w", apperr.ErrTransientStore)
	}

	return notifications, nil
}

// CountForUser retrieves the total number of notifications for a user.
func (r *NotificationRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		r.logger.Error("Failed to count notifications", zap.Int64("user_id", userID), zap.Error(err))
		return 0, fmt.Errorf("count notifications: %w", apperr.ErrTransientStore)
	}

	return count, nil
}

// CountUnread retrieves the count of unread notifications for a user. The
// count is derived at query time, never stored.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		r.logger.Error("Failed to count unread notifications", zap.Int64("user_id", userID), zap.Error(err))
		return 0, fmt.Errorf("count unread notifications: %w", apperr.ErrTransientStore)
	}

	return count, nil
}

// MarkRead marks one notification as read. The update is scoped by both id
// and recipient so a user can never mark another user's notification; a miss
// on either is reported identically as not found. Marking an already-read
// notification succeeds and returns the row unchanged.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, requestingUserID int64) (model.Notification, error) {
	query := `UPDATE notifications SET is_read = true
	          WHERE id = $1 AND recipient_id = $2
	          RETURNING id, recipient_id, type, title, message, data_json, is_read, created_at`

	var n model.Notification
	err := r.db.GetContext(ctx, &n, query, notificationID, requestingUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, fmt.Errorf("notification %d: %w", notificationID, apperr.ErrNotFound)
		}
		r.logger.Error("Failed to mark notification as read",
			zap.Int64("notification_id", notificationID),
			zap.Error(err))
		return model.Notification{}, fmt.Errorf("mark notification read: %w", apperr.ErrTransientStore)
	}

	return n, nil
}

// MarkAllRead marks every unread notification owned by the user as read in a
// single scoped bulk update. A fetch-then-loop would lose updates against
// concurrent inserts; one UPDATE cannot.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET is_read = true
	          WHERE recipient_id = $1 AND is_read = false`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to mark all notifications as read", zap.Int64("user_id", userID), zap.Error(err))
		return 0, fmt.Errorf("mark all notifications read: %w", apperr.ErrTransientStore)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", apperr.ErrTransientStore)
	}

	return count, nil
}
