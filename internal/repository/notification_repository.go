package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

// NotificationRepository is the append-only store behind the notification
// feed. Rows are created unread and only ever transition to read.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, title, message, type, is_read, created_at`

const insertNotificationQuery = `INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
        VALUES (:id, :user_id, :title, :message, :type, :is_read, :created_at)`

// Insert persists a single notification.
func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	prepareNotification(n, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertNotificationQuery, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// InsertBatch persists notifications sharing one createdAt snapshot. Inserts
// are sequential and best-effort: a failed row does not roll back the rest.
// It returns the number of rows written and the last failure seen.
func (r *NotificationRepository) InsertBatch(ctx context.Context, notifications []models.Notification) (int, error) {
	createdAt := time.Now().UTC()
	count := 0
	var lastErr error
	for i := range notifications {
		prepareNotification(&notifications[i], createdAt)
		notifications[i].CreatedAt = createdAt
		if _, err := r.db.NamedExecContext(ctx, insertNotificationQuery, &notifications[i]); err != nil {
			lastErr = fmt.Errorf("insert notification batch item: %w", err)
			continue
		}
		count++
	}
	return count, lastErr
}

func prepareNotification(n *models.Notification, now time.Time) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = models.NotificationGeneral
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.IsRead = false
}

// ListByUser returns the newest notifications for a recipient.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT %d`, notificationColumns, limit)
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// ListUnread returns a recipient's unread notifications, newest first.
func (r *NotificationRepository) ListUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 AND is_read = 0 ORDER BY created_at DESC`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a recipient.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = 0`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// ListByType filters a recipient's feed by notification type.
func (r *NotificationRepository) ListByType(ctx context.Context, userID string, t models.NotificationType) ([]models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 AND type = $2 ORDER BY created_at DESC`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID, t); err != nil {
		return nil, fmt.Errorf("list notifications by type: %w", err)
	}
	return notifications, nil
}

// MarkRead flips one notification to read. Already-read rows stay read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE notifications SET is_read = 1 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("mark notification read: %w", err)
	}
	return res.RowsAffected()
}

// MarkAllRead flips every notification of a recipient to read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	const query = `UPDATE notifications SET is_read = 1 WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes one notification.
func (r *NotificationRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM notifications WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete notification: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAllByUser clears a recipient's feed.
func (r *NotificationRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	const query = `DELETE FROM notifications WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return res.RowsAffected()
}

// Summary aggregates a recipient's feed by type.
func (r *NotificationRepository) Summary(ctx context.Context, userID string) (*models.NotificationSummary, error) {
	const query = `SELECT
            type,
            COUNT(*) AS total,
            COALESCE(SUM(CASE WHEN is_read = 0 THEN 1 ELSE 0 END), 0) AS unread
        FROM notifications
        WHERE user_id = $1
        GROUP BY type`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("notification summary: %w", err)
	}
	defer rows.Close()

	summary := &models.NotificationSummary{ByType: map[string]models.NotificationTypeCount{}}
	for rows.Next() {
		var row struct {
			Type   string `db:"type"`
			Total  int    `db:"total"`
			Unread int    `db:"unread"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan notification summary: %w", err)
		}
		summary.Total += row.Total
		summary.Unread += row.Unread
		summary.ByType[row.Type] = models.NotificationTypeCount{Total: row.Total, Unread: row.Unread}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification summary: %w", err)
	}
	return summary, nil
}
