package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/campusops/invigilate/pkg/db"
)

// InsertNotification inserts a new notification record
func (d *DB) InsertNotification(ctx context.Context, n *db.Notification) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO notification (id, username, message, status, related_exam_id)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.Username, n.Message, n.Status, n.RelatedExamID)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotificationsByUsername retrieves one faculty member's
// notifications, newest first
func (d *DB) ListNotificationsByUsername(ctx context.Context, username string) ([]db.Notification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, username, message, status, related_exam_id, created_at
		FROM notification
		WHERE username = $1
		ORDER BY created_at DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []db.Notification
	for rows.Next() {
		var n db.Notification
		var createdAt time.Time
		if err := rows.Scan(&n.ID, &n.Username, &n.Message, &n.Status, &n.RelatedExamID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkNotificationRead marks one notification as read, reporting whether
// the record existed
func (d *DB) MarkNotificationRead(ctx context.Context, id string) (bool, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE notification SET status = 'Read' WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
