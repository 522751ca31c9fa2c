package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/db"
)

// NotificationsStore defines the database operations for reading and
// acknowledging notifications
type NotificationsStore interface {
	ListNotificationsByUsername(ctx context.Context, username string) ([]db.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (bool, error)
}

// ListNotifications returns a faculty member's notifications, newest
// first as stored
func ListNotifications(ctx context.Context, store NotificationsStore, logger *zap.Logger, username string) ([]db.Notification, error) {
	logger.Debug("Listing notifications", zap.String("username", username))

	notifications, err := store.ListNotificationsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	logger.Info("Listed notifications",
		zap.String("username", username),
		zap.Int("count", len(notifications)))

	return notifications, nil
}

// MarkNotificationRead acknowledges one notification. Marking an
// already read notification is a no-op.
func MarkNotificationRead(ctx context.Context, store NotificationsStore, logger *zap.Logger, id string) error {
	logger.Debug("Marking notification read", zap.String("notification_id", id))

	found, err := store.MarkNotificationRead(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !found {
		return &NotFoundError{Resource: "notification", ID: id}
	}

	logger.Info("Notification marked read", zap.String("notification_id", id))

	return nil
}
