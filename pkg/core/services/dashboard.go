package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// Dashboard is a faculty member's personal view of their duties
type Dashboard struct {
	Username            string
	Upcoming            []db.Invigilation
	Completed           []db.Invigilation
	PendingSwapRequests []db.SwapRequest
	UnreadNotifications int
}

// DashboardStore defines the database operations needed to build a
// faculty dashboard
type DashboardStore interface {
	GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error)
	ListInvigilationsByUsername(ctx context.Context, username string) ([]db.Invigilation, error)
	ListPendingSwapRequests(ctx context.Context) ([]db.SwapRequest, error)
	ListNotificationsByUsername(ctx context.Context, username string) ([]db.Notification, error)
}

// GetDashboard assembles a faculty member's upcoming and completed
// duties, the pending swap requests they are a party to, and their
// unread notification count
func GetDashboard(ctx context.Context, store DashboardStore, logger *zap.Logger, username string) (*Dashboard, error) {
	logger.Debug("Starting getDashboard", zap.String("username", username))

	faculty, err := store.GetFacultyByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up faculty: %w", err)
	}
	if faculty == nil {
		return nil, &NotFoundError{Resource: "faculty", ID: username}
	}

	invigilations, err := store.ListInvigilationsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list invigilations: %w", err)
	}

	dashboard := &Dashboard{Username: username}
	for _, inv := range invigilations {
		if inv.Status == string(model.StatusCompleted) {
			dashboard.Completed = append(dashboard.Completed, inv)
		} else {
			dashboard.Upcoming = append(dashboard.Upcoming, inv)
		}
	}
	sort.Slice(dashboard.Upcoming, func(i, j int) bool {
		if dashboard.Upcoming[i].Date != dashboard.Upcoming[j].Date {
			return dashboard.Upcoming[i].Date < dashboard.Upcoming[j].Date
		}
		return dashboard.Upcoming[i].StartTime < dashboard.Upcoming[j].StartTime
	})
	sort.Slice(dashboard.Completed, func(i, j int) bool {
		if dashboard.Completed[i].Date != dashboard.Completed[j].Date {
			return dashboard.Completed[i].Date > dashboard.Completed[j].Date
		}
		return dashboard.Completed[i].StartTime > dashboard.Completed[j].StartTime
	})

	pending, err := store.ListPendingSwapRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %w", err)
	}
	for _, swapRequest := range pending {
		if swapRequest.RequestingUsername == username || swapRequest.RequestedUsername == username {
			dashboard.PendingSwapRequests = append(dashboard.PendingSwapRequests, swapRequest)
		}
	}

	notifications, err := store.ListNotificationsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	for _, n := range notifications {
		if n.Status == string(model.NotificationUnread) {
			dashboard.UnreadNotifications++
		}
	}

	logger.Info("Dashboard assembled",
		zap.String("username", username),
		zap.Int("upcoming", len(dashboard.Upcoming)),
		zap.Int("completed", len(dashboard.Completed)),
		zap.Int("pending_swaps", len(dashboard.PendingSwapRequests)),
		zap.Int("unread", dashboard.UnreadNotifications))

	return dashboard, nil
}
