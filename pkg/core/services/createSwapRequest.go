package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/internal/config"
	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// CreateSwapRequestRequest carries a faculty member's proposal to hand an
// invigilation to a colleague
type CreateSwapRequestRequest struct {
	InvigilationID     string
	RequestingUsername string
	RequestedUsername  string
	Reason             string
}

// CreateSwapRequestResult reports the persisted request
type CreateSwapRequestResult struct {
	SwapRequestID string
	Status        string
}

// CreateSwapRequestStore defines the database operations needed to file
// a swap request
type CreateSwapRequestStore interface {
	FindPendingSwapRequest(ctx context.Context, invigilationID, requestingUsername string) (*db.SwapRequest, error)
	GetInvigilation(ctx context.Context, id string) (*db.Invigilation, error)
	GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error)
	InsertSwapRequest(ctx context.Context, req *db.SwapRequest) error
	InsertNotification(ctx context.Context, n *db.Notification) error
}

// CreateSwapRequest files a pending swap request for admin resolution.
// A faculty member can hold at most one pending request per
// invigilation; a duplicate is a conflict. The admin is notified.
func CreateSwapRequest(
	ctx context.Context,
	store CreateSwapRequestStore,
	cfg *config.Config,
	logger *zap.Logger,
	req CreateSwapRequestRequest,
) (*CreateSwapRequestResult, error) {
	logger.Debug("Starting createSwapRequest",
		zap.String("invigilation_id", req.InvigilationID),
		zap.String("requesting", req.RequestingUsername),
		zap.String("requested", req.RequestedUsername))

	if req.InvigilationID == "" || req.RequestingUsername == "" || req.RequestedUsername == "" {
		return nil, &ValidationError{Message: "invigilation, requesting faculty, and requested faculty are required"}
	}

	existing, err := store.FindPendingSwapRequest(ctx, req.InvigilationID, req.RequestingUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to check for pending swap request: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Message: "you already have a pending swap request for this invigilation"}
	}

	inv, err := store.GetInvigilation(ctx, req.InvigilationID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invigilation: %w", err)
	}
	if inv == nil {
		return nil, &NotFoundError{Resource: "invigilation", ID: req.InvigilationID}
	}

	requestingFaculty, err := store.GetFacultyByUsername(ctx, req.RequestingUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to look up requesting faculty: %w", err)
	}
	if requestingFaculty == nil {
		return nil, &NotFoundError{Resource: "faculty", ID: req.RequestingUsername}
	}

	requestedFaculty, err := store.GetFacultyByUsername(ctx, req.RequestedUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to look up requested faculty: %w", err)
	}
	if requestedFaculty == nil {
		return nil, &NotFoundError{Resource: "faculty", ID: req.RequestedUsername}
	}

	swapRequest := &db.SwapRequest{
		ID:                 uuid.New().String(),
		ExamID:             inv.ExamID,
		InvigilationID:     req.InvigilationID,
		RequestingUsername: req.RequestingUsername,
		RequestedUsername:  req.RequestedUsername,
		Reason:             req.Reason,
		Status:             string(model.SwapPending),
	}
	if err := store.InsertSwapRequest(ctx, swapRequest); err != nil {
		return nil, fmt.Errorf("failed to save swap request: %w", err)
	}

	adminNotification := &db.Notification{
		ID:       uuid.New().String(),
		Username: cfg.AdminUsername,
		Message: fmt.Sprintf("%s has requested to swap with %s for %s on %s. Reason: %s",
			requestingFaculty.Name, requestedFaculty.Name, inv.ExamName, displayDate(inv.Date), req.Reason),
		Status:        string(model.NotificationUnread),
		RelatedExamID: inv.ExamID,
	}
	if err := store.InsertNotification(ctx, adminNotification); err != nil {
		// The request itself is filed; losing the admin alert is logged only
		logger.Error("Failed to save admin notification for swap request",
			zap.String("swap_request_id", swapRequest.ID),
			zap.Error(err))
	}

	logger.Info("Swap request filed",
		zap.String("swap_request_id", swapRequest.ID),
		zap.String("requesting", req.RequestingUsername),
		zap.String("requested", req.RequestedUsername))

	return &CreateSwapRequestResult{
		SwapRequestID: swapRequest.ID,
		Status:        swapRequest.Status,
	}, nil
}
