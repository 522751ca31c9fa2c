package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// SwapAction is the admin's decision on a pending swap request
type SwapAction string

const (
	SwapActionApprove SwapAction = "approve"
	SwapActionReject  SwapAction = "reject"
)

// ResolveSwapRequestResult reports the terminal state and, on approval,
// the mirror update
type ResolveSwapRequestResult struct {
	SwapRequestID     string
	Status            string
	NestedUpdated     int
	NotificationsSent int
}

// ResolveSwapRequestStore defines the database operations needed to
// resolve a swap request
type ResolveSwapRequestStore interface {
	GetSwapRequest(ctx context.Context, id string) (*db.SwapRequest, error)
	SetSwapRequestStatus(ctx context.Context, id, status string) error
	GetInvigilation(ctx context.Context, id string) (*db.Invigilation, error)
	ReassignInvigilation(ctx context.Context, id, username, status string) error
	GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error)
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	UpdateExamSlots(ctx context.Context, id string, slots []model.Slot) error
	InsertNotification(ctx context.Context, n *db.Notification) error
}

// ResolveSwapRequest finalizes a pending swap request. Approval
// reassigns the flat invigilation record to the requested faculty member
// with status Swapped, mirrors the reassignment onto every nested seat
// matching the requesting username anywhere in the owning exam, and
// notifies both parties. Rejection mutates no assignment data and
// notifies the requester. Either way the request goes terminal and is
// never reopened.
func ResolveSwapRequest(
	ctx context.Context,
	store ResolveSwapRequestStore,
	logger *zap.Logger,
	swapRequestID string,
	action SwapAction,
) (*ResolveSwapRequestResult, error) {
	logger.Debug("Starting resolveSwapRequest",
		zap.String("swap_request_id", swapRequestID),
		zap.String("action", string(action)))

	if action != SwapActionApprove && action != SwapActionReject {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid action %q", action)}
	}

	swapRequest, err := store.GetSwapRequest(ctx, swapRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up swap request: %w", err)
	}
	if swapRequest == nil {
		return nil, &NotFoundError{Resource: "swap request", ID: swapRequestID}
	}
	if swapRequest.Status != string(model.SwapPending) {
		return nil, &ConflictError{Message: fmt.Sprintf("swap request is already %s", swapRequest.Status)}
	}

	result := &ResolveSwapRequestResult{SwapRequestID: swapRequestID}

	if action == SwapActionApprove {
		if err := approveSwap(ctx, store, logger, swapRequest, result); err != nil {
			return nil, err
		}
		result.Status = string(model.SwapApproved)
	} else {
		rejectionNotice := &db.Notification{
			ID:            uuid.New().String(),
			Username:      swapRequest.RequestingUsername,
			Message:       fmt.Sprintf("Your swap request for %s has been rejected.", examNameFor(ctx, store, swapRequest)),
			Status:        string(model.NotificationUnread),
			RelatedExamID: swapRequest.ExamID,
		}
		if err := store.InsertNotification(ctx, rejectionNotice); err != nil {
			logger.Error("Failed to save rejection notification",
				zap.String("swap_request_id", swapRequestID), zap.Error(err))
		} else {
			result.NotificationsSent++
		}
		result.Status = string(model.SwapRejected)
	}

	if err := store.SetSwapRequestStatus(ctx, swapRequestID, result.Status); err != nil {
		return nil, fmt.Errorf("failed to finalize swap request: %w", err)
	}

	logger.Info("Swap request resolved",
		zap.String("swap_request_id", swapRequestID),
		zap.String("status", result.Status),
		zap.Int("nested_updated", result.NestedUpdated),
		zap.Int("notifications", result.NotificationsSent))

	return result, nil
}

// approveSwap performs the dual flat+nested reassignment and notifies
// both the requester and the new assignee
func approveSwap(ctx context.Context, store ResolveSwapRequestStore, logger *zap.Logger, swapRequest *db.SwapRequest, result *ResolveSwapRequestResult) error {
	requestedFaculty, err := store.GetFacultyByUsername(ctx, swapRequest.RequestedUsername)
	if err != nil {
		return fmt.Errorf("failed to look up requested faculty: %w", err)
	}
	if requestedFaculty == nil {
		return &NotFoundError{Resource: "faculty", ID: swapRequest.RequestedUsername}
	}

	inv, err := store.GetInvigilation(ctx, swapRequest.InvigilationID)
	if err != nil {
		return fmt.Errorf("failed to look up invigilation: %w", err)
	}
	if inv == nil {
		return &NotFoundError{Resource: "invigilation", ID: swapRequest.InvigilationID}
	}

	unlock := lockExam(swapRequest.ExamID)
	defer unlock()

	if err := store.ReassignInvigilation(ctx, swapRequest.InvigilationID, swapRequest.RequestedUsername, string(model.StatusSwapped)); err != nil {
		return fmt.Errorf("failed to reassign invigilation: %w", err)
	}

	exam, err := store.GetExam(ctx, swapRequest.ExamID)
	if err != nil {
		return fmt.Errorf("failed to load owning exam: %w", err)
	}
	if exam != nil {
		result.NestedUpdated = reassignExamWide(exam, swapRequest.RequestingUsername, requestedFaculty.Username, requestedFaculty.Name)
		if result.NestedUpdated > 0 {
			if err := store.UpdateExamSlots(ctx, exam.ID, exam.Slots); err != nil {
				return fmt.Errorf("failed to mirror swap onto exam: %w", err)
			}
		}
	} else {
		logger.Warn("Owning exam not found for approved swap",
			zap.String("swap_request_id", swapRequest.ID),
			zap.String("exam_id", swapRequest.ExamID))
	}

	examName := inv.ExamName
	notifications := []*db.Notification{
		{
			ID:       uuid.New().String(),
			Username: swapRequest.RequestingUsername,
			Message: fmt.Sprintf("Your swap request for %s has been approved. %s will take your slot.",
				examName, requestedFaculty.Name),
			Status:        string(model.NotificationUnread),
			RelatedExamID: swapRequest.ExamID,
		},
		{
			ID:       uuid.New().String(),
			Username: swapRequest.RequestedUsername,
			Message: fmt.Sprintf("You have been assigned to invigilate %s on %s (%s-%s) due to a swap.",
				examName, displayDate(inv.Date), inv.StartTime, inv.EndTime),
			Status:        string(model.NotificationUnread),
			RelatedExamID: swapRequest.ExamID,
		},
	}
	for _, n := range notifications {
		if err := store.InsertNotification(ctx, n); err != nil {
			logger.Error("Failed to save swap approval notification",
				zap.String("swap_request_id", swapRequest.ID),
				zap.String("username", n.Username),
				zap.Error(err))
			continue
		}
		result.NotificationsSent++
	}

	return nil
}

// examNameFor resolves a display name for the swap's exam, falling back
// to the invigilation record when the exam document is gone
func examNameFor(ctx context.Context, store ResolveSwapRequestStore, swapRequest *db.SwapRequest) string {
	if exam, err := store.GetExam(ctx, swapRequest.ExamID); err == nil && exam != nil {
		return exam.ExamName
	}
	if inv, err := store.GetInvigilation(ctx, swapRequest.InvigilationID); err == nil && inv != nil {
		return inv.ExamName
	}
	return "your exam"
}
