package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// ConfirmInvigilationResult reports the confirmed record and how many
// nested seats were mirrored
type ConfirmInvigilationResult struct {
	InvigilationID string
	Username       string
	Status         string
	NestedUpdated  int
}

// ConfirmInvigilationStore defines the database operations needed to
// confirm an invigilation
type ConfirmInvigilationStore interface {
	GetInvigilation(ctx context.Context, id string) (*db.Invigilation, error)
	SetInvigilationStatus(ctx context.Context, id, status string) error
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	UpdateExamSlots(ctx context.Context, id string, slots []model.Slot) error
}

// ConfirmInvigilation transitions the flat record to Confirmed, then
// mirrors Confirmed onto every nested seat matching that record's
// username anywhere in the owning exam. The exam-wide match (rather than
// the single triggering slot/section) is the deliberate confirmation
// policy: one faculty member's confirmation covers all their duties in
// the exam.
func ConfirmInvigilation(
	ctx context.Context,
	store ConfirmInvigilationStore,
	logger *zap.Logger,
	invigilationID string,
) (*ConfirmInvigilationResult, error) {
	logger.Debug("Starting confirmInvigilation", zap.String("invigilation_id", invigilationID))

	inv, err := store.GetInvigilation(ctx, invigilationID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invigilation: %w", err)
	}
	if inv == nil {
		return nil, &NotFoundError{Resource: "invigilation", ID: invigilationID}
	}

	unlock := lockExam(inv.ExamID)
	defer unlock()

	if err := store.SetInvigilationStatus(ctx, invigilationID, string(model.StatusConfirmed)); err != nil {
		return nil, fmt.Errorf("failed to confirm invigilation: %w", err)
	}

	result := &ConfirmInvigilationResult{
		InvigilationID: invigilationID,
		Username:       inv.Username,
		Status:         string(model.StatusConfirmed),
	}

	exam, err := store.GetExam(ctx, inv.ExamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owning exam: %w", err)
	}
	if exam == nil {
		// Flat record without an owning exam: nothing to mirror
		logger.Warn("Owning exam not found for confirmed invigilation",
			zap.String("invigilation_id", invigilationID),
			zap.String("exam_id", inv.ExamID))
		return result, nil
	}

	result.NestedUpdated = setAssignmentStatusExamWide(exam, inv.Username, model.StatusConfirmed)
	if result.NestedUpdated > 0 {
		if err := store.UpdateExamSlots(ctx, exam.ID, exam.Slots); err != nil {
			return nil, fmt.Errorf("failed to mirror confirmation onto exam: %w", err)
		}
	}

	logger.Info("Invigilation confirmed",
		zap.String("invigilation_id", invigilationID),
		zap.String("username", inv.Username),
		zap.Int("nested_updated", result.NestedUpdated))

	return result, nil
}
