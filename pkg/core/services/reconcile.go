package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// ReconcileResult reports the repair work done for one exam
type ReconcileResult struct {
	ExamID               string
	SeatsChecked         int
	InvigilationsCreated int
	Failures             int
}

// ReconcileStore defines the database operations needed to reconcile an
// exam's flat projection
type ReconcileStore interface {
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	ListInvigilationsByExam(ctx context.Context, examID string) ([]db.Invigilation, error)
	InsertInvigilation(ctx context.Context, inv *db.Invigilation) error
}

// ReconcileExam repairs the flat invigilation projection of one exam.
// Every non-placeholder seat in the nested document should have a flat
// record for the same username and slot timing. Seats that lost theirs,
// typically to a partial fan-out failure at creation time, get a fresh
// record carrying the seat's current status. Existing records are never
// modified or deleted.
func ReconcileExam(ctx context.Context, store ReconcileStore, logger *zap.Logger, examID string) (*ReconcileResult, error) {
	logger.Debug("Starting reconcile", zap.String("exam_id", examID))

	unlock := lockExam(examID)
	defer unlock()

	exam, err := store.GetExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam: %w", err)
	}
	if exam == nil {
		return nil, &NotFoundError{Resource: "exam", ID: examID}
	}

	existing, err := store.ListInvigilationsByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invigilations: %w", err)
	}

	type seatKey struct {
		username  string
		date      string
		startTime string
	}
	have := make(map[seatKey]bool, len(existing))
	for _, inv := range existing {
		have[seatKey{inv.Username, inv.Date, inv.StartTime}] = true
	}

	result := &ReconcileResult{ExamID: examID}

	for _, slot := range exam.Slots {
		for _, section := range slot.Sections {
			for _, fa := range section.Faculty {
				if isPlaceholder(fa.Username) {
					continue
				}
				result.SeatsChecked++
				key := seatKey{fa.Username, slot.Date, slot.StartTime}
				if have[key] {
					continue
				}
				inv := &db.Invigilation{
					ID:        uuid.New().String(),
					Username:  fa.Username,
					ExamID:    exam.ID,
					ExamName:  exam.ExamName,
					ExamType:  string(exam.ExamType),
					Date:      slot.Date,
					StartTime: slot.StartTime,
					EndTime:   slot.EndTime,
					Venue:     venueFor(slot.SlotNumber, section.SectionNumber),
					Status:    string(fa.Status),
				}
				if err := store.InsertInvigilation(ctx, inv); err != nil {
					logger.Error("Failed to recreate invigilation record",
						zap.String("exam_id", examID),
						zap.String("username", fa.Username),
						zap.String("date", slot.Date),
						zap.Error(err))
					result.Failures++
					continue
				}
				have[key] = true
				result.InvigilationsCreated++
			}
		}
	}

	logger.Info("Reconcile finished",
		zap.String("exam_id", examID),
		zap.Int("seats_checked", result.SeatsChecked),
		zap.Int("created", result.InvigilationsCreated),
		zap.Int("failures", result.Failures))

	return result, nil
}
