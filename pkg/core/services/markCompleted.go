package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// MarkCompletedResult reports how many records the completion sweep
// transitioned
type MarkCompletedResult struct {
	Before                 string
	ExamsCompleted         int
	InvigilationsCompleted int
}

// MarkCompletedStore defines the database operations needed by the
// completion sweep
type MarkCompletedStore interface {
	MarkExamsCompleted(ctx context.Context, before string) (int, error)
	MarkInvigilationsCompleted(ctx context.Context, before string) (int, error)
}

// MarkCompleted transitions every exam and invigilation dated strictly
// before today to Completed. Records already completed are untouched, so
// running the sweep twice in a row is a no-op the second time.
func MarkCompleted(ctx context.Context, store MarkCompletedStore, logger *zap.Logger) (*MarkCompletedResult, error) {
	before := timeNow().Format("2006-01-02")

	logger.Debug("Starting completion sweep", zap.String("before", before))

	examsCompleted, err := store.MarkExamsCompleted(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to mark exams completed: %w", err)
	}

	invigilationsCompleted, err := store.MarkInvigilationsCompleted(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to mark invigilations completed: %w", err)
	}

	logger.Info("Completion sweep finished",
		zap.String("before", before),
		zap.Int("exams_completed", examsCompleted),
		zap.Int("invigilations_completed", invigilationsCompleted))

	return &MarkCompletedResult{
		Before:                 before,
		ExamsCompleted:         examsCompleted,
		InvigilationsCompleted: invigilationsCompleted,
	}, nil
}
