package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// ExamDetails pairs an exam's nested document with its flat
// invigilation records
type ExamDetails struct {
	Exam          *model.Exam
	Invigilations []db.Invigilation
}

// ExamsStore defines the database operations for exam queries
type ExamsStore interface {
	ListExams(ctx context.Context) ([]model.Exam, error)
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	ListInvigilationsByExam(ctx context.Context, examID string) ([]db.Invigilation, error)
}

// ListExams returns every exam document
func ListExams(ctx context.Context, store ExamsStore, logger *zap.Logger) ([]model.Exam, error) {
	logger.Debug("Listing exams")

	exams, err := store.ListExams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	logger.Info("Listed exams", zap.Int("count", len(exams)))

	return exams, nil
}

// GetExamDetails returns one exam alongside its flat invigilation
// records. Comparing the two surfaces fan-out gaps left by partial
// creation failures.
func GetExamDetails(ctx context.Context, store ExamsStore, logger *zap.Logger, examID string) (*ExamDetails, error) {
	logger.Debug("Starting getExamDetails", zap.String("exam_id", examID))

	exam, err := store.GetExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam: %w", err)
	}
	if exam == nil {
		return nil, &NotFoundError{Resource: "exam", ID: examID}
	}

	invigilations, err := store.ListInvigilationsByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invigilations: %w", err)
	}

	logger.Info("Exam details assembled",
		zap.String("exam_id", examID),
		zap.Int("slots", len(exam.Slots)),
		zap.Int("invigilations", len(invigilations)))

	return &ExamDetails{Exam: exam, Invigilations: invigilations}, nil
}
