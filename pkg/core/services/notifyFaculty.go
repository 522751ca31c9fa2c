package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// EmailSender delivers notification emails. The gmail client satisfies
// this interface.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NotifyFacultyResult reports delivery counts for a broadcast
type NotifyFacultyResult struct {
	ExamID            string
	Recipients        int
	NotificationsSent int
	EmailsSent        int
	Failures          int
}

// NotifyFacultyStore defines the database operations needed to notify
// an exam's invigilators
type NotifyFacultyStore interface {
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error)
	InsertNotification(ctx context.Context, n *db.Notification) error
}

// NotifyFaculty sends an in-app notification, and an email when a
// sender is configured, to every distinct faculty member assigned
// anywhere in the exam. A faculty member holding seats in several slots
// is notified once. Delivery failures are logged and counted without
// aborting the broadcast.
func NotifyFaculty(
	ctx context.Context,
	store NotifyFacultyStore,
	emailSender EmailSender,
	logger *zap.Logger,
	examID string,
) (*NotifyFacultyResult, error) {
	logger.Debug("Starting notifyFaculty", zap.String("exam_id", examID))

	exam, err := store.GetExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam: %w", err)
	}
	if exam == nil {
		return nil, &NotFoundError{Resource: "exam", ID: examID}
	}

	seen := make(map[string]bool)
	for _, slot := range exam.Slots {
		for _, section := range slot.Sections {
			for _, fa := range section.Faculty {
				if isPlaceholder(fa.Username) {
					continue
				}
				seen[fa.Username] = true
			}
		}
	}
	usernames := make([]string, 0, len(seen))
	for username := range seen {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	result := &NotifyFacultyResult{ExamID: examID, Recipients: len(usernames)}
	message := fmt.Sprintf("You have been assigned to invigilate %s. Please check your schedule.", exam.ExamName)

	for _, username := range usernames {
		notification := &db.Notification{
			ID:            uuid.New().String(),
			Username:      username,
			Message:       message,
			Status:        string(model.NotificationUnread),
			RelatedExamID: exam.ID,
		}
		if err := store.InsertNotification(ctx, notification); err != nil {
			logger.Error("Failed to save broadcast notification",
				zap.String("exam_id", examID),
				zap.String("username", username),
				zap.Error(err))
			result.Failures++
		} else {
			result.NotificationsSent++
		}

		if emailSender == nil {
			continue
		}
		faculty, err := store.GetFacultyByUsername(ctx, username)
		if err != nil || faculty == nil || faculty.Email == "" {
			logger.Warn("No email address for faculty, skipping email",
				zap.String("username", username), zap.Error(err))
			continue
		}
		subject := fmt.Sprintf("Invigilation duty: %s", exam.ExamName)
		if err := emailSender.SendEmail(ctx, faculty.Email, subject, message); err != nil {
			logger.Error("Failed to send notification email",
				zap.String("username", username),
				zap.String("email", faculty.Email),
				zap.Error(err))
			result.Failures++
			continue
		}
		result.EmailsSent++
	}

	logger.Info("Faculty notified",
		zap.String("exam_id", examID),
		zap.Int("recipients", result.Recipients),
		zap.Int("notifications", result.NotificationsSent),
		zap.Int("emails", result.EmailsSent),
		zap.Int("failures", result.Failures))

	return result, nil
}
