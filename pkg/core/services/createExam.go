package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/core/scheduler"
	"github.com/campusops/invigilate/pkg/db"
)

// CreateExamRequest carries a fully assigned exam definition to persist
type CreateExamRequest struct {
	ExamName string
	ExamType model.ExamType
	Year     string
	Slots    []model.Slot
}

// CreateExamResult reports the persisted exam and the fan-out outcome.
// FanOutFailures counts invigilation/notification writes that failed and
// were suppressed; the exam itself is authoritative and Reconcile can
// repair the flat projection later.
type CreateExamResult struct {
	Exam                 *model.Exam
	InvigilationsCreated int
	NotificationsCreated int
	FanOutFailures       int
}

// CreateExamStore defines the database operations needed to create an exam
type CreateExamStore interface {
	GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error)
	InsertExam(ctx context.Context, exam *model.Exam) error
	InsertInvigilation(ctx context.Context, inv *db.Invigilation) error
	InsertNotification(ctx context.Context, n *db.Notification) error
}

// CreateExam validates the exam definition slot by slot, persists the
// nested exam document, then fans out one invigilation and one
// notification record per assigned seat. Validation aborts at the first
// violation before any write. Fan-out writes are best-effort: failures
// are logged and counted but never roll back the exam and never fail the
// request.
func CreateExam(
	ctx context.Context,
	store CreateExamStore,
	logger *zap.Logger,
	req CreateExamRequest,
) (*CreateExamResult, error) {
	logger.Debug("Starting createExam",
		zap.String("exam_name", req.ExamName),
		zap.String("exam_type", string(req.ExamType)),
		zap.Int("slot_count", len(req.Slots)))

	if req.ExamName == "" || !req.ExamType.Valid() || len(req.Slots) == 0 {
		return nil, &ValidationError{Message: "exam name, type, and slots are required"}
	}
	if req.ExamType.RequiresYearMatch() && req.Year == "" {
		return nil, &ValidationError{Message: "year is required for this exam type"}
	}

	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, slot := range req.Slots {
		if err := validateSlot(ctx, store, slot, req.ExamType, now, today); err != nil {
			return nil, err
		}
	}

	exam := &model.Exam{
		ID:       uuid.New().String(),
		ExamName: req.ExamName,
		ExamType: req.ExamType,
		Date:     req.Slots[0].Date,
		Slots:    normalizeSlots(req.Slots),
		Status:   model.ExamScheduled,
	}
	if req.ExamType.RequiresYearMatch() {
		exam.Year = req.Year
	}

	if err := store.InsertExam(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to persist exam: %w", err)
	}
	logger.Info("Exam persisted", zap.String("exam_id", exam.ID), zap.String("exam_name", exam.ExamName))

	result := &CreateExamResult{Exam: exam}
	fanOutRecords(ctx, store, logger, exam, result)

	logger.Info("Exam fan-out finished",
		zap.String("exam_id", exam.ID),
		zap.Int("invigilations", result.InvigilationsCreated),
		zap.Int("notifications", result.NotificationsCreated),
		zap.Int("failures", result.FanOutFailures))

	return result, nil
}

// validateSlot checks one slot in creation order: parseable date/time,
// not in the past, today only with a start strictly after now, the
// 60-minute rule for year-matched types, end after start, and resolvable
// usernames for every filled seat
func validateSlot(ctx context.Context, store CreateExamStore, slot model.Slot, examType model.ExamType, now, today time.Time) error {
	if slot.Date == "" || slot.StartTime == "" || slot.EndTime == "" {
		return &ValidationError{
			Message:    "all slots must have date, start time, and end time",
			SlotNumber: slot.SlotNumber,
		}
	}

	slotDate, err := time.ParseInLocation("2006-01-02", slot.Date, now.Location())
	if err != nil {
		return &ValidationError{Message: "invalid date format", SlotNumber: slot.SlotNumber}
	}

	if slotDate.Before(today) {
		return &ValidationError{Message: "cannot schedule exam in the past", SlotNumber: slot.SlotNumber}
	}

	startMin, err := scheduler.TimeToMinutes(slot.StartTime)
	if err != nil {
		return &ValidationError{Message: "invalid start time", SlotNumber: slot.SlotNumber}
	}
	endMin, err := scheduler.TimeToMinutes(slot.EndTime)
	if err != nil {
		return &ValidationError{Message: "invalid end time", SlotNumber: slot.SlotNumber}
	}

	if slotDate.Equal(today) {
		nowMin := now.Hour()*60 + now.Minute()
		if startMin <= nowMin {
			return &ValidationError{
				Message:    fmt.Sprintf("start time must be after %s", scheduler.MinutesToTime(nowMin)),
				SlotNumber: slot.SlotNumber,
			}
		}
	}

	if examType.RequiresYearMatch() && endMin-startMin != 60 {
		return &ValidationError{
			Message:    "year-matched exams must be exactly 1 hour long",
			SlotNumber: slot.SlotNumber,
		}
	}

	if endMin <= startMin {
		return &ValidationError{Message: "end time must be after start time", SlotNumber: slot.SlotNumber}
	}

	for _, section := range slot.Sections {
		for _, seat := range section.Faculty {
			if isPlaceholder(seat.Username) {
				continue
			}
			faculty, err := store.GetFacultyByUsername(ctx, seat.Username)
			if err != nil {
				return fmt.Errorf("failed to look up faculty %s: %w", seat.Username, err)
			}
			if faculty == nil {
				return &ValidationError{
					Message:       fmt.Sprintf("faculty %s not found", seat.Username),
					SlotNumber:    slot.SlotNumber,
					SectionNumber: section.SectionNumber,
				}
			}
		}
	}

	return nil
}

// normalizeSlots copies the slots, defaulting every seat's status to
// Assigned where unset
func normalizeSlots(slots []model.Slot) []model.Slot {
	normalized := make([]model.Slot, len(slots))
	copy(normalized, slots)
	for si := range normalized {
		sections := make([]model.Section, len(normalized[si].Sections))
		copy(sections, normalized[si].Sections)
		normalized[si].Sections = sections
		for ci := range sections {
			seats := make([]model.FacultyAssignment, len(sections[ci].Faculty))
			copy(seats, sections[ci].Faculty)
			sections[ci].Faculty = seats
			for fi := range seats {
				if seats[fi].Status == "" {
					seats[fi].Status = model.StatusAssigned
				}
			}
		}
	}
	return normalized
}

// fanOutRecords creates the flat invigilation record and the assignment
// notification for every filled seat. Each write failure is logged and
// suppressed: the exam is already persisted and stays authoritative.
func fanOutRecords(ctx context.Context, store CreateExamStore, logger *zap.Logger, exam *model.Exam, result *CreateExamResult) {
	for _, slot := range exam.Slots {
		for _, section := range slot.Sections {
			for _, seat := range section.Faculty {
				if isPlaceholder(seat.Username) {
					continue
				}

				inv := &db.Invigilation{
					ID:        uuid.New().String(),
					Username:  seat.Username,
					ExamID:    exam.ID,
					ExamName:  exam.ExamName,
					ExamType:  string(exam.ExamType),
					Date:      slot.Date,
					StartTime: slot.StartTime,
					EndTime:   slot.EndTime,
					Venue:     venueFor(slot.SlotNumber, section.SectionNumber),
					Status:    string(model.StatusAssigned),
				}
				if err := store.InsertInvigilation(ctx, inv); err != nil {
					logger.Error("Failed to save invigilation",
						zap.String("exam_id", exam.ID),
						zap.String("username", seat.Username),
						zap.Int("slot", slot.SlotNumber),
						zap.Error(err))
					result.FanOutFailures++
				} else {
					result.InvigilationsCreated++
				}

				notification := &db.Notification{
					ID:       uuid.New().String(),
					Username: seat.Username,
					Message: fmt.Sprintf("New invigilation assigned: %s on %s (%s-%s)",
						exam.ExamName, displayDate(slot.Date), slot.StartTime, slot.EndTime),
					Status:        string(model.NotificationUnread),
					RelatedExamID: exam.ID,
				}
				if err := store.InsertNotification(ctx, notification); err != nil {
					logger.Error("Failed to save notification",
						zap.String("exam_id", exam.ID),
						zap.String("username", seat.Username),
						zap.Error(err))
					result.FanOutFailures++
				} else {
					result.NotificationsCreated++
				}
			}
		}
	}
}
