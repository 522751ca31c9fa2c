package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// ManualAssignmentRequest replaces one faculty member with another in a
// single section of a single slot
type ManualAssignmentRequest struct {
	ExamID              string
	SlotNumber          int
	SectionNumber       int
	CurrentUsername     string
	ReplacementUsername string
}

// ManualAssignmentResult reports what the reassignment touched
type ManualAssignmentResult struct {
	ExamID              string
	SlotNumber          int
	SectionNumber       int
	ReplacedUsername    string
	ReplacementUsername string
	FlatUpdated         bool
	NotificationsSent   int
}

// ManualAssignmentStore defines the database operations needed for a
// manual reassignment
type ManualAssignmentStore interface {
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	UpdateExamSlots(ctx context.Context, id string, slots []model.Slot) error
	GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error)
	ListInvigilationsByExam(ctx context.Context, examID string) ([]db.Invigilation, error)
	ReassignInvigilation(ctx context.Context, id, username, status string) error
	InsertNotification(ctx context.Context, n *db.Notification) error
}

// ManualAssignment swaps one seat in one section for a replacement
// faculty member. Unlike swap approval, the change is scoped to the
// named slot and section only. Seats the current assignee holds in
// other slots of the same exam are left alone. Both parties are
// notified. Assigning into a placeholder seat is the way unstaffed
// sections get filled.
func ManualAssignment(
	ctx context.Context,
	store ManualAssignmentStore,
	logger *zap.Logger,
	req *ManualAssignmentRequest,
) (*ManualAssignmentResult, error) {
	logger.Debug("Starting manualAssignment",
		zap.String("exam_id", req.ExamID),
		zap.Int("slot", req.SlotNumber),
		zap.Int("section", req.SectionNumber),
		zap.String("current", req.CurrentUsername),
		zap.String("replacement", req.ReplacementUsername))

	if req.ExamID == "" || req.CurrentUsername == "" || req.ReplacementUsername == "" {
		return nil, &ValidationError{Message: "exam ID, current username, and replacement username are required"}
	}
	if req.CurrentUsername == req.ReplacementUsername {
		return nil, &ValidationError{Message: "replacement must differ from the current assignee"}
	}

	replacement, err := store.GetFacultyByUsername(ctx, req.ReplacementUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to look up replacement faculty: %w", err)
	}
	if replacement == nil {
		return nil, &NotFoundError{Resource: "faculty", ID: req.ReplacementUsername}
	}

	unlock := lockExam(req.ExamID)
	defer unlock()

	exam, err := store.GetExam(ctx, req.ExamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam: %w", err)
	}
	if exam == nil {
		return nil, &NotFoundError{Resource: "exam", ID: req.ExamID}
	}

	slot := findSlot(exam, req.SlotNumber)
	if slot == nil {
		return nil, &NotFoundError{Resource: "slot", ID: fmt.Sprintf("%d", req.SlotNumber)}
	}

	var section *model.Section
	for i := range slot.Sections {
		if slot.Sections[i].SectionNumber == req.SectionNumber {
			section = &slot.Sections[i]
			break
		}
	}
	if section == nil {
		return nil, &NotFoundError{Resource: "section", ID: fmt.Sprintf("%d", req.SectionNumber)}
	}

	seatIndex := -1
	for i, fa := range section.Faculty {
		if fa.Username == req.ReplacementUsername {
			return nil, &ConflictError{Message: fmt.Sprintf("%s is already assigned to this section", req.ReplacementUsername)}
		}
		if fa.Username == req.CurrentUsername {
			seatIndex = i
		}
	}
	if seatIndex == -1 {
		return nil, &NotFoundError{
			Resource: "assignment",
			ID:       fmt.Sprintf("%s in slot %d section %d", req.CurrentUsername, req.SlotNumber, req.SectionNumber),
		}
	}

	section.Faculty[seatIndex] = model.FacultyAssignment{
		Username: replacement.Username,
		Name:     replacement.Name,
		Status:   model.StatusSwapped,
	}

	if err := store.UpdateExamSlots(ctx, exam.ID, exam.Slots); err != nil {
		return nil, fmt.Errorf("failed to save reassigned slot: %w", err)
	}

	result := &ManualAssignmentResult{
		ExamID:              req.ExamID,
		SlotNumber:          req.SlotNumber,
		SectionNumber:       req.SectionNumber,
		ReplacedUsername:    req.CurrentUsername,
		ReplacementUsername: req.ReplacementUsername,
	}

	// The flat record is keyed by username and slot timing rather than by
	// section, so placeholder seats have no record to move.
	if !isPlaceholder(req.CurrentUsername) {
		flatRecords, err := store.ListInvigilationsByExam(ctx, req.ExamID)
		if err != nil {
			logger.Error("Failed to list invigilations for manual assignment",
				zap.String("exam_id", req.ExamID), zap.Error(err))
		} else {
			for _, inv := range flatRecords {
				if inv.Username == req.CurrentUsername &&
					inv.Date == slot.Date &&
					inv.StartTime == slot.StartTime &&
					inv.EndTime == slot.EndTime {
					if err := store.ReassignInvigilation(ctx, inv.ID, replacement.Username, string(model.StatusSwapped)); err != nil {
						logger.Error("Failed to reassign flat invigilation record",
							zap.String("invigilation_id", inv.ID), zap.Error(err))
					} else {
						result.FlatUpdated = true
					}
					break
				}
			}
		}
	}

	notifications := make([]*db.Notification, 0, 2)
	if !isPlaceholder(req.CurrentUsername) {
		notifications = append(notifications, &db.Notification{
			ID:       uuid.New().String(),
			Username: req.CurrentUsername,
			Message: fmt.Sprintf("Your invigilation for %s has been manually reassigned to %s.",
				exam.ExamName, replacement.Name),
			Status:        string(model.NotificationUnread),
			RelatedExamID: exam.ID,
		})
	}
	notifications = append(notifications, &db.Notification{
		ID:       uuid.New().String(),
		Username: replacement.Username,
		Message: fmt.Sprintf("You have been manually assigned to invigilate %s on %s (%s-%s).",
			exam.ExamName, displayDate(slot.Date), slot.StartTime, slot.EndTime),
		Status:        string(model.NotificationUnread),
		RelatedExamID: exam.ID,
	})
	for _, n := range notifications {
		if err := store.InsertNotification(ctx, n); err != nil {
			logger.Error("Failed to save manual assignment notification",
				zap.String("username", n.Username), zap.Error(err))
			continue
		}
		result.NotificationsSent++
	}

	logger.Info("Manual assignment complete",
		zap.String("exam_id", req.ExamID),
		zap.Int("slot", req.SlotNumber),
		zap.Int("section", req.SectionNumber),
		zap.String("replacement", replacement.Username),
		zap.Bool("flat_updated", result.FlatUpdated))

	return result, nil
}

func findSlot(exam *model.Exam, slotNumber int) *model.Slot {
	for i := range exam.Slots {
		if exam.Slots[i].SlotNumber == slotNumber {
			return &exam.Slots[i]
		}
	}
	return nil
}
