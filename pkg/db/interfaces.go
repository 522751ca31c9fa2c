package db

import (
	"context"

	"github.com/campusops/invigilate/pkg/core/model"
)

// Store defines the interface for all database operations. Services
// declare narrower per-operation interfaces; this one exists so callers
// can pass a single concrete store (postgres.DB or a test double)
// everywhere.
type Store interface {
	// Faculty directory
	GetFacultyByUsername(ctx context.Context, username string) (*Faculty, error)
	ListFaculty(ctx context.Context) ([]Faculty, error)
	InsertFaculty(ctx context.Context, faculty *Faculty) error

	// Teaching schedules
	GetFacultySchedule(ctx context.Context, username string) (*FacultySchedule, error)
	ListFacultySchedules(ctx context.Context) ([]FacultySchedule, error)
	UpsertFacultySchedule(ctx context.Context, schedule *FacultySchedule) error

	// Exams (nested authoritative documents)
	InsertExam(ctx context.Context, exam *model.Exam) error
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	ListExams(ctx context.Context) ([]model.Exam, error)
	UpdateExamSlots(ctx context.Context, id string, slots []model.Slot) error
	MarkExamsCompleted(ctx context.Context, before string) (int, error)

	// Invigilations (flat projection)
	InsertInvigilation(ctx context.Context, inv *Invigilation) error
	GetInvigilation(ctx context.Context, id string) (*Invigilation, error)
	ListInvigilations(ctx context.Context) ([]Invigilation, error)
	ListInvigilationsByExam(ctx context.Context, examID string) ([]Invigilation, error)
	ListInvigilationsByUsername(ctx context.Context, username string) ([]Invigilation, error)
	SetInvigilationStatus(ctx context.Context, id, status string) error
	ReassignInvigilation(ctx context.Context, id, username, status string) error
	MarkInvigilationsCompleted(ctx context.Context, before string) (int, error)

	// Swap requests
	InsertSwapRequest(ctx context.Context, req *SwapRequest) error
	GetSwapRequest(ctx context.Context, id string) (*SwapRequest, error)
	FindPendingSwapRequest(ctx context.Context, invigilationID, requestingUsername string) (*SwapRequest, error)
	ListPendingSwapRequests(ctx context.Context) ([]SwapRequest, error)
	SetSwapRequestStatus(ctx context.Context, id, status string) error

	// Notifications
	InsertNotification(ctx context.Context, n *Notification) error
	ListNotificationsByUsername(ctx context.Context, username string) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (bool, error)
}
