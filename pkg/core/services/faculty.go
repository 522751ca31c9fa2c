package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// RegisterFacultyRequest holds the details for a new faculty record
type RegisterFacultyRequest struct {
	Username   string `validate:"required"`
	Name       string `validate:"required"`
	Email      string `validate:"omitempty,email"`
	Department string
}

// FacultyStore defines the database operations for the faculty roster
type FacultyStore interface {
	GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error)
	ListFaculty(ctx context.Context) ([]db.Faculty, error)
	InsertFaculty(ctx context.Context, f *db.Faculty) error
	UpsertFacultySchedule(ctx context.Context, s *db.FacultySchedule) error
}

// RegisterFaculty adds a faculty member to the roster. Usernames are
// unique and the placeholder username is reserved.
func RegisterFaculty(ctx context.Context, store FacultyStore, logger *zap.Logger, req *RegisterFacultyRequest) (*db.Faculty, error) {
	logger.Debug("Starting registerFaculty", zap.String("username", req.Username))

	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Message: "username and name are required"}
	}
	if isPlaceholder(username) {
		return nil, &ValidationError{Message: fmt.Sprintf("username %q is reserved", model.PlaceholderUsername)}
	}

	existing, err := store.GetFacultyByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Message: fmt.Sprintf("faculty %q already exists", username)}
	}

	faculty := &db.Faculty{
		Username:   username,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
	}
	if err := store.InsertFaculty(ctx, faculty); err != nil {
		return nil, fmt.Errorf("failed to save faculty: %w", err)
	}

	logger.Info("Faculty registered", zap.String("username", faculty.Username))

	return faculty, nil
}

// ListRoster returns every registered faculty member
func ListRoster(ctx context.Context, store FacultyStore, logger *zap.Logger) ([]db.Faculty, error) {
	logger.Debug("Listing faculty roster")

	roster, err := store.ListFaculty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list faculty: %w", err)
	}

	logger.Info("Listed faculty roster", zap.Int("count", len(roster)))

	return roster, nil
}

// SetTeachingSchedule replaces a faculty member's weekly teaching
// schedule. Time ranges are stored as given. Malformed ranges surface
// later during generation, where the configured parse policy decides
// whether they are skipped or block the run.
func SetTeachingSchedule(ctx context.Context, store FacultyStore, logger *zap.Logger, username string, schedule model.TeachingSchedule) error {
	logger.Debug("Starting setTeachingSchedule", zap.String("username", username))

	faculty, err := store.GetFacultyByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up faculty: %w", err)
	}
	if faculty == nil {
		return &NotFoundError{Resource: "faculty", ID: username}
	}

	record := &db.FacultySchedule{
		Username: username,
		Schedule: schedule,
	}
	if err := store.UpsertFacultySchedule(ctx, record); err != nil {
		return fmt.Errorf("failed to save teaching schedule: %w", err)
	}

	logger.Info("Teaching schedule updated",
		zap.String("username", username),
		zap.Int("days", len(schedule)))

	return nil
}
