package services

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/internal/config"
	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/core/scheduler"
	"github.com/campusops/invigilate/pkg/db"
)

// GenerateScheduleRequest carries the exam definition to generate
// assignments for
type GenerateScheduleRequest struct {
	ExamType          model.ExamType
	Year              string
	FacultyPerSection int
	Slots             []scheduler.SlotRequest

	// Seed fixes the allocation shuffle for reproducible runs; nil uses
	// a time-seeded source
	Seed *int64
}

// GenerateScheduleResult contains the proposed assignments. When Fault is
// set the run stopped at that slot and Slots holds only the assignments
// produced before it.
type GenerateScheduleResult struct {
	Slots    []scheduler.SlotAssignment
	Fault    *scheduler.CapacityError
	Complete bool
}

// GenerateScheduleStore defines the database operations needed to
// generate a schedule
type GenerateScheduleStore interface {
	ListFaculty(ctx context.Context) ([]db.Faculty, error)
	ListFacultySchedules(ctx context.Context) ([]db.FacultySchedule, error)
	ListInvigilations(ctx context.Context) ([]db.Invigilation, error)
}

// GenerateSchedule proposes faculty assignments for every slot of one
// exam definition. It loads the roster, teaching schedules and existing
// invigilations, then runs the allocator. Nothing is persisted: the
// caller feeds the proposal into CreateExam once satisfied.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	req GenerateScheduleRequest,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("exam_type", string(req.ExamType)),
		zap.String("year", req.Year),
		zap.Int("faculty_per_section", req.FacultyPerSection),
		zap.Int("slot_count", len(req.Slots)))

	if !req.ExamType.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown exam type %q", req.ExamType)}
	}
	if req.ExamType.RequiresYearMatch() && req.Year == "" {
		return nil, &ValidationError{Message: "year is required for this exam type"}
	}
	if len(req.Slots) == 0 || req.FacultyPerSection < 1 {
		return nil, &ValidationError{Message: "slot details, faculty per section, and exam type are required"}
	}

	logger.Debug("Fetching faculty roster")
	facultyList, err := store.ListFaculty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch faculty: %w", err)
	}
	logger.Debug("Found faculty", zap.Int("count", len(facultyList)))

	if len(facultyList) == 0 {
		return nil, &ValidationError{Message: "no faculty available for assignment"}
	}

	logger.Debug("Fetching teaching schedules")
	schedules, err := store.ListFacultySchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teaching schedules: %w", err)
	}
	logger.Debug("Found teaching schedules", zap.Int("count", len(schedules)))

	logger.Debug("Fetching existing invigilations")
	invigilations, err := store.ListInvigilations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invigilations: %w", err)
	}
	logger.Debug("Found existing invigilations", zap.Int("count", len(invigilations)))

	roster := make([]scheduler.RosterEntry, 0, len(facultyList))
	for _, faculty := range facultyList {
		roster = append(roster, scheduler.RosterEntry{
			Username:   faculty.Username,
			Name:       faculty.Name,
			Department: faculty.Department,
		})
	}

	scheduleMap := make(map[string]model.TeachingSchedule, len(schedules))
	for _, schedule := range schedules {
		scheduleMap[schedule.Username] = model.TeachingSchedule(schedule.Schedule)
	}

	existing := make([]scheduler.ExistingInvigilation, 0, len(invigilations))
	for _, inv := range invigilations {
		existing = append(existing, scheduler.ExistingInvigilation{
			Username:  inv.Username,
			Date:      inv.Date,
			StartTime: inv.StartTime,
			EndTime:   inv.EndTime,
		})
	}

	var rnd *rand.Rand
	if req.Seed != nil {
		rnd = rand.New(rand.NewSource(*req.Seed))
		logger.Debug("Using fixed allocation seed", zap.Int64("seed", *req.Seed))
	}

	logger.Info("Running schedule generation",
		zap.Int("roster_size", len(roster)),
		zap.Int("slot_count", len(req.Slots)))

	outcome, err := scheduler.Generate(scheduler.GenerationConfig{
		ExamType:              req.ExamType,
		Year:                  req.Year,
		FacultyPerSection:     req.FacultyPerSection,
		Slots:                 req.Slots,
		Roster:                roster,
		Schedules:             scheduleMap,
		ExistingInvigilations: existing,
		ParsePolicy:           scheduler.ParsePolicy(cfg.ScheduleParsePolicy),
		Rand:                  rnd,
		Logger:                logger,
	})
	if err != nil {
		return nil, fmt.Errorf("schedule generation failed: %w", err)
	}

	if outcome.Fault != nil {
		logger.Warn("Generation halted: slot requires manual assignment",
			zap.Int("slot", outcome.Fault.SlotNumber),
			zap.String("subject", outcome.Fault.Subject),
			zap.Int("needed", outcome.Fault.Needed),
			zap.Int("available", outcome.Fault.Available))
	} else {
		logger.Info("Generation complete", zap.Int("slots_assigned", len(outcome.Slots)))
	}

	return &GenerateScheduleResult{
		Slots:    outcome.Slots,
		Fault:    outcome.Fault,
		Complete: outcome.Complete,
	}, nil
}
