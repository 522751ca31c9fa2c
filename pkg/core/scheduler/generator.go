package scheduler

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Generate runs the schedule generator over every slot of one exam
// definition in order. For each slot it builds the eligible pool with the
// conflict detector, then allocates sections with the load-balancing
// allocator. Year-matched exam types have their effective end time forced
// to start+60 minutes regardless of any supplied end time.
//
// Generation halts at the first capacity fault: the outcome carries the
// fault plus the assignments produced before the failing slot, and no
// later slot is attempted.
func Generate(cfg GenerationConfig) (*GenerationOutcome, error) {
	if !cfg.ExamType.Valid() {
		return nil, fmt.Errorf("unknown exam type %q", cfg.ExamType)
	}
	if cfg.ExamType.RequiresYearMatch() && cfg.Year == "" {
		return nil, fmt.Errorf("year is required for exam type %s", cfg.ExamType)
	}
	if cfg.FacultyPerSection < 1 {
		return nil, fmt.Errorf("faculty per section must be at least 1, got %d", cfg.FacultyPerSection)
	}
	if len(cfg.Slots) == 0 {
		return nil, fmt.Errorf("at least one slot is required")
	}
	if len(cfg.Roster) == 0 {
		return nil, fmt.Errorf("no faculty available for assignment")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	detector := NewConflictDetector(cfg.ExamType, cfg.Year, cfg.ParsePolicy, logger)
	state := newRunState(cfg.Roster)
	outcome := &GenerationOutcome{
		Slots: make([]SlotAssignment, 0, len(cfg.Slots)),
	}

	for _, slot := range cfg.Slots {
		slotDate, err := time.Parse("2006-01-02", slot.Date)
		if err != nil {
			return nil, fmt.Errorf("slot %d: invalid date %q: %w", slot.SlotNumber, slot.Date, err)
		}
		weekday := slotDate.Weekday().String()

		startMin, err := TimeToMinutes(slot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot.SlotNumber, err)
		}
		endMin, err := TimeToMinutes(slot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot.SlotNumber, err)
		}
		// Year-matched exams always run for exactly one hour
		if cfg.ExamType.RequiresYearMatch() {
			endMin = startMin + 60
		}
		if slot.SectionsPerSlot < 1 {
			return nil, fmt.Errorf("slot %d: sections per slot must be at least 1", slot.SlotNumber)
		}

		pool := buildEligiblePool(detector, state, cfg, slot.Date, weekday, startMin, endMin)
		logger.Debug("Built eligible pool",
			zap.Int("slot", slot.SlotNumber),
			zap.String("date", slot.Date),
			zap.Int("pool_size", len(pool)),
			zap.Int("needed", slot.SectionsPerSlot*cfg.FacultyPerSection))

		sections, fault := allocateSections(rnd, pool, slot, cfg.FacultyPerSection)
		if fault != nil {
			logger.Warn("Slot requires manual assignment",
				zap.Int("slot", fault.SlotNumber),
				zap.String("subject", fault.Subject),
				zap.Int("needed", fault.Needed),
				zap.Int("available", fault.Available))
			outcome.Fault = fault
			return outcome, nil
		}

		endTime := slot.EndTime
		if cfg.ExamType.RequiresYearMatch() {
			endTime = MinutesToTime(endMin)
		}

		outcome.Slots = append(outcome.Slots, SlotAssignment{
			SlotNumber: slot.SlotNumber,
			Subject:    slot.Subject,
			Date:       slot.Date,
			Day:        weekday,
			StartTime:  slot.StartTime,
			EndTime:    endTime,
			Sections:   sections,
		})

		for _, section := range sections {
			for _, candidate := range section.Faculty {
				state.markAssigned(candidate.Username, slot.Date)
			}
		}
	}

	outcome.Complete = true
	return outcome, nil
}

// buildEligiblePool runs the conflict detector over the roster for one
// slot window, carrying each eligible faculty member's running count
func buildEligiblePool(detector *ConflictDetector, state *runState, cfg GenerationConfig, date, weekday string, startMin, endMin int) []Candidate {
	pool := make([]Candidate, 0, len(cfg.Roster))
	for _, entry := range cfg.Roster {
		// At most one invigilation per faculty member per calendar date
		if state.isOccupied(entry.Username, date) {
			continue
		}
		schedule := cfg.Schedules[entry.Username]
		if !detector.Available(schedule, cfg.ExistingInvigilations, entry.Username, date, weekday, startMin, endMin) {
			continue
		}
		pool = append(pool, Candidate{
			Username:        entry.Username,
			Name:            entry.Name,
			Department:      entry.Department,
			AssignmentCount: state.counts[entry.Username],
		})
	}
	return pool
}
