package scheduler

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
)

// RosterEntry is one faculty member considered for allocation
type RosterEntry struct {
	Username   string
	Name       string
	Department string
}

// ExistingInvigilation is a previously persisted assignment used for
// date/time conflict checks. Date is "2006-01-02"; times are "HH:MM".
type ExistingInvigilation struct {
	Username  string
	Date      string
	StartTime string
	EndTime   string
}

// SlotRequest describes one slot to fill during generation
type SlotRequest struct {
	SlotNumber      int
	Subject         string
	Date            string
	StartTime       string
	EndTime         string
	SectionsPerSlot int
}

// Candidate is a faculty member eligible for the slot currently being
// allocated, carrying their running assignment count for load balancing
type Candidate struct {
	Username        string
	Name            string
	Department      string
	AssignmentCount int
}

// SectionAssignment is the set of faculty chosen for one section
type SectionAssignment struct {
	SectionNumber int
	Faculty       []Candidate
}

// SlotAssignment is the generated assignment for one slot
type SlotAssignment struct {
	SlotNumber int
	Subject    string
	Date       string
	Day        string
	StartTime  string
	EndTime    string
	Sections   []SectionAssignment
}

// GenerationConfig contains everything needed to generate assignments for
// one exam definition
type GenerationConfig struct {
	// ExamType determines conflict rules and slot duration forcing
	ExamType model.ExamType

	// Year is the target year, required for year-matched exam types
	Year string

	// FacultyPerSection is how many invigilators each section needs
	FacultyPerSection int

	// Slots to fill, processed in order
	Slots []SlotRequest

	// Roster is the full list of faculty considered for assignment
	Roster []RosterEntry

	// Schedules maps username to that faculty's teaching schedule.
	// Faculty without an entry are treated as having no teaching load.
	Schedules map[string]model.TeachingSchedule

	// ExistingInvigilations are persisted assignments checked for
	// same-date time conflicts
	ExistingInvigilations []ExistingInvigilation

	// ParsePolicy controls handling of malformed teaching-schedule
	// range strings (defaults to ParsePolicySkip)
	ParsePolicy ParsePolicy

	// Rand supplies the shuffle order. Inject a seeded source for
	// reproducible allocation; nil falls back to a time-seeded source.
	Rand *rand.Rand

	// Logger for per-step diagnostics; nil disables logging
	Logger *zap.Logger
}

// GenerationOutcome is the result of a generation run. When a slot cannot
// be filled, Fault identifies it and Slots holds the assignments produced
// before the failing slot; later slots are not attempted.
type GenerationOutcome struct {
	Slots    []SlotAssignment
	Fault    *CapacityError
	Complete bool
}
