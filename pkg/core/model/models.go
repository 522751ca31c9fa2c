package model

// ExamType identifies the kind of exam being scheduled
type ExamType string

const (
	ExamTypeT1       ExamType = "T1-Exam"
	ExamTypeT4       ExamType = "T4-Exam"
	ExamTypeExternal ExamType = "External"
	ExamTypeSemester ExamType = "Semester"
)

// ExamTypes lists all valid exam types
var ExamTypes = []ExamType{ExamTypeT1, ExamTypeT4, ExamTypeExternal, ExamTypeSemester}

// Valid reports whether t is a known exam type
func (t ExamType) Valid() bool {
	for _, known := range ExamTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RequiresYearMatch reports whether this exam type needs a target year.
// Year-matched types also enforce exactly 60-minute slots.
func (t ExamType) RequiresYearMatch() bool {
	return t == ExamTypeT1 || t == ExamTypeT4
}

// SkipsScheduleCheck reports whether teaching schedules are ignored when
// checking faculty availability for this exam type
func (t ExamType) SkipsScheduleCheck() bool {
	return t == ExamTypeExternal || t == ExamTypeSemester
}

// AssignmentStatus is the lifecycle status of a single faculty assignment.
// Nested section entries use Assigned/Confirmed/Swapped; flat invigilation
// records additionally reach Completed via the completion sweep.
type AssignmentStatus string

const (
	StatusAssigned  AssignmentStatus = "Assigned"
	StatusConfirmed AssignmentStatus = "Confirmed"
	StatusSwapped   AssignmentStatus = "Swapped"
	StatusCompleted AssignmentStatus = "Completed"
)

// ExamStatus is the overall status of an exam
type ExamStatus string

const (
	ExamScheduled ExamStatus = "Scheduled"
	ExamCompleted ExamStatus = "Completed"
)

// SwapStatus is the status of a swap request. pending is the only
// non-terminal state; approved and rejected are never reopened.
type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapApproved SwapStatus = "approved"
	SwapRejected SwapStatus = "rejected"
)

// NotificationStatus marks a notification as read or unread
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "Unread"
	NotificationRead   NotificationStatus = "Read"
)

// PlaceholderUsername marks an unfilled seat in a section. Placeholder
// entries never produce invigilation or notification records.
const PlaceholderUsername = "no-faculty"

// YearAll is the teaching-schedule wildcard meaning "teaches every year"
const YearAll = "All"

// Years lists the valid values for an exam's target year
var Years = []string{"1", "2", "3", "4", YearAll}

// Faculty is a member of staff eligible for invigilation duty
type Faculty struct {
	Username   string
	Name       string
	Email      string
	Department string
}

// TeachingSchedule maps weekday name -> "HH:MM - HH:MM" range -> taught year.
// The taught year is "1".."4" or "All".
type TeachingSchedule map[string]map[string]string

// FacultyAssignment is one seat in a section of a slot
type FacultyAssignment struct {
	Username string           `json:"username"`
	Name     string           `json:"name"`
	Status   AssignmentStatus `json:"status"`
}

// Section is a subgroup of a slot requiring its own invigilators
type Section struct {
	SectionNumber int                 `json:"sectionNumber"`
	Faculty       []FacultyAssignment `json:"faculty"`
}

// Slot is one scheduled exam window, subdivided into sections.
// Date is "2006-01-02"; times are 24-hour "HH:MM".
type Slot struct {
	SlotNumber int       `json:"slotNumber"`
	Subject    string    `json:"subject"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Sections   []Section `json:"sections"`
}

// Exam is the authoritative nested document: the full schedule of slots,
// sections and seat assignments for one exam
type Exam struct {
	ID       string
	ExamName string
	ExamType ExamType
	Year     string
	Date     string
	Slots    []Slot
	Status   ExamStatus
}
