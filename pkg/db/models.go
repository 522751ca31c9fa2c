package db

// Faculty is a database faculty directory record
type Faculty struct {
	ID         string
	Username   string
	Name       string
	Email      string
	Department string
}

// FacultySchedule is a database teaching-schedule record: weekday name ->
// "HH:MM - HH:MM" range -> taught year ("1".."4" or "All")
type FacultySchedule struct {
	Username string
	Schedule map[string]map[string]string
}

// Invigilation is the flat lifecycle record for one (faculty, slot)
// assignment. The owning exam's nested document is authoritative; these
// records are a derived projection kept in sync by every mutating
// operation.
type Invigilation struct {
	ID        string
	Username  string
	ExamID    string
	ExamName  string
	ExamType  string
	Date      string
	StartTime string
	EndTime   string
	Venue     string
	Status    string
	CreatedAt string
}

// SwapRequest is a database swap negotiation record
type SwapRequest struct {
	ID                 string
	ExamID             string
	InvigilationID     string
	RequestingUsername string
	RequestedUsername  string
	Reason             string
	Status             string
	CreatedAt          string
}

// Notification is a database notification record
type Notification struct {
	ID            string
	Username      string
	Message       string
	Status        string
	RelatedExamID string
	CreatedAt     string
}
