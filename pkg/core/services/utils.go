package services

import (
	"fmt"
	"time"

	"github.com/campusops/invigilate/pkg/core/model"
)

// timeNow is swapped out in tests that need a fixed clock
var timeNow = time.Now

// venueFor builds the venue string recorded on flat invigilation records
func venueFor(slotNumber, sectionNumber int) string {
	if sectionNumber != 0 {
		return fmt.Sprintf("Slot %d, Section %d", slotNumber, sectionNumber)
	}
	return fmt.Sprintf("Slot %d", slotNumber)
}

// displayDate renders a stored "2006-01-02" date for notification text.
// Unparseable dates fall back to the raw string.
func displayDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("2 January 2006")
}

// isPlaceholder reports whether a nested seat is unfilled
func isPlaceholder(username string) bool {
	return username == "" || username == model.PlaceholderUsername
}

// setAssignmentStatusExamWide sets the status of every nested seat
// matching the username anywhere in the exam, across all slots and
// sections, and returns how many entries changed. The exam-wide match is
// the deliberate policy for confirmation and swap approval; manual
// reassignment uses the narrower slot/section-scoped path instead.
func setAssignmentStatusExamWide(exam *model.Exam, username string, status model.AssignmentStatus) int {
	updated := 0
	for si := range exam.Slots {
		for ci := range exam.Slots[si].Sections {
			section := &exam.Slots[si].Sections[ci]
			for fi := range section.Faculty {
				if section.Faculty[fi].Username == username {
					section.Faculty[fi].Status = status
					updated++
				}
			}
		}
	}
	return updated
}

// reassignExamWide replaces username, name and status on every nested
// seat matching fromUsername anywhere in the exam, returning how many
// entries changed. Used by swap approval, keyed on the requesting
// faculty member.
func reassignExamWide(exam *model.Exam, fromUsername, toUsername, toName string) int {
	updated := 0
	for si := range exam.Slots {
		for ci := range exam.Slots[si].Sections {
			section := &exam.Slots[si].Sections[ci]
			for fi := range section.Faculty {
				if section.Faculty[fi].Username == fromUsername {
					section.Faculty[fi] = model.FacultyAssignment{
						Username: toUsername,
						Name:     toName,
						Status:   model.StatusSwapped,
					}
					updated++
				}
			}
		}
	}
	return updated
}
