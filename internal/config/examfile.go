package config

import (
	"fmt"
	"os"

	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// SlotDef is one explicit slot in an exam definition file
type SlotDef struct {
	SlotNumber      int    `yaml:"slotNumber"`
	Subject         string `yaml:"subject" validate:"required"`
	Date            string `yaml:"date" validate:"required"`
	StartTime       string `yaml:"startTime" validate:"required"`
	EndTime         string `yaml:"endTime" validate:"required"`
	SectionsPerSlot int    `yaml:"sectionsPerSlot" validate:"required,min=1"`
}

// SlotSeries expands a recurrence rule into dated slots, one per subject
// in order, sharing a daily time window. Useful for week-long exam runs
// where listing every date by hand is tedious.
type SlotSeries struct {
	RRule           string   `yaml:"rrule" validate:"required"`
	Subjects        []string `yaml:"subjects" validate:"required,min=1"`
	StartTime       string   `yaml:"startTime" validate:"required"`
	EndTime         string   `yaml:"endTime" validate:"required"`
	SectionsPerSlot int      `yaml:"sectionsPerSlot" validate:"required,min=1"`
}

// ExamFile is an exam definition loaded from YAML: either explicit slots
// or a series, plus the exam-level parameters shared by schedule
// generation and exam creation
type ExamFile struct {
	ExamName          string      `yaml:"examName" validate:"required"`
	ExamType          string      `yaml:"examType" validate:"required,oneof=T1-Exam T4-Exam External Semester"`
	Year              string      `yaml:"year,omitempty" validate:"omitempty,oneof=1 2 3 4 All"`
	FacultyPerSection int         `yaml:"facultyPerSection" validate:"required,min=1"`
	Slots             []SlotDef   `yaml:"slots,omitempty" validate:"omitempty,dive"`
	Series            *SlotSeries `yaml:"series,omitempty"`
}

// LoadExamFile loads and validates an exam definition from a YAML file
func LoadExamFile(path string) (*ExamFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam file: %w", err)
	}

	var file ExamFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse exam file: %w", err)
	}

	if err := ValidateExamFile(&file); err != nil {
		return nil, err
	}

	return &file, nil
}

// ValidateExamFile validates an exam definition, including rrule syntax
// when a series is present
func ValidateExamFile(file *ExamFile) error {
	if err := validate.Struct(file); err != nil {
		return fmt.Errorf("exam file validation failed: %w", err)
	}

	if len(file.Slots) == 0 && file.Series == nil {
		return fmt.Errorf("exam file must define slots or a series")
	}
	if len(file.Slots) > 0 && file.Series != nil {
		return fmt.Errorf("exam file must define slots or a series, not both")
	}

	if file.Series != nil {
		if _, err := rrule.StrToRRule(file.Series.RRule); err != nil {
			return fmt.Errorf("invalid rrule in series: %w", err)
		}
	}

	return nil
}

// ExpandSlots returns the definition's slots, expanding a series into one
// dated slot per subject: the Nth occurrence of the recurrence carries
// the Nth subject. Explicit slots are returned as-is with slot numbers
// defaulted to their position.
func (f *ExamFile) ExpandSlots() ([]SlotDef, error) {
	if f.Series == nil {
		slots := make([]SlotDef, len(f.Slots))
		copy(slots, f.Slots)
		for i := range slots {
			if slots[i].SlotNumber == 0 {
				slots[i].SlotNumber = i + 1
			}
		}
		return slots, nil
	}

	rule, err := rrule.StrToRRule(f.Series.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule in series: %w", err)
	}

	occurrences := rule.All()
	if len(occurrences) < len(f.Series.Subjects) {
		return nil, fmt.Errorf("series produces %d occurrences but %d subjects were given",
			len(occurrences), len(f.Series.Subjects))
	}

	slots := make([]SlotDef, 0, len(f.Series.Subjects))
	for i, subject := range f.Series.Subjects {
		slots = append(slots, SlotDef{
			SlotNumber:      i + 1,
			Subject:         subject,
			Date:            occurrences[i].Format("2006-01-02"),
			StartTime:       f.Series.StartTime,
			EndTime:         f.Series.EndTime,
			SectionsPerSlot: f.Series.SectionsPerSlot,
		})
	}

	return slots, nil
}
