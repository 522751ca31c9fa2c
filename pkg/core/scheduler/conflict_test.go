package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/invigilate/pkg/core/model"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"identical intervals", 600, 660, 600, 660, true},
		{"second starts inside first", 600, 660, 630, 690, true},
		{"second ends inside first", 600, 660, 570, 630, true},
		{"second contains first", 600, 660, 540, 720, true},
		{"first contains second", 540, 720, 600, 660, true},
		{"touching boundary end-to-start", 600, 660, 660, 720, false},
		{"touching boundary start-to-end", 660, 720, 600, 660, false},
		{"disjoint before", 600, 660, 720, 780, false},
		{"disjoint after", 720, 780, 600, 660, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	// [10:00,11:00) vs [11:00,12:00) must be false both ways round
	assert.False(t, Overlaps(600, 660, 660, 720))
	assert.False(t, Overlaps(660, 720, 600, 660))

	// A genuine overlap must hold both ways round too
	assert.True(t, Overlaps(600, 660, 630, 690))
	assert.True(t, Overlaps(630, 690, 600, 660))
}

func TestTimeToMinutes(t *testing.T) {
	minutes, err := TimeToMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = TimeToMinutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = TimeToMinutes("9am")
	assert.Error(t, err)

	_, err = TimeToMinutes("25:00")
	assert.Error(t, err)

	_, err = TimeToMinutes("12:75")
	assert.Error(t, err)
}

func TestMinutesToTime(t *testing.T) {
	assert.Equal(t, "09:30", MinutesToTime(570))
	assert.Equal(t, "00:05", MinutesToTime(5))
	assert.Equal(t, "23:59", MinutesToTime(1439))
}

func TestHasInvigilationConflict(t *testing.T) {
	detector := NewConflictDetector(model.ExamTypeSemester, "", ParsePolicySkip, nil)

	existing := []ExistingInvigilation{
		{Username: "asharma", Date: "2025-03-10", StartTime: "09:00", EndTime: "11:00"},
		{Username: "asharma", Date: "2025-03-11", StartTime: "09:00", EndTime: "11:00"},
		{Username: "bkumar", Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00"},
	}

	// Overlapping window on the same date
	assert.True(t, detector.HasInvigilationConflict(existing, "asharma", "2025-03-10", 600, 660))

	// Same window but different date
	assert.False(t, detector.HasInvigilationConflict(existing, "asharma", "2025-03-12", 600, 660))

	// Same date but a different faculty member's invigilation
	assert.False(t, detector.HasInvigilationConflict(existing, "bkumar", "2025-03-10", 600, 660))

	// Back-to-back windows do not conflict
	assert.False(t, detector.HasInvigilationConflict(existing, "asharma", "2025-03-10", 660, 720))
}

func TestHasTeachingConflictYearMatched(t *testing.T) {
	schedule := model.TeachingSchedule{
		"Monday": {
			"09:00 - 10:00": "2",
			"11:00 - 12:00": "3",
			"14:00 - 15:00": "All",
		},
	}

	detector := NewConflictDetector(model.ExamTypeT1, "2", ParsePolicySkip, nil)

	// Teaching year matches the requested year
	assert.True(t, detector.HasTeachingConflict(schedule, "asharma", "Monday", 540, 600))

	// Overlap exists but the taught year differs
	assert.False(t, detector.HasTeachingConflict(schedule, "asharma", "Monday", 660, 720))

	// "All" blocks every requested year
	assert.True(t, detector.HasTeachingConflict(schedule, "asharma", "Monday", 840, 900))

	// No range on the weekday at all
	assert.False(t, detector.HasTeachingConflict(schedule, "asharma", "Tuesday", 540, 600))
}

func TestHasTeachingConflictExemptTypes(t *testing.T) {
	schedule := model.TeachingSchedule{
		"Monday": {"09:00 - 10:00": "All"},
	}

	// External and Semester exams never consult the teaching schedule
	for _, examType := range []model.ExamType{model.ExamTypeExternal, model.ExamTypeSemester} {
		detector := NewConflictDetector(examType, "", ParsePolicySkip, nil)
		assert.False(t, detector.HasTeachingConflict(schedule, "asharma", "Monday", 540, 600),
			"exam type %s should skip the schedule check", examType)
	}
}

func TestHasTeachingConflictMalformedRange(t *testing.T) {
	schedule := model.TeachingSchedule{
		"Monday": {"garbage": "2"},
	}

	// Skip policy: the unparseable entry is ignored, not a block and not a pass
	skipDetector := NewConflictDetector(model.ExamTypeT1, "2", ParsePolicySkip, nil)
	assert.False(t, skipDetector.HasTeachingConflict(schedule, "asharma", "Monday", 540, 600))

	// Block policy fails safe: the faculty member is treated as unavailable
	blockDetector := NewConflictDetector(model.ExamTypeT1, "2", ParsePolicyBlock, nil)
	assert.True(t, blockDetector.HasTeachingConflict(schedule, "asharma", "Monday", 540, 600))
}

func TestHasTeachingConflictMalformedRangeDoesNotHideValidEntries(t *testing.T) {
	schedule := model.TeachingSchedule{
		"Monday": {
			"garbage":       "2",
			"09:00 - 10:00": "2",
		},
	}

	// The malformed entry is skipped but the valid conflicting one still blocks
	detector := NewConflictDetector(model.ExamTypeT1, "2", ParsePolicySkip, nil)
	assert.True(t, detector.HasTeachingConflict(schedule, "asharma", "Monday", 540, 600))
}

func TestAvailableCombinesBothChecks(t *testing.T) {
	schedule := model.TeachingSchedule{
		"Friday": {"09:00 - 10:00": "2"},
	}
	existing := []ExistingInvigilation{
		{Username: "asharma", Date: "2025-01-10", StartTime: "13:00", EndTime: "14:00"},
	}

	detector := NewConflictDetector(model.ExamTypeT1, "2", ParsePolicySkip, nil)

	// 2025-01-10 is a Friday: teaching blocks the morning window
	assert.False(t, detector.Available(schedule, existing, "asharma", "2025-01-10", "Friday", 540, 600))

	// Existing invigilation blocks the afternoon window
	assert.False(t, detector.Available(schedule, existing, "asharma", "2025-01-10", "Friday", 780, 840))

	// A free window passes both checks
	assert.True(t, detector.Available(schedule, existing, "asharma", "2025-01-10", "Friday", 660, 720))
}
