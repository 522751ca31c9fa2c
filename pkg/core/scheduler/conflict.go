package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
)

// rangeSeparator splits a teaching-schedule range key like "09:00 - 10:00"
const rangeSeparator = " - "

// ParsePolicy decides what happens when a teaching-schedule range string
// cannot be parsed. Skip ignores the single entry (the historical
// behaviour); Block treats the whole faculty member as unavailable for
// the window, failing safe.
type ParsePolicy string

const (
	ParsePolicySkip  ParsePolicy = "skip"
	ParsePolicyBlock ParsePolicy = "block"
)

// TimeToMinutes converts a 24-hour "HH:MM" string to minutes since midnight
func TimeToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", t)
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", t)
	}
	return hours*60 + minutes, nil
}

// MinutesToTime converts minutes since midnight back to "HH:MM"
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// overlap. Touching boundaries (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return (s2 >= s1 && s2 < e1) ||
		(e2 > s1 && e2 <= e1) ||
		(s2 <= s1 && e2 >= e1)
}

// ConflictDetector decides whether a faculty member is free for a
// candidate exam window
type ConflictDetector struct {
	ExamType model.ExamType
	Year     string
	Policy   ParsePolicy
	Logger   *zap.Logger
}

// NewConflictDetector creates a detector for one generation run
func NewConflictDetector(examType model.ExamType, year string, policy ParsePolicy, logger *zap.Logger) *ConflictDetector {
	if policy == "" {
		policy = ParsePolicySkip
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictDetector{
		ExamType: examType,
		Year:     year,
		Policy:   policy,
		Logger:   logger,
	}
}

// HasInvigilationConflict reports whether any of the faculty member's
// existing invigilations on the same calendar date overlaps the window
func (d *ConflictDetector) HasInvigilationConflict(existing []ExistingInvigilation, username, date string, startMin, endMin int) bool {
	for _, inv := range existing {
		if inv.Username != username || inv.Date != date {
			continue
		}
		invStart, err := TimeToMinutes(inv.StartTime)
		if err != nil {
			d.Logger.Warn("skipping invigilation with unparseable start time",
				zap.String("username", username),
				zap.String("start_time", inv.StartTime))
			continue
		}
		invEnd, err := TimeToMinutes(inv.EndTime)
		if err != nil {
			d.Logger.Warn("skipping invigilation with unparseable end time",
				zap.String("username", username),
				zap.String("end_time", inv.EndTime))
			continue
		}
		if Overlaps(invStart, invEnd, startMin, endMin) {
			return true
		}
	}
	return false
}

// HasTeachingConflict reports whether the faculty member's teaching
// schedule blocks the window on the given weekday. Exam types that skip
// the schedule check never conflict. For year-matched types a teaching
// range blocks only when the taught year equals the requested year or is
// "All"; for any other type, any overlapping range blocks.
func (d *ConflictDetector) HasTeachingConflict(schedule model.TeachingSchedule, username, weekday string, startMin, endMin int) bool {
	if d.ExamType.SkipsScheduleCheck() {
		return false
	}
	if schedule == nil {
		return false
	}

	for rangeStr, taughtYear := range schedule[weekday] {
		rangeStart, rangeEnd, err := parseRange(rangeStr)
		if err != nil {
			d.Logger.Warn("malformed teaching schedule range",
				zap.String("username", username),
				zap.String("weekday", weekday),
				zap.String("range", rangeStr),
				zap.String("policy", string(d.Policy)),
				zap.Error(err))
			if d.Policy == ParsePolicyBlock {
				return true
			}
			continue
		}

		if !Overlaps(rangeStart, rangeEnd, startMin, endMin) {
			continue
		}

		if d.ExamType.RequiresYearMatch() {
			if taughtYear == d.Year || taughtYear == model.YearAll {
				return true
			}
			continue
		}
		return true
	}
	return false
}

// Available combines both checks: no same-date invigilation overlap and
// no blocking teaching range
func (d *ConflictDetector) Available(schedule model.TeachingSchedule, existing []ExistingInvigilation, username, date, weekday string, startMin, endMin int) bool {
	if d.HasInvigilationConflict(existing, username, date, startMin, endMin) {
		return false
	}
	return !d.HasTeachingConflict(schedule, username, weekday, startMin, endMin)
}

// parseRange parses "HH:MM - HH:MM" into start/end minutes
func parseRange(rangeStr string) (int, int, error) {
	parts := strings.Split(rangeStr, rangeSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q: expected \"HH:MM - HH:MM\"", rangeStr)
	}
	start, err := TimeToMinutes(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := TimeToMinutes(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
