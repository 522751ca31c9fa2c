package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusops/invigilate/pkg/core/model"
)

// InsertExam inserts a new exam document. Slots are stored as JSONB.
func (d *DB) InsertExam(ctx context.Context, exam *model.Exam) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO exam (id, exam_name, exam_type, year, date, slots, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, exam.ID, exam.ExamName, string(exam.ExamType), exam.Year, exam.Date, exam.Slots, string(exam.Status))
	if err != nil {
		return fmt.Errorf("failed to insert exam: %w", err)
	}
	return nil
}

// GetExam retrieves one exam document, or nil if absent
func (d *DB) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	var exam model.Exam
	var date time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT id, exam_name, exam_type, year, date, slots, status
		FROM exam
		WHERE id = $1
	`, id).Scan(&exam.ID, &exam.ExamName, &exam.ExamType, &exam.Year, &date, &exam.Slots, &exam.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query exam: %w", err)
	}
	exam.Date = date.Format("2006-01-02")
	return &exam, nil
}

// ListExams retrieves all exam documents
func (d *DB) ListExams(ctx context.Context) ([]model.Exam, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, exam_name, exam_type, year, date, slots, status
		FROM exam
		ORDER BY date, exam_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exams: %w", err)
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var exam model.Exam
		var date time.Time
		if err := rows.Scan(&exam.ID, &exam.ExamName, &exam.ExamType, &exam.Year, &date, &exam.Slots, &exam.Status); err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exam.Date = date.Format("2006-01-02")
		exams = append(exams, exam)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exams: %w", err)
	}

	return exams, nil
}

// UpdateExamSlots replaces an exam's slots document
func (d *DB) UpdateExamSlots(ctx context.Context, id string, slots []model.Slot) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE exam SET slots = $2 WHERE id = $1
	`, id, slots)
	if err != nil {
		return fmt.Errorf("failed to update exam slots: %w", err)
	}
	return nil
}

// MarkExamsCompleted transitions scheduled exams dated before the cutoff
// to Completed, returning how many changed
func (d *DB) MarkExamsCompleted(ctx context.Context, before string) (int, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE exam SET status = $2
		WHERE date < $1 AND status = $3
	`, before, string(model.ExamCompleted), string(model.ExamScheduled))
	if err != nil {
		return 0, fmt.Errorf("failed to mark exams completed: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
