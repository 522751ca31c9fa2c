package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

const invigilationColumns = `id, username, exam_id, exam_name, exam_type, date, start_time, end_time, venue, status, created_at`

func scanInvigilation(row pgx.Row) (*db.Invigilation, error) {
	var inv db.Invigilation
	var date, createdAt time.Time
	err := row.Scan(&inv.ID, &inv.Username, &inv.ExamID, &inv.ExamName, &inv.ExamType,
		&date, &inv.StartTime, &inv.EndTime, &inv.Venue, &inv.Status, &createdAt)
	if err != nil {
		return nil, err
	}
	inv.Date = date.Format("2006-01-02")
	inv.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &inv, nil
}

func (d *DB) queryInvigilations(ctx context.Context, query string, args ...any) ([]db.Invigilation, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invigilations: %w", err)
	}
	defer rows.Close()

	var invigilations []db.Invigilation
	for rows.Next() {
		inv, err := scanInvigilation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invigilation: %w", err)
		}
		invigilations = append(invigilations, *inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invigilations: %w", err)
	}

	return invigilations, nil
}

// InsertInvigilation inserts a new invigilation record
func (d *DB) InsertInvigilation(ctx context.Context, inv *db.Invigilation) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO invigilation (id, username, exam_id, exam_name, exam_type, date, start_time, end_time, venue, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, inv.ID, inv.Username, inv.ExamID, inv.ExamName, inv.ExamType,
		inv.Date, inv.StartTime, inv.EndTime, inv.Venue, inv.Status)
	if err != nil {
		return fmt.Errorf("failed to insert invigilation: %w", err)
	}
	return nil
}

// GetInvigilation retrieves one invigilation record, or nil if absent
func (d *DB) GetInvigilation(ctx context.Context, id string) (*db.Invigilation, error) {
	inv, err := scanInvigilation(d.pool.QueryRow(ctx,
		`SELECT `+invigilationColumns+` FROM invigilation WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query invigilation: %w", err)
	}
	return inv, nil
}

// ListInvigilations retrieves all invigilation records
func (d *DB) ListInvigilations(ctx context.Context) ([]db.Invigilation, error) {
	return d.queryInvigilations(ctx,
		`SELECT `+invigilationColumns+` FROM invigilation ORDER BY date, start_time`)
}

// ListInvigilationsByExam retrieves the invigilation records of one exam
func (d *DB) ListInvigilationsByExam(ctx context.Context, examID string) ([]db.Invigilation, error) {
	return d.queryInvigilations(ctx,
		`SELECT `+invigilationColumns+` FROM invigilation WHERE exam_id = $1 ORDER BY date, start_time`, examID)
}

// ListInvigilationsByUsername retrieves one faculty member's invigilation records
func (d *DB) ListInvigilationsByUsername(ctx context.Context, username string) ([]db.Invigilation, error) {
	return d.queryInvigilations(ctx,
		`SELECT `+invigilationColumns+` FROM invigilation WHERE username = $1 ORDER BY date, start_time`, username)
}

// SetInvigilationStatus sets the status of one invigilation record
func (d *DB) SetInvigilationStatus(ctx context.Context, id, status string) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE invigilation SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to set invigilation status: %w", err)
	}
	return nil
}

// ReassignInvigilation moves an invigilation record to another faculty
// member and sets its status in one statement
func (d *DB) ReassignInvigilation(ctx context.Context, id, username, status string) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE invigilation SET username = $2, status = $3 WHERE id = $1
	`, id, username, status)
	if err != nil {
		return fmt.Errorf("failed to reassign invigilation: %w", err)
	}
	return nil
}

// MarkInvigilationsCompleted transitions invigilations dated before the
// cutoff to Completed, returning how many changed
func (d *DB) MarkInvigilationsCompleted(ctx context.Context, before string) (int, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE invigilation SET status = $2
		WHERE date < $1 AND status <> $2
	`, before, string(model.StatusCompleted))
	if err != nil {
		return 0, fmt.Errorf("failed to mark invigilations completed: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
