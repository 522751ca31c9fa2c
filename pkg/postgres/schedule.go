package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campusops/invigilate/pkg/db"
)

// GetFacultySchedule retrieves one teaching schedule, or nil if absent
func (d *DB) GetFacultySchedule(ctx context.Context, username string) (*db.FacultySchedule, error) {
	var s db.FacultySchedule
	err := d.pool.QueryRow(ctx, `
		SELECT username, schedule
		FROM faculty_schedule
		WHERE username = $1
	`, username).Scan(&s.Username, &s.Schedule)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query faculty schedule: %w", err)
	}
	return &s, nil
}

// ListFacultySchedules retrieves all teaching schedules
func (d *DB) ListFacultySchedules(ctx context.Context) ([]db.FacultySchedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT username, schedule
		FROM faculty_schedule
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query faculty schedules: %w", err)
	}
	defer rows.Close()

	var schedules []db.FacultySchedule
	for rows.Next() {
		var s db.FacultySchedule
		if err := rows.Scan(&s.Username, &s.Schedule); err != nil {
			return nil, fmt.Errorf("failed to scan faculty schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faculty schedules: %w", err)
	}

	return schedules, nil
}

// UpsertFacultySchedule replaces a faculty member's teaching schedule
func (d *DB) UpsertFacultySchedule(ctx context.Context, schedule *db.FacultySchedule) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO faculty_schedule (username, schedule)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET schedule = EXCLUDED.schedule
	`, schedule.Username, schedule.Schedule)
	if err != nil {
		return fmt.Errorf("failed to upsert faculty schedule: %w", err)
	}
	return nil
}
