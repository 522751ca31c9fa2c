package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campusops/invigilate/pkg/db"
)

// GetFacultyByUsername retrieves one faculty record, or nil if absent
func (d *DB) GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error) {
	var f db.Faculty
	err := d.pool.QueryRow(ctx, `
		SELECT username, name, email, department
		FROM faculty
		WHERE username = $1
	`, username).Scan(&f.Username, &f.Name, &f.Email, &f.Department)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query faculty: %w", err)
	}
	return &f, nil
}

// ListFaculty retrieves all faculty records
func (d *DB) ListFaculty(ctx context.Context) ([]db.Faculty, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT username, name, email, department
		FROM faculty
		ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query faculty: %w", err)
	}
	defer rows.Close()

	var faculty []db.Faculty
	for rows.Next() {
		var f db.Faculty
		if err := rows.Scan(&f.Username, &f.Name, &f.Email, &f.Department); err != nil {
			return nil, fmt.Errorf("failed to scan faculty: %w", err)
		}
		faculty = append(faculty, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faculty: %w", err)
	}

	return faculty, nil
}

// InsertFaculty inserts a new faculty record
func (d *DB) InsertFaculty(ctx context.Context, faculty *db.Faculty) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO faculty (username, name, email, department)
		VALUES ($1, $2, $3, $4)
	`, faculty.Username, faculty.Name, faculty.Email, faculty.Department)
	if err != nil {
		return fmt.Errorf("failed to insert faculty: %w", err)
	}
	return nil
}
