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

const swapRequestColumns = `id, exam_id, invigilation_id, requesting_username, requested_username, reason, status, created_at`

func scanSwapRequest(row pgx.Row) (*db.SwapRequest, error) {
	var req db.SwapRequest
	var createdAt time.Time
	err := row.Scan(&req.ID, &req.ExamID, &req.InvigilationID, &req.RequestingUsername,
		&req.RequestedUsername, &req.Reason, &req.Status, &createdAt)
	if err != nil {
		return nil, err
	}
	req.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &req, nil
}

// InsertSwapRequest inserts a new swap request
func (d *DB) InsertSwapRequest(ctx context.Context, req *db.SwapRequest) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO swap_request (id, exam_id, invigilation_id, requesting_username, requested_username, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, req.ID, req.ExamID, req.InvigilationID, req.RequestingUsername,
		req.RequestedUsername, req.Reason, req.Status)
	if err != nil {
		return fmt.Errorf("failed to insert swap request: %w", err)
	}
	return nil
}

// GetSwapRequest retrieves one swap request, or nil if absent
func (d *DB) GetSwapRequest(ctx context.Context, id string) (*db.SwapRequest, error) {
	req, err := scanSwapRequest(d.pool.QueryRow(ctx,
		`SELECT `+swapRequestColumns+` FROM swap_request WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query swap request: %w", err)
	}
	return req, nil
}

// FindPendingSwapRequest retrieves a faculty member's pending request for
// one invigilation, or nil if none exists
func (d *DB) FindPendingSwapRequest(ctx context.Context, invigilationID, requestingUsername string) (*db.SwapRequest, error) {
	req, err := scanSwapRequest(d.pool.QueryRow(ctx,
		`SELECT `+swapRequestColumns+` FROM swap_request
		 WHERE invigilation_id = $1 AND requesting_username = $2 AND status = $3
		 LIMIT 1`,
		invigilationID, requestingUsername, string(model.SwapPending)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pending swap request: %w", err)
	}
	return req, nil
}

// ListPendingSwapRequests retrieves all swap requests awaiting resolution
func (d *DB) ListPendingSwapRequests(ctx context.Context) ([]db.SwapRequest, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+swapRequestColumns+` FROM swap_request WHERE status = $1 ORDER BY created_at`,
		string(model.SwapPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query swap requests: %w", err)
	}
	defer rows.Close()

	var requests []db.SwapRequest
	for rows.Next() {
		req, err := scanSwapRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap requests: %w", err)
	}

	return requests, nil
}

// SetSwapRequestStatus sets a swap request's terminal status
func (d *DB) SetSwapRequestStatus(ctx context.Context, id, status string) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE swap_request SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to set swap request status: %w", err)
	}
	return nil
}
