package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/db"
)

// ListSwapRequestsStore defines the database operations needed to list
// pending swap requests
type ListSwapRequestsStore interface {
	ListPendingSwapRequests(ctx context.Context) ([]db.SwapRequest, error)
}

// ListPendingSwapRequests returns every swap request still awaiting an
// admin decision
func ListPendingSwapRequests(ctx context.Context, store ListSwapRequestsStore, logger *zap.Logger) ([]db.SwapRequest, error) {
	logger.Debug("Listing pending swap requests")

	requests, err := store.ListPendingSwapRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending swap requests: %w", err)
	}

	logger.Info("Listed pending swap requests", zap.Int("count", len(requests)))

	return requests, nil
}
