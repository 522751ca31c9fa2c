package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockMarkCompletedStore implements MarkCompletedStore for testing
type mockMarkCompletedStore struct {
	examDates            map[string]bool
	invigilationDates    map[string]bool
	lastBefore           string
	markExamsErr         error
	markInvigilationsErr error
}

func (m *mockMarkCompletedStore) MarkExamsCompleted(ctx context.Context, before string) (int, error) {
	if m.markExamsErr != nil {
		return 0, m.markExamsErr
	}
	m.lastBefore = before
	return m.sweep(m.examDates, before), nil
}

func (m *mockMarkCompletedStore) MarkInvigilationsCompleted(ctx context.Context, before string) (int, error) {
	if m.markInvigilationsErr != nil {
		return 0, m.markInvigilationsErr
	}
	return m.sweep(m.invigilationDates, before), nil
}

// sweep marks dates strictly before the cutoff and reports how many
// changed, mimicking the real store's conditional update
func (m *mockMarkCompletedStore) sweep(dates map[string]bool, before string) int {
	count := 0
	for date, completed := range dates {
		if !completed && date < before {
			dates[date] = true
			count++
		}
	}
	return count
}

func TestMarkCompleted_SweepsOnlyPastDates(t *testing.T) {
	fixedClock(t, "2025-01-10 08:00")

	store := &mockMarkCompletedStore{
		examDates:         map[string]bool{"2025-01-08": false, "2025-01-10": false, "2025-01-12": false},
		invigilationDates: map[string]bool{"2025-01-08": false, "2025-01-09": false, "2025-01-10": false},
	}

	result, err := MarkCompleted(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "2025-01-10", result.Before)
	assert.Equal(t, 1, result.ExamsCompleted)
	assert.Equal(t, 2, result.InvigilationsCompleted)

	// Today's and future records are untouched
	assert.False(t, store.examDates["2025-01-10"])
	assert.False(t, store.examDates["2025-01-12"])
	assert.False(t, store.invigilationDates["2025-01-10"])
}

func TestMarkCompleted_SecondRunIsNoOp(t *testing.T) {
	fixedClock(t, "2025-01-10 08:00")

	store := &mockMarkCompletedStore{
		examDates:         map[string]bool{"2025-01-08": false},
		invigilationDates: map[string]bool{"2025-01-08": false},
	}

	first, err := MarkCompleted(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ExamsCompleted)

	second, err := MarkCompleted(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ExamsCompleted)
	assert.Equal(t, 0, second.InvigilationsCompleted)
}

func TestMarkCompleted_StoreFailure(t *testing.T) {
	fixedClock(t, "2025-01-10 08:00")

	store := &mockMarkCompletedStore{markExamsErr: errors.New("connection reset")}

	_, err := MarkCompleted(context.Background(), store, zap.NewNop())
	require.Error(t, err)
}
