package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// mockReconcileStore implements ReconcileStore for testing
type mockReconcileStore struct {
	exams                 map[string]*model.Exam
	invigilationsByExam   map[string][]db.Invigilation
	insertedInvigilations []*db.Invigilation
	insertInvigilationErr error
}

func (m *mockReconcileStore) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	return m.exams[id], nil
}

func (m *mockReconcileStore) ListInvigilationsByExam(ctx context.Context, examID string) ([]db.Invigilation, error) {
	return m.invigilationsByExam[examID], nil
}

func (m *mockReconcileStore) InsertInvigilation(ctx context.Context, inv *db.Invigilation) error {
	if m.insertInvigilationErr != nil {
		return m.insertInvigilationErr
	}
	m.insertedInvigilations = append(m.insertedInvigilations, inv)
	return nil
}

func TestReconcileExam_RecreatesMissingRecords(t *testing.T) {
	exam := multiSlotExam()
	exam.Slots[1].Sections[0].Faculty[0].Status = model.StatusConfirmed

	store := &mockReconcileStore{
		exams: map[string]*model.Exam{"exam-1": exam},
		invigilationsByExam: map[string][]db.Invigilation{
			// Alice and Bob have slot 1 records; slot 2 lost both of its
			// records to a partial fan-out failure
			"exam-1": {
				{ID: "inv-1", Username: "alice", Date: "2025-01-10", StartTime: "09:00"},
				{ID: "inv-2", Username: "bob", Date: "2025-01-10", StartTime: "09:00"},
			},
		},
	}

	result, err := ReconcileExam(context.Background(), store, zap.NewNop(), "exam-1")
	require.NoError(t, err)

	assert.Equal(t, 4, result.SeatsChecked)
	assert.Equal(t, 2, result.InvigilationsCreated)
	assert.Equal(t, 0, result.Failures)

	require.Len(t, store.insertedInvigilations, 2)
	recreatedAlice := store.insertedInvigilations[0]
	assert.Equal(t, "alice", recreatedAlice.Username)
	assert.Equal(t, "2025-01-11", recreatedAlice.Date)
	assert.Equal(t, "Slot 2, Section 1", recreatedAlice.Venue)
	// The seat's current nested status carries over
	assert.Equal(t, string(model.StatusConfirmed), recreatedAlice.Status)
	assert.Equal(t, "carol", store.insertedInvigilations[1].Username)
}

func TestReconcileExam_CompleteProjectionCreatesNothing(t *testing.T) {
	store := &mockReconcileStore{
		exams: map[string]*model.Exam{"exam-1": multiSlotExam()},
		invigilationsByExam: map[string][]db.Invigilation{
			"exam-1": {
				{Username: "alice", Date: "2025-01-10", StartTime: "09:00"},
				{Username: "bob", Date: "2025-01-10", StartTime: "09:00"},
				{Username: "alice", Date: "2025-01-11", StartTime: "09:00"},
				{Username: "carol", Date: "2025-01-11", StartTime: "09:00"},
			},
		},
	}

	result, err := ReconcileExam(context.Background(), store, zap.NewNop(), "exam-1")
	require.NoError(t, err)

	assert.Equal(t, 4, result.SeatsChecked)
	assert.Equal(t, 0, result.InvigilationsCreated)
	assert.Empty(t, store.insertedInvigilations)
}

func TestReconcileExam_PlaceholderSeatsIgnored(t *testing.T) {
	exam := multiSlotExam()
	exam.Slots[0].Sections[0].Faculty[1] = model.FacultyAssignment{
		Username: model.PlaceholderUsername,
		Name:     "No Faculty Available",
		Status:   model.StatusAssigned,
	}

	store := &mockReconcileStore{
		exams:               map[string]*model.Exam{"exam-1": exam},
		invigilationsByExam: map[string][]db.Invigilation{},
	}

	result, err := ReconcileExam(context.Background(), store, zap.NewNop(), "exam-1")
	require.NoError(t, err)

	assert.Equal(t, 3, result.SeatsChecked)
	assert.Equal(t, 3, result.InvigilationsCreated)
	for _, inv := range store.insertedInvigilations {
		assert.NotEqual(t, model.PlaceholderUsername, inv.Username)
	}
}

func TestReconcileExam_InsertFailuresCounted(t *testing.T) {
	store := &mockReconcileStore{
		exams:                 map[string]*model.Exam{"exam-1": multiSlotExam()},
		invigilationsByExam:   map[string][]db.Invigilation{},
		insertInvigilationErr: errors.New("connection reset"),
	}

	result, err := ReconcileExam(context.Background(), store, zap.NewNop(), "exam-1")
	require.NoError(t, err)

	assert.Equal(t, 4, result.Failures)
	assert.Equal(t, 0, result.InvigilationsCreated)
}

func TestReconcileExam_UnknownExam(t *testing.T) {
	store := &mockReconcileStore{exams: map[string]*model.Exam{}}

	_, err := ReconcileExam(context.Background(), store, zap.NewNop(), "exam-9")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "exam", notFound.Resource)
}
