package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// mockManualAssignmentStore implements ManualAssignmentStore for testing
type mockManualAssignmentStore struct {
	exams                 map[string]*model.Exam
	faculty               map[string]*db.Faculty
	invigilationsByExam   map[string][]db.Invigilation
	updatedSlots          map[string][]model.Slot
	reassigned            map[string][2]string
	insertedNotifications []*db.Notification
}

func (m *mockManualAssignmentStore) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	return m.exams[id], nil
}

func (m *mockManualAssignmentStore) UpdateExamSlots(ctx context.Context, id string, slots []model.Slot) error {
	if m.updatedSlots == nil {
		m.updatedSlots = map[string][]model.Slot{}
	}
	m.updatedSlots[id] = slots
	return nil
}

func (m *mockManualAssignmentStore) GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error) {
	return m.faculty[username], nil
}

func (m *mockManualAssignmentStore) ListInvigilationsByExam(ctx context.Context, examID string) ([]db.Invigilation, error) {
	return m.invigilationsByExam[examID], nil
}

func (m *mockManualAssignmentStore) ReassignInvigilation(ctx context.Context, id, username, status string) error {
	if m.reassigned == nil {
		m.reassigned = map[string][2]string{}
	}
	m.reassigned[id] = [2]string{username, status}
	return nil
}

func (m *mockManualAssignmentStore) InsertNotification(ctx context.Context, n *db.Notification) error {
	m.insertedNotifications = append(m.insertedNotifications, n)
	return nil
}

func manualAssignmentFixture() *mockManualAssignmentStore {
	return &mockManualAssignmentStore{
		exams: map[string]*model.Exam{"exam-1": multiSlotExam()},
		faculty: map[string]*db.Faculty{
			"alice": {Username: "alice", Name: "Alice Smith"},
			"dave":  {Username: "dave", Name: "Dave Wilson"},
		},
		invigilationsByExam: map[string][]db.Invigilation{
			"exam-1": {
				{ID: "inv-1", Username: "alice", ExamID: "exam-1", Date: "2025-01-10", StartTime: "09:00", EndTime: "10:00"},
				{ID: "inv-2", Username: "alice", ExamID: "exam-1", Date: "2025-01-11", StartTime: "09:00", EndTime: "10:00"},
			},
		},
	}
}

func TestManualAssignment_ReplacesOnlyTheNamedSeat(t *testing.T) {
	store := manualAssignmentFixture()

	result, err := ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID:              "exam-1",
		SlotNumber:          1,
		SectionNumber:       1,
		CurrentUsername:     "alice",
		ReplacementUsername: "dave",
	})
	require.NoError(t, err)

	slots := store.updatedSlots["exam-1"]
	require.NotNil(t, slots)

	seat := slots[0].Sections[0].Faculty[0]
	assert.Equal(t, "dave", seat.Username)
	assert.Equal(t, "Dave Wilson", seat.Name)
	assert.Equal(t, model.StatusSwapped, seat.Status)

	// Alice's seat in slot 2 is out of scope for a manual reassignment
	assert.Equal(t, "alice", slots[1].Sections[0].Faculty[0].Username)
	assert.Equal(t, model.StatusAssigned, slots[1].Sections[0].Faculty[0].Status)

	// The flat record matching slot 1's timing moves; slot 2's does not
	assert.True(t, result.FlatUpdated)
	assert.Equal(t, [2]string{"dave", string(model.StatusSwapped)}, store.reassigned["inv-1"])
	_, touched := store.reassigned["inv-2"]
	assert.False(t, touched)

	require.Len(t, store.insertedNotifications, 2)
	assert.Equal(t, "alice", store.insertedNotifications[0].Username)
	assert.Contains(t, store.insertedNotifications[0].Message, "manually reassigned to Dave Wilson")
	assert.Equal(t, "dave", store.insertedNotifications[1].Username)
	assert.Contains(t, store.insertedNotifications[1].Message, "manually assigned to invigilate")
}

func TestManualAssignment_FillsPlaceholderSeat(t *testing.T) {
	store := manualAssignmentFixture()
	exam := store.exams["exam-1"]
	exam.Slots[0].Sections[0].Faculty[0] = model.FacultyAssignment{
		Username: model.PlaceholderUsername,
		Name:     "No Faculty Available",
		Status:   model.StatusAssigned,
	}

	result, err := ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID:              "exam-1",
		SlotNumber:          1,
		SectionNumber:       1,
		CurrentUsername:     model.PlaceholderUsername,
		ReplacementUsername: "dave",
	})
	require.NoError(t, err)

	seat := store.updatedSlots["exam-1"][0].Sections[0].Faculty[0]
	assert.Equal(t, "dave", seat.Username)

	// No flat record exists for a placeholder and none is reassigned
	assert.False(t, result.FlatUpdated)
	assert.Empty(t, store.reassigned)

	// Only the replacement is notified
	require.Len(t, store.insertedNotifications, 1)
	assert.Equal(t, "dave", store.insertedNotifications[0].Username)
}

func TestManualAssignment_ReplacementAlreadyInSectionIsConflict(t *testing.T) {
	store := manualAssignmentFixture()
	store.faculty["bob"] = &db.Faculty{Username: "bob", Name: "Bob Jones"}

	_, err := ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID:              "exam-1",
		SlotNumber:          1,
		SectionNumber:       1,
		CurrentUsername:     "alice",
		ReplacementUsername: "bob",
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Empty(t, store.updatedSlots)
}

func TestManualAssignment_UnknownTargets(t *testing.T) {
	store := manualAssignmentFixture()

	var notFound *NotFoundError

	_, err := ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID: "exam-9", SlotNumber: 1, SectionNumber: 1,
		CurrentUsername: "alice", ReplacementUsername: "dave",
	})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "exam", notFound.Resource)

	_, err = ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID: "exam-1", SlotNumber: 7, SectionNumber: 1,
		CurrentUsername: "alice", ReplacementUsername: "dave",
	})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "slot", notFound.Resource)

	_, err = ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID: "exam-1", SlotNumber: 1, SectionNumber: 5,
		CurrentUsername: "alice", ReplacementUsername: "dave",
	})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "section", notFound.Resource)

	_, err = ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID: "exam-1", SlotNumber: 1, SectionNumber: 1,
		CurrentUsername: "carol", ReplacementUsername: "dave",
	})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "assignment", notFound.Resource)
}

func TestManualAssignment_ReplacementMustDiffer(t *testing.T) {
	store := manualAssignmentFixture()

	_, err := ManualAssignment(context.Background(), store, zap.NewNop(), &ManualAssignmentRequest{
		ExamID: "exam-1", SlotNumber: 1, SectionNumber: 1,
		CurrentUsername: "alice", ReplacementUsername: "alice",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
