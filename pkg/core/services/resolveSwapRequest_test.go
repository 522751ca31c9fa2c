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

// mockResolveSwapStore implements ResolveSwapRequestStore for testing
type mockResolveSwapStore struct {
	swapRequests          map[string]*db.SwapRequest
	invigilations         map[string]*db.Invigilation
	faculty               map[string]*db.Faculty
	exams                 map[string]*model.Exam
	finalStatus           map[string]string
	reassigned            map[string][2]string
	updatedSlots          map[string][]model.Slot
	insertedNotifications []*db.Notification
}

func (m *mockResolveSwapStore) GetSwapRequest(ctx context.Context, id string) (*db.SwapRequest, error) {
	return m.swapRequests[id], nil
}

func (m *mockResolveSwapStore) SetSwapRequestStatus(ctx context.Context, id, status string) error {
	if m.finalStatus == nil {
		m.finalStatus = map[string]string{}
	}
	m.finalStatus[id] = status
	return nil
}

func (m *mockResolveSwapStore) GetInvigilation(ctx context.Context, id string) (*db.Invigilation, error) {
	return m.invigilations[id], nil
}

func (m *mockResolveSwapStore) ReassignInvigilation(ctx context.Context, id, username, status string) error {
	if m.reassigned == nil {
		m.reassigned = map[string][2]string{}
	}
	m.reassigned[id] = [2]string{username, status}
	return nil
}

func (m *mockResolveSwapStore) GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error) {
	return m.faculty[username], nil
}

func (m *mockResolveSwapStore) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	return m.exams[id], nil
}

func (m *mockResolveSwapStore) UpdateExamSlots(ctx context.Context, id string, slots []model.Slot) error {
	if m.updatedSlots == nil {
		m.updatedSlots = map[string][]model.Slot{}
	}
	m.updatedSlots[id] = slots
	return nil
}

func (m *mockResolveSwapStore) InsertNotification(ctx context.Context, n *db.Notification) error {
	m.insertedNotifications = append(m.insertedNotifications, n)
	return nil
}

func pendingSwapFixture() *mockResolveSwapStore {
	return &mockResolveSwapStore{
		swapRequests: map[string]*db.SwapRequest{
			"swap-1": {
				ID:                 "swap-1",
				ExamID:             "exam-1",
				InvigilationID:     "inv-1",
				RequestingUsername: "alice",
				RequestedUsername:  "bob",
				Reason:             "medical appointment",
				Status:             string(model.SwapPending),
			},
		},
		invigilations: map[string]*db.Invigilation{
			"inv-1": {
				ID: "inv-1", Username: "alice", ExamID: "exam-1",
				ExamName: "Midterm Mathematics", Date: "2025-01-10",
				StartTime: "09:00", EndTime: "10:00",
				Status: string(model.StatusAssigned),
			},
		},
		faculty: map[string]*db.Faculty{
			"alice": {Username: "alice", Name: "Alice Smith"},
			"bob":   {Username: "bob", Name: "Bob Jones"},
		},
		exams: map[string]*model.Exam{"exam-1": multiSlotExam()},
	}
}

func TestResolveSwapRequest_ApproveReassignsFlatAndNested(t *testing.T) {
	store := pendingSwapFixture()

	result, err := ResolveSwapRequest(context.Background(), store, zap.NewNop(), "swap-1", SwapActionApprove)
	require.NoError(t, err)

	assert.Equal(t, string(model.SwapApproved), result.Status)
	assert.Equal(t, string(model.SwapApproved), store.finalStatus["swap-1"])

	assert.Equal(t, [2]string{"bob", string(model.StatusSwapped)}, store.reassigned["inv-1"])

	// Alice held seats in both slots of the exam; both go to Bob
	assert.Equal(t, 2, result.NestedUpdated)
	slots := store.updatedSlots["exam-1"]
	require.NotNil(t, slots)
	for _, slotIndex := range []int{0, 1} {
		seat := slots[slotIndex].Sections[0].Faculty[0]
		assert.Equal(t, "bob", seat.Username)
		assert.Equal(t, "Bob Jones", seat.Name)
		assert.Equal(t, model.StatusSwapped, seat.Status)
	}

	require.Equal(t, 2, result.NotificationsSent)
	require.Len(t, store.insertedNotifications, 2)
	assert.Equal(t, "alice", store.insertedNotifications[0].Username)
	assert.Contains(t, store.insertedNotifications[0].Message, "approved")
	assert.Contains(t, store.insertedNotifications[0].Message, "Bob Jones")
	assert.Equal(t, "bob", store.insertedNotifications[1].Username)
	assert.Contains(t, store.insertedNotifications[1].Message, "due to a swap")
	assert.Contains(t, store.insertedNotifications[1].Message, "10 January 2025")
}

func TestResolveSwapRequest_RejectLeavesAssignmentsUntouched(t *testing.T) {
	store := pendingSwapFixture()

	result, err := ResolveSwapRequest(context.Background(), store, zap.NewNop(), "swap-1", SwapActionReject)
	require.NoError(t, err)

	assert.Equal(t, string(model.SwapRejected), result.Status)
	assert.Equal(t, string(model.SwapRejected), store.finalStatus["swap-1"])
	assert.Empty(t, store.reassigned)
	assert.Empty(t, store.updatedSlots)

	require.Len(t, store.insertedNotifications, 1)
	assert.Equal(t, "alice", store.insertedNotifications[0].Username)
	assert.Contains(t, store.insertedNotifications[0].Message, "rejected")
}

func TestResolveSwapRequest_AlreadyResolvedIsConflict(t *testing.T) {
	store := pendingSwapFixture()
	store.swapRequests["swap-1"].Status = string(model.SwapApproved)

	_, err := ResolveSwapRequest(context.Background(), store, zap.NewNop(), "swap-1", SwapActionReject)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Empty(t, store.finalStatus)
}

func TestResolveSwapRequest_UnknownRequest(t *testing.T) {
	store := pendingSwapFixture()

	_, err := ResolveSwapRequest(context.Background(), store, zap.NewNop(), "swap-9", SwapActionApprove)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "swap request", notFound.Resource)
}

func TestResolveSwapRequest_InvalidAction(t *testing.T) {
	store := pendingSwapFixture()

	_, err := ResolveSwapRequest(context.Background(), store, zap.NewNop(), "swap-1", SwapAction("defer"))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestResolveSwapRequest_ApproveRequiresRequestedFaculty(t *testing.T) {
	store := pendingSwapFixture()
	delete(store.faculty, "bob")

	_, err := ResolveSwapRequest(context.Background(), store, zap.NewNop(), "swap-1", SwapActionApprove)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "faculty", notFound.Resource)
	assert.Empty(t, store.reassigned)
	assert.Empty(t, store.finalStatus)
}
