package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/internal/config"
	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/db"
)

// mockCreateSwapStore implements CreateSwapRequestStore for testing
type mockCreateSwapStore struct {
	pending               map[string]*db.SwapRequest
	invigilations         map[string]*db.Invigilation
	faculty               map[string]*db.Faculty
	insertedSwapRequests  []*db.SwapRequest
	insertedNotifications []*db.Notification
	insertNotificationErr error
}

func (m *mockCreateSwapStore) FindPendingSwapRequest(ctx context.Context, invigilationID, requestingUsername string) (*db.SwapRequest, error) {
	return m.pending[invigilationID+"/"+requestingUsername], nil
}

func (m *mockCreateSwapStore) GetInvigilation(ctx context.Context, id string) (*db.Invigilation, error) {
	return m.invigilations[id], nil
}

func (m *mockCreateSwapStore) GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error) {
	return m.faculty[username], nil
}

func (m *mockCreateSwapStore) InsertSwapRequest(ctx context.Context, req *db.SwapRequest) error {
	m.insertedSwapRequests = append(m.insertedSwapRequests, req)
	return nil
}

func (m *mockCreateSwapStore) InsertNotification(ctx context.Context, n *db.Notification) error {
	if m.insertNotificationErr != nil {
		return m.insertNotificationErr
	}
	m.insertedNotifications = append(m.insertedNotifications, n)
	return nil
}

func swapStoreFixture() *mockCreateSwapStore {
	return &mockCreateSwapStore{
		pending: map[string]*db.SwapRequest{},
		invigilations: map[string]*db.Invigilation{
			"inv-1": {
				ID: "inv-1", Username: "alice", ExamID: "exam-1",
				ExamName: "Midterm Mathematics", Date: "2025-01-10",
			},
		},
		faculty: map[string]*db.Faculty{
			"alice": {Username: "alice", Name: "Alice Smith"},
			"bob":   {Username: "bob", Name: "Bob Jones"},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{AdminUsername: "admin", ScheduleParsePolicy: "skip"}
}

func TestCreateSwapRequest_FilesPendingRequestAndNotifiesAdmin(t *testing.T) {
	store := swapStoreFixture()

	result, err := CreateSwapRequest(context.Background(), store, testConfig(), zap.NewNop(), CreateSwapRequestRequest{
		InvigilationID:     "inv-1",
		RequestingUsername: "alice",
		RequestedUsername:  "bob",
		Reason:             "medical appointment",
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.SwapPending), result.Status)
	require.Len(t, store.insertedSwapRequests, 1)
	filed := store.insertedSwapRequests[0]
	assert.Equal(t, "exam-1", filed.ExamID)
	assert.Equal(t, "alice", filed.RequestingUsername)
	assert.Equal(t, "bob", filed.RequestedUsername)

	require.Len(t, store.insertedNotifications, 1)
	adminNotice := store.insertedNotifications[0]
	assert.Equal(t, "admin", adminNotice.Username)
	assert.Contains(t, adminNotice.Message, "Alice Smith has requested to swap with Bob Jones")
	assert.Contains(t, adminNotice.Message, "medical appointment")
}

func TestCreateSwapRequest_DuplicatePendingIsConflict(t *testing.T) {
	store := swapStoreFixture()
	store.pending["inv-1/alice"] = &db.SwapRequest{ID: "swap-1", Status: string(model.SwapPending)}

	_, err := CreateSwapRequest(context.Background(), store, testConfig(), zap.NewNop(), CreateSwapRequestRequest{
		InvigilationID:     "inv-1",
		RequestingUsername: "alice",
		RequestedUsername:  "bob",
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Empty(t, store.insertedSwapRequests)
}

func TestCreateSwapRequest_UnknownReferences(t *testing.T) {
	store := swapStoreFixture()

	_, err := CreateSwapRequest(context.Background(), store, testConfig(), zap.NewNop(), CreateSwapRequestRequest{
		InvigilationID:     "inv-9",
		RequestingUsername: "alice",
		RequestedUsername:  "bob",
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "invigilation", notFound.Resource)

	_, err = CreateSwapRequest(context.Background(), store, testConfig(), zap.NewNop(), CreateSwapRequestRequest{
		InvigilationID:     "inv-1",
		RequestingUsername: "alice",
		RequestedUsername:  "mallory",
	})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "faculty", notFound.Resource)
}

func TestCreateSwapRequest_AdminNotificationFailureIsSuppressed(t *testing.T) {
	store := swapStoreFixture()
	store.insertNotificationErr = errors.New("connection reset")

	result, err := CreateSwapRequest(context.Background(), store, testConfig(), zap.NewNop(), CreateSwapRequestRequest{
		InvigilationID:     "inv-1",
		RequestingUsername: "alice",
		RequestedUsername:  "bob",
	})

	require.NoError(t, err)
	assert.Equal(t, string(model.SwapPending), result.Status)
	assert.Len(t, store.insertedSwapRequests, 1)
}
