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

// mockFacultyStore implements FacultyStore for testing
type mockFacultyStore struct {
	faculty           map[string]*db.Faculty
	upsertedSchedules []*db.FacultySchedule
}

func (m *mockFacultyStore) GetFacultyByUsername(ctx context.Context, username string) (*db.Faculty, error) {
	return m.faculty[username], nil
}

func (m *mockFacultyStore) ListFaculty(ctx context.Context) ([]db.Faculty, error) {
	list := make([]db.Faculty, 0, len(m.faculty))
	for _, f := range m.faculty {
		list = append(list, *f)
	}
	return list, nil
}

func (m *mockFacultyStore) InsertFaculty(ctx context.Context, f *db.Faculty) error {
	m.faculty[f.Username] = f
	return nil
}

func (m *mockFacultyStore) UpsertFacultySchedule(ctx context.Context, s *db.FacultySchedule) error {
	m.upsertedSchedules = append(m.upsertedSchedules, s)
	return nil
}

func TestRegisterFaculty_NewMember(t *testing.T) {
	store := &mockFacultyStore{faculty: map[string]*db.Faculty{}}

	faculty, err := RegisterFaculty(context.Background(), store, zap.NewNop(), &RegisterFacultyRequest{
		Username:   "  alice ",
		Name:       "Alice Smith",
		Email:      "alice@campus.edu",
		Department: "Mathematics",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", faculty.Username)
	assert.Equal(t, "Alice Smith", faculty.Name)
	assert.NotNil(t, store.faculty["alice"])
}

func TestRegisterFaculty_DuplicateUsernameIsConflict(t *testing.T) {
	store := &mockFacultyStore{
		faculty: map[string]*db.Faculty{"alice": {Username: "alice", Name: "Alice Smith"}},
	}

	_, err := RegisterFaculty(context.Background(), store, zap.NewNop(), &RegisterFacultyRequest{
		Username: "alice",
		Name:     "Another Alice",
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRegisterFaculty_PlaceholderUsernameReserved(t *testing.T) {
	store := &mockFacultyStore{faculty: map[string]*db.Faculty{}}

	_, err := RegisterFaculty(context.Background(), store, zap.NewNop(), &RegisterFacultyRequest{
		Username: model.PlaceholderUsername,
		Name:     "Nobody",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "reserved")
}

func TestRegisterFaculty_RequiredFields(t *testing.T) {
	store := &mockFacultyStore{faculty: map[string]*db.Faculty{}}

	_, err := RegisterFaculty(context.Background(), store, zap.NewNop(), &RegisterFacultyRequest{Username: "alice"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSetTeachingSchedule_StoresRangesVerbatim(t *testing.T) {
	store := &mockFacultyStore{
		faculty: map[string]*db.Faculty{"alice": {Username: "alice"}},
	}

	schedule := model.TeachingSchedule{
		"Monday": {"09:00 - 10:00": "2", "11:00 - 12:30": "All"},
		"Friday": {"bad-range": "1"},
	}
	err := SetTeachingSchedule(context.Background(), store, zap.NewNop(), "alice", schedule)
	require.NoError(t, err)

	require.Len(t, store.upsertedSchedules, 1)
	saved := store.upsertedSchedules[0]
	assert.Equal(t, "alice", saved.Username)
	// Ranges are not validated on write; generation applies the parse policy
	assert.Equal(t, "1", saved.Schedule["Friday"]["bad-range"])
}

func TestSetTeachingSchedule_UnknownFaculty(t *testing.T) {
	store := &mockFacultyStore{faculty: map[string]*db.Faculty{}}

	err := SetTeachingSchedule(context.Background(), store, zap.NewNop(), "ghost", model.TeachingSchedule{})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
