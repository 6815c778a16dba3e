package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"caseflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDeadlineStore struct {
	calls []string
	err   error
}

func (m *mockDeadlineStore) Reschedule(ctx context.Context, deadlineID string, dueDate time.Time) (*models.Deadline, error) {
	m.calls = append(m.calls, deadlineID)
	if m.err != nil {
		return nil, m.err
	}
	return &models.Deadline{ID: deadlineID, DueDate: dueDate}, nil
}

type recordingToaster struct {
	successes []string
	errors    []string
}

func (r *recordingToaster) Info(message string)    {}
func (r *recordingToaster) Success(message string) { r.successes = append(r.successes, message) }
func (r *recordingToaster) Warning(message string) {}
func (r *recordingToaster) Error(message string)   { r.errors = append(r.errors, message) }

func TestScheduler_DropMovesDeadline(t *testing.T) {
	store := &mockDeadlineStore{}
	toaster := &recordingToaster{}
	s := NewScheduler(store, toaster)
	s.Load([]models.Deadline{
		{ID: "d1", Title: "File motion", DueDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	})

	target := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Drop(context.Background(), "d1", target))

	assert.True(t, s.Deadlines()[0].DueDate.Equal(target))
	assert.Equal(t, []string{"d1"}, store.calls)
	require.Len(t, toaster.successes, 1)
	assert.Equal(t, `"File motion" moved to 15/01/2025`, toaster.successes[0])

	// Dragging it back confirms again.
	back := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Drop(context.Background(), "d1", back))
	require.Len(t, toaster.successes, 2)
	assert.Equal(t, `"File motion" moved to 10/01/2025`, toaster.successes[1])
}

func TestScheduler_SameDayDropIsSilentNoOp(t *testing.T) {
	store := &mockDeadlineStore{}
	toaster := &recordingToaster{}
	s := NewScheduler(store, toaster)
	s.Load([]models.Deadline{
		{ID: "d1", Title: "File motion", DueDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	})

	// Same calendar day at a different clock time.
	require.NoError(t, s.Drop(context.Background(), "d1", time.Date(2025, 1, 10, 18, 30, 0, 0, time.UTC)))

	assert.Empty(t, store.calls)
	assert.Empty(t, toaster.successes)
	assert.Empty(t, toaster.errors)
}

func TestScheduler_DropRevertsOnError(t *testing.T) {
	original := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	store := &mockDeadlineStore{err: errors.New("server error")}
	toaster := &recordingToaster{}
	s := NewScheduler(store, toaster)
	s.Load([]models.Deadline{{ID: "d1", Title: "File motion", DueDate: original}})

	err := s.Drop(context.Background(), "d1", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)

	assert.True(t, s.Deadlines()[0].DueDate.Equal(original), "failed move must revert")
	assert.Empty(t, toaster.successes)
	require.Len(t, toaster.errors, 1)
	assert.Equal(t, `Could not reschedule "File motion"`, toaster.errors[0])
}

func TestScheduler_DropUnknownDeadline(t *testing.T) {
	store := &mockDeadlineStore{}
	s := NewScheduler(store, &recordingToaster{})

	err := s.Drop(context.Background(), "ghost", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrUnknownDeadline)
	assert.Empty(t, store.calls)
}
