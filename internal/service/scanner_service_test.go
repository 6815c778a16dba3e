package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"caseflow/internal/changefeed"
	"caseflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock repositories for testing
type mockDeadlineRepo struct {
	deadlines []models.Deadline
	err       error
	updateErr error
	// loose mimics a backend returning rows outside the requested
	// dates, which the scanner must tolerate.
	loose bool
}

func (m *mockDeadlineRepo) ListIncompleteDueOn(ctx context.Context, days []time.Time) ([]models.Deadline, error) {
	if m.err != nil {
		return nil, m.err
	}
	wanted := make(map[string]bool)
	for _, d := range days {
		wanted[d.Format("2006-01-02")] = true
	}
	var out []models.Deadline
	for _, d := range m.deadlines {
		if d.Completed {
			continue
		}
		if m.loose || wanted[d.DueDate.Format("2006-01-02")] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDeadlineRepo) GetByID(ctx context.Context, id string) (*models.Deadline, error) {
	for i := range m.deadlines {
		if m.deadlines[i].ID == id {
			return &m.deadlines[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockDeadlineRepo) ListByOwner(ctx context.Context, userID string) ([]models.Deadline, error) {
	return nil, nil
}

func (m *mockDeadlineRepo) UpdateDueDate(ctx context.Context, id string, dueDate time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.deadlines {
		if m.deadlines[i].ID == id {
			m.deadlines[i].DueDate = dueDate
			return nil
		}
	}
	return errors.New("deadline not found")
}

type mockNotificationRepo struct {
	created []*models.Notification
	failFor map[string]bool // links whose insert should fail
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if m.failFor[notification.Link] {
		return errors.New("insert failed")
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	m.created = append(m.created, notification)
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(m.created) - 1; i >= 0; i-- { // newest first
		if m.created[i].UserID == userID {
			out = append(out, *m.created[i])
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) ExistsForLinkInWindow(ctx context.Context, userID, link string, from, to time.Time) (bool, error) {
	for _, n := range m.created {
		if n.UserID == userID && n.Link == link && !n.CreatedAt.Before(from) && !n.CreatedAt.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, notificationID string) error {
	for _, n := range m.created {
		if n.ID == notificationID {
			n.Read = true
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, userID string) error {
	for _, n := range m.created {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) Delete(ctx context.Context, notificationID string) error {
	for i, n := range m.created {
		if n.ID == notificationID {
			m.created = append(m.created[:i], m.created[i+1:]...)
			return nil
		}
	}
	return errors.New("notification not found")
}

func (m *mockNotificationRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	kept := m.created[:0]
	for _, n := range m.created {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	m.created = kept
	return nil
}

type mockPublisher struct {
	events []changefeed.Event
}

func (m *mockPublisher) Publish(event changefeed.Event) {
	m.events = append(m.events, event)
}

var scanNow = time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)

func dueIn(days int) time.Time {
	return time.Date(2025, 1, 10+days, 0, 0, 0, 0, time.UTC)
}

func TestScanner_CreatesNotificationPerThreshold(t *testing.T) {
	deadlineRepo := &mockDeadlineRepo{deadlines: []models.Deadline{
		{ID: "d0", UserID: "owner", Title: "File motion", DueDate: dueIn(0)},
		{ID: "d1", UserID: "owner", Title: "Client meeting", DueDate: dueIn(1)},
		{ID: "d3", UserID: "owner", Title: "Court hearing", DueDate: dueIn(3)},
	}}
	notifRepo := &mockNotificationRepo{}
	publisher := &mockPublisher{}

	scanner := NewScannerService(deadlineRepo, notifRepo, publisher)
	created, err := scanner.Scan(context.Background(), scanNow)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d0", "d1", "d3"}, created)
	require.Len(t, notifRepo.created, 3)

	byLink := make(map[string]*models.Notification)
	for _, n := range notifRepo.created {
		byLink[n.Link] = n
	}

	urgent := byLink["/deadlines?id=d0"]
	require.NotNil(t, urgent)
	assert.Equal(t, models.KindUrgent, urgent.Kind)
	assert.Equal(t, "Deadline due TODAY", urgent.Title)
	assert.False(t, urgent.Read)

	warning := byLink["/deadlines?id=d1"]
	require.NotNil(t, warning)
	assert.Equal(t, models.KindWarning, warning.Kind)
	assert.Equal(t, "Deadline due tomorrow", warning.Title)

	info := byLink["/deadlines?id=d3"]
	require.NotNil(t, info)
	assert.Equal(t, models.KindInfo, info.Kind)
	assert.Equal(t, "Deadline due in 3 days", info.Title)

	// Every created notification goes out on the change feed
	assert.Len(t, publisher.events, 3)
	for _, ev := range publisher.events {
		assert.Equal(t, changefeed.TableNotifications, ev.Table)
		assert.Equal(t, changefeed.ActionInsert, ev.Action)
		assert.Equal(t, "owner", ev.UserID)
	}
}

func TestScanner_SecondScanSameDayIsNoOp(t *testing.T) {
	deadlineRepo := &mockDeadlineRepo{deadlines: []models.Deadline{
		{ID: "d0", UserID: "owner", Title: "File motion", DueDate: dueIn(0)},
		{ID: "d1", UserID: "owner", Title: "Client meeting", DueDate: dueIn(1)},
	}}
	notifRepo := &mockNotificationRepo{}
	scanner := NewScannerService(deadlineRepo, notifRepo, &mockPublisher{})

	first, err := scanner.Scan(context.Background(), scanNow)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := scanner.Scan(context.Background(), scanNow)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, notifRepo.created, 2)
}

func TestScanner_IgnoresOffsetsOutsideThresholds(t *testing.T) {
	deadlineRepo := &mockDeadlineRepo{
		loose: true, // backend hands back rows the query did not ask for
		deadlines: []models.Deadline{
			{ID: "d2", UserID: "owner", Title: "Two days out", DueDate: dueIn(2)},
			{ID: "d4", UserID: "owner", Title: "Four days out", DueDate: dueIn(4)},
			{ID: "late", UserID: "owner", Title: "Already lapsed", DueDate: dueIn(-5)},
		},
	}
	notifRepo := &mockNotificationRepo{}
	scanner := NewScannerService(deadlineRepo, notifRepo, &mockPublisher{})

	created, err := scanner.Scan(context.Background(), scanNow)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, notifRepo.created)
}

func TestScanner_SkipsCompletedDeadlines(t *testing.T) {
	deadlineRepo := &mockDeadlineRepo{deadlines: []models.Deadline{
		{ID: "done", UserID: "owner", Title: "Finished", DueDate: dueIn(0), Completed: true},
		{ID: "open", UserID: "owner", Title: "Still open", DueDate: dueIn(0)},
	}}
	notifRepo := &mockNotificationRepo{}
	scanner := NewScannerService(deadlineRepo, notifRepo, &mockPublisher{})

	created, err := scanner.Scan(context.Background(), scanNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"open"}, created)
}

func TestScanner_MessageIncludesCaseNumber(t *testing.T) {
	caseID := "c1"
	deadlineRepo := &mockDeadlineRepo{deadlines: []models.Deadline{
		{
			ID: "d0", UserID: "owner", Title: "Submit appeal", DueDate: dueIn(0),
			CaseID: &caseID,
			Case:   &models.LegalCase{ID: caseID, CaseNumber: "2025-0042"},
		},
	}}
	notifRepo := &mockNotificationRepo{}
	scanner := NewScannerService(deadlineRepo, notifRepo, &mockPublisher{})

	_, err := scanner.Scan(context.Background(), scanNow)
	require.NoError(t, err)
	require.Len(t, notifRepo.created, 1)
	assert.Equal(t, "Submit appeal (case 2025-0042) is due on 10/01/2025", notifRepo.created[0].Message)
}

func TestScanner_InsertFailureDoesNotAbortScan(t *testing.T) {
	deadlineRepo := &mockDeadlineRepo{deadlines: []models.Deadline{
		{ID: "d0", UserID: "owner", Title: "File motion", DueDate: dueIn(0)},
		{ID: "d1", UserID: "owner", Title: "Client meeting", DueDate: dueIn(1)},
	}}
	notifRepo := &mockNotificationRepo{failFor: map[string]bool{"/deadlines?id=d0": true}}
	scanner := NewScannerService(deadlineRepo, notifRepo, &mockPublisher{})

	created, err := scanner.Scan(context.Background(), scanNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, created)
	require.Len(t, notifRepo.created, 1)
	assert.Equal(t, "/deadlines?id=d1", notifRepo.created[0].Link)
}

func TestScanner_FetchFailureIsFatal(t *testing.T) {
	deadlineRepo := &mockDeadlineRepo{err: errors.New("db down")}
	scanner := NewScannerService(deadlineRepo, &mockNotificationRepo{}, &mockPublisher{})

	created, err := scanner.Scan(context.Background(), scanNow)
	assert.Error(t, err)
	assert.Nil(t, created)
}
