package service

import (
	"context"
	"testing"
	"time"

	"caseflow/internal/changefeed"
	"caseflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededNotificationRepo(userID string, unread, read int) *mockNotificationRepo {
	repo := &mockNotificationRepo{}
	for i := 0; i < unread+read; i++ {
		repo.created = append(repo.created, &models.Notification{
			ID:        string(rune('a' + i)),
			UserID:    userID,
			Title:     "Deadline due tomorrow",
			Kind:      models.KindWarning,
			Read:      i >= unread,
			CreatedAt: time.Now().UTC(),
		})
	}
	return repo
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	repo := seededNotificationRepo("owner", 5, 2)
	publisher := &mockPublisher{}
	svc := NewNotificationService(repo, publisher)

	require.NoError(t, svc.MarkAllAsRead(context.Background(), "owner"))

	notifications, err := svc.List(context.Background(), "owner")
	require.NoError(t, err)
	assert.Len(t, notifications, 7)
	for _, n := range notifications {
		assert.True(t, n.Read)
	}

	require.Len(t, publisher.events, 1)
	assert.Equal(t, changefeed.ActionUpdate, publisher.events[0].Action)
}

func TestNotificationService_MarkAsReadChecksOwnership(t *testing.T) {
	repo := seededNotificationRepo("owner", 1, 0)
	svc := NewNotificationService(repo, &mockPublisher{})

	err := svc.MarkAsRead(context.Background(), "intruder", "a")
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkAsRead(context.Background(), "owner", "a"))
	notifications, _ := svc.List(context.Background(), "owner")
	assert.True(t, notifications[0].Read)
}

func TestNotificationService_DeletePublishesEvent(t *testing.T) {
	repo := seededNotificationRepo("owner", 2, 0)
	publisher := &mockPublisher{}
	svc := NewNotificationService(repo, publisher)

	require.NoError(t, svc.Delete(context.Background(), "owner", "a"))

	notifications, _ := svc.List(context.Background(), "owner")
	assert.Len(t, notifications, 1)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, changefeed.ActionDelete, publisher.events[0].Action)
	assert.Equal(t, "owner", publisher.events[0].UserID)
}

func TestNotificationService_DeleteAll(t *testing.T) {
	repo := seededNotificationRepo("owner", 3, 1)
	svc := NewNotificationService(repo, &mockPublisher{})

	require.NoError(t, svc.DeleteAll(context.Background(), "owner"))

	notifications, _ := svc.List(context.Background(), "owner")
	assert.Empty(t, notifications)
}
