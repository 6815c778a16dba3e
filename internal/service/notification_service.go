package service

import (
	"context"
	"errors"

	"caseflow/internal/changefeed"
	"caseflow/internal/models"
	"caseflow/internal/repository"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotOwner             = errors.New("record does not belong to user")
)

type NotificationService interface {
	List(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, notificationID string) error
	DeleteAll(ctx context.Context, userID string) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher changefeed.Publisher
}

func NewNotificationService(repo repository.NotificationRepository, publisher changefeed.Publisher) NotificationService {
	return &notificationService{repo: repo, publisher: publisher}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	// Verify notification belongs to user
	if err := s.verifyOwnership(ctx, userID, notificationID); err != nil {
		return err
	}
	if err := s.repo.MarkAsRead(ctx, notificationID); err != nil {
		return err
	}
	s.publish(changefeed.ActionUpdate, userID, map[string]any{"id": notificationID, "read": true})
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.publish(changefeed.ActionUpdate, userID, map[string]any{"read": true})
	return nil
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID string) error {
	if err := s.verifyOwnership(ctx, userID, notificationID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, notificationID); err != nil {
		return err
	}
	s.publish(changefeed.ActionDelete, userID, map[string]any{"id": notificationID})
	return nil
}

func (s *notificationService) DeleteAll(ctx context.Context, userID string) error {
	if err := s.repo.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	s.publish(changefeed.ActionDelete, userID, nil)
	return nil
}

func (s *notificationService) verifyOwnership(ctx context.Context, userID, notificationID string) error {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.ID == notificationID {
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (s *notificationService) publish(action changefeed.Action, userID string, payload any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(changefeed.NewEvent(changefeed.TableNotifications, action, userID, payload))
}
