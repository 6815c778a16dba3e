package repository

import (
	"context"
	"fmt"
	"time"

	"caseflow/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	ExistsForLinkInWindow(ctx context.Context, userID, link string, from, to time.Time) (bool, error)
	MarkAsRead(ctx context.Context, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// ExistsForLinkInWindow is the scanner's dedup probe: any notification
// for this owner pointing at this link created inside [from, to].
func (r *notificationRepository) ExistsForLinkInWindow(ctx context.Context, userID, link string, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND link = ? AND created_at BETWEEN ? AND ?", userID, link, from, to).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("dedup lookup: %w", err)
	}
	return count > 0, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("read", true).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}

func (r *notificationRepository) Delete(ctx context.Context, notificationID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", notificationID).
		Delete(&models.Notification{})

	if result.Error != nil {
		return fmt.Errorf("delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (r *notificationRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Notification{}).Error
}
