package repository

import (
	"context"
	"fmt"
	"time"

	"caseflow/internal/models"

	"gorm.io/gorm"
)

type DeadlineRepository interface {
	GetByID(ctx context.Context, id string) (*models.Deadline, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Deadline, error)
	ListIncompleteDueOn(ctx context.Context, days []time.Time) ([]models.Deadline, error)
	UpdateDueDate(ctx context.Context, id string, dueDate time.Time) error
}

type deadlineRepository struct {
	db *gorm.DB
}

func NewDeadlineRepository(db *gorm.DB) DeadlineRepository {
	return &deadlineRepository{db: db}
}

func (r *deadlineRepository) GetByID(ctx context.Context, id string) (*models.Deadline, error) {
	var deadline models.Deadline
	if err := r.db.WithContext(ctx).
		Preload("Case").
		First(&deadline, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get deadline: %w", err)
	}
	return &deadline, nil
}

func (r *deadlineRepository) ListByOwner(ctx context.Context, userID string) ([]models.Deadline, error) {
	var deadlines []models.Deadline
	if err := r.db.WithContext(ctx).
		Preload("Case").
		Where("user_id = ?", userID).
		Order("due_date ASC").
		Find(&deadlines).Error; err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	return deadlines, nil
}

// ListIncompleteDueOn returns incomplete deadlines, across all owners,
// whose due date falls on any of the given calendar days.
func (r *deadlineRepository) ListIncompleteDueOn(ctx context.Context, days []time.Time) ([]models.Deadline, error) {
	dates := make([]string, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Format("2006-01-02"))
	}

	var deadlines []models.Deadline
	if err := r.db.WithContext(ctx).
		Preload("Case").
		Where("completed = false AND due_date IN ?", dates).
		Find(&deadlines).Error; err != nil {
		return nil, fmt.Errorf("list due deadlines: %w", err)
	}
	return deadlines, nil
}

func (r *deadlineRepository) UpdateDueDate(ctx context.Context, id string, dueDate time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Deadline{}).
		Where("id = ?", id).
		Update("due_date", dueDate.Format("2006-01-02"))

	if result.Error != nil {
		return fmt.Errorf("update due date: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("deadline not found")
	}
	return nil
}
