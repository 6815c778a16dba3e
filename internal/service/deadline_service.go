package service

import (
	"context"
	"errors"
	"time"

	"caseflow/internal/changefeed"
	"caseflow/internal/models"
	"caseflow/internal/repository"
)

var ErrDeadlineNotFound = errors.New("deadline not found")

type DeadlineService interface {
	List(ctx context.Context, userID string) ([]models.Deadline, error)
	Reschedule(ctx context.Context, userID, deadlineID string, dueDate time.Time) (*models.Deadline, error)
}

type deadlineService struct {
	repo      repository.DeadlineRepository
	publisher changefeed.Publisher
}

func NewDeadlineService(repo repository.DeadlineRepository, publisher changefeed.Publisher) DeadlineService {
	return &deadlineService{repo: repo, publisher: publisher}
}

func (s *deadlineService) List(ctx context.Context, userID string) ([]models.Deadline, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Reschedule moves a deadline to a new due date. Past dates are
// accepted here: only deadline creation rejects lapsed dates, and that
// form lives outside this subsystem.
func (s *deadlineService) Reschedule(ctx context.Context, userID, deadlineID string, dueDate time.Time) (*models.Deadline, error) {
	deadline, err := s.repo.GetByID(ctx, deadlineID)
	if err != nil {
		return nil, ErrDeadlineNotFound
	}
	if deadline.UserID != userID {
		return nil, ErrDeadlineNotFound
	}

	if err := s.repo.UpdateDueDate(ctx, deadlineID, dueDate); err != nil {
		return nil, err
	}
	deadline.DueDate = dateOnly(dueDate)

	if s.publisher != nil {
		s.publisher.Publish(changefeed.NewEvent(
			changefeed.TableDeadlines, changefeed.ActionUpdate, userID, deadline))
	}

	return deadline, nil
}
