package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"caseflow/internal/alert"
	"caseflow/internal/models"
)

var ErrUnknownDeadline = errors.New("deadline not in view")

// DeadlineStore is the client-side view of the deadline table, scoped
// to the authenticated owner.
type DeadlineStore interface {
	Reschedule(ctx context.Context, deadlineID string, dueDate time.Time) (*models.Deadline, error)
}

// Scheduler backs the drag-and-drop calendar. The in-memory list is an
// optimistic copy: a drop moves the deadline locally first, then
// confirms against the store. On failure the move reverts, so the view
// and the store never disagree past the failed interaction.
type Scheduler struct {
	store   DeadlineStore
	toaster alert.Toaster

	mu        sync.Mutex
	deadlines []models.Deadline
}

func NewScheduler(store DeadlineStore, toaster alert.Toaster) *Scheduler {
	return &Scheduler{store: store, toaster: toaster}
}

// Load replaces the working set, e.g. after a fresh fetch.
func (s *Scheduler) Load(deadlines []models.Deadline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines = make([]models.Deadline, len(deadlines))
	copy(s.deadlines, deadlines)
}

// Deadlines returns a copy of the current working set.
func (s *Scheduler) Deadlines() []models.Deadline {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Deadline, len(s.deadlines))
	copy(out, s.deadlines)
	return out
}

// Drop handles a deadline being dropped onto a target day cell.
// Dropping onto its current day is a silent no-op: no store call, no
// toast.
func (s *Scheduler) Drop(ctx context.Context, deadlineID string, target time.Time) error {
	s.mu.Lock()
	idx := -1
	for i := range s.deadlines {
		if s.deadlines[i].ID == deadlineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrUnknownDeadline
	}

	if sameDay(s.deadlines[idx].DueDate, target) {
		s.mu.Unlock()
		return nil
	}

	previous := s.deadlines[idx].DueDate
	s.deadlines[idx].DueDate = dateOnly(target)
	title := s.deadlines[idx].Title
	s.mu.Unlock()

	if _, err := s.store.Reschedule(ctx, deadlineID, dateOnly(target)); err != nil {
		s.mu.Lock()
		for i := range s.deadlines {
			if s.deadlines[i].ID == deadlineID {
				s.deadlines[i].DueDate = previous
				break
			}
		}
		s.mu.Unlock()
		if s.toaster != nil {
			s.toaster.Error(fmt.Sprintf("Could not reschedule %q", title))
		}
		return err
	}

	if s.toaster != nil {
		s.toaster.Success(fmt.Sprintf("%q moved to %s", title, dateOnly(target).Format("02/01/2006")))
	}
	return nil
}
