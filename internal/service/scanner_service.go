package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"caseflow/internal/changefeed"
	"caseflow/internal/models"
	"caseflow/internal/repository"

	"github.com/google/uuid"
)

// Lead-time thresholds, in days before the due date, at which a
// deadline becomes eligible for a notification.
var leadTimeOffsets = []int{0, 1, 3}

// ScannerService materializes notification records for deadlines
// crossing a lead-time threshold. Stateless per invocation and safe to
// call from multiple clients: the dedup probe is re-checked per
// deadline before insert. Two truly concurrent scans can still race
// past each other and double-notify; that is a documented limitation
// of the window-query dedup, not something this layer papers over.
type ScannerService interface {
	Scan(ctx context.Context, now time.Time) ([]string, error)
}

type scannerService struct {
	deadlineRepo     repository.DeadlineRepository
	notificationRepo repository.NotificationRepository
	publisher        changefeed.Publisher
}

func NewScannerService(
	deadlineRepo repository.DeadlineRepository,
	notificationRepo repository.NotificationRepository,
	publisher changefeed.Publisher,
) ScannerService {
	return &scannerService{
		deadlineRepo:     deadlineRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Scan inspects incomplete deadlines due today, tomorrow, or in three
// days and creates one notification per (owner, deadline, day).
// Returns the deadline IDs a notification was created for. A failed
// candidate fetch aborts the whole invocation; a failed insert or
// dedup probe only skips that deadline.
func (s *scannerService) Scan(ctx context.Context, now time.Time) ([]string, error) {
	today := dateOnly(now)

	targets := make([]time.Time, 0, len(leadTimeOffsets))
	for _, offset := range leadTimeOffsets {
		targets = append(targets, today.AddDate(0, 0, offset))
	}

	deadlines, err := s.deadlineRepo.ListIncompleteDueOn(ctx, targets)
	if err != nil {
		return nil, fmt.Errorf("fetch deadline candidates: %w", err)
	}

	windowFrom := today
	windowTo := today.Add(24*time.Hour - time.Second)

	var created []string
	for i := range deadlines {
		d := &deadlines[i]

		offset := daysUntil(today, d.DueDate)
		kind, title, ok := classifyOffset(offset)
		if !ok {
			// Query looseness can surface other offsets; they never notify.
			continue
		}

		link := deadlineLink(d.ID)

		exists, err := s.notificationRepo.ExistsForLinkInWindow(ctx, d.UserID, link, windowFrom, windowTo)
		if err != nil {
			log.Printf("Dedup check failed for deadline %s: %v", d.ID, err)
			continue
		}
		if exists {
			continue
		}

		notification := &models.Notification{
			ID:      uuid.New().String(),
			UserID:  d.UserID,
			Title:   title,
			Message: composeMessage(d),
			Kind:    kind,
			Read:    false,
			Link:    link,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			log.Printf("Failed to store notification for deadline %s: %v", d.ID, err)
			continue
		}

		if s.publisher != nil {
			s.publisher.Publish(changefeed.NewEvent(
				changefeed.TableNotifications, changefeed.ActionInsert, d.UserID, notification))
		}

		created = append(created, d.ID)
	}

	return created, nil
}

// classifyOffset maps a day offset onto the notification kind and
// title for that threshold.
func classifyOffset(offset int) (models.NotificationKind, string, bool) {
	switch offset {
	case 0:
		return models.KindUrgent, "Deadline due TODAY", true
	case 1:
		return models.KindWarning, "Deadline due tomorrow", true
	case 3:
		return models.KindInfo, "Deadline due in 3 days", true
	default:
		return "", "", false
	}
}

func composeMessage(d *models.Deadline) string {
	if d.Case != nil && d.Case.CaseNumber != "" {
		return fmt.Sprintf("%s (case %s) is due on %s", d.Title, d.Case.CaseNumber, d.DueDate.Format("02/01/2006"))
	}
	return fmt.Sprintf("%s is due on %s", d.Title, d.DueDate.Format("02/01/2006"))
}

func deadlineLink(id string) string {
	return "/deadlines?id=" + id
}

// dateOnly strips the time component, keeping the calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysUntil counts whole calendar days from today to the due date.
func daysUntil(today, due time.Time) int {
	return int(dateOnly(due).Sub(dateOnly(today)) / (24 * time.Hour))
}
