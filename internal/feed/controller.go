package feed

import (
	"context"
	"sync"
	"time"

	"caseflow/internal/alert"
	"caseflow/internal/changefeed"
	"caseflow/internal/models"

	"golang.org/x/time/rate"
)

// Store is the client-side view of the notification table, already
// scoped to the authenticated owner.
type Store interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, notificationID string) error
}

// Transient alerts are throttled so a burst of inserts cannot spam the
// user: one toast every two seconds, bursts of five.
const (
	alertInterval = 2 * time.Second
	alertBurst    = 5
)

// Controller maintains the owner's notification list as a mirror of
// the store. Every trigger, whether a user action or a change-feed
// event, funnels into Refresh: a full resync that is idempotent under
// duplicate or reordered delivery.
type Controller struct {
	store    Store
	alerter  alert.Alerter
	toaster  alert.Toaster
	navigate func(link string)
	limiter  *rate.Limiter

	mu            sync.Mutex
	notifications []models.Notification
	prevIDs       map[string]struct{}
	synced        bool
}

func NewController(store Store, alerter alert.Alerter, toaster alert.Toaster, navigate func(link string)) *Controller {
	return &Controller{
		store:    store,
		alerter:  alerter,
		toaster:  toaster,
		navigate: navigate,
		limiter:  rate.NewLimiter(rate.Every(alertInterval), alertBurst),
		prevIDs:  make(map[string]struct{}),
	}
}

// Refresh re-fetches the full notification list and alerts once for
// every notification that is unread and was absent from the previous
// fetch. The very first fetch after mount never alerts, so a page
// load cannot replay the whole backlog as toasts.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fetched, err := c.store.ListNotifications(ctx)
	if err != nil {
		// Keep the last-known-good list.
		if c.toaster != nil {
			c.toaster.Error("Could not load notifications")
		}
		return err
	}

	if c.synced {
		for i := range fetched {
			n := &fetched[i]
			if n.Read {
				continue
			}
			if _, known := c.prevIDs[n.ID]; known {
				continue
			}
			c.announce(n)
		}
	}

	ids := make(map[string]struct{}, len(fetched))
	for i := range fetched {
		ids[fetched[i].ID] = struct{}{}
	}
	c.prevIDs = ids
	c.notifications = fetched
	c.synced = true
	return nil
}

// announce fires the transient alert pair for one newly arrived
// notification. Caller holds the mutex.
func (c *Controller) announce(n *models.Notification) {
	if c.toaster != nil && c.limiter.Allow() {
		if n.Kind == models.KindUrgent {
			c.toaster.Warning(n.Title + ": " + n.Message)
		} else {
			c.toaster.Info(n.Title + ": " + n.Message)
		}
	}
	if c.alerter != nil && c.alerter.PermissionState() == alert.PermissionGranted {
		// Tag = notification ID so duplicate pushes coalesce.
		c.alerter.Show(n.Title, alert.Options{Body: n.Message, Tag: n.ID})
	}
}

// HandleEvent is the change-feed callback: any notification event,
// redundant or not, triggers a full resync.
func (c *Controller) HandleEvent(ctx context.Context, event changefeed.Event) {
	if event.Table != changefeed.TableNotifications {
		return
	}
	_ = c.Refresh(ctx)
}

// Notifications returns a copy of the current in-memory list.
func (c *Controller) Notifications() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// UnreadCount drives the badge.
func (c *Controller) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for i := range c.notifications {
		if !c.notifications[i].Read {
			count++
		}
	}
	return count
}

func (c *Controller) MarkRead(ctx context.Context, notificationID string) error {
	if err := c.store.MarkRead(ctx, notificationID); err != nil {
		if c.toaster != nil {
			c.toaster.Error("Could not mark notification as read")
		}
		return err
	}
	return c.Refresh(ctx)
}

func (c *Controller) MarkAllRead(ctx context.Context) error {
	if err := c.store.MarkAllRead(ctx); err != nil {
		if c.toaster != nil {
			c.toaster.Error("Could not mark notifications as read")
		}
		return err
	}
	return c.Refresh(ctx)
}

func (c *Controller) Delete(ctx context.Context, notificationID string) error {
	if err := c.store.Delete(ctx, notificationID); err != nil {
		if c.toaster != nil {
			c.toaster.Error("Could not delete notification")
		}
		return err
	}
	return c.Refresh(ctx)
}

// Click marks an unread notification read and follows its deep link.
func (c *Controller) Click(ctx context.Context, notification models.Notification) error {
	if !notification.Read {
		if err := c.MarkRead(ctx, notification.ID); err != nil {
			return err
		}
	}
	if notification.Link != "" && c.navigate != nil {
		c.navigate(notification.Link)
	}
	return nil
}
