package changefeed

import (
	"sync"
)

const subscriberBuffer = 16

// Subscriber is one listener on the feed, scoped to an owner.
// Events arrive on C; redundant or reordered delivery is allowed and
// consumers are expected to treat every event as "resync now".
type Subscriber struct {
	UserID string
	C      chan Event
}

// Hub fans change events out to per-owner subscribers. Each websocket
// connection (or in-process listener) registers one Subscriber; all
// access goes through the mutex so connections can come and go freely.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(userID string) *Subscriber {
	sub := &Subscriber{
		UserID: userID,
		C:      make(chan Event, subscriberBuffer),
	}
	h.mu.Lock()
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[*Subscriber]struct{})
	}
	h.subscribers[userID][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if set := h.subscribers[sub.UserID]; set != nil {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.C)
		}
		if len(set) == 0 {
			delete(h.subscribers, sub.UserID)
		}
	}
	h.mu.Unlock()
}

// Publish delivers the event to every subscriber of its owner. Slow
// subscribers get dropped events rather than blocking the publisher;
// a dropped event is harmless because consumers resync on the next one.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[event.UserID] {
		select {
		case sub.C <- event:
		default:
		}
	}
}

// SubscriberCount reports how many listeners an owner currently has.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
