package changefeed

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Tables carried on the feed
const (
	TableNotifications = "notifications"
	TableDeadlines     = "deadlines"
)

// Action describes what happened to a row
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event is one change-feed message, scoped to a single owner.
type Event struct {
	Table     string          `json:"table"`
	Action    Action          `json:"action"`
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent builds an event, marshalling the payload in place. A
// payload that fails to marshal is dropped rather than blocking the
// mutation that produced it.
func NewEvent(table string, action Action, userID string, payload any) Event {
	ev := Event{
		Table:     table,
		Action:    action,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			slog.Error("failed to marshal change-feed payload", "table", table, "error", err)
		} else {
			ev.Payload = data
		}
	}
	return ev
}

// ToJSON: marshal Event struct to JSON
func (e *Event) ToJSON() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("Failed to marshal event to JSON", "error", err)
		return nil, err
	}
	return data, nil
}

// EventFromJSON: unmarshal JSON data to Event struct
func EventFromJSON(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Error("Failed to unmarshal event from JSON", "error", err)
		return nil, err
	}
	return &ev, nil
}

// Publisher is implemented by anything able to put events on the feed.
type Publisher interface {
	Publish(event Event)
}
