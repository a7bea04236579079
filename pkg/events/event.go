package events

import (
	"time"

	"eduease-be/internal/entity"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_NOTIFICATION").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// FromNotification wraps a session toast for the external event bus.
func FromNotification(eventType string, n entity.Notification) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"session_id":  n.SessionId,
			"title":       n.Title,
			"description": n.Description,
			"variant":     string(n.Variant),
		},
		OccurredAt: n.CreatedAt,
	}
}
