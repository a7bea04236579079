package entity

import "time"

type NotificationVariant string

const (
	VariantSuccess     NotificationVariant = "success"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a transient toast addressed to one session.
type Notification struct {
	SessionId   string              `json:"session_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
	CreatedAt   time.Time           `json:"created_at"`
}
