package model

import "time"

// NotificationKind identifies the audience of a notification.
type NotificationKind string

const (
	// NotificationGlobal is broadcast to every connected user.
	NotificationGlobal NotificationKind = "global"

	// NotificationDirect targets a single user.
	NotificationDirect NotificationKind = "direct"
)

// Notification is an alert surfaced to the user, either fetched from
// the backend or synthesized locally from a pushed event.
type Notification struct {
	// ID is unique within the reconciled collection. Server-issued for
	// fetched records, a client-generated UUID for pushed ones.
	ID string `json:"_id"`

	// Kind identifies the notification audience.
	Kind NotificationKind `json:"type"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Link is an optional dashboard deep-link.
	Link string `json:"link,omitempty"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"isRead"`

	// CreatedAt is when the notification was generated.
	CreatedAt time.Time `json:"createdAt"`
}
