package model

import "time"

// ChatMessage is a single direct message between two users. Messages
// are transient client-side: they live in the open conversation view
// and, optionally, in the local archive.
type ChatMessage struct {
	// ID is the server-issued identifier, empty for messages that have
	// not been acknowledged yet.
	ID string `json:"_id,omitempty"`

	// SenderID is the account that sent the message.
	SenderID string `json:"sender"`

	// ReceiverID is the account the message is addressed to.
	ReceiverID string `json:"receiver"`

	// Text is the message body.
	Text string `json:"message"`

	// CreatedAt is when the message was sent.
	CreatedAt time.Time `json:"createdAt"`
}
