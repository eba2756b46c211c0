package store

import (
	"context"

	"github.com/htran/lms-console/internal/model"
)

// Store is the local archive for chat messages and notification
// snapshots. It is a write-behind sink: the reconciler and counters
// never read from it, but the console can show history offline.
type Store interface {
	// ArchiveMessage appends one chat message. Messages without a
	// server id get a locally generated one.
	ArchiveMessage(ctx context.Context, msg model.ChatMessage) error

	// GetConversation returns the archived messages between two users,
	// oldest first, up to limit (0 means no limit).
	GetConversation(ctx context.Context, userA, userB string, limit int) ([]model.ChatMessage, error)

	// ArchiveNotifications inserts or replaces a batch of notification
	// records.
	ArchiveNotifications(ctx context.Context, ns []model.Notification) error

	// GetNotifications returns archived notifications, newest first,
	// up to limit (0 means no limit).
	GetNotifications(ctx context.Context, limit int) ([]model.Notification, error)

	// Close releases the underlying database.
	Close() error
}
