package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/realtime"
)

// Service abstracts the backend operations the reconciler depends on.
type Service interface {
	// ListNotifications returns the historical snapshot, ordered
	// newest-first.
	ListNotifications(ctx context.Context) ([]model.Notification, error)

	// MarkNotificationRead records the read state server-side.
	MarkNotificationRead(ctx context.Context, id string) error
}

// Reconciler merges the REST notification snapshot with live pushed
// events into one ordered, deduplicated view. Records are ordered
// newest-first and identified by id only; a pushed event that later
// reappears in a fresh snapshot under a server id is a known duplicate
// this design does not collapse.
type Reconciler struct {
	svc Service

	mu    sync.Mutex
	items []model.Notification
	// temp holds client-synthesized ids. Marking one read never calls
	// the backend, which has no record of it.
	temp map[string]bool
}

// NewReconciler creates an empty reconciler backed by svc.
func NewReconciler(svc Service) *Reconciler {
	return &Reconciler{
		svc:  svc,
		temp: make(map[string]bool),
	}
}

// Load fetches the historical snapshot and seeds the collection with
// it. On failure the collection is left empty and the error is
// returned; calling Load again is the recovery path.
func (r *Reconciler) Load(ctx context.Context) error {
	items, err := r.svc.ListNotifications(ctx)
	if err != nil {
		r.mu.Lock()
		r.items = nil
		r.temp = make(map[string]bool)
		r.mu.Unlock()
		return fmt.Errorf("fetching notification snapshot: %w", err)
	}

	r.mu.Lock()
	r.items = items
	r.temp = make(map[string]bool)
	r.mu.Unlock()
	return nil
}

// ApplyLessonPublished synthesizes an unread notification from a
// pushed lesson event and prepends it, since it is newest. The record
// carries a locally-unique temporary id.
func (r *Reconciler) ApplyLessonPublished(ev realtime.LessonPublished) model.Notification {
	n := model.Notification{
		ID:        uuid.NewString(),
		Kind:      model.NotificationGlobal,
		Message:   fmt.Sprintf("New lesson: %q by %s", ev.Title, ev.Instructor),
		Link:      "/dashboard/lessons/" + ev.LessonID,
		Read:      false,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.items = append([]model.Notification{n}, r.items...)
	r.temp[n.ID] = true
	r.mu.Unlock()
	return n
}

// MarkRead flips exactly one record's read state to true. It is
// idempotent: marking an already-read record does nothing and calls
// nothing. Server-issued ids are patched remotely before the local
// flip; a failed patch leaves the record unread and is returned for a
// user-triggered retry. Client-temporary ids flip locally only.
func (r *Reconciler) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	idx := -1
	for i := range r.items {
		if r.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || r.items[idx].Read {
		r.mu.Unlock()
		return nil
	}
	isTemp := r.temp[id]
	r.mu.Unlock()

	if !isTemp {
		if err := r.svc.MarkNotificationRead(ctx, id); err != nil {
			return fmt.Errorf("marking notification %s read: %w", id, err)
		}
	}

	r.mu.Lock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Read = true
			break
		}
	}
	r.mu.Unlock()
	return nil
}

// MarkAllRead flips every record to read, locally only. Idempotent.
func (r *Reconciler) MarkAllRead() {
	r.mu.Lock()
	for i := range r.items {
		r.items[i].Read = true
	}
	r.mu.Unlock()
}

// All returns a copy of the reconciled collection, newest-first.
func (r *Reconciler) All() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// UnreadCount returns the number of unread records.
func (r *Reconciler) UnreadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.items {
		if !r.items[i].Read {
			n++
		}
	}
	return n
}
