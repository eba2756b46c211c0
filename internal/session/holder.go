package session

import (
	"sync"

	"github.com/htran/lms-console/internal/model"
)

// Watcher is invoked synchronously on every observable session change.
// The argument is the new session, or nil after a clear.
type Watcher func(*model.Session)

// Holder tracks the current authenticated identity. Absence of a
// session is a valid state, not a failure. The holder never touches
// the realtime channel itself; components that care about session
// transitions register a Watcher and react on their own.
type Holder struct {
	mu       sync.Mutex
	current  *model.Session
	watchers []Watcher
}

// NewHolder creates an empty session holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the active session, or nil when no user is
// authenticated. The returned value is a copy; callers cannot mutate
// the held session.
func (h *Holder) Current() *model.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return nil
	}
	s := *h.current
	return &s
}

// Establish installs sess as the active session and notifies watchers.
// Establishing over an existing session replaces it; watchers observe
// the new identity directly.
func (h *Holder) Establish(sess model.Session) {
	h.mu.Lock()
	h.current = &sess
	watchers := h.snapshotWatchers()
	h.mu.Unlock()

	snap := sess
	for _, w := range watchers {
		w(&snap)
	}
}

// Clear drops the active session and notifies watchers with nil.
// Clearing an already-empty holder is a no-op: watchers are only
// invoked on an actual transition.
func (h *Holder) Clear() {
	h.mu.Lock()
	if h.current == nil {
		h.mu.Unlock()
		return
	}
	h.current = nil
	watchers := h.snapshotWatchers()
	h.mu.Unlock()

	for _, w := range watchers {
		w(nil)
	}
}

// Watch registers fn to be called on every session transition. If a
// session is already established, fn is invoked immediately with it so
// late registrants never miss the current state.
func (h *Holder) Watch(fn Watcher) {
	h.mu.Lock()
	h.watchers = append(h.watchers, fn)
	current := h.current
	h.mu.Unlock()

	if current != nil {
		s := *current
		fn(&s)
	}
}

// snapshotWatchers copies the watcher list; callers must hold h.mu.
func (h *Holder) snapshotWatchers() []Watcher {
	out := make([]Watcher, len(h.watchers))
	copy(out, h.watchers)
	return out
}
