package notify

import "sync"

// UnreadCounter tracks inbound chat messages the user has not seen.
// It increments by one per qualifying message while the chat surface
// is inactive and resets to zero whenever the surface gains focus.
// The counter never goes negative and has no decrement besides reset.
type UnreadCounter struct {
	mu     sync.Mutex
	count  int
	active bool
}

// NewUnreadCounter creates a counter in the inactive state.
func NewUnreadCounter() *UnreadCounter {
	return &UnreadCounter{}
}

// Activate marks the chat surface focused and resets the count.
// Activating an already-active counter resets again; reset is
// idempotent.
func (c *UnreadCounter) Activate() {
	c.mu.Lock()
	c.active = true
	c.count = 0
	c.mu.Unlock()
}

// Deactivate marks the chat surface unfocused; subsequent inbound
// messages accumulate again.
func (c *UnreadCounter) Deactivate() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}

// Increment counts one inbound message. While the surface is active
// the message is considered seen and the count stays at zero.
func (c *UnreadCounter) Increment() {
	c.mu.Lock()
	if !c.active {
		c.count++
	}
	c.mu.Unlock()
}

// Reset zeroes the count regardless of focus state. Used when the
// session ends.
func (c *UnreadCounter) Reset() {
	c.mu.Lock()
	c.count = 0
	c.mu.Unlock()
}

// Count returns the current unread count.
func (c *UnreadCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
