package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/lms-console/internal/model"
)

func TestHolderStartsEmpty(t *testing.T) {
	h := NewHolder()
	assert.Nil(t, h.Current())
}

func TestEstablishThenCurrent(t *testing.T) {
	h := NewHolder()
	h.Establish(model.Session{UserID: "u1", Name: "Ada", Role: model.RoleAdmin})

	got := h.Current()
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestClearDropsSession(t *testing.T) {
	h := NewHolder()
	h.Establish(model.Session{UserID: "u1"})
	h.Clear()
	assert.Nil(t, h.Current())
}

func TestWatcherSeesTransitions(t *testing.T) {
	h := NewHolder()

	var seen []*model.Session
	h.Watch(func(s *model.Session) { seen = append(seen, s) })

	h.Establish(model.Session{UserID: "u1"})
	h.Clear()

	require.Len(t, seen, 2)
	require.NotNil(t, seen[0])
	assert.Equal(t, "u1", seen[0].UserID)
	assert.Nil(t, seen[1])
}

func TestClearWhenEmptyIsNoOp(t *testing.T) {
	h := NewHolder()

	calls := 0
	h.Watch(func(*model.Session) { calls++ })

	h.Clear()
	h.Clear()
	assert.Zero(t, calls)
}

func TestLateWatcherGetsCurrentSession(t *testing.T) {
	h := NewHolder()
	h.Establish(model.Session{UserID: "u2"})

	var got *model.Session
	h.Watch(func(s *model.Session) { got = s })

	require.NotNil(t, got)
	assert.Equal(t, "u2", got.UserID)
}

func TestCurrentReturnsCopy(t *testing.T) {
	h := NewHolder()
	h.Establish(model.Session{UserID: "u1", Name: "Ada"})

	first := h.Current()
	first.Name = "mutated"

	assert.Equal(t, "Ada", h.Current().Name)
}

func TestEstablishClearSequences(t *testing.T) {
	// The holder reports a session iff the most recent call was
	// Establish with no subsequent Clear.
	h := NewHolder()

	h.Establish(model.Session{UserID: "a"})
	h.Establish(model.Session{UserID: "b"})
	require.NotNil(t, h.Current())
	assert.Equal(t, "b", h.Current().UserID)

	h.Clear()
	assert.Nil(t, h.Current())

	h.Establish(model.Session{UserID: "c"})
	require.NotNil(t, h.Current())
	assert.Equal(t, "c", h.Current().UserID)
}
