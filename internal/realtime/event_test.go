package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessageFrame(t *testing.T) {
	raw := []byte(`{"event":"receiveMessage","data":{"sender":"u2","receiver":"u1","message":"hi","createdAt":"2026-08-30T10:00:00Z"}}`)

	ev, err := decodeFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, EventMessageReceived, ev.Kind)
	require.NotNil(t, ev.Message)
	assert.Equal(t, "u2", ev.Message.SenderID)
	assert.Equal(t, "hi", ev.Message.Text)
}

func TestDecodeLessonFrame(t *testing.T) {
	raw := []byte(`{"event":"newLesson","data":{"id":"l1","title":"Intro","instructor":"Ada"}}`)

	ev, err := decodeFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, EventLessonPublished, ev.Kind)
	require.NotNil(t, ev.Lesson)
	assert.Equal(t, "Intro", ev.Lesson.Title)
}

func TestDecodeRosterFrame(t *testing.T) {
	raw := []byte(`{"event":"onlineUsers","data":["u1","u2"]}`)

	ev, err := decodeFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, ev.Roster)
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	_, err := decodeFrame([]byte(`{"event":"typing","data":{}}`))
	assert.Error(t, err)
}

func TestDecodeRejectsIncompleteMessage(t *testing.T) {
	_, err := decodeFrame([]byte(`{"event":"receiveMessage","data":{"message":"hi"}}`))
	assert.Error(t, err)
}
