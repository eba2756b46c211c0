package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/session"
)

// chatServer is a minimal websocket backend for tests: it records join
// handshakes and hands each accepted connection to the test so events
// can be pushed from the server side.
type chatServer struct {
	srv   *httptest.Server
	conns chan *websocket.Conn
	joins chan string
}

func newChatServer(t *testing.T) *chatServer {
	t.Helper()

	cs := &chatServer{
		conns: make(chan *websocket.Conn, 4),
		joins: make(chan string, 4),
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	cs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cs.conns <- conn

		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			if f.Event == frameJoin {
				var userID string
				_ = json.Unmarshal(f.Data, &userID)
				cs.joins <- userID
			}
		}
	}))

	t.Cleanup(cs.srv.Close)
	return cs
}

func (cs *chatServer) url() string {
	return "ws" + strings.TrimPrefix(cs.srv.URL, "http")
}

func (cs *chatServer) push(t *testing.T, conn *websocket.Conn, event string, payload interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(frame{Event: event, Data: data}))
}

func (cs *chatServer) waitConn(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-cs.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection")
		return nil
	}
}

func (cs *chatServer) waitJoin(t *testing.T) string {
	t.Helper()
	select {
	case id := <-cs.joins:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for join handshake")
		return ""
	}
}

func newTestManager(cs *chatServer) *Manager {
	return NewManager(Config{URL: cs.url(), DialTimeout: time.Second})
}

func TestConnectionOpensOnEstablishAndClosesOnClear(t *testing.T) {
	cs := newChatServer(t)
	m := newTestManager(cs)
	defer m.Close()

	holder := session.NewHolder()
	m.Bind(holder)

	holder.Establish(model.Session{UserID: "u1", Token: "tok"})
	cs.waitConn(t)
	assert.Equal(t, "u1", cs.waitJoin(t))

	require.Eventually(t, m.Connected, 2*time.Second, 10*time.Millisecond)

	holder.Clear()
	require.Eventually(t, func() bool { return !m.Connected() },
		2*time.Second, 10*time.Millisecond)
}

func TestJoinIsOneShotPerConnection(t *testing.T) {
	cs := newChatServer(t)
	m := newTestManager(cs)
	defer m.Close()

	sess := model.Session{UserID: "u1"}
	m.Open(sess)
	cs.waitConn(t)
	cs.waitJoin(t)

	// Re-opening with the same identity must not produce a second
	// handshake or connection.
	m.Open(sess)

	select {
	case <-cs.joins:
		t.Fatal("duplicate join handshake")
	case <-cs.conns:
		t.Fatal("duplicate connection")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEventsDispatchedInArrivalOrder(t *testing.T) {
	cs := newChatServer(t)
	m := newTestManager(cs)
	defer m.Close()

	received := make(chan string, 8)
	m.Subscribe(EventMessageReceived, func(ev Event) {
		received <- ev.Message.Text
	})

	m.Open(model.Session{UserID: "u1"})
	conn := cs.waitConn(t)
	cs.waitJoin(t)

	for _, text := range []string{"one", "two", "three"} {
		cs.push(t, conn, string(EventMessageReceived), model.ChatMessage{
			SenderID:   "u2",
			ReceiverID: "u1",
			Text:       text,
			CreatedAt:  time.Now(),
		})
	}

	for _, want := range []string{"one", "two", "three"} {
		select {
		case got := <-received:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestUnsubscribeDoesNotAffectOtherSubscribers(t *testing.T) {
	cs := newChatServer(t)
	m := newTestManager(cs)
	defer m.Close()

	first := make(chan Event, 1)
	second := make(chan Event, 1)
	sub := m.Subscribe(EventPresenceList, func(ev Event) { first <- ev })
	m.Subscribe(EventPresenceList, func(ev Event) { second <- ev })

	m.Unsubscribe(sub)

	m.Open(model.Session{UserID: "u1"})
	conn := cs.waitConn(t)
	cs.waitJoin(t)

	cs.push(t, conn, string(EventPresenceList), []string{"u1", "u2"})

	select {
	case ev := <-second:
		assert.Equal(t, []string{"u1", "u2"}, ev.Roster)
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber got nothing")
	}

	select {
	case <-first:
		t.Fatal("unsubscribed handler was invoked")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMalformedFramesAreDroppedSilently(t *testing.T) {
	cs := newChatServer(t)
	m := newTestManager(cs)
	defer m.Close()

	received := make(chan Event, 4)
	m.Subscribe(EventLessonPublished, func(ev Event) { received <- ev })

	m.Open(model.Session{UserID: "u1"})
	conn := cs.waitConn(t)
	cs.waitJoin(t)

	// Unknown discriminator, then a payload missing required fields,
	// then a valid event. Only the last may be delivered.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"event":"mystery","data":{}}`)))
	cs.push(t, conn, string(EventLessonPublished), map[string]string{"id": "l9"})
	cs.push(t, conn, string(EventLessonPublished), LessonPublished{
		LessonID:   "l1",
		Title:      "Go Basics",
		Instructor: "Ada",
	})

	select {
	case ev := <-received:
		assert.Equal(t, "l1", ev.Lesson.LessonID)
		assert.Equal(t, "Go Basics", ev.Lesson.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("valid event was never delivered")
	}
	assert.Empty(t, received)
}

func TestReconnectAnnouncesPresenceAgain(t *testing.T) {
	cs := newChatServer(t)
	m := NewManager(Config{
		URL:         cs.url(),
		DialTimeout: time.Second,
		MaxBackoff:  time.Second,
	})
	defer m.Close()

	m.Open(model.Session{UserID: "u1"})
	conn := cs.waitConn(t)
	assert.Equal(t, "u1", cs.waitJoin(t))

	// Kill the connection server-side; the manager must redial and
	// repeat the handshake without surfacing anything to subscribers.
	require.NoError(t, conn.Close())

	cs.waitConn(t)
	assert.Equal(t, "u1", cs.waitJoin(t))
}

func TestSendWithoutConnection(t *testing.T) {
	cs := newChatServer(t)
	m := newTestManager(cs)

	err := m.Send(model.ChatMessage{SenderID: "a", ReceiverID: "b", Text: "hi"})
	assert.ErrorIs(t, err, ErrNotConnected)
}
