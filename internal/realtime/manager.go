package realtime

import (
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/session"
)

// ErrNotConnected is returned by Send when no connection is open.
var ErrNotConnected = errors.New("realtime: not connected")

// Handler receives decoded events for a subscribed kind.
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed
// without affecting other subscribers of the same kind.
type Subscription struct {
	kind EventKind
	id   int
}

// Config holds the connection settings for the realtime channel.
type Config struct {
	// URL is the websocket endpoint.
	URL string

	// DialTimeout bounds a single connection attempt.
	DialTimeout time.Duration

	// MaxBackoff caps the reconnect delay.
	MaxBackoff time.Duration
}

// Manager owns the single realtime connection, alive exactly while a
// session exists. Connection loss is absorbed silently: the manager
// redials with backoff and re-announces presence, and subscribers
// simply stop and resume receiving events. Within one connection,
// events are dispatched in arrival order; no ordering is guaranteed
// across a reconnect boundary.
type Manager struct {
	cfg    Config
	dialer *websocket.Dialer

	mu      sync.Mutex
	wmu     sync.Mutex
	conn    *websocket.Conn
	sess    *model.Session
	gen     int
	subs    map[EventKind]map[int]Handler
	nextSub int
}

// NewManager creates a disconnected Manager for the given endpoint.
func NewManager(cfg Config) *Manager {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	return &Manager{
		cfg:    cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.DialTimeout},
		subs:   make(map[EventKind]map[int]Handler),
	}
}

// Bind ties the manager's lifecycle to the session holder: the
// connection opens on establish and closes on clear.
func (m *Manager) Bind(holder *session.Holder) {
	holder.Watch(func(s *model.Session) {
		if s != nil {
			m.Open(*s)
		} else {
			m.Close()
		}
	})
}

// Open starts the connection loop for sess. Opening while already
// connected for the same identity is a no-op, which keeps the join
// handshake one-shot per connection. A different identity tears down
// the old connection first.
func (m *Manager) Open(sess model.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess != nil && m.sess.UserID == sess.UserID {
		return
	}

	m.teardownLocked()
	m.sess = &sess
	m.gen++
	go m.run(m.gen, sess)
}

// Close tears down the connection. Closing while no connection is open
// is a no-op.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
	m.sess = nil
}

// teardownLocked invalidates the running loop and closes the socket.
// Callers must hold m.mu.
func (m *Manager) teardownLocked() {
	m.gen++
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}

// Connected reports whether a live connection is currently open.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn != nil
}

// Subscribe registers h for events of the given kind. Multiple
// handlers may be registered for one kind; each receives every event
// independently, in registration order.
func (m *Manager) Subscribe(kind EventKind, h Handler) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.subs[kind] == nil {
		m.subs[kind] = make(map[int]Handler)
	}
	m.nextSub++
	m.subs[kind][m.nextSub] = h
	return Subscription{kind: kind, id: m.nextSub}
}

// Unsubscribe removes a single handler. Other subscribers of the same
// kind are unaffected.
func (m *Manager) Unsubscribe(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if handlers, ok := m.subs[sub.kind]; ok {
		delete(handlers, sub.id)
	}
}

// Send writes an outbound chat message on the channel.
func (m *Manager) Send(msg model.ChatMessage) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}
	return m.writeFrame(conn, frameSendMessage, msg)
}

// run dials and reads until the generation is invalidated by Close or
// a newer Open. Each successful dial announces presence exactly once
// before any reads.
func (m *Manager) run(gen int, sess model.Session) {
	backoff := time.Second

	for {
		if !m.currentGen(gen) {
			return
		}

		conn, err := m.dial(sess)
		if err != nil {
			zap.S().Debugw("realtime dial failed", "error", err)
			time.Sleep(backoff)
			backoff *= 2
			if backoff > m.cfg.MaxBackoff {
				backoff = m.cfg.MaxBackoff
			}
			continue
		}

		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			_ = conn.Close()
			return
		}
		m.conn = conn
		m.mu.Unlock()

		// One-shot presence handshake for this connection.
		if err := m.writeFrame(conn, frameJoin, sess.UserID); err != nil {
			zap.S().Debugw("realtime join failed", "error", err)
			m.dropConn(gen, conn)
			continue
		}

		backoff = time.Second
		m.readLoop(conn)
		m.dropConn(gen, conn)
	}
}

// dial opens the websocket, passing the bearer token in the query so
// the backend can authenticate the upgrade request.
func (m *Manager) dial(sess model.Session) (*websocket.Conn, error) {
	u, err := url.Parse(m.cfg.URL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if sess.Token != "" {
		q.Set("token", sess.Token)
	}
	u.RawQuery = q.Encode()

	conn, resp, err := m.dialer.Dial(u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

// readLoop reads frames until the connection fails. Transport errors
// are not surfaced to subscribers; the caller decides whether to
// redial. Decoding happens on this single goroutine, so handlers see
// events in the order the transport delivered them.
func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		ev, err := decodeFrame(raw)
		if err != nil {
			zap.S().Debugw("dropping realtime frame", "error", err)
			continue
		}
		m.dispatch(ev)
	}
}

// dispatch delivers ev to every subscriber of its kind.
func (m *Manager) dispatch(ev Event) {
	m.mu.Lock()
	handlers := make([]Handler, 0, len(m.subs[ev.Kind]))
	ids := make([]int, 0, len(m.subs[ev.Kind]))
	for id := range m.subs[ev.Kind] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		handlers = append(handlers, m.subs[ev.Kind][id])
	}
	m.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// dropConn clears the stored connection if it is still the one that
// failed, leaving a newer connection installed by a later Open intact.
func (m *Manager) dropConn(gen int, conn *websocket.Conn) {
	_ = conn.Close()
	m.mu.Lock()
	if m.gen == gen && m.conn == conn {
		m.conn = nil
	}
	m.mu.Unlock()
}

func (m *Manager) currentGen(gen int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen == gen
}

// writeFrame serializes a discriminated frame. Writes are serialized
// because the join handshake and Send may race.
func (m *Manager) writeFrame(conn *websocket.Conn, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	m.wmu.Lock()
	defer m.wmu.Unlock()
	return conn.WriteJSON(frame{Event: event, Data: data})
}
