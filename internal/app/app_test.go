package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/lms-console/internal/api"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/realtime"
	"github.com/htran/lms-console/internal/session"
	"github.com/htran/lms-console/internal/store"
	"github.com/htran/lms-console/tests/testutil"
)

// newTestApp builds a root model against a stub backend. The realtime
// endpoint is a closed port; the manager just retries in the
// background until the session is cleared.
func newTestApp(t *testing.T, handler http.Handler) (Model, *store.SQLiteStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, 5*time.Second)
	st := testutil.NewTestStore(t)
	holder := session.NewHolder()
	t.Cleanup(holder.Clear)

	manager := realtime.NewManager(realtime.Config{URL: "ws://127.0.0.1:1"})
	manager.Bind(holder)

	return New(client, st, holder, manager, nil), st
}

func signIn(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(sessionReadyMsg{sess: model.Session{
		UserID: "u1",
		Name:   "Alice",
		Role:   model.RoleAdmin,
		Token:  "tok",
	}})
	am, ok := next.(Model)
	require.True(t, ok)
	require.Equal(t, ViewHome, am.currentView)
	return am
}

func TestLogoutAbortsInFlightRequests(t *testing.T) {
	started := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	m, _ := newTestApp(t, mux)
	am := signIn(t, m)

	cmd := am.loadNotifications()
	results := make(chan tea.Msg, 1)
	go func() { results <- cmd() }()
	<-started

	next, _, handled := am.doLogout()
	require.True(t, handled)
	am2 := next.(Model)
	assert.Equal(t, ViewLogin, am2.currentView)
	require.Error(t, am.sessCtx.Err())

	var msg tea.Msg
	select {
	case msg = <-results:
	case <-time.After(2 * time.Second):
		t.Fatal("request was not aborted by logout")
	}

	loaded, ok := msg.(notificationsLoadedMsg)
	require.True(t, ok)
	require.Error(t, loaded.err)
	assert.Empty(t, loaded.archived)

	// The stale result must not repopulate the dead session's state.
	next2, _ := am2.Update(loaded)
	am3 := next2.(Model)
	assert.Empty(t, am3.reconciler.All())
}

func TestNotificationsFallBackToArchiveWhenBackendDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"backend down"}`))
	})

	m, st := newTestApp(t, mux)
	am := signIn(t, m)

	archived := []model.Notification{{
		ID:        "n1",
		Kind:      model.NotificationGlobal,
		Message:   "New lesson: Algebra",
		Read:      true,
		CreatedAt: time.Now(),
	}}
	require.NoError(t, st.ArchiveNotifications(context.Background(), archived))

	msg := am.loadNotifications()()
	loaded, ok := msg.(notificationsLoadedMsg)
	require.True(t, ok)
	require.Error(t, loaded.err)
	require.Len(t, loaded.archived, 1)
	assert.Equal(t, "n1", loaded.archived[0].ID)

	next, cmd := am.Update(loaded)
	am2 := next.(Model)
	assert.NotNil(t, cmd)
	assert.NotEmpty(t, am2.statusErr)
	// The archive display never seeds the reconciler.
	assert.Empty(t, am2.reconciler.All())
}

func TestNotificationsTabKeepsReconciledState(t *testing.T) {
	m, _ := newTestApp(t, http.NewServeMux())
	am := signIn(t, m)

	n := am.reconciler.ApplyLessonPublished(realtime.LessonPublished{
		LessonID:   "l1",
		Title:      "Geometry",
		Instructor: "Bob",
	})
	require.Equal(t, 1, am.reconciler.UnreadCount())

	next, cmd := am.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	am2 := next.(Model)
	assert.Equal(t, ViewNotifications, am2.currentView)
	// Switching views is display-only; no snapshot reload is issued
	// that would discard the pushed record.
	assert.Nil(t, cmd)

	all := am2.reconciler.All()
	require.Len(t, all, 1)
	assert.Equal(t, n.ID, all[0].ID)
	assert.False(t, all[0].Read)
}

func TestGlobalKeysFollowKeymap(t *testing.T) {
	m, _ := newTestApp(t, http.NewServeMux())
	am := signIn(t, m)

	next, cmd := am.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	am2 := next.(Model)
	assert.Equal(t, ViewUsers, am2.currentView)
	assert.NotNil(t, cmd)

	next2, _ := am2.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	am3 := next2.(Model)
	assert.Equal(t, ViewLogin, am3.currentView)
	assert.Nil(t, am3.holder.Current())
}
