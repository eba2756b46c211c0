package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/htran/lms-console/internal/api"
	"github.com/htran/lms-console/internal/keys"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/notify"
	"github.com/htran/lms-console/internal/realtime"
	"github.com/htran/lms-console/internal/session"
	"github.com/htran/lms-console/internal/store"
	"github.com/htran/lms-console/internal/theme"
	"github.com/htran/lms-console/internal/ui"
	"github.com/htran/lms-console/internal/ui/chat"
	"github.com/htran/lms-console/internal/ui/home"
	"github.com/htran/lms-console/internal/ui/lessonlist"
	"github.com/htran/lms-console/internal/ui/login"
	"github.com/htran/lms-console/internal/ui/notifications"
	"github.com/htran/lms-console/internal/ui/userlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewHome
	ViewUsers
	ViewLessons
	ViewChat
	ViewNotifications
)

// Model is the root Bubble Tea model. It routes messages between the
// views, the session holder, the realtime channel, and the backend
// client, and bridges realtime events into the Bubble Tea runtime.
type Model struct {
	client  *api.Client
	store   store.Store
	holder  *session.Holder
	manager *realtime.Manager

	reconciler *notify.Reconciler
	counter    *notify.UnreadCounter

	currentView ViewState
	layout      ui.Layout
	keys        *keys.KeyMap

	loginView   login.Model
	homeView    home.Model
	userView    userlist.Model
	lessonView  lessonlist.Model
	chatView    chat.Model
	notifView   notifications.Model

	// events carries realtime events from the manager's read goroutine
	// into Update. Handlers run off the UI loop, so they only enqueue.
	events chan tea.Msg

	// sessCtx scopes every backend request to the current session.
	// Logout cancels it, aborting whatever is still in flight.
	sessCtx    context.Context
	sessCancel context.CancelFunc

	initial   *model.Session
	ready     bool
	statusErr string
}

// New creates the root application model. A non-nil initial session,
// restored from the keyring, skips the login screen.
func New(
	client *api.Client,
	st store.Store,
	holder *session.Holder,
	manager *realtime.Manager,
	initial *model.Session,
) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		client:     client,
		store:      st,
		holder:     holder,
		manager:    manager,
		reconciler: notify.NewReconciler(client),
		counter:    notify.NewUnreadCounter(),
		keys:       k,
		loginView:  login.New(80, 24),
		homeView:   home.New(80, 24),
		userView:   userlist.New(k, 80, 24),
		lessonView: lessonlist.New(k, 80, 24),
		chatView:   chat.New(k, 80, 24),
		notifView:  notifications.New(k, 80, 24),
		events:     make(chan tea.Msg, 64),
		sessCtx:    context.Background(),
		initial:    initial,
	}

	m.subscribe()
	return m
}

// subscribe registers the realtime handlers that feed the event
// channel. Subscriptions live for the whole program.
func (m *Model) subscribe() {
	m.manager.Subscribe(realtime.EventMessageReceived, func(ev realtime.Event) {
		m.enqueue(messageReceivedMsg{msg: *ev.Message})
	})
	m.manager.Subscribe(realtime.EventMessageSent, func(ev realtime.Event) {
		m.enqueue(messageSentMsg{msg: *ev.Message})
	})
	m.manager.Subscribe(realtime.EventLessonPublished, func(ev realtime.Event) {
		m.enqueue(lessonPublishedMsg{lesson: *ev.Lesson})
	})
	m.manager.Subscribe(realtime.EventPresenceList, func(ev realtime.Event) {
		m.enqueue(presenceMsg{roster: ev.Roster})
	})
}

// enqueue pushes an event toward Update without blocking the read loop.
func (m *Model) enqueue(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

// Init establishes a restored session or shows the login form, and
// starts listening for realtime events.
func (m Model) Init() tea.Cmd {
	if m.initial != nil {
		sess := *m.initial
		return tea.Batch(
			func() tea.Msg { return sessionReadyMsg{sess: sess} },
			m.waitForEvent(),
		)
	}
	return tea.Batch(m.loginView.Start(), m.waitForEvent())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		cw := m.layout.ContentWidth()
		ch := m.layout.ContentHeight()
		m.loginView.SetSize(cw, ch)
		m.homeView.SetSize(cw, ch)
		m.userView.SetSize(cw, ch)
		m.lessonView.SetSize(cw, ch)
		m.chatView.SetSize(cw, ch)
		m.notifView.SetSize(cw, ch)
		// Forward to the active view so huh can lay out its form.
		return m.updateActiveView(msg)

	case login.SubmitMsg:
		return m, m.doLogin(msg.Email, msg.Password)

	case loginResultMsg:
		if msg.err != nil {
			return m, m.loginView.SetError(msg.err.Error())
		}
		return m, func() tea.Msg { return sessionReadyMsg{sess: *msg.sess} }

	case sessionReadyMsg:
		return m.startSession(msg.sess)

	case home.StatsLoadedMsg:
		m.homeView, _ = m.homeView.Update(msg)
		return m, nil

	case userlist.UsersLoadedMsg:
		var cmd tea.Cmd
		m.userView, cmd = m.userView.Update(msg)
		return m, cmd

	case lessonlist.LessonsLoadedMsg:
		var cmd tea.Cmd
		m.lessonView, cmd = m.lessonView.Update(msg)
		return m, cmd

	case lessonlist.LikeRequestMsg:
		return m, m.doLikeLesson(msg.LessonID)

	case lessonLikedMsg:
		if msg.err != nil {
			m.statusErr = msg.err.Error()
			return m, nil
		}
		return m, m.loadLessons()

	case notificationsLoadedMsg:
		if msg.err != nil {
			if len(msg.archived) > 0 {
				// Backend unreachable; show the archived snapshot
				// read-only, like the chat history fallback.
				m.notifView.ClearError()
				m.statusErr = msg.err.Error()
				return m, m.notifView.SetItems(msg.archived)
			}
			m.notifView.SetError(msg.err.Error())
			return m, nil
		}
		m.notifView.ClearError()
		items := m.reconciler.All()
		return m, tea.Batch(
			m.notifView.SetItems(items),
			m.archiveNotifications(items),
		)

	case notifications.MarkReadMsg:
		return m, m.doMarkRead(msg.ID)

	case notifications.MarkAllReadMsg:
		m.reconciler.MarkAllRead()
		return m, m.notifView.SetItems(m.reconciler.All())

	case markReadResultMsg:
		if msg.err != nil {
			m.statusErr = msg.err.Error()
			return m, nil
		}
		return m, m.notifView.SetItems(m.reconciler.All())

	case chat.PartnersLoadedMsg, chat.ConversationLoadedMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd

	case chat.SelectPartnerMsg:
		return m, m.loadConversation(msg.UserID)

	case chat.SendRequestMsg:
		return m, m.doSendMessage(msg.ReceiverID, msg.Text)

	case sendResultMsg:
		if msg.err != nil {
			m.statusErr = msg.err.Error()
		}
		return m, nil

	case messageReceivedMsg:
		m.chatView.AppendMessage(msg.msg)
		if m.currentView != ViewChat || m.chatView.PartnerID() != msg.msg.SenderID {
			m.counter.Increment()
		}
		return m, tea.Batch(m.archiveMessage(msg.msg), m.waitForEvent())

	case messageSentMsg:
		m.chatView.AppendMessage(msg.msg)
		return m, tea.Batch(m.archiveMessage(msg.msg), m.waitForEvent())

	case lessonPublishedMsg:
		n := m.reconciler.ApplyLessonPublished(msg.lesson)
		return m, tea.Batch(
			m.notifView.SetItems(m.reconciler.All()),
			m.archiveNotifications([]model.Notification{n}),
			m.loadLessons(),
			m.waitForEvent(),
		)

	case presenceMsg:
		m.userView.SetRoster(msg.roster)
		m.chatView.SetRoster(msg.roster)
		return m, m.waitForEvent()

	case archiveDoneMsg:
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work across views. Keys are not
// global while a text field may have focus (login and chat).
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	if m.currentView == ViewLogin {
		return m, nil, false
	}
	if m.currentView == ViewChat && m.chatView.ComposerFocused() {
		// The composer owns the keyboard while it has focus.
		if key.Matches(msg, m.keys.Logout) {
			return m.doLogout()
		}
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Logout):
		return m.doLogout()
	case key.Matches(msg, m.keys.Home):
		return m.switchView(ViewHome, m.loadStats())
	case key.Matches(msg, m.keys.Users):
		return m.switchView(ViewUsers, m.loadUsers())
	case key.Matches(msg, m.keys.Lessons):
		return m.switchView(ViewLessons, m.loadLessons())
	case key.Matches(msg, m.keys.Chat):
		return m.switchView(ViewChat, m.loadPartners())
	case key.Matches(msg, m.keys.Notifications):
		// The reconciled collection is the source of truth once
		// seeded; switching views only displays it. Refresh stays an
		// explicit action so pushed records and their read state
		// survive tab hopping.
		return m.switchView(ViewNotifications, nil)
	case key.Matches(msg, m.keys.Refresh):
		return m.refreshCurrent()
	}

	return m, nil, false
}

// switchView changes the active view and keeps the chat unread counter
// in step with chat focus.
func (m Model) switchView(v ViewState, cmd tea.Cmd) (tea.Model, tea.Cmd, bool) {
	if m.currentView == ViewLogin {
		return m, nil, false
	}

	if v == ViewChat {
		m.counter.Activate()
	} else if m.currentView == ViewChat {
		m.counter.Deactivate()
	}

	m.currentView = v
	m.statusErr = ""
	return m, cmd, true
}

// refreshCurrent reloads the data behind the active view.
func (m Model) refreshCurrent() (tea.Model, tea.Cmd, bool) {
	switch m.currentView {
	case ViewHome:
		return m, m.loadStats(), true
	case ViewUsers:
		return m, m.loadUsers(), true
	case ViewLessons:
		return m, m.loadLessons(), true
	case ViewNotifications:
		return m, m.loadNotifications(), true
	}
	return m, nil, false
}

// startSession installs an authenticated session and loads the data
// every view needs. Establishing the session opens the realtime
// channel through the bound manager.
func (m Model) startSession(sess model.Session) (tea.Model, tea.Cmd) {
	m.sessCtx, m.sessCancel = context.WithCancel(context.Background())
	m.holder.Establish(sess)
	m.chatView.SetSelf(sess.UserID)
	m.currentView = ViewHome
	m.statusErr = ""
	return m, tea.Batch(
		m.loadStats(),
		m.loadUsers(),
		m.loadLessons(),
		m.loadPartners(),
		m.loadNotifications(),
	)
}

// doLogout clears the session, which closes the realtime channel,
// aborts every in-flight backend request, and returns to the login
// screen.
func (m Model) doLogout() (tea.Model, tea.Cmd, bool) {
	if m.sessCancel != nil {
		m.sessCancel()
		m.sessCancel = nil
	}
	m.sessCtx = context.Background()
	m.holder.Clear()
	m.counter.Reset()
	m.currentView = ViewLogin
	m.statusErr = ""
	return m, tea.Batch(m.forgetToken(), m.loginView.Start()), true
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewHome:
		m.homeView, cmd = m.homeView.Update(msg)
	case ViewUsers:
		m.userView, cmd = m.userView.Update(msg)
	case ViewLessons:
		m.lessonView, cmd = m.lessonView.Update(msg)
	case ViewChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.layout.RenderWithFrame(
			m.layout.RenderHeader("LMS Console", ""),
			m.loginView.View(),
			m.layout.RenderStatusBar("enter submit | ctrl+c quit"),
		)
	}

	header := m.layout.RenderHeader(m.headerTabs(), m.connectionStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHome:
		return m.homeView.View()
	case ViewUsers:
		return m.userView.View()
	case ViewLessons:
		return m.lessonView.View()
	case ViewChat:
		return m.chatView.View()
	case ViewNotifications:
		return m.notifView.View()
	default:
		return ""
	}
}

// headerTabs renders the view tabs with unread badges.
func (m Model) headerTabs() string {
	chatLabel := "4:Chat"
	if n := m.counter.Count(); n > 0 {
		chatLabel = fmt.Sprintf("4:Chat(%d)", n)
	}

	notifLabel := "5:Notifications"
	if n := m.reconciler.UnreadCount(); n > 0 {
		notifLabel = fmt.Sprintf("5:Notifications(%d)", n)
	}

	return fmt.Sprintf(
		"LMS Console  1:Dashboard  2:Users  3:Lessons  %s  %s",
		chatLabel, notifLabel,
	)
}

// connectionStatus renders the realtime channel indicator.
func (m Model) connectionStatus() string {
	if m.manager.Connected() {
		return theme.ConnectionStyle(true).Render("● live")
	}
	return theme.ConnectionStyle(false).Render("○ offline")
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusErr != "" {
		return theme.ErrorStyle.Render(m.statusErr)
	}

	switch m.currentView {
	case ViewUsers:
		return "j/k move | r refresh | 1-5 views | ctrl+l logout | q quit"
	case ViewLessons:
		return "j/k move | l like | r refresh | 1-5 views | q quit"
	case ViewChat:
		return "j/k move | enter open | esc roster | ctrl+l logout"
	case ViewNotifications:
		return "m mark read | M mark all | r refresh | 1-5 views | q quit"
	default:
		return "1-5 views | r refresh | ctrl+l logout | q quit"
	}
}
