package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/htran/lms-console/internal/credential"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/realtime"
	"github.com/htran/lms-console/internal/ui/chat"
	"github.com/htran/lms-console/internal/ui/home"
	"github.com/htran/lms-console/internal/ui/lessonlist"
	"github.com/htran/lms-console/internal/ui/userlist"
)

// requestTimeout bounds every backend call issued from the UI.
const requestTimeout = 30 * time.Second

// sessionReadyMsg installs an authenticated session.
type sessionReadyMsg struct {
	sess model.Session
}

// loginResultMsg carries the outcome of a credential sign-in.
type loginResultMsg struct {
	sess *model.Session
	err  error
}

// notificationsLoadedMsg signals that the reconciler snapshot load
// finished. When the backend is unreachable, archived carries the
// local archive's records for a read-only display.
type notificationsLoadedMsg struct {
	archived []model.Notification
	err      error
}

// markReadResultMsg carries the outcome of marking one notification.
type markReadResultMsg struct {
	err error
}

// lessonLikedMsg carries the outcome of liking a lesson.
type lessonLikedMsg struct {
	err error
}

// sendResultMsg carries a chat send failure; successful sends are
// confirmed by the server's acknowledgement event instead.
type sendResultMsg struct {
	err error
}

// archiveDoneMsg signals that a local archive write finished.
type archiveDoneMsg struct{}

// Realtime events bridged from the manager's read goroutine.
type messageReceivedMsg struct{ msg model.ChatMessage }
type messageSentMsg struct{ msg model.ChatMessage }
type lessonPublishedMsg struct{ lesson realtime.LessonPublished }
type presenceMsg struct{ roster []string }

// waitForEvent returns a command that blocks on the event channel.
// Each delivered event re-arms itself from Update.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// requestContext derives a bounded context from the session scope, so
// logout aborts whatever is still in flight.
func requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, requestTimeout)
}

// doLogin exchanges credentials for a session.
func (m Model) doLogin(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sess, err := client.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := credential.Set(credential.KeyAuthToken, sess.Token); err != nil {
			zap.S().Warnw("storing auth token failed", "error", err)
		}
		return loginResultMsg{sess: sess}
	}
}

// forgetToken removes the stored bearer token on logout.
func (m Model) forgetToken() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		client.ClearToken()
		if err := credential.Delete(credential.KeyAuthToken); err != nil {
			zap.S().Warnw("removing auth token failed", "error", err)
		}
		return nil
	}
}

// loadStats fetches the dashboard counters.
func (m Model) loadStats() tea.Cmd {
	client := m.client
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		stats, err := client.GetDashboardStats(ctx)
		return home.StatsLoadedMsg{Stats: stats, Err: err}
	}
}

// loadUsers fetches the account roster.
func (m Model) loadUsers() tea.Cmd {
	client := m.client
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		users, err := client.ListUsers(ctx)
		return userlist.UsersLoadedMsg{Users: users, Err: err}
	}
}

// loadLessons fetches the lesson catalog.
func (m Model) loadLessons() tea.Cmd {
	client := m.client
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		lessons, err := client.ListLessons(ctx)
		return lessonlist.LessonsLoadedMsg{Lessons: lessons, Err: err}
	}
}

// doLikeLesson toggles a like on the given lesson.
func (m Model) doLikeLesson(id string) tea.Cmd {
	client := m.client
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		_, err := client.LikeLesson(ctx, id)
		return lessonLikedMsg{err: err}
	}
}

// loadPartners fetches the chat partner roster.
func (m Model) loadPartners() tea.Cmd {
	client := m.client
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		users, err := client.ListChatPartners(ctx)
		return chat.PartnersLoadedMsg{Users: users, Err: err}
	}
}

// loadConversation fetches the message history with one partner. When
// the backend is unreachable the local archive fills in, so past
// conversations stay readable offline.
func (m Model) loadConversation(partnerID string) tea.Cmd {
	client := m.client
	st := m.store
	parent := m.sessCtx
	self := ""
	if sess := m.holder.Current(); sess != nil {
		self = sess.UserID
	}

	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		msgs, err := client.GetConversation(ctx, partnerID)
		if err != nil {
			archived, aerr := st.GetConversation(ctx, self, partnerID, 200)
			if aerr != nil {
				return chat.ConversationLoadedMsg{PartnerID: partnerID, Err: err}
			}
			zap.S().Infow("serving conversation from archive",
				"partner", partnerID, "error", err)
			return chat.ConversationLoadedMsg{PartnerID: partnerID, Messages: archived}
		}
		return chat.ConversationLoadedMsg{PartnerID: partnerID, Messages: msgs}
	}
}

// doSendMessage writes an outbound message on the realtime channel.
// The transcript is updated by the server's acknowledgement, not here.
func (m Model) doSendMessage(receiverID, text string) tea.Cmd {
	manager := m.manager
	self := ""
	if sess := m.holder.Current(); sess != nil {
		self = sess.UserID
	}

	return func() tea.Msg {
		err := manager.Send(model.ChatMessage{
			SenderID:   self,
			ReceiverID: receiverID,
			Text:       text,
			CreatedAt:  time.Now(),
		})
		return sendResultMsg{err: err}
	}
}

// loadNotifications seeds the reconciler from the backend snapshot.
// When the backend is unreachable the local archive fills in, like the
// chat history fallback.
func (m Model) loadNotifications() tea.Cmd {
	rec := m.reconciler
	st := m.store
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		err := rec.Load(ctx)
		if err == nil {
			return notificationsLoadedMsg{}
		}

		archived, aerr := st.GetNotifications(ctx, 200)
		if aerr != nil || len(archived) == 0 {
			return notificationsLoadedMsg{err: err}
		}
		zap.S().Infow("serving notifications from archive", "error", err)
		return notificationsLoadedMsg{archived: archived, err: err}
	}
}

// doMarkRead marks one notification read through the reconciler.
func (m Model) doMarkRead(id string) tea.Cmd {
	rec := m.reconciler
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		return markReadResultMsg{err: rec.MarkRead(ctx, id)}
	}
}

// archiveMessage appends one chat message to the local archive.
func (m Model) archiveMessage(msg model.ChatMessage) tea.Cmd {
	st := m.store
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		if err := st.ArchiveMessage(ctx, msg); err != nil {
			zap.S().Warnw("archiving message failed", "error", err)
		}
		return archiveDoneMsg{}
	}
}

// archiveNotifications upserts notification records into the local
// archive.
func (m Model) archiveNotifications(ns []model.Notification) tea.Cmd {
	st := m.store
	parent := m.sessCtx
	return func() tea.Msg {
		ctx, cancel := requestContext(parent)
		defer cancel()

		if err := st.ArchiveNotifications(ctx, ns); err != nil {
			zap.S().Warnw("archiving notifications failed", "error", err)
		}
		return archiveDoneMsg{}
	}
}
