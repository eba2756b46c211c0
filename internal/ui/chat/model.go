package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/lms-console/internal/keys"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/theme"
)

// PartnersLoadedMsg is sent when the chat partner roster is fetched.
type PartnersLoadedMsg struct {
	Users []model.User
	Err   error
}

// ConversationLoadedMsg carries the message history with one partner.
type ConversationLoadedMsg struct {
	PartnerID string
	Messages  []model.ChatMessage
	Err       error
}

// SelectPartnerMsg asks the root model to open a conversation.
type SelectPartnerMsg struct {
	UserID string
}

// SendRequestMsg asks the root model to send a chat message.
type SendRequestMsg struct {
	ReceiverID string
	Text       string
}

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusPartners focusArea = iota
	focusInput
)

// Model is the split-pane chat view: partner roster on the left,
// conversation transcript and composer on the right.
type Model struct {
	keys *keys.KeyMap

	partners []model.User
	cursor   int
	online   map[string]bool

	selfID    string
	partnerID string
	messages  []model.ChatMessage

	vp    viewport.Model
	input textinput.Model

	focus   focusArea
	errText string
	width   int
	height  int
}

// New creates a new chat model.
func New(k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a message..."
	ti.Prompt = "> "
	ti.CharLimit = 500

	vp := viewport.New(width*2/3, height-4)

	return Model{
		keys:   k,
		online: make(map[string]bool),
		vp:     vp,
		input:  ti,
		width:  width,
		height: height,
	}
}

// SetSelf records the signed-in user id so own messages render
// distinctly and outbound messages carry the right sender.
func (m *Model) SetSelf(id string) {
	m.selfID = id
}

// SetRoster replaces the set of online user ids.
func (m *Model) SetRoster(ids []string) {
	m.online = make(map[string]bool, len(ids))
	for _, id := range ids {
		m.online[id] = true
	}
}

// PartnerID returns the id of the open conversation, empty when none.
func (m Model) PartnerID() string {
	return m.partnerID
}

// ComposerFocused reports whether the text composer is capturing key
// input, in which case global shortcuts must stay out of the way.
func (m Model) ComposerFocused() bool {
	return m.focus == focusInput
}

// AppendMessage adds one message to the open transcript. Messages for
// other conversations are ignored; the root model tracks those through
// the unread counter instead.
func (m *Model) AppendMessage(msg model.ChatMessage) {
	if m.partnerID == "" {
		return
	}
	if msg.SenderID != m.partnerID && msg.ReceiverID != m.partnerID {
		return
	}
	m.messages = append(m.messages, msg)
	m.vp.SetContent(m.renderTranscript())
	m.vp.GotoBottom()
}

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PartnersLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.partners = msg.Users
		if m.cursor >= len(m.partners) {
			m.cursor = 0
		}
		return m, nil

	case ConversationLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.partnerID = msg.PartnerID
		m.messages = msg.Messages
		m.vp.SetContent(m.renderTranscript())
		m.vp.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if m.focus == focusInput {
			return m.handleComposerKeys(msg)
		}
		return m.handleRosterKeys(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// handleRosterKeys processes key input while the partner list has focus.
func (m Model) handleRosterKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.partners)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.cursor >= len(m.partners) {
			return m, nil
		}
		id := m.partners[m.cursor].ID
		m.focus = focusInput
		cmd := m.input.Focus()
		return m, tea.Batch(cmd, func() tea.Msg {
			return SelectPartnerMsg{UserID: id}
		})
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// handleComposerKeys processes key input while the composer has focus.
func (m Model) handleComposerKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusPartners
		m.input.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.partnerID == "" {
			return m, nil
		}
		m.input.Reset()
		receiver := m.partnerID
		return m, func() tea.Msg {
			return SendRequestMsg{ReceiverID: receiver, Text: text}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the split-pane chat screen.
func (m Model) View() string {
	if m.errText != "" {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.ErrorStyle.Render(m.errText))
	}

	left := m.renderRoster()
	right := m.renderConversation()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderRoster draws the partner list pane.
func (m Model) renderRoster() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Chats") + "\n")

	if len(m.partners) == 0 {
		b.WriteString(theme.HelpStyle.Render("nobody to chat with"))
	}

	for i, p := range m.partners {
		presence := theme.OfflineStyle.Render("○")
		if m.online[p.ID] {
			presence = theme.OnlineStyle.Render("●")
		}

		line := fmt.Sprintf("%s %s", presence, p.Name)
		if i == m.cursor && m.focus == focusPartners {
			line = theme.SelectedItemStyle.Render(line)
		} else if p.ID == m.partnerID {
			line = theme.ListItemStyle.Bold(true).Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return lipgloss.NewStyle().
		Width(m.width / 3).
		Height(m.height).
		Render(b.String())
}

// renderConversation draws the transcript and composer pane.
func (m Model) renderConversation() string {
	w := m.width - m.width/3

	if m.partnerID == "" {
		return lipgloss.NewStyle().
			Width(w).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Select a chat to start messaging.")
	}

	composer := lipgloss.NewStyle().
		Width(w).
		Padding(0, 1).
		Render(m.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.vp.View(),
		composer,
	)
}

// renderTranscript formats the message history for the viewport.
func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, msg := range m.messages {
		when := theme.HelpStyle.Render(msg.CreatedAt.Format("15:04"))
		if msg.SenderID == m.selfID {
			b.WriteString(theme.OwnMessageStyle.Render("you") + " " + when + "\n")
		} else {
			b.WriteString(theme.PartnerMessageStyle.Render(m.partnerName()) + " " + when + "\n")
		}
		b.WriteString("  " + msg.Text + "\n")
	}
	return b.String()
}

// partnerName resolves the open conversation partner's display name.
func (m Model) partnerName() string {
	for _, p := range m.partners {
		if p.ID == m.partnerID {
			return p.Name
		}
	}
	return "them"
}

// SetSize updates the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width - width/3
	m.vp.Height = height - 2
	m.input.Width = width - width/3 - 4
	m.vp.SetContent(m.renderTranscript())
}
