package notifications

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/lms-console/internal/keys"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/theme"
)

// MarkReadMsg asks the root model to mark one notification read.
type MarkReadMsg struct {
	ID string
}

// MarkAllReadMsg asks the root model to mark every notification read.
type MarkAllReadMsg struct{}

// Model is the notification center list view. It renders whatever the
// reconciled collection currently holds; the root model pushes fresh
// snapshots in via SetItems after every change.
type Model struct {
	list    list.Model
	keys    *keys.KeyMap
	errText string
	width   int
	height  int
}

// New creates a new notification list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, notificationDelegate{}, width, height-2)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetItems replaces the displayed collection, preserving the cursor
// position where possible.
func (m *Model) SetItems(ns []model.Notification) tea.Cmd {
	items := make([]list.Item, len(ns))
	for i, n := range ns {
		items[i] = notificationItem{n: n}
	}
	return m.list.SetItems(items)
}

// SetError displays a snapshot fetch failure.
func (m *Model) SetError(text string) {
	m.errText = text
}

// ClearError removes a previously displayed failure.
func (m *Model) ClearError() {
	m.errText = ""
}

// Update handles messages for the notification view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.MarkRead):
			item, ok := m.list.SelectedItem().(notificationItem)
			if !ok {
				return m, nil
			}
			id := item.n.ID
			return m, func() tea.Msg {
				return MarkReadMsg{ID: id}
			}

		case key.Matches(keyMsg, m.keys.MarkAllRead):
			return m, func() tea.Msg {
				return MarkAllReadMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the notification list.
func (m Model) View() string {
	center := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	if m.errText != "" {
		return center.Render(
			theme.ErrorStyle.Render(m.errText) +
				"\n" +
				theme.HelpStyle.Render("press r to retry"),
		)
	}
	if len(m.list.Items()) == 0 {
		return center.Foreground(theme.ColorGray).Render("No notifications.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
