package userlist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/lms-console/internal/keys"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/theme"
)

// UsersLoadedMsg is sent when the account roster has been fetched.
type UsersLoadedMsg struct {
	Users []model.User
	Err   error
}

// Model is the user management list view.
type Model struct {
	list    list.Model
	keys    *keys.KeyMap
	online  map[string]bool
	errText string
	width   int
	height  int
}

// New creates a new user list model.
func New(k *keys.KeyMap, width, height int) Model {
	online := make(map[string]bool)
	l := list.New([]list.Item{}, userDelegate{online: online}, width, height-2)
	l.Title = "Users"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		online: online,
		width:  width,
		height: height,
	}
}

// SetRoster replaces the set of online user ids. The delegate shares
// the map by reference, so the next render picks it up.
func (m *Model) SetRoster(ids []string) {
	for id := range m.online {
		delete(m.online, id)
	}
	for _, id := range ids {
		m.online[id] = true
	}
}

// Update handles messages for the user list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(UsersLoadedMsg); ok {
		if loaded.Err != nil {
			m.errText = loaded.Err.Error()
			return m, nil
		}
		m.errText = ""
		items := make([]list.Item, len(loaded.Users))
		for i, u := range loaded.Users {
			items[i] = userItem{user: u}
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedUser returns the currently focused account, if any.
func (m Model) SelectedUser() (model.User, bool) {
	item, ok := m.list.SelectedItem().(userItem)
	if !ok {
		return model.User{}, false
	}
	return item.user, true
}

// View renders the user list.
func (m Model) View() string {
	if m.errText != "" {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.ErrorStyle.Render(m.errText))
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
