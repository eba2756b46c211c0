package userlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/theme"
)

// userItem wraps a model.User so it can be used in a bubbles/list.
type userItem struct {
	user model.User
}

// FilterValue returns the string used for fuzzy filtering.
func (i userItem) FilterValue() string { return i.user.Name }

// userDelegate renders a single account line with role and presence.
type userDelegate struct {
	// online maps user ids to true while they hold a live realtime
	// connection. Shared by reference with the Model.
	online map[string]bool
}

// Height returns the number of lines each item takes.
func (d userDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d userDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d userDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single account line.
func (d userDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ui, ok := item.(userItem)
	if !ok {
		return
	}

	u := ui.user

	presence := theme.OfflineStyle.Render("○")
	if d.online[u.ID] {
		presence = theme.OnlineStyle.Render("●")
	}

	roleBadge := theme.RoleStyle(u.Role).Render(string(u.Role))

	line := fmt.Sprintf("%s %s %s  %s", presence, roleBadge, u.Name, u.Email)
	if !u.Active {
		line = theme.ReadStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
