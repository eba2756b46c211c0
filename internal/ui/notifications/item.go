package notifications

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/theme"
)

// notificationItem wraps a model.Notification for a bubbles/list.
type notificationItem struct {
	n model.Notification
}

// FilterValue returns the string used for fuzzy filtering.
func (i notificationItem) FilterValue() string { return i.n.Message }

// notificationDelegate renders a single notification line.
type notificationDelegate struct{}

// Height returns the number of lines each item takes.
func (d notificationDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d notificationDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d notificationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single notification line.
func (d notificationDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(notificationItem)
	if !ok {
		return
	}

	n := ni.n

	marker := theme.UnreadStyle.Render("●")
	if n.Read {
		marker = theme.ReadStyle.Render("○")
	}

	kindBadge := ""
	if n.Kind == model.NotificationDirect {
		kindBadge = lipgloss.NewStyle().
			Foreground(theme.ColorBlue).
			Render("[dm] ")
	}

	when := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("  " + n.CreatedAt.Format(time.Kitchen))

	line := fmt.Sprintf("%s %s%s%s", marker, kindBadge, n.Message, when)
	if n.Read {
		line = theme.ReadStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
