package home

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/theme"
)

// StatsLoadedMsg carries the aggregate counters for the home screen.
type StatsLoadedMsg struct {
	Stats *model.DashboardStats
	Err   error
}

// Model renders the dashboard home screen with platform counters.
type Model struct {
	stats   *model.DashboardStats
	errText string
	width   int
	height  int
}

// New creates an empty home model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// Update handles messages for the home view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(StatsLoadedMsg); ok {
		if loaded.Err != nil {
			m.errText = loaded.Err.Error()
			return m, nil
		}
		m.stats = loaded.Stats
		m.errText = ""
	}
	return m, nil
}

// View renders the counter cards.
func (m Model) View() string {
	center := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	if m.errText != "" {
		return center.Render(theme.ErrorStyle.Render(m.errText))
	}
	if m.stats == nil {
		return center.Foreground(theme.ColorGray).Render("Loading dashboard...")
	}

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderCard("Users", m.stats.Users, theme.ColorBlue),
		renderCard("Lessons", m.stats.Lessons, theme.ColorGreen),
		renderCard("Posts", m.stats.Posts, theme.ColorMagenta),
		renderCard("Quizzes", m.stats.Quizzes, theme.ColorYellow),
	)

	return center.Render(cards)
}

// renderCard draws a single bordered counter card.
func renderCard(label string, count int, color lipgloss.AdaptiveColor) string {
	value := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Render(fmt.Sprintf("%d", count))

	name := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(label)

	return theme.PanelStyle.
		Margin(0, 1).
		Align(lipgloss.Center).
		Render(value + "\n" + name)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
