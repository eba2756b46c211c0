package lessonlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/lms-console/internal/keys"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/theme"
)

// LessonsLoadedMsg is sent when the lesson catalog has been fetched.
type LessonsLoadedMsg struct {
	Lessons []model.Lesson
	Err     error
}

// LikeRequestMsg asks the root model to like the given lesson.
type LikeRequestMsg struct {
	LessonID string
}

// likeKey toggles a like on the focused lesson.
var likeKey = key.NewBinding(
	key.WithKeys("l"),
	key.WithHelp("l", "like"),
)

// Model is the lesson catalog list view.
type Model struct {
	list    list.Model
	keys    *keys.KeyMap
	errText string
	width   int
	height  int
}

// New creates a new lesson list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, lessonDelegate{}, width, height-2)
	l.Title = "Lessons"
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

// Update handles messages for the lesson list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LessonsLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		items := make([]list.Item, len(msg.Lessons))
		for i, lesson := range msg.Lessons {
			items[i] = lessonItem{lesson: lesson}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, likeKey) {
			item, ok := m.list.SelectedItem().(lessonItem)
			if !ok {
				return m, nil
			}
			id := item.lesson.ID
			return m, func() tea.Msg {
				return LikeRequestMsg{LessonID: id}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedLesson returns the currently focused lesson, if any.
func (m Model) SelectedLesson() (model.Lesson, bool) {
	item, ok := m.list.SelectedItem().(lessonItem)
	if !ok {
		return model.Lesson{}, false
	}
	return item.lesson, true
}

// View renders the lesson list.
func (m Model) View() string {
	if m.errText != "" {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.ErrorStyle.Render(m.errText))
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No lessons published yet.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
