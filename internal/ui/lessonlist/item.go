package lessonlist

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

// lessonItem wraps a model.Lesson so it can be used in a bubbles/list.
type lessonItem struct {
	lesson model.Lesson
}

// FilterValue returns the string used for fuzzy filtering.
func (i lessonItem) FilterValue() string { return i.lesson.Title }

// lessonDelegate renders a single lesson line.
type lessonDelegate struct{}

// Height returns the number of lines each item takes.
func (d lessonDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d lessonDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d lessonDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single lesson line.
func (d lessonDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(lessonItem)
	if !ok {
		return
	}

	lesson := li.lesson

	categoryBadge := ""
	if lesson.Category != "" {
		categoryBadge = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render("["+lesson.Category+"] ")
	}

	likes := ""
	if lesson.Likes > 0 {
		likes = lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(fmt.Sprintf(" ♥%d", lesson.Likes))
	}

	when := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("  " + relativeTime(lesson.CreatedAt))

	line := fmt.Sprintf(
		"%s%s by %s%s%s",
		categoryBadge, lesson.Title, lesson.Instructor, likes, when,
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/24/7))
	}
}
