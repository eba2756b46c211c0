package login

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeForm(t *testing.T, m Model, email, password string) Model {
	t.Helper()
	m.fb.email = email
	m.fb.password = password
	m.form.State = huh.StateCompleted
	return m
}

func TestCompletedFormEmitsSubmitOnce(t *testing.T) {
	m := New(80, 24)
	_ = m.Start()
	m = completeForm(t, m, "admin@school.edu", "secret")

	m, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotNil(t, cmd)
	sub, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "admin@school.edu", sub.Email)
	assert.Equal(t, "secret", sub.Password)

	// Messages arriving while the sign-in is in flight must not emit
	// a second submission.
	m, cmd = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestSetErrorRearmsForm(t *testing.T) {
	m := New(80, 24)
	_ = m.Start()
	m = completeForm(t, m, "admin@school.edu", "wrong")

	m, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotNil(t, cmd)
	_, ok := cmd().(SubmitMsg)
	require.True(t, ok)

	_ = m.SetError("incorrect email or password")
	assert.False(t, m.submitted)
	assert.Empty(t, m.fb.password)

	m = completeForm(t, m, "admin@school.edu", "right")
	_, cmd = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotNil(t, cmd)
	sub, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "right", sub.Password)
}

func TestStartResetsFields(t *testing.T) {
	m := New(80, 24)
	_ = m.Start()
	m = completeForm(t, m, "a@b.c", "pw")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	_ = m.Start()
	assert.False(t, m.submitted)
	assert.Empty(t, m.fb.email)
	assert.Empty(t, m.fb.password)
}
