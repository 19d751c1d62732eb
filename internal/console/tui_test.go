package console

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m tea.Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next
}

func TestTUIAddTaskFlow(t *testing.T) {
	t.Parallel()

	store := NewStore()
	m := NewModel(store)

	// 'a' moves focus to the title input
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Equal(t, focusTitle, m.focus)

	m = typeString(t, m, "Buy milk")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	items := store.All()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Title)
	assert.Equal(t, focusList, m.focus)
	assert.Contains(t, m.statusMsg, "Task added")
	assert.False(t, m.statusErr)
}

func TestTUIRejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	store := NewStore()
	m := NewModel(store)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, store.All())
	assert.True(t, m.statusErr)
}

func TestTUICompleteAndDeleteSelected(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Add("first", "")
	store.Add("second", "")
	m := NewModel(store)

	// move to the second item and complete it
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.Equal(t, StatusCompleted, store.All()[1].Status)
	assert.Contains(t, m.statusMsg, "completed")

	// delete it
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	items := store.All()
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Title)
	assert.Contains(t, m.statusMsg, "deleted")
}

func TestTUIQuitKeys(t *testing.T) {
	t.Parallel()

	m := NewModel(NewStore())

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, isQuit = cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestTUIView(t *testing.T) {
	t.Parallel()

	store := NewStore()
	m := NewModel(store)
	assert.Contains(t, m.View(), "No tasks found.")

	store.Add("visible item", "")
	view := m.View()
	assert.Contains(t, view, "visible item")
	assert.Contains(t, view, "pending")
}
