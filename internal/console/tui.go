package console

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusRegion identifies which widget receives keyboard input.
type focusRegion int

const (
	focusList focusRegion = iota
	focusTitle
	focusDescription
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	completedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model for the interactive todo session.
type Model struct {
	store *Store

	titleInput textinput.Model
	descInput  textinput.Model

	cursor    int
	focus     focusRegion
	statusMsg string
	statusErr bool
}

// NewModel builds the TUI model around an injected store.
func NewModel(store *Store) Model {
	title := textinput.New()
	title.Placeholder = "Task Title"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Task Description (Optional)"
	desc.CharLimit = 500

	return Model{store: store, titleInput: title, descInput: desc}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.focus == focusList {
		return m.updateList(keyMsg)
	}
	return m.updateInputs(keyMsg)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.store.All()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "a", "tab":
		m.focus = focusTitle
		m.titleInput.Focus()
	case "c":
		if item, found := m.selected(items); found {
			_, _ = m.store.Complete(item.ID)
			m.setStatus(fmt.Sprintf("Task %d marked as completed.", item.ID), false)
		} else {
			m.setStatus("No task selected.", true)
		}
	case "d":
		if item, found := m.selected(items); found {
			_, _ = m.store.Remove(item.ID)
			if m.cursor > 0 {
				m.cursor--
			}
			m.setStatus(fmt.Sprintf("Task %d deleted.", item.ID), false)
		} else {
			m.setStatus("No task selected.", true)
		}
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.blurInputs()
		m.focus = focusList
		return m, nil
	case tea.KeyTab:
		if m.focus == focusTitle {
			m.focus = focusDescription
			m.titleInput.Blur()
			m.descInput.Focus()
		} else {
			m.focus = focusTitle
			m.descInput.Blur()
			m.titleInput.Focus()
		}
		return m, nil
	case tea.KeyEnter:
		title := m.titleInput.Value()
		if title == "" {
			m.setStatus("Task title cannot be empty.", true)
			return m, nil
		}
		item := m.store.Add(title, m.descInput.Value())
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.blurInputs()
		m.focus = focusList
		m.cursor = len(m.store.All()) - 1
		m.setStatus(fmt.Sprintf("Task added: ID %d, Title: '%s'", item.ID, item.Title), false)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	s := headerStyle.Render("Todo") + "\n\n"

	items := m.store.All()
	if len(items) == 0 {
		s += helpStyle.Render("No tasks found.") + "\n"
	}
	for i, item := range items {
		line := fmt.Sprintf("%d. %s [%s]", item.ID, item.Title, item.Status)
		switch {
		case i == m.cursor && m.focus == focusList:
			line = selectedStyle.Render(line)
		case item.Status == StatusCompleted:
			line = completedStyle.Render(line)
		}
		s += line + "\n"
	}

	s += "\n" + m.titleInput.View() + "\n" + m.descInput.View() + "\n"

	if m.statusMsg != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		s += "\n" + style.Render(m.statusMsg) + "\n"
	}

	s += "\n" + helpStyle.Render("a: add  c: complete  d: delete  j/k: move  q: quit") + "\n"
	return s
}

func (m Model) selected(items []Item) (Item, bool) {
	if m.cursor < 0 || m.cursor >= len(items) {
		return Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

func (m *Model) blurInputs() {
	m.titleInput.Blur()
	m.descInput.Blur()
}
