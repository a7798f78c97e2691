package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/api"
	"tasklist/internal/errors"
)

const title = "Task List"

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// activateMsg asks the model to reload the list from the store
type activateMsg struct{}

// Model is the single-screen task list
type Model struct {
	ctx     context.Context
	list    api.TaskList
	cursor  int
	mode    mode
	input   textinput.Model
	status  string
	failed  bool
	editRow int
}

// New creates the list screen over list
func New(ctx context.Context, list api.TaskList, charLimit int) Model {
	ti := textinput.New()
	ti.CharLimit = charLimit
	ti.Width = 40

	return Model{
		ctx:    ctx,
		list:   list,
		mode:   modeList,
		input:  ti,
		status: "Press 'a' to add, 'e' to edit, 'd' to delete.",
	}
}

// Run shows the list screen until the user quits
func Run(ctx context.Context, list api.TaskList, charLimit int) error {
	program := tea.NewProgram(New(ctx, list, charLimit), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return activateMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activateMsg:
		if err := m.list.Activate(m.ctx); err != nil {
			m.setError("load failed", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, m.list.Count())
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateDialog(msg)
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	count := m.list.Count()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, count)
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, count)
	case "r":
		return m, func() tea.Msg { return activateMsg{} }
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "Name"
		m.input.SetValue("")
		m.input.Focus()
		m.setInfo("New Name")
	case "e":
		task, err := m.list.At(m.cursor)
		if err != nil {
			m.setInfo("No task selected")
			return m, nil
		}
		m.mode = modeEdit
		m.editRow = m.cursor
		m.input.Placeholder = "Name"
		m.input.SetValue(task.String())
		m.input.CursorEnd()
		m.input.Focus()
		m.setInfo("Edit Name")
	case "d":
		if count == 0 {
			m.setInfo("No task selected")
			return m, nil
		}
		task, _ := m.list.At(m.cursor)
		err := m.list.Delete(m.ctx, m.cursor)
		m.cursor = clampCursor(m.cursor, m.list.Count())
		if err != nil {
			m.setError("delete failed", err)
			return m, nil
		}
		m.setInfo(fmt.Sprintf("Deleted %q", task.String()))
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeDialog()
		m.setInfo("Cancelled")
		return m, nil
	case "enter":
		if m.mode == modeAdd {
			return m.saveNew()
		}
		return m.saveEdit()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveNew() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.closeDialog()
		m.setInfo("Nothing added")
		return m, nil
	}

	task, err := m.list.Add(m.ctx, text)
	m.closeDialog()
	if err != nil {
		m.setError("save failed", err)
		return m, nil
	}
	m.cursor = clampCursor(m.list.Count()-1, m.list.Count())
	m.setInfo(fmt.Sprintf("Added %q", task.String()))
	return m, nil
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	task, err := m.list.Rename(m.ctx, m.editRow, m.input.Value())
	m.closeDialog()
	if err != nil {
		m.setError("save failed", err)
		return m, nil
	}
	m.setInfo(fmt.Sprintf("Renamed to %q", task.String()))
	return m, nil
}

func (m *Model) closeDialog() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) setInfo(status string) {
	m.status = status
	m.failed = false
}

func (m *Model) setError(prefix string, err error) {
	m.status = fmt.Sprintf("%s: %s", prefix, errors.GetUserMessage(err))
	m.failed = true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	items := m.list.Items()
	if len(items) == 0 {
		b.WriteString(emptyStyle.Render("No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	}
	for i, task := range items {
		line := "  " + task.String()
		if i == m.cursor && m.mode == modeList {
			line = selectedStyle.Render("> " + task.String())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.mode != modeList {
		heading := "New Name"
		if m.mode == modeEdit {
			heading = "Edit Name"
		}
		b.WriteString("\n")
		b.WriteString(dialogStyle.Render(heading + "\n" + m.input.View() + "\n" + helpStyle.Render("enter save • esc cancel")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/k ↓/j move • a add • e edit • d delete • r reload • q quit"))
	return b.String()
}

func clampCursor(cursor, count int) int {
	if count == 0 || cursor < 0 {
		return 0
	}
	if cursor >= count {
		return count - 1
	}
	return cursor
}
