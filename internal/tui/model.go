// Package tui is a terminal front end for the task list built on bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JamesPrial/tasklist/internal/render"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeConfirm
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	promptStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
)

// Model is the bubbletea model over one controller.
type Model struct {
	ctrl     *tasklist.Controller
	snapshot tasklist.View

	input  textinput.Model
	editor textinput.Model

	mode    mode
	focus   focusArea
	cursor  int
	editing int
}

// New returns a model showing ctrl's current state with the new-task input
// focused.
func New(ctrl *tasklist.Controller) Model {
	input := textinput.New()
	input.Placeholder = "Add a new task..."
	input.Prompt = "+ "
	input.CharLimit = 500
	input.Focus()

	editor := textinput.New()
	editor.Prompt = "> "
	editor.CharLimit = 500

	return Model{
		ctrl:     ctrl,
		snapshot: ctrl.View(),
		input:    input,
		editor:   editor,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeEdit:
		return m.updateEdit(key)
	case modeConfirm:
		return m.updateConfirm(key)
	}
	if m.focus == focusInput {
		return m.updateInputFocus(key)
	}
	return m.updateListFocus(key)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.mode == modeEdit:
		m.editor, cmd = m.editor.Update(msg)
	case m.focus == focusInput:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInputFocus(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		if _, ok := m.ctrl.Add(m.input.Value()); ok {
			m.input.Reset()
		}
		m.refresh()
		return m, nil
	case "tab":
		m.cycleFilter()
		return m, nil
	case "esc", "down":
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) updateListFocus(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "a", "i":
		m.focus = focusInput
		return m, m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.focus = focusInput
			return m, m.input.Focus()
		}
	case "down", "j":
		if m.cursor < len(m.snapshot.Tasks)-1 {
			m.cursor++
		}
	case "tab":
		m.cycleFilter()
	case "1":
		m.setFilter(tasklist.FilterAll)
	case "2":
		m.setFilter(tasklist.FilterActive)
	case "3":
		m.setFilter(tasklist.FilterCompleted)
	case " ", "x":
		if t, ok := m.selected(); ok {
			m.ctrl.Toggle(t.ID)
			m.refresh()
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.ctrl.Delete(t.ID)
			m.refresh()
		}
	case "e":
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editing = t.ID
			m.editor.SetValue(t.Title)
			m.editor.CursorEnd()
			return m, m.editor.Focus()
		}
	case "C":
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.ctrl.Edit(m.editing, tasklist.Answer(m.editor.Value()))
		m.closeEditor()
		return m, nil
	case "esc":
		m.ctrl.Edit(m.editing, tasklist.Cancelled)
		m.closeEditor()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(key)
	return m, cmd
}

func (m *Model) closeEditor() {
	m.mode = modeNormal
	m.editing = 0
	m.editor.Blur()
	m.editor.Reset()
	m.refresh()
}

func (m Model) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var confirmer tasklist.Confirmer
	switch strings.ToLower(key.String()) {
	case "y", "enter":
		confirmer = tasklist.Accept
	case "n", "esc":
		confirmer = tasklist.Decline
	default:
		return m, nil
	}
	m.ctrl.ClearCompleted(confirmer)
	m.mode = modeNormal
	m.refresh()
	return m, nil
}

func (m *Model) cycleFilter() {
	current := m.snapshot.Filter
	for i, f := range tasklist.Filters {
		if f == current {
			m.setFilter(tasklist.Filters[(i+1)%len(tasklist.Filters)])
			return
		}
	}
	m.setFilter(tasklist.FilterAll)
}

func (m *Model) setFilter(f tasklist.Filter) {
	m.ctrl.SetFilter(f)
	m.cursor = 0
	m.refresh()
}

// refresh pulls a fresh snapshot and keeps the cursor in range.
func (m *Model) refresh() {
	m.snapshot = m.ctrl.View()
	if m.cursor >= len(m.snapshot.Tasks) {
		m.cursor = len(m.snapshot.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (tasklist.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Tasks) {
		return tasklist.Task{}, false
	}
	return m.snapshot.Tasks[m.cursor], true
}

// View renders the screen.
func (m Model) View() string {
	v := m.snapshot
	var b strings.Builder

	b.WriteString(render.HeaderStyle.Render("My Tasks"))
	b.WriteString("\n")
	b.WriteString(render.SubtitleStyle.Render("Stay productive and organized"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(render.FilterBar(v))
	b.WriteString("\n\n")

	if len(v.Tasks) == 0 {
		b.WriteString(render.EmptyStyle.Render(v.EmptyMessage))
		b.WriteString("\n")
	}
	for i, t := range v.Tasks {
		marker := "  "
		if m.focus == focusList && i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(render.TaskLine(t))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeEdit:
		b.WriteString("\n")
		b.WriteString(dialogStyle.Render(promptStyle.Render(tasklist.EditPrompt) + "\n" + m.editor.View()))
		b.WriteString("\n")
	case modeConfirm:
		b.WriteString("\n")
		b.WriteString(dialogStyle.Render(promptStyle.Render(tasklist.ClearCompletedQuery) + " [y/n]"))
		b.WriteString("\n")
	}

	if v.Counts.Completed > 0 {
		b.WriteString("\n")
		b.WriteString(render.ClearLabel(v.Counts.Completed))
		b.WriteString(" (C)\n")
	}
	b.WriteString("\n")
	b.WriteString(render.Stats(v.Counts))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) help() string {
	switch {
	case m.mode == modeEdit:
		return "enter save • esc cancel"
	case m.mode == modeConfirm:
		return "y confirm • n cancel"
	case m.focus == focusInput:
		return "enter add • tab filter • esc list • ctrl+c quit"
	default:
		return fmt.Sprintf("space toggle • e edit • d delete • C clear • 1-3 filter • a add • q quit (%d shown)", len(m.snapshot.Tasks))
	}
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(ctrl *tasklist.Controller, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(New(ctrl), opts...).Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
