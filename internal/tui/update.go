package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/astro-sched/astroplan/internal/task"
)

// feedLimit caps the number of events kept in the footer feed.
const feedLimit = 6

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		m.feed = append(m.feed, msg.event)
		if len(m.feed) > feedLimit {
			m.feed = m.feed[len(m.feed)-feedLimit:]
		}
		return m, waitForEvent(m.feedCh)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.mode == ModeForm {
		return m.handleFormKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.tasks) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}

	case "a":
		m.mode = ModeForm
		m.formFocus = 0
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		m.inputs[0].Focus()
		return m, textinput.Blink

	case "d":
		return m.handleToggleDone()

	case "x":
		return m.handleRemove()

	case "y":
		return m.handleYank()

	case "r":
		m = m.reload()
		m.statusMsg = "Reloaded"
	}

	return m, nil
}

// handleFormKeys handles keys in the add form.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.resetForm()
		return m, nil

	case "tab", "shift+tab", "down", "up":
		if msg.String() == "tab" || msg.String() == "down" {
			m.formFocus = (m.formFocus + 1) % formFields
		} else {
			m.formFocus = (m.formFocus + formFields - 1) % formFields
		}
		for i := range m.inputs {
			if i == m.formFocus {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, textinput.Blink

	case "enter":
		if m.formFocus < formFields-1 {
			return m.handleFormKeys(tea.KeyMsg{Type: tea.KeyTab})
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.formFocus], cmd = m.inputs[m.formFocus].Update(msg)
	return m, cmd
}

// submitForm creates a task from the form values.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	t, err := task.New(
		m.inputs[0].Value(),
		strings.TrimSpace(m.inputs[1].Value()),
		strings.TrimSpace(m.inputs[2].Value()),
		strings.TrimSpace(m.inputs[3].Value()),
	)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	if err := m.manager.Add(t); err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	if err := m.save(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
	} else {
		m.statusMsg = fmt.Sprintf("Added: %s", t.Description)
	}

	m.mode = ModeNormal
	m.resetForm()
	return m.reload(), nil
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.inputs[3].SetValue(string(task.PriorityMedium))
	m.formFocus = 0
}

// handleToggleDone flips the completed flag of the selected task.
func (m Model) handleToggleDone() (tea.Model, tea.Cmd) {
	t := m.taskAtCursor()
	if t == nil {
		m.statusMsg = "No task selected"
		return m, nil
	}

	var err error
	if t.Completed {
		_, err = m.manager.Reopen(t.Description)
	} else {
		_, err = m.manager.Complete(t.Description)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	if err := m.save(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
	}
	return m.reload(), nil
}

// handleRemove removes the selected task.
func (m Model) handleRemove() (tea.Model, tea.Cmd) {
	t := m.taskAtCursor()
	if t == nil {
		m.statusMsg = "No task selected"
		return m, nil
	}

	if _, ok := m.manager.Remove(t.Description); !ok {
		m.statusMsg = "Task already gone"
		return m.reload(), nil
	}

	if err := m.save(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
	} else {
		m.statusMsg = fmt.Sprintf("Removed: %s", t.Description)
	}
	return m.reload(), nil
}

// handleYank copies the selected task line to the clipboard.
func (m Model) handleYank() (tea.Model, tea.Cmd) {
	t := m.taskAtCursor()
	if t == nil {
		m.statusMsg = "No task to copy"
		return m, nil
	}

	line := fmt.Sprintf("%s %s [%s]", t.Interval(), t.Description, t.Priority)
	if err := clipboard.WriteAll(line); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Copied: %s", t.Description)
	return m, nil
}
