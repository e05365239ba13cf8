// Package tui provides the interactive schedule board.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/astro-sched/astroplan/internal/events"
	"github.com/astro-sched/astroplan/internal/schedule"
	"github.com/astro-sched/astroplan/internal/task"
)

// Mode is the current input mode of the board.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
)

// formFields is the number of inputs in the add form.
const formFields = 4

// Model is the bubbletea model for the schedule board.
type Model struct {
	manager *schedule.Manager
	save    func() error

	tasks  []*task.Task
	cursor int
	mode   Mode

	// Add form inputs: description, start, end, priority.
	inputs    [formFields]textinput.Model
	formFocus int

	// Rolling feed of schedule events, newest last.
	feed   []events.Event
	feedCh chan events.Event

	statusMsg string
	width     int
	height    int
	quitting  bool
}

// New creates a board model over the manager. save persists the schedule
// after each mutation; a nil save disables persistence.
func New(m *schedule.Manager, save func() error) Model {
	if save == nil {
		save = func() error { return nil }
	}

	var inputs [formFields]textinput.Model
	labels := [formFields]string{"Description", "Start (HH:MM)", "End (HH:MM)", "Priority"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 64
		ti.Width = 30
		inputs[i] = ti
	}
	inputs[3].SetValue(string(task.PriorityMedium))

	return Model{
		manager: m,
		save:    save,
		tasks:   m.Tasks(),
		inputs:  inputs,
		feedCh:  make(chan events.Event, 64),
	}
}

// Init starts listening for schedule events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.feedCh)
}

// listener feeds published events into the board's channel. A full channel
// drops the event rather than blocking the publisher.
type listener struct {
	ch chan events.Event
}

func (l listener) Wants(events.Kind) bool { return true }

func (l listener) Handle(e events.Event) {
	select {
	case l.ch <- e:
	default:
	}
}

// eventMsg wraps a schedule event for the update loop.
type eventMsg struct {
	event events.Event
}

// waitForEvent blocks on the feed channel and converts the next event into
// a tea message.
func waitForEvent(ch chan events.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-ch}
	}
}

// taskAtCursor returns the selected task, or nil.
func (m Model) taskAtCursor() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

// reload refreshes the task list and clamps the cursor.
func (m Model) reload() Model {
	m.tasks = m.manager.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}
