package tui

import (
	"fmt"
	"strings"

	"github.com/astro-sched/astroplan/internal/task"
)

// View renders the board.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styleTitle.Render("astroplan board"))
	b.WriteString("\n\n")

	if m.mode == ModeForm {
		b.WriteString(m.viewForm())
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewTasks())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(styleStatus.Render(m.statusMsg))
		b.WriteString("\n")
	}

	if len(m.feed) > 0 {
		b.WriteString("\n")
		for _, e := range m.feed {
			line := fmt.Sprintf("%s %s %s", e.Timestamp.Format("15:04:05"), e.Kind, e.Message)
			b.WriteString(styleFeed.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("j/k move · a add · d done · x remove · y yank · r reload · q quit"))
	b.WriteString("\n")

	return b.String()
}

// viewTasks renders the schedule rows.
func (m Model) viewTasks() string {
	if len(m.tasks) == 0 {
		return styleFeed.Render("  No tasks scheduled. Press a to add one.") + "\n"
	}

	var b strings.Builder
	for i, t := range m.tasks {
		marker := "  "
		if i == m.cursor {
			marker = styleCursor.Render("> ")
		}

		status := "○"
		if t.Completed {
			status = "✓"
		}

		line := fmt.Sprintf("%s %s  %s %s", status, t.Interval(), t.Description, priorityTag(t.Priority))
		if t.Completed {
			line = styleDone.Render(line)
		}

		b.WriteString(marker)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// viewForm renders the add form.
func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString("New task\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("tab next field · enter submit · esc cancel"))
	return styleForm.Render(b.String())
}

func priorityTag(p task.Priority) string {
	tag := fmt.Sprintf("[%s]", p)
	switch p {
	case task.PriorityHigh:
		return styleHigh.Render(tag)
	case task.PriorityMedium:
		return styleMedium.Render(tag)
	default:
		return styleLow.Render(tag)
	}
}
