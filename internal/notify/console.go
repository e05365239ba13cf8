// Package notify provides the bundled event listeners: a colored console
// notifier and a JSON-lines file logger.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/astro-sched/astroplan/internal/events"
)

// Color definitions for consistent styling of event output.
var (
	colorAdded    = color.New(color.FgGreen)
	colorRemoved  = color.New(color.FgYellow)
	colorUpdated  = color.New(color.FgCyan)
	colorConflict = color.New(color.FgRed, color.Bold)
	colorFailed   = color.New(color.FgRed)
	colorMuted    = color.New(color.FgWhite, color.Faint)
)

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if the terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// Console prints event notifications to a writer, one line per event.
type Console struct {
	w     io.Writer
	kinds map[events.Kind]bool // nil means every kind
}

// NewConsole creates a console notifier writing to w (os.Stderr when nil).
// When kinds are given the notifier only reports those; otherwise it reports
// everything.
func NewConsole(w io.Writer, kinds ...events.Kind) *Console {
	if w == nil {
		w = os.Stderr
	}
	c := &Console{w: w}
	if len(kinds) > 0 {
		c.kinds = make(map[events.Kind]bool, len(kinds))
		for _, k := range kinds {
			c.kinds[k] = true
		}
	}
	return c
}

// Wants reports whether the notifier is interested in the event kind.
func (c *Console) Wants(k events.Kind) bool {
	if c.kinds == nil {
		return true
	}
	return c.kinds[k]
}

// Handle prints one notification line for the event.
func (c *Console) Handle(e events.Event) {
	stamp := colorMuted.Sprintf("[%s]", e.Timestamp.Format("15:04:05"))
	fmt.Fprintf(c.w, "%s %s %s\n", stamp, symbol(e.Kind), paint(e.Kind, e.Message))
}

// symbol returns a one-character marker for the event kind.
func symbol(k events.Kind) string {
	switch k {
	case events.TaskAdded:
		return "+"
	case events.TaskRemoved:
		return "-"
	case events.TaskUpdated:
		return "~"
	case events.TaskCompleted:
		return "✓"
	case events.TaskConflict:
		return "✗"
	case events.TaskAddFailed, events.TaskUpdateFailed, events.TaskValidationFailed:
		return "!"
	default:
		return "·"
	}
}

// paint colors the message according to the event kind.
func paint(k events.Kind, message string) string {
	switch k {
	case events.TaskAdded, events.TaskCompleted:
		return colorAdded.Sprint(message)
	case events.TaskRemoved:
		return colorRemoved.Sprint(message)
	case events.TaskUpdated:
		return colorUpdated.Sprint(message)
	case events.TaskConflict:
		return colorConflict.Sprint(message)
	case events.TaskAddFailed, events.TaskUpdateFailed, events.TaskValidationFailed:
		return colorFailed.Sprint(message)
	default:
		return colorMuted.Sprint(message)
	}
}
