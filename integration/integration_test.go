package integration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/astro-sched/astroplan/internal/db"
	"github.com/astro-sched/astroplan/internal/events"
	"github.com/astro-sched/astroplan/internal/notify"
	"github.com/astro-sched/astroplan/internal/schedule"
	"github.com/astro-sched/astroplan/internal/task"
)

// addTask is a helper to create and schedule a task.
func addTask(t *testing.T, m *schedule.Manager, desc, start, end, priority string) *task.Task {
	t.Helper()
	tsk, err := task.New(desc, start, end, priority)
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	if err := m.Add(tsk); err != nil {
		t.Fatalf("adding task: %v", err)
	}
	return tsk
}

// TestFullLifecycle drives a manager with every listener attached through a
// day of scheduling: adds, a rejected conflict, an update, completion,
// export and a restore into a fresh manager.
func TestFullLifecycle(t *testing.T) {
	tmp := t.TempDir()

	m := schedule.NewManager()

	journal, err := db.Open(filepath.Join(tmp, "events.db"))
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	t.Cleanup(func() { _ = journal.Close() })
	m.Attach(journal)

	filelog, err := notify.OpenFileLog(filepath.Join(tmp, "events.log"))
	if err != nil {
		t.Fatalf("opening event log: %v", err)
	}
	m.Attach(filelog)

	notify.DisableColor()
	t.Cleanup(notify.EnableColor)
	var console bytes.Buffer
	m.Attach(notify.NewConsole(&console))

	// Build the day.
	morning := addTask(t, m, "Morning Exercise", "07:00", "08:00", "high")
	addTask(t, m, "Team Meeting", "09:00", "10:30", "medium")

	// A task over the meeting slot must be rejected.
	clash, err := task.New("Client Call", "10:00", "11:00", "high")
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	var conflict *task.ConflictError
	if err := m.Add(clash); !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.Conflicting.Description != "Team Meeting" {
		t.Errorf("conflict should name the meeting, got %q", conflict.Conflicting.Description)
	}

	// Moving the call after the meeting works.
	clash.Start, clash.End = "10:30", "11:30"
	if err := m.Add(clash); err != nil {
		t.Fatalf("re-adding moved task: %v", err)
	}

	if _, err := m.Complete("Morning Exercise"); err != nil {
		t.Fatalf("completing task: %v", err)
	}

	shorter := "07:45"
	if _, err := m.Update(morning.ID, task.Changeset{End: &shorter}); err != nil {
		t.Fatalf("updating task: %v", err)
	}

	// Export, then restore into a fresh manager.
	exportPath := filepath.Join(tmp, "schedule.json")
	f, err := os.Create(exportPath)
	if err != nil {
		t.Fatalf("creating export: %v", err)
	}
	if err := m.Export(f); err != nil {
		t.Fatalf("exporting: %v", err)
	}
	_ = f.Close()

	restored := schedule.NewManager()
	in, err := os.Open(exportPath)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer func() { _ = in.Close() }()
	if err := restored.Import(in); err != nil {
		t.Fatalf("importing: %v", err)
	}

	if restored.Len() != 3 {
		t.Fatalf("restored %d tasks, want 3", restored.Len())
	}
	got, err := restored.Get(morning.ID)
	if err != nil {
		t.Fatalf("restored schedule lost task: %v", err)
	}
	if !got.Completed || got.End != "07:45" {
		t.Errorf("restored task lost state: completed=%t end=%s", got.Completed, got.End)
	}

	// The journal saw the whole story, including the rejected add.
	entries, err := journal.Recent(context.Background(), 100, string(events.TaskConflict))
	if err != nil {
		t.Fatalf("reading journal: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("journal recorded %d conflicts, want 1", len(entries))
	}
	if entries[0].ConflictingID == "" {
		t.Error("conflict entry must reference the blocking task")
	}

	// The event log and console captured the conflict too.
	if err := filelog.Close(); err != nil {
		t.Fatalf("closing event log: %v", err)
	}
	logData, err := os.ReadFile(filepath.Join(tmp, "events.log"))
	if err != nil {
		t.Fatalf("reading event log: %v", err)
	}
	if !strings.Contains(string(logData), string(events.TaskConflict)) {
		t.Error("event log missing the conflict event")
	}
	if !strings.Contains(console.String(), "Team Meeting") {
		t.Error("console output missing the conflict message")
	}
}

// TestListenerIsolation verifies that one broken listener does not stop
// delivery to the others or break the operation itself.
func TestListenerIsolation(t *testing.T) {
	m := schedule.NewManager()

	m.Attach(panicker{})
	var console bytes.Buffer
	notify.DisableColor()
	t.Cleanup(notify.EnableColor)
	m.Attach(notify.NewConsole(&console))

	addTask(t, m, "Deploy window", "22:00", "23:00", "high")

	if m.Len() != 1 {
		t.Error("operation must survive a panicking listener")
	}
	if !strings.Contains(console.String(), "Deploy window") {
		t.Error("later listener must still receive the event")
	}
}

type panicker struct{}

func (panicker) Wants(events.Kind) bool { return true }
func (panicker) Handle(events.Event)    { panic("broken listener") }
