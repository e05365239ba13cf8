package notify

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/astro-sched/astroplan/internal/events"
	"github.com/astro-sched/astroplan/internal/task"
)

func TestConsole_Handle(t *testing.T) {
	DisableColor()
	t.Cleanup(EnableColor)

	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Handle(events.Event{
		Kind:      events.TaskAdded,
		Message:   `task "EVA prep" scheduled 09:00-10:00`,
		Timestamp: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
	})

	out := buf.String()
	if !strings.Contains(out, "[09:00:00]") {
		t.Errorf("output missing timestamp: %q", out)
	}
	if !strings.Contains(out, "+ ") {
		t.Errorf("output missing kind symbol: %q", out)
	}
	if !strings.Contains(out, "EVA prep") {
		t.Errorf("output missing message: %q", out)
	}
}

func TestConsole_Wants(t *testing.T) {
	t.Run("default wants everything", func(t *testing.T) {
		c := NewConsole(&bytes.Buffer{})
		for _, k := range events.Kinds {
			if !c.Wants(k) {
				t.Errorf("default console should want %s", k)
			}
		}
	})

	t.Run("restricted set", func(t *testing.T) {
		c := NewConsole(&bytes.Buffer{}, events.TaskConflict, events.TaskAddFailed)
		if !c.Wants(events.TaskConflict) {
			t.Error("should want task_conflict")
		}
		if c.Wants(events.TaskAdded) {
			t.Error("should not want task_added")
		}
	})
}

func TestFileLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.log")

	l, err := OpenFileLog(path)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}

	tk := &task.Task{ID: "task-1", Description: "Dock check", Start: "09:00", End: "10:00", Priority: task.PriorityLow}
	l.Handle(events.New(events.TaskAdded, "added", &events.Context{Task: tk}))
	l.Handle(events.New(events.TaskRemoved, "removed", &events.Context{Task: tk}))

	if err := l.Close(); err != nil {
		t.Fatalf("closing log: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	defer func() { _ = f.Close() }()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, entry)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanning log: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2", len(lines))
	}
	if lines[0]["kind"] != "task_added" || lines[1]["kind"] != "task_removed" {
		t.Errorf("unexpected kinds: %v, %v", lines[0]["kind"], lines[1]["kind"])
	}
	if lines[0]["seq"].(float64) != 1 || lines[1]["seq"].(float64) != 2 {
		t.Error("seq must increase per entry")
	}
	ctx, ok := lines[0]["context"].(map[string]any)
	if !ok {
		t.Fatal("entry missing context payload")
	}
	taskPayload, ok := ctx["task"].(map[string]any)
	if !ok || taskPayload["id"] != "task-1" {
		t.Error("context must carry the task")
	}
}

func TestFileLog_AppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")

	for n := 0; n < 2; n++ {
		l, err := OpenFileLog(path)
		if err != nil {
			t.Fatalf("opening log: %v", err)
		}
		l.Handle(events.New(events.ScheduleCleared, "cleared", nil))
		if err := l.Close(); err != nil {
			t.Fatalf("closing log: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("got %d lines, want 2 (append mode)", got)
	}
}
