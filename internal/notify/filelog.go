package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/astro-sched/astroplan/internal/events"
)

// FileLog appends every event as one JSON line to a log file. The bus never
// keeps event history; this listener is how history is persisted.
type FileLog struct {
	mu   sync.Mutex
	file *os.File
	seq  int
}

// OpenFileLog opens (or creates) the log file in append mode, creating
// parent directories as needed.
func OpenFileLog(path string) (*FileLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &FileLog{file: f}, nil
}

// Wants reports interest in every event kind.
func (l *FileLog) Wants(events.Kind) bool { return true }

// Handle appends the event as a JSON line. Write failures are swallowed:
// a broken log must never disturb the schedule operation that triggered it.
func (l *FileLog) Handle(e events.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := struct {
		Seq int `json:"seq"`
		events.Event
	}{Seq: l.seq, Event: e}

	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(l.file, "%s\n", b)
}

// Close closes the underlying log file.
func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
