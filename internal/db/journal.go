// Package db provides the SQLite-backed event journal.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/astro-sched/astroplan/internal/events"
)

// Journal is an event listener that appends every published event to a
// SQLite database, giving the CLI a queryable history. The bus itself never
// stores events.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates a new journal at path and runs migrations. Parent
// directories are created as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	j := &Journal{db: db, logger: slog.Default()}
	if err := j.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return j, nil
}

// migrate runs database migrations.
func (j *Journal) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			kind             TEXT NOT NULL,
			message          TEXT NOT NULL,
			occurred_at      DATETIME NOT NULL,
			task_id          TEXT,
			task_description TEXT,
			conflicting_id   TEXT,
			error_name       TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
		CREATE INDEX IF NOT EXISTS idx_events_occurred ON events(occurred_at);
	`

	if _, err := j.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}

// Wants reports interest in every event kind.
func (j *Journal) Wants(events.Kind) bool { return true }

// Handle appends the event to the journal. Insert failures are logged, not
// propagated: a broken journal must never disturb the triggering operation.
func (j *Journal) Handle(e events.Event) {
	var taskID, taskDescription, conflictingID, errorName sql.NullString
	if e.Context != nil {
		if e.Context.Task != nil {
			taskID = sql.NullString{String: e.Context.Task.ID, Valid: true}
			taskDescription = sql.NullString{String: e.Context.Task.Description, Valid: true}
		}
		if e.Context.Conflicting != nil {
			conflictingID = sql.NullString{String: e.Context.Conflicting.ID, Valid: true}
		}
		if e.Context.Err != "" {
			errorName = sql.NullString{String: e.Context.Err, Valid: true}
		}
	}

	query := `
		INSERT INTO events (kind, message, occurred_at, task_id, task_description, conflicting_id, error_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := j.db.Exec(query,
		string(e.Kind),
		e.Message,
		e.Timestamp.Format(time.RFC3339Nano),
		taskID,
		taskDescription,
		conflictingID,
		errorName,
	)
	if err != nil {
		j.logger.Error("journaling event failed", "kind", string(e.Kind), "error", err)
	}
}

// Entry is one journaled event.
type Entry struct {
	ID              int64
	Kind            events.Kind
	Message         string
	OccurredAt      time.Time
	TaskID          string
	TaskDescription string
	ConflictingID   string
	ErrorName       string
}

// Recent returns the most recent journal entries, newest first. A non-empty
// kind restricts the result to that event kind.
func (j *Journal) Recent(ctx context.Context, limit int, kind string) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, kind, message, occurred_at, task_id, task_description, conflicting_id, error_name
		FROM events
	`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			occurredAt string
			taskID     sql.NullString
			taskDesc   sql.NullString
			conflictID sql.NullString
			errorName  sql.NullString
		)

		err := rows.Scan(
			&entry.ID,
			&entry.Kind,
			&entry.Message,
			&occurredAt,
			&taskID,
			&taskDesc,
			&conflictID,
			&errorName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}

		entry.OccurredAt, err = time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parsing occurred at: %w", err)
		}

		entry.TaskID = taskID.String
		entry.TaskDescription = taskDesc.String
		entry.ConflictingID = conflictID.String
		entry.ErrorName = errorName.String

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return entries, nil
}

// Close releases database resources.
func (j *Journal) Close() error {
	return j.db.Close()
}
