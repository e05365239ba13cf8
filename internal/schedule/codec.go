package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/astro-sched/astroplan/internal/events"
	"github.com/astro-sched/astroplan/internal/task"
)

// Export writes the schedule as an ordered JSON array of task records,
// sorted by start time. Times are "HH:MM" strings and timestamps RFC 3339.
func (m *Manager) Export(w io.Writer) error {
	snapshot := m.Tasks()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	m.publish(events.ScheduleExported,
		fmt.Sprintf("schedule exported (%d tasks)", len(snapshot)), nil)
	return nil
}

// Import replaces the entire schedule with the records read from r. The
// import is all-or-nothing: every record is re-validated and the whole set
// is checked for pairwise overlap before anything is committed, so any
// failure leaves the previous schedule intact.
func (m *Manager) Import(r io.Reader) error {
	var records []*task.Task
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		err = fmt.Errorf("decoding schedule: %w", err)
		m.publish(events.TaskValidationFailed, err.Error(),
			&events.Context{Err: errorName(err)})
		return err
	}

	seen := make(map[string]bool, len(records))
	for _, t := range records {
		// A JSON null in the array decodes without error as a nil record.
		if t == nil {
			err := errors.New("imported schedule contains a null record")
			m.publish(events.TaskValidationFailed, err.Error(),
				&events.Context{Err: errorName(err)})
			return err
		}
		if t.ID == "" {
			err := fmt.Errorf("imported task %q has no id", t.Description)
			m.publish(events.TaskValidationFailed, err.Error(),
				&events.Context{Task: t.Clone(), Err: errorName(err)})
			return err
		}
		if seen[t.ID] {
			err := fmt.Errorf("imported schedule has duplicate task id %s", t.ID)
			m.publish(events.TaskValidationFailed, err.Error(),
				&events.Context{Task: t.Clone(), Err: errorName(err)})
			return err
		}
		seen[t.ID] = true

		if err := t.Validate(); err != nil {
			err = fmt.Errorf("imported task %q: %w", t.Description, err)
			m.publish(events.TaskValidationFailed, err.Error(),
				&events.Context{Task: t.Clone(), Err: errorName(err)})
			return err
		}
	}

	if a, b := ValidateSet(records); a != nil {
		conflictErr := &task.ConflictError{Candidate: b.Clone(), Conflicting: a.Clone()}
		m.publish(events.TaskValidationFailed,
			fmt.Sprintf("imported schedule is inconsistent: %v", conflictErr),
			&events.Context{Task: b.Clone(), Conflicting: a.Clone(), Err: errorName(conflictErr)})
		return conflictErr
	}

	fresh := make(map[string]*task.Task, len(records))
	for _, t := range records {
		fresh[t.ID] = t.Clone()
	}

	m.mu.Lock()
	m.tasks = fresh
	m.mu.Unlock()

	m.publish(events.ScheduleImported,
		fmt.Sprintf("schedule imported (%d tasks)", len(records)), nil)
	return nil
}
