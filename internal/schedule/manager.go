package schedule

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/astro-sched/astroplan/internal/events"
	"github.com/astro-sched/astroplan/internal/task"
	"github.com/astro-sched/astroplan/internal/timeutil"
)

// Manager owns the authoritative task collection for one actor and enforces
// the no-overlap invariant on every mutation. It is the event subject: every
// state transition is published to the attached listeners.
//
// Every mutating operation runs its check-then-act sequence under one lock,
// so the invariant holds even under concurrent callers. Callers always
// receive copies of stored tasks, never live references.
type Manager struct {
	mu    sync.Mutex
	tasks map[string]*task.Task
	bus   *events.Bus
}

// NewManager creates an empty schedule manager with its own event bus.
func NewManager() *Manager {
	return &Manager{
		tasks: make(map[string]*task.Task),
		bus:   events.NewBus(nil),
	}
}

// Attach registers a listener on the manager's event bus. Duplicate attaches
// are no-ops; the return value reports whether the listener was newly added.
func (m *Manager) Attach(l events.Listener) bool {
	return m.bus.Attach(l)
}

// Detach removes a listener. Unknown listeners are ignored.
func (m *Manager) Detach(l events.Listener) {
	m.bus.Detach(l)
}

// Add inserts a task produced by the factory. On conflict the task is not
// stored: a task_conflict event is published and a ConflictError carrying
// the conflicting task is returned. Structural validity is re-checked
// defensively even though the factory already guarantees it.
func (m *Manager) Add(t *task.Task) error {
	if t == nil {
		return errors.New("nil task")
	}

	m.mu.Lock()
	if err := t.Validate(); err != nil {
		m.mu.Unlock()
		m.publish(events.TaskAddFailed,
			fmt.Sprintf("cannot add task %q: %v", t.Description, err),
			&events.Context{Task: t.Clone(), Err: errorName(err)})
		return err
	}
	if _, exists := m.tasks[t.ID]; exists {
		m.mu.Unlock()
		err := fmt.Errorf("task %s already scheduled", t.ID)
		m.publish(events.TaskAddFailed,
			fmt.Sprintf("cannot add task %q: duplicate id", t.Description),
			&events.Context{Task: t.Clone(), Err: errorName(err)})
		return err
	}
	if c := FindConflict(t, m.sortedLocked()); c != nil {
		conflicting := c.Clone()
		m.mu.Unlock()
		candidate := t.Clone()
		m.publish(events.TaskConflict,
			fmt.Sprintf("task %q (%s) conflicts with %q (%s)",
				candidate.Description, candidate.Interval(),
				conflicting.Description, conflicting.Interval()),
			&events.Context{Task: candidate, Conflicting: conflicting})
		return &task.ConflictError{Candidate: candidate, Conflicting: conflicting}
	}

	stored := t.Clone()
	m.tasks[stored.ID] = stored
	added := stored.Clone()
	m.mu.Unlock()

	m.publish(events.TaskAdded,
		fmt.Sprintf("task %q scheduled %s", added.Description, added.Interval()),
		&events.Context{Task: added})
	return nil
}

// Remove deletes the first task whose description matches, comparing
// case-insensitively in start-time order. An absent description is a normal
// negative outcome: no event is published and ok is false.
func (m *Manager) Remove(description string) (removed *task.Task, ok bool) {
	m.mu.Lock()
	stored := m.findByDescriptionLocked(description)
	if stored == nil {
		m.mu.Unlock()
		return nil, false
	}
	delete(m.tasks, stored.ID)
	removed = stored.Clone()
	m.mu.Unlock()

	m.publish(events.TaskRemoved,
		fmt.Sprintf("task %q removed", removed.Description),
		&events.Context{Task: removed})
	return removed, true
}

// Update applies a changeset to the task with the given ID. The change is
// all-or-nothing: a trial copy is validated and conflict-checked against all
// other stored tasks, and on any failure the stored task is left unmodified.
func (m *Manager) Update(id string, cs task.Changeset) (*task.Task, error) {
	m.mu.Lock()
	stored, exists := m.tasks[id]
	if !exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}

	trial := cs.Apply(stored)
	if err := trial.Validate(); err != nil {
		m.mu.Unlock()
		m.publish(events.TaskValidationFailed,
			fmt.Sprintf("cannot update task %q: %v", trial.Description, err),
			&events.Context{Task: trial, Err: errorName(err)})
		return nil, err
	}
	if c := FindConflict(trial, m.sortedLocked()); c != nil {
		conflicting := c.Clone()
		m.mu.Unlock()
		m.publish(events.TaskUpdateFailed,
			fmt.Sprintf("cannot move task %q to %s: conflicts with %q (%s)",
				trial.Description, trial.Interval(),
				conflicting.Description, conflicting.Interval()),
			&events.Context{Task: trial, Conflicting: conflicting})
		return nil, &task.ConflictError{Candidate: trial, Conflicting: conflicting}
	}

	*stored = *trial
	stored.UpdatedAt = time.Now()
	updated := stored.Clone()
	m.mu.Unlock()

	m.publish(events.TaskUpdated,
		fmt.Sprintf("task %q updated (%s)", updated.Description, updated.Interval()),
		&events.Context{Task: updated})
	return updated, nil
}

// Complete marks the first task matching the description as completed.
// Completion does not alter time bounds, so no conflict check is needed.
func (m *Manager) Complete(description string) (*task.Task, error) {
	return m.setCompleted(description, true)
}

// Reopen clears the completed flag of the first task matching the
// description.
func (m *Manager) Reopen(description string) (*task.Task, error) {
	return m.setCompleted(description, false)
}

func (m *Manager) setCompleted(description string, completed bool) (*task.Task, error) {
	m.mu.Lock()
	stored := m.findByDescriptionLocked(description)
	if stored == nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", task.ErrNotFound, description)
	}
	stored.Completed = completed
	stored.UpdatedAt = time.Now()
	changed := stored.Clone()
	m.mu.Unlock()

	if completed {
		m.publish(events.TaskCompleted,
			fmt.Sprintf("task %q completed", changed.Description),
			&events.Context{Task: changed})
	} else {
		m.publish(events.TaskUpdated,
			fmt.Sprintf("task %q reopened", changed.Description),
			&events.Context{Task: changed})
	}
	return changed, nil
}

// Get returns a copy of the task with the given ID.
func (m *Manager) Get(id string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.tasks[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}
	return stored.Clone(), nil
}

// Tasks returns copies of all tasks sorted ascending by start time.
func (m *Manager) Tasks() []*task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.sortedLocked())
}

// TasksByPriority returns copies of the tasks with the given priority,
// sorted ascending by start time.
func (m *Manager) TasksByPriority(p task.Priority) []*task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*task.Task
	for _, t := range m.sortedLocked() {
		if t.Priority == p {
			out = append(out, t.Clone())
		}
	}
	return out
}

// TasksInRange returns copies of the tasks whose interval overlaps
// [start,end), sorted ascending by start time.
func (m *Manager) TasksInRange(start, end string) ([]*task.Task, error) {
	if err := timeutil.ValidateFormat(start); err != nil {
		return nil, err
	}
	if err := timeutil.ValidateFormat(end); err != nil {
		return nil, err
	}
	if err := timeutil.ValidateRange(start, end); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*task.Task
	for _, t := range m.sortedLocked() {
		if timeutil.Overlaps(t.Start, t.End, start, end) {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

// Len returns the number of stored tasks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Clear empties the schedule.
func (m *Manager) Clear() {
	m.mu.Lock()
	n := len(m.tasks)
	m.tasks = make(map[string]*task.Task)
	m.mu.Unlock()

	m.publish(events.ScheduleCleared,
		fmt.Sprintf("schedule cleared (%d tasks dropped)", n), nil)
}

// findByDescriptionLocked returns the first stored task whose description
// matches case-insensitively, in start-time order so the match is
// deterministic when two tasks share a description.
func (m *Manager) findByDescriptionLocked(description string) *task.Task {
	for _, t := range m.sortedLocked() {
		if strings.EqualFold(t.Description, description) {
			return t
		}
	}
	return nil
}

// sortedLocked returns the stored tasks sorted ascending by start time.
// Callers must hold m.mu; the returned slice aliases stored tasks.
func (m *Manager) sortedLocked() []*task.Task {
	out := make([]*task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b *task.Task) int {
		return timeutil.Compare(a.Start, b.Start)
	})
	return out
}

func cloneAll(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func (m *Manager) publish(kind events.Kind, message string, ctx *events.Context) {
	m.bus.Publish(events.New(kind, message, ctx))
}

// errorName maps an operational error to its taxonomy name, carried in the
// event context payload.
func errorName(err error) string {
	switch {
	case errors.Is(err, task.ErrEmptyDescription):
		return "InvalidDescription"
	case errors.Is(err, timeutil.ErrInvalidTimeFormat):
		return "InvalidTimeFormat"
	case errors.Is(err, timeutil.ErrInvalidTimeRange):
		return "InvalidTimeRange"
	case errors.Is(err, task.ErrInvalidPriority):
		return "InvalidPriority"
	case errors.Is(err, task.ErrConflict):
		return "ConflictError"
	case errors.Is(err, task.ErrNotFound):
		return "NotFoundError"
	default:
		return "Error"
	}
}
