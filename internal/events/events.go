// Package events implements the notification stream connecting the schedule
// manager to decoupled listeners.
package events

import (
	"time"

	"github.com/astro-sched/astroplan/internal/task"
)

// Kind identifies published event categories. The enumeration is closed;
// listeners can rely on never seeing other values.
type Kind string

const (
	TaskAdded            Kind = "task_added"
	TaskRemoved          Kind = "task_removed"
	TaskUpdated          Kind = "task_updated"
	TaskCompleted        Kind = "task_completed"
	TaskConflict         Kind = "task_conflict"
	TaskAddFailed        Kind = "task_add_failed"
	TaskUpdateFailed     Kind = "task_update_failed"
	TaskValidationFailed Kind = "task_validation_failed"
	ScheduleCleared      Kind = "schedule_cleared"
	ScheduleImported     Kind = "schedule_imported"
	ScheduleExported     Kind = "schedule_exported"
)

// Kinds lists every event kind, in a stable order.
var Kinds = []Kind{
	TaskAdded,
	TaskRemoved,
	TaskUpdated,
	TaskCompleted,
	TaskConflict,
	TaskAddFailed,
	TaskUpdateFailed,
	TaskValidationFailed,
	ScheduleCleared,
	ScheduleImported,
	ScheduleExported,
}

// Valid returns true if the kind is part of the closed enumeration.
func (k Kind) Valid() bool {
	switch k {
	case TaskAdded, TaskRemoved, TaskUpdated, TaskCompleted,
		TaskConflict, TaskAddFailed, TaskUpdateFailed, TaskValidationFailed,
		ScheduleCleared, ScheduleImported, ScheduleExported:
		return true
	default:
		return false
	}
}

// Context is the optional payload attached to an event.
type Context struct {
	Task        *task.Task `json:"task,omitempty"`
	Conflicting *task.Task `json:"conflictingTask,omitempty"`
	Err         string     `json:"errorName,omitempty"`
}

// Event is an immutable notification of a schedule state transition.
// The bus never stores events; listeners that want history keep their own.
type Event struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Context   *Context  `json:"context,omitempty"`
}

// New creates an event stamped with the current time.
func New(kind Kind, message string, ctx *Context) Event {
	return Event{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
		Context:   ctx,
	}
}

// Listener consumes published events. Wants lets a listener declare interest
// in a subset of event kinds; the bus never invokes Handle for kinds the
// listener does not want.
//
// The bus identifies listeners by == for duplicate detection and detach, so
// implementations must be comparable. Listeners carrying uncomparable state
// (funcs, maps, slices) should be registered as pointers.
type Listener interface {
	Handle(Event)
	Wants(Kind) bool
}
