// Package task defines the core domain types for astroplan.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/astro-sched/astroplan/internal/timeutil"
)

// Validation errors.
var (
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidPriority  = errors.New("priority must be 'low', 'medium' or 'high'")
)

// Domain errors.
var (
	ErrConflict = errors.New("time interval conflicts with existing task")
	ErrNotFound = errors.New("task not found")
)

// Priority represents the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid returns true if the priority is a valid value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority parses a priority string, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w, got %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// Task represents one scheduled activity in a single-day schedule.
// Instances with fresh identities are obtained through New; the schedule
// manager hands out copies, never live references to stored state.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Start       string    `json:"startTime"` // "HH:MM"
	End         string    `json:"endTime"`   // "HH:MM"
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate re-checks the structural invariants of the task: non-empty
// description, well-formed times, start strictly before end, known priority.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if err := timeutil.ValidateFormat(t.Start); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := timeutil.ValidateFormat(t.End); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if err := timeutil.ValidateRange(t.Start, t.End); err != nil {
		return err
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w, got %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Overlaps reports whether this task's [start,end) interval intersects
// another task's interval. Touching boundaries do not overlap.
func (t *Task) Overlaps(other *Task) bool {
	if other == nil {
		return false
	}
	return timeutil.Overlaps(t.Start, t.End, other.Start, other.End)
}

// Duration returns the task duration in minutes, or 0 for malformed times.
func (t *Task) Duration() int {
	start, err1 := timeutil.ToMinutes(t.Start)
	end, err2 := timeutil.ToMinutes(t.End)
	if err1 != nil || err2 != nil {
		return 0
	}
	return end - start
}

// Interval returns the task's time bounds as a "HH:MM-HH:MM" string.
func (t *Task) Interval() string {
	return t.Start + "-" + t.End
}

// Changeset is a sparse set of field updates applied atomically to a task.
// Nil fields are left untouched.
type Changeset struct {
	Description *string
	Start       *string
	End         *string
	Priority    *Priority
}

// Empty returns true if the changeset carries no updates.
func (c Changeset) Empty() bool {
	return c.Description == nil && c.Start == nil && c.End == nil && c.Priority == nil
}

// Apply copies the task, overlays the present fields and returns the trial
// result. The receiver task is never modified.
func (c Changeset) Apply(t *Task) *Task {
	trial := t.Clone()
	if c.Description != nil {
		trial.Description = *c.Description
	}
	if c.Start != nil {
		trial.Start = *c.Start
	}
	if c.End != nil {
		trial.End = *c.End
	}
	if c.Priority != nil {
		trial.Priority = *c.Priority
	}
	return trial
}

// ConflictError reports that a candidate task's interval overlaps a task
// already present in the schedule.
type ConflictError struct {
	Candidate   *Task
	Conflicting *Task
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %q (%s) conflicts with %q (%s)",
		ErrConflict,
		e.Candidate.Description, e.Candidate.Interval(),
		e.Conflicting.Description, e.Conflicting.Interval(),
	)
}

// Unwrap allows errors.Is(err, ErrConflict) to match.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
