// Package schedule implements the single-resource interval schedule: a
// conflict-checked task collection that publishes lifecycle events.
package schedule

import (
	"github.com/astro-sched/astroplan/internal/task"
)

// FindConflict returns the first task in existing whose [start,end) interval
// overlaps the candidate's, or nil if the candidate fits. A task with the
// candidate's own ID is skipped, which supports update-in-place: a task being
// edited must not conflict with itself.
//
// The scan is O(n) in the order the caller supplies; at the scale of a single
// day's schedule no interval structure is needed. When several tasks
// conflict, which one is returned follows that iteration order.
func FindConflict(candidate *task.Task, existing []*task.Task) *task.Task {
	for _, t := range existing {
		if t.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(t) {
			return t
		}
	}
	return nil
}

// ValidateSet checks that no two distinct tasks in the set overlap, returning
// the first offending pair. Used when importing a whole schedule.
func ValidateSet(tasks []*task.Task) (a, b *task.Task) {
	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			if tasks[i].Overlaps(tasks[j]) {
				return tasks[i], tasks[j]
			}
		}
	}
	return nil, nil
}
