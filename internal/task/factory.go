package task

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/astro-sched/astroplan/internal/timeutil"
)

// idSeq is the process-wide monotonic counter behind generated IDs.
var idSeq atomic.Uint64

// nextID generates a unique task ID by combining the creation timestamp with
// a monotonic counter. IDs only need to be unique within one run; the
// timestamp keeps them distinct across runs even after a counter reset.
func nextID(now time.Time) string {
	return fmt.Sprintf("task-%d-%d", now.UnixMilli(), idSeq.Add(1))
}

// New validates raw input and produces a well-formed Task with a fresh
// unique identity and completed=false. This is the only sanctioned way to
// obtain a Task with a new ID.
func New(description, start, end, priority string) (*Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	if err := timeutil.ValidateFormat(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if err := timeutil.ValidateFormat(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if err := timeutil.ValidateRange(start, end); err != nil {
		return nil, err
	}

	p, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Task{
		ID:          nextID(now),
		Description: description,
		Start:       start,
		End:         end,
		Priority:    p,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
