package schedule

import (
	"github.com/astro-sched/astroplan/internal/timeutil"
)

// Slot is a free interval of the day, half-open like task intervals.
type Slot struct {
	Start string
	End   string
}

// Minutes returns the slot length in minutes.
func (s Slot) Minutes() int {
	start, err := timeutil.ToMinutes(s.Start)
	if err != nil {
		return 0
	}
	end, err := timeutil.ToMinutes(s.End)
	if err != nil {
		return 0
	}
	return end - start
}

// Gaps returns the free slots within [start, end) not covered by any task,
// sorted ascending. Tasks partially outside the window only shrink the gaps
// they actually touch.
func (m *Manager) Gaps(start, end string) ([]Slot, error) {
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
	sorted := m.sortedLocked()
	free := make([]Slot, 0, len(sorted)+1)
	cursor := start
	for _, t := range sorted {
		if !timeutil.Overlaps(t.Start, t.End, cursor, end) {
			continue
		}
		if timeutil.Compare(cursor, t.Start) < 0 {
			free = append(free, Slot{Start: cursor, End: t.Start})
		}
		if timeutil.Compare(t.End, cursor) > 0 {
			cursor = t.End
		}
	}
	m.mu.Unlock()

	if timeutil.Compare(cursor, end) < 0 {
		free = append(free, Slot{Start: cursor, End: end})
	}
	return free, nil
}

// NextFit returns the earliest free slot within [start, end) that can hold a
// task of the given duration in minutes. ok is false when nothing fits.
func (m *Manager) NextFit(start, end string, minutes int) (Slot, bool, error) {
	if minutes <= 0 {
		return Slot{}, false, nil
	}

	free, err := m.Gaps(start, end)
	if err != nil {
		return Slot{}, false, err
	}
	for _, s := range free {
		if s.Minutes() >= minutes {
			return s, true, nil
		}
	}
	return Slot{}, false, nil
}

// Suggest returns a concrete interval of the given duration placed at the
// head of the earliest fitting slot, ready to hand to the task factory.
func (m *Manager) Suggest(start, end string, minutes int) (Slot, bool, error) {
	slot, ok, err := m.NextFit(start, end, minutes)
	if err != nil || !ok {
		return Slot{}, ok, err
	}

	from, err := timeutil.ToMinutes(slot.Start)
	if err != nil {
		return Slot{}, false, err
	}
	return Slot{
		Start: slot.Start,
		End:   timeutil.MinutesToClock(from + minutes),
	}, true, nil
}
