package schedule

import (
	"testing"

	"github.com/astro-sched/astroplan/internal/timeutil"
)

func gapManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager()
	for _, seed := range []struct{ desc, start, end string }{
		{"Morning briefing", "09:00", "09:30"},
		{"Systems check", "10:00", "11:30"},
		{"Lunch", "12:00", "13:00"},
	} {
		if err := m.Add(newTask(t, seed.desc, seed.start, seed.end, "medium")); err != nil {
			t.Fatalf("adding %q: %v", seed.desc, err)
		}
	}
	return m
}

func TestManager_Gaps(t *testing.T) {
	m := gapManager(t)

	tests := []struct {
		name       string
		start, end string
		want       []Slot
	}{
		{
			name:  "full day",
			start: "08:00", end: "14:00",
			want: []Slot{
				{"08:00", "09:00"},
				{"09:30", "10:00"},
				{"11:30", "12:00"},
				{"13:00", "14:00"},
			},
		},
		{
			name:  "window starts inside a task",
			start: "09:15", end: "12:00",
			want: []Slot{
				{"09:30", "10:00"},
				{"11:30", "12:00"},
			},
		},
		{
			name:  "window fully covered by a task",
			start: "10:15", end: "11:00",
			want: nil,
		},
		{
			name:  "window after all tasks",
			start: "14:00", end: "16:00",
			want: []Slot{{"14:00", "16:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Gaps(tt.start, tt.end)
			if err != nil {
				t.Fatalf("gaps: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d gaps %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("gap %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	t.Run("empty schedule is one big gap", func(t *testing.T) {
		got, err := NewManager().Gaps("09:00", "17:00")
		if err != nil {
			t.Fatalf("gaps: %v", err)
		}
		if len(got) != 1 || got[0] != (Slot{"09:00", "17:00"}) {
			t.Errorf("got %v, want the whole window", got)
		}
	})

	t.Run("invalid window", func(t *testing.T) {
		if _, err := m.Gaps("17:00", "09:00"); err == nil {
			t.Error("inverted window must be rejected")
		}
		if _, err := m.Gaps("9am", "17:00"); err == nil {
			t.Error("malformed start must be rejected")
		}
	})
}

func TestManager_NextFit(t *testing.T) {
	m := gapManager(t)

	t.Run("picks the earliest fitting gap", func(t *testing.T) {
		slot, ok, err := m.NextFit("09:00", "14:00", 45)
		if err != nil {
			t.Fatalf("next fit: %v", err)
		}
		if !ok || slot != (Slot{"13:00", "14:00"}) {
			t.Errorf("got %v ok=%t, want 13:00-14:00", slot, ok)
		}
	})

	t.Run("short task fits earlier", func(t *testing.T) {
		slot, ok, err := m.NextFit("09:00", "14:00", 30)
		if err != nil {
			t.Fatalf("next fit: %v", err)
		}
		if !ok || slot != (Slot{"09:30", "10:00"}) {
			t.Errorf("got %v ok=%t, want 09:30-10:00", slot, ok)
		}
	})

	t.Run("nothing fits", func(t *testing.T) {
		_, ok, err := m.NextFit("09:00", "13:00", 120)
		if err != nil {
			t.Fatalf("next fit: %v", err)
		}
		if ok {
			t.Error("no gap holds two hours before 13:00")
		}
	})
}

func TestManager_Suggest(t *testing.T) {
	m := gapManager(t)

	suggestion, ok, err := m.Suggest("09:00", "14:00", 20)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if suggestion != (Slot{"09:30", "09:50"}) {
		t.Errorf("got %s-%s, want 09:30-09:50", suggestion.Start, suggestion.End)
	}
	if suggestion.Minutes() != 20 {
		t.Errorf("got %d minutes, want the requested duration", suggestion.Minutes())
	}
	if timeutil.Overlaps(suggestion.Start, suggestion.End, "10:00", "11:30") {
		t.Error("suggestion must not overlap existing tasks")
	}

	if _, ok, err := m.Suggest("09:00", "13:00", 120); err != nil || ok {
		t.Errorf("got ok=%t err=%v, want no suggestion when nothing fits", ok, err)
	}
}
