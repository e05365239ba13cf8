package events

import (
	"io"
	"log/slog"
	"testing"
)

// recordingListener captures events for assertions.
type recordingListener struct {
	name  string
	only  map[Kind]bool // nil means all kinds
	seen  []Event
	panic bool
}

func (r *recordingListener) Handle(e Event) {
	if r.panic {
		panic("listener failure")
	}
	r.seen = append(r.seen, e)
}

func (r *recordingListener) Wants(k Kind) bool {
	if r.only == nil {
		return true
	}
	return r.only[k]
}

func newTestBus() *Bus {
	return NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBus_AttachDetach(t *testing.T) {
	bus := newTestBus()
	a := &recordingListener{name: "a"}

	if !bus.Attach(a) {
		t.Error("first attach should report newly added")
	}
	if bus.Attach(a) {
		t.Error("duplicate attach should be a no-op")
	}
	if got := bus.Len(); got != 1 {
		t.Errorf("got %d listeners, want 1", got)
	}

	bus.Detach(a)
	if got := bus.Len(); got != 0 {
		t.Errorf("got %d listeners after detach, want 0", got)
	}

	// Detaching an unknown listener is a no-op.
	bus.Detach(&recordingListener{name: "stranger"})

	if bus.Attach(nil) {
		t.Error("attaching nil should be rejected")
	}
}

func TestBus_PublishOrder(t *testing.T) {
	bus := newTestBus()
	var order []string

	first := &orderedListener{name: "first", order: &order}
	second := &orderedListener{name: "second", order: &order}
	bus.Attach(first)
	bus.Attach(second)

	bus.Publish(New(TaskAdded, "added", nil))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("got dispatch order %v, want [first second]", order)
	}
}

type orderedListener struct {
	name  string
	order *[]string
}

func (o *orderedListener) Handle(Event)    { *o.order = append(*o.order, o.name) }
func (o *orderedListener) Wants(Kind) bool { return true }

func TestBus_InterestFilter(t *testing.T) {
	bus := newTestBus()
	all := &recordingListener{name: "all"}
	onlyConflicts := &recordingListener{name: "conflicts", only: map[Kind]bool{TaskConflict: true}}
	bus.Attach(all)
	bus.Attach(onlyConflicts)

	bus.Publish(New(TaskAdded, "added", nil))
	bus.Publish(New(TaskConflict, "conflict", nil))

	if len(all.seen) != 2 {
		t.Errorf("all-kinds listener saw %d events, want 2", len(all.seen))
	}
	if len(onlyConflicts.seen) != 1 || onlyConflicts.seen[0].Kind != TaskConflict {
		t.Errorf("filtered listener saw %v, want only the conflict event", onlyConflicts.seen)
	}
}

func TestBus_ListenerPanicIsIsolated(t *testing.T) {
	bus := newTestBus()
	bad := &recordingListener{name: "bad", panic: true}
	good := &recordingListener{name: "good"}
	bus.Attach(bad)
	bus.Attach(good)

	// Must not panic the publisher.
	bus.Publish(New(TaskRemoved, "removed", nil))

	if len(good.seen) != 1 {
		t.Errorf("listener after the failing one saw %d events, want 1", len(good.seen))
	}
}

func TestBus_DetachedListenerReceivesNothing(t *testing.T) {
	bus := newTestBus()
	a := &recordingListener{name: "a"}
	b := &recordingListener{name: "b"}
	bus.Attach(a)
	bus.Attach(b)

	bus.Publish(New(TaskAdded, "one", nil))
	bus.Detach(a)
	bus.Publish(New(TaskAdded, "two", nil))

	if len(a.seen) != 1 {
		t.Errorf("detached listener saw %d events, want 1", len(a.seen))
	}
	if len(b.seen) != 2 {
		t.Errorf("attached listener saw %d events, want 2", len(b.seen))
	}
}

// funcListener carries uncomparable state; registered as a pointer, which is
// the form the Listener contract requires for such implementations.
type funcListener struct {
	fn func(Event)
}

func (f *funcListener) Handle(e Event)  { f.fn(e) }
func (f *funcListener) Wants(Kind) bool { return true }

func TestBus_PointerListenerWithUncomparableState(t *testing.T) {
	bus := newTestBus()
	var seen int
	l := &funcListener{fn: func(Event) { seen++ }}

	if !bus.Attach(l) {
		t.Error("first attach should report newly added")
	}
	if bus.Attach(l) {
		t.Error("duplicate attach should be a no-op")
	}

	bus.Publish(New(TaskAdded, "added", nil))
	bus.Detach(l)
	bus.Publish(New(TaskAdded, "again", nil))

	if seen != 1 {
		t.Errorf("listener saw %d events, want 1", seen)
	}
	if got := bus.Len(); got != 0 {
		t.Errorf("got %d listeners after detach, want 0", got)
	}
}

func TestKind_Valid(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() {
			t.Errorf("kind %q should be valid", k)
		}
	}
	if Kind("task_exploded").Valid() {
		t.Error("unknown kind should not be valid")
	}
}
