package trace

import (
	"io"
	"slices"
	"sync"

	"github.com/samber/lo"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in memory, overwriting the
// oldest once full. The CLI dumps it after a run; tests inspect it.
type RingTracer struct {
	mu     sync.RWMutex
	buf    []Event
	next   int
	filled bool
	level  Level
}

// NewRingTracer returns a ring holding up to size events.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.buf[t.next] = *ev
	t.next++
	if t.next == len(t.buf) {
		t.next, t.filled = 0, true
	}
	t.mu.Unlock()
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.filled {
		return slices.Clone(t.buf[:t.next])
	}
	return slices.Concat(t.buf[t.next:], t.buf[:t.next])
}

// Named returns the stored events called name, oldest first.
func (t *RingTracer) Named(name string) []Event {
	return lo.Filter(t.Snapshot(), func(ev Event, _ int) bool { return ev.Name == name })
}

// Request returns the stored events tagged with request id, oldest first.
func (t *RingTracer) Request(id string) []Event {
	return lo.Filter(t.Snapshot(), func(ev Event, _ int) bool { return ev.RequestID == id })
}

// Dump writes every stored event to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
