package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer is a flight recorder: it keeps the most recent events in a
// fixed buffer and writes nothing until Dump. The CLI dumps it when a
// command fails.
type RingTracer struct {
	mu      sync.RWMutex
	events  []Event
	written uint64 // events accepted since creation
	level   Level
}

// NewRingTracer creates a RingTracer holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores ev, overwriting the oldest event once the buffer is full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.admits(ev) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	t.mu.Lock()
	t.events[t.written%uint64(len(t.events))] = stored
	t.written++
	t.mu.Unlock()
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	capacity := uint64(len(t.events))
	if t.written <= capacity {
		return append([]Event(nil), t.events[:t.written]...)
	}
	head := t.written % capacity
	out := make([]Event, 0, capacity)
	out = append(out, t.events[head:]...)
	return append(out, t.events[:head]...)
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.written - min(t.written, uint64(len(t.events)))
}

// Dump writes the retained events, preceded by a comment line when older
// events were overwritten.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	if n := t.Dropped(); n > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "# %d earlier events dropped\n", n); err != nil {
			return err
		}
	}
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
