package trace

import "errors"

// MultiTracer fans out trace events to multiple tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer creates a new MultiTracer that emits to all provided tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

// Emit sends the event to all underlying tracers. The sequence number is
// assigned once so every sink sees the same one.
func (t *MultiTracer) Emit(ev *Event) {
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

// Flush flushes every sink and joins their errors.
func (t *MultiTracer) Flush() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

// Close closes every sink, even after one fails.
func (t *MultiTracer) Close() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Ring returns the first ring tracer behind t, if any.
func (t *MultiTracer) Ring() *RingTracer {
	for _, tr := range t.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r
		}
	}
	return nil
}

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
