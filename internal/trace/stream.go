package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes events to an io.Writer through a buffer that is
// flushed whenever an expression, batch or command span ends and on
// every failure, so a batch run with per-op tracing stays cheap.
type StreamTracer struct {
	mu     sync.Mutex
	out    io.Writer
	buf    *bufio.Writer
	level  Level
	format Format
	err    error // first write error, reported by Flush
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{out: w, buf: bufio.NewWriter(w), level: level, format: format}
}

// Emit formats and buffers ev. Write errors are kept for Flush and stop
// further output.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.admits(ev) {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	if _, err := t.buf.Write(data); err != nil {
		t.err = err
		return
	}
	if boundary(ev) {
		t.err = t.buf.Flush()
	}
}

func boundary(ev *Event) bool {
	return ev.Kind == KindFailure || (ev.Kind == KindSpanEnd && ev.Scope <= ScopeExpr)
}

// Flush writes buffered events and reports the first write error.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.err = t.buf.Flush()
	return t.err
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.out.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
