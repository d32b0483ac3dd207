package batch

import "time"

// Status captures the progress state of one line.
type Status string

const (
	// StatusQueued indicates the line is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the line is being evaluated.
	StatusWorking Status = "working"
	// StatusDone indicates the line evaluated successfully.
	StatusDone Status = "done"
	// StatusCached indicates the result came from the disk cache.
	StatusCached Status = "cached"
	// StatusError indicates evaluation failed.
	StatusError Status = "error"
)

// Event reports progress for one line (Line is 1-based).
type Event struct {
	Line    int
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}
