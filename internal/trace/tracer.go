package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives events from spans, points and failures.
// Implementations must be safe for concurrent use: batch workers emit
// from many goroutines.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on failure
	ModeBoth
)

var modeNames = map[StorageMode]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode converts a flag value to StorageMode; "" means stream.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeStream, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "" or "-" for stderr
	RingSize   int
}

// streamFormat resolves FormatAuto: .ndjson and .jsonl files get NDJSON,
// everything else text.
func (c Config) streamFormat() Format {
	if c.Format != FormatAuto {
		return c.Format
	}
	switch filepath.Ext(c.OutputPath) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	}
	return FormatText
}

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}

	var sinks []Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, cfg.streamFormat()))
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	case 1:
		return sinks[0], nil
	default:
		return NewMultiTracer(cfg.Level, sinks...), nil
	}
}

// RingOf returns the ring buffer behind t, if it has one.
func RingOf(t Tracer) *RingTracer {
	switch tt := t.(type) {
	case *RingTracer:
		return tt
	case *MultiTracer:
		return tt.Ring()
	}
	return nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser keeps Close from closing stderr.
type nopCloser struct{ io.Writer }
