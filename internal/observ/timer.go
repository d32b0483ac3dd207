// Package observ records wall-clock timings of named phases: parsing,
// evaluation, and the per-algorithm runs of the bench command.
package observ

import (
	"fmt"
	"io"
	"time"
)

// Phase records the duration and metadata of one measured step.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple phases.
// It is not safe for concurrent use.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), now: time.Now}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
}

// Measure runs fn as one phase. The note is taken from fn's result.
func (t *Timer) Measure(name string, fn func() string) time.Duration {
	idx := t.Begin(name)
	note := fn()
	t.End(idx, note)
	return t.phases[idx].Dur
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	out := make([]Phase, len(t.phases))
	copy(out, t.phases)
	return out
}

// WriteSummary prints one line per phase plus a total.
func (t *Timer) WriteSummary(w io.Writer) error {
	report := t.Report()
	if _, err := fmt.Fprintln(w, "timings:"); err != nil {
		return err
	}
	for _, p := range report.Phases {
		line := fmt.Sprintf("  %-20s %9.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-20s %9.3f ms\n", "total", report.TotalMS)
	return err
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates all phases in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report builds the aggregated view of the timer.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
