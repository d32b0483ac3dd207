package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// The returned cleanup flushes it; failed tells a ring-only tracer to dump
// what it recorded.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// An output file without an explicit level still records failures.
	if level == trace.LevelOff && traceOutput != "" && !flags.Changed("trace-level") {
		level = trace.LevelError
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func(failed bool) {
		if ring := trace.RingOf(tracer); failed && mode == trace.ModeRing && ring != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace: recent events")
			if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
