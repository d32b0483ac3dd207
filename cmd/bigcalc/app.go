package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bigcalc/bignum"
	"bigcalc/internal/config"
	"bigcalc/internal/trace"
)

// app carries the settings resolved once per invocation.
type app struct {
	cfg        config.Config
	configPath string
	timings    bool

	prevThreshold int
	thresholdSet  bool
	tracer        trace.Tracer
	span          *trace.Span
	closeTrace    func(failed bool)
}

// prepare resolves color, configuration, the Karatsuba threshold and
// tracing, in that order.
func (a *app) prepare(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := applyColorMode(colorFlag); err != nil {
		return err
	}

	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	threshold := a.cfg.Arith.KaratsubaThreshold
	if flags.Changed("karatsuba-threshold") {
		threshold, err = flags.GetInt("karatsuba-threshold")
		if err != nil {
			return fmt.Errorf("failed to get karatsuba-threshold flag: %w", err)
		}
		if threshold < 4 {
			return fmt.Errorf("--karatsuba-threshold must be at least 4, got %d", threshold)
		}
	}
	a.prevThreshold = bignum.SetKaratsubaThreshold(threshold)
	a.thresholdSet = true

	a.timings = a.cfg.Output.Timings
	if flags.Changed("timings") {
		if a.timings, err = flags.GetBool("timings"); err != nil {
			return fmt.Errorf("failed to get timings flag: %w", err)
		}
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	a.closeTrace = cleanup

	ctx := cmd.Context()
	tr := trace.FromContext(ctx)
	a.tracer = tr
	a.span = trace.Begin(tr, trace.ScopeCommand, cmd.Name(), 0)
	if a.configPath != "" {
		a.span.WithExtra("config", a.configPath)
	}
	cmd.SetContext(trace.WithParent(ctx, a.span))
	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err := config.Decode(path)
		if err != nil {
			return err
		}
		a.cfg, a.configPath = cfg, path
		return nil
	}
	file, _, err := config.Load(".")
	if err != nil {
		return err
	}
	a.cfg, a.configPath = file.Config, file.Path
	return nil
}

// close ends the command span, flushes tracing and restores the
// process-wide threshold.
func (a *app) close(err error) {
	if a.span != nil {
		detail := ""
		if err != nil {
			trace.Failure(a.tracer, trace.ScopeCommand, "command", err, a.span.ID())
			detail = "error"
		}
		a.span.End(detail)
	}
	if a.closeTrace != nil {
		a.closeTrace(err != nil)
	}
	if a.thresholdSet {
		bignum.SetKaratsubaThreshold(a.prevThreshold)
	}
}

func applyColorMode(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}
