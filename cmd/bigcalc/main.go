package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigcalc/internal/config"
	"bigcalc/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute builds a fresh command tree, runs it and releases what the
// persistent pre-run acquired.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	a.close(err)
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "bigcalc",
		Short:        "Arbitrary-precision integer calculator",
		Long:         `bigcalc evaluates integer expressions of unbounded size using base 10^9 limbs`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.prepare(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "path to "+config.FileName+" (default: search upward from the working directory)")
	pf.Int("karatsuba-threshold", 0, "limb count above which multiplication switches to Karatsuba (0 keeps the configured value)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|batch|expr|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")

	root.AddCommand(newEvalCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newBenchCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
