package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bigcalc/internal/calc"
	"bigcalc/internal/observ"
)

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate integer expressions",
		Long: `Evaluate each expression and print its value on its own line.
Operators: + - * / (truncating) % (remainder) mod (non-negative modulo)
and the comparisons < > <= >= == !=. Digits may be grouped with '_'.`,
		Example: "  bigcalc eval '2 * (3 + 4)'\n  bigcalc eval -- '-7 mod 3'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, a, args)
		},
	}
}

func runEval(cmd *cobra.Command, a *app, args []string) error {
	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	timer := observ.NewTimer()

	failed := 0
	for i, src := range args {
		var v calc.Value
		var err error
		timer.Measure(fmt.Sprintf("expr %d", i+1), func() string {
			v, err = calc.Eval(ctx, src)
			if err != nil {
				return "error"
			}
			return v.Kind().String()
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			failed++
			reportExprError(errOut, src, err)
			continue
		}
		fmt.Fprintln(out, v)
	}

	if a.timings {
		if err := timer.WriteSummary(errOut); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(args))
	}
	return nil
}

var errorLabel = color.New(color.FgRed, color.Bold)

// reportExprError prints err and, for located errors, the expression with
// a caret under the failing column.
func reportExprError(w io.Writer, src string, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel.Sprint("error:"), err)
	var ce *calc.Error
	if !errors.As(err, &ce) {
		return
	}
	norm := calc.Normalize(src)
	if ce.Pos > len(norm) || strings.ContainsAny(norm, "\n\r") {
		return
	}
	fmt.Fprintf(w, "  %s\n  %s%s\n", norm, strings.Repeat(" ", ce.Pos), color.New(color.FgGreen).Sprint("^"))
}
