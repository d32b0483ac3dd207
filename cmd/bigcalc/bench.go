package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/bignum"
	"bigcalc/internal/calc"
	"bigcalc/internal/observ"
	"bigcalc/internal/prof"
)

type benchOptions struct {
	limbs      int
	seed       uint64
	cpuProfile string
	memProfile string
}

func newBenchCmd(a *app) *cobra.Command {
	opts := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time schoolbook against Karatsuba multiplication",
		Long: `Multiply two random operands of --limbs limbs with both algorithms,
check the products agree and that dividing back recovers the operand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, a, opts)
		},
	}
	cmd.Flags().IntVar(&opts.limbs, "limbs", 1000, "operand length in limbs of 9 digits")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&opts.cpuProfile, "cpuprofile", "", "write a CPU profile of the timed phases to file")
	cmd.Flags().StringVar(&opts.memProfile, "memprofile", "", "write a heap profile after the timed phases to file")
	return cmd
}

var errBenchMismatch = errors.New("bench: results disagree")

func runBench(cmd *cobra.Command, _ *app, opts *benchOptions) error {
	if opts.limbs < 1 {
		return fmt.Errorf("--limbs must be positive, got %d", opts.limbs)
	}
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	x := randomOperand(rng, opts.limbs)
	y := randomOperand(rng, opts.limbs)
	threshold := bignum.KaratsubaThreshold()

	session, err := prof.Start(opts.cpuProfile, opts.memProfile)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	timer := observ.NewTimer()
	var school, kara, q, r bignum.BigInt
	timer.Measure("schoolbook", func() string {
		school = bignum.MulSchoolbook(x, y)
		return fmt.Sprintf("%d limbs", school.Len())
	})
	timer.Measure("karatsuba", func() string {
		kara = bignum.MulKaratsuba(x, y, threshold)
		return fmt.Sprintf("threshold %d", threshold)
	})
	timer.Measure("mul", func() string {
		bignum.Mul(x, y)
		return calc.MulAlgorithm(x, y)
	})
	var divErr error
	timer.Measure("divmod", func() string {
		q, r, divErr = bignum.DivMod(school, x)
		return fmt.Sprintf("%d / %d limbs", school.Len(), x.Len())
	})
	if err := session.Stop(); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if divErr != nil {
		return divErr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "operands: %d limbs (%d digits)\n", opts.limbs, len(x.String()))
	if err := timer.WriteSummary(out); err != nil {
		return err
	}
	if !school.Equal(kara) {
		return fmt.Errorf("%w: schoolbook and karatsuba products differ", errBenchMismatch)
	}
	if !q.Equal(y) || !r.IsZero() {
		return fmt.Errorf("%w: (x*y)/x != y", errBenchMismatch)
	}
	fmt.Fprintln(out, "results agree")
	return nil
}

// randomOperand returns a positive value of exactly n limbs and 9n digits.
func randomOperand(rng *rand.Rand, n int) bignum.BigInt {
	var b strings.Builder
	b.Grow(n * 9)
	fmt.Fprintf(&b, "%d", bignum.Radix/10+rng.Uint32N(bignum.Radix-bignum.Radix/10))
	for range n - 1 {
		fmt.Fprintf(&b, "%09d", rng.Uint32N(bignum.Radix))
	}
	return bignum.MustParse(b.String())
}
