package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bigcalc/internal/batch"
	"bigcalc/internal/observ"
)

type batchOptions struct {
	jobs       int
	cache      bool
	cacheDir   string
	clearCache bool
	ui         string
}

func newBatchCmd(a *app) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate a file of expressions in parallel",
		Long: `Evaluate one expression per line of FILE ("-" for stdin). Blank lines and
'#' comments are skipped. Values are printed in input order; failing lines
are reported on stderr and do not stop the rest of the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, opts, args[0])
		},
	}
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "parallel workers (0 = [batch].jobs or GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "reuse results from the on-disk cache")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory (default $XDG_CACHE_HOME/bigcalc)")
	cmd.Flags().BoolVar(&opts.clearCache, "clear-cache", false, "drop every cached result before running")
	cmd.Flags().StringVar(&opts.ui, "ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

func runBatch(cmd *cobra.Command, a *app, opts *batchOptions, path string) error {
	mode, err := readUIMode(opts.ui)
	if err != nil {
		return err
	}
	timer := observ.NewTimer()

	var exprs []batch.Expr
	timer.Measure("read", func() string {
		exprs, err = batch.ReadFile(path)
		return fmt.Sprintf("%d expressions", len(exprs))
	})
	if err != nil {
		return err
	}

	req := batch.Request{Exprs: exprs, Jobs: a.cfg.Batch.Jobs}
	if cmd.Flags().Changed("jobs") {
		req.Jobs = opts.jobs
	}
	if req.Cache, err = openCache(cmd, a, opts); err != nil {
		return err
	}

	var res batch.Result
	timer.Measure("evaluate", func() string {
		if shouldUseTUI(mode) {
			res, err = runBatchWithUI(cmd.Context(), filepath.Base(path), cmd.ErrOrStderr(), req)
		} else {
			res, err = batch.Run(cmd.Context(), req)
		}
		return fmt.Sprintf("%d failed, %d cached", res.Failed, res.CacheHits)
	})
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	for _, line := range res.Lines {
		if line.Err != nil {
			reportExprError(errOut, line.Expr, line.Err)
			continue
		}
		fmt.Fprintln(out, line.Value)
	}

	if a.timings {
		if err := timer.WriteSummary(errOut); err != nil {
			return err
		}
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d lines failed", res.Failed, len(res.Lines))
	}
	return nil
}

// openCache returns nil when caching is off.
func openCache(cmd *cobra.Command, a *app, opts *batchOptions) (*batch.DiskCache, error) {
	enabled := a.cfg.Batch.Cache
	if cmd.Flags().Changed("cache") {
		enabled = opts.cache
	}
	if !enabled && !opts.clearCache {
		return nil, nil
	}

	dir := opts.cacheDir
	if dir == "" {
		dir = a.cfg.Batch.CacheDir
	}
	if dir == "" {
		var err error
		if dir, err = batch.DefaultCacheDir("bigcalc"); err != nil {
			return nil, err
		}
	}
	cache, err := batch.OpenDiskCache(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if opts.clearCache {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	if !enabled {
		return nil, nil
	}
	return cache, nil
}
