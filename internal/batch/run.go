package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"bigcalc/internal/calc"
	"bigcalc/internal/trace"
)

// Request describes one batch run.
type Request struct {
	Exprs    []Expr
	Jobs     int // <= 0 means GOMAXPROCS
	Cache    *DiskCache
	Progress ProgressSink
}

// LineResult is the outcome of one expression.
type LineResult struct {
	Line    int
	Expr    string
	Kind    calc.Kind
	Value   string
	Limbs   uint32
	Err     error
	Cached  bool
	Elapsed time.Duration
}

// Result holds per-line outcomes in input order.
type Result struct {
	Lines     []LineResult
	Failed    int
	CacheHits int
}

// Run evaluates req.Exprs in parallel. A failing line is recorded in its
// LineResult and does not stop the batch; the returned error is reserved
// for cancellation.
func Run(ctx context.Context, req Request) (Result, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeBatch, "batch", trace.ParentSpan(ctx))
	span.WithExtra("lines", fmt.Sprint(len(req.Exprs)))
	ctx = trace.WithParent(ctx, span)

	results := make([]LineResult, len(req.Exprs))
	if len(req.Exprs) == 0 {
		span.End("")
		return Result{Lines: results}, nil
	}

	for _, e := range req.Exprs {
		emit(req.Progress, Event{Line: e.Line, Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Exprs)))

	for i, e := range req.Exprs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(req.Progress, Event{Line: e.Line, Status: StatusWorking})
			res := evalLine(gctx, req.Cache, e)
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			results[i] = res

			status := StatusDone
			switch {
			case res.Err != nil:
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			emit(req.Progress, Event{Line: e.Line, Status: status, Err: res.Err, Elapsed: res.Elapsed})
			return nil
		})
	}

	out := Result{Lines: results}
	err := g.Wait()
	for _, r := range results {
		if r.Err != nil {
			out.Failed++
		}
		if r.Cached {
			out.CacheHits++
		}
	}
	if err != nil {
		trace.Failure(tr, trace.ScopeBatch, "batch", err, span.ID())
		span.End("canceled")
		return out, err
	}
	span.WithExtra("failed", fmt.Sprint(out.Failed)).WithExtra("cache_hits", fmt.Sprint(out.CacheHits))
	span.End("")
	return out, nil
}

func evalLine(ctx context.Context, cache *DiskCache, e Expr) LineResult {
	res := LineResult{Line: e.Line, Expr: e.Text}
	start := time.Now()

	key := KeyFor(e.Text)
	var hit Payload
	if ok, err := cache.Get(key, &hit); err != nil {
		trace.Failure(trace.FromContext(ctx), trace.ScopeBatch, "cache:get", err, trace.ParentSpan(ctx))
	} else if ok {
		res.Kind = calc.Kind(hit.Kind)
		res.Value = hit.Value
		res.Limbs = hit.Limbs
		res.Cached = true
		res.Elapsed = time.Since(start)
		return res
	}

	v, err := calc.Eval(ctx, e.Text)
	if err != nil {
		res.Err = fmt.Errorf("line %d: %w", e.Line, err)
		res.Elapsed = time.Since(start)
		return res
	}
	res.Kind = v.Kind()
	res.Value = v.String()
	if n, ok := v.Int(); ok {
		limbs, err := safecast.Conv[uint32](n.Len())
		if err != nil {
			res.Err = fmt.Errorf("line %d: result too large: %w", e.Line, err)
			res.Elapsed = time.Since(start)
			return res
		}
		res.Limbs = limbs
	}

	if cache != nil {
		payload := &Payload{Expr: e.Text, Kind: uint8(res.Kind), Value: res.Value, Limbs: res.Limbs}
		if err := cache.Put(key, payload); err != nil {
			trace.Failure(trace.FromContext(ctx), trace.ScopeBatch, "cache:put", err, trace.ParentSpan(ctx))
		}
	}
	res.Elapsed = time.Since(start)
	return res
}
