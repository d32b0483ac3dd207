package trace

import "context"

type ctxKey struct{}

type spanKey struct{}

// FromContext extracts the Tracer from context, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// ParentSpan returns the span ID stored by WithParent, or 0.
func ParentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}

// WithParent records span as the parent for spans begun under ctx.
func WithParent(ctx context.Context, span *Span) context.Context {
	if span == nil || span.id == 0 {
		return ctx
	}
	return context.WithValue(ctx, spanKey{}, span.id)
}
