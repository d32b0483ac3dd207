// Package trace provides leveled event tracing for bigcalc.
//
// Tracing shows where time goes while evaluating expressions: one span per
// command, per batch line and per arithmetic operation, with operand sizes
// and the multiplication algorithm attached.
//
// # Usage
//
//	bigcalc eval --trace=- --trace-level=debug '12345678901234567890 * 98765432109876543210'
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failures recorded in the ring buffer
//   - LevelBatch: Command and batch boundaries
//   - LevelExpr: Per-expression events
//   - LevelDebug: Everything including single arithmetic operations
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeExpr, "eval", parentID)
//	defer span.End("")
package trace
