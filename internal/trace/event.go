package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	// KindFailure records an error; it passes every level except off.
	KindFailure
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // a CLI command
	ScopeBatch                    // a batch run
	ScopeExpr                     // one expression
	ScopeOp                       // one arithmetic operation
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeBatch:
		return "batch"
	case ScopeExpr:
		return "expr"
	case ScopeOp:
		return "op"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	GID      uint64            // goroutine ID
	Name     string            // e.g. "eval", "mul", "batch:line 12"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}

// admits reports whether a tracer at level l keeps ev.
func (l Level) admits(ev *Event) bool {
	if ev.Kind == KindFailure {
		return l > LevelOff
	}
	return l.ShouldEmit(ev.Scope)
}
