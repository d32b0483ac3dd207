package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelError              // only failures
	LevelBatch              // command + batch boundaries
	LevelExpr               // per-expression events
	LevelDebug              // everything including single operations
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelBatch:
		return "batch"
	case LevelExpr:
		return "expr"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "batch":
		return LevelBatch, nil
	case "expr":
		return LevelExpr, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|batch|expr|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelBatch:
		return scope <= ScopeBatch
	case LevelExpr:
		return scope <= ScopeExpr
	case LevelDebug:
		return true
	default:
		// LevelError only records failures, see Failure.
		return false
	}
}
