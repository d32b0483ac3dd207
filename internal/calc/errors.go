package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax reports a malformed expression.
	ErrSyntax = errors.New("syntax error")
	// ErrType reports an operator applied to an operand of the wrong kind.
	ErrType = errors.New("type mismatch")
)

// Error locates a failure at a byte offset of the normalized input.
// Err is ErrSyntax, ErrType or one of the bignum sentinels.
type Error struct {
	Pos int
	Msg string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("column %d: %s", e.Pos+1, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }
