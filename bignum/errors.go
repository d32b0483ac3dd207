package bignum

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates malformed or empty integer text.
	ErrParse = errors.New("invalid integer literal")
	// ErrDivByZero indicates an attempt to divide by zero.
	ErrDivByZero = errors.New("division by zero")
	// ErrPrecondition marks a violated internal contract. It is only ever
	// carried by a panic, never returned.
	ErrPrecondition = errors.New("precondition violated")
)

// PreconditionError is the panic value raised when an unsigned primitive is
// called with arguments outside its contract.
type PreconditionError struct {
	Op     string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("bignum: %s: %v: %s", e.Op, ErrPrecondition, e.Detail)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

func violated(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
