package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned by Div, DivDigit and DivDoubleDigit when
	// the divisor's value is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrQuotientOverflow is returned by DivDoubleDigit when the high digit of
	// the dividend is not smaller than the divisor, so the quotient would need
	// more than one digit.
	ErrQuotientOverflow = errors.New("quotient does not fit in one digit")
	// ErrSyntax is returned by ParseDecimal for malformed decimal input.
	ErrSyntax = errors.New("invalid decimal syntax")
)

// PreconditionError reports a buffer contract violation: a destination that
// is too short, an empty operand, or an aliasing rule broken. These are
// programming errors in the caller, never data-dependent failures.
type PreconditionError struct {
	// Op is the kernel routine that rejected its arguments.
	Op string
	// Reason describes the violated contract.
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("kernel.%s: %s", e.Op, e.Reason)
}

func precondition(op, format string, args ...any) error {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
