package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1 // an evaluation failed, e.g. division by zero
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // digit widths disagree on a result
	ExitErrorConfig   = 4 // bad flags, operands or limits
	ExitErrorCanceled = 130
)

// ConfigError is a bad command-line or environment setting.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError is an arithmetic failure reported by the kernel or the
// magnitude layer. Cause is the sentinel (kernel.ErrDivisionByZero,
// kernel.ErrQuotientOverflow, magnitude.ErrUnderflow), so callers test it
// with errors.Is. The message is the sentinel's own.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// ValidationError is an operand or operation that cannot be evaluated as
// written: an unparsable number, a negative operand to a bitwise operation,
// a wrong operand count.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// LimitError is a request refused because of its size: a shift count above
// -max-shift, a mul/div operand above -max-mul-digits, a server operand
// above -max-digits.
type LimitError struct {
	Subject string
	Value   uint64
	Limit   uint64
}

func (e LimitError) Error() string {
	return fmt.Sprintf("%s %d exceeds limit %d", e.Subject, e.Value, e.Limit)
}

// IsContextError reports whether err ends in a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
