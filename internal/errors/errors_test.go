package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agbru/bigcalc/internal/kernel"
	"github.com/agbru/bigcalc/internal/magnitude"
)

func TestCalculationError_KernelSentinels(t *testing.T) {
	t.Parallel()
	_, _, divErr := magnitude.FromUint64[uint32](7).DivMod(magnitude.Zero[uint32]())
	_, subErr := magnitude.FromUint64[uint16](3).Sub(magnitude.FromUint64[uint16](5))
	_, _, digitErr := kernel.DivDoubleDigit[uint8](0, 9, 3)

	tests := []struct {
		name     string
		cause    error
		sentinel error
		want     string
	}{
		{"division by zero", divErr, kernel.ErrDivisionByZero, "division by zero"},
		{"subtraction underflow", subErr, magnitude.ErrUnderflow, "magnitude: subtraction underflow"},
		{"quotient overflow", digitErr, kernel.ErrQuotientOverflow, "quotient does not fit in one digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.cause == nil {
				t.Fatal("the operation should have failed")
			}
			err := error(CalculationError{Cause: tt.cause})
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}

			wrapped := fmt.Errorf("line 3: %w", err)
			var calcErr CalculationError
			if !errors.As(wrapped, &calcErr) || !errors.Is(wrapped, tt.sentinel) {
				t.Error("the sentinel should survive further wrapping")
			}
			if got := ExitCode(wrapped); got != ExitErrorGeneric {
				t.Errorf("ExitCode = %d, want %d", got, ExitErrorGeneric)
			}
		})
	}
}

func TestCalculationError_DistinctSentinels(t *testing.T) {
	t.Parallel()
	err := CalculationError{Cause: kernel.ErrQuotientOverflow}
	if errors.Is(err, kernel.ErrDivisionByZero) {
		t.Error("an overflow must not be reported as a division by zero")
	}
}

func TestInputErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", NewConfigError("unknown width %q (available: %s)", "w128", "w8, w16"), `unknown width "w128" (available: w8, w16)`},
		{"bad operand", ValidationError{Field: "a", Message: `"12a" is not a decimal integer`}, `validation error for "a": "12a" is not a decimal integer`},
		{"negative bitwise operand", ValidationError{Field: "b", Message: "and takes non-negative operands"}, `validation error for "b": and takes non-negative operands`},
		{"shift limit", LimitError{Subject: "shift count", Value: 1 << 30, Limit: 1 << 24}, "shift count 1073741824 exceeds limit 16777216"},
		{"mul operand limit", LimitError{Subject: "div operand digits", Value: 20001, Limit: 20000}, "div operand digits 20001 exceeds limit 20000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if got := ExitCode(fmt.Errorf("evaluating: %w", tt.err)); got != ExitErrorConfig {
				t.Errorf("ExitCode = %d, want %d", got, ExitErrorConfig)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"deadline from a width", fmt.Errorf("w8: %w", context.DeadlineExceeded), true},
		{"division by zero", CalculationError{Cause: kernel.ErrDivisionByZero}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodes_Distinct(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorCanceled}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
	if ExitErrorCanceled != 128+2 {
		t.Errorf("ExitErrorCanceled = %d, want 128+SIGINT", ExitErrorCanceled)
	}
}
