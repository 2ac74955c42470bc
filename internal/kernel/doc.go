// Package kernel implements the digit-array arithmetic underneath bigcalc.
//
// A magnitude is a little-endian slice of fixed-width digits: index 0 holds
// the least significant digit and the value is sum(x[i] * 2^(W*i)) where W is
// the bit width of the digit type. Every routine in this package is generic
// over that digit type, so the width is fixed at compile time for each
// instantiation (uint8 through uint64, plus named types such as big.Word).
//
// # Normalization
//
// A normalized magnitude carries no most-significant zero digits, and zero is
// the single digit 0. Routines that produce a magnitude report its normalized
// length; callers re-slice with it. [Trim] and [Len] do the same for arbitrary
// buffers.
//
// # Buffers
//
// Routines never allocate their result. The caller hands in a destination
// buffer sized by the routine's contract and keeps ownership of it. Capacity
// and aliasing rules are checked on entry and reported as *PreconditionError
// before anything is written. Division by zero is reported as
// ErrDivisionByZero, again before any mutation.
//
// Aliasing rules, per routine:
//
//   - Add, Sub: dst may be the same buffer as the operand being added.
//   - LeftShift: dst may start at src.
//   - Div: the remainder buffer may start at lhs. The quotient may not
//     overlap anything.
//   - Mul: dst may not overlap either operand.
//   - And, Or, Xor, Not: dst may start at either operand.
package kernel
