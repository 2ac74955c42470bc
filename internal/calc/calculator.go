//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

package calc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/kernel"
	"github.com/agbru/bigcalc/internal/magnitude"
)

// Limits used when none is configured.
const (
	// DefaultMaxShift bounds the shift count of shl.
	DefaultMaxShift = 1 << 24
	// DefaultMaxMulDigits bounds the decimal length of the operands of mul,
	// div, mod and divmod.
	DefaultMaxMulDigits = 20_000
)

// Result is the outcome of one evaluation.
type Result struct {
	// Calculator is the name of the calculator that produced the result.
	Calculator string
	// Op is the evaluated operation.
	Op Op
	// Value is the decimal result. For divmod it is the quotient, for cmp
	// one of -1, 0, 1.
	Value string
	// Remainder is set for divmod only.
	Remainder string
	// Digits is the number of native digits of |Value|.
	Digits int
}

// Equal reports whether r and other carry the same value.
func (r Result) Equal(other Result) bool {
	return r.Op == other.Op && r.Value == other.Value && r.Remainder == other.Remainder
}

// Calculator evaluates requests with one digit width.
type Calculator interface {
	// Name identifies the calculator, e.g. "w32".
	Name() string
	// Width is the digit width in bits.
	Width() uint
	// Evaluate runs req. It returns a ValidationError for malformed input,
	// a LimitError for oversized shifts and a CalculationError wrapping the
	// kernel sentinel for arithmetic failures.
	Evaluate(ctx context.Context, req Request) (Result, error)
	// Dump renders the native digits of a decimal operand, least
	// significant first.
	Dump(operand string) (string, error)
}

// Option configures a width calculator.
type Option func(*options)

type options struct {
	maxShift     uint64
	maxMulDigits int
	observer     Observer
}

// WithMaxShift caps the shift count accepted by shl.
func WithMaxShift(n uint64) Option {
	return func(o *options) { o.maxShift = n }
}

// WithMaxMulDigits caps the decimal length of each operand of mul, div, mod
// and divmod. Their cost grows with the product of the operand lengths, and
// an evaluation abandoned at its deadline still runs to completion in the
// background. Zero disables the check.
func WithMaxMulDigits(n int) Option {
	return func(o *options) { o.maxMulDigits = n }
}

// WithObserver attaches an observer notified after every evaluation.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

type widthCalculator[T kernel.Digit] struct {
	name string
	opts options
}

// New returns a Calculator backed by digits of type T.
func New[T kernel.Digit](name string, opts ...Option) Calculator {
	o := options{maxShift: DefaultMaxShift, maxMulDigits: DefaultMaxMulDigits, observer: NoOpObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &widthCalculator[T]{name: name, opts: o}
}

func (c *widthCalculator[T]) Name() string { return c.name }

func (c *widthCalculator[T]) Width() uint { return kernel.Width[T]() }

type outcome struct {
	res Result
	err error
}

// Evaluate returns as soon as ctx is done. The kernel call cannot be
// interrupted, so it keeps running in its goroutine until it finishes;
// the operand limits bound how long that can be.
func (c *widthCalculator[T]) Evaluate(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	defer func() {
		c.opts.observer.Observe(Observation{Calculator: c.name, Op: req.Op, Duration: time.Since(start), Err: err})
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := c.checkOperandLength(req); err != nil {
		return Result{}, err
	}

	done := make(chan outcome, 1)
	go func() {
		var o outcome
		if req.Op.Unsigned() {
			o.res, o.err = c.evaluateUnsigned(req)
		} else {
			o.res, o.err = c.evaluateSigned(req)
		}
		done <- o
	}()

	var o outcome
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case o = <-done:
	}
	if o.err != nil {
		return Result{}, o.err
	}
	res = o.res
	res.Calculator = c.name
	res.Op = req.Op
	return res, nil
}

// checkOperandLength applies the mul/div operand limit.
func (c *widthCalculator[T]) checkOperandLength(req Request) error {
	if c.opts.maxMulDigits <= 0 {
		return nil
	}
	switch req.Op {
	case OpMul, OpDiv, OpMod, OpDivMod:
	default:
		return nil
	}
	for _, a := range req.Args {
		n := len(strings.TrimLeft(a, "+-"))
		if n > c.opts.maxMulDigits {
			return apperrors.LimitError{
				Subject: fmt.Sprintf("%s operand digits", req.Op),
				Value:   uint64(n),
				Limit:   uint64(c.opts.maxMulDigits),
			}
		}
	}
	return nil
}

func (c *widthCalculator[T]) evaluateSigned(req Request) (Result, error) {
	x, err := parseInt[T](req.Args[0])
	if err != nil {
		return Result{}, err
	}
	y, err := parseInt[T](req.Args[1])
	if err != nil {
		return Result{}, err
	}

	switch req.Op {
	case OpAdd:
		return intResult(x.Add(y)), nil
	case OpSub:
		return intResult(x.Sub(y)), nil
	case OpMul:
		return intResult(x.Mul(y)), nil
	case OpCmp:
		return Result{Value: strconv.Itoa(x.Cmp(y)), Digits: 1}, nil
	}

	q, r, err := x.QuoRem(y)
	if err != nil {
		return Result{}, apperrors.CalculationError{Cause: err}
	}
	switch req.Op {
	case OpDiv:
		return intResult(q), nil
	case OpMod:
		return intResult(r), nil
	}
	res := intResult(q)
	res.Remainder = r.String()
	return res, nil
}

func (c *widthCalculator[T]) evaluateUnsigned(req Request) (Result, error) {
	x, err := parseMagnitude[T](req.Args[0])
	if err != nil {
		return Result{}, err
	}

	switch req.Op {
	case OpNot:
		return magnitudeResult(x.Not()), nil
	case OpShl, OpShr:
		n, err := c.parseShift(req.Op, req.Args[1])
		if err != nil {
			return Result{}, err
		}
		if req.Op == OpShl {
			return magnitudeResult(x.Lsh(n)), nil
		}
		return magnitudeResult(x.Rsh(n)), nil
	}

	y, err := parseMagnitude[T](req.Args[1])
	if err != nil {
		return Result{}, err
	}
	switch req.Op {
	case OpAnd:
		return magnitudeResult(x.And(y)), nil
	case OpOr:
		return magnitudeResult(x.Or(y)), nil
	case OpXor:
		return magnitudeResult(x.Xor(y)), nil
	}
	return Result{}, apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unsupported operation %q", req.Op)}
}

// parseShift reads a shift count. Right shifts past the operand are
// harmless and clamp to the platform uint; left shifts are bounded by
// maxShift because the result is allocated in full.
func (c *widthCalculator[T]) parseShift(op Op, s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && op == OpShr {
			return math.MaxUint, nil
		}
		return 0, apperrors.ValidationError{Field: "shift", Message: fmt.Sprintf("%q is not a non-negative shift count", s)}
	}
	if op == OpShl && n > c.opts.maxShift {
		return 0, apperrors.LimitError{Subject: "shift count", Value: n, Limit: c.opts.maxShift}
	}
	if n > math.MaxUint {
		return math.MaxUint, nil
	}
	return uint(n), nil
}

func (c *widthCalculator[T]) Dump(operand string) (string, error) {
	x, err := parseInt[T](operand)
	if err != nil {
		return "", err
	}
	hexDigits := int(kernel.Width[T]() / 4)
	digits := x.Magnitude().Digits()
	if len(digits) == 0 {
		digits = []T{0}
	}

	var sb strings.Builder
	if x.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteByte('[')
	for i, d := range digits {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "0x%0*x", hexDigits, uint64(d))
	}
	sb.WriteByte(']')
	return sb.String(), nil
}

func parseInt[T kernel.Digit](s string) (magnitude.Int[T], error) {
	x, err := magnitude.ParseInt[T](s)
	if err != nil {
		return x, apperrors.ValidationError{Field: "operand", Message: fmt.Sprintf("%q is not a decimal integer", s)}
	}
	return x, nil
}

func parseMagnitude[T kernel.Digit](s string) (magnitude.Magnitude[T], error) {
	if strings.HasPrefix(s, "-") {
		return magnitude.Magnitude[T]{}, apperrors.ValidationError{Field: "operand", Message: fmt.Sprintf("%q: bitwise and shift operations take non-negative operands", s)}
	}
	x, err := magnitude.Parse[T](s)
	if err != nil {
		return x, apperrors.ValidationError{Field: "operand", Message: fmt.Sprintf("%q is not a decimal integer", s)}
	}
	return x, nil
}

func intResult[T kernel.Digit](x magnitude.Int[T]) Result {
	return Result{Value: x.String(), Digits: x.Magnitude().Len()}
}

func magnitudeResult[T kernel.Digit](x magnitude.Magnitude[T]) Result {
	return Result{Value: x.String(), Digits: x.Len()}
}
