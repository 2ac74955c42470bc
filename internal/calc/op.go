package calc

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Op names an operation a Calculator can evaluate.
type Op string

// Supported operations.
const (
	OpAdd    Op = "add"
	OpSub    Op = "sub"
	OpMul    Op = "mul"
	OpDiv    Op = "div"
	OpMod    Op = "mod"
	OpDivMod Op = "divmod"
	OpShl    Op = "shl"
	OpShr    Op = "shr"
	OpAnd    Op = "and"
	OpOr     Op = "or"
	OpXor    Op = "xor"
	OpNot    Op = "not"
	OpCmp    Op = "cmp"
)

// Ops lists every operation in help order.
var Ops = []Op{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpDivMod, OpShl, OpShr, OpAnd, OpOr, OpXor, OpNot, OpCmp}

var symbols = map[string]Op{
	"+":   OpAdd,
	"-":   OpSub,
	"*":   OpMul,
	"/":   OpDiv,
	"%":   OpMod,
	"<<":  OpShl,
	">>":  OpShr,
	"&":   OpAnd,
	"|":   OpOr,
	"^":   OpXor,
	"~":   OpNot,
	"<=>": OpCmp,
}

// ParseOp resolves an operation name ("add") or symbol ("+").
func ParseOp(s string) (Op, bool) {
	if op, ok := symbols[s]; ok {
		return op, true
	}
	op := Op(strings.ToLower(s))
	for _, known := range Ops {
		if op == known {
			return op, true
		}
	}
	return "", false
}

// Arity returns the number of operands op takes.
func (o Op) Arity() int {
	if o == OpNot {
		return 1
	}
	return 2
}

// Symbol returns the infix symbol of op, or its name when it has none.
func (o Op) Symbol() string {
	for sym, op := range symbols {
		if op == o {
			return sym
		}
	}
	return string(o)
}

// Unsigned reports whether op works on magnitudes only. Unsigned operations
// reject negative operands.
func (o Op) Unsigned() bool {
	switch o {
	case OpShl, OpShr, OpAnd, OpOr, OpXor, OpNot:
		return true
	}
	return false
}

// WidthDependent reports whether the result of op legitimately differs
// between digit widths. not complements within the operand's digit count.
func (o Op) WidthDependent() bool {
	return o == OpNot
}

// Request is a single operation with its decimal operands.
type Request struct {
	Op   Op
	Args []string
}

// String renders r in infix form.
func (r Request) String() string {
	switch {
	case len(r.Args) == 1:
		return r.Op.Symbol() + r.Args[0]
	case len(r.Args) == 2:
		return r.Args[0] + " " + r.Op.Symbol() + " " + r.Args[1]
	}
	return string(r.Op) + " " + strings.Join(r.Args, " ")
}

// Validate checks the operand count.
func (r Request) Validate() error {
	if r.Op == "" {
		return apperrors.ValidationError{Field: "op", Message: "missing operation"}
	}
	if len(r.Args) != r.Op.Arity() {
		return apperrors.ValidationError{
			Field:   "args",
			Message: fmt.Sprintf("%s takes %d operand(s), got %d", r.Op, r.Op.Arity(), len(r.Args)),
		}
	}
	return nil
}

// ParseRequest parses an expression in one of the accepted forms:
//
//	add 12 30      prefix, by name or symbol
//	12 + 30        infix, by symbol or name
//	not 5, ~ 5, ~5 complement
func ParseRequest(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 1 && strings.HasPrefix(fields[0], "~") && len(fields[0]) > 1 {
		fields = []string{"~", fields[0][1:]}
	}

	var req Request
	switch len(fields) {
	case 0:
		return Request{}, apperrors.ValidationError{Field: "expression", Message: "empty expression"}
	case 2:
		if op, ok := ParseOp(fields[0]); ok {
			req = Request{Op: op, Args: fields[1:]}
		}
	case 3:
		if op, ok := ParseOp(fields[1]); ok {
			req = Request{Op: op, Args: []string{fields[0], fields[2]}}
		} else if op, ok := ParseOp(fields[0]); ok {
			req = Request{Op: op, Args: fields[1:]}
		}
	}
	if req.Op == "" {
		return Request{}, apperrors.ValidationError{
			Field:   "expression",
			Message: fmt.Sprintf("cannot parse %q", line),
		}
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}
