package calc

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// operand multiplies 64-bit chunks into a signed decimal spanning several
// native digits at every width.
func operand(chunks []int64) *big.Int {
	v := big.NewInt(1)
	for _, c := range chunks {
		v.Mul(v, big.NewInt(c))
	}
	return v
}

// TestEvaluate_MatchesMathBig checks the signed operations of every width
// against math/big, which uses the same truncated division.
func TestEvaluate_MatchesMathBig(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	calcs := NewDefaultFactory().GetAll()
	chunks := gen.SliceOfN(3, gen.Int64())
	ctx := context.Background()

	evalAll := func(req Request) ([]Result, bool) {
		out := make([]Result, 0, len(calcs))
		for _, c := range calcs {
			res, err := c.Evaluate(ctx, req)
			if err != nil {
				return nil, false
			}
			out = append(out, res)
		}
		return out, true
	}
	agree := func(results []Result, want string) bool {
		for _, r := range results {
			if r.Value != want {
				return false
			}
		}
		return true
	}

	properties.Property("add, sub and mul agree with math/big", prop.ForAll(
		func(ca, cb []int64) bool {
			a, b := operand(ca), operand(cb)
			args := []string{a.String(), b.String()}
			for op, want := range map[Op]*big.Int{
				OpAdd: new(big.Int).Add(a, b),
				OpSub: new(big.Int).Sub(a, b),
				OpMul: new(big.Int).Mul(a, b),
			} {
				results, ok := evalAll(Request{op, args})
				if !ok || !agree(results, want.String()) {
					return false
				}
			}
			return true
		},
		chunks, chunks,
	))

	properties.Property("divmod agrees with math/big QuoRem", prop.ForAll(
		func(ca, cb []int64) bool {
			a, b := operand(ca), operand(cb)
			if b.Sign() == 0 {
				return true
			}
			q, r := new(big.Int).QuoRem(a, b, new(big.Int))
			results, ok := evalAll(Request{OpDivMod, []string{a.String(), b.String()}})
			if !ok || !agree(results, q.String()) {
				return false
			}
			for _, res := range results {
				if res.Remainder != r.String() {
					return false
				}
			}
			return true
		},
		chunks, chunks,
	))

	properties.Property("bitwise ops agree with math/big on magnitudes", prop.ForAll(
		func(ca, cb []int64) bool {
			a, b := new(big.Int).Abs(operand(ca)), new(big.Int).Abs(operand(cb))
			args := []string{a.String(), b.String()}
			for op, want := range map[Op]*big.Int{
				OpAnd: new(big.Int).And(a, b),
				OpOr:  new(big.Int).Or(a, b),
				OpXor: new(big.Int).Xor(a, b),
			} {
				results, ok := evalAll(Request{op, args})
				if !ok || !agree(results, want.String()) {
					return false
				}
			}
			return true
		},
		chunks, chunks,
	))

	properties.Property("shifts agree with math/big", prop.ForAll(
		func(ca []int64, n uint16) bool {
			a := new(big.Int).Abs(operand(ca))
			s := uint(n % 300)
			shl, ok := evalAll(Request{OpShl, []string{a.String(), big.NewInt(int64(s)).String()}})
			if !ok || !agree(shl, new(big.Int).Lsh(a, s).String()) {
				return false
			}
			shr, ok := evalAll(Request{OpShr, []string{a.String(), big.NewInt(int64(s)).String()}})
			return ok && agree(shr, new(big.Int).Rsh(a, s).String())
		},
		chunks, gen.UInt16(),
	))

	properties.TestingRun(t)
}
