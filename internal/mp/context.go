package mp

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/numtower/internal/numerr"
)

// DefaultPrecision is the working precision in significant decimal digits.
const DefaultPrecision = 32

// guardDigits widens intermediate products that are rounded again.
const guardDigits = 8

// MaxPrecision bounds WithPrecision. apd itself accepts more, but nothing
// in a calculator needs it.
const MaxPrecision = 10000

// Context carries the working precision for rounding operations.
//
// The zero value uses DefaultPrecision.
type Context struct {
	Precision uint32
}

// DefaultContext returns a Context with DefaultPrecision.
func DefaultContext() Context {
	return Context{Precision: DefaultPrecision}
}

// WithPrecision returns a Context working at digits significant digits.
func (c Context) WithPrecision(digits int) (Context, error) {
	if digits < 1 || digits > MaxPrecision {
		return c, numerr.Domain("mp.WithPrecision", "precision must be in [1, %d], got %d", MaxPrecision, digits)
	}
	return Context{Precision: uint32(digits)}, nil
}

// Guarded returns c widened by extra guard digits.
func (c Context) Guarded(extra uint32) Context {
	return Context{Precision: c.digits() + extra}
}

// Digits returns the effective working precision.
func (c Context) Digits() int {
	return int(c.digits())
}

func (c Context) digits() uint32 {
	if c.Precision == 0 {
		return DefaultPrecision
	}
	return c.Precision
}

// Epsilon returns 10^-digits.
func Epsilon(digits int) Real {
	return Real{d: apd.New(1, -int32(digits))}
}

func (c Context) base() *apd.Context {
	return apd.BaseContext.WithPrecision(c.digits())
}

func (c Context) floor() *apd.Context {
	ctx := c.base()
	ctx.Rounding = apd.RoundFloor
	return ctx
}

func (c Context) ceiling() *apd.Context {
	ctx := c.base()
	ctx.Rounding = apd.RoundCeiling
	return ctx
}

// decimalOp is the shape of apd's binary Context methods.
type decimalOp func(ctx *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)

var (
	opAdd decimalOp = (*apd.Context).Add
	opSub decimalOp = (*apd.Context).Sub
	opMul decimalOp = (*apd.Context).Mul
	opQuo decimalOp = (*apd.Context).Quo
)

// apply runs f under ctx and wraps the result.
func apply(op string, ctx *apd.Context, f decimalOp, x, y Real) (Real, error) {
	d := new(apd.Decimal)
	if _, err := f(ctx, d, x.dec(), y.dec()); err != nil {
		return Real{}, numerr.Domain(op, "%v", err)
	}
	if d.IsZero() {
		d.Negative = false
	}
	return Real{d: d}, nil
}
