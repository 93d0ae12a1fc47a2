package calc

import (
	"log/slog"
	"math/big"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/julian"
	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/rational"
	"github.com/roach88/numtower/internal/zn"
)

type op int

const (
	opAdd op = iota
	opSub
	opMul
	opDiv
	opIntDiv
	opMod
	opPow
	opAnd
	opOr
	opXor
	opLsh
	opRsh
)

var ops = [...]struct{ name, symbol string }{
	opAdd:    {"Add", "+"},
	opSub:    {"Sub", "-"},
	opMul:    {"Mul", "*"},
	opDiv:    {"Div", "/"},
	opIntDiv: {"IntDiv", "//"},
	opMod:    {"Mod", "%"},
	opPow:    {"Pow", "**"},
	opAnd:    {"And", "&"},
	opOr:     {"Or", "|"},
	opXor:    {"Xor", "^"},
	opLsh:    {"Lsh", "<<"},
	opRsh:    {"Rsh", ">>"},
}

func (o op) String() string { return ops[o].symbol }

func (o op) name() string { return "calc." + ops[o].name }

// modular reports whether the modulus applies to integer results of o.
func (o op) modular() bool { return o <= opIntDiv }

func (o op) bitwise() bool { return o >= opAnd }

// Calculator applies operators under fixed Settings. It holds no other
// state and is safe for concurrent use.
type Calculator struct {
	s Settings
}

// New returns a calculator using s.
func New(s Settings) *Calculator {
	return &Calculator{s: s}
}

// Settings returns the calculator's configuration.
func (c *Calculator) Settings() Settings { return c.s }

// WithSettings returns a calculator using s. c is unchanged.
func (c *Calculator) WithSettings(s Settings) *Calculator {
	return New(s)
}

// Int returns v as an Integer in the configured mode.
func (c *Calculator) Int(v int64) coerce.Value {
	return coerce.Integer(c.s.Env.Int.NewInt64(v))
}

// Add returns a + b.
func (c *Calculator) Add(a, b coerce.Value) (coerce.Value, error) { return c.binary(opAdd, a, b) }

// Sub returns a - b.
func (c *Calculator) Sub(a, b coerce.Value) (coerce.Value, error) { return c.binary(opSub, a, b) }

// Mul returns a * b.
func (c *Calculator) Mul(a, b coerce.Value) (coerce.Value, error) { return c.binary(opMul, a, b) }

// Div returns a / b. Dividing two integers is exact: the result is a
// Rational, an Integer when b divides a, or a Real when rationals are off.
// With a modulus set it is integer division instead.
func (c *Calculator) Div(a, b coerce.Value) (coerce.Value, error) { return c.binary(opDiv, a, b) }

// IntDiv returns a div b rounded by the division mode, as an Integer.
func (c *Calculator) IntDiv(a, b coerce.Value) (coerce.Value, error) {
	return c.binary(opIntDiv, a, b)
}

// Mod returns the remainder of a div b.
func (c *Calculator) Mod(a, b coerce.Value) (coerce.Value, error) { return c.binary(opMod, a, b) }

// Pow returns a ** b.
func (c *Calculator) Pow(a, b coerce.Value) (coerce.Value, error) { return c.binary(opPow, a, b) }

// And returns the bitwise and of a and b as integers.
func (c *Calculator) And(a, b coerce.Value) (coerce.Value, error) { return c.binary(opAnd, a, b) }

// Or returns the bitwise or of a and b as integers.
func (c *Calculator) Or(a, b coerce.Value) (coerce.Value, error) { return c.binary(opOr, a, b) }

// Xor returns the bitwise exclusive or of a and b as integers.
func (c *Calculator) Xor(a, b coerce.Value) (coerce.Value, error) { return c.binary(opXor, a, b) }

// Lsh returns a << b as integers.
func (c *Calculator) Lsh(a, b coerce.Value) (coerce.Value, error) { return c.binary(opLsh, a, b) }

// Rsh returns a >> b as integers.
func (c *Calculator) Rsh(a, b coerce.Value) (coerce.Value, error) { return c.binary(opRsh, a, b) }

// IsBinary reports whether sym names a binary operator.
func IsBinary(sym string) bool {
	_, ok := lookup(sym)
	return ok
}

func lookup(sym string) (op, bool) {
	for o := range ops {
		if ops[o].symbol == sym {
			return op(o), true
		}
	}
	return 0, false
}

// Binary applies the operator spelled sym: + - * / // % ** & | ^ << >>.
func (c *Calculator) Binary(sym string, a, b coerce.Value) (coerce.Value, error) {
	o, ok := lookup(sym)
	if !ok {
		return nil, numerr.Type("calc.Binary", "unknown operator %q", sym)
	}
	return c.binary(o, a, b)
}

func (c *Calculator) binary(o op, a, b coerce.Value) (coerce.Value, error) {
	if a == nil || b == nil {
		return nil, numerr.Type(o.name(), "missing operand")
	}
	if !c.s.Coerce && a.Tag() != b.Tag() {
		return nil, numerr.Type(o.name(), "can't apply %s to %s and %s with coercion off", o, a.Tag(), b.Tag())
	}
	slog.Debug("calc", "op", o.String(), "a", a.Tag().String(), "b", b.Tag().String())

	if o.bitwise() {
		return c.bitwise(o, a, b)
	}
	if x, ok := a.(coerce.Integer); ok {
		if y, ok := b.(coerce.Integer); ok {
			return c.finish(c.integers(o, x.Int(), y.Int()))
		}
	}
	if a.Tag() == coerce.TagTime || b.Tag() == coerce.TagTime {
		return c.times(o, a, b)
	}

	x, y, err := c.s.Env.AutoCast(a, b)
	if err != nil {
		return nil, err
	}
	switch x := x.(type) {
	case coerce.Rational:
		return c.finish(c.rationals(o, x.Rat(), y.(coerce.Rational).Rat()))
	case coerce.Real:
		return c.finish(c.reals(o, x.Real(), y.(coerce.Real).Real()))
	case coerce.Complex:
		return c.finish(c.complexes(o, x.Complex(), y.(coerce.Complex).Complex()))
	case coerce.Interval:
		return c.intervals(o, x.Interval(), y.(coerce.Interval).Interval())
	}
	return nil, numerr.Type(o.name(), "can't apply %s to %s", o, x.Tag())
}

func (c *Calculator) integers(o op, x, y zn.Int) (coerce.Value, error) {
	d := c.s.Env.Int.Division
	var r zn.Int
	var err error
	switch o {
	case opAdd:
		r = x.Add(y)
	case opSub:
		r = x.Sub(y)
	case opMul:
		r = x.Mul(y)
	case opDiv:
		if !c.s.Modulus.Enabled() {
			return c.intQuo(x, y)
		}
		r, err = x.Div(y, d)
	case opIntDiv:
		r, err = x.Div(y, d)
	case opMod:
		r, err = x.Mod(y, d)
	case opPow:
		if y.Sign() < 0 {
			return c.negativePower(x, y)
		}
		r, err = x.Exp(y)
	default:
		return nil, numerr.Type(o.name(), "can't apply %s to integers", o)
	}
	if err != nil {
		return nil, err
	}
	if o.modular() {
		r = c.s.Modulus.Apply(r, d)
	}
	return coerce.Integer(r), nil
}

// intQuo divides two integers exactly.
func (c *Calculator) intQuo(x, y zn.Int) (coerce.Value, error) {
	if y.Sign() == 0 {
		return nil, numerr.Domain("calc.Div", "division by zero")
	}
	bits, signed := zn.Common(x, y)
	m := zn.Mode{Bits: bits, Signed: signed}
	a, b := m.Rebind(x).BigInt(), m.Rebind(y).BigInt()
	if !c.s.Rationals {
		return realValue(mp.RealFromBig(a).Quo(c.s.Env.Real, mp.RealFromBig(b)))
	}
	q, err := rational.New(a, b)
	if err != nil {
		return nil, err
	}
	if q.IsInt() {
		return coerce.Integer(m.New(q.Num())), nil
	}
	return coerce.Rational(q), nil
}

func (c *Calculator) negativePower(x, y zn.Int) (coerce.Value, error) {
	if !c.s.Rationals {
		return c.reals(opPow, mp.RealFromBig(x.BigInt()), mp.RealFromBig(y.BigInt()))
	}
	k, ok := y.Int64()
	if !ok {
		return nil, numerr.Domain("calc.Pow", "exponent %s too large", y)
	}
	return rationalValue(rational.FromInt(x).Pow(k))
}

func (c *Calculator) rationals(o op, x, y rational.Rat) (coerce.Value, error) {
	switch o {
	case opAdd:
		return coerce.Rational(x.Add(y)), nil
	case opSub:
		return coerce.Rational(x.Sub(y)), nil
	case opMul:
		return coerce.Rational(x.Mul(y)), nil
	case opDiv:
		return rationalValue(x.Quo(y))
	case opIntDiv, opMod:
		q, err := x.Quo(y)
		if err != nil {
			return nil, err
		}
		n, _, err := zn.DivMod(q.Num(), q.Denom(), c.s.Env.Int.Division)
		if err != nil {
			return nil, err
		}
		if o == opIntDiv {
			return coerce.Integer(c.s.Env.Int.New(n)), nil
		}
		return coerce.Rational(x.Sub(y.Mul(rational.FromBig(n)))), nil
	case opPow:
		if k := y.Num(); y.IsInt() && k.IsInt64() {
			return rationalValue(x.Pow(k.Int64()))
		}
		xr, err := x.Real(c.s.Env.Real)
		if err != nil {
			return nil, err
		}
		yr, err := y.Real(c.s.Env.Real)
		if err != nil {
			return nil, err
		}
		return c.reals(opPow, xr, yr)
	}
	return nil, numerr.Type(o.name(), "can't apply %s to rationals", o)
}

func (c *Calculator) reals(o op, x, y mp.Real) (coerce.Value, error) {
	ctx := c.s.Env.Real
	switch o {
	case opAdd:
		return realValue(x.Add(ctx, y))
	case opSub:
		return realValue(x.Sub(ctx, y))
	case opMul:
		return realValue(x.Mul(ctx, y))
	case opDiv:
		return realValue(x.Quo(ctx, y))
	case opIntDiv:
		n, err := c.realQuotient(x, y)
		if err != nil {
			return nil, err
		}
		return coerce.Integer(c.s.Env.Int.New(n)), nil
	case opMod:
		n, err := c.realQuotient(x, y)
		if err != nil {
			return nil, err
		}
		p, err := y.Mul(ctx.Guarded(uint32(len(n.String()))), mp.RealFromBig(n))
		if err != nil {
			return nil, err
		}
		return realValue(x.Sub(ctx, p))
	case opPow:
		return realValue(x.Pow(ctx, y))
	}
	return nil, numerr.Type(o.name(), "can't apply %s to reals", o)
}

// realQuotient returns x / y rounded to an integer by the division mode.
func (c *Calculator) realQuotient(x, y mp.Real) (*big.Int, error) {
	q, err := x.Quo(c.s.Env.Real, y)
	if err != nil {
		return nil, err
	}
	if c.s.Env.Int.Division == zn.Floor {
		return q.Floor()
	}
	return q.Trunc()
}

func (c *Calculator) complexes(o op, x, y mp.Complex) (coerce.Value, error) {
	ctx := c.s.Env.Real
	var z mp.Complex
	var err error
	switch o {
	case opAdd:
		z, err = x.Add(ctx, y)
	case opSub:
		z, err = x.Sub(ctx, y)
	case opMul:
		z, err = x.Mul(ctx, y)
	case opDiv:
		z, err = x.Quo(ctx, y)
	default:
		return nil, numerr.Type(o.name(), "can't apply %s to complex numbers", o)
	}
	if err != nil {
		return nil, err
	}
	return coerce.Complex(z), nil
}

func (c *Calculator) intervals(o op, x, y mp.Interval) (coerce.Value, error) {
	ctx := c.s.Env.Real
	var v mp.Interval
	var err error
	switch o {
	case opAdd:
		v, err = x.Add(ctx, y)
	case opSub:
		v, err = x.Sub(ctx, y)
	case opMul:
		v, err = x.Mul(ctx, y)
	case opDiv:
		v, err = x.Quo(ctx, y)
	default:
		return nil, numerr.Type(o.name(), "can't apply %s to intervals", o)
	}
	if err != nil {
		return nil, err
	}
	return coerce.Interval(v), nil
}

// times handles a date on either side. A date on the left takes the other
// operand as a day delta; on the right, subtraction and division are
// reflected.
func (c *Calculator) times(o op, a, b coerce.Value) (coerce.Value, error) {
	if o > opDiv {
		return nil, numerr.Type(o.name(), "can't apply %s to a date/time", o)
	}
	x, y, err := c.s.Env.AutoCast(a, b)
	if err != nil {
		return nil, err
	}
	ctx := c.s.Env.Real
	t, u := x.(coerce.Time).Time(), y.(coerce.Time).Time()

	var r julian.Time
	if a.Tag() == coerce.TagTime {
		delta := u.Interval()
		switch o {
		case opAdd:
			r, err = t.Add(ctx, delta)
		case opSub:
			r, err = t.Sub(ctx, delta)
		case opMul:
			r, err = t.Mul(ctx, delta)
		case opDiv:
			r, err = t.Quo(ctx, delta)
		}
	} else {
		left := t.Interval()
		switch o {
		case opAdd:
			r, err = u.Add(ctx, left)
		case opSub:
			r, err = u.RSub(ctx, left)
		case opMul:
			r, err = u.Mul(ctx, left)
		case opDiv:
			r, err = u.RQuo(ctx, left)
		}
	}
	if err != nil {
		return nil, err
	}
	return coerce.Time(r), nil
}

func (c *Calculator) bitwise(o op, a, b coerce.Value) (coerce.Value, error) {
	x, err := c.toInt(a)
	if err != nil {
		return nil, err
	}
	y, err := c.toInt(b)
	if err != nil {
		return nil, err
	}
	var r zn.Int
	switch o {
	case opAnd:
		r = x.And(y)
	case opOr:
		r = x.Or(y)
	case opXor:
		r = x.Xor(y)
	case opLsh:
		r, err = x.Lsh(y)
	case opRsh:
		r, err = x.Rsh(y)
	}
	if err != nil {
		return nil, err
	}
	return coerce.Integer(r), nil
}

func (c *Calculator) toInt(v coerce.Value) (zn.Int, error) {
	out, err := c.s.Env.Convert(v, coerce.TagInteger, 0)
	if err != nil {
		return zn.Int{}, err
	}
	return out.(coerce.Integer).Int(), nil
}

// Neg returns -a. Integers follow the configured negation policy.
func (c *Calculator) Neg(a coerce.Value) (coerce.Value, error) {
	switch x := a.(type) {
	case coerce.Integer:
		return coerce.Integer(x.Int().Neg(c.s.Env.Int.Negation)), nil
	case coerce.Rational:
		return c.finish(coerce.Rational(x.Rat().Neg()), nil)
	case coerce.Real:
		return c.finish(coerce.Real(x.Real().Neg()), nil)
	case coerce.Complex:
		return c.finish(coerce.Complex(x.Complex().Neg()), nil)
	case coerce.Interval:
		return coerce.Interval(x.Interval().Neg()), nil
	}
	return nil, unaryTypeError("calc.Neg", a)
}

// Abs returns |a|. The absolute value of a complex number is a Real; that
// of an interval is the interval of absolute values of its members.
func (c *Calculator) Abs(a coerce.Value) (coerce.Value, error) {
	switch x := a.(type) {
	case coerce.Integer:
		r, err := x.Int().Abs()
		if err != nil {
			return nil, err
		}
		return coerce.Integer(r), nil
	case coerce.Rational:
		return c.finish(coerce.Rational(x.Rat().Abs()), nil)
	case coerce.Real:
		return c.finish(coerce.Real(x.Real().Abs()), nil)
	case coerce.Complex:
		return c.finish(realValue(x.Complex().Abs(c.s.Env.Real)))
	case coerce.Interval:
		return intervalAbs(x.Interval())
	}
	return nil, unaryTypeError("calc.Abs", a)
}

func intervalAbs(v mp.Interval) (coerce.Value, error) {
	switch {
	case v.Lo().Sign() >= 0:
		return coerce.Interval(v), nil
	case v.Hi().Sign() <= 0:
		return coerce.Interval(v.Neg()), nil
	}
	hi := v.Hi()
	if lo := v.Lo().Neg(); lo.Cmp(hi) > 0 {
		hi = lo
	}
	w, err := mp.NewInterval(mp.Real{}, hi)
	if err != nil {
		return nil, err
	}
	return coerce.Interval(w), nil
}

// Not returns the bitwise complement of a as an integer.
func (c *Calculator) Not(a coerce.Value) (coerce.Value, error) {
	if a == nil {
		return nil, unaryTypeError("calc.Not", a)
	}
	x, err := c.toInt(a)
	if err != nil {
		return nil, err
	}
	return coerce.Integer(x.Not()), nil
}

// IsUnary reports whether name is a unary operator: neg, abs or ~.
func IsUnary(name string) bool {
	switch name {
	case "neg", "abs", "~":
		return true
	}
	return false
}

// Unary applies the unary operator name.
func (c *Calculator) Unary(name string, a coerce.Value) (coerce.Value, error) {
	switch name {
	case "neg":
		return c.Neg(a)
	case "abs":
		return c.Abs(a)
	case "~":
		return c.Not(a)
	}
	return nil, numerr.Type("calc.Unary", "unknown operator %q", name)
}

func unaryTypeError(op string, a coerce.Value) error {
	if a == nil {
		return numerr.Type(op, "missing operand")
	}
	return numerr.Type(op, "can't apply to %s", a.Tag())
}

// finish downcasts a successful result when downcasting is on.
func (c *Calculator) finish(v coerce.Value, err error) (coerce.Value, error) {
	if err != nil || !c.s.Downcast {
		return v, err
	}
	return c.Downcast(v), nil
}

// Downcast returns v in the lowest kind that holds it exactly: a Rational
// with denominator 1 or an integral Real becomes an Integer when the value
// fits the integer mode, a Complex with zero imaginary part becomes a Real
// (and then possibly an Integer). Intervals and times are returned
// unchanged.
func (c *Calculator) Downcast(v coerce.Value) coerce.Value {
	switch x := v.(type) {
	case coerce.Rational:
		if r := x.Rat(); r.IsInt() {
			if n, ok := c.exactInt(r.Num()); ok {
				return coerce.Integer(n)
			}
		}
	case coerce.Real:
		if x.Real().IsInteger() {
			if t, err := x.Real().Trunc(); err == nil {
				if n, ok := c.exactInt(t); ok {
					return coerce.Integer(n)
				}
			}
		}
	case coerce.Complex:
		if z := x.Complex(); z.IsReal() {
			return c.Downcast(coerce.Real(z.Re))
		}
	}
	return v
}

// exactInt returns v in the integer mode, or false when the width would
// change its value.
func (c *Calculator) exactInt(v *big.Int) (zn.Int, bool) {
	n := c.s.Env.Int.New(v)
	return n, n.BigInt().Cmp(v) == 0
}

func realValue(x mp.Real, err error) (coerce.Value, error) {
	if err != nil {
		return nil, err
	}
	return coerce.Real(x), nil
}

func rationalValue(r rational.Rat, err error) (coerce.Value, error) {
	if err != nil {
		return nil, err
	}
	return coerce.Rational(r), nil
}
