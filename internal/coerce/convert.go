// Package coerce converts values between the six numeric kinds and picks
// the common kind for binary operations.
//
// Every (source kind, target tag) pair has exactly one rule:
//
//	source    -> integer     rational      real       complex   interval   time
//	integer      as is       n/1           exact      (x, 0)    [x, x]     day x
//	rational     trunc       as is         n/d        (x, 0)    [x, x]     day x
//	real         trunc       approximate   as is      (x, 0)    [x, x]     day x
//	complex      |z|         |z|           |z|        as is     [|z|,|z|]  day |z|
//	interval     mid         mid           mid        (mid, 0)  as is      span
//	time         day count   day count     day count  (days, 0) span       as is
//
// Conversion to integer truncates toward zero for every source and fits the
// result into the environment's integer mode. Conversion of a real-valued
// source to rational approximates at the requested number of digits, or at
// the full working precision when digits is 0; the two generally differ.
package coerce

import (
	"github.com/roach88/numtower/internal/julian"
	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/rational"
	"github.com/roach88/numtower/internal/zn"
)

// Env is the configuration threaded through every conversion.
type Env struct {
	Int  zn.Mode
	Real mp.Context
}

// DefaultEnv returns unbounded integers and the default working precision.
func DefaultEnv() Env {
	return Env{Int: zn.DefaultMode(), Real: mp.DefaultContext()}
}

// TagOf returns the tag of v, or false for nil.
func TagOf(v Value) (Tag, bool) {
	if v == nil {
		return 0, false
	}
	return v.Tag(), true
}

// Convert returns v converted to tag to. digits is the display precision
// used when a real-valued source becomes a rational; 0 means full working
// precision.
func (e Env) Convert(v Value, to Tag, digits int) (Value, error) {
	const op = "coerce.Convert"

	if v == nil {
		return nil, numerr.Type(op, "no value to convert")
	}
	if !to.Valid() {
		return nil, numerr.Type(op, "unknown target tag %s", to)
	}
	if v.Tag() == to {
		return v, nil
	}

	switch x := v.(type) {
	case Integer:
		return e.fromInteger(x.Int(), to)
	case Rational:
		return e.fromRational(x.Rat(), to)
	case Real:
		return e.fromReal(x.Real(), to, digits)
	case Complex:
		m, err := x.Complex().Abs(e.Real)
		if err != nil {
			return nil, err
		}
		return e.fromReal(m, to, digits)
	case Interval:
		if to == TagTime {
			return Time(julian.FromInterval(x.Interval())), nil
		}
		mid, err := x.Interval().Mid(e.Real)
		if err != nil {
			return nil, err
		}
		return e.fromReal(mid, to, digits)
	case Time:
		if to == TagInterval {
			return Interval(x.Time().Interval()), nil
		}
		days, err := x.Time().Days(e.Real)
		if err != nil {
			return nil, err
		}
		return e.fromReal(days, to, digits)
	}
	return nil, numerr.Type(op, "can't convert %T to %s", v, to)
}

func (e Env) fromInteger(x zn.Int, to Tag) (Value, error) {
	switch to {
	case TagRational:
		return Rational(rational.FromInt(x)), nil
	default:
		return e.fromExactReal(mp.RealFromBig(x.BigInt()), to)
	}
}

func (e Env) fromRational(r rational.Rat, to Tag) (Value, error) {
	if to == TagInteger {
		return Integer(r.Trunc(e.Int)), nil
	}
	x, err := r.Real(e.Real)
	if err != nil {
		return nil, err
	}
	return e.fromExactReal(x, to)
}

// fromExactReal handles the targets that take a real without approximation.
func (e Env) fromExactReal(x mp.Real, to Tag) (Value, error) {
	switch to {
	case TagInteger:
		n, err := x.Trunc()
		if err != nil {
			return nil, err
		}
		return Integer(e.Int.New(n)), nil
	case TagReal:
		return Real(x), nil
	case TagComplex:
		return Complex(mp.RealComplex(x)), nil
	case TagInterval:
		return Interval(mp.Point(x)), nil
	case TagTime:
		return Time(julian.FromDays(x)), nil
	}
	return nil, numerr.Type("coerce.Convert", "can't convert a real to %s", to)
}

func (e Env) fromReal(x mp.Real, to Tag, digits int) (Value, error) {
	if to == TagRational {
		r, err := rational.Approximate(e.Real, x, digits)
		if err != nil {
			return nil, err
		}
		return Rational(r), nil
	}
	return e.fromExactReal(x, to)
}

// AutoCast converts a and b to their common tag. Two integers widen to the
// larger width and to unsigned if either is unsigned.
func (e Env) AutoCast(a, b Value) (Value, Value, error) {
	if a == nil || b == nil {
		return nil, nil, numerr.Type("coerce.AutoCast", "missing operand")
	}
	if x, ok := a.(Integer); ok {
		if y, ok := b.(Integer); ok {
			bits, signed := zn.Common(x.Int(), y.Int())
			m := zn.Mode{Bits: bits, Signed: signed}
			return Integer(m.Rebind(x.Int())), Integer(m.Rebind(y.Int())), nil
		}
	}

	to := Promote(a.Tag(), b.Tag())
	ca, err := e.Convert(a, to, 0)
	if err != nil {
		return nil, nil, err
	}
	cb, err := e.Convert(b, to, 0)
	if err != nil {
		return nil, nil, err
	}
	return ca, cb, nil
}
