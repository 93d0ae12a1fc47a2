package coerce

import (
	"github.com/roach88/numtower/internal/julian"
	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/rational"
	"github.com/roach88/numtower/internal/zn"
)

// Value is a sealed interface over the six numeric kinds.
// Only Integer, Rational, Real, Complex, Interval and Time implement it.
type Value interface {
	Tag() Tag
	String() string
	value() // Sealed
}

// Integer wraps a fixed-width integer.
type Integer zn.Int

func (Integer) value() {}
func (Integer) Tag() Tag { return TagInteger }

// Int returns the wrapped integer.
func (v Integer) Int() zn.Int { return zn.Int(v) }

func (v Integer) String() string { return zn.Int(v).String() }

// Rational wraps an exact rational.
type Rational rational.Rat

func (Rational) value() {}
func (Rational) Tag() Tag { return TagRational }

// Rat returns the wrapped rational.
func (v Rational) Rat() rational.Rat { return rational.Rat(v) }

func (v Rational) String() string { return rational.Rat(v).String() }

// Real wraps an arbitrary-precision decimal.
type Real mp.Real

func (Real) value() {}
func (Real) Tag() Tag { return TagReal }

// Real returns the wrapped decimal.
func (v Real) Real() mp.Real { return mp.Real(v) }

func (v Real) String() string { return mp.Real(v).String() }

// Complex wraps a complex number.
type Complex mp.Complex

func (Complex) value() {}
func (Complex) Tag() Tag { return TagComplex }

// Complex returns the wrapped complex number.
func (v Complex) Complex() mp.Complex { return mp.Complex(v) }

func (v Complex) String() string { return mp.Complex(v).String() }

// Interval wraps a closed interval.
type Interval mp.Interval

func (Interval) value() {}
func (Interval) Tag() Tag { return TagInterval }

// Interval returns the wrapped interval.
func (v Interval) Interval() mp.Interval { return mp.Interval(v) }

func (v Interval) String() string { return mp.Interval(v).String() }

// Time wraps a Julian day instant or span.
type Time julian.Time

func (Time) value() {}
func (Time) Tag() Tag { return TagTime }

// Time returns the wrapped time.
func (v Time) Time() julian.Time { return julian.Time(v) }

func (v Time) String() string { return julian.Time(v).String() }

// Equal reports whether a and b have the same tag and the same value.
// Integers must also agree on width and signedness.
func Equal(a, b Value) bool {
	if a == nil || b == nil || a.Tag() != b.Tag() {
		return false
	}
	switch x := a.(type) {
	case Integer:
		return x.Int().Equal(b.(Integer).Int())
	case Rational:
		return x.Rat().Equal(b.(Rational).Rat())
	case Real:
		return x.Real().Cmp(b.(Real).Real()) == 0
	case Complex:
		return x.Complex().Equal(b.(Complex).Complex())
	case Interval:
		return x.Interval().Equal(b.(Interval).Interval())
	case Time:
		return x.Time().Equal(b.(Time).Time())
	}
	return false
}
