package mp

import "github.com/roach88/numtower/internal/numerr"

// Interval is a closed interval [lo, hi] with lo <= hi.
//
// The zero value is the point interval [0, 0].
type Interval struct {
	lo, hi Real
}

// NewInterval returns [lo, hi]. lo > hi is a domain error.
func NewInterval(lo, hi Real) (Interval, error) {
	if lo.Cmp(hi) > 0 {
		return Interval{}, numerr.Domain("mp.NewInterval", "lower bound %s exceeds upper bound %s", lo, hi)
	}
	return Interval{lo: lo, hi: hi}, nil
}

// Point returns the degenerate interval [x, x].
func Point(x Real) Interval {
	return Interval{lo: x, hi: x}
}

// Lo returns the lower bound.
func (v Interval) Lo() Real { return v.lo }

// Hi returns the upper bound.
func (v Interval) Hi() Real { return v.hi }

// IsPoint reports whether lo == hi.
func (v Interval) IsPoint() bool { return v.lo.Cmp(v.hi) == 0 }

// Equal reports whether both bounds match exactly.
func (v Interval) Equal(w Interval) bool {
	return v.lo.Cmp(w.lo) == 0 && v.hi.Cmp(w.hi) == 0
}

// Contains reports whether lo <= x <= hi.
func (v Interval) Contains(x Real) bool {
	return v.lo.Cmp(x) <= 0 && x.Cmp(v.hi) <= 0
}

// Mid returns the midpoint (lo + hi) / 2.
func (v Interval) Mid(c Context) (Real, error) {
	if v.IsPoint() {
		return v.lo, nil
	}
	s, err := v.lo.Add(c.Guarded(guardDigits), v.hi)
	if err != nil {
		return Real{}, err
	}
	return s.Quo(c, NewReal(2))
}

// Width returns hi - lo, rounded up.
func (v Interval) Width(c Context) (Real, error) {
	return apply("mp.Width", c.ceiling(), opSub, v.hi, v.lo)
}

// Neg returns [-hi, -lo].
func (v Interval) Neg() Interval {
	return Interval{lo: v.hi.Neg(), hi: v.lo.Neg()}
}

// Add returns [a+c, b+d] rounded outward.
func (v Interval) Add(c Context, w Interval) (Interval, error) {
	return outward(c, "mp.Add", opAdd, v.lo, w.lo, v.hi, w.hi)
}

// Sub returns [a-d, b-c] rounded outward.
func (v Interval) Sub(c Context, w Interval) (Interval, error) {
	return outward(c, "mp.Sub", opSub, v.lo, w.hi, v.hi, w.lo)
}

// Mul returns the hull of the four bound products, rounded outward.
func (v Interval) Mul(c Context, w Interval) (Interval, error) {
	return hull(c, "mp.Mul", opMul, v, w)
}

// Quo returns v / w rounded outward. A divisor containing zero is a domain
// error.
func (v Interval) Quo(c Context, w Interval) (Interval, error) {
	if w.Contains(Real{}) {
		return Interval{}, numerr.Domain("mp.Quo", "interval divisor %s contains zero", w)
	}
	return hull(c, "mp.Quo", opQuo, v, w)
}

// String renders v as "[lo, hi]".
func (v Interval) String() string {
	return "[" + v.lo.String() + ", " + v.hi.String() + "]"
}

// outward computes [f(a, b) rounded down, f(x, y) rounded up].
func outward(c Context, op string, f decimalOp, a, b, x, y Real) (Interval, error) {
	lo, err := apply(op, c.floor(), f, a, b)
	if err != nil {
		return Interval{}, err
	}
	hi, err := apply(op, c.ceiling(), f, x, y)
	if err != nil {
		return Interval{}, err
	}
	return Interval{lo: lo, hi: hi}, nil
}

// hull applies f to every pair of bounds and keeps the extremes, rounding
// minima down and maxima up.
func hull(c Context, op string, f decimalOp, v, w Interval) (Interval, error) {
	pairs := [4][2]Real{{v.lo, w.lo}, {v.lo, w.hi}, {v.hi, w.lo}, {v.hi, w.hi}}
	var lo, hi Real
	for i, p := range pairs {
		down, err := apply(op, c.floor(), f, p[0], p[1])
		if err != nil {
			return Interval{}, err
		}
		up, err := apply(op, c.ceiling(), f, p[0], p[1])
		if err != nil {
			return Interval{}, err
		}
		if i == 0 || down.Cmp(lo) < 0 {
			lo = down
		}
		if i == 0 || up.Cmp(hi) > 0 {
			hi = up
		}
	}
	return Interval{lo: lo, hi: hi}, nil
}
