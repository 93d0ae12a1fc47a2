package zn

import (
	"math/big"

	"github.com/roach88/numtower/internal/numerr"
)

// binary widens x and y to their common mode, applies f and renormalizes.
func (x Int) binary(y Int, f func(z, a, b *big.Int)) Int {
	bits, signed := Common(x, y)
	a, b := x.fit(bits, signed), y.fit(bits, signed)
	z := new(big.Int)
	f(z, a, b)
	return newInt(z, bits, signed)
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return x.binary(y, func(z, a, b *big.Int) { z.Add(a, b) })
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.binary(y, func(z, a, b *big.Int) { z.Sub(a, b) })
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return x.binary(y, func(z, a, b *big.Int) { z.Mul(a, b) })
}

// And returns x & y.
func (x Int) And(y Int) Int {
	return x.binary(y, func(z, a, b *big.Int) { z.And(a, b) })
}

// Or returns x | y.
func (x Int) Or(y Int) Int {
	return x.binary(y, func(z, a, b *big.Int) { z.Or(a, b) })
}

// Xor returns x ^ y.
func (x Int) Xor(y Int) Int {
	return x.binary(y, func(z, a, b *big.Int) { z.Xor(a, b) })
}

// AndNot returns x &^ y.
func (x Int) AndNot(y Int) Int {
	return x.binary(y, func(z, a, b *big.Int) { z.AndNot(a, b) })
}

// DivMod divides unbounded values with the given rounding. The remainder
// satisfies a == q*b + r. A zero divisor is a domain error.
func DivMod(a, b *big.Int, d Division) (q, r *big.Int, err error) {
	if b.Sign() == 0 {
		return nil, nil, numerr.Domain("zn.DivMod", "division by zero")
	}
	q, r = new(big.Int).QuoRem(a, b, new(big.Int))
	if d == Floor && r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, bigOne)
		r.Add(r, b)
	}
	return q, r, nil
}

// DivMod returns the quotient and remainder of x and y in their common
// mode.
func (x Int) DivMod(y Int, d Division) (q, r Int, err error) {
	bits, signed := Common(x, y)
	a, b := x.fit(bits, signed), y.fit(bits, signed)
	qv, rv, err := DivMod(a, b, d)
	if err != nil {
		return Int{}, Int{}, err
	}
	return newInt(qv, bits, signed), newInt(rv, bits, signed), nil
}

// Div returns the quotient x div y.
func (x Int) Div(y Int, d Division) (Int, error) {
	q, _, err := x.DivMod(y, d)
	return q, err
}

// Mod returns the remainder x mod y.
func (x Int) Mod(y Int, d Division) (Int, error) {
	_, r, err := x.DivMod(y, d)
	return r, err
}

// shiftCount returns the count y fitted into the common mode as b. The sign
// is checked on y itself, before a negative count can be reinterpreted as
// unsigned.
func shiftCount(op string, y Int, b *big.Int) (*big.Int, error) {
	if y.Sign() < 0 {
		return nil, numerr.Domain(op, "negative shift count %s", y)
	}
	return b, nil
}

// Lsh returns x << y. Counts at or above a bounded width give 0.
func (x Int) Lsh(y Int) (Int, error) {
	bits, signed := Common(x, y)
	a, b := x.fit(bits, signed), y.fit(bits, signed)
	n, err := shiftCount("zn.Lsh", y, b)
	if err != nil {
		return Int{}, err
	}
	if bits > 0 {
		if n.Cmp(new(big.Int).SetUint64(uint64(bits))) >= 0 {
			return newInt(new(big.Int), bits, signed), nil
		}
		return newInt(new(big.Int).Lsh(a, uint(n.Uint64())), bits, signed), nil
	}
	if a.Sign() == 0 {
		return newInt(new(big.Int), bits, signed), nil
	}
	if !n.IsUint64() || n.Uint64() > maxUnboundedShift {
		return Int{}, numerr.Domain("zn.Lsh", "shift count %s too large for an unbounded integer", n)
	}
	return newInt(new(big.Int).Lsh(a, uint(n.Uint64())), bits, signed), nil
}

// Rsh returns x >> y. Signed values shift arithmetically.
func (x Int) Rsh(y Int) (Int, error) {
	bits, signed := Common(x, y)
	a, b := x.fit(bits, signed), y.fit(bits, signed)
	n, err := shiftCount("zn.Rsh", y, b)
	if err != nil {
		return Int{}, err
	}
	z := new(big.Int)
	if n.BitLen() > 32 || n.Uint64() >= uint64(a.BitLen()) {
		if a.Sign() < 0 {
			z.SetInt64(-1)
		}
		return newInt(z, bits, signed), nil
	}
	return newInt(z.Rsh(a, uint(n.Uint64())), bits, signed), nil
}

// Exp returns x ** y. Negative exponents are a domain error.
func (x Int) Exp(y Int) (Int, error) {
	bits, signed := Common(x, y)
	a, b := x.fit(bits, signed), y.fit(bits, signed)
	if y.Sign() < 0 {
		return Int{}, numerr.Domain("zn.Exp", "negative exponent %s", y)
	}
	if bits > 0 {
		return newInt(new(big.Int).Exp(a, b, pow2(bits)), bits, signed), nil
	}
	if a.CmpAbs(bigOne) > 0 {
		if !b.IsUint64() || b.Uint64() > maxUnboundedShift || b.Uint64()*uint64(a.BitLen()) > maxUnboundedShift {
			return Int{}, numerr.Domain("zn.Exp", "result of %s ** %s too large", a, b)
		}
	}
	return newInt(new(big.Int).Exp(a, b, nil), bits, signed), nil
}

// Not returns the bitwise complement of x.
func (x Int) Not() Int {
	return newInt(new(big.Int).Not(x.value()), x.bits, x.Signed())
}

// Neg returns -x under the given policy. The policy only matters for the
// signed values 0 and MIN; everything else is two's-complement negation.
func (x Int) Neg(p Negation) Int {
	if x.bits > 0 && x.Signed() {
		switch p {
		case NegateToZero:
			if x.IsMin() {
				return newInt(new(big.Int), x.bits, true)
			}
		case NegateSwap:
			if x.IsMin() {
				return newInt(new(big.Int), x.bits, true)
			}
			if x.Sign() == 0 {
				return newInt(new(big.Int).Neg(pow2(x.bits-1)), x.bits, true)
			}
		}
	}
	return newInt(new(big.Int).Neg(x.value()), x.bits, x.Signed())
}

// Abs returns |x|. The most negative signed value has no absolute value and
// is a domain error.
func (x Int) Abs() (Int, error) {
	if x.IsMin() {
		return Int{}, numerr.Domain("zn.Abs", "can't take the absolute value of the most negative number %s", x)
	}
	return newInt(new(big.Int).Abs(x.value()), x.bits, x.Signed()), nil
}
