package mp

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/numtower/internal/numerr"
)

// maxIntegralExponent caps the decimal exponent Trunc and Floor expand into
// a big.Int.
const maxIntegralExponent = 1 << 16

var (
	bigTen  = big.NewInt(10)
	decZero = apd.New(0, 0)
)

// Real is an immutable arbitrary-precision decimal. The zero value is 0.
type Real struct {
	d *apd.Decimal
}

// NewReal returns v as a Real.
func NewReal(v int64) Real {
	return Real{d: apd.New(v, 0)}
}

// RealFromBig returns b as an exact Real.
func RealFromBig(b *big.Int) Real {
	return Real{d: apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(b), 0)}
}

// RealFromDecimal returns a Real holding a copy of d. Non-finite values are
// a domain error.
func RealFromDecimal(d *apd.Decimal) (Real, error) {
	if d.Form != apd.Finite {
		return Real{}, numerr.Domain("mp.RealFromDecimal", "non-finite value %s", d)
	}
	return Real{d: new(apd.Decimal).Set(d)}, nil
}

// ParseReal reads a decimal literal such as "3.25", "-1e-7" or "1_000.5".
// The value is kept exactly as written; rounding happens in arithmetic.
func ParseReal(s string) (Real, error) {
	text := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return Real{}, numerr.Domain("mp.ParseReal", "can't set real from %q", s)
	}
	if d.Form != apd.Finite {
		return Real{}, numerr.Domain("mp.ParseReal", "non-finite value %q", s)
	}
	return Real{d: d}, nil
}

// MustParseReal is like ParseReal but panics on error.
func MustParseReal(s string) Real {
	x, err := ParseReal(s)
	if err != nil {
		panic(err)
	}
	return x
}

func (x Real) dec() *apd.Decimal {
	if x.d == nil {
		return decZero
	}
	return x.d
}

// Decimal returns a copy of the underlying decimal.
func (x Real) Decimal() *apd.Decimal {
	return new(apd.Decimal).Set(x.dec())
}

// Add returns x + y rounded to c.
func (x Real) Add(c Context, y Real) (Real, error) {
	return apply("mp.Add", c.base(), opAdd, x, y)
}

// Sub returns x - y rounded to c.
func (x Real) Sub(c Context, y Real) (Real, error) {
	return apply("mp.Sub", c.base(), opSub, x, y)
}

// Mul returns x * y rounded to c.
func (x Real) Mul(c Context, y Real) (Real, error) {
	return apply("mp.Mul", c.base(), opMul, x, y)
}

// Quo returns x / y rounded to c. A zero divisor is a domain error.
func (x Real) Quo(c Context, y Real) (Real, error) {
	if y.IsZero() {
		return Real{}, numerr.Domain("mp.Quo", "division by zero")
	}
	return apply("mp.Quo", c.base(), opQuo, x, y)
}

// Sqrt returns the square root of x. Negative x is a domain error.
func (x Real) Sqrt(c Context) (Real, error) {
	if x.Sign() < 0 {
		return Real{}, numerr.Domain("mp.Sqrt", "square root of negative number %s", x)
	}
	d := new(apd.Decimal)
	if _, err := c.base().Sqrt(d, x.dec()); err != nil {
		return Real{}, numerr.Domain("mp.Sqrt", "%v", err)
	}
	return Real{d: d}, nil
}

// Pow returns x ** y. A negative base needs an integral exponent; zero to
// a negative power is a domain error.
func (x Real) Pow(c Context, y Real) (Real, error) {
	if x.IsZero() && y.Sign() < 0 {
		return Real{}, numerr.Domain("mp.Pow", "zero to a negative power")
	}
	d := new(apd.Decimal)
	if _, err := c.base().Pow(d, x.dec(), y.dec()); err != nil {
		return Real{}, numerr.Domain("mp.Pow", "%v", err)
	}
	return Real{d: d}, nil
}

// Round rounds x to c's precision.
func (x Real) Round(c Context) (Real, error) {
	d := new(apd.Decimal)
	if _, err := c.base().Round(d, x.dec()); err != nil {
		return Real{}, numerr.Domain("mp.Round", "%v", err)
	}
	return Real{d: d}, nil
}

// Neg returns -x.
func (x Real) Neg() Real {
	if x.IsZero() {
		return Real{}
	}
	return Real{d: new(apd.Decimal).Neg(x.dec())}
}

// Abs returns |x|.
func (x Real) Abs() Real {
	return Real{d: new(apd.Decimal).Abs(x.dec())}
}

// Cmp compares x and y exactly.
func (x Real) Cmp(y Real) int {
	return x.dec().Cmp(y.dec())
}

// Sign returns -1, 0 or +1.
func (x Real) Sign() int {
	return x.dec().Sign()
}

// IsZero reports whether x == 0.
func (x Real) IsZero() bool {
	return x.dec().IsZero()
}

// IsInteger reports whether x has no fractional part.
func (x Real) IsInteger() bool {
	var integ, frac apd.Decimal
	x.dec().Modf(&integ, &frac)
	return frac.IsZero()
}

// Trunc returns the integer part of x, rounding toward zero.
func (x Real) Trunc() (*big.Int, error) {
	var integ, frac apd.Decimal
	x.dec().Modf(&integ, &frac)
	return integral("mp.Trunc", &integ)
}

// Floor returns the largest integer <= x.
func (x Real) Floor() (*big.Int, error) {
	var integ, frac apd.Decimal
	x.dec().Modf(&integ, &frac)
	v, err := integral("mp.Floor", &integ)
	if err != nil {
		return nil, err
	}
	if frac.Sign() < 0 {
		v.Sub(v, big.NewInt(1))
	}
	return v, nil
}

// integral expands an integral decimal into a big.Int.
func integral(op string, d *apd.Decimal) (*big.Int, error) {
	if d.Exponent > maxIntegralExponent {
		return nil, numerr.Domain(op, "%s is too large to convert to an integer", d)
	}
	v := d.Coeff.MathBigInt()
	switch {
	case d.Exponent > 0:
		v.Mul(v, new(big.Int).Exp(bigTen, big.NewInt(int64(d.Exponent)), nil))
	case d.Exponent < 0:
		v.Quo(v, new(big.Int).Exp(bigTen, big.NewInt(int64(-d.Exponent)), nil))
	}
	if d.Negative {
		v.Neg(v)
	}
	return v, nil
}

// String renders x in plain decimal notation for modest exponents and in
// scientific notation otherwise.
func (x Real) String() string {
	return x.dec().String()
}

// Text renders x with apd's format verbs ('e', 'f', 'g').
func (x Real) Text(format byte) string {
	return x.dec().Text(format)
}
