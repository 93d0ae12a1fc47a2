// Package rational implements exact rationals and the continued-fraction
// approximation of reals by rationals.
//
// A Rat is always reduced with a positive denominator and never changes
// kind: a Rat whose denominator is 1 reports IsInt, and callers that want
// an integer downcast act on that.
//
// Comparing a Rat with an mp.Real converts the Rat at the caller's working
// precision, so the answer depends on that precision: 1/3 equals
// 0.3333333333 at 10 digits and differs from it at 11.
package rational

import (
	"math/big"
	"strings"

	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/zn"
)

// Rat is an immutable reduced fraction. The zero value is 0/1.
type Rat struct {
	r *big.Rat
}

// New returns n/d reduced. d == 0 is a domain error.
func New(n, d *big.Int) (Rat, error) {
	if d.Sign() == 0 {
		return Rat{}, numerr.Domain("rational.New", "denominator is zero")
	}
	return Rat{r: new(big.Rat).SetFrac(n, d)}, nil
}

// NewInt64 returns n/d reduced. d == 0 is a domain error.
func NewInt64(n, d int64) (Rat, error) {
	if d == 0 {
		return Rat{}, numerr.Domain("rational.New", "denominator is zero")
	}
	return Rat{r: big.NewRat(n, d)}, nil
}

// MustNew is like NewInt64 but panics on error.
func MustNew(n, d int64) Rat {
	r, err := NewInt64(n, d)
	if err != nil {
		panic(err)
	}
	return r
}

// FromBig returns n/1.
func FromBig(n *big.Int) Rat {
	return Rat{r: new(big.Rat).SetInt(n)}
}

// FromInt returns the value of x as x/1.
func FromInt(x zn.Int) Rat {
	return FromBig(x.BigInt())
}

// Parse reads "n/d", "-n/d" or a plain integer.
func Parse(s string) (Rat, error) {
	text := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	num, den, found := strings.Cut(text, "/")
	n, ok := new(big.Int).SetString(strings.TrimSpace(num), 10)
	if !ok {
		return Rat{}, numerr.Domain("rational.Parse", "can't set rational from %q", s)
	}
	d := big.NewInt(1)
	if found {
		if d, ok = new(big.Int).SetString(strings.TrimSpace(den), 10); !ok {
			return Rat{}, numerr.Domain("rational.Parse", "can't set rational from %q", s)
		}
	}
	return New(n, d)
}

func (r Rat) rat() *big.Rat {
	if r.r == nil {
		return new(big.Rat)
	}
	return r.r
}

// Num returns a copy of the numerator. It carries the sign.
func (r Rat) Num() *big.Int {
	return new(big.Int).Set(r.rat().Num())
}

// Denom returns a copy of the denominator, always positive.
func (r Rat) Denom() *big.Int {
	return new(big.Int).Set(r.rat().Denom())
}

// IsInt reports whether the denominator is 1.
func (r Rat) IsInt() bool {
	return r.rat().IsInt()
}

// Trunc returns the integer part of r, rounded toward zero and fitted into
// m.
func (r Rat) Trunc(m zn.Mode) zn.Int {
	return m.New(new(big.Int).Quo(r.rat().Num(), r.rat().Denom()))
}

// Add returns r + s.
func (r Rat) Add(s Rat) Rat {
	return Rat{r: new(big.Rat).Add(r.rat(), s.rat())}
}

// Sub returns r - s.
func (r Rat) Sub(s Rat) Rat {
	return Rat{r: new(big.Rat).Sub(r.rat(), s.rat())}
}

// Mul returns r * s.
func (r Rat) Mul(s Rat) Rat {
	return Rat{r: new(big.Rat).Mul(r.rat(), s.rat())}
}

// Quo returns r / s. s == 0 is a domain error.
func (r Rat) Quo(s Rat) (Rat, error) {
	if s.Sign() == 0 {
		return Rat{}, numerr.Domain("rational.Quo", "divisor is zero")
	}
	return Rat{r: new(big.Rat).Quo(r.rat(), s.rat())}, nil
}

// Inv returns 1/r. r == 0 is a domain error.
func (r Rat) Inv() (Rat, error) {
	if r.Sign() == 0 {
		return Rat{}, numerr.Domain("rational.Inv", "divisor is zero")
	}
	return Rat{r: new(big.Rat).Inv(r.rat())}, nil
}

// maxPowBits bounds the size of an exact power.
const maxPowBits = 1 << 24

// Pow returns r ** k exactly. 0 ** k with k < 0 is a domain error.
func (r Rat) Pow(k int64) (Rat, error) {
	base := r
	if k < 0 {
		inv, err := r.Inv()
		if err != nil {
			return Rat{}, err
		}
		base, k = inv, -k
	}
	n, d := base.rat().Num(), base.rat().Denom()
	if bits := max(n.BitLen(), d.BitLen()); bits > 1 && uint64(k) > maxPowBits/uint64(bits) {
		return Rat{}, numerr.Domain("rational.Pow", "result of (%s) ** %d too large", r, k)
	}
	e := big.NewInt(k)
	num := new(big.Int).Exp(n, e, nil)
	den := new(big.Int).Exp(d, e, nil)
	return Rat{r: new(big.Rat).SetFrac(num, den)}, nil
}

// Neg returns -r.
func (r Rat) Neg() Rat {
	return Rat{r: new(big.Rat).Neg(r.rat())}
}

// Abs returns |r|.
func (r Rat) Abs() Rat {
	return Rat{r: new(big.Rat).Abs(r.rat())}
}

// Sign returns -1, 0 or +1.
func (r Rat) Sign() int { return r.rat().Sign() }

// Cmp compares r and s exactly.
func (r Rat) Cmp(s Rat) int { return r.rat().Cmp(s.rat()) }

// Equal reports whether r and s have the same numerator and denominator.
func (r Rat) Equal(s Rat) bool { return r.Cmp(s) == 0 }

// Real evaluates n/d at c's working precision.
func (r Rat) Real(c mp.Context) (mp.Real, error) {
	n := mp.RealFromBig(r.rat().Num())
	if r.IsInt() {
		return n, nil
	}
	return n.Quo(c, mp.RealFromBig(r.rat().Denom()))
}

// CmpReal compares r with x after evaluating r at c's precision. The result
// depends on c: see the package documentation.
func (r Rat) CmpReal(c mp.Context, x mp.Real) (int, error) {
	v, err := r.Real(c)
	if err != nil {
		return 0, err
	}
	rx, err := x.Round(c)
	if err != nil {
		return 0, err
	}
	return v.Cmp(rx), nil
}

// String renders r as "n/d", or "n" when the denominator is 1.
func (r Rat) String() string {
	if r.IsInt() {
		return r.rat().Num().String()
	}
	return r.rat().String()
}

// Mixed renders r as a mixed fraction: "3 1/7", "-3 1/7", "3/5", "4".
func (r Rat) Mixed() string {
	n, d := r.rat().Num(), r.rat().Denom()
	sign := ""
	if n.Sign() < 0 {
		sign = "-"
	}
	whole, rem := new(big.Int).QuoRem(new(big.Int).Abs(n), d, new(big.Int))
	switch {
	case rem.Sign() == 0:
		return sign + whole.String()
	case whole.Sign() == 0:
		return sign + rem.String() + "/" + d.String()
	default:
		return sign + whole.String() + " " + rem.String() + "/" + d.String()
	}
}
