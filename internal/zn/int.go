package zn

import (
	"math/big"

	"github.com/roach88/numtower/internal/numerr"
)

// maxUnboundedShift caps left shifts and powers of unbounded integers so a
// typo cannot allocate gigabytes.
const maxUnboundedShift = 1 << 24

var bigOne = big.NewInt(1)

// Int is an immutable integer with a width and signedness.
//
// The zero value is an unbounded 0.
type Int struct {
	v      *big.Int
	bits   uint
	signed bool
}

// newInt takes ownership of v and normalizes it in place.
func newInt(v *big.Int, bits uint, signed bool) Int {
	if bits == 0 {
		signed = true
	}
	normalize(v, bits, signed)
	return Int{v: v, bits: bits, signed: signed}
}

// normalize masks v to bits and sign-extends when signed. bits == 0 leaves v
// untouched.
func normalize(v *big.Int, bits uint, signed bool) {
	if bits == 0 {
		return
	}
	v.And(v, mask(bits))
	if signed && v.Bit(int(bits-1)) == 1 {
		v.Sub(v, pow2(bits))
	}
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(bigOne, n)
}

func mask(bits uint) *big.Int {
	m := pow2(bits)
	return m.Sub(m, bigOne)
}

func (x Int) value() *big.Int {
	if x.v == nil {
		return new(big.Int)
	}
	return x.v
}

// fit returns a normalized copy of x's value in the given mode.
func (x Int) fit(bits uint, signed bool) *big.Int {
	c := new(big.Int).Set(x.value())
	normalize(c, bits, signed || bits == 0)
	return c
}

// Common returns the mode two operands widen to: the larger width and the
// conjunction of signedness.
func Common(x, y Int) (bits uint, signed bool) {
	bits = max(x.bits, y.bits)
	signed = x.Signed() && y.Signed()
	return bits, signed || bits == 0
}

// Bits returns the width (0 for unbounded).
func (x Int) Bits() uint { return x.bits }

// Signed reports whether x is signed. Unbounded values are always signed.
func (x Int) Signed() bool { return x.signed || x.bits == 0 }

// Mode returns the width and signedness of x as a Mode with default
// division and negation.
func (x Int) Mode() Mode {
	return Mode{Bits: x.bits, Signed: x.Signed()}
}

// BigInt returns a copy of the value.
func (x Int) BigInt() *big.Int {
	return new(big.Int).Set(x.value())
}

// Int64 returns the value and whether it fits in an int64.
func (x Int) Int64() (int64, bool) {
	v := x.value()
	return v.Int64(), v.IsInt64()
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int { return x.value().Sign() }

// Cmp compares values only, ignoring width and signedness.
func (x Int) Cmp(y Int) int { return x.value().Cmp(y.value()) }

// Equal reports whether x and y have the same value, width and signedness.
func (x Int) Equal(y Int) bool {
	return x.bits == y.bits && x.Signed() == y.Signed() && x.Cmp(y) == 0
}

// IsMin reports whether x is the most negative value of a signed width.
func (x Int) IsMin() bool {
	if x.bits == 0 || !x.Signed() {
		return false
	}
	return x.value().Cmp(new(big.Int).Neg(pow2(x.bits-1))) == 0
}

// WithBits returns x re-normalized into n bits. n < 0 is a domain error.
func (x Int) WithBits(n int) (Int, error) {
	if n < 0 {
		return x, numerr.Domain("zn.WithBits", "number of bits must be >= 0, got %d", n)
	}
	return newInt(x.BigInt(), uint(n), x.signed), nil
}

// WithSigned returns x re-normalized with the given signedness.
func (x Int) WithSigned(signed bool) Int {
	return newInt(x.BigInt(), x.bits, signed)
}
