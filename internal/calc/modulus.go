// Package calc routes the calculator's operators across the numeric tower.
//
// A Calculator holds immutable Settings: the integer mode and working
// precision used for conversions, an optional modulus, and the switches for
// coercion, downcasting and exact rationals. Binary operators type-check,
// promote both operands to a common kind, dispatch on that kind and finally
// apply the modulus and downcasting.
package calc

import (
	"math/big"

	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/zn"
)

var bigOne = big.NewInt(1)

// Modulus reduces integer results. The zero value is disabled.
type Modulus struct {
	m *big.Int
}

// NewModulus returns a modulus of m. m == 0 is a domain error; m == 1 and
// m == -1 return a disabled modulus.
func NewModulus(m *big.Int) (Modulus, error) {
	if m == nil || m.Sign() == 0 {
		return Modulus{}, numerr.Domain("calc.NewModulus", "modulus must be nonzero")
	}
	if m.CmpAbs(bigOne) == 0 {
		return Modulus{}, nil
	}
	return Modulus{m: new(big.Int).Set(m)}, nil
}

// Enabled reports whether Apply changes anything.
func (m Modulus) Enabled() bool { return m.m != nil }

// Int returns a copy of the modulus, or 1 when disabled.
func (m Modulus) Int() *big.Int {
	if m.m == nil {
		return big.NewInt(1)
	}
	return new(big.Int).Set(m.m)
}

// Apply reduces x modulo m with d's sign convention: floor gives a result
// with the modulus's sign, truncate keeps x's sign. The result is fitted
// back into x's width.
func (m Modulus) Apply(x zn.Int, d zn.Division) zn.Int {
	if m.m == nil {
		return x
	}
	_, r, err := zn.DivMod(x.BigInt(), m.m, d)
	if err != nil {
		return x
	}
	return x.Mode().New(r)
}

// String returns the modulus in decimal, or "off".
func (m Modulus) String() string {
	if m.m == nil {
		return "off"
	}
	return m.m.String()
}
