package zn

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/roach88/numtower/internal/numerr"
)

// Division selects how integer division rounds.
type Division int

const (
	// Floor rounds quotients toward negative infinity: (-3) div 8 == -1.
	// The remainder takes the sign of the divisor.
	Floor Division = iota

	// Truncate rounds quotients toward zero as C does: (-3) div 8 == 0.
	// The remainder takes the sign of the dividend.
	Truncate
)

// String implements fmt.Stringer.
func (d Division) String() string {
	switch d {
	case Floor:
		return "floor"
	case Truncate:
		return "c"
	default:
		return fmt.Sprintf("Division(%d)", int(d))
	}
}

// ParseDivision accepts "floor" (or "python") and "c" (or "truncate").
func ParseDivision(s string) (Division, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "floor", "python":
		return Floor, nil
	case "c", "truncate", "trunc":
		return Truncate, nil
	}
	return Floor, numerr.Domain("zn.ParseDivision", "unknown division mode %q", s)
}

// Negation selects what Neg does with the signed values 0 and MIN.
type Negation int

const (
	// NegateIdentity is hardware two's complement: Neg(MIN) == MIN.
	NegateIdentity Negation = iota

	// NegateToZero maps Neg(MIN) to 0; Neg(0) stays 0.
	NegateToZero

	// NegateSwap pairs every bit pattern: Neg(MIN) == 0 and Neg(0) == MIN.
	NegateSwap
)

// String implements fmt.Stringer.
func (p Negation) String() string {
	switch p {
	case NegateIdentity:
		return "identity"
	case NegateToZero:
		return "zero"
	case NegateSwap:
		return "swap"
	default:
		return fmt.Sprintf("Negation(%d)", int(p))
	}
}

// ParseNegation accepts "identity", "zero" and "swap".
func ParseNegation(s string) (Negation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity", "":
		return NegateIdentity, nil
	case "zero":
		return NegateToZero, nil
	case "swap":
		return NegateSwap, nil
	}
	return NegateIdentity, numerr.Domain("zn.ParseNegation", "unknown negation policy %q", s)
}

// Mode is the integer configuration new values pick up at construction.
//
// Mode is a value type: rebinding returns a new Mode and never affects Ints
// already created. Signed is ignored while Bits is 0.
type Mode struct {
	Bits     uint
	Signed   bool
	Division Division
	Negation Negation
}

// DefaultMode returns unbounded signed integers with floor division and
// identity negation.
func DefaultMode() Mode {
	return Mode{Signed: true}
}

// WithBits returns m with a new width. n < 0 is a domain error.
func (m Mode) WithBits(n int) (Mode, error) {
	if n < 0 {
		return m, numerr.Domain("zn.WithBits", "number of bits must be >= 0, got %d", n)
	}
	m.Bits = uint(n)
	return m, nil
}

// WithSigned returns m with the given signedness.
func (m Mode) WithSigned(signed bool) Mode {
	m.Signed = signed
	return m
}

// WithDivision returns m with the given division rounding.
func (m Mode) WithDivision(d Division) Mode {
	m.Division = d
	return m
}

// WithNegation returns m with the given negation policy.
func (m Mode) WithNegation(p Negation) Mode {
	m.Negation = p
	return m
}

// IsSigned reports the effective signedness (always true when unbounded).
func (m Mode) IsSigned() bool {
	return m.Signed || m.Bits == 0
}

// String renders the width as the display suffix uses it ("s8", "u16") or
// "unbounded".
func (m Mode) String() string {
	if m.Bits == 0 {
		return "unbounded"
	}
	return suffixCode(m.Bits, m.IsSigned())
}

// New returns v fitted into m.
func (m Mode) New(v *big.Int) Int {
	return newInt(new(big.Int).Set(v), m.Bits, m.IsSigned())
}

// NewInt64 returns v fitted into m.
func (m Mode) NewInt64(v int64) Int {
	return newInt(big.NewInt(v), m.Bits, m.IsSigned())
}

// Rebind re-normalizes x into m's width and signedness.
func (m Mode) Rebind(x Int) Int {
	return m.New(x.value())
}

// Min returns the smallest representable value, or false when unbounded.
func (m Mode) Min() (Int, bool) {
	if m.Bits == 0 {
		return Int{}, false
	}
	if !m.IsSigned() {
		return m.NewInt64(0), true
	}
	return newInt(new(big.Int).Neg(pow2(m.Bits-1)), m.Bits, true), true
}

// Max returns the largest representable value, or false when unbounded.
func (m Mode) Max() (Int, bool) {
	if m.Bits == 0 {
		return Int{}, false
	}
	if !m.IsSigned() {
		return newInt(mask(m.Bits), m.Bits, false), true
	}
	v := new(big.Int).Sub(pow2(m.Bits-1), big.NewInt(1))
	return newInt(v, m.Bits, true), true
}

// Div divides with m's division rounding.
func (m Mode) Div(x, y Int) (Int, error) {
	return x.Div(y, m.Division)
}

// Mod takes the remainder with m's division rounding.
func (m Mode) Mod(x, y Int) (Int, error) {
	return x.Mod(y, m.Division)
}

// Neg negates with m's negation policy.
func (m Mode) Neg(x Int) Int {
	return x.Neg(m.Negation)
}
