package calc

import (
	"math/big"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/zn"
)

// Settings is the calculator configuration. It is a value: the With*
// methods return modified copies.
type Settings struct {
	// Env is the integer mode and working precision.
	Env coerce.Env

	// Modulus reduces integer results of + - * / and div when enabled.
	Modulus Modulus

	// Coerce allows mixed-kind arithmetic. When false, operands of
	// different kinds are a type error.
	Coerce bool

	// Downcast simplifies results to the lowest kind that holds them.
	Downcast bool

	// Rationals makes integer division exact. When false it yields reals.
	Rationals bool
}

// DefaultSettings returns unbounded integers with floor division, the
// default precision, coercion and rationals on, downcasting off and no
// modulus.
func DefaultSettings() Settings {
	return Settings{
		Env:       coerce.DefaultEnv(),
		Coerce:    true,
		Rationals: true,
	}
}

// WithBits returns s with a new integer width. n < 0 is a domain error.
func (s Settings) WithBits(n int) (Settings, error) {
	m, err := s.Env.Int.WithBits(n)
	if err != nil {
		return s, err
	}
	s.Env.Int = m
	return s, nil
}

// WithSigned returns s with the given integer signedness.
func (s Settings) WithSigned(signed bool) Settings {
	s.Env.Int = s.Env.Int.WithSigned(signed)
	return s
}

// WithDivision returns s with the given division rounding.
func (s Settings) WithDivision(d zn.Division) Settings {
	s.Env.Int = s.Env.Int.WithDivision(d)
	return s
}

// WithNegation returns s with the given negation policy.
func (s Settings) WithNegation(p zn.Negation) Settings {
	s.Env.Int = s.Env.Int.WithNegation(p)
	return s
}

// WithPrecision returns s with a new working precision in digits.
func (s Settings) WithPrecision(digits int) (Settings, error) {
	c, err := s.Env.Real.WithPrecision(digits)
	if err != nil {
		return s, err
	}
	s.Env.Real = c
	return s, nil
}

// WithModulus returns s reducing integer results modulo m. m == 0 is a
// domain error and |m| == 1 turns the modulus off.
func (s Settings) WithModulus(m *big.Int) (Settings, error) {
	mod, err := NewModulus(m)
	if err != nil {
		return s, err
	}
	s.Modulus = mod
	return s, nil
}
