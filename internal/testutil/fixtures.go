// Package testutil provides fixtures shared by the numeric package tests.
package testutil

import (
	"math/big"
	"testing"
)

// Pi holds pi to 110 decimal places, enough for any precision the
// tests use.
const Pi = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798214808651"

// Big parses a decimal integer or fails the test.
func Big(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("testutil.Big: invalid integer %q", s)
	}
	return v
}

// Wrap reduces v into an n-bit two's-complement range the way a hardware
// register would: modulo 2^n, then rebiased when signed. It is the oracle
// for exhaustive small-width tests.
func Wrap(v int64, n uint, signed bool) int64 {
	if n == 0 {
		return v
	}
	m := int64(1) << n
	v = ((v % m) + m) % m
	if signed && v >= m/2 {
		v -= m
	}
	return v
}

// Range returns every value representable in n bits (n <= 16).
func Range(n uint, signed bool) []int64 {
	lo, hi := int64(0), int64(1)<<n-1
	if signed {
		lo, hi = -(int64(1) << (n - 1)), int64(1)<<(n-1)-1
	}
	out := make([]int64, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

// FloorDiv is Python-style integer division.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
