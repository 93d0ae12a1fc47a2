package rational

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/testutil"
)

func wide(t *testing.T) mp.Context {
	t.Helper()
	c, err := mp.DefaultContext().WithPrecision(60)
	require.NoError(t, err)
	return c
}

// absErr returns |x - r| evaluated at c.
func absErr(t *testing.T, c mp.Context, x mp.Real, r Rat) mp.Real {
	t.Helper()
	v, err := r.Real(c)
	require.NoError(t, err)
	d, err := x.Sub(c, v)
	require.NoError(t, err)
	return d.Abs()
}

func TestApproximatePi(t *testing.T) {
	c := wide(t)
	pi := mp.MustParseReal(testutil.Pi)

	for _, digits := range []int{5, 10, 20} {
		t.Run(fmt.Sprint(digits), func(t *testing.T) {
			r, err := Approximate(c, pi, digits)
			require.NoError(t, err)
			assert.LessOrEqual(t, absErr(t, c, pi, r).Cmp(mp.Epsilon(digits)), 0, "%s", r)
		})
	}

	r, err := Approximate(c, pi, 2)
	require.NoError(t, err)
	assert.Equal(t, "22/7", r.String())

	r, err = Approximate(c, pi, 6)
	require.NoError(t, err)
	assert.Equal(t, "355/113", r.String())
}

func TestApproximateHalfIsExact(t *testing.T) {
	for _, digits := range []int{0, 1, 5, 30} {
		r, err := Approximate(mp.DefaultContext(), mp.MustParseReal("0.5"), digits)
		require.NoError(t, err)
		assert.True(t, r.Equal(MustNew(1, 2)), "digits %d: %s", digits, r)
	}
}

func TestApproximateMediantTies(t *testing.T) {
	cases := map[string]Rat{
		"1.5":   MustNew(3, 2),
		"2.5":   MustNew(5, 2),
		"-7.5":  MustNew(-15, 2),
		"0.25":  MustNew(1, 4),
		"0.75":  MustNew(3, 4),
		"12":    MustNew(12, 1),
		"-3":    MustNew(-3, 1),
		"0.125": MustNew(1, 8),
	}
	for in, want := range cases {
		r, err := Approximate(mp.DefaultContext(), mp.MustParseReal(in), 10)
		require.NoError(t, err, in)
		assert.True(t, r.Equal(want), "%s: got %s", in, r)
	}
}

func TestApproximateZero(t *testing.T) {
	r, err := Approximate(mp.DefaultContext(), mp.Real{}, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Sign())
	assert.Equal(t, "0", r.String())
}

func TestApproximateDisplayVersusFullPrecision(t *testing.T) {
	c := mp.DefaultContext()
	x, err := mp.MustParseReal(testutil.Pi).Round(c)
	require.NoError(t, err)

	display, err := Approximate(c, x, 5)
	require.NoError(t, err)
	assert.Equal(t, "355/113", display.String())

	full, err := Approximate(c, x, 0)
	require.NoError(t, err)
	assert.False(t, display.Equal(full))
	assert.LessOrEqual(t, absErr(t, wide(t), x, full).Cmp(mp.Epsilon(c.Digits())), 0, "%s", full)

	// A terminating decimal comes back exactly at full precision.
	exact, err := Approximate(c, mp.MustParseReal("0.3125"), 0)
	require.NoError(t, err)
	assert.True(t, exact.Equal(MustNew(5, 16)), exact.String())
}

func TestApproximateNegative(t *testing.T) {
	c := wide(t)
	pi := mp.MustParseReal(testutil.Pi)
	r, err := Approximate(c, pi.Neg(), 6)
	require.NoError(t, err)
	assert.Equal(t, "-355/113", r.String())
}

func TestApproximateIterationCap(t *testing.T) {
	c := wide(t)
	pi := mp.MustParseReal(testutil.Pi)

	_, err := Approximate(c, pi, 20, WithMaxIterations(2))
	require.Error(t, err)
	assert.True(t, numerr.IsConvergenceError(err))

	var ne *numerr.Error
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "2", ne.Details["max_iterations"])

	// The caller's context is untouched either way.
	assert.Equal(t, 60, c.Digits())
}

func TestApproximateLargeMagnitude(t *testing.T) {
	c := wide(t)
	x := mp.MustParseReal("123456789.123456789")
	r, err := Approximate(c, x, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, absErr(t, c, x, r).Cmp(mp.Epsilon(5)), 0, "%s", r)
}
