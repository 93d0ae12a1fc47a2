package rational

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/zn"
)

func TestNewReduces(t *testing.T) {
	cases := []struct {
		n, d         int64
		wantN, wantD int64
	}{
		{6, 8, 3, 4},
		{-6, 8, -3, 4},
		{6, -8, -3, 4},
		{-6, -8, 3, 4},
		{0, 5, 0, 1},
		{7, 1, 7, 1},
		{100, 10, 10, 1},
	}
	for _, c := range cases {
		r, err := NewInt64(c.n, c.d)
		require.NoError(t, err)
		assert.Equal(t, c.wantN, r.Num().Int64(), "%d/%d", c.n, c.d)
		assert.Equal(t, c.wantD, r.Denom().Int64(), "%d/%d", c.n, c.d)
	}
}

func TestZeroDenominator(t *testing.T) {
	_, err := NewInt64(5, 0)
	assert.True(t, numerr.IsDomainError(err))

	_, err = New(big.NewInt(1), new(big.Int))
	assert.True(t, numerr.IsDomainError(err))

	_, err = MustNew(1, 2).Quo(Rat{})
	assert.True(t, numerr.IsDomainError(err))

	_, err = Rat{}.Inv()
	assert.True(t, numerr.IsDomainError(err))
}

func TestGCDInvariantAfterArithmetic(t *testing.T) {
	vals := []Rat{MustNew(1, 3), MustNew(-2, 9), MustNew(5, 4), MustNew(7, 1), MustNew(-11, 6), Rat{}}
	check := func(r Rat) {
		g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.Num()), r.Denom())
		if r.Sign() == 0 {
			assert.Equal(t, int64(1), r.Denom().Int64())
			return
		}
		assert.Equal(t, int64(1), g.Int64(), "%s", r)
		assert.Equal(t, 1, r.Denom().Sign(), "%s", r)
	}
	for _, a := range vals {
		for _, b := range vals {
			check(a.Add(b))
			check(a.Sub(b))
			check(a.Mul(b))
			if b.Sign() != 0 {
				q, err := a.Quo(b)
				require.NoError(t, err)
				check(q)
			}
		}
	}
}

func TestAdditiveInverse(t *testing.T) {
	for a := int64(-12); a <= 12; a++ {
		for b := int64(1); b <= 12; b++ {
			sum := MustNew(a, b).Add(MustNew(-a, b))
			require.Equal(t, 0, sum.Sign(), "%d/%d", a, b)
			require.True(t, sum.IsInt())
		}
	}
}

func TestDenominatorIsOne(t *testing.T) {
	p := MustNew(1, 3).Mul(MustNew(3, 1))
	assert.True(t, p.IsInt())
	assert.Equal(t, "1", p.String())

	one := zn.DefaultMode().NewInt64(1)
	assert.True(t, p.Trunc(zn.DefaultMode()).Equal(one))
	assert.True(t, p.Equal(FromInt(one)))

	assert.False(t, MustNew(1, 3).IsInt())
}

func TestTruncTowardZero(t *testing.T) {
	m := zn.DefaultMode()
	cases := map[string]int64{"7/2": 3, "-7/2": -3, "1/3": 0, "-1/3": 0, "9/3": 3}
	for in, want := range cases {
		r, err := Parse(in)
		require.NoError(t, err)
		got, _ := r.Trunc(m).Int64()
		assert.Equal(t, want, got, in)
	}

	s8, err := m.WithBits(8)
	require.NoError(t, err)
	assert.Equal(t, int64(-56), MustNew(200, 1).Trunc(s8).BigInt().Int64())
}

func TestParse(t *testing.T) {
	r, err := Parse(" -22/7 ")
	require.NoError(t, err)
	assert.True(t, r.Equal(MustNew(-22, 7)))

	r, err = Parse("12")
	require.NoError(t, err)
	assert.True(t, r.Equal(MustNew(12, 1)))

	for _, bad := range []string{"", "1/", "a/2", "1/0", "1.5"} {
		_, err := Parse(bad)
		assert.True(t, numerr.IsDomainError(err), bad)
	}
}

func TestStringAndMixed(t *testing.T) {
	cases := []struct {
		r            Rat
		plain, mixed string
	}{
		{MustNew(22, 7), "22/7", "3 1/7"},
		{MustNew(-22, 7), "-22/7", "-3 1/7"},
		{MustNew(3, 5), "3/5", "3/5"},
		{MustNew(-3, 5), "-3/5", "-3/5"},
		{MustNew(8, 2), "4", "4"},
		{Rat{}, "0", "0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.plain, c.r.String())
		assert.Equal(t, c.mixed, c.r.Mixed())
	}
}

func TestOrdering(t *testing.T) {
	assert.Equal(t, -1, MustNew(1, 3).Cmp(MustNew(1, 2)))
	assert.Equal(t, 1, MustNew(-1, 3).Cmp(MustNew(-1, 2)))
	assert.Equal(t, 0, MustNew(2, 4).Cmp(MustNew(1, 2)))
	assert.True(t, MustNew(-5, 3).Abs().Equal(MustNew(5, 3)))
	assert.True(t, MustNew(5, 3).Neg().Equal(MustNew(-5, 3)))

	inv, err := MustNew(-5, 3).Inv()
	require.NoError(t, err)
	assert.True(t, inv.Equal(MustNew(-3, 5)))
}

func TestRealConversionAndPrecisionDependentComparison(t *testing.T) {
	c10, err := mp.DefaultContext().WithPrecision(10)
	require.NoError(t, err)
	c11, err := mp.DefaultContext().WithPrecision(11)
	require.NoError(t, err)

	third := MustNew(1, 3)
	x, err := third.Real(c10)
	require.NoError(t, err)
	assert.Equal(t, "0.3333333333", x.String())

	ten := mp.MustParseReal("0.3333333333")
	cmp, err := third.CmpReal(c10, ten)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = third.CmpReal(c11, ten)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	whole, err := MustNew(7, 1).Real(c10)
	require.NoError(t, err)
	assert.Equal(t, "7", whole.String())
}

func TestPow(t *testing.T) {
	cases := []struct {
		r    Rat
		k    int64
		want string
	}{
		{MustNew(2, 3), 3, "8/27"},
		{MustNew(2, 3), -2, "9/4"},
		{MustNew(-1, 2), 3, "-1/8"},
		{MustNew(7, 5), 0, "1"},
		{Rat{}, 4, "0"},
	}
	for _, c := range cases {
		got, err := c.r.Pow(c.k)
		require.NoError(t, err)
		assert.Equal(t, c.want, got.String(), "%s ** %d", c.r, c.k)
	}

	_, err := Rat{}.Pow(-1)
	assert.True(t, numerr.IsDomainError(err))

	_, err = MustNew(3, 1).Pow(1 << 30)
	assert.True(t, numerr.IsDomainError(err))
}
