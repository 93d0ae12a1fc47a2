package calc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/testutil"
	"github.com/roach88/numtower/internal/zn"
)

func TestNewModulus(t *testing.T) {
	_, err := NewModulus(big.NewInt(0))
	assert.True(t, numerr.IsDomainError(err))

	_, err = NewModulus(nil)
	assert.True(t, numerr.IsDomainError(err))

	for _, m := range []int64{1, -1} {
		mod, err := NewModulus(big.NewInt(m))
		require.NoError(t, err)
		assert.False(t, mod.Enabled())
		assert.Equal(t, "off", mod.String())
		assert.Equal(t, int64(1), mod.Int().Int64())
	}

	mod, err := NewModulus(big.NewInt(-7))
	require.NoError(t, err)
	assert.True(t, mod.Enabled())
	assert.Equal(t, "-7", mod.String())
}

func TestModulusDisabledIsIdentity(t *testing.T) {
	x := zn.DefaultMode().NewInt64(-123)
	assert.True(t, Modulus{}.Apply(x, zn.Floor).Equal(x))
}

func TestModulusRangeFollowsDivisionMode(t *testing.T) {
	for _, m := range []int64{2, 3, 5, 7, -2, -3, -5, -7} {
		mod, err := NewModulus(big.NewInt(m))
		require.NoError(t, err)
		for v := int64(-30); v <= 30; v++ {
			x := zn.DefaultMode().NewInt64(v)

			floor, _ := mod.Apply(x, zn.Floor).Int64()
			if m > 0 {
				assert.True(t, floor >= 0 && floor < m, "floor %d mod %d = %d", v, m, floor)
			} else {
				assert.True(t, floor <= 0 && floor > m, "floor %d mod %d = %d", v, m, floor)
			}
			assert.Zero(t, (v-floor)%m)

			trunc, _ := mod.Apply(x, zn.Truncate).Int64()
			assert.Less(t, abs64(trunc), abs64(m))
			assert.True(t, trunc == 0 || (trunc < 0) == (v < 0), "trunc %d mod %d = %d", v, m, trunc)
			assert.Equal(t, v%m, trunc)
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Every integer result of + - * / and div lies in [0, m) under floor
// division, at every small width.
func TestModularOverlayExhaustive(t *testing.T) {
	for bits := 3; bits <= 6; bits++ {
		for _, signed := range []bool{true, false} {
			s, err := DefaultSettings().WithBits(bits)
			require.NoError(t, err)
			s = s.WithSigned(signed)
			s, err = s.WithModulus(big.NewInt(3))
			require.NoError(t, err)
			c := New(s)

			vals := testutil.Range(uint(bits), signed)
			ops := map[string]func(a, b coerce.Value) (coerce.Value, error){
				"+": c.Add, "-": c.Sub, "*": c.Mul, "/": c.Div, "//": c.IntDiv,
			}
			for _, a := range vals {
				for _, b := range vals {
					for sym, f := range ops {
						if b == 0 && (sym == "/" || sym == "//") {
							continue
						}
						got, err := f(c.Int(a), c.Int(b))
						require.NoError(t, err, "%d %s %d", a, sym, b)
						v, ok := got.(coerce.Integer)
						require.True(t, ok, "%d %s %d gave %s", a, sym, b, got.Tag())
						n, _ := v.Int().Int64()
						assert.True(t, n >= 0 && n < 3, "%d %s %d = %d at %d bits", a, sym, b, n, bits)
					}
				}
			}
		}
	}
}
