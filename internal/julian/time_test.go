package julian

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
)

var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

func TestFromTime(t *testing.T) {
	c := mp.DefaultContext()
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Unix(0, 0).UTC(), "2440587.5"},
		{j2000, "2451545"},
		{time.Date(2000, time.January, 2, 0, 0, 0, 0, time.UTC), "2451545.5"},
		{time.Date(2000, time.January, 1, 18, 0, 0, 0, time.UTC), "2451545.25"},
	}
	for _, tc := range cases {
		jd, err := FromTime(c, tc.at)
		require.NoError(t, err)
		assert.True(t, jd.IsPoint())

		days, err := jd.Days(c)
		require.NoError(t, err)
		assert.Equal(t, 0, days.Cmp(mp.MustParseReal(tc.want)), "%s: got %s", tc.at, days)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	c := mp.DefaultContext()
	for _, at := range []time.Time{
		j2000,
		time.Date(1969, time.July, 20, 20, 17, 40, 0, time.UTC),
		time.Date(2024, time.February, 29, 23, 59, 59, 500_000_000, time.UTC),
	} {
		jd, err := FromTime(c, at)
		require.NoError(t, err)
		back, err := jd.Time(c)
		require.NoError(t, err)
		assert.WithinDuration(t, at, back, time.Microsecond, "%s", at)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "1Jan2000:12:00:00", FromDays(mp.NewReal(2451545)).String())
	assert.Equal(t, "3Jan2000:00:00:00", FromDays(mp.MustParseReal("2451546.5")).String())
	assert.Equal(t, "Julian(-1)", FromDays(mp.NewReal(-1)).String())

	span, err := mp.NewInterval(mp.NewReal(2451545), mp.NewReal(2451546))
	require.NoError(t, err)
	assert.Equal(t, "<<1Jan2000:12:00:00, 2Jan2000:12:00:00>>", FromInterval(span).String())
}

func TestArithmetic(t *testing.T) {
	c := mp.DefaultContext()
	start := FromDays(mp.NewReal(2451545))

	later, err := start.Add(c, mp.Point(mp.MustParseReal("1.5")))
	require.NoError(t, err)
	assert.Equal(t, "3Jan2000:00:00:00", later.String())

	earlier, err := later.Sub(c, mp.Point(mp.NewReal(2)))
	require.NoError(t, err)
	days, err := earlier.Days(c)
	require.NoError(t, err)
	assert.Equal(t, 0, days.Cmp(mp.MustParseReal("2451544.5")))

	half, err := start.Quo(c, mp.Point(mp.NewReal(2)))
	require.NoError(t, err)
	days, _ = half.Days(c)
	assert.Equal(t, 0, days.Cmp(mp.MustParseReal("1225772.5")))

	twice, err := start.Mul(c, mp.Point(mp.NewReal(2)))
	require.NoError(t, err)
	days, _ = twice.Days(c)
	assert.Equal(t, 0, days.Cmp(mp.NewReal(4903090)))

	elapsed, err := start.RSub(c, later.Interval())
	require.NoError(t, err)
	days, _ = elapsed.Days(c)
	assert.Equal(t, 0, days.Cmp(mp.MustParseReal("1.5")))
}

func TestDivideByTimeIsDomainError(t *testing.T) {
	_, err := FromDays(mp.NewReal(2451545)).RQuo(mp.DefaultContext(), mp.Point(mp.NewReal(1)))
	require.Error(t, err)
	assert.True(t, numerr.IsDomainError(err))
}

func TestSpanMidpoint(t *testing.T) {
	c := mp.DefaultContext()
	span, err := mp.NewInterval(mp.NewReal(10), mp.NewReal(12))
	require.NoError(t, err)
	tm := FromInterval(span)
	assert.False(t, tm.IsPoint())
	days, err := tm.Days(c)
	require.NoError(t, err)
	assert.Equal(t, 0, days.Cmp(mp.NewReal(11)))
	assert.True(t, tm.Equal(FromInterval(span)))
}
