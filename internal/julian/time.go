// Package julian is the calendar tag of the numeric tower: a point or span
// of astronomical Julian days.
//
// A Julian day number is an integer at noon UTC; the Unix epoch is
// 2440587.5. Calendar conversion goes through time.Time (proleptic
// Gregorian), which is all the tower needs from a date.
package julian

import (
	"math/big"
	"time"

	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
)

// UnixEpoch is the Julian day of 1970-01-01T00:00:00Z.
var UnixEpoch = mp.MustParseReal("2440587.5")

// guardDigits covers the nanosecond digits of a day count near the present.
const guardDigits = 24

const layout = "2Jan2006:15:04:05.999"

var (
	nanosPerDay = mp.RealFromBig(big.NewInt(86400 * int64(time.Second)))
	nanosPerSec = big.NewInt(int64(time.Second))
)

// Time is an immutable instant or span in Julian days.
//
// The zero value is the instant JD 0.
type Time struct {
	span mp.Interval
}

// FromDays returns the instant at Julian day d.
func FromDays(d mp.Real) Time {
	return Time{span: mp.Point(d)}
}

// FromInterval returns the span of Julian days v.
func FromInterval(v mp.Interval) Time {
	return Time{span: v}
}

// FromTime returns the instant of t.
func FromTime(c mp.Context, t time.Time) (Time, error) {
	ns := new(big.Int).Mul(big.NewInt(t.Unix()), nanosPerSec)
	ns.Add(ns, big.NewInt(int64(t.Nanosecond())))

	g := c.Guarded(guardDigits)
	days, err := mp.RealFromBig(ns).Quo(g, nanosPerDay)
	if err != nil {
		return Time{}, err
	}
	jd, err := days.Add(g, UnixEpoch)
	if err != nil {
		return Time{}, err
	}
	return FromDays(jd), nil
}

// Interval returns the span in Julian days.
func (t Time) Interval() mp.Interval { return t.span }

// IsPoint reports whether t is an instant rather than a span.
func (t Time) IsPoint() bool { return t.span.IsPoint() }

// Days returns the Julian day of t, the midpoint for a span.
func (t Time) Days(c mp.Context) (mp.Real, error) {
	return t.span.Mid(c)
}

// Equal reports whether both spans match exactly.
func (t Time) Equal(u Time) bool {
	return t.span.Equal(u.span)
}

// Time converts the Julian day of t to a UTC time.Time.
func (t Time) Time(c mp.Context) (time.Time, error) {
	days, err := t.Days(c)
	if err != nil {
		return time.Time{}, err
	}
	return toTime(c, days)
}

func toTime(c mp.Context, jd mp.Real) (time.Time, error) {
	g := c.Guarded(guardDigits)
	d, err := jd.Sub(g, UnixEpoch)
	if err != nil {
		return time.Time{}, err
	}
	n, err := d.Mul(g, nanosPerDay)
	if err != nil {
		return time.Time{}, err
	}
	ns, err := n.Floor()
	if err != nil {
		return time.Time{}, err
	}
	sec, nsec := new(big.Int).DivMod(ns, nanosPerSec, new(big.Int))
	if !sec.IsInt64() {
		return time.Time{}, numerr.Domain("julian.Time", "Julian day %s is out of range for a calendar date", jd)
	}
	return time.Unix(sec.Int64(), nsec.Int64()).UTC(), nil
}

// Add returns t shifted by delta days.
func (t Time) Add(c mp.Context, delta mp.Interval) (Time, error) {
	v, err := t.span.Add(c, delta)
	return Time{span: v}, err
}

// Sub returns t shifted back by delta days.
func (t Time) Sub(c mp.Context, delta mp.Interval) (Time, error) {
	v, err := t.span.Sub(c, delta)
	return Time{span: v}, err
}

// Mul scales the day count of t by k.
func (t Time) Mul(c mp.Context, k mp.Interval) (Time, error) {
	v, err := t.span.Mul(c, k)
	return Time{span: v}, err
}

// Quo divides the day count of t by k.
func (t Time) Quo(c mp.Context, k mp.Interval) (Time, error) {
	v, err := t.span.Quo(c, k)
	return Time{span: v}, err
}

// RSub returns x - t, with t as the subtrahend.
func (t Time) RSub(c mp.Context, x mp.Interval) (Time, error) {
	v, err := x.Sub(c, t.span)
	return Time{span: v}, err
}

// RQuo is x / t. Dividing by a date has no meaning and is always a domain
// error.
func (t Time) RQuo(mp.Context, mp.Interval) (Time, error) {
	return Time{}, numerr.Domain("julian.Quo", "meaningless to divide by a date/time")
}

// String renders an instant as "1Jan2000:12:00:00" and a span as
// "<<start, end>>". Days that have no calendar date render as
// "Julian(days)".
func (t Time) String() string {
	if t.IsPoint() {
		return format(t.span.Lo())
	}
	return "<<" + format(t.span.Lo()) + ", " + format(t.span.Hi()) + ">>"
}

func format(jd mp.Real) string {
	if jd.Sign() < 0 {
		return "Julian(" + jd.String() + ")"
	}
	tm, err := toTime(mp.DefaultContext(), jd)
	if err != nil || tm.Year() > 9999 {
		return "Julian(" + jd.String() + ")"
	}
	return tm.Format(layout)
}
