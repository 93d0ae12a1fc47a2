package cli

import (
	"strings"
	"time"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/julian"
	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/rational"
)

// ParseLiteral reads a command-line operand. The kind follows the
// spelling:
//
//	42, 0xff, -2<s4>          integer in env's mode
//	22/7                      rational
//	3.25, 1e-7                real
//	1+2i, -0.5i               complex
//	[1, 2.5]                  interval
//	now, jd:2451545.5         time
//	2000-01-01T12:00:00Z      time (RFC 3339)
func ParseLiteral(env coerce.Env, s string) (coerce.Value, error) {
	const op = "cli.ParseLiteral"
	text := strings.TrimSpace(s)
	lower := strings.ToLower(text)

	switch {
	case text == "":
		return nil, numerr.Domain(op, "empty operand")
	case lower == "now":
		t, err := julian.FromTime(env.Real, time.Now())
		if err != nil {
			return nil, err
		}
		return coerce.Time(t), nil
	case strings.HasPrefix(lower, "jd:"):
		days, err := mp.ParseReal(text[3:])
		if err != nil {
			return nil, err
		}
		return coerce.Time(julian.FromDays(days)), nil
	case strings.HasPrefix(text, "["):
		return parseInterval(text)
	case strings.HasSuffix(lower, "i"):
		return parseComplex(text)
	case strings.Contains(text, "/"):
		r, err := rational.Parse(text)
		if err != nil {
			return nil, err
		}
		return coerce.Rational(r), nil
	case strings.Contains(text, "T") && strings.Count(text, "-") >= 2:
		tm, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return nil, numerr.Domain(op, "can't read date %q: %v", s, err)
		}
		t, err := julian.FromTime(env.Real, tm)
		if err != nil {
			return nil, err
		}
		return coerce.Time(t), nil
	}

	if n, err := env.Int.Parse(text); err == nil {
		return coerce.Integer(n), nil
	}
	x, err := mp.ParseReal(text)
	if err != nil {
		return nil, numerr.Domain(op, "can't read number %q", s)
	}
	return coerce.Real(x), nil
}

func parseInterval(text string) (coerce.Value, error) {
	body, ok := strings.CutSuffix(strings.TrimPrefix(text, "["), "]")
	lo, hi, found := strings.Cut(body, ",")
	if !ok || !found {
		return nil, numerr.Domain("cli.ParseLiteral", "interval must look like [lo, hi], got %q", text)
	}
	a, err := mp.ParseReal(lo)
	if err != nil {
		return nil, err
	}
	b, err := mp.ParseReal(hi)
	if err != nil {
		return nil, err
	}
	v, err := mp.NewInterval(a, b)
	if err != nil {
		return nil, err
	}
	return coerce.Interval(v), nil
}

// parseComplex reads "a+bi", "a-bi" or "bi". A bare "i" is 1i.
func parseComplex(text string) (coerce.Value, error) {
	body := strings.TrimSpace(text[:len(text)-1])
	split := -1
	for i := len(body) - 1; i > 0; i-- {
		if c := body[i]; (c == '+' || c == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			split = i
			break
		}
	}

	re, im := "0", body
	if split > 0 {
		re, im = body[:split], body[split:]
	}
	switch strings.TrimSpace(im) {
	case "", "+":
		im = "1"
	case "-":
		im = "-1"
	}

	a, err := mp.ParseReal(re)
	if err != nil {
		return nil, err
	}
	b, err := mp.ParseReal(im)
	if err != nil {
		return nil, err
	}
	return coerce.Complex(mp.NewComplex(a, b)), nil
}
