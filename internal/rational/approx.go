package rational

import (
	"log/slog"
	"math/big"

	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
)

// guardDigits is the precision added on top of the requested digits while
// approximating, so rounding noise cannot keep the error above the bound.
const guardDigits = 8

var (
	realOne  = mp.NewReal(1)
	realHalf = mp.MustParseReal("0.5")
)

type approxConfig struct {
	maxIterations int
}

// ApproxOption configures Approximate.
type ApproxOption func(*approxConfig)

// WithMaxIterations caps the number of continued-fraction steps.
//
// Default: 4 steps per working digit plus 64, which no convergent sequence
// reaches. Use WithMaxIterations(3) in tests to force a ConvergenceError.
func WithMaxIterations(n int) ApproxOption {
	return func(cfg *approxConfig) {
		cfg.maxIterations = n
	}
}

// Approximate returns a rational n/d with |x - n/d| <= 10^-digits (relative
// to |x| when |x| > 1), built from the continued-fraction convergents of x.
// digits <= 0 asks for c's full working precision.
//
// The work happens in a context widened by guard digits; c itself is never
// modified. Exceeding the iteration cap returns a ConvergenceError.
func Approximate(c mp.Context, x mp.Real, digits int, opts ...ApproxOption) (Rat, error) {
	const op = "rational.Approximate"

	if digits <= 0 {
		digits = c.Digits()
	}
	if x.IsZero() {
		return Rat{}, nil
	}
	if x.Cmp(realHalf) == 0 {
		return MustNew(1, 2), nil
	}

	neg := x.Sign() < 0
	x = x.Abs()

	ip, err := x.Trunc()
	if err != nil {
		return Rat{}, err
	}
	extra := max(digits-c.Digits(), 0) + len(ip.String()) + guardDigits
	w := c.Guarded(uint32(extra))

	cfg := approxConfig{maxIterations: 4*w.Digits() + 64}
	for _, opt := range opts {
		opt(&cfg)
	}

	// The absolute error is eps·x, so the stop test scales eps by max(1, x).
	tol := mp.Epsilon(digits)
	scale := realOne
	if x.Cmp(realOne) > 0 {
		scale = x
	}

	n := ip
	N := new(big.Int).Add(n, big.NewInt(1))
	d, D := big.NewInt(1), big.NewInt(1)
	var r mp.Real

	finish := func(num, den *big.Int, iterations int) (Rat, error) {
		if neg {
			num = new(big.Int).Neg(num)
		}
		res, err := New(num, den)
		if err != nil {
			return Rat{}, err
		}
		slog.Debug("approximated real",
			"digits", digits,
			"precision", w.Digits(),
			"iterations", iterations,
			"result", res.String())
		return res, nil
	}

	for it := 1; ; it++ {
		if it > cfg.maxIterations {
			return Rat{}, numerr.Convergence(op, it-1, cfg.maxIterations)
		}

		if it > 1 && r.Cmp(realOne) > 0 {
			k, err := r.Trunc()
			if err != nil {
				return Rat{}, err
			}
			N.Add(N, new(big.Int).Mul(n, k))
			D.Add(D, new(big.Int).Mul(d, k))
			n = new(big.Int).Add(n, N)
			d = new(big.Int).Add(d, D)
		}

		xd, err := x.Mul(w, mp.RealFromBig(d))
		if err != nil {
			return Rat{}, err
		}
		r = mp.Real{}
		if xd.Cmp(mp.RealFromBig(n)) != 0 {
			xD, err := x.Mul(w, mp.RealFromBig(D))
			if err != nil {
				return Rat{}, err
			}
			num, err := mp.RealFromBig(N).Sub(w, xD)
			if err != nil {
				return Rat{}, err
			}
			den, err := xd.Sub(w, mp.RealFromBig(n))
			if err != nil {
				return Rat{}, err
			}
			if r, err = num.Quo(w, den); err != nil {
				return Rat{}, err
			}

			switch r.Cmp(realOne) {
			case 0:
				// x is exactly the mediant of the two bracketing fractions.
				return finish(new(big.Int).Add(N, n), new(big.Int).Add(D, d), it)
			case -1:
				N, n = n, N
				D, d = d, D
				if xd, err = x.Mul(w, mp.RealFromBig(d)); err != nil {
					return Rat{}, err
				}
			}
		}

		eps, err := epsilon(w, n, xd, scale)
		if err != nil {
			return Rat{}, err
		}
		if eps.Cmp(tol) <= 0 {
			return finish(n, d, it)
		}
		if r.IsZero() {
			return Rat{}, numerr.Convergence(op, it, cfg.maxIterations)
		}
	}
}

// epsilon returns |1 - n/xd| · scale.
func epsilon(w mp.Context, n *big.Int, xd, scale mp.Real) (mp.Real, error) {
	q, err := mp.RealFromBig(n).Quo(w, xd)
	if err != nil {
		return mp.Real{}, err
	}
	e, err := realOne.Sub(w, q)
	if err != nil {
		return mp.Real{}, err
	}
	return e.Abs().Mul(w, scale)
}
