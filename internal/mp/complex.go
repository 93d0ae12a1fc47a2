package mp

import "github.com/roach88/numtower/internal/numerr"

// Complex is an immutable complex number with Real parts.
type Complex struct {
	Re, Im Real
}

// NewComplex returns re + im·i.
func NewComplex(re, im Real) Complex {
	return Complex{Re: re, Im: im}
}

// RealComplex returns x + 0i.
func RealComplex(x Real) Complex {
	return Complex{Re: x}
}

// IsReal reports whether the imaginary part is zero.
func (z Complex) IsReal() bool {
	return z.Im.IsZero()
}

// Equal reports exact equality of both parts.
func (z Complex) Equal(w Complex) bool {
	return z.Re.Cmp(w.Re) == 0 && z.Im.Cmp(w.Im) == 0
}

// Neg returns -z.
func (z Complex) Neg() Complex {
	return Complex{Re: z.Re.Neg(), Im: z.Im.Neg()}
}

// Conj returns the complex conjugate of z.
func (z Complex) Conj() Complex {
	return Complex{Re: z.Re, Im: z.Im.Neg()}
}

// Add returns z + w.
func (z Complex) Add(c Context, w Complex) (Complex, error) {
	re, err := z.Re.Add(c, w.Re)
	if err != nil {
		return Complex{}, err
	}
	im, err := z.Im.Add(c, w.Im)
	if err != nil {
		return Complex{}, err
	}
	return Complex{Re: re, Im: im}, nil
}

// Sub returns z - w.
func (z Complex) Sub(c Context, w Complex) (Complex, error) {
	return z.Add(c, w.Neg())
}

// Mul returns z * w.
func (z Complex) Mul(c Context, w Complex) (Complex, error) {
	// Products are formed at guarded precision and rounded once.
	g := c.Guarded(guardDigits)
	ac, err := z.Re.Mul(g, w.Re)
	if err != nil {
		return Complex{}, err
	}
	bd, err := z.Im.Mul(g, w.Im)
	if err != nil {
		return Complex{}, err
	}
	ad, err := z.Re.Mul(g, w.Im)
	if err != nil {
		return Complex{}, err
	}
	bc, err := z.Im.Mul(g, w.Re)
	if err != nil {
		return Complex{}, err
	}
	re, err := ac.Sub(c, bd)
	if err != nil {
		return Complex{}, err
	}
	im, err := ad.Add(c, bc)
	if err != nil {
		return Complex{}, err
	}
	return Complex{Re: re, Im: im}, nil
}

// Quo returns z / w. w == 0 is a domain error.
func (z Complex) Quo(c Context, w Complex) (Complex, error) {
	if w.Re.IsZero() && w.Im.IsZero() {
		return Complex{}, numerr.Domain("mp.Quo", "division by zero")
	}
	g := c.Guarded(guardDigits)
	num, err := z.Mul(g, w.Conj())
	if err != nil {
		return Complex{}, err
	}
	den, err := w.norm(g)
	if err != nil {
		return Complex{}, err
	}
	re, err := num.Re.Quo(c, den)
	if err != nil {
		return Complex{}, err
	}
	im, err := num.Im.Quo(c, den)
	if err != nil {
		return Complex{}, err
	}
	return Complex{Re: re, Im: im}, nil
}

// norm returns re² + im².
func (z Complex) norm(c Context) (Real, error) {
	rr, err := z.Re.Mul(c, z.Re)
	if err != nil {
		return Real{}, err
	}
	ii, err := z.Im.Mul(c, z.Im)
	if err != nil {
		return Real{}, err
	}
	return rr.Add(c, ii)
}

// Abs returns the magnitude |z|.
func (z Complex) Abs(c Context) (Real, error) {
	if z.Im.IsZero() {
		return z.Re.Abs(), nil
	}
	if z.Re.IsZero() {
		return z.Im.Abs(), nil
	}
	n, err := z.norm(c.Guarded(guardDigits))
	if err != nil {
		return Real{}, err
	}
	return n.Sqrt(c)
}

// String renders z as "a+bi" or "a-bi".
func (z Complex) String() string {
	if z.Im.Sign() < 0 {
		return z.Re.String() + "-" + z.Im.Abs().String() + "i"
	}
	return z.Re.String() + "+" + z.Im.String() + "i"
}
