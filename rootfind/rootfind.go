// Package rootfind solves f(x) = 0 for scalar f on a bracketing
// interval.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

// MaxIterations caps the solver loop. Brent's method shrinks the
// bracket at least as fast as bisection, so 100 iterations exhaust
// float64 resolution on any unit-scale bracket.
const MaxIterations = 100

const eps = 2.220446049250313e-16

// ErrNoBracket reports that f(lo) and f(hi) do not straddle zero, so
// the interval is not guaranteed to contain a root.
var ErrNoBracket = errors.New("rootfind: no sign change on bracket")

// ErrNoConvergence reports that the iteration cap was hit before the
// bracket shrank below tolerance.
var ErrNoConvergence = errors.New("rootfind: no convergence")

// Brent finds x in [lo, hi] with f(x) within tolerance of zero, by
// Brent's method: inverse quadratic interpolation and secant steps
// guarded by bisection. f(lo) and f(hi) must have opposite signs;
// an endpoint that is already an exact root is returned as is.
func Brent(f func(float64) float64, lo, hi, tol float64) (float64, error) {
	a, b := lo, hi
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, fmt.Errorf("%w: f(%v)=%v, f(%v)=%v", ErrNoBracket, a, fa, b, fb)
	}

	c, fc := b, fb
	var d, e float64
	for iter := 0; iter < MaxIterations; iter++ {
		if (fb > 0) == (fc > 0) {
			// root bracketed between b and a: reset the contrapoint
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*eps*math.Abs(b) + tol/2
		xm := (c - b) / 2
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				// interpolation rejected, fall back to bisection
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}
	return b, fmt.Errorf("%w: %d iterations on [%v, %v]", ErrNoConvergence, MaxIterations, lo, hi)
}
