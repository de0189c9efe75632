package binomial

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// European values a call with the given strike by backward induction:
// terminal payoff max(0, S-K), every interior node the plain average of
// its two successors. The model carries no discounting, so the result
// is the martingale expectation of the terminal payoff.
func (l *Lattice) European(strike float64) float64 {
	return l.induct(strike, false)
}

// American values a call with early exercise: at every interior node
// the immediate exercise value S-K is compared against continuation,
// even where it is negative. With zero drift and zero rate the result
// coincides with the European value; the comparison structure is kept
// so the valuator carries over to non-degenerate rate settings.
func (l *Lattice) American(strike float64) float64 {
	return l.induct(strike, true)
}

func (l *Lattice) induct(strike float64, earlyExercise bool) float64 {
	values := mat.NewVecDense(l.N+1, nil)
	for i := 0; i <= l.N; i++ {
		if payoff := l.Value(i, l.N) - strike; payoff > 0 {
			values.SetVec(i, payoff)
		}
	}
	for j := l.N - 1; j >= 0; j-- {
		for i := 0; i <= j; i++ {
			value := (values.AtVec(i) + values.AtVec(i+1)) / 2
			if exercise := l.Value(i, j) - strike; earlyExercise && exercise > value {
				value = exercise
			}
			values.SetVec(i, value)
		}
	}
	return values.AtVec(0)
}

// PriceEuropean prices a European call over n periods with step factor
// v and the given strike.
func PriceEuropean(n int, v, strike float64) (float64, error) {
	l, err := newPricingLattice(n, v, strike)
	if err != nil {
		return 0, err
	}
	return l.European(strike), nil
}

// PriceAmerican prices an American call over n periods with step factor
// v and the given strike.
func PriceAmerican(n int, v, strike float64) (float64, error) {
	l, err := newPricingLattice(n, v, strike)
	if err != nil {
		return 0, err
	}
	return l.American(strike), nil
}

func newPricingLattice(n int, v, strike float64) (*Lattice, error) {
	if strike < 0 {
		return nil, fmt.Errorf("%w: strike %v < 0", ErrInvalidParameter, strike)
	}
	return NewLattice(n, v)
}
