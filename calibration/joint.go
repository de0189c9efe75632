package calibration

import (
	"errors"
	"log"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/danieldibenedetto/binomialOptionPricing/binomial"
)

// Joint refits every step parameter at once by least squares over the
// whole instrument set. The sequential chain determines each parameter
// from a single quote and never revisits it; Joint is the independent
// cross-check for books of more than two instruments. On a consistent
// book the two agree, on noisy quotes Joint spreads the error across
// blocks instead of pushing it into the last one.
//
// Seeds from the sequential solution when the chain succeeds, otherwise
// from flat midpoints. Out-of-bounds parameters are rejected with a
// penalty value, leaving the minimizer unconstrained in form.
func Joint(instruments []Instrument) ([]float64, error) {
	ns, err := blockLengths(instruments)
	if err != nil {
		return nil, err
	}

	seed, err := Sequential(instruments)
	if err != nil {
		if errors.Is(err, binomial.ErrInvalidParameter) {
			return nil, err
		}
		seed = make([]float64, len(instruments))
		for i := range seed {
			seed[i] = 0.5
		}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			for _, v := range x {
				if v <= 0 || v >= 1 {
					return math.MaxFloat64
				}
			}
			residual := 0.0
			for i, ins := range instruments {
				diff := terminalPrice(ns[:i+1], x[:i+1], ins.Strike) - ins.Price
				residual += diff * diff
			}
			return residual
		},
	}
	result, err := optimize.Minimize(problem, seed, &optimize.Settings{}, nil)
	if err != nil {
		log.Printf("Joint optimize.Minimize fail, err: %s", err)
		return nil, err
	}
	return result.X, nil
}
