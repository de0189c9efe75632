// Package calibration inverts observed binomial call prices to recover
// the model's step parameter, one instrument at a time or jointly.
package calibration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/danieldibenedetto/binomialOptionPricing/binomial"
	"github.com/danieldibenedetto/binomialOptionPricing/rootfind"
)

// Tolerance is the root-finder tolerance on the step parameter.
const Tolerance = 1e-12

// Instrument is one observed call quote: block length in periods,
// strike, and observed price.
type Instrument struct {
	N      int
	Strike float64
	Price  float64
}

// BinomialPrice prices a European call directly from the terminal
// binomial distribution,
//
//	Σ_k C(n,k)·max(0, (1+v)^k (1-v)^(n-k) - K) / 2^n.
//
// It agrees with the backward induction of binomial.PriceEuropean but
// accepts the closed interval v ∈ [0,1] — the endpoint values are the
// well-defined limits — so a root-finding bracket can evaluate it at 0
// and 1. Each term is formed in the log domain (binomial log weight
// plus log payoff) and the sum reduced by log-sum-exp, which stays
// exact where the direct combinatorial sum would overflow.
func BinomialPrice(n int, v, strike float64) (float64, error) {
	if err := validate([]int{n}, []float64{v}, strike); err != nil {
		return 0, err
	}
	return terminalPrice([]int{n}, []float64{v}, strike), nil
}

// CompoundPrice prices a call spanning consecutive blocks: ns[b]
// periods with step factor vs[b] each, payoff taken at the cumulative
// final period against the single strike.
func CompoundPrice(ns []int, vs []float64, strike float64) (float64, error) {
	if len(ns) == 0 || len(ns) != len(vs) {
		return 0, fmt.Errorf("%w: %d block lengths against %d step factors",
			binomial.ErrInvalidParameter, len(ns), len(vs))
	}
	if err := validate(ns, vs, strike); err != nil {
		return 0, err
	}
	return terminalPrice(ns, vs, strike), nil
}

// Single recovers the step parameter implied by one observed price: the
// root of BinomialPrice(n, v, strike) - price on (0, 1). The price is
// increasing in v for a fixed strike, so the [0, 1] bracket pins a
// unique solution whenever the observed price is attainable; otherwise
// rootfind.ErrNoBracket is returned unchanged.
func Single(n int, strike, price float64) (float64, error) {
	if err := validate([]int{n}, nil, strike); err != nil {
		return 0, err
	}
	return solve([]int{n}, nil, strike, price)
}

// Sequential calibrates an ordered instrument set block by block:
// instrument i prices the compound horizon over blocks 1..i, and its
// step parameter is solved with the earlier parameters held at their
// already-calibrated values. Each parameter is determined once and
// never revisited. Block lengths must be positive.
func Sequential(instruments []Instrument) ([]float64, error) {
	ns, err := blockLengths(instruments)
	if err != nil {
		return nil, err
	}
	solved := make([]float64, 0, len(instruments))
	for i, ins := range instruments {
		v, err := solve(ns[:i+1], solved, ins.Strike, ins.Price)
		if err != nil {
			return nil, fmt.Errorf("calibration: instrument %d: %w", i, err)
		}
		solved = append(solved, v)
	}
	return solved, nil
}

// solve finds the last block's step parameter with every earlier
// parameter passed as an explicit fixed argument. The solved prefix is
// copied per evaluation so the objective closes over nothing mutable.
func solve(ns []int, solved []float64, strike, price float64) (float64, error) {
	f := func(v float64) float64 {
		vs := make([]float64, len(solved)+1)
		copy(vs, solved)
		vs[len(solved)] = v
		return terminalPrice(ns, vs, strike) - price
	}
	return rootfind.Brent(f, 0, 1, Tolerance)
}

// terminalPrice is the nested expectation over every block's terminal
// binomial distribution of the call payoff at the cumulative final
// period. Blocks are independent, so each joint outcome weighs the
// product of per-block binomial weights and prices the product of
// per-block price factors.
func terminalPrice(ns []int, vs []float64, strike float64) float64 {
	terms := appendTerms(nil, ns, vs, strike, 0, 0)
	if len(terms) == 0 {
		return 0
	}
	return math.Exp(floats.LogSumExp(terms))
}

// appendTerms walks the block outcome tree carrying the accumulated log
// weight and log price, and appends one log-domain term per terminal
// outcome that finishes in the money.
func appendTerms(terms []float64, ns []int, vs []float64, strike, logWeight, logPrice float64) []float64 {
	if len(ns) == 0 {
		if s := math.Exp(logPrice); s > strike {
			logPayoff := logPrice
			if strike > 0 {
				// log(S-K) = log(S) + log1p(-K/S)
				logPayoff += math.Log1p(-strike * math.Exp(-logPrice))
			}
			terms = append(terms, logWeight+logPayoff)
		}
		return terms
	}
	n, v := ns[0], vs[0]
	dist := distuv.Binomial{N: float64(n), P: 0.5}
	for k := 0; k <= n; k++ {
		// guards keep v = 0 and v = 1 at their limit values
		step := 0.0
		if k > 0 {
			step += float64(k) * math.Log1p(v)
		}
		if k < n {
			step += float64(n-k) * math.Log1p(-v)
		}
		terms = appendTerms(terms, ns[1:], vs[1:], strike,
			logWeight+dist.LogProb(float64(k)), logPrice+step)
	}
	return terms
}

func blockLengths(instruments []Instrument) ([]int, error) {
	if len(instruments) == 0 {
		return nil, fmt.Errorf("%w: empty instrument set", binomial.ErrInvalidParameter)
	}
	ns := make([]int, len(instruments))
	for i, ins := range instruments {
		if ins.N <= 0 {
			return nil, fmt.Errorf("%w: block length %d must be positive",
				binomial.ErrInvalidParameter, ins.N)
		}
		if ins.Strike < 0 {
			return nil, fmt.Errorf("%w: strike %v < 0", binomial.ErrInvalidParameter, ins.Strike)
		}
		ns[i] = ins.N
	}
	return ns, nil
}

func validate(ns []int, vs []float64, strike float64) error {
	for _, n := range ns {
		if n < 0 {
			return fmt.Errorf("%w: period count %d < 0", binomial.ErrInvalidParameter, n)
		}
	}
	for _, v := range vs {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: step factor %v outside [0, 1]", binomial.ErrInvalidParameter, v)
		}
	}
	if strike < 0 {
		return fmt.Errorf("%w: strike %v < 0", binomial.ErrInvalidParameter, strike)
	}
	return nil
}
