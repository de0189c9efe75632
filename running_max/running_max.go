// Package running_max computes the expectation of the running maximum
// of a binomial lattice path by exact Dyck-path counting, without
// simulation.
package running_max

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/danieldibenedetto/binomialOptionPricing/binomial"
	"github.com/danieldibenedetto/binomialOptionPricing/dyck"
)

// Probabilities runs the forward and backward counting passes for an
// n-period lattice. The step distribution is symmetric regardless of
// the step factor, so both grids depend on n alone.
//
// p1[i,j] is the probability that the path establishes a strictly new
// running maximum at node (i, j): it steps up from the level of its
// previous maximum after spending k down moves and k up moves at or
// below that level. A stay of 2k steps ending back at the level is a
// reflected Dyck path, so
//
//	p1[i,j] = Σ_k p1[i-k, j-1-2k] · Count(k)/2^(2k+1).
//
// p2[i,j] is the probability that the remaining n-j periods never climb
// strictly above the level of node (i, j): either the path drops and
// never regains the level, or it first returns after a primitive
// excursion of 2k steps and the tail repeats from there,
//
//	p2[i,j] = p2[i+1, j+1]/2 + Σ_k p2[i+k, j+2k] · CountPrimitive(k)/2^(2k).
//
// Both are path-count recurrences divided through by the number of
// equally likely step sequences over their span (2^j forward, 2^(n-j)
// backward); running them pre-normalized keeps every entry a bounded
// probability, where the raw counts would overflow float64 for large n.
func Probabilities(n int) (p1, p2 *mat.Dense, err error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("%w: period count %d < 0", binomial.ErrInvalidParameter, n)
	}

	// excursion half-lengths never exceed n/2; hoist the weights out of
	// the O(n^3) recurrence loops
	newMax := make([]float64, n/2+1)
	ret := make([]float64, n/2+1)
	for k := range newMax {
		newMax[k] = newMaxWeight(k)
		ret[k] = returnWeight(k)
	}

	p1 = mat.NewDense(n+1, n+1, nil)
	p1.Set(0, 0, 1)
	for j := 1; j <= n; j++ {
		for i := 0; i <= j; i++ {
			sum := 0.0
			for k := 0; k <= i && j-1-2*k >= 0; k++ {
				if i-k > j-1-2*k {
					// previous maximum not reachable in that many periods
					continue
				}
				sum += p1.At(i-k, j-1-2*k) * newMax[k]
			}
			p1.Set(i, j, sum)
		}
	}

	p2 = mat.NewDense(n+1, n+1, nil)
	for i := 0; i <= n; i++ {
		p2.Set(i, n, 1)
	}
	for j := n - 1; j >= 0; j-- {
		for i := 0; i <= j; i++ {
			sum := p2.At(i+1, j+1) / 2
			for k := 1; j+2*k <= n; k++ {
				sum += p2.At(i+k, j+2*k) * ret[k]
			}
			p2.Set(i, j, sum)
		}
	}
	return p1, p2, nil
}

// Expected returns the expectation of the running maximum of an
// n-period path with step factor v. The global maximum sits at node
// (i, j) exactly when a new maximum is set there and never beaten
// afterwards; the two events depend on disjoint step ranges, so their
// probabilities multiply, and the expectation contracts the product
// against the node values.
func Expected(n int, v float64) (float64, error) {
	lattice, err := binomial.NewLattice(n, v)
	if err != nil {
		return 0, err
	}
	p1, p2, err := Probabilities(n)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for j := 0; j <= n; j++ {
		for i := 0; i <= j; i++ {
			sum += p1.At(i, j) * p2.At(i, j) * lattice.Value(i, j)
		}
	}
	return sum, nil
}

// newMaxWeight is the probability that the next strictly new maximum
// arrives exactly 2k+1 periods after the previous one: Count(k) stays
// of 2k steps below the old level, then one up step, out of 2^(2k+1)
// step sequences.
func newMaxWeight(k int) float64 {
	return math.Exp(dyck.LogCount(k) - float64(2*k+1)*math.Ln2)
}

// returnWeight is the probability of a first return to the current
// level from below after exactly 2k steps.
func returnWeight(k int) float64 {
	return math.Exp(dyck.LogCountPrimitive(k) - float64(2*k)*math.Ln2)
}
