package binomial

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidParameter reports a period count, step factor or strike
// outside the model's domain.
var ErrInvalidParameter = errors.New("binomial: invalid parameter")

// Lattice is the triangular state grid of an N-period multiplicative
// binomial process started from a unit base price. Node (i, j) is the
// state after i down moves and j-i up moves, 0 <= i <= j <= N, with
// value (1-v)^i * (1+v)^(j-i). The symmetric up/down factors 1+v and
// 1-v pin the no-arbitrage probability at exactly 1/2 for every v.
type Lattice struct {
	N int     // period count
	V float64 // step factor, 0 < v < 1

	nodes *mat.Dense
}

// NewLattice builds the node grid for n periods and step factor v.
func NewLattice(n int, v float64) (*Lattice, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: period count %d < 0", ErrInvalidParameter, n)
	}
	if v <= 0 || v >= 1 {
		return nil, fmt.Errorf("%w: step factor %v outside (0, 1)", ErrInvalidParameter, v)
	}
	l := &Lattice{N: n, V: v, nodes: mat.NewDense(n+1, n+1, nil)}
	up, down := math.Log1p(v), math.Log1p(-v)
	for j := 0; j <= n; j++ {
		for i := 0; i <= j; i++ {
			// log domain keeps deep nodes accurate for large n
			l.nodes.Set(i, j, math.Exp(float64(j-i)*up+float64(i)*down))
		}
	}
	return l, nil
}

// Value returns the price at node (i, j) after i down moves in j periods.
func (l *Lattice) Value(i, j int) float64 {
	return l.nodes.At(i, j)
}
