package running_max

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danieldibenedetto/binomialOptionPricing/binomial"
)

func TestExpectedZeroPeriods(t *testing.T) {
	for _, v := range []float64{0.01, 0.5, 0.99} {
		expected, err := Expected(0, v)
		require.NoError(t, err)
		require.Equal(t, 1.0, expected, "v=%v", v)
	}
}

func TestExpectedOnePeriod(t *testing.T) {
	// max is 1+v on the up path, 1 on the down path
	for _, v := range []float64{0.1, 0.3, 0.75} {
		expected, err := Expected(1, v)
		require.NoError(t, err)
		require.InDelta(t, 1+v/2, expected, 1e-12, "v=%v", v)
	}
}

func TestExpectedTwoPeriods(t *testing.T) {
	// four paths: maxima (1+v)^2, 1+v, 1, 1
	for _, v := range []float64{0.1, 0.3, 0.75} {
		expected, err := Expected(2, v)
		require.NoError(t, err)
		want := 0.5 + (1+v)/4 + (1+v)*(1+v)/4
		require.InDelta(t, want, expected, 1e-12, "v=%v", v)
	}
}

// TestExpectedAgainstEnumeration walks every step sequence and tracks
// the value at the first node establishing each new level maximum —
// later revisits of a level carry a strictly smaller price, so the
// first visit is the one that counts.
func TestExpectedAgainstEnumeration(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for _, v := range []float64{0.1, 0.37} {
			want := 0.0
			paths := 1 << uint(n)
			for bits := 0; bits < paths; bits++ {
				price, level := 1.0, 0
				maxPrice, maxLevel := 1.0, 0
				for step := 0; step < n; step++ {
					if bits&(1<<uint(step)) != 0 {
						price *= 1 + v
						level++
					} else {
						price *= 1 - v
						level--
					}
					if level > maxLevel {
						maxLevel = level
						maxPrice = price
					}
				}
				want += maxPrice
			}
			want /= float64(paths)

			got, err := Expected(n, v)
			require.NoError(t, err)
			require.InDelta(t, want, got, 1e-11, "n=%d v=%v", n, v)
		}
	}
}

func TestExpectedScenario(t *testing.T) {
	expected, err := Expected(100, 0.1)
	require.NoError(t, err)
	require.InDelta(t, 1.9672837106609662, expected, 1e-9)
}

func TestExpectedInvalid(t *testing.T) {
	_, err := Expected(-1, 0.5)
	require.ErrorIs(t, err, binomial.ErrInvalidParameter)
	_, err = Expected(5, 0)
	require.ErrorIs(t, err, binomial.ErrInvalidParameter)
	_, err = Expected(5, 1)
	require.ErrorIs(t, err, binomial.ErrInvalidParameter)
	_, _, err = Probabilities(-1)
	require.ErrorIs(t, err, binomial.ErrInvalidParameter)
}

func TestProbabilitiesCombineToUnitMass(t *testing.T) {
	// the node carrying the global maximum is unique, so the joint
	// new-max and never-beaten probabilities sum to one over the grid
	for _, n := range []int{0, 1, 2, 5, 25, 100, 400} {
		p1, p2, err := Probabilities(n)
		require.NoError(t, err)
		total := 0.0
		for j := 0; j <= n; j++ {
			for i := 0; i <= j; i++ {
				total += p1.At(i, j) * p2.At(i, j)
			}
		}
		require.InDelta(t, 1, total, 1e-11, "n=%d", n)
	}
}

func TestProbabilitiesGridShape(t *testing.T) {
	p1, p2, err := Probabilities(6)
	require.NoError(t, err)

	// start node is the trivial initial maximum
	require.Equal(t, 1.0, p1.At(0, 0))
	// a zero-length tail never beats anything
	for i := 0; i <= 6; i++ {
		require.Equal(t, 1.0, p2.At(i, 6), "i=%d", i)
	}
	// the all-up spine sets a new maximum every period
	spine := 1.0
	for j := 1; j <= 6; j++ {
		spine /= 2
		require.InDelta(t, spine, p1.At(0, j), 1e-15, "j=%d", j)
	}
	// nodes at or below the start level never host a new maximum
	for j := 1; j <= 6; j++ {
		for i := (j + 1) / 2; i <= j; i++ {
			require.Equal(t, 0.0, p1.At(i, j), "node (%d,%d)", i, j)
		}
	}
	// everything is a probability
	for j := 0; j <= 6; j++ {
		for i := 0; i <= j; i++ {
			require.GreaterOrEqual(t, p1.At(i, j), 0.0)
			require.LessOrEqual(t, p1.At(i, j), 1.0)
			require.GreaterOrEqual(t, p2.At(i, j), 0.0)
			require.LessOrEqual(t, p2.At(i, j), 1.0)
		}
	}
}

func BenchmarkExpected(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Expected(100, 0.1)
	}
}
