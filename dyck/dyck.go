// Package dyck counts Dyck paths: sequences of up/down unit steps that
// start and end at the same level and never dip below it.
package dyck

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// Count returns the number of Dyck paths of length 2n, C(2n,n)/(n+1).
// Count(0) = 1, the empty path. The count overflows float64 past
// n ≈ 510; callers in that range want LogCount.
func Count(n int) float64 {
	return math.Round(math.Exp(LogCount(n)))
}

// LogCount returns log(Count(n)) without forming the binomial
// coefficient, finite for any n.
func LogCount(n int) float64 {
	if n <= 0 {
		return 0
	}
	return combin.LogGeneralizedBinomial(float64(2*n), float64(n)) - math.Log(float64(n+1))
}

// CountPrimitive returns the number of primitive Dyck paths of length
// 2n, C(2n-2,n-1)/n: paths touching their start level only at the two
// endpoints. Defined for n >= 1.
func CountPrimitive(n int) float64 {
	return math.Round(math.Exp(LogCountPrimitive(n)))
}

// LogCountPrimitive returns log(CountPrimitive(n)) for n >= 1.
func LogCountPrimitive(n int) float64 {
	if n <= 1 {
		return 0
	}
	return combin.LogGeneralizedBinomial(float64(2*n-2), float64(n-1)) - math.Log(float64(n))
}
