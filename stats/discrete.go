package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// IsDiscrete reports whether every entry of m is a finite integer value, i.e.
// whether m holds discrete codes that the statistics in this package can
// treat as symbols. Vectors may be passed directly since mat.Vector is a
// mat.Matrix. An empty matrix is discrete.
func IsDiscrete(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
				return false
			}
		}
	}
	return true
}
