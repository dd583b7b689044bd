package selection

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// bruteForce minimizes xᵀQx by enumerating every binary vector.
// Ties keep the vector enumerated first.
var bruteForce = SolverFunc(func(q *mat.SymDense) ([]int, error) {
	n := q.SymmetricDim()
	best := math.Inf(1)
	var bestX []int
	x := mat.NewVecDense(n, nil)
	for mask := 0; mask < 1<<n; mask++ {
		for i := 0; i < n; i++ {
			x.SetVec(i, float64(mask>>i&1))
		}
		if e := mat.Inner(x, q, x); e < best {
			best = e
			bestX = make([]int, n)
			for i := range bestX {
				bestX[i] = mask>>i&1
			}
		}
	}
	return bestX, nil
})

// constantSolver always selects every feature except the last one.
var constantSolver = SolverFunc(func(q *mat.SymDense) ([]int, error) {
	n := q.SymmetricDim()
	x := make([]int, n)
	for i := 0; i < n-1; i++ {
		x[i] = 1
	}
	return x, nil
})

// uniformRedundancy returns an n×n redundancy matrix with off-diagonal v.
func uniformRedundancy(n int, v float64) *mat.SymDense {
	r := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r.SetSym(i, j, v)
		}
	}
	return r
}
