package selection

import (
	"fmt"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Solver minimizes a QUBO: given a symmetric n×n matrix Q it returns a binary
// vector x of length n that (approximately) minimizes xᵀQx. Entries of x must
// be 0 or 1. No determinism or optimality is assumed.
type Solver interface {
	Solve(qubo *mat.SymDense) ([]int, error)
}

// SolverFunc adapts an ordinary function to the Solver interface.
type SolverFunc func(qubo *mat.SymDense) ([]int, error)

// Solve calls f(qubo).
func (f SolverFunc) Solve(qubo *mat.SymDense) ([]int, error) {
	return f(qubo)
}

// solve invokes the solver once, converting panics and contract violations
// into errors, and returns the selection with its feature count.
func solve(solver Solver, qubo *mat.SymDense) ([]int, int, error) {
	x, err := errors.SafeCall("Solver.Solve", func() ([]int, error) {
		return solver.Solve(qubo)
	})
	if err != nil {
		return nil, 0, errors.NewModelError("QFS", "solver failed", err)
	}

	n := qubo.SymmetricDim()
	if len(x) != n {
		return nil, 0, errors.NewShapeMismatchError("QFS",
			fmt.Sprintf("solver returned a selection of length %d; expected %d", len(x), n),
			[]int{len(x)}, []int{n})
	}
	count := 0
	for i, v := range x {
		switch v {
		case 0:
		case 1:
			count++
		default:
			return nil, 0, errors.NewValueError("QFS", fmt.Sprintf("solver returned non-binary entry x[%d] = %d", i, v))
		}
	}
	return x, count, nil
}
