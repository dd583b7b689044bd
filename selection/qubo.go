package selection

import (
	"math"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	shapeMismatchMessage = "shapes of redundancy and/or importance do not match; expected (n, n) and (n,)"

	// diagonalTolerance matches numpy.isclose(x, 0) with default tolerances.
	diagonalTolerance = 1e-8
)

// FeatureSelectionQUBO builds the QUBO matrix
//
//	Q[i][j] = (1-alpha)·R[i][j]   (i ≠ j)
//	Q[i][i] = -alpha·I[i]
//
// and then replaces every diagonal entry greater than -ImportanceThreshold by
// the penalty, so that features with negligible importance are reliably left
// out by the minimizer. The penalty is ThresholdPenalty if set, otherwise the
// infinity norm (maximum absolute row sum) of Q before the replacement.
//
// A ShapeMismatchError is returned unless R is n×n and I has length n.
// Negative scores, a non-zero diagonal in R or an asymmetric R are invariant
// violations (see errors.IsInvariantViolation). Nil scores, typed or not,
// are a programming error and panic.
func FeatureSelectionQUBO(redundancy mat.Matrix, importance mat.Vector, alpha float64, opts ...Option) (*mat.SymDense, error) {
	cfg := newConfig(opts)
	if err := cfg.validateQUBO(); err != nil {
		return nil, err
	}
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if err := validateScores("FeatureSelectionQUBO", redundancy, importance); err != nil {
		return nil, err
	}
	return assembleQUBO(redundancy, importance, alpha, cfg), nil
}

// assembleQUBO expects scores that passed validateScores.
func assembleQUBO(redundancy mat.Matrix, importance mat.Vector, alpha float64, cfg *Config) *mat.SymDense {
	n := importance.Len()
	q := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		q.SetSym(i, i, -alpha*importance.AtVec(i))
		for j := i + 1; j < n; j++ {
			q.SetSym(i, j, (1-alpha)*redundancy.At(i, j))
		}
	}

	var pen float64
	if cfg.ThresholdPenalty != nil {
		pen = *cfg.ThresholdPenalty
	} else {
		pen = mat.Norm(q, math.Inf(1))
	}
	for i := 0; i < n; i++ {
		if q.At(i, i) > -cfg.ImportanceThreshold {
			q.SetSym(i, i, pen)
		}
	}
	return q
}

func validateAlpha(alpha float64) error {
	if !(alpha >= 0 && alpha <= 1) {
		return errors.NewValidationError("alpha", "must be within [0, 1]", alpha)
	}
	return nil
}

// validateScores checks shapes first, then finiteness, then the sign,
// diagonal and symmetry invariants of the redundancy and importance scores.
func validateScores(op string, redundancy mat.Matrix, importance mat.Vector) error {
	r, c := redundancy.Dims()
	n := importance.Len()
	if r != c || r != n {
		return errors.NewShapeMismatchError(op, shapeMismatchMessage, []int{r, c}, []int{n})
	}

	if err := errors.CheckMatrix(op, redundancy, r, c, 0); err != nil {
		return err
	}
	if err := errors.CheckMatrix(op, importance, n, 1, 0); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if v := importance.AtVec(i); v < 0 {
			return errors.NewInvariantViolation(op, "importance contains negative values (I[%d] = %g)", i, v)
		}
		for j := 0; j < n; j++ {
			if v := redundancy.At(i, j); v < 0 {
				return errors.NewInvariantViolation(op, "redundancy contains negative values (R[%d][%d] = %g)", i, j, v)
			}
		}
	}
	for i := 0; i < n; i++ {
		if v := redundancy.At(i, i); math.Abs(v) > diagonalTolerance {
			return errors.NewInvariantViolation(op, "redundancy has non-zero diagonal (R[%d][%d] = %g)", i, i, v)
		}
		for j := i + 1; j < n; j++ {
			a, b := redundancy.At(i, j), redundancy.At(j, i)
			if math.Abs(a-b) > diagonalTolerance+1e-5*math.Abs(b) {
				return errors.NewInvariantViolation(op, "redundancy is not symmetric (R[%d][%d] = %g, R[%d][%d] = %g)", i, j, a, j, i, b)
			}
		}
	}
	return nil
}
