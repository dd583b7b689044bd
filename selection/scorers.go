package selection

import (
	"github.com/YuminosukeSato/qfs/pkg/errors"
	"github.com/YuminosukeSato/qfs/stats"
	"gonum.org/v1/gonum/mat"
)

const discreteDataMessage = "data must be discrete (integer-valued codes)"

// Redundancy returns the redundancy matrix of the discrete n×d feature matrix
// X: pairwise mutual information between features with the diagonal set to 0.
func Redundancy(X mat.Matrix) (*mat.SymDense, error) {
	if !stats.IsDiscrete(X) {
		return nil, errors.NewValueError("Redundancy", discreteDataMessage)
	}
	red, err := stats.PairwiseMutualInformation(X)
	if err != nil {
		return nil, err
	}
	for i := 0; i < red.SymmetricDim(); i++ {
		red.SetSym(i, i, 0)
	}
	return red, nil
}

// Importance returns, for each column of the discrete n×d feature matrix X,
// its mutual information with the discrete target y.
func Importance(X mat.Matrix, y mat.Vector) (*mat.VecDense, error) {
	if !stats.IsDiscrete(X) || !stats.IsDiscrete(y) {
		return nil, errors.NewValueError("Importance", discreteDataMessage)
	}
	mi, err := stats.MutualInformation(X, y)
	if err != nil {
		return nil, err
	}
	return mat.VecDenseCopyOf(mi.ColView(0)), nil
}
