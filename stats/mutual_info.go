package stats

import (
	"math"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MutualInformationScore returns I(x; y) = H(x) + H(y) - H(x, y) in bits.
//
// Mutual information of an empirical distribution is never negative; values
// that come out below zero through floating point cancellation are reported
// as 0.
func MutualInformationScore(x, y []float64) (float64, error) {
	hxy, err := JointEntropy(x, y)
	if err != nil {
		return 0, err
	}
	return mutualInformation(Entropy(x), Entropy(y), hxy), nil
}

// MutualInformation returns the d×f matrix M with M[i][j] = I(xs[:,i]; ys[:,j])
// for an n×d matrix xs and an n×f matrix ys.
func MutualInformation(xs, ys mat.Matrix) (*mat.Dense, error) {
	n, d := xs.Dims()
	m, f := ys.Dims()
	if n != m {
		return nil, errors.NewDimensionError("MutualInformation", n, m, 0)
	}
	if n == 0 || d == 0 || f == 0 {
		return nil, errors.NewModelError("MutualInformation", "empty data", errors.ErrEmptyData)
	}

	xCols := columns(xs)
	yCols := columns(ys)
	hx := entropies(xCols)
	hy := entropies(yCols)

	mi := mat.NewDense(d, f, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < f; j++ {
			hxy, err := JointEntropy(xCols[i], yCols[j])
			if err != nil {
				return nil, err
			}
			mi.Set(i, j, mutualInformation(hx[i], hy[j], hxy))
		}
	}
	return mi, nil
}

// PairwiseMutualInformation returns the symmetric d×d matrix of mutual
// information between the columns of the n×d matrix xs. The diagonal holds
// each column's entropy (its mutual information with itself); every
// off-diagonal entry is computed once per unordered pair.
func PairwiseMutualInformation(xs mat.Matrix) (*mat.SymDense, error) {
	n, d := xs.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewModelError("PairwiseMutualInformation", "empty data", errors.ErrEmptyData)
	}

	cols := columns(xs)
	h := entropies(cols)

	mi := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		mi.SetSym(i, i, h[i])
		for j := i + 1; j < d; j++ {
			hij, err := JointEntropy(cols[i], cols[j])
			if err != nil {
				return nil, err
			}
			mi.SetSym(i, j, mutualInformation(h[i], h[j], hij))
		}
	}
	return mi, nil
}

func mutualInformation(hx, hy, hxy float64) float64 {
	return math.Max(0, hx+hy-hxy)
}

func columns(m mat.Matrix) [][]float64 {
	_, c := m.Dims()
	cols := make([][]float64, c)
	for j := range cols {
		cols[j] = mat.Col(nil, j, m)
	}
	return cols
}

func entropies(cols [][]float64) []float64 {
	h := make([]float64, len(cols))
	for i, col := range cols {
		h[i] = Entropy(col)
	}
	return h
}
