package selection

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"github.com/YuminosukeSato/qfs/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRedundancy(t *testing.T) {
	t.Run("independent columns", func(t *testing.T) {
		X := mat.NewDense(4, 2, []float64{
			0, 0,
			0, 1,
			1, 0,
			1, 1,
		})
		red, err := Redundancy(X)
		require.NoError(t, err)
		pmi, err := stats.PairwiseMutualInformation(X)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, pmi.At(0, 0), 1e-12)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				assert.InDelta(t, 0.0, red.At(i, j), 1e-12, "R[%d][%d]", i, j)
			}
		}
	})

	t.Run("pairwise mutual information with zero diagonal", func(t *testing.T) {
		X, _ := selectorData()
		red, err := Redundancy(X)
		require.NoError(t, err)
		pmi, err := stats.PairwiseMutualInformation(X)
		require.NoError(t, err)

		_, d := X.Dims()
		require.Equal(t, d, red.SymmetricDim())
		for i := 0; i < d; i++ {
			assert.Zero(t, red.At(i, i))
			for j := 0; j < d; j++ {
				if i != j {
					assert.Equal(t, pmi.At(i, j), red.At(i, j), "R[%d][%d]", i, j)
				}
			}
		}
	})

	t.Run("non-discrete input", func(t *testing.T) {
		for name, X := range map[string]*mat.Dense{
			"fractional": mat.NewDense(2, 2, []float64{0, 1, 0.5, 1}),
			"NaN":        mat.NewDense(2, 2, []float64{0, 1, math.NaN(), 1}),
		} {
			_, err := Redundancy(X)
			require.Error(t, err, name)
			assert.True(t, errors.Is(err, errors.ErrInvalidInput), name)
			assert.Contains(t, err.Error(), "data must be discrete", name)
		}
	})
}

func TestImportance(t *testing.T) {
	t.Run("mutual information with the target", func(t *testing.T) {
		X, y := selectorData()
		imp, err := Importance(X, y)
		require.NoError(t, err)
		mi, err := stats.MutualInformation(X, y)
		require.NoError(t, err)

		_, d := X.Dims()
		require.Equal(t, d, imp.Len())
		for i := 0; i < d; i++ {
			assert.Equal(t, mi.At(i, 0), imp.AtVec(i), "I[%d]", i)
		}
	})

	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})

	t.Run("non-discrete target", func(t *testing.T) {
		_, err := Importance(X, mat.NewVecDense(4, []float64{0, 0.5, 1, 1}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "data must be discrete")
	})

	t.Run("non-discrete features", func(t *testing.T) {
		bad := mat.DenseCopyOf(X)
		bad.Set(2, 1, 0.25)
		_, err := Importance(bad, mat.NewVecDense(4, []float64{0, 0, 1, 1}))
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Importance(X, mat.NewVecDense(3, []float64{0, 0, 1}))
		assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
	})
}
