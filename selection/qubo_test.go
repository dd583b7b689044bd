package selection

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFeatureSelectionQUBO(t *testing.T) {
	r := uniformRedundancy(4, 0.5)

	t.Run("alpha zero penalizes every diagonal entry", func(t *testing.T) {
		imp := mat.NewVecDense(4, []float64{0.9, 0.1, 0.8, 0.05})
		q, err := FeatureSelectionQUBO(r, imp, 0)
		require.NoError(t, err)
		for i := 0; i < 4; i++ {
			assert.InDelta(t, 1.5, q.At(i, i), 1e-12)
			for j := 0; j < 4; j++ {
				if i != j {
					assert.InDelta(t, 0.5, q.At(i, j), 1e-12)
				}
			}
		}
	})

	t.Run("alpha one keeps only importance", func(t *testing.T) {
		imp := mat.NewVecDense(4, []float64{0.9, 0, 0.8, 0.05})
		q, err := FeatureSelectionQUBO(r, imp, 1)
		require.NoError(t, err)
		assert.InDelta(t, -0.9, q.At(0, 0), 1e-12)
		assert.InDelta(t, 0.9, q.At(1, 1), 1e-12, "zero importance gets the infinity norm")
		assert.InDelta(t, -0.8, q.At(2, 2), 1e-12)
		assert.InDelta(t, -0.05, q.At(3, 3), 1e-12)
		assert.Zero(t, q.At(0, 1))
	})

	t.Run("mixed alpha", func(t *testing.T) {
		imp := mat.NewVecDense(4, []float64{0.9, 0.1, 0.8, 0.05})
		q, err := FeatureSelectionQUBO(r, imp, 0.5)
		require.NoError(t, err)
		want := []float64{-0.45, -0.05, -0.4, -0.025}
		for i, w := range want {
			assert.InDelta(t, w, q.At(i, i), 1e-12)
		}
		assert.InDelta(t, 0.25, q.At(2, 3), 1e-12)
		assert.Equal(t, q.At(2, 3), q.At(3, 2))
	})

	t.Run("threshold penalty override", func(t *testing.T) {
		imp := mat.NewVecDense(4, []float64{0.9, 0, 0.8, 0.05})
		q, err := FeatureSelectionQUBO(r, imp, 0.5, WithThresholdPenalty(10))
		require.NoError(t, err)
		assert.Equal(t, 10.0, q.At(1, 1))
		assert.InDelta(t, -0.45, q.At(0, 0), 1e-12)
	})

	t.Run("importance threshold", func(t *testing.T) {
		imp := mat.NewVecDense(4, []float64{0.9, 0.1, 0.8, 0.05})
		q, err := FeatureSelectionQUBO(r, imp, 1, WithImportanceThreshold(0.2), WithThresholdPenalty(7))
		require.NoError(t, err)
		assert.Equal(t, []float64{-0.9, 7, -0.8, 7}, []float64{q.At(0, 0), q.At(1, 1), q.At(2, 2), q.At(3, 3)})
	})
}

func TestFeatureSelectionQUBOErrors(t *testing.T) {
	imp := mat.NewVecDense(4, []float64{0.9, 0.1, 0.8, 0.05})

	t.Run("shape mismatch", func(t *testing.T) {
		_, err := FeatureSelectionQUBO(uniformRedundancy(3, 0.5), imp, 0.5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
		assert.Contains(t, err.Error(), "expected (n, n) and (n,)")

		var sm *errors.ShapeMismatchError
		require.True(t, errors.As(err, &sm))
		assert.Equal(t, [][]int{{3, 3}, {4}}, sm.Shapes)
	})

	t.Run("non-square redundancy", func(t *testing.T) {
		_, err := FeatureSelectionQUBO(mat.NewDense(4, 3, nil), imp, 0.5)
		assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
	})

	t.Run("nil inputs panic", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = FeatureSelectionQUBO(nil, imp, 0.5) })
		assert.Panics(t, func() { _, _ = FeatureSelectionQUBO((*mat.SymDense)(nil), imp, 0.5) })
		assert.Panics(t, func() { _, _ = FeatureSelectionQUBO(uniformRedundancy(4, 0.5), (*mat.VecDense)(nil), 0.5) })
	})

	t.Run("non-zero diagonal", func(t *testing.T) {
		r := uniformRedundancy(4, 0.5)
		r.SetSym(0, 0, 0.5)
		_, err := FeatureSelectionQUBO(r, imp, 0.5)
		require.Error(t, err)
		assert.True(t, errors.IsInvariantViolation(err))
		assert.Contains(t, err.Error(), "non-zero diagonal")
	})

	t.Run("negative redundancy", func(t *testing.T) {
		r := uniformRedundancy(4, 0.5)
		r.SetSym(1, 2, -0.1)
		_, err := FeatureSelectionQUBO(r, imp, 0.5)
		assert.True(t, errors.IsInvariantViolation(err))
	})

	t.Run("negative importance", func(t *testing.T) {
		bad := mat.NewVecDense(4, []float64{0.9, -0.1, 0.8, 0.05})
		_, err := FeatureSelectionQUBO(uniformRedundancy(4, 0.5), bad, 0.5)
		assert.True(t, errors.IsInvariantViolation(err))
	})

	t.Run("asymmetric redundancy", func(t *testing.T) {
		r := mat.NewDense(4, 4, []float64{
			0, 0.5, 0.5, 0.5,
			0.4, 0, 0.5, 0.5,
			0.5, 0.5, 0, 0.5,
			0.5, 0.5, 0.5, 0,
		})
		_, err := FeatureSelectionQUBO(r, imp, 0.5)
		require.Error(t, err)
		assert.True(t, errors.IsInvariantViolation(err))
		assert.Contains(t, err.Error(), "not symmetric")
	})

	t.Run("NaN redundancy", func(t *testing.T) {
		r := uniformRedundancy(4, 0.5)
		r.SetSym(0, 1, math.NaN())
		_, err := FeatureSelectionQUBO(r, imp, 0.5)
		var ni *errors.NumericalInstabilityError
		assert.True(t, errors.As(err, &ni))
		assert.False(t, errors.IsInvariantViolation(err))
	})

	t.Run("alpha out of range", func(t *testing.T) {
		for _, alpha := range []float64{-0.1, 1.5, math.NaN()} {
			_, err := FeatureSelectionQUBO(uniformRedundancy(4, 0.5), imp, alpha)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration), "alpha=%v", alpha)
		}
	})

	t.Run("NaN penalty", func(t *testing.T) {
		_, err := FeatureSelectionQUBO(uniformRedundancy(4, 0.5), imp, 0.5, WithThresholdPenalty(math.NaN()))
		assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
	})
}
