package stats

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Entropy returns the Shannon entropy in bits of the empirical distribution of x:
//
//	H(x) = -Σ_u p(u) log2 p(u),  p(u) = count(u)/n
//
// Only observed symbols contribute, so 0·log2(0) never arises. A sequence with
// a single distinct value has entropy 0; an empty sequence is defined as 0.
func Entropy(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	counts := make([]int, 0, 8)
	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			run++
			continue
		}
		counts = append(counts, run)
		run = 1
	}
	counts = append(counts, run)
	return entropyBits(counts, len(x))
}

// JointEntropy returns the Shannon entropy in bits of the empirical joint
// distribution of the pairs (x[k], y[k]).
func JointEntropy(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.NewDimensionError("JointEntropy", len(x), len(y), 0)
	}
	if len(x) == 0 {
		return 0, nil
	}

	pairs := make([][2]float64, len(x))
	for k := range x {
		pairs[k] = [2]float64{x[k], y[k]}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})

	counts := make([]int, 0, 16)
	run := 1
	for k := 1; k < len(pairs); k++ {
		if pairs[k] == pairs[k-1] {
			run++
			continue
		}
		counts = append(counts, run)
		run = 1
	}
	counts = append(counts, run)
	return entropyBits(counts, len(x)), nil
}

// entropyBits converts symbol counts over n observations to entropy in bits.
func entropyBits(counts []int, n int) float64 {
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / float64(n)
	}
	return stat.Entropy(p) / math.Ln2
}
