package preprocessing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YuminosukeSato/qfs/core/model"
	"github.com/YuminosukeSato/qfs/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BinningMethod は連続値をビンに分割する方法
type BinningMethod string

const (
	// EqualWidth は最小値から最大値までを等幅に分割する
	EqualWidth BinningMethod = "equal"
	// Quantile は経験分位点で分割する
	Quantile BinningMethod = "quantile"
)

// ParseBinningMethod は手法名（大文字小文字を区別しない）をBinningMethodに変換する
func ParseBinningMethod(method string) (BinningMethod, error) {
	switch m := BinningMethod(strings.ToLower(method)); m {
	case EqualWidth, Quantile:
		return m, nil
	default:
		return "", errors.NewUnsupportedMethodError("method", method, string(EqualWidth), string(Quantile))
	}
}

// BinEdges は values からビンの左端（昇順、bins個）を計算する
//
// EqualWidth: min + i*(max-min)/bins (i = 0..bins-1)。最大値そのものは端点に含めない。
// Quantile: 確率 i*(1/bins) における経験分位点（順序統計量間の線形補間）。
func BinEdges(values []float64, bins int, method BinningMethod) ([]float64, error) {
	if bins < 1 {
		return nil, errors.NewValidationError("bins", "must be a positive integer", bins)
	}
	if len(values) == 0 {
		return nil, errors.NewModelError("BinEdges", "empty data", errors.ErrEmptyData)
	}

	switch method {
	case EqualWidth:
		// bins+1 点の等間隔列から最後の点（最大値）を除く
		span := floats.Span(make([]float64, bins+1), floats.Min(values), floats.Max(values))
		return span[:bins], nil
	case Quantile:
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		// 確率は i*(1/bins)。i/bins とは丸めが異なり、端点上の値のビンが変わる
		step := 1 / float64(bins)
		edges := make([]float64, bins)
		for i := range edges {
			edges[i] = linearQuantile(sorted, float64(i)*step)
		}
		return edges, nil
	default:
		return nil, errors.NewUnsupportedMethodError("method", string(method), string(EqualWidth), string(Quantile))
	}
}

// linearQuantile は昇順にソート済みの sorted の p 分位点を
// 位置 h = (n-1)p の線形補間で求める
func linearQuantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Digitize は v 以下の端点の個数から1を引いた値（0始まりのビン番号）を返す
// edges は昇順（重複可）であること。最初の端点より小さい値は -1 になる。
func Digitize(v float64, edges []float64) int {
	return sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
}

// Discretize は2次元データの各値をビン番号に置き換える
//
// パラメータ:
//   - X: 連続値データ (n_samples × n_features)
//   - bins: ビンの数（正の整数）
//   - method: "equal" または "quantile"（大文字小文字を区別しない）
//   - shareBins: trueなら全データから1組の端点を計算して全列に適用、falseなら列ごとに計算
//
// 戻り値:
//   - *mat.Dense: Xと同じ形状の整数コード
//   - error: 未対応の手法、不正なビン数、空データの場合
func Discretize(X mat.Matrix, bins int, method string, shareBins bool) (*mat.Dense, error) {
	m, err := ParseBinningMethod(method)
	if err != nil {
		return nil, err
	}
	edges, err := columnEdges(X, bins, m, shareBins)
	if err != nil {
		return nil, err
	}
	return applyEdges(X, edges, false), nil
}

// DiscretizeVector は1次元データの各値をビン番号に置き換える
// 1次元では端点の共有は意味を持たないため、常にデータ全体から1組の端点を計算する。
func DiscretizeVector(x mat.Vector, bins int, method string) (*mat.VecDense, error) {
	m, err := ParseBinningMethod(method)
	if err != nil {
		return nil, err
	}
	values := make([]float64, x.Len())
	for i := range values {
		values[i] = x.AtVec(i)
	}
	edges, err := BinEdges(values, bins, m)
	if err != nil {
		return nil, err
	}

	codes := mat.NewVecDense(len(values), nil)
	for i, v := range values {
		codes.SetVec(i, float64(Digitize(v, edges)))
	}
	return codes, nil
}

// columnEdges は列ごとの端点を返す（共有時は全列が同じスライスを指す）
func columnEdges(X mat.Matrix, bins int, method BinningMethod, shareBins bool) ([][]float64, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("Discretize", "empty data", errors.ErrEmptyData)
	}

	edges := make([][]float64, c)
	if shareBins {
		all := make([]float64, 0, r*c)
		for j := 0; j < c; j++ {
			all = append(all, mat.Col(nil, j, X)...)
		}
		shared, err := BinEdges(all, bins, method)
		if err != nil {
			return nil, err
		}
		for j := range edges {
			edges[j] = shared
		}
		return edges, nil
	}

	for j := range edges {
		e, err := BinEdges(mat.Col(nil, j, X), bins, method)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", j)
		}
		edges[j] = e
	}
	return edges, nil
}

// applyEdges は列ごとの端点で X をビン番号に変換する
// clip が true の場合、最初の端点より小さい値をビン0に寄せる。
func applyEdges(X mat.Matrix, edges [][]float64, clip bool) *mat.Dense {
	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			code := float64(Digitize(X.At(i, j), edges[j]))
			if clip {
				code = errors.ClipValue(code, 0, float64(len(edges[j])-1))
			}
			result.Set(i, j, code)
		}
	}
	return result
}

// ===========================================================================
// KBinsDiscretizer
// ===========================================================================

// KBinsDiscretizer は連続値の特徴量をビン番号に変換するTransformer
// Fitで端点を学習し、Transformで学習済みの端点を適用する。
type KBinsDiscretizer struct {
	model.BaseEstimator

	// NBins はビンの数 (デフォルト: 10)
	NBins int

	// Method は分割方法 "equal" / "quantile" (デフォルト: "equal")
	Method string

	// ShareBins は全列で端点を共有するかどうか (デフォルト: true)
	ShareBins bool

	edges [][]float64
}

// DiscretizerOption はKBinsDiscretizerを設定する関数
type DiscretizerOption func(*KBinsDiscretizer)

// WithBins はビンの数を設定する
func WithBins(bins int) DiscretizerOption {
	return func(d *KBinsDiscretizer) {
		d.NBins = bins
	}
}

// WithMethod は分割方法を設定する
func WithMethod(method string) DiscretizerOption {
	return func(d *KBinsDiscretizer) {
		d.Method = method
	}
}

// WithSharedBins は全列で端点を共有するかどうかを設定する
func WithSharedBins(share bool) DiscretizerOption {
	return func(d *KBinsDiscretizer) {
		d.ShareBins = share
	}
}

// NewKBinsDiscretizer は新しいKBinsDiscretizerを作成する
//
// 使用例:
//
//	disc := preprocessing.NewKBinsDiscretizer(
//	    preprocessing.WithBins(5),
//	    preprocessing.WithMethod("quantile"),
//	)
//	codes, err := disc.FitTransform(X)
func NewKBinsDiscretizer(opts ...DiscretizerOption) *KBinsDiscretizer {
	d := &KBinsDiscretizer{
		NBins:     10,
		Method:    string(EqualWidth),
		ShareBins: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fit は訓練データからビンの端点を学習する
func (d *KBinsDiscretizer) Fit(X mat.Matrix) error {
	method, err := ParseBinningMethod(d.Method)
	if err != nil {
		return err
	}
	edges, err := columnEdges(X, d.NBins, method, d.ShareBins)
	if err != nil {
		return err
	}

	d.edges = edges
	_, c := X.Dims()
	d.SetFitted(c)
	return nil
}

// Transform は学習済みの端点でデータをビン番号に変換する
// 学習時の最小値より小さい値はビン0になる。
func (d *KBinsDiscretizer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := d.CheckFitted("KBinsDiscretizer", "Transform"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if err := d.CheckNFeatures("KBinsDiscretizer.Transform", c); err != nil {
		return nil, err
	}
	return applyEdges(X, d.edges, true), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (d *KBinsDiscretizer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := d.Fit(X); err != nil {
		return nil, err
	}
	return d.Transform(X)
}

// BinEdges は列ごとの学習済み端点のコピーを返す（未学習ならnil）
func (d *KBinsDiscretizer) BinEdges() [][]float64 {
	if !d.IsFitted() {
		return nil
	}
	out := make([][]float64, len(d.edges))
	for j, e := range d.edges {
		out[j] = append([]float64(nil), e...)
	}
	return out
}

// GetParams はパラメータを取得する
func (d *KBinsDiscretizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_bins":     d.NBins,
		"method":     d.Method,
		"share_bins": d.ShareBins,
	}
}

// String は文字列表現を返す
func (d *KBinsDiscretizer) String() string {
	if !d.IsFitted() {
		return fmt.Sprintf("KBinsDiscretizer(n_bins=%d, method=%s, share_bins=%t)", d.NBins, d.Method, d.ShareBins)
	}
	return fmt.Sprintf("KBinsDiscretizer(n_bins=%d, method=%s, share_bins=%t, n_features=%d)",
		d.NBins, d.Method, d.ShareBins, d.NFeaturesIn())
}
