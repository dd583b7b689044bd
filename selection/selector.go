package selection

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/qfs/core/model"
	"github.com/YuminosukeSato/qfs/pkg/errors"
	"github.com/YuminosukeSato/qfs/pkg/log"
	"github.com/YuminosukeSato/qfs/preprocessing"
	"github.com/YuminosukeSato/qfs/stats"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

const selectorName = "QFSSelector"

// QFSSelector はQFSによる教師ありの特徴量選択器
// Fitで冗長度と重要度を計算してalphaを探索し、Transformで選ばれた列を抽出する。
type QFSSelector struct {
	model.BaseEstimator

	// K は選択する特徴量の数 (0 < K < 特徴量数)
	K int

	// Solver はQUBOの最小化に使うソルバー
	Solver Solver

	// Discretizer が設定されている場合、離散でない入力はFit前に離散化される
	Discretizer *preprocessing.KBinsDiscretizer

	searchOpts []Option
	id         string
	provider   log.LoggerProvider
	logger     log.Logger

	support    []bool
	redundancy *mat.SymDense
	importance *mat.VecDense
	result     *Result
}

// SelectorOption はQFSSelectorを設定する関数
type SelectorOption func(*QFSSelector)

// WithDiscretizer は連続値の入力を離散化するDiscretizerを設定する
func WithDiscretizer(d *preprocessing.KBinsDiscretizer) SelectorOption {
	return func(s *QFSSelector) {
		s.Discretizer = d
	}
}

// WithSearchOptions はalpha探索のオプションを追加する
func WithSearchOptions(opts ...Option) SelectorOption {
	return func(s *QFSSelector) {
		s.searchOpts = append(s.searchOpts, opts...)
	}
}

// WithLoggerProvider はロガーの取得元を設定する (デフォルト: log.DefaultProvider)
func WithLoggerProvider(p log.LoggerProvider) SelectorOption {
	return func(s *QFSSelector) {
		s.provider = p
	}
}

// NewQFSSelector は新しいQFSSelectorを作成する
//
// 使用例:
//
//	sel := selection.NewQFSSelector(3, solver,
//	    selection.WithDiscretizer(preprocessing.NewKBinsDiscretizer(preprocessing.WithBins(5))),
//	)
//	if err := sel.Fit(X, y); err != nil {
//	    return err
//	}
//	reduced, err := sel.Transform(X)
func NewQFSSelector(k int, solver Solver, opts ...SelectorOption) *QFSSelector {
	s := &QFSSelector{
		K:        k,
		Solver:   solver,
		id:       uuid.NewString(),
		provider: log.DefaultProvider{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.provider.GetLoggerWithName("selection").With(
		log.ModelNameKey, selectorName,
		log.EstimatorIDKey, s.id,
	)
	return s
}

// Fit は特徴量Xとターゲットyから選択する特徴量を学習する
// 再学習に失敗した場合、以前の学習結果は残らず未学習状態になる。
func (s *QFSSelector) Fit(X mat.Matrix, y mat.Vector) (err error) {
	defer errors.Recover(&err, "QFSSelector.Fit")
	start := time.Now()
	s.reset()

	if X == nil || y == nil {
		return errors.NewModelError("QFSSelector.Fit", "empty input", errors.ErrEmptyData)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("QFSSelector.Fit", "empty input", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("QFSSelector.Fit", r, y.Len(), 0)
	}

	logger := s.logger.With(log.OperationKey, log.OperationFit, log.SamplesKey, r, log.FeaturesKey, c)
	logger.Info("Starting feature selection", log.TargetKey, s.K)

	X, y, err = s.discretize(X, y)
	if err != nil {
		logger.Error("Discretization failed", err)
		return err
	}

	red, err := Redundancy(X)
	if err != nil {
		return err
	}
	imp, err := Importance(X, y)
	if err != nil {
		return err
	}

	opts := append([]Option{WithLogger(logger)}, s.searchOpts...)
	res, err := Search(red, imp, s.K, s.Solver, opts...)
	if err != nil {
		logger.Error("Search failed", err)
		return err
	}

	s.redundancy = red
	s.importance = imp
	s.result = res
	s.support = make([]bool, c)
	for i, v := range res.Selection {
		s.support[i] = v == 1
	}
	s.SetFitted(c)

	logger.Info("Feature selection completed",
		log.AlphaKey, res.Alpha,
		log.SelectedKey, res.Selected,
		log.ExactKey, res.Exact,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *QFSSelector) reset() {
	s.Reset()
	s.support = nil
	s.redundancy = nil
	s.importance = nil
	s.result = nil
}

// discretize は離散でない入力をDiscretizerで離散化する
// Discretizerが未設定の場合は入力をそのまま返し、離散性の検証はスコア計算に任せる。
func (s *QFSSelector) discretize(X mat.Matrix, y mat.Vector) (mat.Matrix, mat.Vector, error) {
	if s.Discretizer == nil {
		return X, y, nil
	}
	if !stats.IsDiscrete(X) {
		codes, err := s.Discretizer.FitTransform(X)
		if err != nil {
			return nil, nil, err
		}
		X = codes
	}
	if !stats.IsDiscrete(y) {
		codes, err := preprocessing.DiscretizeVector(y, s.Discretizer.NBins, s.Discretizer.Method)
		if err != nil {
			return nil, nil, err
		}
		y = codes
	}
	return X, y, nil
}

// Transform は選択された列だけを元の順序で抽出する
func (s *QFSSelector) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.CheckFitted(selectorName, "Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if err := s.CheckNFeatures("QFSSelector.Transform", c); err != nil {
		return nil, err
	}

	idx := s.SelectedFeatures()
	if len(idx) == 0 {
		return nil, errors.NewModelError("QFSSelector.Transform", "no features selected", errors.ErrEmptyData)
	}
	out := mat.NewDense(r, len(idx), nil)
	for j, col := range idx {
		for i := 0; i < r; i++ {
			out.Set(i, j, X.At(i, col))
		}
	}
	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (s *QFSSelector) FitTransform(X mat.Matrix, y mat.Vector) (mat.Matrix, error) {
	if err := s.Fit(X, y); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// Support は各特徴量が選択されたかどうかを返す（未学習ならnil）
func (s *QFSSelector) Support() []bool {
	if !s.IsFitted() {
		return nil
	}
	return append([]bool(nil), s.support...)
}

// SelectedFeatures は選択された特徴量のインデックスを昇順で返す
func (s *QFSSelector) SelectedFeatures() []int {
	var idx []int
	for i, ok := range s.support {
		if ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// Alpha は選択に使われたalphaを返す
func (s *QFSSelector) Alpha() float64 {
	if s.result == nil {
		return 0
	}
	return s.result.Alpha
}

// Redundancy は学習時に計算した冗長度行列を返す
func (s *QFSSelector) Redundancy() *mat.SymDense { return s.redundancy }

// Importance は学習時に計算した重要度ベクトルを返す
func (s *QFSSelector) Importance() *mat.VecDense { return s.importance }

// Result は探索結果（トレースを含む）を返す
func (s *QFSSelector) Result() *Result { return s.result }

// ID は推定器の識別子を返す
func (s *QFSSelector) ID() string { return s.id }

// GetParams はパラメータを取得する
func (s *QFSSelector) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"k": s.K,
	}
	if s.Discretizer != nil {
		params["discretizer"] = s.Discretizer.GetParams()
	}
	return params
}

// String は文字列表現を返す
func (s *QFSSelector) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("QFSSelector(k=%d)", s.K)
	}
	return fmt.Sprintf("QFSSelector(k=%d, alpha=%.6g, selected=%v)", s.K, s.Alpha(), s.SelectedFeatures())
}

var _ model.Selector = (*QFSSelector)(nil)
