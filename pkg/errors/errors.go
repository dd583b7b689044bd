// Package errors はQFSパイプライン全体のエラーハンドリングと警告システムを提供します。
// 形状の不一致、入力データの不正、設定の不正、未対応オプション、不変条件違反を
// それぞれ区別できる構造化エラーとして表現します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("QFS-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// zerologの警告関数が設定されている場合はそちらが優先されます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ConvergenceWarning は探索が目標に到達しないまま終了した場合の警告です。
// QFSでは、精度限界までalphaを絞り込んでもk個ちょうどの特徴量が選ばれなかった場合に発生します。
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s did not converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s did not converge after %d iterations. Consider lowering the precision limit.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning は新しいConvergenceWarningを作成します。
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	エラー分類（errors.Isで判定するための番兵）
//
// ===========================================================================

var (
	// ErrShapeMismatch は配列の形状が互いに、または期待値と一致しない場合に一致します。
	ErrShapeMismatch = New("shape mismatch")

	// ErrInvalidInput は統計関数に離散でないデータが渡された場合などに一致します。
	ErrInvalidInput = New("invalid input")

	// ErrInvalidConfiguration はソルバー未指定やkの範囲外など設定の誤りに一致します。
	ErrInvalidConfiguration = New("invalid configuration")

	// ErrUnsupportedMethod は未対応の離散化手法が指定された場合に一致します。
	ErrUnsupportedMethod = New("unsupported method")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError は未学習の状態で `Transform` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("qfs: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は特定の軸の長さが期待値と異なる場合のエラーです。
// サンプル数の不一致（axis 0）や特徴量数の不一致（axis 1）を表します。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("qfs: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

// Is はDimensionErrorをErrShapeMismatchとして扱います。
func (e *DimensionError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ShapeMismatchError は複数の配列の形状が整合しない場合のエラーです。
// Messageには期待される形状を記述した固定メッセージが入ります。
type ShapeMismatchError struct {
	Op      string
	Message string
	Shapes  [][]int // 実際に渡された各配列の形状
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("qfs: %s: %s", e.Op, e.Message)
}

// Is はShapeMismatchErrorをErrShapeMismatchとして扱います。
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("message", e.Message).
		Str("shapes", fmt.Sprintf("%v", e.Shapes)).
		Str("type", "ShapeMismatchError")
}

// NewShapeMismatchError は新しいShapeMismatchErrorを作成し、スタックトレースを付与します。
func NewShapeMismatchError(op, message string, shapes ...[]int) error {
	return errors.WithStack(&ShapeMismatchError{Op: op, Message: message, Shapes: shapes})
}

// ValidationError は設定パラメータの検証に失敗した場合のエラーです。
// ErrInvalidConfigurationに一致します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("qfs: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// Is はValidationErrorをErrInvalidConfigurationとして扱います。
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切な場合に発生するエラーです。
// 例えば、離散でないデータを情報量の計算に渡した場合など。ErrInvalidInputに一致します。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("qfs: %s: %s", e.Op, e.Message)
}

// Is はValueErrorをErrInvalidInputとして扱います。
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// UnsupportedMethodError は未対応のオプション値が指定された場合のエラーです。
type UnsupportedMethodError struct {
	Param     string
	Method    string
	Supported []string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("qfs: unsupported %s %q (supported: %v)", e.Param, e.Method, e.Supported)
}

// Is はUnsupportedMethodErrorをErrUnsupportedMethodとして扱います。
func (e *UnsupportedMethodError) Is(target error) bool {
	return target == ErrUnsupportedMethod
}

// NewUnsupportedMethodError は新しいUnsupportedMethodErrorを作成し、スタックトレースを付与します。
func NewUnsupportedMethodError(param, method string, supported ...string) error {
	return errors.WithStack(&UnsupportedMethodError{Param: param, Method: method, Supported: supported})
}

// ModelError は推定器や外部ソルバーの呼び出しで発生した一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("qfs: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("qfs: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// NumericalInstabilityError は入力や計算結果にNaN・Infが含まれる場合のエラーです。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "FeatureSelectionQUBO"）
	Values    []float64 // 問題のある値
	Iteration int       // 発生したイテレーション番号
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("qfs: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	return errors.WithStack(&NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	})
}

// ===========================================================================
//
//	不変条件違反（回復不能なエラー）
//
// ===========================================================================

// NewInvariantViolation は不変条件違反を表すアサーション失敗エラーを作成します。
// 冗長度・重要度の負値や冗長度行列の非ゼロ対角など、呼び出し側のプログラムやデータの誤りを示し、
// 処理して回復することを想定していません。
func NewInvariantViolation(op, format string, args ...interface{}) error {
	return errors.AssertionFailedf("qfs: %s: %s", op, fmt.Sprintf(format, args...))
}

// IsInvariantViolation はエラーが不変条件違反に由来するかどうかを判定します。
func IsInvariantViolation(err error) bool {
	return errors.HasAssertionFailure(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
