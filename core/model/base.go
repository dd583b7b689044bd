package model

import "github.com/YuminosukeSato/qfs/pkg/errors"

// EstimatorState は推定器の学習状態を表す
type EstimatorState int

const (
	// NotFitted は推定器が未学習の状態
	NotFitted EstimatorState = iota
	// Fitted は推定器が学習済みの状態
	Fitted
)

// BaseEstimator は全ての推定器の基底となる構造体。
// 学習状態と、学習時に見た特徴量数を保持する。
type BaseEstimator struct {
	state     EstimatorState
	nFeatures int
}

// IsFitted は推定器が学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は推定器を学習済み状態にし、学習時の特徴量数を記録する
func (e *BaseEstimator) SetFitted(nFeatures int) {
	e.state = Fitted
	e.nFeatures = nFeatures
}

// NFeaturesIn は学習時に見た特徴量数を返す（未学習なら0）
func (e *BaseEstimator) NFeaturesIn() int {
	return e.nFeatures
}

// CheckFitted は未学習ならNotFittedErrorを返す
func (e *BaseEstimator) CheckFitted(modelName, method string) error {
	if !e.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// CheckNFeatures は入力の列数が学習時と一致するか検証する
func (e *BaseEstimator) CheckNFeatures(op string, got int) error {
	if got != e.nFeatures {
		return errors.NewDimensionError(op, e.nFeatures, got, 1)
	}
	return nil
}

// Reset は推定器を初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.nFeatures = 0
}
