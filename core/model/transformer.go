package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース（例: KBinsDiscretizer）
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Selector は教師ありの特徴量選択器のインターフェース（例: QFSSelector）
type Selector interface {
	// Fit は特徴量とターゲットから選択する特徴量を学習する
	Fit(X mat.Matrix, y mat.Vector) error

	// Transform は学習済みの選択に従って列を抽出する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// Support は各特徴量が選択されたかどうかを返す
	Support() []bool
}
