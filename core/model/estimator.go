package model

import "github.com/YuminosukeSato/resample/dataset"

// Fitter は1つの訓練部分集合からモデルを学習する手続きのインターフェース。
// 呼び出しごとに独立したFittedを返すこと。リサンプルごとの学習は
// 並行して実行されるため、Fitは共有状態を変更してはならない。
type Fitter interface {
	// Fit は訓練データからモデルを学習し、学習済みモデルを返す
	Fit(train *dataset.Dataset) (Fitted, error)
}

// Fitted は学習済みモデルのインターフェース
type Fitted interface {
	// Predict は入力データの各行に対する予測値を返す
	Predict(ds *dataset.Dataset) ([]float64, error)
}

// Coefficienter は名前付き係数を公開する学習済みモデルのインターフェース。
// ブートストラップによる係数の標準誤差推定はこの能力を要求する。
type Coefficienter interface {
	// Coefficients は項名から係数値へのマップを返す
	Coefficients() map[string]float64
}

// Responder は予測対象の応答列名を公開する学習済みモデルのインターフェース。
// 交差検証でのRMSE計算は、テストデータから実測値を取り出すためにこの能力を要求する。
type Responder interface {
	// Response は応答列の名前を返す
	Response() string
}

// FitterFunc は関数をFitterとして扱うためのアダプタ
type FitterFunc func(train *dataset.Dataset) (Fitted, error)

// Fit はFitterインターフェースを実装する
func (f FitterFunc) Fit(train *dataset.Dataset) (Fitted, error) {
	return f(train)
}
