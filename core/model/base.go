package model

// BaseEstimator は組み込みモデルに埋め込まれる学習状態の管理構造体。
// ゼロ値は未学習状態を表す。Fitterは呼び出しごとに新しいモデルを
// 構築するため、リサンプル間で状態が共有されることはない。
type BaseEstimator struct {
	fitted bool
}

// IsFitted はモデルが学習済みかどうかを返す。
// Fitが途中で失敗した場合は未学習のままとなる。
func (e *BaseEstimator) IsFitted() bool {
	return e.fitted
}

// SetFitted はモデルを学習済み状態に設定する。
// 各モデルのFitが全ての検証を通過した後にのみ呼び出すこと。
func (e *BaseEstimator) SetFitted() {
	e.fitted = true
}
