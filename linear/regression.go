// Package linear は式ベースの線形回帰モデルを提供します。
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/resample/core/model"
	"github.com/YuminosukeSato/resample/dataset"
	"github.com/YuminosukeSato/resample/metrics"
	"github.com/YuminosukeSato/resample/pkg/errors"
)

// Regression は最小二乗法による線形回帰モデル。
// 式（Formula）が設計行列の構成を決め、学習時の項名が係数の名前になる。
type Regression struct {
	model.BaseEstimator
	formula dataset.Formula
	terms   []string
	weights *mat.VecDense // termsと同じ並びの係数（先頭は切片）
}

// コンパイル時のインターフェース実装チェック
var (
	_ model.Regressor     = (*Regression)(nil)
	_ model.Coefficienter = (*Regression)(nil)
	_ model.Responder     = (*Regression)(nil)
)

// NewRegression は式に対する新しい線形回帰モデルを作成する
func NewRegression(formula dataset.Formula) *Regression {
	return &Regression{formula: formula}
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用
func (lr *Regression) Fit(train *dataset.Dataset) error {
	if train.Rows() == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyDataset)
	}

	X, y, terms, err := lr.formula.Design(train)
	if err != nil {
		return err
	}

	r, c := X.Dims()
	if r < c {
		return errors.NewModelError("Regression.Fit",
			fmt.Sprintf("underdetermined system: %d rows for %d terms", r, c),
			errors.ErrSingularMatrix)
	}

	// NaNやInfを含む設計行列は特異行列として誤検出される前にここで弾く
	if err := errors.CheckMatrix("Regression.Fit design matrix", X, r, c, 0); err != nil {
		return err
	}

	// 正規方程式を解く
	// (X^T * X)^(-1) * X^T * y
	var XT mat.Dense
	XT.CloneFrom(X.T())

	var XTX mat.Dense
	XTX.Mul(&XT, X)

	// 逆行列を計算
	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError("Regression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, y)

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	// 重みを計算: (X^T * X)^(-1) * X^T * y
	weights := mat.NewVecDense(c, nil)
	weights.MulVec(&XTXInv, &XTy)

	// 数値的に不安定な解（準特異行列など）を検出する
	if err := errors.CheckNumericalStability("Regression.Fit", weights.RawVector().Data, 0); err != nil {
		return err
	}

	lr.terms = terms
	lr.weights = weights

	// モデルを学習済み状態に設定
	lr.SetFitted()

	return nil
}

// Predict は入力データの各行に対する予測値を返す
func (lr *Regression) Predict(ds *dataset.Dataset) ([]float64, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "Predict")
	}

	X, err := lr.formula.Matrix(ds, lr.terms)
	if err != nil {
		return nil, err
	}

	r, _ := X.Dims()
	preds := mat.NewVecDense(r, nil)
	preds.MulVec(X, lr.weights)

	out := make([]float64, r)
	copy(out, preds.RawVector().Data)
	return out, nil
}

// Response は応答列の名前を返す
func (lr *Regression) Response() string {
	return lr.formula.Response
}

// Terms は学習時に使用した設計行列の項名を返す
func (lr *Regression) Terms() []string {
	out := make([]string, len(lr.terms))
	copy(out, lr.terms)
	return out
}

// Coefficients は項名から係数値へのマップを返す
func (lr *Regression) Coefficients() map[string]float64 {
	if !lr.IsFitted() {
		return nil
	}
	coefs := make(map[string]float64, len(lr.terms))
	for i, term := range lr.terms {
		coefs[term] = lr.weights.AtVec(i)
	}
	return coefs
}

// GetIntercept は学習された切片を返す
func (lr *Regression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.weights.AtVec(0)
}

// Score はモデルの決定係数（R²）を計算する
func (lr *Regression) Score(ds *dataset.Dataset) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("Regression", "Score")
	}

	yPred, err := lr.Predict(ds)
	if err != nil {
		return 0, err
	}

	yTrue, err := lr.formula.ResponseValues(ds)
	if err != nil {
		return 0, err
	}

	return metrics.R2Score(yTrue, yPred)
}

// Fitter は式に対する線形回帰のFitterを返す。
// 呼び出しのたびに新しいRegressionを学習するため、並行実行で安全に使える。
func Fitter(formula dataset.Formula) model.FitterFunc {
	return func(train *dataset.Dataset) (model.Fitted, error) {
		m := NewRegression(formula)
		if err := m.Fit(train); err != nil {
			return nil, err
		}
		return m, nil
	}
}
