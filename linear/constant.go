package linear

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/resample/core/model"
	"github.com/YuminosukeSato/resample/dataset"
	"github.com/YuminosukeSato/resample/metrics"
	"github.com/YuminosukeSato/resample/pkg/errors"
)

// Constant は訓練データの応答の平均を常に予測するベースラインモデル。
// 切片のみの回帰と等価で、モデル比較の基準として使う。
type Constant struct {
	model.BaseEstimator
	response string
	mean     float64
}

var (
	_ model.Regressor     = (*Constant)(nil)
	_ model.Coefficienter = (*Constant)(nil)
	_ model.Responder     = (*Constant)(nil)
)

// NewConstant は応答列に対する新しい定数モデルを作成する
func NewConstant(response string) *Constant {
	return &Constant{response: response}
}

// Fit は応答の標本平均を学習する
func (c *Constant) Fit(train *dataset.Dataset) error {
	if train.Rows() == 0 {
		return errors.NewModelError("Constant.Fit", "empty data", errors.ErrEmptyDataset)
	}

	vals, err := train.Numeric(c.response)
	if err != nil {
		return err
	}

	c.mean = stat.Mean(vals, nil)

	if err := errors.CheckScalar("Constant.Fit", c.mean, 0); err != nil {
		return err
	}

	c.SetFitted()
	return nil
}

// Predict は全ての行に対して学習済みの平均を返す
func (c *Constant) Predict(ds *dataset.Dataset) ([]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("Constant", "Predict")
	}

	out := make([]float64, ds.Rows())
	for i := range out {
		out[i] = c.mean
	}
	return out, nil
}

// Response は応答列の名前を返す
func (c *Constant) Response() string {
	return c.response
}

// Coefficients は切片（＝標本平均）のみを返す
func (c *Constant) Coefficients() map[string]float64 {
	if !c.IsFitted() {
		return nil
	}
	return map[string]float64{dataset.InterceptTerm: c.mean}
}

// Score はモデルの決定係数（R²）を計算する
func (c *Constant) Score(ds *dataset.Dataset) (float64, error) {
	if !c.IsFitted() {
		return 0, errors.NewNotFittedError("Constant", "Score")
	}

	yPred, err := c.Predict(ds)
	if err != nil {
		return 0, err
	}

	yTrue, err := ds.Numeric(c.response)
	if err != nil {
		return 0, err
	}

	return metrics.R2Score(yTrue, yPred)
}

// ConstantFitter は応答列に対する定数モデルのFitterを返す
func ConstantFitter(response string) model.FitterFunc {
	return func(train *dataset.Dataset) (model.Fitted, error) {
		m := NewConstant(response)
		if err := m.Fit(train); err != nil {
			return nil, err
		}
		return m, nil
	}
}
