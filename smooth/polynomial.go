// Package smooth provides flexible single-predictor regression models: global
// polynomial least squares and LOESS local regression. Both fit a numeric
// response against one numeric predictor and plug into the evaluation engine
// through the model.Fitter adapters.
package smooth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/resample/core/model"
	"github.com/YuminosukeSato/resample/dataset"
	"github.com/YuminosukeSato/resample/metrics"
	"github.com/YuminosukeSato/resample/pkg/errors"
)

// Polynomial fits y = c0 + c1*x + ... + cd*x^d by least squares on a single
// predictor. The system is solved through a QR factorization of the
// Vandermonde matrix, which tolerates the collinearity of raw powers better
// than the normal equations.
type Polynomial struct {
	model.BaseEstimator
	response  string
	predictor string
	degree    int
	coefs     []float64 // coefs[k] multiplies predictor^k
}

var (
	_ model.Regressor     = (*Polynomial)(nil)
	_ model.Coefficienter = (*Polynomial)(nil)
	_ model.Responder     = (*Polynomial)(nil)
)

// NewPolynomial creates a degree-d polynomial model of response on predictor.
func NewPolynomial(response, predictor string, degree int) *Polynomial {
	return &Polynomial{response: response, predictor: predictor, degree: degree}
}

// Fit solves the least squares problem for the polynomial coefficients.
func (p *Polynomial) Fit(train *dataset.Dataset) error {
	if p.degree < 1 {
		return errors.NewValidationError("degree", "must be at least 1", p.degree)
	}
	if train.Rows() == 0 {
		return errors.NewModelError("Polynomial.Fit", "empty data", errors.ErrEmptyDataset)
	}

	x, err := train.Numeric(p.predictor)
	if err != nil {
		return err
	}
	y, err := train.Numeric(p.response)
	if err != nil {
		return err
	}
	if p.degree+1 > len(x) {
		return errors.NewValidationError("degree",
			fmt.Sprintf("requires at least %d rows, got %d", p.degree+1, len(x)), p.degree)
	}

	v := vandermonde(x, p.degree)

	var qr mat.QR
	qr.Factorize(v)

	coefs := mat.NewVecDense(p.degree+1, nil)
	if err := qr.SolveVecTo(coefs, false, mat.NewVecDense(len(y), y)); err != nil {
		return errors.NewModelError("Polynomial.Fit", "singular matrix", errors.ErrSingularMatrix)
	}
	if err := errors.CheckNumericalStability("Polynomial.Fit", coefs.RawVector().Data, 0); err != nil {
		return err
	}

	p.coefs = make([]float64, p.degree+1)
	copy(p.coefs, coefs.RawVector().Data)
	p.SetFitted()
	return nil
}

// Predict evaluates the fitted polynomial at each row of ds.
func (p *Polynomial) Predict(ds *dataset.Dataset) ([]float64, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Polynomial", "Predict")
	}

	x, err := ds.Numeric(p.predictor)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, xi := range x {
		// Horner's rule
		acc := 0.0
		for k := len(p.coefs) - 1; k >= 0; k-- {
			acc = acc*xi + p.coefs[k]
		}
		out[i] = acc
	}
	return out, nil
}

// Response returns the name of the response column.
func (p *Polynomial) Response() string {
	return p.response
}

// Coefficients names the fitted coefficients by power: the intercept, the
// predictor itself, then "predictor^k" for the higher powers.
func (p *Polynomial) Coefficients() map[string]float64 {
	if !p.IsFitted() {
		return nil
	}
	coefs := make(map[string]float64, len(p.coefs))
	for k, c := range p.coefs {
		coefs[powerTerm(p.predictor, k)] = c
	}
	return coefs
}

// Score returns the coefficient of determination on ds.
func (p *Polynomial) Score(ds *dataset.Dataset) (float64, error) {
	if !p.IsFitted() {
		return 0, errors.NewNotFittedError("Polynomial", "Score")
	}
	yPred, err := p.Predict(ds)
	if err != nil {
		return 0, err
	}
	yTrue, err := ds.Numeric(p.response)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yTrue, yPred)
}

// PolynomialFitter returns a Fitter that trains a fresh Polynomial per call.
func PolynomialFitter(response, predictor string, degree int) model.FitterFunc {
	return func(train *dataset.Dataset) (model.Fitted, error) {
		m := NewPolynomial(response, predictor, degree)
		if err := m.Fit(train); err != nil {
			return nil, err
		}
		return m, nil
	}
}

func powerTerm(predictor string, k int) string {
	switch k {
	case 0:
		return dataset.InterceptTerm
	case 1:
		return predictor
	default:
		return fmt.Sprintf("%s^%d", predictor, k)
	}
}

func vandermonde(x []float64, degree int) *mat.Dense {
	v := mat.NewDense(len(x), degree+1, nil)
	for i, xi := range x {
		pow := 1.0
		for j := 0; j <= degree; j++ {
			v.Set(i, j, pow)
			pow *= xi
		}
	}
	return v
}
