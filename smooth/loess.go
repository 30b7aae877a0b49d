package smooth

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/resample/core/model"
	"github.com/YuminosukeSato/resample/core/parallel"
	"github.com/YuminosukeSato/resample/dataset"
	"github.com/YuminosukeSato/resample/metrics"
	"github.com/YuminosukeSato/resample/pkg/errors"
)

// DefaultSpan is the fraction of training points each local fit uses when no
// WithSpan option is given.
const DefaultSpan = 0.75

// Loess is a locally weighted linear smoother. Each prediction fits a
// weighted straight line through the span*n nearest training points, with
// tricube weights decaying to zero at the edge of the neighborhood.
//
// Loess keeps the whole training sample and has no global coefficient
// vector, so it does not implement model.Coefficienter.
type Loess struct {
	model.BaseEstimator
	response  string
	predictor string
	span      float64
	k         int // neighborhood size, fixed at fit time
	x, y      []float64
}

var (
	_ model.Regressor = (*Loess)(nil)
	_ model.Responder = (*Loess)(nil)
)

// LoessOption configures a Loess model.
type LoessOption func(*Loess)

// WithSpan sets the fraction of the training sample used by each local fit.
func WithSpan(span float64) LoessOption {
	return func(l *Loess) {
		l.span = span
	}
}

// NewLoess creates a LOESS model of response on predictor.
func NewLoess(response, predictor string, opts ...LoessOption) *Loess {
	l := &Loess{response: response, predictor: predictor, span: DefaultSpan}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fit stores the training sample and fixes the neighborhood size. The local
// fits themselves happen lazily in Predict.
func (l *Loess) Fit(train *dataset.Dataset) error {
	if l.span <= 0 || l.span > 1 {
		return errors.NewValidationError("span", "must be in (0, 1]", l.span)
	}
	if train.Rows() == 0 {
		return errors.NewModelError("Loess.Fit", "empty data", errors.ErrEmptyDataset)
	}

	x, err := train.Numeric(l.predictor)
	if err != nil {
		return err
	}
	y, err := train.Numeric(l.response)
	if err != nil {
		return err
	}

	k := int(math.Ceil(l.span * float64(len(x))))
	if k > len(x) {
		k = len(x)
	}
	if k < 2 {
		return errors.NewValidationError("span",
			"neighborhood must contain at least 2 points", l.span)
	}

	l.x = make([]float64, len(x))
	copy(l.x, x)
	l.y = make([]float64, len(y))
	copy(l.y, y)
	l.k = k

	l.SetFitted()
	return nil
}

// Predict runs one local weighted fit per query point. The fits are
// independent, so they are chunked across CPU cores for larger inputs.
func (l *Loess) Predict(ds *dataset.Dataset) ([]float64, error) {
	if !l.IsFitted() {
		return nil, errors.NewNotFittedError("Loess", "Predict")
	}

	xq, err := ds.Numeric(l.predictor)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(xq))
	parallel.ParallelizeWithThreshold(len(xq), 64, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = l.fitAt(xq[i])
		}
	})

	if err := errors.CheckNumericalStability("Loess.Predict", out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// Response returns the name of the response column.
func (l *Loess) Response() string {
	return l.response
}

// Score returns the coefficient of determination on ds.
func (l *Loess) Score(ds *dataset.Dataset) (float64, error) {
	if !l.IsFitted() {
		return 0, errors.NewNotFittedError("Loess", "Score")
	}
	yPred, err := l.Predict(ds)
	if err != nil {
		return 0, err
	}
	yTrue, err := ds.Numeric(l.response)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yTrue, yPred)
}

// fitAt fits a tricube-weighted line through the k training points nearest
// to x0 and evaluates it at x0.
func (l *Loess) fitAt(x0 float64) float64 {
	type neighbor struct {
		dist float64
		idx  int
	}
	neighbors := make([]neighbor, len(l.x))
	for i, xi := range l.x {
		neighbors[i] = neighbor{dist: math.Abs(xi - x0), idx: i}
	}
	sort.Slice(neighbors, func(a, b int) bool {
		return neighbors[a].dist < neighbors[b].dist
	})
	neighbors = neighbors[:l.k]

	maxDist := neighbors[l.k-1].dist
	if maxDist == 0 {
		// All neighbors sit on x0: the local line degenerates to their mean.
		sum := 0.0
		for _, nb := range neighbors {
			sum += l.y[nb.idx]
		}
		return sum / float64(l.k)
	}

	var sw, swx, swy float64
	weights := make([]float64, l.k)
	for i, nb := range neighbors {
		w := tricube(nb.dist / maxDist)
		weights[i] = w
		sw += w
		swx += w * l.x[nb.idx]
		swy += w * l.y[nb.idx]
	}
	if sw == 0 {
		// Every weight vanished (all neighbors on the boundary); fall back to
		// the unweighted neighborhood mean.
		sum := 0.0
		for _, nb := range neighbors {
			sum += l.y[nb.idx]
		}
		return sum / float64(l.k)
	}

	xbar := swx / sw
	ybar := swy / sw

	var sxx, sxy float64
	for i, nb := range neighbors {
		dx := l.x[nb.idx] - xbar
		sxx += weights[i] * dx * dx
		sxy += weights[i] * dx * (l.y[nb.idx] - ybar)
	}

	// A vertical stack of neighbors gives sxx ~ 0; the slope collapses to 0
	// and the prediction falls back to the weighted mean.
	slope := errors.SafeDivide(sxy, sxx)
	return ybar + slope*(x0-xbar)
}

// tricube is the standard LOESS kernel (1-u^3)^3 on [0, 1).
func tricube(u float64) float64 {
	if u >= 1 {
		return 0
	}
	c := 1 - u*u*u
	return c * c * c
}

// LoessFitter returns a Fitter that trains a fresh Loess per call.
func LoessFitter(response, predictor string, opts ...LoessOption) model.FitterFunc {
	return func(train *dataset.Dataset) (model.Fitted, error) {
		m := NewLoess(response, predictor, opts...)
		if err := m.Fit(train); err != nil {
			return nil, err
		}
		return m, nil
	}
}
