package dataset

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/resample/pkg/errors"
)

// InterceptTerm is the name of the constant column every design matrix
// carries in position zero.
const InterceptTerm = "(intercept)"

// Formula names the response column and the predictor columns a model is fit
// on. Numeric predictors enter the design matrix as-is; categorical
// predictors are one-hot encoded with the lexicographically first level
// dropped as the reference, producing terms named "column=level".
type Formula struct {
	Response   string
	Predictors []string
}

// NewFormula builds a Formula for the given response and predictors.
func NewFormula(response string, predictors ...string) Formula {
	return Formula{Response: response, Predictors: predictors}
}

// Validate checks the formula against a dataset: the response must be an
// existing numeric column, every predictor must exist, and no predictor may
// repeat or alias the response. Predictors may be empty, which yields an
// intercept-only design.
func (f Formula) Validate(ds *Dataset) error {
	if f.Response == "" {
		return errors.NewValidationError("response", "must not be empty", f.Response)
	}
	c, err := ds.Column(f.Response)
	if err != nil {
		return err
	}
	if c.Type != Numeric {
		return errors.NewValueError("formula.Validate", "response column '"+f.Response+"' must be numeric")
	}
	seen := make(map[string]bool, len(f.Predictors))
	for _, p := range f.Predictors {
		if p == f.Response {
			return errors.NewValidationError("predictors", "predictor must not alias the response", p)
		}
		if seen[p] {
			return errors.NewValidationError("predictors", "duplicate predictor", p)
		}
		seen[p] = true
		if !ds.HasColumn(p) {
			return errors.NewValidationError("predictors", "no such column", p)
		}
	}
	return nil
}

// Terms returns the design matrix column names the formula produces on a
// dataset: the intercept, then each predictor's term(s) in predictor order.
// Categorical levels come from the dataset at hand, so training code should
// capture the terms it fit with and pass them to Matrix when predicting.
func (f Formula) Terms(ds *Dataset) ([]string, error) {
	if err := f.Validate(ds); err != nil {
		return nil, err
	}
	terms := []string{InterceptTerm}
	for _, p := range f.Predictors {
		c, err := ds.Column(p)
		if err != nil {
			return nil, err
		}
		if c.Type == Numeric {
			terms = append(terms, p)
			continue
		}
		lv := levels(c.Strings)
		for i, l := range lv {
			if i == 0 {
				// reference level
				continue
			}
			terms = append(terms, p+"="+l)
		}
	}
	return terms, nil
}

// Design builds the training design matrix, the response vector, and the term
// names for a dataset. The response slice is a copy and safe to retain.
func (f Formula) Design(ds *Dataset) (*mat.Dense, []float64, []string, error) {
	terms, err := f.Terms(ds)
	if err != nil {
		return nil, nil, nil, err
	}
	x, err := f.Matrix(ds, terms)
	if err != nil {
		return nil, nil, nil, err
	}
	resp, err := f.ResponseValues(ds)
	if err != nil {
		return nil, nil, nil, err
	}
	return x, resp, terms, nil
}

// Matrix builds a design matrix for ds with a fixed term list, as captured by
// a previous Design call. One-hot terms whose level is absent from ds encode
// as all zeros, which keeps train and test matrices column-compatible.
func (f Formula) Matrix(ds *Dataset, terms []string) (*mat.Dense, error) {
	if ds.Rows() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "formula.Matrix")
	}
	if len(terms) == 0 || terms[0] != InterceptTerm {
		return nil, errors.NewValueError("formula.Matrix", "term list must start with the intercept")
	}
	x := mat.NewDense(ds.Rows(), len(terms), nil)
	for j, term := range terms {
		switch {
		case term == InterceptTerm:
			for i := 0; i < ds.Rows(); i++ {
				x.Set(i, j, 1)
			}
		default:
			if name, level, ok := splitLevelTerm(ds, term); ok {
				vals, err := ds.Categorical(name)
				if err != nil {
					return nil, err
				}
				for i, v := range vals {
					if v == level {
						x.Set(i, j, 1)
					}
				}
				continue
			}
			vals, err := ds.Numeric(term)
			if err != nil {
				return nil, err
			}
			for i, v := range vals {
				x.Set(i, j, v)
			}
		}
	}
	return x, nil
}

// ResponseValues returns a copy of the response column.
func (f Formula) ResponseValues(ds *Dataset) ([]float64, error) {
	vals, err := ds.Numeric(f.Response)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	copy(out, vals)
	return out, nil
}

// splitLevelTerm decides whether term is a "column=level" one-hot term for a
// categorical column of ds. Column names containing '=' are resolved in favor
// of an existing categorical column.
func splitLevelTerm(ds *Dataset, term string) (name, level string, ok bool) {
	idx := strings.Index(term, "=")
	if idx <= 0 {
		return "", "", false
	}
	name, level = term[:idx], term[idx+1:]
	c, err := ds.Column(name)
	if err != nil || c.Type != Categorical {
		return "", "", false
	}
	return name, level, true
}

// levels returns the sorted distinct non-missing values of a categorical
// column.
func levels(values []string) []string {
	set := make(map[string]bool)
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
