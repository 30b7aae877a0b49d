// Package dataset provides the column-oriented data container that resampling
// plans draw from.
//
// A Dataset holds named columns of equal length. Columns are either numeric
// (float64) or categorical (string). Rows are addressed by index, and Select
// materializes an arbitrary multiset of row indices as a new Dataset, which is
// how bootstrap resamples and Monte Carlo splits are produced without copying
// the source data until a draw is taken.
package dataset

import (
	"math"

	"github.com/YuminosukeSato/resample/pkg/errors"
)

// ColumnType distinguishes numeric from categorical columns.
type ColumnType int

const (
	// Numeric columns hold float64 values. Missing values are NaN.
	Numeric ColumnType = iota
	// Categorical columns hold string levels. Missing values are "".
	Categorical
)

// String returns the lowercase name of the column type.
func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a single named column of a Dataset. Exactly one of Floats or
// Strings is populated, according to Type.
type Column struct {
	Name    string
	Type    ColumnType
	Floats  []float64
	Strings []string
}

// NewNumericColumn builds a numeric column from values.
func NewNumericColumn(name string, values []float64) Column {
	return Column{Name: name, Type: Numeric, Floats: values}
}

// NewCategoricalColumn builds a categorical column from values.
func NewCategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Type: Categorical, Strings: values}
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	if c.Type == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// missing reports whether the value at row i is a missing-value marker.
func (c Column) missing(i int) bool {
	if c.Type == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// Dataset is an immutable, column-oriented table. All mutating-style
// operations return a new Dataset and leave the receiver untouched.
type Dataset struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a Dataset from columns. All columns must have the same length
// and unique, non-empty names. A Dataset with zero rows is legal here;
// resampling rejects it at evaluation time.
func New(cols ...Column) (*Dataset, error) {
	ds := &Dataset{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c.Name == "" {
			return nil, errors.NewValidationError("column", "name must not be empty", i)
		}
		if _, dup := ds.index[c.Name]; dup {
			return nil, errors.NewValidationError("column", "duplicate column name", c.Name)
		}
		if i == 0 {
			ds.rows = c.Len()
		} else if c.Len() != ds.rows {
			return nil, errors.NewDimensionError("dataset.New", ds.rows, c.Len(), 0)
		}
		ds.index[c.Name] = len(ds.cols)
		ds.cols = append(ds.cols, c)
	}
	return ds, nil
}

// Rows returns the number of rows.
func (ds *Dataset) Rows() int {
	return ds.rows
}

// Columns returns the number of columns.
func (ds *Dataset) Columns() int {
	return len(ds.cols)
}

// Names returns the column names in their original order.
func (ds *Dataset) Names() []string {
	names := make([]string, len(ds.cols))
	for i, c := range ds.cols {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.index[name]
	return ok
}

// Column returns the column with the given name.
func (ds *Dataset) Column(name string) (Column, error) {
	i, ok := ds.index[name]
	if !ok {
		return Column{}, errors.NewValidationError("column", "no such column", name)
	}
	return ds.cols[i], nil
}

// Numeric returns the values of a numeric column. The returned slice is the
// dataset's backing storage; callers must not modify it.
func (ds *Dataset) Numeric(name string) ([]float64, error) {
	c, err := ds.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Type != Numeric {
		return nil, errors.NewValueError("dataset.Numeric", "column '"+name+"' is "+c.Type.String()+", not numeric")
	}
	return c.Floats, nil
}

// Categorical returns the values of a categorical column. The returned slice
// is the dataset's backing storage; callers must not modify it.
func (ds *Dataset) Categorical(name string) ([]string, error) {
	c, err := ds.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Type != Categorical {
		return nil, errors.NewValueError("dataset.Categorical", "column '"+name+"' is "+c.Type.String()+", not categorical")
	}
	return c.Strings, nil
}

// Select materializes the given row indices as a new Dataset. Indices may
// repeat and appear in any order; the result has one row per index, in index
// order. This is the primitive under bootstrap resamples (sampling with
// replacement) and Monte Carlo splits (disjoint index sets).
func (ds *Dataset) Select(indices []int) (*Dataset, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= ds.rows {
			return nil, errors.NewValueError("dataset.Select",
				errors.Newf("row index %d out of range [0, %d)", idx, ds.rows).Error())
		}
	}
	cols := make([]Column, len(ds.cols))
	for i, c := range ds.cols {
		nc := Column{Name: c.Name, Type: c.Type}
		if c.Type == Numeric {
			nc.Floats = make([]float64, len(indices))
			for j, idx := range indices {
				nc.Floats[j] = c.Floats[idx]
			}
		} else {
			nc.Strings = make([]string, len(indices))
			for j, idx := range indices {
				nc.Strings[j] = c.Strings[idx]
			}
		}
		cols[i] = nc
	}
	out := &Dataset{
		cols:  cols,
		index: make(map[string]int, len(cols)),
		rows:  len(indices),
	}
	for i, c := range cols {
		out.index[c.Name] = i
	}
	return out, nil
}

// DropMissing returns a copy without the rows that contain a missing value
// (NaN in a numeric column, "" in a categorical column) and the number of
// rows removed.
func (ds *Dataset) DropMissing() (*Dataset, int) {
	keep := make([]int, 0, ds.rows)
rows:
	for i := 0; i < ds.rows; i++ {
		for _, c := range ds.cols {
			if c.missing(i) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	out, _ := ds.Select(keep)
	return out, ds.rows - len(keep)
}
