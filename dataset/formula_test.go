package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/resample/pkg/errors"
)

func carsDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := New(
		NewNumericColumn("price", []float64{10, 12, 20, 24, 15}),
		NewNumericColumn("mileage", []float64{80, 70, 30, 20, 50}),
		NewCategoricalColumn("fuel", []string{"diesel", "petrol", "petrol", "hybrid", "diesel"}),
	)
	require.NoError(t, err)
	return ds
}

func TestFormulaValidate(t *testing.T) {
	ds := carsDataset(t)

	tests := []struct {
		name    string
		formula Formula
		wantErr bool
	}{
		{"valid", NewFormula("price", "mileage", "fuel"), false},
		{"intercept only", NewFormula("price"), false},
		{"empty response", NewFormula("", "mileage"), true},
		{"missing response", NewFormula("cost", "mileage"), true},
		{"categorical response", NewFormula("fuel", "mileage"), true},
		{"missing predictor", NewFormula("price", "weight"), true},
		{"predictor aliases response", NewFormula("price", "price"), true},
		{"duplicate predictor", NewFormula("price", "mileage", "mileage"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.formula.Validate(ds)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormulaTerms(t *testing.T) {
	ds := carsDataset(t)

	t.Run("one-hot drops first level", func(t *testing.T) {
		f := NewFormula("price", "mileage", "fuel")
		terms, err := f.Terms(ds)
		require.NoError(t, err)
		// levels sort to diesel < hybrid < petrol; diesel is the reference
		assert.Equal(t, []string{InterceptTerm, "mileage", "fuel=hybrid", "fuel=petrol"}, terms)
	})

	t.Run("intercept only", func(t *testing.T) {
		f := NewFormula("price")
		terms, err := f.Terms(ds)
		require.NoError(t, err)
		assert.Equal(t, []string{InterceptTerm}, terms)
	})
}

func TestFormulaDesign(t *testing.T) {
	ds := carsDataset(t)
	f := NewFormula("price", "mileage", "fuel")

	x, y, terms, err := f.Design(ds)
	require.NoError(t, err)

	rows, cols := x.Dims()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []float64{10, 12, 20, 24, 15}, y)
	require.Equal(t, []string{InterceptTerm, "mileage", "fuel=hybrid", "fuel=petrol"}, terms)

	// row 0: diesel, mileage 80 -> [1, 80, 0, 0]
	assert.Equal(t, []float64{1, 80, 0, 0}, []float64{x.At(0, 0), x.At(0, 1), x.At(0, 2), x.At(0, 3)})
	// row 1: petrol, mileage 70 -> [1, 70, 0, 1]
	assert.Equal(t, []float64{1, 70, 0, 1}, []float64{x.At(1, 0), x.At(1, 1), x.At(1, 2), x.At(1, 3)})
	// row 3: hybrid, mileage 20 -> [1, 20, 1, 0]
	assert.Equal(t, []float64{1, 20, 1, 0}, []float64{x.At(3, 0), x.At(3, 1), x.At(3, 2), x.At(3, 3)})
}

func TestFormulaMatrixWithFixedTerms(t *testing.T) {
	ds := carsDataset(t)
	f := NewFormula("price", "mileage", "fuel")

	_, _, terms, err := f.Design(ds)
	require.NoError(t, err)

	// A subset without any hybrid rows must still produce a hybrid column.
	sub, err := ds.Select([]int{0, 1})
	require.NoError(t, err)

	x, err := f.Matrix(sub, terms)
	require.NoError(t, err)

	rows, cols := x.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, float64(0), x.At(0, 2), "absent level encodes as zero")
	assert.Equal(t, float64(0), x.At(1, 2), "absent level encodes as zero")
	assert.Equal(t, float64(1), x.At(1, 3), "petrol row keeps its indicator")
}

func TestFormulaMatrixErrors(t *testing.T) {
	ds := carsDataset(t)
	f := NewFormula("price", "mileage")

	t.Run("empty dataset", func(t *testing.T) {
		empty, err := ds.Select(nil)
		require.NoError(t, err)
		_, err = f.Matrix(empty, []string{InterceptTerm, "mileage"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrEmptyDataset))
	})

	t.Run("terms without intercept", func(t *testing.T) {
		_, err := f.Matrix(ds, []string{"mileage"})
		require.Error(t, err)
	})

	t.Run("unknown numeric term", func(t *testing.T) {
		_, err := f.Matrix(ds, []string{InterceptTerm, "weight"})
		require.Error(t, err)
	})
}
