package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/resample/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	t.Run("type inference", func(t *testing.T) {
		in := "x,group,y\n1.5,a,10\n2.5,b,20\n3.5,a,30\n"
		ds, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)

		assert.Equal(t, 3, ds.Rows())
		assert.Equal(t, []string{"x", "group", "y"}, ds.Names())

		xs, err := ds.Numeric("x")
		require.NoError(t, err)
		assert.Equal(t, []float64{1.5, 2.5, 3.5}, xs)

		gs, err := ds.Categorical("group")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "a"}, gs)
	})

	t.Run("missing tokens", func(t *testing.T) {
		in := "x,group\n1,a\nNA,b\n3,null\n"
		ds, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)

		xs, err := ds.Numeric("x")
		require.NoError(t, err)
		assert.True(t, math.IsNaN(xs[1]))
		assert.Equal(t, float64(3), xs[2])

		gs, err := ds.Categorical("group")
		require.NoError(t, err)
		assert.Equal(t, "", gs[2], "missing token should normalize to empty string")

		clean, dropped := ds.DropMissing()
		assert.Equal(t, 2, dropped)
		assert.Equal(t, 1, clean.Rows())
	})

	t.Run("custom NA tokens", func(t *testing.T) {
		in := "x\n1\n-999\n3\n"
		ds, err := ReadCSV(strings.NewReader(in), WithNA("-999"))
		require.NoError(t, err)

		xs, err := ds.Numeric("x")
		require.NoError(t, err)
		assert.True(t, math.IsNaN(xs[1]))
	})

	t.Run("custom delimiter", func(t *testing.T) {
		in := "x;y\n1;2\n3;4\n"
		ds, err := ReadCSV(strings.NewReader(in), WithComma(';'))
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Rows())
		assert.True(t, ds.HasColumn("y"))
	})

	t.Run("mixed column raises conversion warning", func(t *testing.T) {
		var warnings []error
		errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
		defer errors.SetWarningHandler(nil)

		in := "x\n1\n2\noops\n4\n"
		ds, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)

		// the column falls back to categorical
		vals, err := ds.Categorical("x")
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "oops", "4"}, vals)

		require.Len(t, warnings, 1)
		var conv *errors.DataConversionWarning
		assert.True(t, errors.As(warnings[0], &conv))
		assert.Contains(t, warnings[0].Error(), "oops")
	})

	t.Run("purely textual column does not warn", func(t *testing.T) {
		var warnings []error
		errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
		defer errors.SetWarningHandler(nil)

		in := "group\na\nb\nc\n"
		_, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrEmptyDataset))
	})

	t.Run("ragged rows", func(t *testing.T) {
		in := "x,y\n1,2\n3\n"
		_, err := ReadCSV(strings.NewReader(in))
		require.Error(t, err)
	})

	t.Run("header only", func(t *testing.T) {
		ds, err := ReadCSV(strings.NewReader("x,y\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Rows())
		assert.Equal(t, 2, ds.Columns())
	})
}

func TestReadCSVFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadCSVFile("does-not-exist.csv")
		require.Error(t, err)
	})
}
