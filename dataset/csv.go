package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/resample/pkg/errors"
)

type csvConfig struct {
	comma rune
	na    map[string]bool
}

// CSVOption configures ReadCSV.
type CSVOption func(*csvConfig)

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) CSVOption {
	return func(cfg *csvConfig) {
		cfg.comma = r
	}
}

// WithNA replaces the set of tokens read as missing values. The default set
// is "", "NA", "NaN", "nan" and "null".
func WithNA(tokens ...string) CSVOption {
	return func(cfg *csvConfig) {
		cfg.na = make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			cfg.na[tok] = true
		}
	}
}

// ReadCSV reads a dataset from CSV input. The first record is the header and
// supplies column names. Column types are inferred: a column whose every
// non-missing value parses as a float becomes numeric, any other column
// becomes categorical. Missing values map to NaN in numeric columns and ""
// in categorical ones.
//
// A column that mixes parseable numbers with other text is kept categorical
// and a DataConversionWarning is raised through the package warning handler.
func ReadCSV(r io.Reader, opts ...CSVOption) (*Dataset, error) {
	cfg := &csvConfig{
		comma: ',',
		na:    map[string]bool{"": true, "NA": true, "NaN": true, "nan": true, "null": true},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadCSV")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "dataset.ReadCSV: missing header row")
	}

	header := records[0]
	body := records[1:]
	cols := make([]Column, len(header))

	for j, name := range header {
		raw := make([]string, len(body))
		for i, rec := range body {
			raw[i] = strings.TrimSpace(rec[j])
		}
		cols[j] = inferColumn(name, raw, cfg.na)
	}

	return New(cols...)
}

// ReadCSVFile reads a dataset from a CSV file on disk.
func ReadCSVFile(path string, opts ...CSVOption) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadCSVFile")
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadCSV(f, opts...)
}

// inferColumn decides a column's type from its raw values and builds it.
func inferColumn(name string, raw []string, na map[string]bool) Column {
	floats := make([]float64, len(raw))
	parsed := 0
	numeric := true
	var reason string
	for i, v := range raw {
		if na[v] {
			floats[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if reason == "" {
				reason = errors.Newf("unparseable value %q at data row %d of column '%s'", v, i+1, name).Error()
			}
			numeric = false
			continue
		}
		floats[i] = f
		parsed++
	}

	if numeric && parsed > 0 {
		return NewNumericColumn(name, floats)
	}

	// Categorical: values stay as strings, missing tokens normalize to "".
	// A column mixing numbers with other text is worth flagging.
	if !numeric && parsed > 0 {
		errors.Warn(errors.NewDataConversionWarning("numeric", "categorical", reason))
	}
	strs := make([]string, len(raw))
	for i, v := range raw {
		if na[v] {
			continue
		}
		strs[i] = v
	}
	return NewCategoricalColumn(name, strs)
}
