// Package viz renders evaluation summaries to image files. It consumes the
// plain Summary data and never reaches back into the resampling machinery.
package viz

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/resample/evaluation"
	"github.com/YuminosukeSato/resample/pkg/errors"
)

// CoefficientHistogram plots the bootstrap distribution of one term's
// estimates, with a solid vertical line at the mean and dashed lines at the
// 2.5th and 97.5th percentiles. The summary must come from a bootstrap run.
func CoefficientHistogram(s *evaluation.Summary, model, term string) (*plot.Plot, error) {
	if s == nil {
		return nil, errors.New("nil summary")
	}
	if s.Kind != evaluation.KindBootstrap {
		return nil, errors.Newf("coefficient histograms need a bootstrap summary, got %q", s.Kind)
	}
	ms, ok := s.Model(model)
	if !ok {
		return nil, errors.Newf("summary has no model %q", model)
	}
	ts, ok := ms.Term(term)
	if !ok {
		return nil, errors.Newf("model %q has no term %q", model, term)
	}

	values := make(plotter.Values, len(ts.Estimates))
	copy(values, ts.Estimates)

	bins := int(math.Ceil(math.Sqrt(float64(len(values)))))
	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, errors.Wrap(err, "viz.CoefficientHistogram")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: bootstrap distribution of %s", model, term)
	p.X.Label.Text = term
	p.Y.Label.Text = "count"
	p.Add(hist)

	top := 0.0
	for _, bin := range hist.Bins {
		if bin.Weight > top {
			top = bin.Weight
		}
	}

	mean, err := verticalMarker(ts.Mean, top, 0, nil)
	if err != nil {
		return nil, errors.Wrap(err, "viz.CoefficientHistogram")
	}
	lower, err := verticalMarker(ts.Lower, top, 1, plotutil.Dashes(1))
	if err != nil {
		return nil, errors.Wrap(err, "viz.CoefficientHistogram")
	}
	upper, err := verticalMarker(ts.Upper, top, 1, plotutil.Dashes(1))
	if err != nil {
		return nil, errors.Wrap(err, "viz.CoefficientHistogram")
	}
	p.Add(mean, lower, upper)
	p.Legend.Add("mean", mean)
	p.Legend.Add("95% interval", lower)
	p.Legend.Top = true

	return p, nil
}

// ErrorBoxPlot plots the held-out RMSE distribution of every model in the
// summary side by side. The summary must come from a Monte Carlo run.
func ErrorBoxPlot(s *evaluation.Summary) (*plot.Plot, error) {
	if s == nil {
		return nil, errors.New("nil summary")
	}
	if s.Kind != evaluation.KindMonteCarlo {
		return nil, errors.Newf("error box plots need a montecarlo summary, got %q", s.Kind)
	}

	p := plot.New()
	p.Title.Text = "held-out RMSE by model"
	p.Y.Label.Text = "RMSE"

	for i, ms := range s.Models {
		if ms.Error == nil {
			return nil, errors.Newf("model %q carries no error distribution", ms.Model)
		}
		values := make(plotter.Values, len(ms.Error.Values))
		copy(values, ms.Error.Values)
		box, err := plotter.NewBoxPlot(vg.Points(24), float64(i), values)
		if err != nil {
			return nil, errors.Wrap(err, "viz.ErrorBoxPlot")
		}
		p.Add(box)
	}
	p.NominalX(s.ModelNames()...)

	return p, nil
}

// SavePNG writes the plot to path with the given size in printer's points.
// Non-positive dimensions fall back to 640x480.
func SavePNG(p *plot.Plot, path string, width, height float64) error {
	if p == nil {
		return errors.New("nil plot")
	}
	if filepath.Ext(path) != ".png" {
		return errors.Newf("path %q does not end in .png", path)
	}
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}
	if err := p.Save(vg.Points(width), vg.Points(height), path); err != nil {
		return errors.Wrap(err, "viz.SavePNG")
	}
	return nil
}

// verticalMarker builds a full-height vertical line at x for annotating a
// histogram. colorIdx picks from the plotutil palette.
func verticalMarker(x, top float64, colorIdx int, dashes []vg.Length) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(colorIdx)
	line.Width = vg.Points(1.5)
	line.Dashes = dashes
	return line, nil
}
