// Package resample provides resampling-based model evaluation for Go:
// bootstrap inference for model coefficients and Monte Carlo
// cross-validation for comparing fit procedures on held-out error.
//
// The library fits any model the caller can express as a fit procedure.
// It resamples a dataset according to a plan, refits every procedure on
// each resample in parallel, and aggregates the per-draw results into a
// Summary that is reproducible for a fixed seed.
//
// # Features
//
// - Bootstrap standard errors and percentile intervals for any
// coefficient-producing model
// - Monte Carlo cross-validation with held-out RMSE distributions
// - Deterministic results for a fixed seed, independent of worker count
// - CPU-parallel refitting with fail-fast error reporting
// - CSV loading with type inference, formulas with one-hot expansion
//
// # Quick Start
//
// Bootstrap the coefficients of a linear regression:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/resample/core/model"
//	    "github.com/YuminosukeSato/resample/dataset"
//	    "github.com/YuminosukeSato/resample/evaluation"
//	    "github.com/YuminosukeSato/resample/linear"
//	)
//
//	func main() {
//	    ds, err := dataset.ReadCSVFile("cars.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ev := evaluation.New(evaluation.WithSeed(42))
//	    s, err := ev.Evaluate(context.Background(), ds,
//	        evaluation.Bootstrap(2000),
//	        map[string]model.Fitter{
//	            "ols": linear.Fitter(dataset.NewFormula("price", "mileage", "fuel")),
//	        })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ms, _ := s.Model("ols")
//	    for _, term := range ms.Terms {
//	        fmt.Printf("%s: %.3f (SE %.3f)\n", term.Term, term.Mean, term.StdErr)
//	    }
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - evaluation: resampling plans, the evaluator, result summaries
//   - dataset: column-oriented datasets, CSV loading, model formulas
//   - linear: least-squares regression and the constant baseline
//   - smooth: polynomial and LOESS scatterplot smoothers
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R²)
//   - viz: histogram and box-plot rendering of summaries
//   - core/model: fit procedure and fitted model interfaces
//   - core/parallel: parallel processing utilities
//
// # Determinism
//
// Draws are generated sequentially from a single seeded generator before
// any fitting starts, and every fit writes into a pre-assigned result
// slot. Two runs with the same seed, dataset, plan and procedures produce
// identical Summaries regardless of worker count.
package resample
