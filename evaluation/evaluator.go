// Package evaluation implements a resampling-and-refit engine: given an
// immutable dataset, a resampling plan, and named model-fitting procedures,
// it fits every procedure on every resample and aggregates the per-draw
// artifacts into summary statistics.
//
// Under a Bootstrap plan each draw refits on a with-replacement resample
// and collects coefficient estimates; the Summary carries per-term means,
// bootstrap standard errors, and percentile intervals. Under a MonteCarlo
// plan each draw refits on a random training subset and scores held-out
// RMSE on the complement; the Summary carries per-model RMSE distributions
// for comparison.
//
// Draws are generated sequentially from an injected generator, so a fixed
// seed reproduces a run exactly. The fit and score work is spread across a
// bounded worker pool; results land in pre-assigned slots, so worker
// scheduling never changes the output.
package evaluation

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/resample/core/model"
	"github.com/YuminosukeSato/resample/core/parallel"
	"github.com/YuminosukeSato/resample/dataset"
	"github.com/YuminosukeSato/resample/metrics"
	"github.com/YuminosukeSato/resample/pkg/errors"
	"github.com/YuminosukeSato/resample/pkg/log"
)

// DefaultSeed seeds the evaluator's generator when neither WithSeed nor
// WithRand is given.
const DefaultSeed = 1

// Evaluator runs resampling plans against model-fitting procedures. The
// zero value is not usable; construct with New.
type Evaluator struct {
	seed    uint64
	rng     *rand.Rand
	workers int
	logger  log.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSeed fixes the random seed. Two runs with the same seed and the same
// inputs produce identical Summaries.
func WithSeed(seed uint64) Option {
	return func(e *Evaluator) {
		e.seed = seed
		e.rng = nil
	}
}

// WithRand hands the evaluator a caller-held generator, for callers that
// thread one generator through a larger experiment. The generator is
// consumed sequentially during the draw phase only. Summary.Seed reports 0
// in this case.
func WithRand(rng *rand.Rand) Option {
	return func(e *Evaluator) {
		e.rng = rng
		e.seed = 0
	}
}

// WithWorkers bounds the fit/score worker pool. Values below 1 fall back
// to runtime.NumCPU(). The worker count never affects results, only
// throughput.
func WithWorkers(workers int) Option {
	return func(e *Evaluator) {
		e.workers = workers
	}
}

// WithLogger replaces the default structured logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New creates an Evaluator with the default seed, a worker per CPU core,
// and the package logger.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		seed:    DefaultSeed,
		workers: runtime.NumCPU(),
		logger:  log.GetLoggerWithName("evaluation"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the full pipeline: validate, draw, fit and score every
// (draw, procedure) pair, aggregate.
//
// The dataset must be non-empty and is never mutated. Procedures map model
// names to fit procedures; names become the Summary's model identifiers.
// The first fit or scoring failure aborts the run with a FitError naming
// the model and draw index: a silently dropped draw would bias every
// aggregate, so no result is ever discarded. Cancelling ctx stops
// dispatching and returns the context error.
func (e *Evaluator) Evaluate(ctx context.Context, ds *dataset.Dataset, plan Plan, procedures map[string]model.Fitter) (*Summary, error) {
	if ds == nil || ds.Rows() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "evaluation.Evaluate")
	}
	if plan == nil {
		return nil, errors.NewSpecError("plan", "must not be nil", nil)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if len(procedures) == 0 {
		return nil, errors.NewSpecError("procedures", "at least one fit procedure is required", len(procedures))
	}
	for name, fitter := range procedures {
		if fitter == nil {
			return nil, errors.NewSpecError("procedures", "nil fit procedure", name)
		}
	}

	names := lo.Keys(procedures)
	sort.Strings(names)

	logger := e.logger.With(log.RunIDKey, uuid.NewString())
	logger.Info("run started",
		log.OperationKey, log.OperationEvaluate,
		log.PlanKindKey, plan.Kind(),
		log.DrawsKey, plan.Count(),
		log.RowsKey, ds.Rows(),
		log.ModelsKey, len(names),
		log.WorkersKey, e.workers,
		log.SeedKey, e.seed,
	)
	start := time.Now()

	rng := e.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(e.seed, e.seed))
	}

	// Draw phase: sequential, in the coordinator, so the generator state
	// never depends on worker scheduling.
	draws, err := plan.draws(rng, ds.Rows())
	if err != nil {
		logger.Error("draw phase failed", log.ErrAttrKey, err)
		return nil, err
	}

	bootstrap := plan.Kind() == KindBootstrap
	jobs := len(draws) * len(names)
	results := make([]Result, jobs)

	err = parallel.Run(ctx, jobs, e.workers, func(_, job int) error {
		draw := draws[job/len(names)]
		name := names[job%len(names)]
		res, jobErr := evaluateJob(ds, draw, name, procedures[name], bootstrap)
		if jobErr != nil {
			fitErr := errors.NewFitError(name, draw.Index, jobErr)
			logger.Error("fit failed",
				log.ModelNameKey, name,
				log.DrawIndexKey, draw.Index,
				log.ErrAttrKey, fitErr,
			)
			return fitErr
		}
		results[job] = res
		return nil
	})
	if err != nil {
		logger.Error("run aborted", log.ErrAttrKey, err)
		return nil, err
	}

	summary := e.aggregate(plan, ds.Rows(), names, results)

	logger.Info("run completed",
		log.OperationKey, log.OperationEvaluate,
		log.PlanKindKey, summary.Kind,
		log.DrawsKey, summary.Draws,
		log.ModelsKey, len(summary.Models),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return summary, nil
}

// evaluateJob fits one procedure on one draw's training subset and scores
// it according to the plan mode. Panics from the black-box procedure
// surface as errors, never as crashed workers.
func evaluateJob(ds *dataset.Dataset, draw Draw, name string, fitter model.Fitter, bootstrap bool) (Result, error) {
	train, err := ds.Select(draw.Train)
	if err != nil {
		return Result{}, err
	}

	var fitted model.Fitted
	if err := errors.SafeExecute(log.OperationFit, func() error {
		var fitErr error
		fitted, fitErr = fitter.Fit(train)
		return fitErr
	}); err != nil {
		return Result{}, err
	}
	if fitted == nil {
		return Result{}, errors.New("fit procedure returned a nil model")
	}

	if bootstrap {
		coeffer, ok := fitted.(model.Coefficienter)
		if !ok {
			return Result{}, errors.WithStack(errors.ErrNoCoefficients)
		}
		src := coeffer.Coefficients()
		coefs := make(map[string]float64, len(src))
		for term, v := range src {
			if err := errors.CheckScalar("coefficient "+term, v, draw.Index); err != nil {
				return Result{}, err
			}
			coefs[term] = v
		}
		return Result{Draw: draw.Index, Model: name, Coefficients: coefs}, nil
	}

	responder, ok := fitted.(model.Responder)
	if !ok {
		return Result{}, errors.WithStack(errors.ErrNoResponse)
	}
	test, err := ds.Select(draw.Test)
	if err != nil {
		return Result{}, err
	}

	var preds []float64
	if err := errors.SafeExecute(log.OperationPredict, func() error {
		var predErr error
		preds, predErr = fitted.Predict(test)
		return predErr
	}); err != nil {
		return Result{}, err
	}

	actual, err := test.Numeric(responder.Response())
	if err != nil {
		return Result{}, err
	}
	rmse, err := metrics.RMSE(actual, preds)
	if err != nil {
		return Result{}, err
	}
	if err := errors.CheckScalar("rmse", rmse, draw.Index); err != nil {
		return Result{}, err
	}
	return Result{Draw: draw.Index, Model: name, RMSE: rmse}, nil
}

// aggregate groups the flat results by model and computes the per-model
// summaries. names is sorted, which fixes the model order.
func (e *Evaluator) aggregate(plan Plan, rows int, names []string, results []Result) *Summary {
	byModel := lo.GroupBy(results, func(r Result) string { return r.Model })

	models := make([]ModelSummary, 0, len(names))
	for _, name := range names {
		ms := ModelSummary{Model: name}
		if plan.Kind() == KindBootstrap {
			ms.Terms = summarizeTerms(byModel[name])
		} else {
			ms.Error = summarizeErrors(byModel[name])
		}
		models = append(models, ms)
	}

	return &Summary{
		Kind:    plan.Kind(),
		Draws:   plan.Count(),
		Rows:    rows,
		Seed:    e.seed,
		Models:  models,
		Results: results,
	}
}

// summarizeTerms regroups one model's coefficient maps by term name. The
// incoming results are in draw order, so each term's estimate slice is too.
func summarizeTerms(results []Result) []TermSummary {
	estimates := make(map[string][]float64)
	for _, r := range results {
		for term, v := range r.Coefficients {
			estimates[term] = append(estimates[term], v)
		}
	}

	terms := lo.Keys(estimates)
	sort.Strings(terms)

	out := make([]TermSummary, 0, len(terms))
	for _, term := range terms {
		est := estimates[term]
		sorted := sortedCopy(est)
		out = append(out, TermSummary{
			Term:      term,
			Estimates: est,
			Mean:      stat.Mean(sorted, nil),
			StdErr:    stat.StdDev(sorted, nil),
			Lower:     stat.Quantile(0.025, stat.Empirical, sorted, nil),
			Upper:     stat.Quantile(0.975, stat.Empirical, sorted, nil),
		})
	}
	return out
}

// summarizeErrors collects one model's per-split RMSE values.
func summarizeErrors(results []Result) *ErrorSummary {
	values := lo.Map(results, func(r Result, _ int) float64 { return r.RMSE })
	sorted := sortedCopy(values)
	return &ErrorSummary{
		Values: values,
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		Lower:  stat.Quantile(0.025, stat.Empirical, sorted, nil),
		Upper:  stat.Quantile(0.975, stat.Empirical, sorted, nil),
	}
}

// sortedCopy returns an ascending copy. Quantiles require sorted input,
// and running every statistic over the canonical order makes aggregation
// independent of how results were produced.
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
