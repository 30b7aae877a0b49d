// Package log defines standard attribute keys for resampling operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in the library. Using these standard keys enables
// better log analysis and debugging of long evaluation runs.
//
// The keys follow a hierarchical naming convention (e.g., "plan.draws",
// "data.rows") to enable structured log filtering.

package log

// Run and Operation Context
// These attributes identify the evaluation run, the model, and the operation
// being performed.
const (
	// RunIDKey provides a unique identifier for a single evaluation run.
	// Generated per Evaluate call, it lets the draw, fit, and aggregate
	// records of one run be correlated in interleaved log output.
	RunIDKey = "run.id"

	// ModelNameKey identifies the fitting procedure under evaluation.
	// Examples: "ols", "poly2", "loess"
	ModelNameKey = "model.name"

	// OperationKey specifies the resampling operation being performed.
	// Standard values: "evaluate", "draw", "fit", "score", "aggregate"
	OperationKey = "resample.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "evaluation", "dataset", "linear"
	ComponentKey = "component"
)

// Plan Configuration
// These attributes describe the resampling plan driving a run.
const (
	// PlanKindKey records the resampling scheme.
	// Values: "bootstrap", "montecarlo"
	PlanKindKey = "plan.kind"

	// DrawsKey records the number of resampling iterations requested.
	DrawsKey = "plan.draws"

	// TrainFractionKey records the train fraction of a Monte Carlo plan.
	TrainFractionKey = "plan.train_fraction"

	// SeedKey records the random seed for reproducibility.
	SeedKey = "config.random_seed"

	// WorkersKey records the number of parallel workers used for the
	// fit and score phase.
	WorkersKey = "config.workers"
)

// Data Shape
// These attributes describe the dataset being resampled.
const (
	// RowsKey indicates the number of rows in the dataset.
	RowsKey = "data.rows"

	// ColumnsKey indicates the number of columns in the dataset.
	ColumnsKey = "data.columns"

	// ResponseKey names the response column of the formula in effect.
	ResponseKey = "data.response"

	// TrainRowsKey indicates the number of rows in a train subset.
	TrainRowsKey = "data.train_rows"

	// TestRowsKey indicates the number of rows in a held-out test subset.
	TestRowsKey = "data.test_rows"
)

// Results and Performance
// These attributes capture aggregate outcomes and timing.
const (
	// ModelsKey records how many fitting procedures a run compares.
	ModelsKey = "models.count"

	// TermsKey records how many coefficient terms a bootstrap run tracked.
	TermsKey = "terms.count"

	// DrawIndexKey records the index of the resampling iteration a record
	// belongs to.
	DrawIndexKey = "draw.index"

	// RMSEKey records a held-out root mean squared error value.
	RMSEKey = "metrics.rmse"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
// These attributes provide additional context for error records.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "INVALID_PLAN", "FIT_FAILURE", "SINGULAR_MATRIX"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "SpecError", "FitError", "DimensionError"
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving the error.
	// Examples: "check that predictor columns are numeric or categorical"
	SuggestionKey = "error.suggestion"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard resampling operations
	OperationEvaluate  = "evaluate"
	OperationDraw      = "draw"
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationScore     = "score"
	OperationAggregate = "aggregate"

	// Resampling plan kinds
	PlanBootstrap  = "bootstrap"
	PlanMonteCarlo = "montecarlo"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyDataset      = "EMPTY_DATASET"
	ErrorInvalidPlan       = "INVALID_PLAN"
	ErrorFitFailure        = "FIT_FAILURE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
