package evaluation

// Result is the outcome of fitting one model on one resample. Exactly one
// of the two payload fields is populated: Coefficients under a bootstrap
// plan, RMSE under a Monte Carlo plan (Coefficients stays nil and RMSE
// stays zero in the respective other mode).
type Result struct {
	Draw         int
	Model        string
	RMSE         float64
	Coefficients map[string]float64
}

// TermSummary aggregates one coefficient term across all bootstrap draws.
// Estimates holds the per-draw values in draw order; draws whose fit did
// not produce the term (a resample can lose a categorical level) are
// skipped for that term. StdErr is the sample standard deviation of the
// estimates, the bootstrap standard error. Lower and Upper are the 2.5th
// and 97.5th empirical percentiles.
type TermSummary struct {
	Term      string
	Estimates []float64
	Mean      float64
	StdErr    float64
	Lower     float64
	Upper     float64
}

// ErrorSummary aggregates one model's held-out RMSE across all Monte Carlo
// splits. Values holds the per-split RMSE in draw order; the distribution
// itself is the comparison artifact, the moments are convenience.
type ErrorSummary struct {
	Values []float64
	Mean   float64
	Median float64
	StdDev float64
	Lower  float64
	Upper  float64
}

// ModelSummary is the aggregate view for a single named fit procedure:
// Terms under a bootstrap plan, Error under a Monte Carlo plan.
type ModelSummary struct {
	Model string
	Terms []TermSummary
	Error *ErrorSummary
}

// Term returns the summary for a coefficient term, if present.
func (m ModelSummary) Term(name string) (TermSummary, bool) {
	for _, t := range m.Terms {
		if t.Term == name {
			return t, true
		}
	}
	return TermSummary{}, false
}

// Summary is the retained artifact of an evaluation run: per-model
// aggregates plus the flat raw results, ordered by draw then model name.
// Models and terms are sorted by name, and for a fixed seed two runs with
// identical inputs produce identical Summaries.
type Summary struct {
	Kind    string
	Draws   int
	Rows    int
	Seed    uint64
	Models  []ModelSummary
	Results []Result
}

// Model returns the aggregate for a named fit procedure, if present.
func (s *Summary) Model(name string) (ModelSummary, bool) {
	for _, m := range s.Models {
		if m.Model == name {
			return m, true
		}
	}
	return ModelSummary{}, false
}

// ModelNames lists the summarized models in sorted order.
func (s *Summary) ModelNames() []string {
	names := make([]string, len(s.Models))
	for i, m := range s.Models {
		names[i] = m.Model
	}
	return names
}
