package evaluation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/resample/pkg/errors"
)

// Plan kind names, as reported by Summary.Kind and attached to log records.
const (
	KindBootstrap  = "bootstrap"
	KindMonteCarlo = "montecarlo"
)

// DefaultTrainFraction is the conventional Monte Carlo split size.
const DefaultTrainFraction = 0.8

// A Monte Carlo test subset below this many rows triggers a
// SmallTestSetWarning: RMSE over a handful of points is mostly noise.
const minTestRows = 5

// Draw is one resample as row indices into the source dataset. Train keeps
// the indices in draw order. Test is empty for bootstrap draws and the
// disjoint complement of Train for Monte Carlo draws.
type Draw struct {
	Index int
	Train []int
	Test  []int
}

// Plan describes how resamples are drawn from a dataset. The two variants
// are Bootstrap and MonteCarlo; the draw method is unexported, so the
// variant set is closed.
type Plan interface {
	// Kind identifies the plan variant (KindBootstrap or KindMonteCarlo).
	Kind() string

	// Count returns the number of draws the plan produces.
	Count() int

	// Validate checks the configuration before any resampling work begins.
	Validate() error

	// draws generates the index draws for a dataset of m rows. It runs in
	// the coordinator goroutine and must consume rng sequentially so a
	// fixed seed yields identical draws regardless of worker scheduling.
	draws(rng *rand.Rand, m int) ([]Draw, error)
}

type bootstrapPlan struct {
	n int
}

// Bootstrap plans n independent samples-with-replacement, each the size of
// the source dataset. Fitting happens on the resample itself; there is no
// held-out subset.
func Bootstrap(n int) Plan {
	return bootstrapPlan{n: n}
}

func (p bootstrapPlan) Kind() string { return KindBootstrap }

func (p bootstrapPlan) Count() int { return p.n }

func (p bootstrapPlan) Validate() error {
	if p.n < 1 {
		return errors.NewSpecError("n", "must be at least 1", p.n)
	}
	return nil
}

func (p bootstrapPlan) draws(rng *rand.Rand, m int) ([]Draw, error) {
	out := make([]Draw, p.n)
	for i := range out {
		train := make([]int, m)
		for j := range train {
			train[j] = rng.IntN(m)
		}
		out[i] = Draw{Index: i, Train: train}
	}
	return out, nil
}

type monteCarloPlan struct {
	n             int
	trainFraction float64
}

// MonteCarlo plans n independent random splits into a training subset of
// round(trainFraction*m) rows and the disjoint test complement. The same
// row can train in one split and test in another; within a split the two
// subsets never overlap and jointly cover every row.
func MonteCarlo(n int, trainFraction float64) Plan {
	return monteCarloPlan{n: n, trainFraction: trainFraction}
}

func (p monteCarloPlan) Kind() string { return KindMonteCarlo }

func (p monteCarloPlan) Count() int { return p.n }

func (p monteCarloPlan) Validate() error {
	if p.n < 1 {
		return errors.NewSpecError("n", "must be at least 1", p.n)
	}
	if p.trainFraction <= 0 || p.trainFraction >= 1 {
		return errors.NewSpecError("trainFraction", "must be in (0, 1)", p.trainFraction)
	}
	return nil
}

func (p monteCarloPlan) draws(rng *rand.Rand, m int) ([]Draw, error) {
	trainSize := int(math.Round(p.trainFraction * float64(m)))
	// A fraction inside (0,1) can still round to an empty subset on small
	// datasets; that leaves nothing to fit or nothing to score.
	if trainSize < 1 || trainSize >= m {
		return nil, errors.NewSpecError("trainFraction",
			fmt.Sprintf("degenerate partition: %d of %d rows in training", trainSize, m),
			p.trainFraction)
	}
	if testSize := m - trainSize; testSize < minTestRows {
		errors.Warn(errors.NewSmallTestSetWarning(testSize, m, p.trainFraction))
	}

	out := make([]Draw, p.n)
	for i := range out {
		perm := rng.Perm(m)
		out[i] = Draw{Index: i, Train: perm[:trainSize], Test: perm[trainSize:]}
	}
	return out, nil
}
