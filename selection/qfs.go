package selection

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"github.com/YuminosukeSato/qfs/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Step describes one solver invocation during the search.
type Step struct {
	// Iteration is the zero-based index of the solver invocation.
	Iteration int
	// Alpha is the evaluated tradeoff coefficient.
	Alpha float64
	// Left and Right are the search bounds Alpha was taken from.
	Left, Right float64
	// Selected is the number of features in the solver's selection.
	Selected int
	// Final marks the extra invocation made after the precision limit was reached.
	Final bool
}

// Result is the outcome of Search.
type Result struct {
	// Alpha is the tradeoff coefficient of the returned selection.
	Alpha float64
	// Selection is the solver's binary vector at Alpha.
	Selection []int
	// Selected is the number of ones in Selection.
	Selected int
	// K is the requested number of features.
	K int
	// Exact reports whether Selected == K.
	Exact bool
	// Iterations is the number of solver invocations.
	Iterations int
	// Trace holds every evaluated candidate in order.
	Trace []Step
}

// SelectedFeatures returns the indices i with Selection[i] == 1.
func (r *Result) SelectedFeatures() []int {
	idx := make([]int, 0, r.Selected)
	for i, v := range r.Selection {
		if v == 1 {
			idx = append(idx, i)
		}
	}
	return idx
}

// QFS binary-searches alpha in [0, 1] for a QUBO whose minimizer selects
// exactly k features and returns that alpha with the solver's selection.
// See Search for details.
func QFS(redundancy mat.Matrix, importance mat.Vector, k int, solver Solver, opts ...Option) (float64, []int, error) {
	res, err := Search(redundancy, importance, k, solver, opts...)
	if err != nil {
		return 0, nil, err
	}
	return res.Alpha, res.Selection, nil
}

// Search runs the QFS binary search.
//
// Starting from [left, right] = [0, 1], the midpoint alpha is evaluated by
// building the QUBO and calling the solver. A selection of exactly k features
// is returned immediately; fewer features move left up to alpha, more move
// right down to alpha. This assumes the selected count grows with alpha. Once
// right-left <= PrecisionLimit, the solver is called one last time at the
// midpoint and that selection is returned whatever its size; Result.Exact
// tells the two outcomes apart, and a ConvergenceWarning is emitted for the
// latter.
//
// k must satisfy 0 < k < n and solver must be non-nil (ErrInvalidConfiguration).
// Validation errors from the QUBO builder and solver failures are returned
// unchanged; the solver is never retried. As with FeatureSelectionQUBO, nil
// scores panic.
func Search(redundancy mat.Matrix, importance mat.Vector, k int, solver Solver, opts ...Option) (*Result, error) {
	n := importance.Len()
	if k <= 0 || k >= n {
		return nil, errors.NewValidationError("k", fmt.Sprintf("must be between 1 and %d", n-1), k)
	}
	if solver == nil {
		return nil, errors.NewValidationError("solver", "a QUBO solver must be specified", nil)
	}
	cfg := newConfig(opts)
	if err := cfg.validateSearch(); err != nil {
		return nil, err
	}
	if err := validateScores("QFS", redundancy, importance); err != nil {
		return nil, err
	}

	s := &search{
		redundancy: redundancy,
		importance: importance,
		k:          k,
		solver:     solver,
		cfg:        cfg,
		logger: cfg.Logger.With(
			log.OperationKey, log.OperationSearch,
			log.TargetKey, k,
			log.FeaturesKey, n,
		),
		start: time.Now(),
	}
	return s.run()
}

type search struct {
	redundancy mat.Matrix
	importance mat.Vector
	k          int
	solver     Solver
	cfg        *Config
	logger     log.Logger
	trace      []Step
	start      time.Time
}

func (s *search) run() (*Result, error) {
	left, right := 0.0, 1.0
	for right-left > s.cfg.PrecisionLimit {
		mid := (left + right) / 2
		x, count, err := s.evaluate(mid, left, right, false)
		if err != nil {
			return nil, err
		}
		switch {
		case count == s.k:
			return s.finish(mid, x, count), nil
		case count < s.k:
			left = mid
		default:
			right = mid
		}
	}

	mid := (left + right) / 2
	x, count, err := s.evaluate(mid, left, right, true)
	if err != nil {
		return nil, err
	}
	res := s.finish(mid, x, count)
	if !res.Exact {
		errors.Warn(errors.NewConvergenceWarning("QFS", res.Iterations,
			fmt.Sprintf("selected %d features at alpha=%g, wanted %d", count, mid, s.k)))
	}
	return res, nil
}

func (s *search) evaluate(alpha, left, right float64, final bool) ([]int, int, error) {
	q := assembleQUBO(s.redundancy, s.importance, alpha, s.cfg)
	x, count, err := solve(s.solver, q)
	if err != nil {
		s.logger.Error("solver failed", err, log.AlphaKey, alpha, log.ErrorCodeKey, log.ErrorSolver)
		return nil, 0, err
	}

	step := Step{
		Iteration: len(s.trace),
		Alpha:     alpha,
		Left:      left,
		Right:     right,
		Selected:  count,
		Final:     final,
	}
	s.trace = append(s.trace, step)
	s.logger.Debug("alpha candidate evaluated",
		log.IterationKey, step.Iteration,
		log.AlphaKey, alpha,
		log.LeftKey, left,
		log.RightKey, right,
		log.SelectedKey, count,
	)
	if s.cfg.Observer != nil {
		s.cfg.Observer(step)
	}
	return x, count, nil
}

func (s *search) finish(alpha float64, x []int, count int) *Result {
	res := &Result{
		Alpha:      alpha,
		Selection:  x,
		Selected:   count,
		K:          s.k,
		Exact:      count == s.k,
		Iterations: len(s.trace),
		Trace:      s.trace,
	}
	s.logger.Debug("search finished",
		log.AlphaKey, alpha,
		log.SelectedKey, count,
		log.ExactKey, res.Exact,
		log.PrecisionKey, s.cfg.PrecisionLimit,
		log.DurationMsKey, time.Since(s.start).Milliseconds(),
	)
	return res
}
