// Package qfs implements Quantum-inspired Feature Selection (QFS) for Go.
//
// QFS selects k of d features by trading off the importance of each feature
// (its mutual information with the target) against the redundancy between
// features (their pairwise mutual information). The tradeoff is expressed as
// a QUBO (quadratic unconstrained binary optimization) problem
//
//	minimize xᵀQx,  Q[i][j] = (1-α)·R[i][j],  Q[i][i] = -α·I[i]
//
// and α is binary-searched until the minimizer selects exactly k features.
// The minimizer itself is supplied by the caller (an annealer, a classical
// heuristic, or brute force for small d) through selection.Solver.
//
// # Quick Start
//
//	disc := preprocessing.NewKBinsDiscretizer(preprocessing.WithBins(8))
//	sel := selection.NewQFSSelector(3, mySolver, selection.WithDiscretizer(disc))
//	if err := sel.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	reduced, err := sel.Transform(X)
//
// The lower-level pipeline is available as free functions:
//
//	codes, _ := preprocessing.Discretize(X, 8, "quantile", false)
//	yCodes, _ := preprocessing.DiscretizeVector(y, 8, "quantile")
//	R, _ := selection.Redundancy(codes)
//	I, _ := selection.Importance(codes, yCodes)
//	alpha, x, err := selection.QFS(R, I, 3, mySolver)
//
// # Packages
//
//   - preprocessing: equal-width and quantile discretization (KBinsDiscretizer)
//   - stats: entropy and mutual information over discrete data
//   - selection: redundancy/importance scorers, QUBO builder, α search, QFSSelector
//   - visualize: gonum/plot renderings of the search trace and redundancy
//   - core/model: estimator state and interfaces
//   - pkg/errors: error taxonomy and warnings
//   - pkg/log: structured logging (zerolog, slog)
//
// # Error Handling
//
// Errors are classified with errors.Is against the sentinels in pkg/errors
// (ErrShapeMismatch, ErrInvalidInput, ErrInvalidConfiguration,
// ErrUnsupportedMethod, ErrEmptyData). Violated score invariants such as a
// non-zero redundancy diagonal are reported with errors.IsInvariantViolation.
package qfs
