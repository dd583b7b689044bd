// Package selection implements quantum-inspired feature selection (QFS).
//
// Features are scored by importance (mutual information with the target) and
// pairwise redundancy (mutual information between features). The scores are
// packed into a QUBO matrix
//
//	Q = (1-alpha)·R - alpha·diag(I)
//
// whose minimum-energy binary vector x (minimizing xᵀQx) is a feature subset.
// QFS binary-searches alpha in [0, 1] so that the minimizer selects exactly k
// features. Minimizing the QUBO is delegated to a caller-supplied Solver; this
// package only builds Q and interprets the returned vector.
//
// Typical use:
//
//	R, err := selection.Redundancy(X)
//	I, err := selection.Importance(X, y)
//	alpha, x, err := selection.QFS(R, I, 5, mySolver)
//
// or, as an estimator:
//
//	sel := selection.NewQFSSelector(5, mySolver,
//	    selection.WithDiscretizer(preprocessing.NewKBinsDiscretizer()),
//	)
//	err := sel.Fit(X, y)
package selection
