// Package log defines standard attribute keys for feature selection operations.
//
// Keys follow a hierarchical naming convention ("data.samples", "qfs.alpha") so
// that structured logs can be filtered per concern.

package log

// Estimator and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "QFSSelector", "KBinsDiscretizer".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies a specific estimator instance (UUID string).
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging, e.g. "selection".
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	BinsKey     = "data.bins"
	MethodKey   = "data.method"
)

// Binary search over the redundancy/importance tradeoff.
const (
	// AlphaKey is the tradeoff coefficient of the evaluated candidate.
	AlphaKey = "qfs.alpha"

	// TargetKey is the requested number of features k.
	TargetKey = "qfs.k"

	// SelectedKey is the number of features selected by the solver.
	SelectedKey = "qfs.selected"

	// LeftKey and RightKey are the current search bounds.
	LeftKey  = "qfs.left"
	RightKey = "qfs.right"

	// PrecisionKey is the precision limit that terminates the search.
	PrecisionKey = "qfs.precision"

	// IterationKey is the zero-based solver invocation index.
	IterationKey = "qfs.iteration"

	// ExactKey reports whether the returned selection has exactly k features.
	ExactKey = "qfs.exact"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	ErrorCodeKey = "error.code"
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationSearch       = "search"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorSolver            = "SOLVER_FAILURE"
)
