// Package log defines standard attribute keys for feature ranking operations.
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of estimator.
	// Examples: "MGFSSelector"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "rank"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "metrics", "centrality", "feature_selection"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in X.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of target columns in Y.
	TargetsKey = "data.targets"

	// NodesKey indicates the number of nodes in the ranking graph.
	NodesKey = "graph.nodes"
)

// Performance and Convergence
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// IterationKey records the number of power-iteration steps.
	IterationKey = "training.iteration"

	// ResidualKey records the L1 distance between successive iterates.
	ResidualKey = "training.residual"

	// ConvergedKey records whether the iteration met its epsilon threshold.
	ConvergedKey = "training.converged"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters
const (
	// BetaKey records the damping factor of the random walk.
	BetaKey = "hyperparams.beta"

	// EpsilonKey records the convergence threshold.
	EpsilonKey = "hyperparams.epsilon"

	// BiasKey records whether the biased covariance estimator is used.
	BiasKey = "hyperparams.bias"

	// MaxIterKey records the iteration cap (0 means unbounded).
	MaxIterKey = "hyperparams.max_iter"
)

// Standard attribute value constants.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationRank         = "rank"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorDegenerateInput   = "DEGENERATE_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
)
