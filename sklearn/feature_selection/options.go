package feature_selection

import (
	"github.com/YuminosukeSato/mgfs/centrality"
	"github.com/YuminosukeSato/mgfs/pkg/log"
)

// Option is a functional option for MGFSSelector and MGFS
type Option func(*MGFSSelector)

// WithBeta sets the damping factor of the random walk (default 0.85)
func WithBeta(beta float64) Option {
	return func(s *MGFSSelector) {
		s.beta = beta
	}
}

// WithEpsilon sets the L1 convergence threshold (default 1e-8)
func WithEpsilon(epsilon float64) Option {
	return func(s *MGFSSelector) {
		s.epsilon = epsilon
	}
}

// WithBias selects the biased (divide by n) covariance estimator
func WithBias(bias bool) Option {
	return func(s *MGFSSelector) {
		s.bias = bias
	}
}

// WithMaxIter caps the power iteration; 0 iterates until convergence
func WithMaxIter(n int) Option {
	return func(s *MGFSSelector) {
		s.maxIter = n
	}
}

// WithStrict rejects degenerate input (constant columns, non-finite
// affinities, zero-degree nodes) with errors instead of propagating NaN
func WithStrict(strict bool) Option {
	return func(s *MGFSSelector) {
		s.strict = strict
	}
}

// WithZeroDegree sets how zero-degree nodes are handled when not strict
func WithZeroDegree(p centrality.ZeroDegreePolicy) Option {
	return func(s *MGFSSelector) {
		s.zeroDegree = p
	}
}

// WithK sets the number of top-ranked features kept by Transform; 0 keeps all
func WithK(k int) Option {
	return func(s *MGFSSelector) {
		s.k = k
	}
}

// WithLogger sets the logger used during Fit
func WithLogger(l log.Logger) Option {
	return func(s *MGFSSelector) {
		s.logger = l
	}
}
