package centrality

import (
	"fmt"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/YuminosukeSato/mgfs/pkg/log"
)

const (
	// DefaultBeta is the default damping factor.
	DefaultBeta = 0.85
	// DefaultEpsilon is the default L1 convergence threshold.
	DefaultEpsilon = 1e-8
)

// ZeroDegreePolicy selects how a node whose outgoing weights sum to zero is treated.
type ZeroDegreePolicy int

const (
	// ZeroDegreePropagate divides by the zero degree, so the node's row and
	// eventually every score becomes NaN (or Inf).
	ZeroDegreePropagate ZeroDegreePolicy = iota
	// ZeroDegreeError rejects the input with a DegenerateInputError.
	ZeroDegreeError
	// ZeroDegreeUniform treats the node as dangling: the walk leaves it
	// uniformly at random.
	ZeroDegreeUniform
)

func (p ZeroDegreePolicy) String() string {
	switch p {
	case ZeroDegreePropagate:
		return "propagate"
	case ZeroDegreeError:
		return "error"
	case ZeroDegreeUniform:
		return "uniform"
	default:
		return fmt.Sprintf("ZeroDegreePolicy(%d)", int(p))
	}
}

// ParseZeroDegreePolicy is the inverse of ZeroDegreePolicy.String.
func ParseZeroDegreePolicy(s string) (ZeroDegreePolicy, error) {
	for _, p := range []ZeroDegreePolicy{ZeroDegreePropagate, ZeroDegreeError, ZeroDegreeUniform} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, errors.NewValidationError("zero_degree", "must be one of propagate, error, uniform", s)
}

// Option configures the power iteration.
type Option func(*config)

type config struct {
	beta       float64
	epsilon    float64
	maxIter    int
	zeroDegree ZeroDegreePolicy
	logger     log.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		beta:       DefaultBeta,
		epsilon:    DefaultEpsilon,
		zeroDegree: ZeroDegreePropagate,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("centrality")
	}
	return cfg
}

// WithBeta sets the damping factor, the probability of following an edge
// rather than teleporting. Must lie in (0, 1).
func WithBeta(beta float64) Option {
	return func(c *config) {
		c.beta = beta
	}
}

// WithEpsilon sets the L1 threshold between successive iterates. Must be > 0.
func WithEpsilon(epsilon float64) Option {
	return func(c *config) {
		c.epsilon = epsilon
	}
}

// WithMaxIter caps the number of iterations. 0 (the default) iterates until
// convergence.
func WithMaxIter(n int) Option {
	return func(c *config) {
		c.maxIter = n
	}
}

// WithZeroDegree sets the policy for nodes with zero total weight.
func WithZeroDegree(p ZeroDegreePolicy) Option {
	return func(c *config) {
		c.zeroDegree = p
	}
}

// WithLogger sets the logger used for iteration diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Validate checks option values without running the iteration.
func Validate(opts ...Option) error {
	return newConfig(opts).validate()
}

func (c *config) validate() error {
	// NaN fails both comparisons and is rejected as well
	if !(c.beta > 0 && c.beta < 1) {
		return errors.NewValidationError("beta", "must be in the open interval (0, 1)", c.beta)
	}
	if !(c.epsilon > 0) {
		return errors.NewValidationError("epsilon", "must be positive", c.epsilon)
	}
	if c.maxIter < 0 {
		return errors.NewValidationError("max_iter", "must be non-negative", c.maxIter)
	}
	if c.zeroDegree < ZeroDegreePropagate || c.zeroDegree > ZeroDegreeUniform {
		return errors.NewValidationError("zero_degree", "unknown policy", c.zeroDegree.String())
	}
	return nil
}
