// Package centrality computes stationary importance scores over weighted
// feature graphs given as dense adjacency matrices.
package centrality

import (
	"context"
	"math"
	"time"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/YuminosukeSato/mgfs/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Result holds the outcome of the power iteration.
type Result struct {
	// Scores is the stationary distribution, one entry per node.
	Scores *mat.VecDense
	// Iterations is the number of multiplications by G performed.
	Iterations int
	// Residual is the L1 distance between the last two iterates.
	Residual float64
	// Converged reports whether Residual fell below epsilon. It is false
	// when the iteration cap was hit or the scores became non-finite.
	Converged bool
}

// TransitionMatrix returns the damped row-stochastic matrix
//
//	G = beta * P + (1 - beta)/n * J,  P[i][j] = M[i][j] / Σ_k M[i][k]
//
// for the square weight matrix M. Rows with zero total weight follow the
// configured ZeroDegreePolicy.
func TransitionMatrix(M mat.Matrix, opts ...Option) (*mat.Dense, error) {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return transitionMatrix(M, cfg)
}

func transitionMatrix(M mat.Matrix, cfg *config) (*mat.Dense, error) {
	r, c := M.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError("TransitionMatrix", "empty matrix")
	}
	if r != c {
		return nil, errors.NewDimensionError("TransitionMatrix", r, c, 1)
	}

	n := r
	teleport := (1 - cfg.beta) / float64(n)
	G := mat.NewDense(n, n, nil)
	row := make([]float64, n)
	for i := 0; i < n; i++ {
		mat.Row(row, i, M)
		degree := floats.Sum(row)

		if degree == 0 {
			switch cfg.zeroDegree {
			case ZeroDegreeError:
				return nil, errors.NewDegenerateInputError("TransitionMatrix", errors.DegenerateZeroDegree, "M", i)
			case ZeroDegreeUniform:
				for j := 0; j < n; j++ {
					G.Set(i, j, cfg.beta/float64(n)+teleport)
				}
				continue
			}
		}

		for j := 0; j < n; j++ {
			G.Set(i, j, cfg.beta*(row[j]/degree)+teleport)
		}
	}
	return G, nil
}

// WeightedStationaryRank runs the damped power iteration (PageRank) over the
// square weight matrix M and returns the stationary distribution.
//
// Starting from the uniform distribution, π ← π·G is repeated until the L1
// distance between successive iterates is below epsilon. Without WithMaxIter
// the loop is unbounded; it also stops once the iterate becomes NaN, so
// degenerate input yields NaN scores rather than hanging.
func WeightedStationaryRank(M mat.Matrix, opts ...Option) (*mat.VecDense, error) {
	res, err := Rank(M, opts...)
	if err != nil {
		return nil, err
	}
	return res.Scores, nil
}

// Rank is WeightedStationaryRank with iteration diagnostics.
func Rank(M mat.Matrix, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	G, err := transitionMatrix(M, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := iterate(G, cfg)

	logger := cfg.logger.With(log.OperationKey, log.OperationRank)
	fields := []any{
		log.NodesKey, res.Scores.Len(),
		log.IterationKey, res.Iterations,
		log.ResidualKey, res.Residual,
		log.ConvergedKey, res.Converged,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	switch {
	case res.Converged:
		logger.Debug("Stationary rank converged", fields...)
	case math.IsNaN(res.Residual):
		logger.Warn("Stationary rank produced non-finite scores", fields...)
	default:
		errors.Warn(errors.NewConvergenceWarning("WeightedStationaryRank", res.Iterations,
			"iteration cap reached before the L1 step fell below epsilon"))
		logger.Warn("Stationary rank stopped at max_iter", fields...)
	}
	return res, nil
}

func iterate(G *mat.Dense, cfg *config) *Result {
	n, _ := G.Dims()
	debug := cfg.logger.Enabled(context.Background(), log.LevelDebug)

	pi := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		pi.SetVec(i, 1/float64(n))
	}
	next := mat.NewVecDense(n, nil)

	for iter := 1; ; iter++ {
		// π·G == Gᵀπ
		next.MulVec(G.T(), pi)
		residual := floats.Distance(next.RawVector().Data, pi.RawVector().Data, 1)

		if debug {
			cfg.logger.Debug("Power iteration step", log.IterationKey, iter, log.ResidualKey, residual)
		}

		if residual < cfg.epsilon {
			return &Result{Scores: next, Iterations: iter, Residual: residual, Converged: true}
		}
		if math.IsNaN(residual) || (cfg.maxIter > 0 && iter >= cfg.maxIter) {
			return &Result{Scores: next, Iterations: iter, Residual: residual}
		}
		pi, next = next, pi
	}
}
