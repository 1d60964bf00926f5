// Package mgfs ranks the features of a dataset with the MGFS (multivariate
// graph feature selection) score.
//
// The score treats features as nodes of a weighted graph. Edge weights are
// Euclidean distances between the rows of a correlation affinity matrix
// (1 - Pearson correlation between every column of X and every column of Y),
// and the importance of a feature is its probability under the stationary
// distribution of a damped random walk (PageRank) over that graph. Features
// whose correlation profile differs most from the rest score highest.
//
// # Installation
//
//	go get github.com/YuminosukeSato/mgfs
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/mgfs/sklearn/feature_selection"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 3, []float64{
//	        1, 2, 9,
//	        2, 4, 1,
//	        3, 5, 7,
//	        4, 9, 3,
//	    })
//
//	    scores, ranking, err := feature_selection.MGFS(X, X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, idx := range ranking {
//	        fmt.Printf("feature %d: %.4f\n", idx, scores.AtVec(idx))
//	    }
//	}
//
// # Packages
//
//   - metrics: covariance, Pearson correlation, affinity and distance matrices
//   - centrality: transition matrix, weighted PageRank, feature graph view
//   - sklearn/feature_selection: MGFS pipeline and the MGFSSelector transformer
//   - core/model: estimator state and gob persistence helpers
//   - pkg/errors: error types with stack traces, warnings, panic recovery
//   - pkg/log: Logger interface backed by zerolog or slog
//   - cmd/mgfs: command line interface for CSV files
//
// # scikit-learn Compatibility
//
// MGFSSelector follows the scikit-learn transformer conventions:
//
//	selector := feature_selection.NewMGFSSelector(
//	    feature_selection.WithK(10),
//	    feature_selection.WithBeta(0.85),
//	)
//	XSelected, err := selector.FitTransform(X, Y)
//	support, err := selector.GetSupport()
//
// # Degenerate input
//
// Constant columns and graphs with zero-weight nodes produce NaN scores by
// default. WithStrict(true) reports them as errors instead, and
// WithZeroDegree(centrality.ZeroDegreeUniform) gives zero-weight nodes a
// uniform transition row.
//
// # License
//
// mgfs is released under the MIT License.
package mgfs
