// Package feature_selection ranks and selects features with the MGFS
// (multivariate graph feature selection) score.
//
// The score is computed in three stages: a correlation affinity matrix
// between the columns of X and Y, a Euclidean distance matrix over its rows,
// and a damped random walk over that distance graph whose stationary
// distribution is the importance of each feature.
package feature_selection

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// MGFS computes the MGFS score of every column of X against Y and returns the
// scores together with the feature indices ordered by descending score.
//
// X and Y must have the same number of rows and the same number of columns.
//
// 使用例:
//
//	scores, ranking, err := feature_selection.MGFS(X, Y, feature_selection.WithBeta(0.9))
func MGFS(X, Y mat.Matrix, opts ...Option) (*mat.VecDense, []int, error) {
	s := NewMGFSSelector(opts...)
	if err := s.Fit(X, Y); err != nil {
		return nil, nil, err
	}
	return s.Scores(), s.Ranking(), nil
}

// ArgsortDescending returns the indices of scores ordered by descending value.
// The sort is stable: equal scores keep ascending index order. NaN scores are
// placed last.
func ArgsortDescending(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		sa, sb := scores[idx[a]], scores[idx[b]]
		if math.IsNaN(sa) {
			return false
		}
		if math.IsNaN(sb) {
			return true
		}
		return sa > sb
	})
	return idx
}
