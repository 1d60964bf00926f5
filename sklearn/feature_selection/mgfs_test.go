package feature_selection

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/mgfs/centrality"
	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// correlatedData は列ごとに相関の強さが異なるデータを生成する
func correlatedData(rows, cols int, seed uint64) *mat.Dense {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	X := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		base := rng.NormFloat64()
		for j := 0; j < cols; j++ {
			w := float64(j) / float64(cols)
			X.Set(i, j, (1-w)*base+w*rng.NormFloat64())
		}
	}
	return X
}

func TestArgsortDescending(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		scores []float64
		want   []int
	}{
		{"empty", []float64{}, []int{}},
		{"single", []float64{0.3}, []int{0}},
		{"distinct", []float64{0.1, 0.5, 0.2, 0.7}, []int{3, 1, 2, 0}},
		{"ties keep index order", []float64{0.2, 0.5, 0.2, 0.5}, []int{1, 3, 0, 2}},
		{"nan last", []float64{nan, 0.4, nan, 0.6}, []int{3, 1, 0, 2}},
		{"all nan", []float64{nan, nan, nan}, []int{0, 1, 2}},
		{"negative", []float64{-1, 0, -0.5}, []int{1, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArgsortDescending(tt.scores))
		})
	}
}

func TestMGFSRankingIsDescendingPermutation(t *testing.T) {
	X := correlatedData(60, 6, 7)

	scores, ranking, err := MGFS(X, X)
	require.NoError(t, err)
	require.Equal(t, 6, scores.Len())
	require.Len(t, ranking, 6)

	seen := make(map[int]bool)
	for _, idx := range ranking {
		require.False(t, seen[idx], "duplicate index %d", idx)
		seen[idx] = true
	}
	for i := 0; i+1 < len(ranking); i++ {
		assert.GreaterOrEqual(t, scores.AtVec(ranking[i]), scores.AtVec(ranking[i+1]))
	}
	assert.InDelta(t, 1.0, floats.Sum(scores.RawVector().Data), 1e-9)
}

func TestMGFSMatchesSelector(t *testing.T) {
	X := correlatedData(40, 4, 11)
	Y := correlatedData(40, 4, 12)

	scores, ranking, err := MGFS(X, Y, WithBeta(0.9), WithBias(true))
	require.NoError(t, err)

	s := NewMGFSSelector(WithBeta(0.9), WithBias(true))
	require.NoError(t, s.Fit(X, Y))

	assert.Equal(t, s.Ranking(), ranking)
	assert.True(t, mat.Equal(s.Scores(), scores))
}

func TestMGFSCollinearColumns(t *testing.T) {
	// 2列が完全に比例するため、アフィニティ行列と距離行列は全て0になる
	X := mat.NewDense(3, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
	})

	t.Run("default propagates NaN", func(t *testing.T) {
		scores, ranking, err := MGFS(X, X)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(scores.AtVec(0)))
		assert.True(t, math.IsNaN(scores.AtVec(1)))
		assert.Equal(t, []int{0, 1}, ranking)
	})

	t.Run("uniform zero degree", func(t *testing.T) {
		scores, ranking, err := MGFS(X, X, WithZeroDegree(centrality.ZeroDegreeUniform))
		require.NoError(t, err)
		assert.InDelta(t, 0.5, scores.AtVec(0), 1e-12)
		assert.InDelta(t, 0.5, scores.AtVec(1), 1e-12)
		assert.Equal(t, []int{0, 1}, ranking)
	})

	t.Run("strict rejects", func(t *testing.T) {
		_, _, err := MGFS(X, X, WithStrict(true))
		require.Error(t, err)

		var degErr *errors.DegenerateInputError
		require.True(t, errors.As(err, &degErr))
		assert.Equal(t, errors.DegenerateZeroDegree, degErr.Kind)
		assert.Equal(t, 0, degErr.Index)
	})
}

func TestMGFSDimensionErrors(t *testing.T) {
	tests := []struct {
		name string
		X, Y *mat.Dense
		axis int
	}{
		{"rows differ", mat.NewDense(3, 2, nil), mat.NewDense(4, 2, nil), 0},
		{"columns differ", mat.NewDense(3, 2, nil), mat.NewDense(3, 3, nil), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := MGFS(tt.X, tt.Y)
			require.Error(t, err)

			var dimErr *errors.DimensionError
			require.True(t, errors.As(err, &dimErr))
			assert.Equal(t, tt.axis, dimErr.Axis)
			assert.Equal(t, "MGFS", dimErr.Op)
		})
	}
}

func TestMGFSConstantColumn(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 5, 2,
		2, 5, 1,
		3, 5, 4,
		4, 5, 3,
	})

	t.Run("default yields NaN", func(t *testing.T) {
		scores, ranking, err := MGFS(X, X)
		require.NoError(t, err)
		for i := 0; i < scores.Len(); i++ {
			assert.True(t, math.IsNaN(scores.AtVec(i)), "score %d", i)
		}
		assert.Equal(t, []int{0, 1, 2}, ranking)
	})

	t.Run("strict reports column", func(t *testing.T) {
		_, _, err := MGFS(X, X, WithStrict(true))
		require.Error(t, err)

		var degErr *errors.DegenerateInputError
		require.True(t, errors.As(err, &degErr))
		assert.Equal(t, errors.DegenerateZeroVariance, degErr.Kind)
		assert.Equal(t, "X", degErr.Source)
		assert.Equal(t, 1, degErr.Index)
	})
}

func TestMGFSInvalidParameters(t *testing.T) {
	X := correlatedData(10, 3, 1)

	tests := []struct {
		name string
		opt  Option
	}{
		{"beta zero", WithBeta(0)},
		{"beta one", WithBeta(1)},
		{"beta nan", WithBeta(math.NaN())},
		{"epsilon zero", WithEpsilon(0)},
		{"negative max_iter", WithMaxIter(-1)},
		{"negative k", WithK(-2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := MGFS(X, X, tt.opt)
			require.Error(t, err)

			var valErr *errors.ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestMGFSEmptyInput(t *testing.T) {
	var empty mat.Dense
	_, _, err := MGFS(&empty, &empty)
	require.Error(t, err)

	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}
