package centrality

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/YuminosukeSato/mgfs/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func positiveMatrix(n int, seed uint64) *mat.Dense {
	rng := rand.New(rand.NewPCG(seed, seed))
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, 0.1+rng.Float64())
		}
	}
	return m
}

func TestWeightedStationaryRankIsDistribution(t *testing.T) {
	for _, n := range []int{2, 3, 10, 40} {
		M := positiveMatrix(n, uint64(n))

		pi, err := WeightedStationaryRank(M)
		require.NoError(t, err)
		require.Equal(t, n, pi.Len())

		for i := 0; i < n; i++ {
			assert.GreaterOrEqual(t, pi.AtVec(i), 0.0)
		}
		assert.InDelta(t, 1.0, floats.Sum(pi.RawVector().Data), 1e-9, "n=%d", n)
	}
}

func TestWeightedStationaryRankIsStationary(t *testing.T) {
	M := positiveMatrix(12, 99)
	const eps = 1e-10

	pi, err := WeightedStationaryRank(M, WithEpsilon(eps))
	require.NoError(t, err)

	G, err := TransitionMatrix(M)
	require.NoError(t, err)

	var again mat.VecDense
	again.MulVec(G.T(), pi)
	assert.Less(t, floats.Distance(again.RawVector().Data, pi.RawVector().Data, 1), eps)
}

func TestWeightedStationaryRankKnownValues(t *testing.T) {
	// ノード0が他の2ノードとだけつながる星型グラフ
	M := mat.NewDense(3, 3, []float64{
		0, 1, 1,
		1, 0, 0,
		1, 0, 0,
	})

	res, err := Rank(M)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.Residual, DefaultEpsilon)

	beta := DefaultBeta
	center := (beta + (1-beta)/3) / (1 + beta)
	leaf := (1 - center) / 2

	assert.InDelta(t, center, res.Scores.AtVec(0), 1e-6)
	assert.InDelta(t, leaf, res.Scores.AtVec(1), 1e-6)
	assert.InDelta(t, leaf, res.Scores.AtVec(2), 1e-6)
}

func TestWeightedStationaryRankUniformGraph(t *testing.T) {
	n := 5
	ones := make([]float64, n*n)
	for i := range ones {
		ones[i] = 1
	}

	res, err := Rank(mat.NewDense(n, n, ones))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 1.0/float64(n), res.Scores.AtVec(i), 1e-15)
	}
}

func TestTransitionMatrixRowStochastic(t *testing.T) {
	M := positiveMatrix(6, 3)

	G, err := TransitionMatrix(M, WithBeta(0.6))
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		assert.InDelta(t, 1.0, floats.Sum(mat.Row(nil, i, G)), 1e-12)
		for j := 0; j < 6; j++ {
			assert.GreaterOrEqual(t, G.At(i, j), 0.4/6)
		}
	}
}

func TestZeroDegreePolicies(t *testing.T) {
	M := mat.NewDense(3, 3, []float64{
		0, 1, 1,
		1, 0, 1,
		0, 0, 0,
	})

	t.Run("propagate", func(t *testing.T) {
		pi, err := WeightedStationaryRank(M)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			assert.True(t, math.IsNaN(pi.AtVec(i)), "score %d = %v", i, pi.AtVec(i))
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := WeightedStationaryRank(M, WithZeroDegree(ZeroDegreeError))
		var degErr *errors.DegenerateInputError
		require.True(t, errors.As(err, &degErr), "got %v", err)
		assert.Equal(t, 2, degErr.Index)
		assert.Equal(t, errors.DegenerateZeroDegree, degErr.Kind)
	})

	t.Run("uniform", func(t *testing.T) {
		pi, err := WeightedStationaryRank(M, WithZeroDegree(ZeroDegreeUniform))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, floats.Sum(pi.RawVector().Data), 1e-9)
		for i := 0; i < 3; i++ {
			assert.False(t, math.IsNaN(pi.AtVec(i)))
		}
	})
}

func TestParseZeroDegreePolicy(t *testing.T) {
	for _, p := range []ZeroDegreePolicy{ZeroDegreePropagate, ZeroDegreeError, ZeroDegreeUniform} {
		got, err := ParseZeroDegreePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseZeroDegreePolicy("ignore")
	assert.Error(t, err)
}

func TestWeightedStationaryRankValidation(t *testing.T) {
	M := positiveMatrix(3, 1)

	tests := []struct {
		name  string
		opt   Option
		param string
	}{
		{"beta zero", WithBeta(0), "beta"},
		{"beta one", WithBeta(1), "beta"},
		{"beta above one", WithBeta(1.5), "beta"},
		{"beta NaN", WithBeta(math.NaN()), "beta"},
		{"epsilon zero", WithEpsilon(0), "epsilon"},
		{"epsilon negative", WithEpsilon(-1e-8), "epsilon"},
		{"max_iter negative", WithMaxIter(-1), "max_iter"},
		{"unknown policy", WithZeroDegree(ZeroDegreePolicy(9)), "zero_degree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeightedStationaryRank(M, tt.opt)
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.param, valErr.ParamName)
			assert.Equal(t, err.Error(), Validate(tt.opt).Error())
		})
	}
}

func TestWeightedStationaryRankShapeErrors(t *testing.T) {
	_, err := WeightedStationaryRank(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr), "got %v", err)

	_, err = WeightedStationaryRank(&mat.Dense{})
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr), "got %v", err)
}

func TestWeightedStationaryRankMaxIter(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	M := mat.NewDense(3, 3, []float64{
		0, 1, 1,
		1, 0, 0,
		1, 0, 0,
	})

	res, err := Rank(M, WithMaxIter(3))
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.InDelta(t, 1.0, floats.Sum(res.Scores.RawVector().Data), 1e-12)

	require.Len(t, warnings, 1)
	var convWarn *errors.ConvergenceWarning
	require.True(t, errors.As(warnings[0], &convWarn))
	assert.Equal(t, 3, convWarn.Iterations)
}

func TestWeightedStationaryRankLogging(t *testing.T) {
	testLogger, _ := log.NewTestLogger(log.LevelDebug)

	res, err := Rank(positiveMatrix(4, 5), WithLogger(testLogger))
	require.NoError(t, err)

	assert.True(t, testLogger.ContainsMessage("Power iteration step"))
	assert.True(t, testLogger.ContainsMessage("Stationary rank converged"))
	assert.True(t, testLogger.ContainsField(log.IterationKey, float64(res.Iterations)))
	assert.True(t, testLogger.ContainsField(log.ConvergedKey, true))
}

func BenchmarkWeightedStationaryRank(b *testing.B) {
	M := positiveMatrix(100, 42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := WeightedStationaryRank(M); err != nil {
			b.Fatal(err)
		}
	}
}
