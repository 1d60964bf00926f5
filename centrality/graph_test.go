package centrality

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/mat"
)

func TestNewFeatureGraph(t *testing.T) {
	D := mat.NewDense(4, 4, []float64{
		0, 1, 5, 0,
		1, 0, 1, 2,
		5, 1, 0, 3,
		0, 2, 3, 0,
	})

	g, err := NewFeatureGraph(D)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Nodes().Len())

	count := 0
	edges := g.Edges()
	for edges.Next() {
		count++
	}
	assert.Equal(t, 5, count, "zero distance between 0 and 3 is not an edge")

	w, ok := g.Weight(0, 2)
	assert.True(t, ok)
	assert.Equal(t, 5.0, w)

	w, ok = g.Weight(0, 3)
	assert.False(t, ok)
	assert.True(t, math.IsInf(w, 1))

	shortest := path.DijkstraFrom(g.Node(0), g)
	nodes, weight := shortest.To(2)
	assert.Equal(t, 2.0, weight)
	require.Len(t, nodes, 3)
	assert.Equal(t, int64(1), nodes[1].ID())
}

func TestNewFeatureGraphErrors(t *testing.T) {
	_, err := NewFeatureGraph(mat.NewDense(2, 3, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr), "got %v", err)

	_, err = NewFeatureGraph(mat.NewDense(2, 2, []float64{0, math.NaN(), math.NaN(), 0}))
	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr), "got %v", err)
}
