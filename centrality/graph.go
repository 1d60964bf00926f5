package centrality

import (
	"math"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// NewFeatureGraph exposes a square distance matrix as an undirected weighted
// graph. Node i is feature i; the edge {i, j} carries D[i][j] from the upper
// triangle. Zero distances are not stored as edges, and the graph reports
// +Inf as the weight of absent edges and 0 for self loops, so shortest-path
// algorithms from gonum/graph/path can be run directly on it.
//
// Non-finite distances are rejected with a NumericalInstabilityError.
func NewFeatureGraph(D mat.Matrix) (*simple.WeightedUndirectedGraph, error) {
	r, c := D.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError("NewFeatureGraph", "empty matrix")
	}
	if r != c {
		return nil, errors.NewDimensionError("NewFeatureGraph", r, c, 1)
	}
	if err := errors.CheckMatrix("NewFeatureGraph", D, r, c, 0); err != nil {
		return nil, err
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < r; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			w := D.At(i, j)
			if w == 0 {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: w})
		}
	}
	return g, nil
}
