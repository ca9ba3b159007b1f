package ordering

import (
	"math"
	"slices"

	"github.com/matzehuels/sankey/pkg/flow"
)

// Orderer rewrites the node order of each column in place to reduce band
// crossings. Implementations must only permute columns, never move a node to
// another column.
type Orderer interface {
	Reduce(g *flow.Graph, cols flow.Columns)
}

// None keeps the grouping order unchanged.
type None struct{}

func (None) Reduce(*flow.Graph, flow.Columns) {}

// Barycentric is the two-pass barycenter heuristic.
//
// The forward pass visits columns in ascending level order and sorts each
// column by the mean position of its predecessors in the column directly to
// its left. The backward pass visits columns in descending order and uses
// successors in the column directly to its right. Each pass sees the orders
// produced so far.
//
// A node without neighbors in the adjacent column sorts last. Sorting is
// stable, so ties keep their previous relative order. Columns with one node,
// or whose adjacent level is empty, are skipped. Parallel edges weigh their
// endpoint once per edge.
//
// Exactly two passes are run. The result is not guaranteed to be a crossing
// minimum.
type Barycentric struct{}

func (Barycentric) Reduce(g *flow.Graph, cols flow.Columns) {
	levels := cols.Levels()

	for _, l := range levels {
		sortByBarycenter(cols[l], cols[l-1], g.Predecessors)
	}
	for _, l := range slices.Backward(levels) {
		sortByBarycenter(cols[l], cols[l+1], g.Successors)
	}
}

func sortByBarycenter(col, adjacent []string, neighbors func(string) []string) {
	if len(col) <= 1 || len(adjacent) == 0 {
		return
	}
	pos := flow.PosMap(adjacent)

	bary := make(map[string]float64, len(col))
	for _, id := range col {
		sum, n := 0.0, 0
		for _, nb := range neighbors(id) {
			if p, ok := pos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			bary[id] = math.Inf(1)
		} else {
			bary[id] = sum / float64(n)
		}
	}

	slices.SortStableFunc(col, func(a, b string) int {
		ba, bb := bary[a], bary[b]
		switch {
		case ba < bb:
			return -1
		case ba > bb:
			return 1
		}
		return 0
	})
}
