package flow

import "slices"

// CountCrossings returns the number of band crossings for the given column
// orders, summed over each pair of consecutive populated levels (L, L+1).
// Edges that skip levels, run backwards, or loop are not counted: they do not
// connect adjacent columns.
func CountCrossings(g *Graph, cols Columns) int {
	levels := cols.Levels()
	crossings := 0
	for _, l := range levels {
		if next, ok := cols[l+1]; ok {
			crossings += CountLayerCrossings(g, cols[l], next)
		}
	}
	return crossings
}

// CountLayerCrossings counts crossings between two adjacent columns using a
// Fenwick tree, in O(E log V) where V is the size of the right column.
//
// Two edges (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and
// pos(v1) > pos(v2), i.e. the number of inversions of target positions once
// edges are sorted by source position. Parallel edges count individually.
func CountLayerCrossings(g *Graph, left, right []string) int {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	rightPos := PosMap(right)

	type edge struct{ left, right int }
	edges := make([]edge, 0, len(left)*2)
	for i, id := range left {
		for _, succ := range g.Successors(id) {
			if pos, ok := rightPos[succ]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.left != b.left {
			return a.left - b.left
		}
		return a.right - b.right
	})

	fenwick := make([]int, len(right)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.right + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.right + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
