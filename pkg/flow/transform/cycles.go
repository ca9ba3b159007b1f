package transform

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/sankey/pkg/flow"
)

// FindCycles returns the groups of nodes that lie on a directed cycle.
//
// Each group is a strongly connected component with more than one node, or a
// single node with a self-loop. Members are listed in first-seen order and
// groups are ordered by their earliest member. Cycles are legal input; the
// result is diagnostic only and has no effect on [AssignLevels].
func FindCycles(g *flow.Graph) [][]string {
	order := g.NodeIDs()
	if len(order) == 0 {
		return nil
	}
	index := flow.PosMap(order)

	dg := simple.NewDirectedGraph()
	for i := range order {
		dg.AddNode(simple.Node(int64(i)))
	}
	selfLoop := make(map[int]bool)
	for i, id := range order {
		for _, succ := range g.Successors(id) {
			j := index[succ]
			if i == j {
				selfLoop[i] = true
				continue
			}
			dg.SetEdge(simple.Edge{F: simple.Node(int64(i)), T: simple.Node(int64(j))})
		}
	}

	var groups [][]int
	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) == 1 && !selfLoop[int(scc[0].ID())] {
			continue
		}
		members := make([]int, len(scc))
		for k, n := range scc {
			members[k] = int(n.ID())
		}
		slices.Sort(members)
		groups = append(groups, members)
	}
	if len(groups) == 0 {
		return nil
	}
	slices.SortFunc(groups, func(a, b []int) int { return a[0] - b[0] })

	out := make([][]string, len(groups))
	for k, members := range groups {
		ids := make([]string, len(members))
		for m, i := range members {
			ids[m] = order[i]
		}
		out[k] = ids
	}
	return out
}
