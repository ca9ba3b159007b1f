package transform

import "github.com/matzehuels/sankey/pkg/flow"

// AssignLevels assigns every node of g to a column.
//
// Pinned nodes are placed first and always keep their pinned column. The rest
// of the graph is ranked by breadth-first distance from the roots, so a node's
// level is fixed by the first time it is enqueued. Nodes the traversal cannot
// reach are resolved by a final pass over their predecessors.
//
// # Algorithm
//
//  1. For each non-negative pin whose node exists (in first-seen node order),
//     record its column, mark it visited and enqueue its successors at
//     column+1.
//  2. Roots are unvisited nodes without incoming edges.
//  3. If there are no roots and the queue is empty (a graph made only of
//     cycles), the first unvisited node becomes a synthetic root at level 0.
//  4. Roots are appended to the queue at level 0.
//  5. FIFO traversal: a popped node that is already visited is skipped;
//     otherwise it is recorded and its unvisited successors are enqueued at
//     level+1.
//  6. Each node still unassigned, in first-seen order, gets one more than the
//     highest level among its resolved predecessors, or 0 without any. Levels
//     resolved earlier in this pass count, but the pass is not repeated.
//
// Self-loops and pins inside cycles are ordinary predecessor edges. Pins that
// name unknown nodes or a negative column are ignored.
//
// Step 6 makes results for chains of unreachable nodes depend on node order.
// That order is the first-seen order of [flow.Build], so output is stable for
// a given input.
//
// Time complexity is O(V + E).
func AssignLevels(g *flow.Graph, pins map[string]flow.Pin) *flow.LevelMap {
	order := g.NodeIDs()
	levels := flow.NewLevelMap(len(order))
	visited := make(map[string]bool, len(order))

	type item struct {
		id    string
		level int
	}
	var queue []item

	for _, id := range order {
		pin, ok := pins[id]
		if !ok || pin.Column < 0 {
			continue
		}
		levels.Set(id, pin.Column)
		visited[id] = true
		for _, succ := range g.Successors(id) {
			queue = append(queue, item{succ, pin.Column + 1})
		}
	}

	var roots []string
	for _, id := range g.Sources() {
		if !visited[id] {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 && len(queue) == 0 {
		for _, id := range order {
			if !visited[id] {
				roots = append(roots, id)
				break
			}
		}
	}
	for _, id := range roots {
		queue = append(queue, item{id, 0})
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if visited[curr.id] {
			continue
		}
		visited[curr.id] = true
		levels.Set(curr.id, curr.level)
		for _, succ := range g.Successors(curr.id) {
			if !visited[succ] {
				queue = append(queue, item{succ, curr.level + 1})
			}
		}
	}

	for _, id := range order {
		if _, ok := levels.Get(id); ok {
			continue
		}
		level := 0
		for _, pred := range g.Predecessors(id) {
			if l, ok := levels.Get(pred); ok {
				level = max(level, l+1)
			}
		}
		levels.Set(id, level)
	}

	return levels
}
