package flow

import (
	"maps"
	"math"
	"slices"
)

// Edge is a weighted directed flow between two named nodes. It is the raw
// input record of a diagram: edges that fail [Edge.Valid] are ignored by every
// later stage instead of being reported.
//
// The color fields are optional per-edge overrides consumed by the band router.
type Edge struct {
	From   string  // Source node ID
	To     string  // Target node ID
	Weight float64 // Flow amount; must be finite and > 0 to count

	Color      string // Base band color (wins over any color mode)
	ColorFrom  string // Gradient start color
	ColorTo    string // Gradient end color
	HoverColor string // Color used while the band is highlighted
}

// Valid reports whether the edge carries usable flow: both endpoints are
// non-empty and the weight is a finite number strictly greater than zero.
// A zero, negative or non-finite weight means "no flow", not malformed input.
func (e Edge) Valid() bool {
	if e.From == "" || e.To == "" {
		return false
	}
	w := e.Weight
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w > 0
}

// ValidEdges returns the valid subset of edges, preserving input order.
func ValidEdges(edges []Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Valid() {
			out = append(out, e)
		}
	}
	return out
}

// Node is a vertex of the flow graph with its aggregated totals.
// Value is max(Incoming, Outgoing) and drives the node's drawn thickness.
type Node struct {
	ID       string
	Incoming float64 // Sum of weights of edges ending here
	Outgoing float64 // Sum of weights of edges starting here
	Value    float64
}

// link is one adjacency entry: the neighbor and the index of the edge in the
// original input slice.
type link struct {
	id   string
	edge int
}

// Graph is the node set of a flow diagram, built once per layout by [Build].
//
// Nodes are kept in first-seen order (the order in which their IDs first
// appear as an endpoint while scanning the input). Later stages rely on that
// order for deterministic tie-breaks. The zero value is an empty graph.
// Graph is read-only after Build and safe for concurrent reads.
type Graph struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge // original input, including invalid records
	outgoing map[string][]link
	incoming map[string][]link
}

// Build discovers nodes from the valid edges and aggregates their totals.
//
// Edges are visited in input order. A node is created the first time its ID is
// seen as either endpoint; every valid edge adds its weight to the source's
// Outgoing and the target's Incoming. After accumulation each node's Value is
// set to max(Incoming, Outgoing). Invalid edges are skipped but remain
// addressable by index through [Graph.Edge] so that routed output can stay
// aligned with the caller's edge list.
//
// An empty or all-invalid input yields a graph with no nodes.
func Build(edges []Edge) *Graph {
	g := &Graph{
		nodes:    make(map[string]*Node),
		edges:    slices.Clone(edges),
		outgoing: make(map[string][]link),
		incoming: make(map[string][]link),
	}
	for i, e := range edges {
		if !e.Valid() {
			continue
		}
		src := g.ensure(e.From)
		dst := g.ensure(e.To)
		src.Outgoing += e.Weight
		dst.Incoming += e.Weight
		g.outgoing[e.From] = append(g.outgoing[e.From], link{id: e.To, edge: i})
		g.incoming[e.To] = append(g.incoming[e.To], link{id: e.From, edge: i})
	}
	for _, n := range g.nodes {
		n.Value = math.Max(n.Incoming, n.Outgoing)
	}
	return g
}

func (g *Graph) ensure(id string) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// NodeIDs returns node IDs in first-seen order. The slice is a copy.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Nodes returns copies of all nodes in first-seen order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	for i, id := range g.order {
		out[i] = *g.nodes[id]
	}
	return out
}

// Node returns the node with the given ID and true, or a zero Node and false.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// Edges returns a copy of the original input edges, invalid ones included,
// so that indices match the caller's slice.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Edge returns the input edge at index i.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// EdgeCount returns the number of input edges, invalid ones included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ValidEdgeCount returns the number of edges that contributed to the graph.
func (g *Graph) ValidEdgeCount() int {
	n := 0
	for _, links := range g.outgoing {
		n += len(links)
	}
	return n
}

// Successors returns target IDs of the node's valid outgoing edges, in edge
// order. Parallel edges yield repeated IDs.
func (g *Graph) Successors(id string) []string { return ids(g.outgoing[id]) }

// Predecessors returns source IDs of the node's valid incoming edges, in edge
// order. Parallel edges yield repeated IDs.
func (g *Graph) Predecessors(id string) []string { return ids(g.incoming[id]) }

// InDegree returns the number of valid incoming edges.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// OutDegree returns the number of valid outgoing edges.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// OutEdges returns the input indices of the node's valid outgoing edges.
func (g *Graph) OutEdges(id string) []int { return edgeIdx(g.outgoing[id]) }

// InEdges returns the input indices of the node's valid incoming edges.
func (g *Graph) InEdges(id string) []int { return edgeIdx(g.incoming[id]) }

// Sources returns nodes without incoming edges in first-seen order.
func (g *Graph) Sources() []string {
	var out []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

func ids(links []link) []string {
	if len(links) == 0 {
		return nil
	}
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.id
	}
	return out
}

func edgeIdx(links []link) []int {
	out := make([]int, len(links))
	for i, l := range links {
		out[i] = l.edge
	}
	return out
}

// Pin forces a node into a fixed column, bypassing graph-derived placement.
type Pin struct {
	Column int `json:"column" toml:"column" yaml:"column"`
}

// LevelMap maps node IDs to columns and remembers insertion order.
//
// Iteration order is observable: [transform.GroupByLevel] lays out each
// column in this order, which becomes the starting order for crossing
// reduction. The zero value is not usable; create one with [NewLevelMap].
type LevelMap struct {
	ids    []string
	levels map[string]int
}

// NewLevelMap returns an empty level map with room for n entries.
func NewLevelMap(n int) *LevelMap {
	return &LevelMap{ids: make([]string, 0, n), levels: make(map[string]int, n)}
}

// Set records the level for id. Re-setting an existing id updates its level
// without moving it in iteration order.
func (m *LevelMap) Set(id string, level int) {
	if _, ok := m.levels[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.levels[id] = level
}

// Get returns the level of id and whether it has been assigned.
func (m *LevelMap) Get(id string) (int, bool) {
	l, ok := m.levels[id]
	return l, ok
}

// Level returns the level of id, or 0 if unassigned.
func (m *LevelMap) Level(id string) int { return m.levels[id] }

// IDs returns assigned IDs in insertion order.
func (m *LevelMap) IDs() []string { return slices.Clone(m.ids) }

// Len returns the number of assigned nodes.
func (m *LevelMap) Len() int { return len(m.ids) }

// Max returns the highest assigned level, or 0 for an empty map.
func (m *LevelMap) Max() int {
	hi := 0
	for _, l := range m.levels {
		hi = max(hi, l)
	}
	return hi
}

// Map returns a copy of the assignments as a plain map.
func (m *LevelMap) Map() map[string]int { return maps.Clone(m.levels) }

// Columns holds node IDs per level. The order within each column is the
// drawing order (top to bottom, or left to right when vertical) and is
// rewritten in place by crossing reduction. Columns is not safe for
// concurrent mutation.
type Columns map[int][]string

// Levels returns the populated levels in ascending order.
func (c Columns) Levels() []int {
	return slices.Sorted(maps.Keys(c))
}

// Clone returns a deep copy, useful to compare orders before and after
// reduction.
func (c Columns) Clone() Columns {
	out := make(Columns, len(c))
	for l, ids := range c {
		out[l] = slices.Clone(ids)
	}
	return out
}

// PosMap maps each ID to its index in ids.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
