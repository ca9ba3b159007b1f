package flow

import (
	"math"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func TestEdgeValid(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want bool
	}{
		{"ok", Edge{From: "a", To: "b", Weight: 1}, true},
		{"fractional", Edge{From: "a", To: "b", Weight: 0.001}, true},
		{"self loop", Edge{From: "a", To: "a", Weight: 1}, true},
		{"empty from", Edge{To: "b", Weight: 1}, false},
		{"empty to", Edge{From: "a", Weight: 1}, false},
		{"zero", Edge{From: "a", To: "b"}, false},
		{"negative", Edge{From: "a", To: "b", Weight: -3}, false},
		{"nan", Edge{From: "a", To: "b", Weight: math.NaN()}, false},
		{"inf", Edge{From: "a", To: "b", Weight: math.Inf(1)}, false},
		{"neg inf", Edge{From: "a", To: "b", Weight: math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidEdges(t *testing.T) {
	in := []Edge{
		{From: "a", To: "b", Weight: 1},
		{From: "a", To: "", Weight: 1},
		{From: "b", To: "c", Weight: 2},
		{From: "c", To: "d", Weight: 0},
	}
	got := ValidEdges(in)
	if len(got) != 2 || got[0].To != "b" || got[1].To != "c" {
		t.Errorf("ValidEdges = %+v", got)
	}
}

func TestBuild(t *testing.T) {
	g := Build([]Edge{
		{From: "a", To: "b", Weight: 10},
		{From: "a", To: "c", Weight: 5},
		{From: "b", To: "c", Weight: 3},
		{From: "x", To: "y", Weight: -1},
	})

	if got := g.NodeIDs(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("NodeIDs = %v, want [a b c]", got)
	}

	tests := []struct {
		id                  string
		incoming, outgoing  float64
		value               float64
		inDegree, outDegree int
	}{
		{"a", 0, 15, 15, 0, 2},
		{"b", 10, 3, 10, 1, 1},
		{"c", 8, 0, 8, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := g.Node(tt.id)
			if !ok {
				t.Fatalf("node %s missing", tt.id)
			}
			if n.Incoming != tt.incoming || n.Outgoing != tt.outgoing || n.Value != tt.value {
				t.Errorf("node = %+v, want in=%v out=%v value=%v", n, tt.incoming, tt.outgoing, tt.value)
			}
			if g.InDegree(tt.id) != tt.inDegree || g.OutDegree(tt.id) != tt.outDegree {
				t.Errorf("degrees = %d/%d, want %d/%d", g.InDegree(tt.id), g.OutDegree(tt.id), tt.inDegree, tt.outDegree)
			}
		})
	}

	if _, ok := g.Node("x"); ok {
		t.Error("invalid edge endpoints must not create nodes")
	}
	if g.EdgeCount() != 4 || g.ValidEdgeCount() != 3 {
		t.Errorf("EdgeCount=%d ValidEdgeCount=%d, want 4 and 3", g.EdgeCount(), g.ValidEdgeCount())
	}
	if got := g.OutEdges("a"); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("OutEdges(a) = %v, want [0 1]", got)
	}
	if got := g.InEdges("c"); len(got) != 2 {
		t.Errorf("InEdges(c) = %v, want two indices", got)
	}
	if got := g.InEdges("a"); len(got) != 0 {
		t.Errorf("InEdges(a) = %v, want none", got)
	}
	if got := g.Sources(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Sources = %v, want [a]", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	for _, edges := range [][]Edge{nil, {}, {{From: "a", To: "b"}}} {
		g := Build(edges)
		if g.NodeCount() != 0 {
			t.Errorf("Build(%v) has %d nodes, want 0", edges, g.NodeCount())
		}
	}
}

func TestBuildParallelEdges(t *testing.T) {
	g := Build([]Edge{
		{From: "a", To: "b", Weight: 1},
		{From: "a", To: "b", Weight: 2},
	})
	if got := g.Successors("a"); !slices.Equal(got, []string{"b", "b"}) {
		t.Errorf("Successors(a) = %v, want [b b]", got)
	}
	if n, _ := g.Node("b"); n.Incoming != 3 {
		t.Errorf("b.Incoming = %v, want 3", n.Incoming)
	}
}

// Totals are exact sums regardless of edge order.
func TestBuildTotalsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := []string{"a", "b", "c", "d", "e"}
		n := rapid.IntRange(0, 20).Draw(t, "n")
		edges := make([]Edge, n)
		for i := range edges {
			edges[i] = Edge{
				From:   rapid.SampledFrom(names).Draw(t, "from"),
				To:     rapid.SampledFrom(names).Draw(t, "to"),
				Weight: float64(rapid.IntRange(1, 100).Draw(t, "w")),
			}
		}

		in := map[string]float64{}
		out := map[string]float64{}
		for _, e := range edges {
			out[e.From] += e.Weight
			in[e.To] += e.Weight
		}

		perm := rapid.Permutation(slices.Clone(edges)).Draw(t, "perm")

		for _, g := range []*Graph{Build(edges), Build(perm)} {
			for _, node := range g.Nodes() {
				if node.Incoming != in[node.ID] || node.Outgoing != out[node.ID] {
					t.Fatalf("%s: in=%v out=%v, want in=%v out=%v", node.ID, node.Incoming, node.Outgoing, in[node.ID], out[node.ID])
				}
				if node.Value != math.Max(node.Incoming, node.Outgoing) {
					t.Fatalf("%s: value %v is not max(in, out)", node.ID, node.Value)
				}
			}
		}
	})
}

func TestLevelMap(t *testing.T) {
	m := NewLevelMap(0)
	m.Set("b", 1)
	m.Set("a", 0)
	m.Set("b", 3)

	if got := m.IDs(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("IDs = %v, want insertion order [b a]", got)
	}
	if l, ok := m.Get("b"); !ok || l != 3 {
		t.Errorf("Get(b) = %d, %v", l, ok)
	}
	if _, ok := m.Get("z"); ok {
		t.Error("Get(z) should be unassigned")
	}
	if m.Max() != 3 || m.Len() != 2 {
		t.Errorf("Max=%d Len=%d", m.Max(), m.Len())
	}
}

func TestColumns(t *testing.T) {
	c := Columns{2: {"x"}, 0: {"a", "b"}, 5: {"z"}}
	if got := c.Levels(); !slices.Equal(got, []int{0, 2, 5}) {
		t.Errorf("Levels = %v", got)
	}
	clone := c.Clone()
	clone[0][0] = "changed"
	if c[0][0] != "a" {
		t.Error("Clone must not share slices")
	}
}
