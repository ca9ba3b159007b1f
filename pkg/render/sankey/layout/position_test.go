package layout

import (
	"testing"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/flow/transform"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/ordering"
)

func position(edges []flow.Edge, pins map[string]flow.Pin, o geom.Orientation, rect geom.Rect) (*flow.Graph, map[string]NodeGeometry) {
	g := flow.Build(edges)
	levels := transform.AssignLevels(g, pins)
	cols := transform.GroupByLevel(levels)
	ordering.Barycentric{}.Reduce(g, cols)
	return g, PositionNodes(g, levels, cols, o, rect, 20, 10)
}

var fork = []flow.Edge{
	{From: "a", To: "b", Weight: 10},
	{From: "a", To: "c", Weight: 30},
}

func TestPositionNodes_Horizontal(t *testing.T) {
	_, nodes := position(fork, nil, geom.Horizontal, geom.Rect{Right: 200, Bottom: 100})

	want := map[string]NodeGeometry{
		"a": {X: 0, Y: 5, Width: 20, Height: 90, Value: 40},
		"b": {X: 180, Y: 0, Width: 20, Height: 22.5, Value: 10},
		"c": {X: 180, Y: 32.5, Width: 20, Height: 67.5, Value: 30},
	}
	for id, w := range want {
		if got := nodes[id]; got != w {
			t.Errorf("%s = %+v, want %+v", id, got, w)
		}
	}
}

func TestPositionNodes_Vertical(t *testing.T) {
	_, nodes := position(fork, nil, geom.Vertical, geom.Rect{Right: 100, Bottom: 200})

	want := map[string]NodeGeometry{
		"a": {X: 5, Y: 0, Width: 90, Height: 20, Value: 40},
		"b": {X: 0, Y: 180, Width: 22.5, Height: 20, Value: 10},
		"c": {X: 32.5, Y: 180, Width: 67.5, Height: 20, Value: 30},
	}
	for id, w := range want {
		if got := nodes[id]; got != w {
			t.Errorf("%s = %+v, want %+v", id, got, w)
		}
	}
}

func TestPositionNodes_MinThickness(t *testing.T) {
	_, nodes := position([]flow.Edge{
		{From: "big", To: "x", Weight: 1000},
		{From: "s", To: "t", Weight: 1},
	}, nil, geom.Horizontal, geom.Rect{Right: 200, Bottom: 100})

	if h := nodes["s"].Height; h != MinThickness {
		t.Errorf("s thickness = %v, want %v", h, MinThickness)
	}
	if h := nodes["big"].Height; h >= 90 || h <= 80 {
		t.Errorf("big thickness = %v, want close to 90", h)
	}
}

func TestPositionNodes_SingleColumnCentered(t *testing.T) {
	_, nodes := position([]flow.Edge{{From: "a", To: "a", Weight: 5}}, nil, geom.Horizontal, geom.Rect{Right: 200, Bottom: 100})

	if got := nodes["a"]; got.X != 90 || got.Y != 0 || got.Height != 100 {
		t.Errorf("a = %+v, want centered at x=90 filling the height", got)
	}
}

func TestPositionNodes_PinnedGap(t *testing.T) {
	_, nodes := position(chainEdges("A", "B", "C"), map[string]flow.Pin{"C": {Column: 4}}, geom.Horizontal, geom.Rect{Right: 200, Bottom: 100})

	for id, x := range map[string]float64{"A": 0, "B": 45, "C": 180} {
		if nodes[id].X != x {
			t.Errorf("%s.X = %v, want %v", id, nodes[id].X, x)
		}
	}
}

func TestPositionNodes_NoSpaceFallsBackToUnitScale(t *testing.T) {
	_, nodes := position([]flow.Edge{{From: "a", To: "b", Weight: 2}}, nil, geom.Horizontal, geom.Rect{Right: 100})

	if h := nodes["a"].Height; h != MinThickness {
		t.Errorf("a thickness = %v, want %v", h, MinThickness)
	}
	if h := (NodeGeometry{Height: 7}).Thickness(geom.Horizontal); h != 7 {
		t.Errorf("Thickness = %v", h)
	}
}

func TestPositionNodes_Empty(t *testing.T) {
	if _, nodes := position(nil, nil, geom.Horizontal, geom.Rect{Right: 100, Bottom: 100}); len(nodes) != 0 {
		t.Errorf("nodes = %v, want empty", nodes)
	}
}

func chainEdges(ids ...string) []flow.Edge {
	var edges []flow.Edge
	for i := 0; i+1 < len(ids); i++ {
		edges = append(edges, flow.Edge{From: ids[i], To: ids[i+1], Weight: 1})
	}
	return edges
}
