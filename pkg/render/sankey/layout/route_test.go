package layout

import (
	"testing"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
)

func TestRouteBands_Horizontal(t *testing.T) {
	g, nodes := position(fork, nil, geom.Horizontal, geom.Rect{Right: 200, Bottom: 100})
	bands := RouteBands(g, nodes, geom.Horizontal, Colors{})

	want := []FlowBand{
		{From: "a", To: "b", Value: 10, X: 20, Y: 5, X2: 180, Y2: 0, Height: 22.5, Height2: 22.5},
		{From: "a", To: "c", Value: 30, X: 20, Y: 27.5, X2: 180, Y2: 32.5, Height: 67.5, Height2: 67.5},
	}
	if len(bands) != len(want) {
		t.Fatalf("len(bands) = %d, want %d", len(bands), len(want))
	}
	for i, w := range want {
		b := bands[i]
		if b == nil {
			t.Fatalf("band %d is nil", i)
		}
		if b.X != w.X || b.Y != w.Y || b.X2 != w.X2 || b.Y2 != w.Y2 || b.Height != w.Height || b.Height2 != w.Height2 {
			t.Errorf("band %d = %+v, want %+v", i, *b, w)
		}
	}
}

func TestRouteBands_Vertical(t *testing.T) {
	g, nodes := position(fork, nil, geom.Vertical, geom.Rect{Right: 100, Bottom: 200})
	bands := RouteBands(g, nodes, geom.Vertical, Colors{})

	if b := bands[0]; b.X != 5 || b.Y != 20 || b.X2 != 0 || b.Y2 != 180 {
		t.Errorf("band 0 = %+v", *b)
	}
	if b := bands[1]; b.X != 27.5 || b.X2 != 32.5 || b.Height != 67.5 {
		t.Errorf("band 1 = %+v", *b)
	}
}

func TestRouteBands_Alignment(t *testing.T) {
	edges := []flow.Edge{
		{From: "a", To: "b", Weight: 1},
		{From: "a", To: "", Weight: 1},
		{From: "b", To: "c", Weight: -2},
		{From: "b", To: "c", Weight: 1},
	}
	g, nodes := position(edges, nil, geom.Horizontal, geom.Rect{Right: 100, Bottom: 100})
	delete(nodes, "c")

	bands := RouteBands(g, nodes, geom.Horizontal, Colors{})
	if len(bands) != len(edges) {
		t.Fatalf("len(bands) = %d, want %d", len(bands), len(edges))
	}
	for i, wantNil := range []bool{false, true, true, true} {
		if (bands[i] == nil) != wantNil {
			t.Errorf("bands[%d] nil = %v, want %v", i, bands[i] == nil, wantNil)
		}
	}
}

func TestRouteBands_StacksWithoutOverlap(t *testing.T) {
	edges := []flow.Edge{
		{From: "s", To: "t", Weight: 3},
		{From: "s", To: "t", Weight: 5},
		{From: "s", To: "t", Weight: 2},
	}
	g, nodes := position(edges, nil, geom.Horizontal, geom.Rect{Right: 100, Bottom: 100})
	bands := RouteBands(g, nodes, geom.Horizontal, Colors{})

	src, dst := nodes["s"], nodes["t"]
	y, y2 := src.Y, dst.Y
	for i, b := range bands {
		if b.Y != y || b.Y2 != y2 {
			t.Errorf("band %d attached at %v/%v, want %v/%v", i, b.Y, b.Y2, y, y2)
		}
		y += b.Height
		y2 += b.Height2
	}
	if y != src.Y+src.Height || y2 != dst.Y+dst.Height {
		t.Errorf("bands cover %v/%v, want full node thickness", y-src.Y, y2-dst.Y)
	}
}

func TestFlowBandGeometry(t *testing.T) {
	b := &FlowBand{X: 20, Y: 10, X2: 180, Y2: 30, Height: 10, Height2: 20}

	h := b.Geometry(geom.Horizontal)
	if h.Y != 15 || h.Y2 != 40 || h.X != 20 || h.X2 != 180 {
		t.Errorf("horizontal geometry = %+v", h)
	}
	v := b.Geometry(geom.Vertical)
	if v.X != 25 || v.X2 != 190 || v.Y != 10 || v.Orientation != geom.Vertical {
		t.Errorf("vertical geometry = %+v", v)
	}
}
