package layout

import (
	"math"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
)

// PositionNodes computes the rectangle of every node in cols.
//
// Columns are spread evenly along the level axis of rect, which is x for
// horizontal layouts and y for vertical ones. The number of column slots is
// the highest level plus one, so pinned gaps stay empty. A single column is
// centered.
//
// Thickness along the node axis uses one scale for the whole diagram: the
// smallest ratio of free space to total value over all columns that have
// both. Without such a column the scale is 1. Each node is at least
// [MinThickness] thick, stacked in column order with nodePadding between
// nodes, and every stack is centered in rect.
//
// Nodes missing from cols get no geometry.
func PositionNodes(g *flow.Graph, levels *flow.LevelMap, cols flow.Columns, o geom.Orientation, rect geom.Rect, nodeWidth, nodePadding float64) map[string]NodeGeometry {
	out := make(map[string]NodeGeometry, g.NodeCount())
	if levels.Len() == 0 || len(cols) == 0 {
		return out
	}

	levelStart, levelExtent := rect.Left, rect.Width()
	nodeStart, nodeExtent := rect.Top, rect.Height()
	if o == geom.Vertical {
		levelStart, levelExtent = rect.Top, rect.Height()
		nodeStart, nodeExtent = rect.Left, rect.Width()
	}

	levelPos := func(l int) float64 {
		slots := levels.Max() + 1
		if slots <= 1 {
			return levelStart + (levelExtent-nodeWidth)/2
		}
		spacing := (levelExtent - nodeWidth) / float64(slots-1)
		return levelStart + float64(l)*spacing
	}

	value := func(id string) float64 {
		n, _ := g.Node(id)
		return n.Value
	}

	scale := math.Inf(1)
	for _, ids := range cols {
		total := 0.0
		for _, id := range ids {
			total += value(id)
		}
		avail := nodeExtent - float64(len(ids)-1)*nodePadding
		if total > 0 && avail > 0 {
			scale = math.Min(scale, avail/total)
		}
	}
	if math.IsInf(scale, 0) || math.IsNaN(scale) || scale <= 0 {
		scale = 1
	}

	for _, l := range cols.Levels() {
		ids := cols[l]
		if len(ids) == 0 {
			continue
		}
		thickness := make([]float64, len(ids))
		stack := float64(len(ids)-1) * nodePadding
		for i, id := range ids {
			thickness[i] = math.Max(MinThickness, value(id)*scale)
			stack += thickness[i]
		}

		lp := levelPos(l)
		pos := nodeStart + (nodeExtent-stack)/2
		for i, id := range ids {
			geo := NodeGeometry{Value: value(id)}
			if o == geom.Vertical {
				geo.X, geo.Y = pos, lp
				geo.Width, geo.Height = thickness[i], nodeWidth
			} else {
				geo.X, geo.Y = lp, pos
				geo.Width, geo.Height = nodeWidth, thickness[i]
			}
			out[id] = geo
			pos += thickness[i] + nodePadding
		}
	}
	return out
}
