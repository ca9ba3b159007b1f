package layout

import (
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
)

// RouteBands attaches one band per input edge of g.
//
// The result has the same length and indices as g.Edges(). Entries are nil
// for invalid edges and for edges whose endpoints have no geometry.
//
// A band's thickness at each end is its share of the node's value times the
// node's thickness. Bands leave the source's far side (right, or bottom when
// vertical) and enter the target's near side. Each node keeps separate
// outgoing and incoming offsets, advanced in input edge order, so bands
// sharing a node stack without overlapping.
func RouteBands(g *flow.Graph, geometry map[string]NodeGeometry, o geom.Orientation, colors Colors) []*FlowBand {
	edges := g.Edges()
	bands := make([]*FlowBand, len(edges))
	outOffset := make(map[string]float64, len(geometry))
	inOffset := make(map[string]float64, len(geometry))

	for i, e := range edges {
		if !e.Valid() {
			continue
		}
		src, okSrc := geometry[e.From]
		dst, okDst := geometry[e.To]
		if !okSrc || !okDst {
			continue
		}

		b := &FlowBand{
			From:    e.From,
			To:      e.To,
			Value:   e.Weight,
			Height:  share(e.Weight, src, o),
			Height2: share(e.Weight, dst, o),
		}
		if o == geom.Vertical {
			b.X, b.Y = src.X+outOffset[e.From], src.Y+src.Height
			b.X2, b.Y2 = dst.X+inOffset[e.To], dst.Y
		} else {
			b.X, b.Y = src.X+src.Width, src.Y+outOffset[e.From]
			b.X2, b.Y2 = dst.X, dst.Y+inOffset[e.To]
		}
		outOffset[e.From] += b.Height
		inOffset[e.To] += b.Height2

		colors.resolve(e, b)
		bands[i] = b
	}
	return bands
}

func share(weight float64, n NodeGeometry, o geom.Orientation) float64 {
	if n.Value <= 0 {
		return 0
	}
	return weight / n.Value * n.Thickness(o)
}
