// Package render groups the diagram renderers.
//
// # Overview
//
//   - Sankey diagrams (in the sankey subpackages): the layered flow layout
//     and its sinks
//   - Node-link diagrams (in [nodelink]): the same flows as a Graphviz
//     graph with weighted edges
//
// # Sankey Diagrams
//
// Key subpackages:
//   - [sankey/layout]: Node positions, band routing and hit testing
//   - [sankey/ordering]: Column ordering (barycentric sweeps)
//   - [sankey/paint]: Palettes and color interpolation
//   - [sankey/sink]: Output formats (SVG, PNG, JSON)
//
//	l := layout.Build(edges, geom.NewRect(960, 540, 20))
//	svg := sink.RenderSVG(l, sink.WithTitle("Budget"))
//	png, err := sink.RenderPNG(l)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage writes the flows as Graphviz DOT, one rank per
// column, and renders it with the embedded Graphviz.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [sankey/layout]: github.com/matzehuels/sankey/pkg/render/sankey/layout
// [sankey/ordering]: github.com/matzehuels/sankey/pkg/render/sankey/ordering
// [sankey/paint]: github.com/matzehuels/sankey/pkg/render/sankey/paint
// [sankey/sink]: github.com/matzehuels/sankey/pkg/render/sankey/sink
// [nodelink]: github.com/matzehuels/sankey/pkg/render/nodelink
package render
