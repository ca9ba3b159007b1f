// Package nodelink renders flow layouts as traditional node-link diagrams.
//
// Graphviz draws the nodes as boxes connected by arrows. Columns become
// ranks in the order the crossing reducer chose, and arrow widths scale
// with edge weight. It is a debugging view: when a Sankey diagram looks
// tangled, the node-link view shows the same levels and ordering without
// band geometry.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools. This package uses [github.com/goccy/go-graphviz] for in-process
// SVG rendering.
package nodelink
