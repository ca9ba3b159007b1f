// Package sink renders a computed Sankey [layout.Layout] to output formats.
//
//   - SVG: vector output with gradient bands, tooltips and hover styling
//   - PNG: raster output drawn with gg
//   - JSON: the [graph.Layout] document
//
// Bands are drawn in input edge order, so a band later in the input lies on
// top of earlier ones. That is the same order [layout.Layout.HitTest] uses to
// pick the topmost band.
//
// # Band Shape
//
// Layout geometry describes each band by its two attachment points and its
// thickness at either end. Sinks draw it as a ribbon: two cubic Bézier
// curves with control points halfway along the level axis, joined by
// straight edges across the node boundaries. Hit testing uses the straight
// tapered band between the same endpoints.
//
// # Hover State
//
// [HoverState] is the highlight shared by all diagrams drawn on one surface.
// It is passed explicitly to each render:
//
//	hover := sink.NewHoverState()
//	hover.SetNode("grid")
//	a := sink.RenderSVG(l1, sink.WithHover(hover))
//	b := sink.RenderSVG(l2, sink.WithHover(hover))
//
// Both documents draw every band touching "grid" with its hover color.
package sink
