// Package layout computes Sankey diagram geometry.
//
// # Pipeline
//
// [Build] is the single entry point. It builds a [flow.Graph], assigns
// levels, groups them into columns, reduces crossings with an
// [ordering.Orderer], then calls [PositionNodes] and [RouteBands]:
//
//	l := layout.Build(edges, geom.NewRect(960, 600, 20),
//	    layout.WithColorMode(layout.ColorGradient),
//	    layout.WithPalette(paint.Palette),
//	)
//	for i, band := range l.Bands {
//	    if band == nil {
//	        continue // edge i was invalid
//	    }
//	    ...
//	}
//
// # Axes
//
// Horizontal layouts progress left to right and stack nodes top to bottom.
// Vertical layouts progress top to bottom and stack nodes left to right.
// [NodeGeometry] and [FlowBand] always use screen coordinates; see their
// docs for which field holds the value-proportional thickness.
//
// # Scale
//
// One pixels-per-value scale applies to the whole diagram, so equal flows
// are equally thick in every column. Nodes are never thinner than
// [MinThickness].
//
// # Colors
//
// Colors are resolved once while routing and stored on each band. An
// explicit edge color always wins. Otherwise [ColorMode] decides between the
// default color and the source or target node color. In
// [ColorGradient] mode bands fade from the source node color to the target
// node color, or from the base color to a translucent copy of it when node
// colors are not available.
//
// # Hit Testing
//
// [Layout.HitTest] finds the topmost band under a point using
// [geom.Band.ContainsPoint]; [Layout.NodeAt] does the same for nodes.
package layout
