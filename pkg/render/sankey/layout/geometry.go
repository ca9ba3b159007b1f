package layout

import "github.com/matzehuels/sankey/pkg/geom"

// Default pixel constants.
const (
	DefaultNodeWidth   = 20.0
	DefaultNodePadding = 10.0

	// MinThickness is the smallest node-axis extent of a node.
	MinThickness = 4.0
)

// NodeGeometry is the drawn rectangle of one node.
//
// The fields are screen-space: Width is always the x extent and Height the
// y extent. For [geom.Horizontal] layouts Width is the fixed node width and
// Height the value-proportional thickness. For [geom.Vertical] layouts the
// roles swap: Width holds the thickness and Height the fixed node width.
type NodeGeometry struct {
	X, Y          float64
	Width, Height float64
	Value         float64
}

// Thickness returns the value-proportional extent along the node axis.
func (n NodeGeometry) Thickness(o geom.Orientation) float64 {
	if o == geom.Vertical {
		return n.Width
	}
	return n.Height
}

// Contains reports whether (x, y) lies inside the node rectangle.
func (n NodeGeometry) Contains(x, y float64) bool {
	return x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height
}

// FlowBand is the routed geometry and resolved colors of one edge.
//
// (X, Y) is the leading edge of the band where it leaves the source: the
// source's right boundary for horizontal layouts, its bottom boundary for
// vertical ones, offset along the node axis by the bands already attached.
// (X2, Y2) is the matching point on the target's near boundary. Height and
// Height2 are the band thickness at the source and the target.
type FlowBand struct {
	From, To string
	Value    float64

	X, Y    float64
	X2, Y2  float64
	Height  float64
	Height2 float64

	Color      string
	ColorFrom  string
	ColorTo    string
	HoverColor string
}

// Geometry returns the band outline for hit testing. The attachment points
// are shifted by half the thickness to the centerline.
func (b *FlowBand) Geometry(o geom.Orientation) geom.Band {
	g := geom.Band{
		X: b.X, Y: b.Y, X2: b.X2, Y2: b.Y2,
		Height: b.Height, Height2: b.Height2,
		Orientation: o,
	}
	if o == geom.Vertical {
		g.X += b.Height / 2
		g.X2 += b.Height2 / 2
	} else {
		g.Y += b.Height / 2
		g.Y2 += b.Height2 / 2
	}
	return g
}
