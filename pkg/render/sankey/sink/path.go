package sink

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// ribbon is the closed outline of a band: two cubic curves joined by straight
// segments across the source and target ends.
type ribbon struct {
	start  geom.Point // leading edge at the source
	c1, c2 geom.Point // control points of the leading curve
	end    geom.Point // leading edge at the target
	endT   geom.Point // trailing edge at the target
	d1, d2 geom.Point // control points of the trailing curve
	startT geom.Point // trailing edge at the source
}

func bandRibbon(b *layout.FlowBand, o geom.Orientation) ribbon {
	if o == geom.Vertical {
		mid := (b.Y + b.Y2) / 2
		return ribbon{
			start:  geom.Point{X: b.X, Y: b.Y},
			c1:     geom.Point{X: b.X, Y: mid},
			c2:     geom.Point{X: b.X2, Y: mid},
			end:    geom.Point{X: b.X2, Y: b.Y2},
			endT:   geom.Point{X: b.X2 + b.Height2, Y: b.Y2},
			d1:     geom.Point{X: b.X2 + b.Height2, Y: mid},
			d2:     geom.Point{X: b.X + b.Height, Y: mid},
			startT: geom.Point{X: b.X + b.Height, Y: b.Y},
		}
	}
	mid := (b.X + b.X2) / 2
	return ribbon{
		start:  geom.Point{X: b.X, Y: b.Y},
		c1:     geom.Point{X: mid, Y: b.Y},
		c2:     geom.Point{X: mid, Y: b.Y2},
		end:    geom.Point{X: b.X2, Y: b.Y2},
		endT:   geom.Point{X: b.X2, Y: b.Y2 + b.Height2},
		d1:     geom.Point{X: mid, Y: b.Y2 + b.Height2},
		d2:     geom.Point{X: mid, Y: b.Y + b.Height},
		startT: geom.Point{X: b.X, Y: b.Y + b.Height},
	}
}

// svgPath renders the ribbon as SVG path data.
func (r ribbon) svgPath() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "M%s C%s %s %s L%s C%s %s %s Z",
		pt(r.start), pt(r.c1), pt(r.c2), pt(r.end),
		pt(r.endT), pt(r.d1), pt(r.d2), pt(r.startT))
	return sb.String()
}

func pt(p geom.Point) string { return num(p.X) + "," + num(p.Y) }

// num formats v with at most two decimals.
func num(v float64) string { return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) }
