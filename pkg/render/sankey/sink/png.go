package sink

import (
	"bytes"
	"image/color"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
	"github.com/matzehuels/sankey/pkg/render/sankey/paint"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width, height float64
	scale         float64
	labels        bool
	background    string
	bandAlpha     float64
	hover         *HoverState
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGSize sets the canvas size in layout units before scaling.
func WithPNGSize(w, h float64) PNGOption {
	return func(r *pngRenderer) { r.width, r.height = w, h }
}

func WithPNGBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

func WithPNGHover(h *HoverState) PNGOption {
	return func(r *pngRenderer) { r.hover = h }
}

func WithPNGLabels(on bool) PNGOption {
	return func(r *pngRenderer) { r.labels = on }
}

// RenderPNG rasterizes the layout. Bands and nodes match [RenderSVG];
// labels use the built-in bitmap font.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{
		width:      l.Frame.Right + l.Frame.Left,
		height:     l.Frame.Bottom + l.Frame.Top,
		scale:      2.0,
		labels:     true,
		background: "#ffffff",
		bandAlpha:  0.6,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w := int(math.Ceil(r.width * r.scale))
	h := int(math.Ceil(r.height * r.scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetColor(paint.NRGBA(r.background))
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	for i, b := range l.Bands {
		if b == nil {
			continue
		}
		drawBand(dc, b, l.Orientation, r.scale, r.bandAlpha, r.hover.highlighted(i, b.From, b.To))
	}

	if l.Graph != nil {
		for _, id := range l.Graph.NodeIDs() {
			n, ok := l.Nodes[id]
			if !ok {
				continue
			}
			dc.SetColor(paint.NRGBA(l.NodeColor(id)))
			dc.DrawRectangle(n.X, n.Y, n.Width, n.Height)
			dc.Fill()
		}
		if r.labels {
			dc.SetColor(paint.NRGBA("#222222"))
			for _, id := range l.Graph.NodeIDs() {
				n, ok := l.Nodes[id]
				if !ok {
					continue
				}
				x, y, anchor := labelAnchor(l, n, 13)
				ax := 0.0
				switch anchor {
				case "middle":
					ax = 0.5
				case "end":
					ax = 1
				}
				dc.DrawStringAnchored(id, x, y, ax, 0.5)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawBand(dc *gg.Context, b *layout.FlowBand, o geom.Orientation, scale, alpha float64, highlight bool) {
	rb := bandRibbon(b, o)
	dc.NewSubPath()
	dc.MoveTo(rb.start.X, rb.start.Y)
	dc.CubicTo(rb.c1.X, rb.c1.Y, rb.c2.X, rb.c2.Y, rb.end.X, rb.end.Y)
	dc.LineTo(rb.endT.X, rb.endT.Y)
	dc.CubicTo(rb.d1.X, rb.d1.Y, rb.d2.X, rb.d2.Y, rb.startT.X, rb.startT.Y)
	dc.ClosePath()

	if highlight {
		dc.SetColor(faded(b.HoverColor, 0.9))
		dc.Fill()
		return
	}
	if !hasGradient(b) {
		dc.SetColor(faded(b.Color, alpha))
		dc.Fill()
		return
	}

	// Gradients are evaluated in device pixels, outside the context transform.
	var grad gg.Gradient
	if o == geom.Vertical {
		grad = gg.NewLinearGradient(0, b.Y*scale, 0, b.Y2*scale)
	} else {
		grad = gg.NewLinearGradient(b.X*scale, 0, b.X2*scale, 0)
	}
	grad.AddColorStop(0, faded(b.ColorFrom, alpha))
	grad.AddColorStop(1, faded(b.ColorTo, alpha))
	dc.SetFillStyle(grad)
	dc.Fill()
}

func faded(c string, alpha float64) color.NRGBA {
	col := paint.NRGBA(c)
	col.A = uint8(float64(col.A)*alpha + 0.5)
	return col
}
