package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
	"github.com/matzehuels/sankey/pkg/render/sankey/paint"
)

const bandInteractionCSS = `
    .band { opacity: 0.6; transition: opacity 0.2s ease; }
    .band.highlight, .band:hover { opacity: 0.9; }
    .node { stroke: #333; stroke-width: 0.5; }
    .node.highlight { stroke-width: 2; }
    .label { font-family: sans-serif; fill: #222; pointer-events: none; }`

const bandInteractionJS = `
    function highlight(id) {
      document.querySelectorAll('.band').forEach(b => b.classList.toggle('highlight', b.dataset.from === id || b.dataset.to === id));
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', n.dataset.node === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.band, .node').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.node));
      el.addEventListener('mouseleave', clearHighlight);
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	labels        bool
	interactive   bool
	fontSize      float64
	background    string
	title         string
	hover         *HoverState
}

// WithSize sets the canvas size. The default is the layout frame plus equal
// margins on the far sides.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = false }
}

// WithStatic omits the hover CSS and script.
func WithStatic() SVGOption {
	return func(r *svgRenderer) { r.interactive = false }
}

func WithFontSize(px float64) SVGOption {
	return func(r *svgRenderer) { r.fontSize = px }
}

func WithBackground(c string) SVGOption {
	return func(r *svgRenderer) { r.background = c }
}

// WithTitle adds a document <title>.
func WithTitle(s string) SVGOption {
	return func(r *svgRenderer) { r.title = s }
}

// WithHover draws the bands and nodes selected by h highlighted.
func WithHover(h *HoverState) SVGOption {
	return func(r *svgRenderer) { r.hover = h }
}

// RenderSVG draws the layout as a standalone SVG document. Bands are drawn
// in input edge order so that later bands lie on top, matching
// [layout.Layout.HitTest].
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(l, opts...)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width, r.height, fmt.Sprintf(`viewBox="0 0 %s %s"`, num(r.width), num(r.height)))
	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.interactive {
		canvas.Style("text/css", bandInteractionCSS)
	}
	if r.background != "" {
		canvas.Rect(0, 0, r.width, r.height, "fill:"+r.background)
	}

	renderGradients(canvas, l)
	renderBands(canvas, l, r.hover)
	renderNodes(canvas, l, r.hover)
	if r.labels {
		renderLabels(canvas, l, r.fontSize)
	}
	if r.interactive {
		canvas.Script("application/javascript", bandInteractionJS)
	}

	canvas.End()
	return buf.Bytes()
}

func newSVGRenderer(l layout.Layout, opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:       l.Frame.Right + l.Frame.Left,
		height:      l.Frame.Bottom + l.Frame.Top,
		labels:      true,
		interactive: true,
		fontSize:    12,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func gradientID(i int) string { return "band-gradient-" + strconv.Itoa(i) }

func hasGradient(b *layout.FlowBand) bool { return b.ColorFrom != b.ColorTo }

func renderGradients(canvas *svg.SVG, l layout.Layout) {
	var x2, y2 uint8 = 100, 0
	if l.Orientation == geom.Vertical {
		x2, y2 = 0, 100
	}
	opened := false
	for i, b := range l.Bands {
		if b == nil || !hasGradient(b) {
			continue
		}
		if !opened {
			canvas.Def()
			opened = true
		}
		canvas.LinearGradient(gradientID(i), 0, 0, x2, y2, []svg.Offcolor{
			stop(0, b.ColorFrom),
			stop(100, b.ColorTo),
		})
	}
	if opened {
		canvas.DefEnd()
	}
}

func stop(offset uint8, c string) svg.Offcolor {
	if col, a, ok := paint.Parse(c); ok {
		return svg.Offcolor{Offset: offset, Color: col.Hex(), Opacity: a}
	}
	// svgo writes stop-color unescaped.
	if errors.ValidateColor(c) != nil {
		c = paint.DefaultColor
	}
	return svg.Offcolor{Offset: offset, Color: c, Opacity: 1}
}

func renderBands(canvas *svg.SVG, l layout.Layout, hover *HoverState) {
	canvas.Gid("bands")
	for i, b := range l.Bands {
		if b == nil {
			continue
		}
		fill := b.Color
		if hasGradient(b) {
			fill = "url(#" + gradientID(i) + ")"
		}
		class := "band"
		if hover.highlighted(i, b.From, b.To) {
			class += " highlight"
			fill = b.HoverColor
		}
		canvas.Group(
			`id="band-`+strconv.Itoa(i)+`"`,
			`class="`+class+`"`,
			attr("data-from", b.From),
			attr("data-to", b.To),
		)
		canvas.Title(fmt.Sprintf("%s → %s: %s", b.From, b.To, formatValue(b.Value)))
		canvas.Path(bandRibbon(b, l.Orientation).svgPath(), attr("fill", fill))
		canvas.Gend()
	}
	canvas.Gend()
}

func renderNodes(canvas *svg.SVG, l layout.Layout, hover *HoverState) {
	if l.Graph == nil {
		return
	}
	hovered, _ := hover.Node()
	canvas.Gid("nodes")
	for _, id := range l.Graph.NodeIDs() {
		n, ok := l.Nodes[id]
		if !ok {
			continue
		}
		class := "node"
		if id == hovered {
			class += " highlight"
		}
		canvas.Group(`class="`+class+`"`, attr("data-node", id))
		canvas.Title(fmt.Sprintf("%s: %s", id, formatValue(n.Value)))
		canvas.Rect(n.X, n.Y, n.Width, n.Height, attr("fill", l.NodeColor(id)))
		canvas.Gend()
	}
	canvas.Gend()
}

func renderLabels(canvas *svg.SVG, l layout.Layout, fontSize float64) {
	if l.Graph == nil {
		return
	}
	canvas.Gid("labels")
	for _, id := range l.Graph.NodeIDs() {
		n, ok := l.Nodes[id]
		if !ok {
			continue
		}
		x, y, anchor := labelAnchor(l, n, fontSize)
		canvas.Text(x, y, id,
			`class="label"`,
			`font-size="`+num(fontSize)+`"`,
			`text-anchor="`+anchor+`"`,
			`dominant-baseline="middle"`)
	}
	canvas.Gend()
}

// labelAnchor places a label beside its node, facing the middle of the
// diagram so that labels of the outer columns stay inside the frame.
func labelAnchor(l layout.Layout, n layout.NodeGeometry, fontSize float64) (x, y float64, anchor string) {
	gap := fontSize / 2
	if l.Orientation == geom.Vertical {
		x = n.X + n.Width/2
		if n.Y+n.Height/2 < (l.Frame.Top+l.Frame.Bottom)/2 {
			return x, n.Y + n.Height + gap + fontSize/2, "middle"
		}
		return x, n.Y - gap - fontSize/2, "middle"
	}
	y = n.Y + n.Height/2
	if n.X+n.Width/2 < (l.Frame.Left+l.Frame.Right)/2 {
		return n.X + n.Width + gap, y, "start"
	}
	return n.X - gap, y, "end"
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// attr formats an XML attribute with an escaped value.
func attr(name, value string) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(`="`)
	_ = xml.EscapeText(&sb, []byte(value))
	sb.WriteString(`"`)
	return sb.String()
}
