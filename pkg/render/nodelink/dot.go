package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
	"github.com/matzehuels/sankey/pkg/render/sankey/paint"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds level and totals to node labels and weights to edges.
	// When false, only the node ID is shown.
	Detailed bool

	// MaxPenWidth is the stroke width of the heaviest edge. Zero means 8.
	MaxPenWidth float64
}

// ToDOT converts a computed layout to Graphviz DOT. Nodes of one column
// share a rank in the column's order, and edge stroke widths are
// proportional to their weight, so Graphviz draws a node-link version of
// the Sankey diagram.
func ToDOT(l layout.Layout, opts Options) string {
	maxPen := opts.MaxPenWidth
	if maxPen <= 0 {
		maxPen = 8
	}
	rankdir := "LR"
	if l.Orientation == geom.Vertical {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if l.Graph == nil {
		buf.WriteString("}\n")
		return buf.String()
	}
	buf.WriteString("\n")

	for _, id := range l.Graph.NodeIDs() {
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(nodeAttrs(l, id, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, lvl := range l.Columns.Levels() {
		ids := make([]string, len(l.Columns[lvl]))
		for i, id := range l.Columns[lvl] {
			ids[i] = strconv.Quote(id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	heaviest := 0.0
	for _, b := range l.Bands {
		if b != nil {
			heaviest = math.Max(heaviest, b.Value)
		}
	}

	buf.WriteString("\n")
	for _, b := range l.Bands {
		if b == nil {
			continue
		}
		pen := math.Max(1, b.Value/heaviest*maxPen)
		attrs := []string{
			fmt.Sprintf("penwidth=%s", strconv.FormatFloat(math.Round(pen*100)/100, 'f', -1, 64)),
			fmt.Sprintf("color=%q", dotColor(b.Color)),
		}
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(b.Value, 'g', -1, 64)))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", b.From, b.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(l layout.Layout, id string, detailed bool) string {
	if !detailed {
		return id
	}
	n, _ := l.Graph.Node(id)
	level, _ := l.Levels.Get(id)
	return fmt.Sprintf("%s\nlevel: %d\nin: %g\nout: %g", id, level, n.Incoming, n.Outgoing)
}

func nodeAttrs(l layout.Layout, id string, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(l, id, detailed))}
	if c, ok := l.NodeColors[id]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", dotColor(c)))
	}
	return attrs
}

// dotColor converts a CSS color to the #rrggbb[aa] form Graphviz accepts.
func dotColor(s string) string {
	c, a, ok := paint.Parse(s)
	if !ok {
		c, _, _ = paint.Parse(paint.DefaultColor)
		a = 1
	}
	if a >= 1 {
		return c.Clamped().Hex()
	}
	return fmt.Sprintf("%s%02x", c.Clamped().Hex(), uint8(math.Round(a*255)))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with a
// zero-origin viewBox so the output scales like the Sankey SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
