package graph

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// =============================================================================
// Layout - Serialized Diagram Geometry
// =============================================================================

// Layout is the serialization format of a computed diagram. It is what the
// JSON sink writes, what the cache stores and what the API returns.
//
// Nodes are listed in level-assignment order and Bands in input edge order;
// both orders are needed to rebuild an identical [layout.Layout].
type Layout struct {
	ID          string  `json:"id,omitempty" bson:"_id,omitempty"`
	Orientation string  `json:"orientation" bson:"orientation"`
	Frame       Frame   `json:"frame" bson:"frame"`
	NodeWidth   float64 `json:"node_width" bson:"node_width"`

	Nodes   []Node   `json:"nodes" bson:"nodes"`
	Bands   []Band   `json:"bands" bson:"bands"`
	Columns []Column `json:"columns" bson:"columns"`

	// EdgeCount is the number of input edges, dropped ones included.
	EdgeCount int        `json:"edge_count" bson:"edge_count"`
	Crossings int        `json:"crossings" bson:"crossings"`
	Cycles    [][]string `json:"cycles,omitempty" bson:"cycles,omitempty"`
}

// Frame is the drawing area in pixels.
type Frame struct {
	Left   float64 `json:"left" bson:"left"`
	Top    float64 `json:"top" bson:"top"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
}

// Node is a positioned node.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Level    int     `json:"level" bson:"level"`
	Incoming float64 `json:"incoming" bson:"incoming"`
	Outgoing float64 `json:"outgoing" bson:"outgoing"`
	Value    float64 `json:"value" bson:"value"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	Color    string  `json:"color,omitempty" bson:"color,omitempty"` // set only when node colors were configured
}

// Band is a routed flow band. Index is the position of its edge in the input.
type Band struct {
	Index      int     `json:"index" bson:"index"`
	From       string  `json:"from" bson:"from"`
	To         string  `json:"to" bson:"to"`
	Value      float64 `json:"value" bson:"value"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	X2         float64 `json:"x2" bson:"x2"`
	Y2         float64 `json:"y2" bson:"y2"`
	Height     float64 `json:"height" bson:"height"`
	Height2    float64 `json:"height2" bson:"height2"`
	Color      string  `json:"color" bson:"color"`
	ColorFrom  string  `json:"color_from" bson:"color_from"`
	ColorTo    string  `json:"color_to" bson:"color_to"`
	HoverColor string  `json:"hover_color" bson:"hover_color"`
}

// Column is one level with its nodes in drawing order.
type Column struct {
	Level int      `json:"level" bson:"level"`
	Nodes []string `json:"nodes" bson:"nodes"`
}

// =============================================================================
// layout.Layout ↔ Layout Conversion
// =============================================================================

// FromLayout converts a computed layout to its serialization format and
// gives it a fresh ID.
func FromLayout(l layout.Layout) Layout {
	out := Layout{
		ID:          uuid.NewString(),
		Orientation: l.Orientation.String(),
		Frame:       Frame{Left: l.Frame.Left, Top: l.Frame.Top, Right: l.Frame.Right, Bottom: l.Frame.Bottom},
		NodeWidth:   l.NodeWidth,
		Nodes:       []Node{},
		Bands:       []Band{},
		Columns:     []Column{},
		EdgeCount:   len(l.Bands),
		Crossings:   l.Crossings,
		Cycles:      l.Cycles,
	}

	if l.Levels != nil {
		for _, id := range l.Levels.IDs() {
			n, _ := l.Graph.Node(id)
			g := l.Nodes[id]
			out.Nodes = append(out.Nodes, Node{
				ID:       id,
				Level:    l.Levels.Level(id),
				Incoming: n.Incoming,
				Outgoing: n.Outgoing,
				Value:    n.Value,
				X:        g.X,
				Y:        g.Y,
				Width:    g.Width,
				Height:   g.Height,
				Color:    l.NodeColors[id],
			})
		}
	}

	for i, b := range l.Bands {
		if b == nil {
			continue
		}
		out.Bands = append(out.Bands, Band{
			Index:      i,
			From:       b.From,
			To:         b.To,
			Value:      b.Value,
			X:          b.X,
			Y:          b.Y,
			X2:         b.X2,
			Y2:         b.Y2,
			Height:     b.Height,
			Height2:    b.Height2,
			Color:      b.Color,
			ColorFrom:  b.ColorFrom,
			ColorTo:    b.ColorTo,
			HoverColor: b.HoverColor,
		})
	}

	for _, lvl := range l.Columns.Levels() {
		out.Columns = append(out.Columns, Column{Level: lvl, Nodes: append([]string(nil), l.Columns[lvl]...)})
	}
	return out
}

// ToLayout rebuilds a computed layout. Dropped input edges come back as
// zero edges so that band indices keep their meaning.
func ToLayout(d Layout) (layout.Layout, error) {
	if err := d.Validate(); err != nil {
		return layout.Layout{}, err
	}
	o, _ := geom.ParseOrientation(d.Orientation)

	edges := make([]flow.Edge, d.EdgeCount)
	bands := make([]*layout.FlowBand, d.EdgeCount)
	for _, b := range d.Bands {
		edges[b.Index] = flow.Edge{
			From:       b.From,
			To:         b.To,
			Weight:     b.Value,
			Color:      b.Color,
			ColorFrom:  b.ColorFrom,
			ColorTo:    b.ColorTo,
			HoverColor: b.HoverColor,
		}
		bands[b.Index] = &layout.FlowBand{
			From:       b.From,
			To:         b.To,
			Value:      b.Value,
			X:          b.X,
			Y:          b.Y,
			X2:         b.X2,
			Y2:         b.Y2,
			Height:     b.Height,
			Height2:    b.Height2,
			Color:      b.Color,
			ColorFrom:  b.ColorFrom,
			ColorTo:    b.ColorTo,
			HoverColor: b.HoverColor,
		}
	}

	levels := flow.NewLevelMap(len(d.Nodes))
	nodes := make(map[string]layout.NodeGeometry, len(d.Nodes))
	var colors map[string]string
	for _, n := range d.Nodes {
		levels.Set(n.ID, n.Level)
		nodes[n.ID] = layout.NodeGeometry{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height, Value: n.Value}
		if n.Color != "" {
			if colors == nil {
				colors = make(map[string]string, len(d.Nodes))
			}
			colors[n.ID] = n.Color
		}
	}

	cols := make(flow.Columns, len(d.Columns))
	for _, c := range d.Columns {
		cols[c.Level] = append([]string(nil), c.Nodes...)
	}

	return layout.Layout{
		Graph:       flow.Build(edges),
		Levels:      levels,
		Columns:     cols,
		Nodes:       nodes,
		NodeColors:  colors,
		Bands:       bands,
		Orientation: o,
		Frame:       geom.Rect{Left: d.Frame.Left, Top: d.Frame.Top, Right: d.Frame.Right, Bottom: d.Frame.Bottom},
		NodeWidth:   d.NodeWidth,
		Crossings:   d.Crossings,
		Cycles:      d.Cycles,
	}, nil
}

// Validate checks the structural invariants ToLayout relies on.
func (d Layout) Validate() error {
	if _, err := geom.ParseOrientation(d.Orientation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrientation, err, "layout orientation")
	}
	if d.EdgeCount < len(d.Bands) {
		return errors.New(errors.ErrCodeInvalidInput, "layout has %d bands but only %d edges", len(d.Bands), d.EdgeCount)
	}
	seen := make(map[int]bool, len(d.Bands))
	for _, b := range d.Bands {
		if b.Index < 0 || b.Index >= d.EdgeCount {
			return errors.New(errors.ErrCodeInvalidInput, "band index %d out of range [0, %d)", b.Index, d.EdgeCount)
		}
		if seen[b.Index] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate band index %d", b.Index)
		}
		seen[b.Index] = true
		if err := validateColors("color", b.Color, "color_from", b.ColorFrom, "color_to", b.ColorTo, "hover_color", b.HoverColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "band %d", b.Index)
		}
	}
	for _, n := range d.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "layout node without id")
		}
		if err := validateColors("color", n.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "node %q", n.ID)
		}
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
