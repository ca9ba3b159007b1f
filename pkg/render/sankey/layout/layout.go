package layout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/flow/transform"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/ordering"
	"github.com/matzehuels/sankey/pkg/render/sankey/paint"
)

// Layout is the complete geometry of one diagram.
type Layout struct {
	Graph   *flow.Graph
	Levels  *flow.LevelMap
	Columns flow.Columns

	// Nodes maps node IDs to their rectangles.
	Nodes map[string]NodeGeometry
	// NodeColors is nil when neither explicit node colors nor a palette
	// were configured.
	NodeColors map[string]string
	// Bands is aligned with the input edges; invalid edges are nil.
	Bands []*FlowBand

	Orientation geom.Orientation
	Frame       geom.Rect
	NodeWidth   float64

	// Crossings is the band crossing count between adjacent columns after
	// ordering.
	Crossings int
	// Cycles lists cyclic node groups. Cycles are legal input.
	Cycles [][]string
}

type options struct {
	orientation geom.Orientation
	nodeWidth   float64
	nodePadding float64
	pins        map[string]flow.Pin
	mode        ColorMode
	nodeColors  map[string]string
	palette     []string
	color       string
	orderer     ordering.Orderer
	logger      *log.Logger
}

// Option configures [Build].
type Option func(*options)

func WithOrientation(o geom.Orientation) Option { return func(c *options) { c.orientation = o } }

// WithNodeWidth sets the level-axis extent of every node.
func WithNodeWidth(w float64) Option { return func(c *options) { c.nodeWidth = w } }

// WithNodePadding sets the gap between nodes stacked in one column.
func WithNodePadding(p float64) Option { return func(c *options) { c.nodePadding = p } }

// WithPins forces nodes into fixed columns. Unknown IDs and negative columns
// are ignored.
func WithPins(pins map[string]flow.Pin) Option { return func(c *options) { c.pins = pins } }

func WithColorMode(m ColorMode) Option { return func(c *options) { c.mode = m } }

// WithNodeColors sets explicit node colors. Nodes not in m take palette
// colors when a palette is set.
func WithNodeColors(m map[string]string) Option { return func(c *options) { c.nodeColors = m } }

// WithPalette assigns colors round-robin, in first-seen node order, to
// nodes without an explicit color.
func WithPalette(p []string) Option { return func(c *options) { c.palette = p } }

// WithDefaultColor sets the band color used when no other rule applies.
func WithDefaultColor(s string) Option { return func(c *options) { c.color = s } }

// WithOrderer replaces the crossing reducer. The default is
// [ordering.Barycentric].
func WithOrderer(o ordering.Orderer) Option { return func(c *options) { c.orderer = o } }

func WithLogger(l *log.Logger) Option { return func(c *options) { c.logger = l } }

// Build runs the whole layout for edges inside rect: graph construction,
// level assignment, grouping, crossing reduction, node positioning and band
// routing. It holds no state between calls and never fails; input without a
// valid edge produces an empty layout.
func Build(edges []flow.Edge, rect geom.Rect, opts ...Option) Layout {
	cfg := options{
		nodeWidth:   DefaultNodeWidth,
		nodePadding: DefaultNodePadding,
		color:       paint.DefaultColor,
		orderer:     ordering.Barycentric{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	start := time.Now()

	g := flow.Build(edges)
	levels := transform.AssignLevels(g, cfg.pins)
	cols := transform.GroupByLevel(levels)
	cfg.orderer.Reduce(g, cols)

	var nodeColors map[string]string
	if cfg.nodeColors != nil || len(cfg.palette) > 0 {
		nodeColors = paint.Assign(g.NodeIDs(), cfg.nodeColors, cfg.palette)
	}

	nodes := PositionNodes(g, levels, cols, cfg.orientation, rect, cfg.nodeWidth, cfg.nodePadding)
	bands := RouteBands(g, nodes, cfg.orientation, Colors{
		Mode:       cfg.mode,
		NodeColors: nodeColors,
		Default:    cfg.color,
	})

	l := Layout{
		Graph:       g,
		Levels:      levels,
		Columns:     cols,
		Nodes:       nodes,
		NodeColors:  nodeColors,
		Bands:       bands,
		Orientation: cfg.orientation,
		Frame:       rect,
		NodeWidth:   cfg.nodeWidth,
		Crossings:   flow.CountCrossings(g, cols),
		Cycles:      transform.FindCycles(g),
	}
	if len(l.Cycles) > 0 {
		logger.Debug("graph has cycles", "groups", len(l.Cycles))
	}
	logger.Debug("layout built",
		"nodes", g.NodeCount(),
		"edges", g.ValidEdgeCount(),
		"dropped", g.EdgeCount()-g.ValidEdgeCount(),
		"columns", len(cols),
		"crossings", l.Crossings,
		"duration", time.Since(start))
	return l
}

// HitTest returns the index and band under (x, y). Bands drawn later lie on
// top, so the last containing band wins.
func (l Layout) HitTest(x, y float64) (int, *FlowBand, bool) {
	for i := len(l.Bands) - 1; i >= 0; i-- {
		b := l.Bands[i]
		if b != nil && b.Geometry(l.Orientation).ContainsPoint(x, y) {
			return i, b, true
		}
	}
	return -1, nil, false
}

// NodeAt returns the node whose rectangle contains (x, y).
func (l Layout) NodeAt(x, y float64) (string, bool) {
	if l.Graph == nil {
		return "", false
	}
	ids := l.Graph.NodeIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		if n, ok := l.Nodes[ids[i]]; ok && n.Contains(x, y) {
			return ids[i], true
		}
	}
	return "", false
}

// NodeColor returns the resolved color of a node, or the default color.
func (l Layout) NodeColor(id string) string {
	if c, ok := l.NodeColors[id]; ok {
		return c
	}
	return paint.DefaultColor
}

// ColumnCount returns the number of column slots, including empty pinned
// gaps.
func (l Layout) ColumnCount() int {
	if l.Levels == nil || l.Levels.Len() == 0 {
		return 0
	}
	return l.Levels.Max() + 1
}
