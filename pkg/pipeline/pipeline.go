// Package pipeline runs the read → layout → render pipeline behind the CLI
// and the HTTP API.
//
// Centralizing the stages keeps both entry points consistent: the same
// defaults, the same validation and the same cache keys.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Decode edges from a JSON or CSV document, or take them inline
//  2. Layout: Compute node rectangles and flow bands
//  3. Render: Generate output in the requested formats (SVG, PNG, JSON, DOT)
//
// Layouts are cached under a hash of the input edges and every layout
// setting; rendered artifacts are cached per format.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "budget.json",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := pipeline.Read(opts)
//	l, doc, hit, err := runner.ComputeLayout(ctx, edges, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/config"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	// FormatDOT is the Graphviz source of the node-link view.
	FormatDOT = "dot"
	// FormatNodelink is the node-link view rendered to SVG by Graphviz.
	FormatNodelink = "nodelink"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Edges take precedence over Input.
	Input string       `json:"input,omitempty"` // path to a .json or .csv document
	Edges []graph.Edge `json:"edges,omitempty"`

	// Layout options. Unset fields fall back to the document's config,
	// then to Defaults and finally to config.Default.
	Diagram  config.Diagram  `json:"config"`
	Defaults *config.Diagram `json:"-"` // e.g. the user's config file

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	NoLabels   bool     `json:"no_labels,omitempty"`
	Static     bool     `json:"static,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // value labels on DOT edges
	Background string   `json:"background,omitempty"`
	Title      string   `json:"title,omitempty"`
	HoverNode  string   `json:"hover_node,omitempty"`
	HoverBand  *int     `json:"hover_band,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// layoutReady tracks whether SetLayoutDefaults has been called.
	layoutReady bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed geometry.
	Layout layout.Layout

	// Document is the serialized layout, as written by the JSON format.
	Document graph.Layout

	// InputHash fingerprints the input edges.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EdgeCount    int // input edges, dropped ones included
	DroppedEdges int
	NodeCount    int
	ColumnCount  int
	Crossings    int
	ReadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all cacheable artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, png, json, dot, nodelink)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForRead checks that there is something to read.
func (o *Options) ValidateForRead() error {
	if o.Input == "" && o.Edges == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file or edges required")
	}
	if err := (graph.Document{Edges: o.Edges}).Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ApplyDocument fills unset layout settings from a document's config.
// It must run before SetLayoutDefaults.
func (o *Options) ApplyDocument(d graph.Document) {
	if d.Config != nil && !o.layoutReady {
		o.Diagram = d.Config.Merge(o.Diagram)
	}
}

// SetLayoutDefaults fills unset layout settings from Defaults and
// config.Default. This method is idempotent.
func (o *Options) SetLayoutDefaults() {
	if !o.layoutReady {
		base := config.Default()
		if o.Defaults != nil {
			base = base.Merge(*o.Defaults)
		}
		o.Diagram = base.Merge(o.Diagram)
		o.layoutReady = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and validates the layout settings.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Diagram.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateDimension("scale", o.Scale, true); err != nil {
		return err
	}
	if o.Background != "" {
		if err := errors.ValidateColor(o.Background); err != nil {
			return err
		}
	}
	return nil
}

// Wants reports whether format is among the requested formats.
func (o *Options) Wants(format string) bool {
	return slices.Contains(o.Formats, format)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	d := o.Diagram
	return cache.LayoutKeyOpts{
		Orientation:  d.Orientation,
		ColorMode:    d.ColorMode,
		Ordering:     d.Ordering,
		NodeWidth:    d.NodeWidth,
		NodePadding:  d.EffectiveNodePadding(),
		Width:        d.Width,
		Height:       d.Height,
		Margin:       d.EffectiveMargin(),
		DefaultColor: d.DefaultColor,
		Pins:         d.Pins,
		NodeColors:   d.NodeColors,
		Palette:      d.Palette,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Labels:     !o.NoLabels,
		Background: o.Background,
	}
	switch format {
	case FormatSVG:
		k.Static = o.Static
		k.Title = o.Title
	case FormatPNG:
		k.Scale = o.Scale
	case FormatNodelink:
		k.Detailed = o.Detailed
	}
	return k
}

// cacheable reports whether a format's output is worth caching. JSON and
// DOT are cheap to produce; JSON also carries the per-run document ID.
func cacheable(format string) bool {
	return format == FormatSVG || format == FormatPNG || format == FormatNodelink
}

// hovered reports whether the options select anything to highlight.
func (o *Options) hovered() bool {
	return o.HoverNode != "" || o.HoverBand != nil
}
