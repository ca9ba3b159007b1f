package pipeline

import (
	"testing"

	"github.com/matzehuels/sankey/pkg/config"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/graph"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"nodelink", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForRead(t *testing.T) {
	var opts Options
	if err := opts.ValidateForRead(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty options error = %v", err)
	}

	opts = Options{Edges: []graph.Edge{}}
	if err := opts.ValidateForRead(); err != nil {
		t.Errorf("empty edge list should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default not set")
	}

	opts = Options{Edges: []graph.Edge{{From: "a", To: "b", Weight: 1, ColorTo: `blue" onload="x`}}}
	if err := opts.ValidateForRead(); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("edge color error = %v", err)
	}
}

func TestOptionsLayoutDefaults(t *testing.T) {
	opts := Options{Diagram: config.Diagram{Orientation: "vertical"}}
	opts.SetLayoutDefaults()

	if opts.Diagram.Orientation != "vertical" {
		t.Errorf("Orientation = %q, explicit value lost", opts.Diagram.Orientation)
	}
	if opts.Diagram.Width != config.DefaultWidth || opts.Diagram.Height != config.DefaultHeight {
		t.Errorf("size = %gx%g", opts.Diagram.Width, opts.Diagram.Height)
	}

	// Idempotent: a document applied afterwards no longer changes anything.
	opts.ApplyDocument(graph.Document{Config: &config.Diagram{Width: 100}})
	opts.SetLayoutDefaults()
	if opts.Diagram.Width != config.DefaultWidth {
		t.Errorf("Width = %g after late ApplyDocument", opts.Diagram.Width)
	}
}

func TestOptionsApplyDocument(t *testing.T) {
	opts := Options{Diagram: config.Diagram{Height: 300}}
	opts.ApplyDocument(graph.Document{Config: &config.Diagram{Width: 400, Height: 200, ColorMode: "gradient"}})
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}

	d := opts.Diagram
	if d.Width != 400 || d.Height != 300 || d.ColorMode != "gradient" {
		t.Errorf("Diagram = %+v; want width from document, height from options", d)
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{Diagram: config.Diagram{Orientation: "diagonal"}}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Errorf("error = %v", err)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("defaults should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g", opts.Scale)
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"scale", Options{Scale: -1}, errors.ErrCodeInvalidDimension},
		{"background", Options{Background: "<red>"}, errors.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateForRender(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 3, Static: true, Title: "t", Detailed: true}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if !svg.Static || svg.Title != "t" || svg.Scale != 0 || svg.Detailed {
		t.Errorf("svg key opts = %+v", svg)
	}
	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.Scale != 3 || png.Static || png.Title != "" {
		t.Errorf("png key opts = %+v", png)
	}
	nl := opts.ArtifactKeyOpts(FormatNodelink)
	if !nl.Detailed {
		t.Errorf("nodelink key opts = %+v", nl)
	}
}

func TestLayoutKeyOptsTrackDiagram(t *testing.T) {
	a := Options{}
	a.SetLayoutDefaults()
	b := Options{Diagram: config.Diagram{Orientation: "vertical"}}
	b.SetLayoutDefaults()

	if a.LayoutKeyOpts().Orientation == b.LayoutKeyOpts().Orientation {
		t.Error("orientation not part of layout key")
	}
}

func TestOptionsDefaultsPrecedence(t *testing.T) {
	opts := Options{
		Diagram:  config.Diagram{Height: 300},
		Defaults: &config.Diagram{Width: 500, Height: 100, NodeWidth: 12},
	}
	opts.ApplyDocument(graph.Document{Config: &config.Diagram{Width: 400}})
	opts.SetLayoutDefaults()

	d := opts.Diagram
	if d.Width != 400 || d.Height != 300 || d.NodeWidth != 12 {
		t.Errorf("Diagram = %+v; want document over defaults and options over both", d)
	}
}
