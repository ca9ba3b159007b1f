package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/config"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/pipeline"
)

// diagramFlags binds layout settings to flags. Unset flags stay zero so
// that the document and config file values show through.
type diagramFlags struct {
	d       config.Diagram
	margin  float64
	padding float64
	pins    map[string]int
	colors  map[string]string
	cmd     *cobra.Command
}

func (f *diagramFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	fl := cmd.Flags()
	fl.StringVar(&f.d.Orientation, "orientation", "", "horizontal (default) or vertical")
	fl.StringVar(&f.d.ColorMode, "color-mode", "", "band coloring: default, from, to or gradient")
	fl.StringVar(&f.d.Ordering, "ordering", "", "node ordering within columns: barycentric (default) or none")
	fl.Float64Var(&f.d.Width, "width", 0, fmt.Sprintf("canvas width (default %g)", config.DefaultWidth))
	fl.Float64Var(&f.d.Height, "height", 0, fmt.Sprintf("canvas height (default %g)", config.DefaultHeight))
	fl.Float64Var(&f.margin, "margin", 0, fmt.Sprintf("canvas margin (default %g)", config.DefaultMargin))
	fl.Float64Var(&f.d.NodeWidth, "node-width", 0, "node thickness along the flow")
	fl.Float64Var(&f.padding, "node-padding", 0, "gap between nodes in a column")
	fl.StringVar(&f.d.DefaultColor, "color", "", "band color when an edge has none")
	fl.StringToIntVar(&f.pins, "pin", nil, "pin nodes to columns (name=column,...)")
	fl.StringToStringVar(&f.colors, "node-color", nil, "node colors (name=color,...)")
	fl.StringSliceVar(&f.d.Palette, "palette", nil, `node palette colors, or "default"`)
}

// diagram returns the settings given on the command line.
func (f *diagramFlags) diagram() config.Diagram {
	d := f.d
	// Zero is a valid margin and padding, so these count as set only when
	// given on the command line.
	if f.changed("margin") {
		d.Margin = config.Float(f.margin)
	}
	if f.changed("node-padding") {
		d.NodePadding = config.Float(f.padding)
	}
	if len(f.pins) > 0 {
		d.Pins = make(map[string]flow.Pin, len(f.pins))
		for id, col := range f.pins {
			d.Pins[id] = flow.Pin{Column: col}
		}
	}
	if len(f.colors) > 0 {
		d.NodeColors = f.colors
	}
	return d
}

func (f *diagramFlags) changed(name string) bool {
	return f.cmd != nil && f.cmd.Flags().Changed(name)
}

// options builds pipeline options for input with the user's config file
// below the document and the flags above it.
func (c *CLI) options(input string, f *diagramFlags) (pipeline.Options, error) {
	base, err := c.userConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Input:    input,
		Diagram:  f.diagram(),
		Defaults: &base,
		Logger:   c.Logger,
	}, nil
}

// isLayoutFile reports whether path names a computed layout document
// rather than input edges.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".layout.json")
}

// basePath derives the base output path from the output and input file
// paths. Known format extensions are stripped.
func basePath(output, input string) string {
	p := output
	if p == "" {
		p = input
	}
	if isLayoutFile(p) {
		return p[:len(p)-len(".layout.json")]
	}
	ext := filepath.Ext(p)
	if output == "" || pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(p, ext)
	}
	return p
}

// outputPath names the file for one format. Single-format renders use
// output as given.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	ext := format
	switch format {
	case pipeline.FormatJSON:
		ext = "layout.json"
	case pipeline.FormatNodelink:
		ext = "nodelink.svg"
	}
	return basePath(output, input) + "." + ext
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
