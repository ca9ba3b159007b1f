package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/pipeline"
)

// renderFlags holds the render-only options.
type renderFlags struct {
	formats    string
	output     string
	noCache    bool
	refresh    bool
	watch      bool
	scale      float64
	noLabels   bool
	static     bool
	detailed   bool
	background string
	title      string
	hoverNode  string
	hoverBand  int
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		rf    renderFlags
		flags diagramFlags
	)

	cmd := &cobra.Command{
		Use:   "render [edges.json|edges.csv|diagram.layout.json]",
		Short: "Render flow edges or a layout document",
		Long: `Render flow edges or a precomputed layout document.

Output formats:
  svg       Interactive SVG with hover highlighting (default)
  png       Raster image
  json      Layout document, readable by render, hit and inspect
  dot       Graphviz source of the node-link view
  nodelink  Node-link view rendered by Graphviz

Layout flags are ignored for .layout.json input: its geometry is fixed.
With --watch the input is re-rendered whenever it changes.`,
		Example: `  sankey render budget.json
  sankey render budget.csv -f svg,png --scale 3
  sankey render budget.layout.json -f png -o out.png
  sankey render budget.json --hover-node Rent --static`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(args[0], &flags)
			if err != nil {
				return err
			}
			rf.apply(&opts, cmd.Flags().Changed("hover-band"))

			ctx := cmd.Context()
			if !rf.watch {
				return c.runRender(ctx, opts, rf)
			}
			return c.watchRender(ctx, opts, rf)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&rf.formats, "format", "f", "", "output formats, comma-separated: svg, png, json, dot, nodelink (default svg)")
	fl.StringVarP(&rf.output, "output", "o", "", "output file (single format) or base path (- for stdout)")
	fl.BoolVar(&rf.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&rf.refresh, "refresh", false, "recompute even when cached")
	fl.BoolVarP(&rf.watch, "watch", "w", false, "re-render when the input changes")
	fl.Float64Var(&rf.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fl.BoolVar(&rf.noLabels, "no-labels", false, "omit node labels")
	fl.BoolVar(&rf.static, "static", false, "SVG without hover styles and script")
	fl.BoolVar(&rf.detailed, "detailed", false, "show values in the node-link view")
	fl.StringVar(&rf.background, "background", "", "background color (default transparent)")
	fl.StringVar(&rf.title, "title", "", "SVG title")
	fl.StringVar(&rf.hoverNode, "hover-node", "", "highlight the bands touching a node")
	fl.IntVar(&rf.hoverBand, "hover-band", 0, "highlight the band of an edge index")
	flags.register(cmd)

	return cmd
}

func (rf renderFlags) apply(opts *pipeline.Options, hoverBand bool) {
	opts.Formats = parseFormats(rf.formats)
	opts.Refresh = rf.refresh
	opts.Scale = rf.scale
	opts.NoLabels = rf.noLabels
	opts.Static = rf.static
	opts.Detailed = rf.detailed
	opts.Background = rf.background
	opts.Title = rf.title
	opts.HoverNode = rf.hoverNode
	if hoverBand {
		i := rf.hoverBand
		opts.HoverBand = &i
	}
}

// runRender renders once and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, rf renderFlags) error {
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	if rf.output == "-" && len(opts.Formats) > 1 {
		return fmt.Errorf("-o - needs a single format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	rendering := "Rendering " + strings.Join(opts.Formats, ", ") + "..."
	spinner := newSpinnerWithContext(ctx, rendering)
	spinner.Start()

	var (
		artifacts map[string][]byte
		summary   diagramStats
		cached    bool
	)
	if isLayoutFile(opts.Input) {
		spinner.Update("Reading " + filepath.Base(opts.Input) + "...")
		artifacts, summary, cached, err = renderLayoutFile(ctx, runner, opts, func() { spinner.Update(rendering) })
	} else {
		var res *pipeline.Result
		res, err = runner.Execute(ctx, opts)
		if err == nil {
			artifacts = res.Artifacts
			summary = layoutStats(res.Layout, res.Stats.EdgeCount)
			cached = res.CacheInfo.LayoutHit && (res.CacheInfo.RenderHit || !anyOf(opts.Formats, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatNodelink))
		}
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	single := len(opts.Formats) == 1
	var written []string
	for _, format := range opts.Formats {
		path := outputPath(rf.output, opts.Input, format, single)
		if samePath(path, opts.Input) {
			return fmt.Errorf("output %s would overwrite the input; pass -o", path)
		}
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}
	if rf.output == "-" {
		return nil
	}

	printSuccess("Rendered %d %s", len(written), plural(len(written), "file", "files"))
	for i, path := range written {
		printArtifact(path, len(artifacts[opts.Formats[i]]))
	}
	printStats(summary, cached)
	return nil
}

// renderLayoutFile renders a stored layout document without recomputing
// it.
func renderLayoutFile(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, onRead func()) (map[string][]byte, diagramStats, bool, error) {
	doc, err := graph.ReadLayoutFile(opts.Input)
	if err != nil {
		return nil, diagramStats{}, false, err
	}
	onRead()
	l, err := graph.ToLayout(doc)
	if err != nil {
		return nil, diagramStats{}, false, err
	}
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, l, doc, opts)
	if err != nil {
		return nil, diagramStats{}, false, err
	}
	return artifacts, layoutStats(l, doc.EdgeCount), hit, nil
}

// watchRender renders, then renders again after every change to the
// input. Render errors are reported and watching continues.
func (c *CLI) watchRender(ctx context.Context, opts pipeline.Options, rf renderFlags) error {
	if rf.output == "-" {
		return fmt.Errorf("--watch cannot write to stdout")
	}
	prog := newProgress(c.Logger)
	render := func() {
		prog.restart()
		if err := c.runRender(ctx, opts, rf); err != nil {
			printError("%v", err)
			return
		}
		prog.done("rendered " + opts.Input)
	}

	render()
	printNewline()
	printInfo("Watching %s (Ctrl+C to stop)", opts.Input)
	return watchFile(ctx, opts.Input, render)
}

func anyOf(formats []string, want ...string) bool {
	for _, f := range formats {
		for _, w := range want {
			if f == w {
				return true
			}
		}
	}
	return false
}

func samePath(a, b string) bool {
	if a == "-" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
