package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// layoutCommand creates the layout command for computing layout documents.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   diagramFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [edges.json|edges.csv]",
		Short: "Compute a layout document from flow edges",
		Long: `Compute a layout document from flow edges.

The input is a JSON document ({"edges": [...], "config": {...}}), a bare JSON
array of edges, or a CSV file with from,to,weight columns. The output is a
.layout.json document (same format as 'render -f json') that 'render', 'hit'
and 'inspect' accept without recomputing the layout.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isLayoutFile(args[0]) {
				return fmt.Errorf("%s is already a layout document", args[0])
			}
			opts, err := c.options(args[0], &flags)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	flags.register(cmd)

	return cmd
}

// runLayout reads the edges, computes the layout, and writes the document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	doc, err := pipeline.Read(opts)
	if err != nil {
		return err
	}
	opts.ApplyDocument(doc)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, exported, cacheHit, err := runner.ComputeLayout(ctx, doc.FlowEdges(), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outPath := output
	if outPath == "" {
		outPath = outputPath("", opts.Input, pipeline.FormatJSON, true)
	}
	data, err := graph.MarshalLayout(exported)
	if err != nil {
		return err
	}
	if err := writeOutput(outPath, data); err != nil {
		return err
	}
	if outPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outPath)
	printStats(layoutStats(l, len(doc.Edges)), cacheHit)
	printCycles(l.Cycles)
	printNewline()
	printNextStep("Render", appName+" render "+outPath)

	return nil
}

// loadDiagram returns the layout for input: read back from a .layout.json
// document, or computed (through the cache) from edges.
func (c *CLI) loadDiagram(ctx context.Context, input string, flags *diagramFlags) (layout.Layout, error) {
	if isLayoutFile(input) {
		doc, err := graph.ReadLayoutFile(input)
		if err != nil {
			return layout.Layout{}, err
		}
		return graph.ToLayout(doc)
	}

	opts, err := c.options(input, flags)
	if err != nil {
		return layout.Layout{}, err
	}
	doc, err := pipeline.Read(opts)
	if err != nil {
		return layout.Layout{}, err
	}
	opts.ApplyDocument(doc)

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, _, _, err := runner.ComputeLayout(ctx, doc.FlowEdges(), opts)
	return l, err
}
