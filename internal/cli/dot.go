package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/render/nodelink"
)

// dotCommand prints the Graphviz source of the node-link view.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		flags    diagramFlags
	)

	cmd := &cobra.Command{
		Use:   "dot [edges.json|edges.csv|diagram.layout.json]",
		Short: "Print the Graphviz source of the node-link view",
		Long: `Print the diagram as Graphviz DOT: one rank per column, edge widths
proportional to flow. Pipe it into dot(1) for layouts Graphviz supports
beyond 'render -f nodelink'.`,
		Example:           `  sankey dot budget.json | dot -Tpdf -o budget.pdf`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadDiagram(cmd.Context(), args[0], &flags)
			if err != nil {
				return err
			}
			src := nodelink.ToDOT(l, nodelink.Options{Detailed: detailed})
			if output == "" {
				output = "-"
			}
			return writeOutput(output, []byte(src))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add levels, totals and weights to labels")
	flags.register(cmd)

	return cmd
}
