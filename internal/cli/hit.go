package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// hitCommand reports what lies under a point of the rendered diagram.
func (c *CLI) hitCommand() *cobra.Command {
	var flags diagramFlags

	cmd := &cobra.Command{
		Use:   "hit [edges.json|edges.csv|diagram.layout.json] X Y",
		Short: "Report the band and node under a point",
		Long: `Report the flow band and the node under a point, in diagram pixels.

Bands are tested in drawing order, so where bands overlap the one drawn
last (the topmost) is reported.`,
		Example: `  sankey hit budget.layout.json 480 270`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}
			l, err := c.loadDiagram(cmd.Context(), args[0], &flags)
			if err != nil {
				return err
			}
			printHit(l, x, y)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func printHit(l layout.Layout, x, y float64) {
	idx, band, onBand := l.HitTest(x, y)
	node, onNode := l.NodeAt(x, y)
	if !onBand && !onNode {
		printInfo("Nothing at (%g, %g)", x, y)
		return
	}
	if onBand {
		printSuccess("Band %d", idx)
		printKeyValue("flow", band.From+" "+iconArrow+" "+band.To)
		printKeyValue("value", formatValue(band.Value))
		printKeyValue("color", band.Color)
	}
	if onNode {
		n, _ := l.Graph.Node(node)
		printSuccess("Node %s", node)
		printKeyValue("column", strconv.Itoa(l.Levels.Level(node)))
		printKeyValue("value", formatValue(n.Value))
	}
}
