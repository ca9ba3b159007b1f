package pipeline

import (
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// GenerateLayout computes the diagram for edges with the layout settings in
// opts. Layout never fails on its input; only invalid settings are errors.
func GenerateLayout(edges []flow.Edge, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	layoutOpts, err := opts.Diagram.LayoutOptions()
	if err != nil {
		return layout.Layout{}, err
	}
	layoutOpts = append(layoutOpts, layout.WithLogger(opts.Logger))

	l := layout.Build(edges, opts.Diagram.Rect(), layoutOpts...)
	if len(l.Cycles) > 0 {
		opts.Logger.Warn("input has cycles", "groups", len(l.Cycles), "first", l.Cycles[0])
	}
	return l, nil
}
