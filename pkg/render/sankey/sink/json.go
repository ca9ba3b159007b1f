package sink

import (
	"github.com/goccy/go-json"

	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id      string
	compact bool
}

// WithJSONID sets the document ID instead of a random one, so that repeated
// renders of one diagram are byte-identical.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON exports the layout as a [graph.Layout] document. The output
// can be read back with [graph.UnmarshalLayout] and redrawn or hit-tested
// without recomputing the layout.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := graph.FromLayout(l)
	if r.id != "" {
		out.ID = r.id
	}
	if r.compact {
		return json.Marshal(out)
	}
	return graph.MarshalLayout(out)
}
