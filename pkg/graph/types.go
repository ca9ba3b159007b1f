package graph

import (
	"github.com/matzehuels/sankey/pkg/config"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
)

// =============================================================================
// Document - Diagram Input
// =============================================================================

// Document is the input format of a diagram: the flow edges plus optional
// settings. Settings given on the command line or in a config file are
// merged over Config by the caller.
type Document struct {
	Edges  []Edge          `json:"edges" bson:"edges"`
	Config *config.Diagram `json:"config,omitempty" bson:"config,omitempty"`
}

// Edge is the wire form of [flow.Edge]. Records with missing endpoints or
// a non-positive weight are kept on decode; the layout drops them.
type Edge struct {
	From       string  `json:"from" bson:"from"`
	To         string  `json:"to" bson:"to"`
	Weight     float64 `json:"weight" bson:"weight"`
	Color      string  `json:"color,omitempty" bson:"color,omitempty"`
	ColorFrom  string  `json:"color_from,omitempty" bson:"color_from,omitempty"`
	ColorTo    string  `json:"color_to,omitempty" bson:"color_to,omitempty"`
	HoverColor string  `json:"hover_color,omitempty" bson:"hover_color,omitempty"`
}

// Validate checks the color fields. Endpoints and weight are not checked
// here because invalid edges are dropped by the layout instead.
func (e Edge) Validate() error {
	return validateColors(
		"color", e.Color,
		"color_from", e.ColorFrom,
		"color_to", e.ColorTo,
		"hover_color", e.HoverColor,
	)
}

// validateColors checks name/value pairs, skipping empty values.
func validateColors(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		if err := errors.ValidateColor(pairs[i+1]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "%s", pairs[i])
		}
	}
	return nil
}

// Flow converts the record to a layout edge.
func (e Edge) Flow() flow.Edge {
	return flow.Edge{
		From:       e.From,
		To:         e.To,
		Weight:     e.Weight,
		Color:      e.Color,
		ColorFrom:  e.ColorFrom,
		ColorTo:    e.ColorTo,
		HoverColor: e.HoverColor,
	}
}

// Validate checks every edge and, when present, the config merged over
// the defaults.
func (d Document) Validate() error {
	for i, e := range d.Edges {
		if err := e.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "edges[%d]", i)
		}
	}
	if d.Config != nil {
		return config.Default().Merge(*d.Config).Validate()
	}
	return nil
}

// FlowEdges converts every record, invalid ones included, so that indices
// line up with the routed bands.
func (d Document) FlowEdges() []flow.Edge {
	out := make([]flow.Edge, len(d.Edges))
	for i, e := range d.Edges {
		out[i] = e.Flow()
	}
	return out
}

// FromFlowEdges builds a document from layout edges.
func FromFlowEdges(edges []flow.Edge) Document {
	d := Document{Edges: make([]Edge, len(edges))}
	for i, e := range edges {
		d.Edges[i] = Edge{
			From:       e.From,
			To:         e.To,
			Weight:     e.Weight,
			Color:      e.Color,
			ColorFrom:  e.ColorFrom,
			ColorTo:    e.ColorTo,
			HoverColor: e.HoverColor,
		}
	}
	return d
}
