package pipeline

import (
	"github.com/matzehuels/sankey/pkg/graph"
)

// Read returns the input document: the inline edges when given, otherwise
// the decoded Input file.
func Read(opts Options) (graph.Document, error) {
	if err := opts.ValidateForRead(); err != nil {
		return graph.Document{}, err
	}
	if opts.Edges != nil {
		return graph.Document{Edges: opts.Edges}, nil
	}
	return graph.ReadDocumentFile(opts.Input)
}

// source names the input for logs and hooks.
func source(opts Options) string {
	if opts.Edges != nil {
		return "inline"
	}
	return opts.Input
}
