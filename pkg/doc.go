// Package pkg holds the libraries behind the sankey CLI and HTTP API.
//
// # Overview
//
// Sankey turns weighted flow edges into a layered flow diagram: nodes sit
// in columns, and each edge becomes a band whose thickness is proportional
// to its weight. The packages are organized by stage:
//
//  1. [flow] - Flow graph, node totals, levels and crossings
//  2. [geom] - Rectangles, orientation and band hit testing
//  3. [render/sankey] - Layout, ordering, coloring and output sinks
//  4. [graph] - Input documents and serialized layouts
//  5. [pipeline] - Orchestration (read → layout → render) with caching
//
// # Architecture
//
//	edges (JSON, CSV or inline)
//	         ↓
//	    [flow] Build + transform.AssignLevels
//	         ↓
//	    [render/sankey/ordering] reduce crossings per column
//	         ↓
//	    [render/sankey/layout] position nodes, route bands
//	         ↓
//	    SVG/PNG/JSON/DOT output, hit testing
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/sankey/pkg/flow"
//	    "github.com/matzehuels/sankey/pkg/geom"
//	    "github.com/matzehuels/sankey/pkg/render/sankey/layout"
//	    "github.com/matzehuels/sankey/pkg/render/sankey/sink"
//	)
//
//	edges := []flow.Edge{
//	    {From: "Salary", To: "Budget", Weight: 3000},
//	    {From: "Budget", To: "Rent", Weight: 1200},
//	}
//	l := layout.Build(edges, geom.NewRect(960, 540, 20))
//	svg := sink.RenderSVG(l)
//	i, band, ok := l.HitTest(480, 270)
//
// # Supporting Packages
//
// [config] loads diagram settings from TOML, YAML or JSON files. [cache]
// stores layouts and renders in files, Redis or MongoDB. [server] exposes
// the pipeline over HTTP. [observability] carries hooks for metrics and
// tracing. [errors] defines coded errors with HTTP status mapping.
//
// [flow]: github.com/matzehuels/sankey/pkg/flow
// [geom]: github.com/matzehuels/sankey/pkg/geom
// [render/sankey]: github.com/matzehuels/sankey/pkg/render/sankey/layout
// [render/sankey/ordering]: github.com/matzehuels/sankey/pkg/render/sankey/ordering
// [render/sankey/layout]: github.com/matzehuels/sankey/pkg/render/sankey/layout
// [graph]: github.com/matzehuels/sankey/pkg/graph
// [pipeline]: github.com/matzehuels/sankey/pkg/pipeline
// [config]: github.com/matzehuels/sankey/pkg/config
// [cache]: github.com/matzehuels/sankey/pkg/cache
// [server]: github.com/matzehuels/sankey/pkg/server
// [observability]: github.com/matzehuels/sankey/pkg/observability
// [errors]: github.com/matzehuels/sankey/pkg/errors
package pkg
