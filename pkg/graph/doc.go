// Package graph provides the wire formats of the sankey tool.
//
// It sits at the serialization boundary between the layout engine and
// files, the HTTP API and the cache:
//
//   - [Document], [Edge]: diagram input (edges plus optional settings)
//   - [Layout]: a computed diagram with node and band geometry
//   - pkg/flow.Edge and pkg/render/sankey/layout.Layout: internal forms
//
// Use [Document.FlowEdges] and [FromLayout]/[ToLayout] to convert.
//
// # Input
//
// Diagrams are JSON documents:
//
//	{
//	  "edges": [
//	    {"from": "solar", "to": "grid", "weight": 40, "color": "#f5a623"},
//	    {"from": "grid", "to": "homes", "weight": 25}
//	  ],
//	  "config": {"orientation": "vertical", "color_mode": "gradient"}
//	}
//
// A bare array of edges is accepted as well, and CSV files with a
// from,to,weight header are read by [ReadCSV]. Malformed records are not
// an error here; the layout ignores edges without usable flow.
//
// # Layout
//
// A serialized [Layout] keeps everything needed to redraw or hit-test a
// diagram without recomputing it:
//
//	doc := graph.FromLayout(l)
//	data, _ := graph.MarshalLayout(doc)
//	back, _ := graph.UnmarshalLayout(data)
//	l2, _ := graph.ToLayout(back)
//
// Layouts carry both json and bson tags so the Mongo cache can store them
// as native documents.
package graph
