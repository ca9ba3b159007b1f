// Package flow provides the weighted flow graph behind a Sankey diagram.
//
// # Overview
//
// A diagram is described by a flat list of [Edge] records. Each edge moves a
// positive amount of flow (its Weight) from one named node to another. The
// package turns that list into a [Graph]: the set of nodes, their aggregated
// incoming and outgoing totals, and a successor/predecessor index that later
// layout stages query instead of re-scanning the edge list.
//
// # Validation
//
// Records with an empty endpoint, or with a weight that is zero, negative,
// NaN or infinite, are not errors. They describe "no flow" and are dropped
// silently by [Build]. An input with no valid edge produces an empty graph,
// which lays out as an empty diagram.
//
//	g := flow.Build([]flow.Edge{
//	    {From: "coal", To: "power", Weight: 40},
//	    {From: "gas", To: "power", Weight: 25},
//	    {From: "power", To: "homes", Weight: 65},
//	})
//	n, _ := g.Node("power") // Incoming 65, Outgoing 65, Value 65
//
// # Ordering
//
// Go maps do not keep order, but layout tie-breaks must be deterministic.
// [Graph] therefore remembers nodes in first-seen order, and [LevelMap]
// remembers level assignments in insertion order. Both orders are part of
// the observable behavior of the layout.
//
// # Columns and Crossings
//
// [Columns] holds the per-level node order. [CountCrossings] counts band
// crossings between adjacent columns with a Fenwick tree, and is used to
// report layout quality and to check crossing reduction.
//
// # Concurrency
//
// A built [Graph] is immutable and may be read from several goroutines.
// [Columns] is rewritten in place by crossing reduction and must not be shared
// across concurrent layouts without external synchronization.
package flow
