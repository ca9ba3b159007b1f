// Package transform assigns flow graph nodes to columns.
//
// [AssignLevels] is a breadth-first ranking with two twists: pinned nodes
// are placed before traversal and never move, and graphs without a natural
// source get a synthetic root. Nodes unreachable from any root are placed by
// a single pass over their predecessors.
//
// The ranking is not a longest-path layering. A node reached by a short path
// and a long path lands at the short distance, so a band may run backwards
// or skip columns. That is accepted: bands are routed by geometry, not by
// column adjacency.
//
// [GroupByLevel] turns the ranking into per-column node lists, and
// [FindCycles] reports cyclic components for diagnostics.
package transform
