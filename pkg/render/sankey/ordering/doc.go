// Package ordering reorders nodes within Sankey columns to reduce band
// crossings.
//
// Column membership comes from level assignment and is never changed here;
// an [Orderer] only permutes each column. [Barycentric] is the default.
// [None] leaves the grouping order as is, which is useful for comparing
// layouts or when the input order is already meaningful.
package ordering
