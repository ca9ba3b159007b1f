// Package geom holds the small geometric value types shared by layout,
// rendering and hit testing: [Orientation], [Rect], [Point] and [Band].
package geom
