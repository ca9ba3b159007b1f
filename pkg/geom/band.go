package geom

import "math"

// Band is the outline of one tapered flow band.
//
// (X, Y) and (X2, Y2) are the centerline endpoints at the source and target.
// Height and Height2 are the band thickness at each end, measured across the
// primary axis. The primary axis is x for [Horizontal] bands and y for
// [Vertical] ones. Between the endpoints, the centerline and the thickness
// are interpolated linearly.
type Band struct {
	X, Y        float64
	X2, Y2      float64
	Height      float64
	Height2     float64
	Orientation Orientation
}

// ContainsPoint reports whether (px, py) lies inside the band's linear
// taper envelope. A band whose endpoints share the same primary coordinate
// has no length and contains nothing. Boundary points are inside.
func (b Band) ContainsPoint(px, py float64) bool {
	start, end, p := b.X, b.X2, px
	c0, c1, q := b.Y, b.Y2, py
	if b.Orientation == Vertical {
		start, end, p = b.Y, b.Y2, py
		c0, c1, q = b.X, b.X2, px
	}
	if start == end {
		return false
	}

	t := (p - start) / (end - start)
	if t < 0 || t > 1 {
		return false
	}
	center := c0 + t*(c1-c0)
	half := (b.Height + t*(b.Height2-b.Height)) / 2
	return math.Abs(q-center) <= half
}

// Center returns the midpoint between the two centerline endpoints. The
// zero Band has its center at the origin.
func (b Band) Center() Point {
	return Point{X: (b.X + b.X2) / 2, Y: (b.Y + b.Y2) / 2}
}
