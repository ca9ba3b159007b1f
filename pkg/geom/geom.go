package geom

import (
	"fmt"
	"strings"
)

// Orientation selects the direction in which columns progress.
type Orientation int

const (
	// Horizontal lays columns out left to right; nodes stack top to bottom.
	Horizontal Orientation = iota
	// Vertical lays columns out top to bottom; nodes stack left to right.
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation parses a case-insensitive orientation name. The empty
// string is horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown orientation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Rect is an axis-aligned drawing area in screen coordinates (y grows down).
type Rect struct {
	Left, Right float64
	Top, Bottom float64
}

// NewRect returns the w by h rectangle inset by margin on every side.
func NewRect(w, h, margin float64) Rect {
	return Rect{Left: margin, Right: w - margin, Top: margin, Bottom: h - margin}
}

// Width returns the horizontal span.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Point is a 2D coordinate.
type Point struct{ X, Y float64 }
