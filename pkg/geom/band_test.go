package geom

import (
	"testing"

	"pgregory.net/rapid"
)

func TestBandContainsPoint(t *testing.T) {
	straight := Band{X: 0, Y: 50, X2: 100, Y2: 50, Height: 20, Height2: 20}
	taper := Band{X: 0, Y: 50, X2: 100, Y2: 50, Height: 40, Height2: 0}
	slanted := Band{X: 0, Y: 0, X2: 100, Y2: 100, Height: 10, Height2: 10}
	vertical := Band{X: 50, Y: 0, X2: 50, Y2: 100, Height: 20, Height2: 20, Orientation: Vertical}

	tests := []struct {
		name   string
		band   Band
		px, py float64
		want   bool
	}{
		{"straight center", straight, 50, 50, true},
		{"straight top edge", straight, 50, 40, true},
		{"straight above", straight, 50, 39, false},
		{"straight start", straight, 0, 55, true},
		{"straight before start", straight, -1, 50, false},
		{"straight after end", straight, 101, 50, false},
		{"taper wide end", taper, 10, 33, true},
		{"taper narrow end", taper, 90, 56, false},
		{"taper midpoint inside", taper, 50, 59, true},
		{"taper midpoint outside", taper, 50, 61, false},
		{"slanted on centerline", slanted, 30, 30, true},
		{"slanted off centerline", slanted, 30, 40, false},
		{"vertical inside", vertical, 55, 50, true},
		{"vertical outside", vertical, 65, 50, false},
		{"vertical past end", vertical, 50, 120, false},
		{"degenerate", Band{X: 10, Y: 0, X2: 10, Y2: 100, Height: 50, Height2: 50}, 10, 50, false},
		{"zero", Band{}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.band.ContainsPoint(tt.px, tt.py); got != tt.want {
				t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestBandCenter(t *testing.T) {
	tests := []struct {
		name string
		band Band
		want Point
	}{
		{"example", Band{X: 10, Y: 20, X2: 100, Y2: 80}, Point{55, 50}},
		{"zero", Band{}, Point{0, 0}},
		{"vertical", Band{X: 0, Y: 0, X2: 40, Y2: 10, Orientation: Vertical}, Point{20, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.band.Center(); got != tt.want {
				t.Errorf("Center() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A constant-thickness horizontal band covers exactly the rectangle swept
// between its endpoints.
func TestBandRectangleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := float64(rapid.IntRange(-500, 500).Draw(t, "x"))
		length := float64(rapid.IntRange(1, 500).Draw(t, "len"))
		y := float64(rapid.IntRange(-500, 500).Draw(t, "y"))
		h := float64(2 * rapid.IntRange(1, 100).Draw(t, "halfHeight"))
		b := Band{X: x, Y: y, X2: x + length, Y2: y, Height: h, Height2: h}

		px := float64(rapid.IntRange(int(x)-50, int(x+length)+50).Draw(t, "px"))
		py := float64(rapid.IntRange(int(y-h)-50, int(y+h)+50).Draw(t, "py"))

		inside := px >= x && px <= x+length && py >= y-h/2 && py <= y+h/2
		if got := b.ContainsPoint(px, py); got != inside {
			t.Fatalf("band %+v ContainsPoint(%v, %v) = %v, want %v", b, px, py, got, inside)
		}
	})
}

// Transposing a band and the query point swaps orientation without changing
// the answer.
func TestBandTransposeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := Band{
			X:       float64(rapid.IntRange(0, 100).Draw(t, "x")),
			Y:       float64(rapid.IntRange(0, 100).Draw(t, "y")),
			X2:      float64(rapid.IntRange(0, 100).Draw(t, "x2")),
			Y2:      float64(rapid.IntRange(0, 100).Draw(t, "y2")),
			Height:  float64(rapid.IntRange(0, 50).Draw(t, "h")),
			Height2: float64(rapid.IntRange(0, 50).Draw(t, "h2")),
		}
		px := float64(rapid.IntRange(-10, 110).Draw(t, "px"))
		py := float64(rapid.IntRange(-10, 110).Draw(t, "py"))

		v := Band{X: b.Y, Y: b.X, X2: b.Y2, Y2: b.X2, Height: b.Height, Height2: b.Height2, Orientation: Vertical}
		if b.ContainsPoint(px, py) != v.ContainsPoint(py, px) {
			t.Fatalf("horizontal %+v and vertical %+v disagree at (%v, %v)", b, v, px, py)
		}
	})
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"", Horizontal, false},
		{"horizontal", Horizontal, false},
		{"Vertical", Vertical, false},
		{" v ", Vertical, false},
		{"diagonal", Horizontal, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseOrientation(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := NewRect(800, 600, 20)
	if r.Width() != 760 || r.Height() != 560 || r.Left != 20 || r.Bottom != 580 {
		t.Errorf("NewRect = %+v", r)
	}
}
