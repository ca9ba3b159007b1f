// Package paint parses, fades and assigns the CSS color strings carried by
// Sankey nodes and bands.
//
// Colors stay strings throughout layout so that any CSS value a caller
// supplies reaches SVG output untouched. Only hex and rgb()/rgba() notations
// are understood numerically; other values pass through [Fade] unchanged and
// fall back to gray in raster output.
package paint

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the band color used when nothing else applies.
const DefaultColor = "#999999"

// FadeAlpha is the opacity multiplier for the faded end of a gradient.
const FadeAlpha = 0.5

// Palette is the default node palette (Tableau 10).
var Palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Parse parses a hex (#rgb, #rrggbb), rgb() or rgba() color. The returned
// alpha is in [0, 1] and is 1 for notations without one.
func Parse(s string) (c colorful.Color, alpha float64, ok bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		return c, 1, true
	}

	lower := strings.ToLower(s)
	var body string
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		body = lower[5 : len(lower)-1]
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		body = lower[4 : len(lower)-1]
	default:
		return colorful.Color{}, 0, false
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return colorful.Color{}, 0, false
	}
	var rgb [3]float64
	for i := range rgb {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, 0, false
		}
		rgb[i] = v / 255
	}
	alpha = 1
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return colorful.Color{}, 0, false
		}
		alpha = a
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, alpha, true
}

// Fade returns s with its opacity multiplied by factor, as an rgba() string.
// Unparseable colors are returned unchanged.
func Fade(s string, factor float64) string {
	c, a, ok := Parse(s)
	if !ok {
		return s
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(a*factor, 'f', -1, 64))
}

// NRGBA converts s for raster drawing. Unparseable colors become
// [DefaultColor].
func NRGBA(s string) color.NRGBA {
	c, a, ok := Parse(s)
	if !ok {
		c, a, _ = Parse(DefaultColor)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// Opacity returns the alpha component of s, or 1 when s has none or cannot
// be parsed.
func Opacity(s string) float64 {
	if _, a, ok := Parse(s); ok {
		return a
	}
	return 1
}

// Assign returns node colors for ids in order: explicit entries are kept and
// the remaining nodes take palette entries round-robin. An empty palette
// assigns nothing beyond the explicit map.
func Assign(ids []string, explicit map[string]string, palette []string) map[string]string {
	out := make(map[string]string, len(ids))
	next := 0
	for _, id := range ids {
		if c, ok := explicit[id]; ok && c != "" {
			out[id] = c
			continue
		}
		if len(palette) == 0 {
			continue
		}
		out[id] = palette[next%len(palette)]
		next++
	}
	return out
}
