package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/render/sankey/paint"
)

// ColorMode selects how bands without an explicit color are painted.
type ColorMode string

const (
	ColorDefault  ColorMode = ""         // every band takes the default color
	ColorFrom     ColorMode = "from"     // band takes its source node's color
	ColorTo       ColorMode = "to"       // band takes its target node's color
	ColorGradient ColorMode = "gradient" // band fades from source to target
)

// ParseColorMode parses a case-insensitive color mode. "default" and the
// empty string both select [ColorDefault].
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorDefault, ColorFrom, ColorTo, ColorGradient:
		return m, nil
	case "default":
		return ColorDefault, nil
	}
	return ColorDefault, fmt.Errorf("unknown color mode %q", s)
}

// Colors is the color configuration for band routing. NodeColors holds the
// already resolved color of each node; a nil map means node colors are not
// available and modes that need them fall back to Default.
type Colors struct {
	Mode       ColorMode
	NodeColors map[string]string
	Default    string
}

func (c Colors) fallback() string {
	if c.Default != "" {
		return c.Default
	}
	return paint.DefaultColor
}

func (c Colors) node(id string) (string, bool) {
	if c.NodeColors == nil {
		return "", false
	}
	col, ok := c.NodeColors[id]
	return col, ok && col != ""
}

// resolve fills the color fields of b for edge e.
func (c Colors) resolve(e flow.Edge, b *FlowBand) {
	base := e.Color
	if base == "" {
		base = c.fallback()
		switch c.Mode {
		case ColorFrom:
			if col, ok := c.node(e.From); ok {
				base = col
			}
		case ColorTo:
			if col, ok := c.node(e.To); ok {
				base = col
			}
		}
	}

	from, to := e.ColorFrom, e.ColorTo
	if c.Mode == ColorGradient && from == "" && to == "" {
		src, okSrc := c.node(e.From)
		dst, okDst := c.node(e.To)
		if okSrc && okDst {
			from, to = src, dst
		} else {
			from, to = base, paint.Fade(base, paint.FadeAlpha)
		}
	}
	if from == "" {
		from = base
	}
	if to == "" {
		to = base
	}

	hover := e.HoverColor
	if hover == "" {
		hover = base
	}

	b.Color, b.ColorFrom, b.ColorTo, b.HoverColor = base, from, to, hover
}
