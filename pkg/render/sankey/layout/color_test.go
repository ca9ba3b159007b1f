package layout

import (
	"testing"

	"github.com/matzehuels/sankey/pkg/flow"
)

func TestColorsResolve(t *testing.T) {
	nodeColors := map[string]string{"a": "#ff0000", "b": "#0000ff"}

	tests := []struct {
		name                  string
		colors                Colors
		edge                  flow.Edge
		base, from, to, hover string
	}{
		{
			name:   "default",
			colors: Colors{Default: "#999"},
			edge:   flow.Edge{From: "a", To: "b"},
			base:   "#999", from: "#999", to: "#999", hover: "#999",
		},
		{
			name:   "explicit wins over mode",
			colors: Colors{Mode: ColorFrom, NodeColors: nodeColors, Default: "#999"},
			edge:   flow.Edge{From: "a", To: "b", Color: "green"},
			base:   "green", from: "green", to: "green", hover: "green",
		},
		{
			name:   "from mode",
			colors: Colors{Mode: ColorFrom, NodeColors: nodeColors, Default: "#999"},
			edge:   flow.Edge{From: "a", To: "b"},
			base:   "#ff0000", from: "#ff0000", to: "#ff0000", hover: "#ff0000",
		},
		{
			name:   "to mode",
			colors: Colors{Mode: ColorTo, NodeColors: nodeColors, Default: "#999"},
			edge:   flow.Edge{From: "a", To: "b", HoverColor: "black"},
			base:   "#0000ff", from: "#0000ff", to: "#0000ff", hover: "black",
		},
		{
			name:   "from mode without node colors",
			colors: Colors{Mode: ColorFrom, Default: "#999"},
			edge:   flow.Edge{From: "a", To: "b"},
			base:   "#999", from: "#999", to: "#999", hover: "#999",
		},
		{
			name:   "gradient with node colors",
			colors: Colors{Mode: ColorGradient, NodeColors: nodeColors, Default: "#999"},
			edge:   flow.Edge{From: "a", To: "b"},
			base:   "#999", from: "#ff0000", to: "#0000ff", hover: "#999",
		},
		{
			name:   "gradient missing a node color fades base",
			colors: Colors{Mode: ColorGradient, NodeColors: nodeColors, Default: "#ffffff"},
			edge:   flow.Edge{From: "a", To: "z"},
			base:   "#ffffff", from: "#ffffff", to: "rgba(255, 255, 255, 0.5)", hover: "#ffffff",
		},
		{
			name:   "gradient with explicit override",
			colors: Colors{Mode: ColorGradient, NodeColors: nodeColors, Default: "#999"},
			edge:   flow.Edge{From: "a", To: "b", ColorTo: "pink"},
			base:   "#999", from: "#999", to: "pink", hover: "#999",
		},
		{
			name:   "empty default",
			colors: Colors{},
			edge:   flow.Edge{From: "a", To: "b"},
			base:   "#999999", from: "#999999", to: "#999999", hover: "#999999",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b FlowBand
			tt.colors.resolve(tt.edge, &b)
			if b.Color != tt.base || b.ColorFrom != tt.from || b.ColorTo != tt.to || b.HoverColor != tt.hover {
				t.Errorf("got (%s, %s, %s, %s), want (%s, %s, %s, %s)",
					b.Color, b.ColorFrom, b.ColorTo, b.HoverColor, tt.base, tt.from, tt.to, tt.hover)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorDefault, "default": ColorDefault, "FROM": ColorFrom, "to": ColorTo, "gradient": ColorGradient} {
		if got, err := ParseColorMode(in); err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseColorMode("rainbow"); err == nil {
		t.Error("ParseColorMode(rainbow) should fail")
	}
}
