package cache

import (
	"bytes"
	"strconv"

	"github.com/matzehuels/sankey/pkg/flow"
)

// Keyer derives cache keys. Every option that changes the cached bytes
// must be part of the key.
type Keyer interface {
	// InputHash fingerprints a list of edges, invalid ones included.
	InputHash(edges []flow.Edge) string
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the settings that shape a layout.
type LayoutKeyOpts struct {
	Orientation  string              `json:"orientation"`
	ColorMode    string              `json:"color_mode"`
	Ordering     string              `json:"ordering"`
	NodeWidth    float64             `json:"node_width"`
	NodePadding  float64             `json:"node_padding"`
	Width        float64             `json:"width"`
	Height       float64             `json:"height"`
	Margin       float64             `json:"margin"`
	DefaultColor string              `json:"default_color"`
	Pins         map[string]flow.Pin `json:"pins,omitempty"`
	NodeColors   map[string]string   `json:"node_colors,omitempty"`
	Palette      []string            `json:"palette,omitempty"`
}

// ArtifactKeyOpts are the settings that shape a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Labels     bool    `json:"labels"`
	Static     bool    `json:"static,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
	Background string  `json:"background,omitempty"`
	Title      string  `json:"title,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) InputHash(edges []flow.Edge) string {
	var buf bytes.Buffer
	for _, e := range edges {
		for _, f := range []string{e.From, e.To, strconv.FormatFloat(e.Weight, 'g', -1, 64), e.Color, e.ColorFrom, e.ColorTo, e.HoverColor} {
			buf.WriteString(strconv.Quote(f))
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	return Hash(buf.Bytes())
}

func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
