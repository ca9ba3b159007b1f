// Package config loads diagram settings.
//
// Settings come from a TOML, YAML or JSON file, chosen by extension, and
// can be embedded in an input document or overridden by CLI flags. Every
// source starts from [Default] and only overrides what it sets.
//
// Files follow the XDG Base Directory specification:
//   - Config: ~/.config/sankey/config.toml (or .yaml)
//   - Cache:  ~/.cache/sankey/
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
	"github.com/matzehuels/sankey/pkg/render/sankey/ordering"
	"github.com/matzehuels/sankey/pkg/render/sankey/paint"
)

const appName = "sankey"

// Default canvas size.
const (
	DefaultWidth  = 960.0
	DefaultHeight = 540.0
	DefaultMargin = 20.0
)

// Ordering names.
const (
	OrderingBarycentric = "barycentric"
	OrderingNone        = "none"
)

// Diagram holds everything that shapes a rendered diagram.
type Diagram struct {
	Orientation  string              `toml:"orientation" yaml:"orientation,omitempty" json:"orientation,omitempty"`
	ColorMode    string              `toml:"color_mode" yaml:"color_mode,omitempty" json:"color_mode,omitempty"`
	Ordering     string              `toml:"ordering" yaml:"ordering,omitempty" json:"ordering,omitempty"`
	NodeWidth    float64             `toml:"node_width" yaml:"node_width,omitempty" json:"node_width,omitempty"`
	NodePadding  *float64            `toml:"node_padding" yaml:"node_padding,omitempty" json:"node_padding,omitempty"`
	Width        float64             `toml:"width" yaml:"width,omitempty" json:"width,omitempty"`
	Height       float64             `toml:"height" yaml:"height,omitempty" json:"height,omitempty"`
	Margin       *float64            `toml:"margin" yaml:"margin,omitempty" json:"margin,omitempty"`
	DefaultColor string              `toml:"default_color" yaml:"default_color,omitempty" json:"default_color,omitempty"`
	Pins         map[string]flow.Pin `toml:"pins" yaml:"pins,omitempty" json:"pins,omitempty"`
	NodeColors   map[string]string   `toml:"node_colors" yaml:"node_colors,omitempty" json:"node_colors,omitempty"`
	// Palette colors nodes without an entry in NodeColors. The single
	// entry "default" selects the built-in palette.
	Palette []string `toml:"palette" yaml:"palette,omitempty" json:"palette,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() Diagram {
	return Diagram{
		Orientation:  geom.Horizontal.String(),
		Ordering:     OrderingBarycentric,
		NodeWidth:    layout.DefaultNodeWidth,
		NodePadding:  Float(layout.DefaultNodePadding),
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Margin:       Float(DefaultMargin),
		DefaultColor: paint.DefaultColor,
	}
}

// Float returns a pointer to v, for settings where zero is a valid value.
func Float(v float64) *float64 { return &v }

// Merge returns d with every field that is set in over replaced. Maps are
// merged key by key. NodePadding and Margin are set when non-nil, so an
// explicit zero overrides.
func (d Diagram) Merge(over Diagram) Diagram {
	if over.Orientation != "" {
		d.Orientation = over.Orientation
	}
	if over.ColorMode != "" {
		d.ColorMode = over.ColorMode
	}
	if over.Ordering != "" {
		d.Ordering = over.Ordering
	}
	if over.NodeWidth != 0 {
		d.NodeWidth = over.NodeWidth
	}
	if over.NodePadding != nil {
		d.NodePadding = Float(*over.NodePadding)
	}
	if over.Width != 0 {
		d.Width = over.Width
	}
	if over.Height != 0 {
		d.Height = over.Height
	}
	if over.Margin != nil {
		d.Margin = Float(*over.Margin)
	}
	if over.DefaultColor != "" {
		d.DefaultColor = over.DefaultColor
	}
	if len(over.Pins) > 0 {
		pins := make(map[string]flow.Pin, len(d.Pins)+len(over.Pins))
		for k, v := range d.Pins {
			pins[k] = v
		}
		for k, v := range over.Pins {
			pins[k] = v
		}
		d.Pins = pins
	}
	if len(over.NodeColors) > 0 {
		colors := make(map[string]string, len(d.NodeColors)+len(over.NodeColors))
		for k, v := range d.NodeColors {
			colors[k] = v
		}
		for k, v := range over.NodeColors {
			colors[k] = v
		}
		d.NodeColors = colors
	}
	if len(over.Palette) > 0 {
		d.Palette = over.Palette
	}
	return d
}

// Validate checks that every field has a usable value.
func (d Diagram) Validate() error {
	if _, err := geom.ParseOrientation(d.Orientation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrientation, err, "orientation must be horizontal or vertical")
	}
	if _, err := layout.ParseColorMode(d.ColorMode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColorMode, err, "color_mode must be default, from, to or gradient")
	}
	switch d.Ordering {
	case "", OrderingBarycentric, OrderingNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "ordering must be %s or %s, got %q", OrderingBarycentric, OrderingNone, d.Ordering)
	}
	for name, v := range map[string]float64{"width": d.Width, "height": d.Height, "node_width": d.NodeWidth} {
		if err := errors.ValidateDimension(name, v, true); err != nil {
			return err
		}
	}
	margin := d.EffectiveMargin()
	for name, v := range map[string]float64{"node_padding": d.EffectiveNodePadding(), "margin": margin} {
		if err := errors.ValidateDimension(name, v, false); err != nil {
			return err
		}
	}
	if 2*margin >= d.Width || 2*margin >= d.Height {
		return errors.New(errors.ErrCodeInvalidDimension, "margin %g leaves no drawing area in %gx%g", margin, d.Width, d.Height)
	}
	for id, p := range d.Pins {
		if p.Column < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "pins[%q]: column must be >= 0, got %d", id, p.Column)
		}
	}
	if d.DefaultColor != "" {
		if err := errors.ValidateColor(d.DefaultColor); err != nil {
			return err
		}
	}
	for id, c := range d.NodeColors {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "node_colors[%q]", id)
		}
	}
	for _, c := range d.palette() {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "palette")
		}
	}
	return nil
}

func (d Diagram) palette() []string {
	if len(d.Palette) == 1 && d.Palette[0] == "default" {
		return paint.Palette
	}
	return d.Palette
}

// EffectiveNodePadding returns NodePadding, or the layout default when unset.
func (d Diagram) EffectiveNodePadding() float64 {
	if d.NodePadding == nil {
		return layout.DefaultNodePadding
	}
	return *d.NodePadding
}

// EffectiveMargin returns Margin, or DefaultMargin when unset.
func (d Diagram) EffectiveMargin() float64 {
	if d.Margin == nil {
		return DefaultMargin
	}
	return *d.Margin
}

// Rect returns the drawing area: the canvas inset by the margin.
func (d Diagram) Rect() geom.Rect {
	return geom.NewRect(d.Width, d.Height, d.EffectiveMargin())
}

// LayoutOptions converts validated settings into layout options.
func (d Diagram) LayoutOptions() ([]layout.Option, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	o, _ := geom.ParseOrientation(d.Orientation)
	mode, _ := layout.ParseColorMode(d.ColorMode)
	opts := []layout.Option{
		layout.WithOrientation(o),
		layout.WithColorMode(mode),
		layout.WithNodeWidth(d.NodeWidth),
		layout.WithNodePadding(d.EffectiveNodePadding()),
		layout.WithPins(d.Pins),
		layout.WithNodeColors(d.NodeColors),
		layout.WithPalette(d.palette()),
	}
	if d.DefaultColor != "" {
		opts = append(opts, layout.WithDefaultColor(d.DefaultColor))
	}
	if d.Ordering == OrderingNone {
		opts = append(opts, layout.WithOrderer(ordering.None{}))
	}
	return opts, nil
}

// Format is a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf infers the syntax from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported config extension %q (want .toml, .yaml or .json)", filepath.Ext(path))
}

// Decode parses data on top of [Default].
func Decode(data []byte, f Format) (Diagram, error) {
	d := Default()
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	case FormatJSON:
		err = json.Unmarshal(data, &d)
	default:
		return d, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", f)
	}
	if err != nil {
		return d, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s config", f)
	}
	return d, nil
}

// LoadFrom reads settings from path. A missing file yields [Default].
func LoadFrom(path string) (Diagram, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Default(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading config: %w", err)
	}
	d, err := Decode(data, f)
	if err != nil {
		return d, err
	}
	return d, d.Validate()
}

// Load reads the user config from the XDG config directory, trying
// config.toml, then config.yaml and config.yml. Without any file it returns
// [Default].
func Load() (Diagram, error) {
	dir := ConfigDir()
	if dir == "" {
		return Default(), nil
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}
	return Default(), nil
}

// SaveTo writes d to path in the syntax its extension selects.
func SaveTo(d Diagram, path string) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var buf bytes.Buffer
	switch f {
	case FormatTOML:
		err = toml.NewEncoder(&buf).Encode(d)
	case FormatYAML:
		err = yaml.NewEncoder(&buf).Encode(d)
	case FormatJSON:
		var data []byte
		data, err = json.MarshalIndent(d, "", "  ")
		buf.Write(data)
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ConfigDir returns the XDG config directory for sankey.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// CacheDir returns the XDG cache directory for sankey.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}
