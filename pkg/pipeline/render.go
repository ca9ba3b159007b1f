package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sankey/pkg/render/nodelink"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
	"github.com/matzehuels/sankey/pkg/render/sankey/sink"
)

// RenderFormats renders l in every requested format. Formats are rendered
// concurrently; the layout is only read.
func RenderFormats(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := RenderFormat(ctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat renders l in a single format.
func RenderFormat(ctx context.Context, l layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, buildSVGOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(l, buildPNGOptions(opts)...)
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))
	}
	return nil, ValidateFormat(format)
}

// hoverState builds the shared highlight state from the options, or nil
// when nothing is selected.
func hoverState(opts Options) *sink.HoverState {
	if !opts.hovered() {
		return nil
	}
	h := sink.NewHoverState()
	if opts.HoverNode != "" {
		h.SetNode(opts.HoverNode)
	}
	if opts.HoverBand != nil {
		h.SetBand(*opts.HoverBand)
	}
	return h
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.NoLabels {
		svgOpts = append(svgOpts, sink.WithoutLabels())
	}
	if opts.Static {
		svgOpts = append(svgOpts, sink.WithStatic())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if h := hoverState(opts); h != nil {
		svgOpts = append(svgOpts, sink.WithHover(h))
	}
	return svgOpts
}

func buildPNGOptions(opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{
		sink.WithScale(opts.Scale),
		sink.WithPNGLabels(!opts.NoLabels),
	}
	if opts.Background != "" {
		pngOpts = append(pngOpts, sink.WithPNGBackground(opts.Background))
	}
	if h := hoverState(opts); h != nil {
		pngOpts = append(pngOpts, sink.WithPNGHover(h))
	}
	return pngOpts
}
