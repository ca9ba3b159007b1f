package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete read → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Read
	readStart := time.Now()
	observability.Pipeline().OnReadStart(ctx, source(opts))
	doc, err := Read(opts)
	result.Stats.ReadTime = time.Since(readStart)
	observability.Pipeline().OnReadComplete(ctx, source(opts), len(doc.Edges), result.Stats.ReadTime, err)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	opts.ApplyDocument(doc)
	edges := doc.FlowEdges()

	r.Logger.Info("read edges",
		"source", source(opts),
		"edges", len(edges),
		"duration", result.Stats.ReadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, exported, hit, err := r.ComputeLayout(ctx, edges, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Document = exported
	result.InputHash = r.Keyer.InputHash(edges)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EdgeCount = len(edges)
	result.Stats.DroppedEdges = len(edges) - l.Graph.ValidEdgeCount()
	result.Stats.NodeCount = l.Graph.NodeCount()
	result.Stats.ColumnCount = l.ColumnCount()
	result.Stats.Crossings = l.Crossings
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"edges", len(edges)-result.Stats.DroppedEdges,
		"columns", result.Stats.ColumnCount,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, exported, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout returns the layout for edges, from cache when possible,
// together with its serialized document and whether the cache was hit.
func (r *Runner) ComputeLayout(ctx context.Context, edges []flow.Edge, opts Options) (layout.Layout, graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, graph.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(r.Keyer.InputHash(edges), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := graph.UnmarshalLayout(data); err == nil {
				if l, err := graph.ToLayout(doc); err == nil {
					return l, doc, true, nil
				}
			}
			// Undecodable entries fall through and are overwritten.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(edges))
	l, err := GenerateLayout(edges, opts)
	var nodes, bands int
	if err == nil {
		nodes, bands = l.Graph.NodeCount(), l.Graph.ValidEdgeCount()
	}
	observability.Pipeline().OnLayoutComplete(ctx, nodes, bands, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, graph.Layout{}, false, err
	}

	doc := graph.FromLayout(l)
	if data, err := graph.MarshalLayout(doc); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		}
	}
	return l, doc, false, nil
}

// RenderWithCacheInfo renders the requested formats, taking cacheable
// artifacts from cache when every one of them is there. The returned flag
// reports that case.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, doc graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Highlighted renders are one-offs and bypass the cache.
	useCache := !opts.Refresh && !opts.hovered()

	// The document ID differs per computation; keys hash the geometry only.
	doc.ID = ""
	layoutData, err := graph.MarshalLayout(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if useCache && cacheable(format) {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	allCached := len(artifacts) > 0 && !anyCacheable(missing)

	if len(missing) > 0 {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, missing)
		sub := opts
		sub.Formats = missing
		rendered, err := RenderFormats(ctx, l, sub)
		observability.Pipeline().OnRenderComplete(ctx, missing, time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		for format, data := range rendered {
			artifacts[format] = data
			if !opts.hovered() && cacheable(format) {
				key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
				_ = r.Cache.Set(ctx, key, data, cache.ArtifactTTL)
			}
		}
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, graph.FromLayout(l), opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func anyCacheable(formats []string) bool {
	for _, f := range formats {
		if cacheable(f) {
			return true
		}
	}
	return false
}
