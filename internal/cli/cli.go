// Package cli implements the sankey command-line interface.
//
// # Commands
//
//   - layout: Compute a layout document from flow edges
//   - render: Render edges or a layout document to SVG, PNG, JSON or DOT
//   - dot: Print the Graphviz source of the node-link view
//   - hit: Report the band and node under a point
//   - inspect: Browse columns and flows interactively
//   - serve: Run the HTTP API
//   - cache: Inspect and clear the layout cache
//   - config: Write or show diagram settings
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/buildinfo"
	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/config"
	"github.com/matzehuels/sankey/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "sankey"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Set by persistent flags.
	configPath string
	cacheURL   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sankey lays out and renders layered flow diagrams",
		Long:         `Sankey turns weighted flow edges into a layered flow diagram: nodes in columns, bands whose thickness follows the flow.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (.toml, .yaml or .json; default: "+appName+" config dir)")
	root.PersistentFlags().StringVar(&c.cacheURL, "cache", "", "cache URL: file:///dir, redis://..., mongodb://... or none (default: local file cache)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.hitCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the cache selected by --cache, falling back to the XDG
// file cache. Without a usable cache directory caching is disabled.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.cacheURL != "" {
		return cache.Open(ctx, c.cacheURL)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths and Settings
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sankey/).
func cacheDir() (string, error) {
	return config.CacheDir()
}

// userConfig loads --config, or the user's config file when the flag is
// not set.
func (c *CLI) userConfig() (config.Diagram, error) {
	if c.configPath != "" {
		return config.LoadFrom(c.configPath)
	}
	return config.Load()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
