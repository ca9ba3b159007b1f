package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the layout cache",
		Long: `Inspect and clear the local layout cache.

These commands work on the file cache: the default XDG directory, or the
directory of a --cache file:// URL. Shared caches expire on their own.`,
	}

	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cacheClearCommand())

	return cmd
}

// fileCache opens the file cache the cache commands manage.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	dir := strings.TrimPrefix(c.cacheURL, "file://")
	switch {
	case c.cacheURL == "":
		d, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		dir = d
	case dir == c.cacheURL:
		return nil, fmt.Errorf("cache commands need a file cache, got %s", c.cacheURL)
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			entries, size, err := fc.Stats()
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("scan cache: %w", err)
			}
			printKeyValue("directory", fc.Dir())
			printKeyValue("entries", humanize.Comma(int64(entries)))
			printKeyValue("size", humanize.Bytes(uint64(size)))
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			entries, size, _ := fc.Stats()
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %s cached %s (%s)", humanize.Comma(int64(entries)),
				plural(entries, "entry", "entries"), humanize.Bytes(uint64(size)))
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}
