package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Layout documents created with POST /v1/layout are kept in the cache for
24 hours. Use a shared cache (--cache redis://... or mongodb://...) when
running more than one instance.`,
		Example: `  sankey serve --addr :8080 --cache redis://localhost:6379/0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			if _, ok := cc.(*cache.NullCache); ok {
				c.Logger.Warn("caching disabled: stored layouts will not be found")
			}
			runner := pipeline.NewRunner(cc, nil, c.Logger)
			defer runner.Close()

			srv := server.New(runner, cache.NewLayoutStore(cc, cache.LayoutTTL),
				server.WithMaxBodyBytes(maxBody),
				server.WithTimeout(timeout))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "request body limit in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")

	return cmd
}
