package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijaymanbajracharya/stratcol/internal/server"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and stored columns over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			printKeyValue("Address", cfg.Addr)
			printKeyValue("Cache", c.Config.Cache.Backend)
			printKeyValue("Store", c.Config.Store.Backend)

			srv := server.New(runner, st, c.Logger,
				server.WithDefaults(pipeline.FromConfig(c.Config)),
				server.WithMaxBodyBytes(cfg.MaxBodyBytes))
			return srv.ListenAndServe(ctx, cfg.Addr, server.Timeouts{
				Read:     cfg.ReadTimeout.Duration,
				Write:    cfg.WriteTimeout.Duration,
				Shutdown: cfg.ShutdownTimeout.Duration,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
