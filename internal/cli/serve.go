package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Serve layouts and renders over HTTP.

Endpoints:
  POST /v1/layout            JSON request, layout JSON response
  POST /v1/render?format=F   JSON request, rendered file response
  POST /v1/visualize?format=F layout JSON request, rendered file response
  GET  /v1/formats           supported formats
  GET  /healthz              liveness

Request fields left out take their values from the config file. The
server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner := c.newRunner(cmd.Context(), cfg.Cache)
			defer runner.Close()

			logger := loggerFromContext(cmd.Context())
			srv := server.New(runner, cfg, logger)
			printInfo("Listening on %s", StyleValue.Render(cfg.Server.Addr))
			return srv.Run(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
