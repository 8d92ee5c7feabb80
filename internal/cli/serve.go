package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostleg/pkg/api"
	"github.com/matzehuels/ghostleg/pkg/config"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rounds over HTTP",
		Long: `Serve starts the HTTP API on top of the configured round store.

Routes:
  GET    /healthz
  POST   /api/rounds                    {"names": [...], "results": [...], "rows": 10, "max_rungs": 6, "seed": 0}
  GET    /api/rounds?limit=N
  GET    /api/rounds/{id}
  GET    /api/rounds/{id}/lanes/{lane}
  GET    /api/rounds/{id}/ladder.svg?lane=N
  DELETE /api/rounds/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config.Server.Addr
			}

			s, err := c.openStore(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if c.config.Store.Backend == config.BackendMemory {
				printWarning("memory store: rounds are lost when the server stops")
			}
			srv := api.New(s, api.Defaults{
				Rows:     c.config.Rows,
				MaxRungs: c.config.MaxRungs,
				MaxLanes: c.config.MaxLanes,
			})
			printInfo("Listening on %s %s", StyleLink.Render("http://"+displayAddr(addr)),
				StyleDim.Render("("+c.config.Store.Backend+" store)"))
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return err
			}
			c.Logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
