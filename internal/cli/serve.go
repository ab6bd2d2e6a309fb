package cli

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartistry/pkg/observability"
	"github.com/matzehuels/chartistry/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP render server
// over a directory of definitions.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		flags   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve rendered charts over HTTP",
		Long: `Serve the chart definitions in a directory over HTTP.

Routes:
  GET /charts                 list definitions
  GET /charts/{name}          render (?format=svg|json|dot|xlsx&width=&height=)
  GET /charts/{name}/layout   layout document
  GET /charts/{name}/graph    reactive dependency graph (DOT)
  GET /metrics                Prometheus metrics
  GET /healthz                liveness`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			runner, err := c.newRunner(cmd.Context(), flags)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			srv := server.New(server.Config{
				Dir:      dir,
				Runner:   runner,
				Logger:   c.Logger,
				Gatherer: prometheus.DefaultGatherer,
				Timeout:  timeout,
			})
			printInfo("Serving %s on %s", StyleValue.Render(dir), StyleLink.Render("http://"+displayAddr(addr)))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request render timeout")
	flags.register(cmd)

	return cmd
}

// displayAddr turns a bare ":port" into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
