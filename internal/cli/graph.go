package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartistry/pkg/pipeline"
	"github.com/matzehuels/chartistry/pkg/reactive"
)

// graphCommand creates the graph command, which exports the reactive
// dependency graph of a mounted chart.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		format string
		flags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "graph [chart.toml]",
		Short: "Export the reactive dependency graph of a chart",
		Long: `Export the reactive dependency graph of a chart.

Every signal, memo and effect the mounted chart creates becomes a node; an
edge runs from each source to the nodes that read it. The graph is written
as Graphviz DOT or rendered to SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
			}
			return c.runGraph(cmd.Context(), args[0], output, format, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.graph.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, path, output, format string, flags cacheFlags) error {
	defs, err := loadDefinitions([]string{path})
	if err != nil {
		return err
	}
	def := defs[0]

	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	tbl, err := runner.Load(ctx, def)
	if err != nil {
		return err
	}
	m, err := runner.Layout(ctx, def, tbl, "", pipeline.Options{
		Definition: def,
		Width:      pipeline.DefaultWidth,
		Height:     pipeline.DefaultHeight,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	g := m.Runtime.Graph()
	chartLogger(ctx, def).Debug("reactive graph", "nodes", len(g.Nodes), "edges", len(g.Edges))
	data := []byte(g.ToDOT())
	if format == "svg" {
		if data, err = reactive.RenderSVG(ctx, g); err != nil {
			return err
		}
	}

	if output == "" {
		output = outputPath("", def, "graph."+format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("%s: %d reactive nodes", def.Name, len(g.Nodes))
	printFile(output)
	return nil
}
