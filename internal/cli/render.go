package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string
	formats string
	width   float64
	height  float64
	refresh bool
	jobs    int
	cache   cacheFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		jobs:   runtime.GOMAXPROCS(0),
	}

	cmd := &cobra.Command{
		Use:   "render [chart.toml|dir]...",
		Short: "Render chart definitions",
		Long: `Render chart definitions to SVG, layout JSON, reactive-graph DOT or XLSX.

Each argument is a definition file or a directory of them. Charts render
concurrently; outputs are written next to each definition unless -o names
a directory. Loaded data and rendered artifacts are cached.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: next to each definition)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, xlsx (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "container width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "container height")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload data even if cached")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "charts rendered in parallel")
	opts.cache.register(cmd)

	return cmd
}

// rendered is the outcome of one chart.
type rendered struct {
	def    *config.Definition
	result *pipeline.Result
	files  []string
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	defs, err := loadDefinitions(args)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newRenderProgress(c.Logger, formats)
	results, err := renderAll(ctx, runner, defs, opts, formats, prog)
	if err != nil {
		return err
	}
	prog.done()

	for _, r := range results {
		printSuccess("%s", r.def.Name)
		for _, f := range r.files {
			printFile(f)
		}
		printStats(r.result.Stats.Rows, r.result.Stats.Columns, r.result.CacheInfo.LoadHit, r.result.CacheInfo.RenderHit)
		if r.result.Stats.Rows == 0 {
			printWarning("%s has no data rows", r.def.Name)
		}
	}
	return nil
}

// renderAll renders defs with at most opts.jobs in flight. Results keep the
// order of defs; the first failure cancels the rest.
func renderAll(ctx context.Context, runner *pipeline.Runner, defs []*config.Definition, opts renderOpts, formats []string, prog *renderProgress) ([]rendered, error) {
	results := make([]rendered, len(defs))
	g, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}

	for i, def := range defs {
		g.Go(func() error {
			res, err := runner.Execute(ctx, pipeline.Options{
				Definition: def,
				Width:      opts.width,
				Height:     opts.height,
				Formats:    formats,
				Refresh:    opts.refresh,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			files, err := writeArtifacts(opts.output, def, formats, res.Artifacts)
			if err != nil {
				return err
			}
			results[i] = rendered{def: def, result: res, files: files}
			prog.chart(def, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeArtifacts(dir string, def *config.Definition, formats []string, artifacts map[string][]byte) ([]string, error) {
	files := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(dir, def, format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
