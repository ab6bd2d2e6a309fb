// Package cli implements the chartistry command-line interface.
//
// # Commands
//
//   - render: Render chart definitions to SVG, JSON, DOT or XLSX
//   - layout: Print the edge slots and plot area of a chart
//   - list: Summarise the definitions in a directory
//   - preview: Explore a chart in the terminal
//   - graph: Export a chart's reactive dependency graph
//   - serve: Run the HTTP render server
//   - cache: Manage the data and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so long-running stages can report progress.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartistry/pkg/buildinfo"
	"github.com/matzehuels/chartistry/pkg/cache"
	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartistry"

	// redisEnv names the environment variable that selects a Redis cache.
	redisEnv = "CHARTISTRY_REDIS_URL"
)

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
// The persistent --verbose and --quiet flags set the log level before any
// subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose, quiet bool
	root := &cobra.Command{
		Use:   appName,
		Short: "Chartistry lays out and renders declarative line charts",
		Long: `Chartistry lays out line charts from TOML definitions: titles, tick labels
and legends are stacked around the plot area, data is loaded from files,
MongoDB or Prometheus, and the result is rendered to SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case verbose:
				c.SetLogLevel(LogDebug)
			case quiet:
				c.SetLogLevel(log.WarnLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-chart stage timings")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log warnings and errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ExitCode maps a command error to the process exit status: 130 for an
// interrupt, 2 for a rejected definition or flag, 3 for a missing file and
// 4 for an unreachable data source.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidSource,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDimensions, errors.ErrCodeInvalidPath:
		return 2
	case errors.ErrCodeNotFound:
		return 3
	case errors.ErrCodeSourceUnavailable, errors.ErrCodeTimeout:
		return 4
	}
	return 1
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backing a runner.
type cacheFlags struct {
	noCache bool
	redis   string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redis, "redis", os.Getenv(redisEnv), "Redis URL for a shared cache (default: local files)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redis != "" {
		return cache.OpenRedis(ctx, f.redis, appName+":")
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartistry/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Definitions
// =============================================================================

// loadDefinitions loads every argument. Directories contribute all their
// definition files.
func loadDefinitions(args []string) ([]*config.Definition, error) {
	var defs []*config.Definition
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "chart definition %s", arg)
		}
		if info.IsDir() {
			found, err := config.LoadDir(arg)
			if err != nil {
				return nil, err
			}
			defs = append(defs, found...)
			continue
		}
		def, err := config.Load(arg)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if len(defs) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no chart definitions found")
	}
	return defs, nil
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

// outputPath names the file written for def in format under dir.
func outputPath(dir string, def *config.Definition, format string) string {
	if dir == "" {
		dir = def.Dir
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", def.Name, format))
}
