// Package pipeline provides the load → layout → render pipeline for chart
// definitions.
//
// The CLI and the render server both run charts through this package, so
// caching and defaults behave the same on every entry point.
//
// # Stages
//
//  1. Load: read the definition's data source into a source.Table
//  2. Layout: mount the chart in a fresh reactive runtime and observe the
//     requested container size
//  3. Render: serialise the mounted chart in the requested formats
//
// Loaded tables and rendered artifacts are cached; layouts are not, since
// mounting is cheap next to loading.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Definition: def,
//	    Width:      1200,
//	    Formats:    []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/cache"
	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/series"
	"github.com/matzehuels/chartistry/pkg/source"
)

// Default container size, used when the caller does not measure one.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 400.0
)

// Output formats.
const (
	// FormatSVG is the chart itself.
	FormatSVG = "svg"
	// FormatJSON is the layout document; see Document.
	FormatJSON = "json"
	// FormatDOT is the chart's reactive dependency graph in Graphviz DOT.
	FormatDOT = "dot"
	// FormatXLSX is the loaded table as an Excel workbook.
	FormatXLSX = "xlsx"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatXLSX: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Options configures one pipeline run.
type Options struct {
	Definition *config.Definition `json:"-"`

	// Width and Height are the container size the chart observes. The
	// definition's aspect policy decides the final size.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Formats []string `json:"formats,omitempty"`
	// Refresh bypasses the data cache.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Table *source.Table
	// DataHash is the content hash of Table.
	DataHash string
	Layout   layout.Snapshot
	// Width and Height are the resolved outer size.
	Width, Height float64
	Lines         []series.Entry
	Artifacts     map[string][]byte
	Stats         Stats
	CacheInfo     CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Columns    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LoadHit   bool
	RenderHit bool
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, dot, xlsx)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Definition == nil {
		return errors.New(errors.ErrCodeInvalidInput, "definition is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills the container size and logger.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies the layout defaults and checks the size.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults renders SVG when no format is given.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies the render defaults and checks the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns the cache key options of one artifact.
func (o *Options) ArtifactKeyOpts(format, dataHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Width:    o.Width,
		Height:   o.Height,
		DataHash: dataHash,
	}
}

func (o *Options) String() string {
	name := ""
	if o.Definition != nil {
		name = o.Definition.Name
	}
	return fmt.Sprintf("%s@%gx%g%v", name, o.Width, o.Height, o.Formats)
}
