// Package config reads chart definitions from TOML files and turns them into
// mounted charts.
//
// A definition names its data source, the components on each edge and the
// overlays inside the plotting area:
//
//	title = "CPU load"
//	tooltip = true
//
//	[aspect]
//	mode = "outer_width"
//	width = 800
//	ratio = 2.0
//
//	[source]
//	kind = "csv"
//	path = "load.csv"
//	x = "time"
//	y = ["user", "system"]
//
//	[edges]
//	bottom = [{ kind = "ticks" }]
//	left = [{ kind = "label", text = "%" }, { kind = "ticks" }]
//	right = [{ kind = "legend" }]
//
//	[[inner]]
//	kind = "grid_y"
//
// Edge lists are in visual reading order. The x axis is a time axis when the
// loaded table holds timestamps and numeric otherwise.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartistry/pkg/aspect"
	"github.com/matzehuels/chartistry/pkg/cache"
	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/fonts"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/source"
)

// Extension is the file extension of chart definitions.
const Extension = ".toml"

// Edge component kinds.
const (
	KindTitle  = "title"
	KindLabel  = "label"
	KindTicks  = "ticks"
	KindLegend = "legend"
	KindSpacer = "spacer"
)

// Inner overlay kinds. KindLegend is shared with the edges.
const (
	KindGridX  = "grid_x"
	KindGridY  = "grid_y"
	KindMarker = "marker"
)

// Definition is a parsed chart definition.
type Definition struct {
	// Name is the file name without its extension.
	Name string `toml:"-" json:"name"`
	// Dir is the directory data file paths are resolved against.
	Dir string `toml:"-" json:"-"`
	// Hash is the content hash of the definition file.
	Hash string `toml:"-" json:"hash"`

	// Title adds a centred label as the first top component.
	Title  string     `toml:"title" json:"title,omitempty"`
	Aspect AspectDef  `toml:"aspect" json:"aspect"`
	Font   fonts.Font `toml:"font" json:"font"`
	// Padding is the uniform chart padding. Nil pads by one character
	// width.
	Padding *float64 `toml:"padding" json:"padding,omitempty"`
	Debug   bool     `toml:"debug" json:"debug,omitempty"`
	Tooltip bool     `toml:"tooltip" json:"tooltip,omitempty"`

	// YMin and YMax pin the y range.
	YMin *float64 `toml:"y_min" json:"y_min,omitempty"`
	YMax *float64 `toml:"y_max" json:"y_max,omitempty"`

	Source source.Spec  `toml:"source" json:"source"`
	Lines  []LineDef    `toml:"lines" json:"lines,omitempty"`
	Edges  EdgesDef     `toml:"edges" json:"edges"`
	Inner  []OverlayDef `toml:"inner" json:"inner,omitempty"`
}

// AspectDef is the aspect-ratio policy; see aspect.Ratio.
type AspectDef struct {
	// Mode is an aspect.Mode name. Empty means "env".
	Mode   string  `toml:"mode" json:"mode,omitempty"`
	Ratio  float64 `toml:"ratio" json:"ratio,omitempty"`
	Width  float64 `toml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty"`
}

// LineDef styles the line drawn for one source column.
type LineDef struct {
	Column string `toml:"column" json:"column"`
	// Label replaces the column name in legends and tooltips.
	Label  string  `toml:"label" json:"label,omitempty"`
	Colour string  `toml:"colour" json:"colour,omitempty"`
	Width  float64 `toml:"width" json:"width,omitempty"`
}

// EdgesDef lists the components of each edge.
type EdgesDef struct {
	Top    []ComponentDef `toml:"top" json:"top,omitempty"`
	Right  []ComponentDef `toml:"right" json:"right,omitempty"`
	Bottom []ComponentDef `toml:"bottom" json:"bottom,omitempty"`
	Left   []ComponentDef `toml:"left" json:"left,omitempty"`
}

// Side returns the components of edge.
func (e EdgesDef) Side(edge geom.Edge) []ComponentDef {
	switch edge {
	case geom.Top:
		return e.Top
	case geom.Right:
		return e.Right
	case geom.Bottom:
		return e.Bottom
	default:
		return e.Left
	}
}

// ComponentDef is one edge component.
type ComponentDef struct {
	Kind string `toml:"kind" json:"kind"`
	Text string `toml:"text" json:"text,omitempty"`
	// Anchor is "start", "middle" or "end". Labels default to middle,
	// legends to start.
	Anchor string `toml:"anchor" json:"anchor,omitempty"`
	// Size is the thickness of a spacer.
	Size float64 `toml:"size" json:"size,omitempty"`
	// Padding overrides the chart padding for this component.
	Padding *float64 `toml:"padding" json:"padding,omitempty"`
}

// OverlayDef is one inner overlay.
type OverlayDef struct {
	Kind string `toml:"kind" json:"kind"`
	// Position places an inset legend: top_left, top, top_right,
	// bottom_left, bottom, bottom_right, left or right.
	Position string `toml:"position" json:"position,omitempty"`
	// Placement places a marker: top, right, bottom, left,
	// horizontal_zero or vertical_zero.
	Placement string  `toml:"placement" json:"placement,omitempty"`
	Colour    string  `toml:"colour" json:"colour,omitempty"`
	Width     float64 `toml:"width" json:"width,omitempty"`
}

// Load reads and validates the definition at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "chart definition %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, name, filepath.Dir(path))
}

// Parse decodes and validates a definition. Unknown keys are errors.
func Parse(data []byte, name, dir string) (*Definition, error) {
	d := &Definition{Name: name, Dir: dir, Hash: cache.Hash(data)}
	md, err := toml.Decode(string(data), d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadDir loads every definition in dir, sorted by name.
func LoadDir(dir string) ([]*Definition, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "list %s", dir)
	}
	sort.Strings(paths)
	defs := make([]*Definition, 0, len(paths))
	for _, p := range paths {
		d, err := Load(p)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// Ratio returns the aspect policy.
func (d *Definition) Ratio() (aspect.Ratio, error) {
	a := d.Aspect
	if a.Mode == "" {
		return aspect.Env(), nil
	}
	mode, err := aspect.ParseMode(a.Mode)
	if err != nil {
		return aspect.Ratio{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "aspect")
	}
	return aspect.Ratio{Mode: mode, Ratio: a.Ratio, Width: a.Width, Height: a.Height}, nil
}

// Validate checks the definition without touching its data source.
func (d *Definition) Validate() error {
	if err := errors.ValidateChartName(d.Name); err != nil {
		return err
	}
	r, err := d.Ratio()
	if err != nil {
		return err
	}
	switch r.Mode {
	case aspect.ModeEnvWidth, aspect.ModeEnvHeight, aspect.ModeOuterWidth, aspect.ModeOuterHeight:
		if r.Ratio <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "aspect mode %s needs a positive ratio", r.Mode)
		}
	}
	if err := errors.ValidateDimensions(r.Width, r.Height); err != nil {
		return err
	}
	if err := d.Font.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "font")
	}
	if d.Padding != nil && *d.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must be non-negative")
	}
	if err := d.Source.Validate(); err != nil {
		return err
	}

	for _, edge := range geom.Edges {
		for i, c := range d.Edges.Side(edge) {
			if err := c.validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s edge component %d", edge, i)
			}
		}
	}
	for i, o := range d.Inner {
		if err := o.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "inner overlay %d", i)
		}
	}
	return nil
}

func (c ComponentDef) validate() error {
	switch c.Kind {
	case KindTitle, KindTicks:
	case KindLabel, KindLegend:
		if c.Anchor != "" {
			if _, err := geom.ParseAnchor(c.Anchor); err != nil {
				return err
			}
		}
	case KindSpacer:
		if c.Size < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "spacer size must be non-negative")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown edge component %q", c.Kind)
	}
	if c.Padding != nil && *c.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must be non-negative")
	}
	return nil
}

func (o OverlayDef) validate() error {
	switch o.Kind {
	case KindGridX, KindGridY:
	case KindLegend:
		if _, ok := insets[o.position()]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown legend position %q", o.Position)
		}
	case KindMarker:
		if _, ok := placements[o.Placement]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown marker placement %q", o.Placement)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown inner overlay %q", o.Kind)
	}
	return nil
}

func (o OverlayDef) position() string {
	if o.Position == "" {
		return "top_right"
	}
	return o.Position
}
