package config

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/chart"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/series"
	"github.com/matzehuels/chartistry/pkg/source"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

var insets = map[string]func() *layout.InsetLegend{
	"top_left":     layout.TopLeft,
	"top":          layout.Top,
	"top_right":    layout.TopRight,
	"bottom_left":  layout.BottomLeft,
	"bottom":       layout.Bottom,
	"bottom_right": layout.BottomRight,
	"left":         layout.Left,
	"right":        layout.Right,
}

var placements = map[string]layout.Placement{
	"top":             layout.PlaceTop,
	"right":           layout.PlaceRight,
	"bottom":          layout.PlaceBottom,
	"left":            layout.PlaceLeft,
	"horizontal_zero": layout.PlaceHorizontalZero,
	"vertical_zero":   layout.PlaceVerticalZero,
}

// Mount builds a chart plotting t in a child scope of owner. The x axis
// holds timestamps when t.Time is set.
func Mount(owner *reactive.Scope, d *Definition, t *source.Table, logger *log.Logger) (chart.Handle, error) {
	if t.Time {
		return mount[time.Time](owner, d, t, logger)
	}
	return mount[float64](owner, d, t, logger)
}

func mount[X ticks.Value](owner *reactive.Scope, d *Definition, t *source.Table, logger *log.Logger) (chart.Handle, error) {
	opts, err := Options[X](d, t)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		opts.Logger = logger.With("name", d.Name)
	}
	return chart.New(owner, opts), nil
}

// Options returns the chart options for d plotting t, with static inputs.
func Options[X ticks.Value](d *Definition, t *source.Table) (chart.Options[source.Row, X, float64], error) {
	var opts chart.Options[source.Row, X, float64]
	r, err := d.Ratio()
	if err != nil {
		return opts, err
	}
	opts.AspectRatio = reactive.Of(r)
	opts.Font = reactive.Of(d.Font.OrDefault())
	if d.Padding != nil {
		opts.Padding = reactive.Of(geom.Uniform(*d.Padding))
	}
	opts.Debug = reactive.Of(d.Debug)
	opts.Tooltip = d.Tooltip
	opts.Series = seriesFor[X](d, t)
	opts.Data = reactive.Of(t.Rows())

	b := &builder[X]{}
	for _, edge := range geom.Edges {
		var cs []layout.EdgeComponent
		if edge == geom.Top && d.Title != "" {
			cs = append(cs, layout.Title(d.Title))
		}
		for _, c := range d.Edges.Side(edge) {
			cs = append(cs, b.edge(edge, c))
		}
		switch edge {
		case geom.Top:
			opts.Top = cs
		case geom.Right:
			opts.Right = cs
		case geom.Bottom:
			opts.Bottom = cs
		case geom.Left:
			opts.Left = cs
		}
	}
	for _, o := range d.Inner {
		opts.Inner = append(opts.Inner, b.overlay(o))
	}
	return opts, nil
}

// seriesFor plots every column of t, styled by the matching line
// definitions.
func seriesFor[X ticks.Value](d *Definition, t *source.Table) series.Series[source.Row, X, float64] {
	s := series.New[source.Row, X, float64](func(r source.Row) X { return ticks.FromPosition[X](r.X) })
	for i, col := range t.Columns {
		line := series.Line[source.Row, float64]{
			Name: col.Name,
			Y:    func(r source.Row) float64 { return r.Y[i] },
		}
		for _, def := range d.Lines {
			if def.Column != col.Name {
				continue
			}
			if def.Label != "" {
				line.Name = def.Label
			}
			line.Colour, line.Width = def.Colour, def.Width
		}
		s = s.WithLines(line)
	}
	if d.YMin != nil {
		s = s.WithMinY(*d.YMin)
	}
	if d.YMax != nil {
		s = s.WithMaxY(*d.YMax)
	}
	return s
}

// builder creates components, sharing tick labels between an axis and the
// grid lines that follow it.
type builder[X ticks.Value] struct {
	xTicks *layout.TickLabels[X]
	yTicks *layout.TickLabels[float64]
}

func (b *builder[X]) edge(edge geom.Edge, c ComponentDef) layout.EdgeComponent {
	var attr layout.Attr
	if c.Padding != nil {
		attr = attr.WithPadding(geom.Uniform(*c.Padding))
	}
	switch c.Kind {
	case KindTitle:
		l := layout.Title(c.Text)
		l.Attr = attr
		return l
	case KindLabel:
		l := layout.Label(anchor(c.Anchor, geom.Middle), c.Text)
		l.Attr = attr
		return l
	case KindLegend:
		l := layout.NewLegend(anchor(c.Anchor, geom.Start))
		l.Attr = attr
		return l
	case KindSpacer:
		return layout.Spacer(c.Size)
	}
	if edge.IsHorizontal() {
		t := layout.NewTickLabels[X]()
		t.Attr = attr
		if b.xTicks == nil {
			b.xTicks = t
		}
		return t
	}
	t := layout.NewTickLabels[float64]()
	t.Attr = attr
	if b.yTicks == nil {
		b.yTicks = t
	}
	return t
}

func (b *builder[X]) overlay(o OverlayDef) layout.InnerComponent {
	switch o.Kind {
	case KindGridX:
		g := layout.XGridLine(b.xTicks)
		g.Colour, g.Width = o.Colour, o.Width
		return g
	case KindGridY:
		g := layout.YGridLine(b.yTicks)
		g.Colour, g.Width = o.Colour, o.Width
		return g
	case KindLegend:
		return insets[o.position()]()
	}
	m := layout.NewAxisMarker(placements[o.Placement])
	m.Colour, m.Width = o.Colour, o.Width
	return m
}

func anchor(s string, fallback geom.Anchor) geom.Anchor {
	if s == "" {
		return fallback
	}
	a, err := geom.ParseAnchor(s)
	if err != nil {
		return fallback
	}
	return a
}
