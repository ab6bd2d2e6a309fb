package layout

import (
	"math"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/projection"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

// InnerEnv is what an inner overlay is resolved against.
type InnerEnv struct {
	Scope   *reactive.Scope
	Attr    Attr
	XRange  reactive.Reader[geom.Interval]
	YRange  reactive.Reader[geom.Interval]
	Entries reactive.Reader[[]series.Entry]
}

// InnerComponent is the declarative form of an overlay drawn inside the
// inner rectangle.
type InnerComponent interface {
	ResolveInner(env InnerEnv) InnerResolved
}

// InnerResolved is an overlay bound to a chart.
type InnerResolved interface {
	Render(ctx InnerContext) *scene.Node
}

// InnerContext carries the finished plotting area.
type InnerContext struct {
	Inner      geom.Bounds
	Projection projection.Projection
}

// Inset places a w by h box against edge of inner, aligned by anchor along
// that edge. The size is clamped to inner.
func Inset(inner geom.Bounds, edge geom.Edge, anchor geom.Anchor, w, h float64) geom.Bounds {
	w = clampSize(w, inner.Width())
	h = clampSize(h, inner.Height())

	left := anchor.MapPoints(inner.Left, inner.CentreX()-w/2, inner.Right-w)
	top := anchor.MapPoints(inner.Top, inner.CentreY()-h/2, inner.Bottom-h)
	switch edge {
	case geom.Top:
		top = inner.Top
	case geom.Bottom:
		top = inner.Bottom - h
	case geom.Left:
		left = inner.Left
	case geom.Right:
		left = inner.Right - w
	}
	return geom.FromPoints(left, top, left+w, top+h)
}

func clampSize(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, max)
}

// InsetLegend is a legend box pinned inside the plotting area.
type InsetLegend struct {
	Edge   geom.Edge
	Anchor geom.Anchor
	Attr   Attr
}

func insetLegend(edge geom.Edge, anchor geom.Anchor) *InsetLegend {
	return &InsetLegend{Edge: edge, Anchor: anchor}
}

// Constructors for the eight inset positions.
func TopLeft() *InsetLegend     { return insetLegend(geom.Top, geom.Start) }
func Top() *InsetLegend         { return insetLegend(geom.Top, geom.Middle) }
func TopRight() *InsetLegend    { return insetLegend(geom.Top, geom.End) }
func BottomLeft() *InsetLegend  { return insetLegend(geom.Bottom, geom.Start) }
func Bottom() *InsetLegend      { return insetLegend(geom.Bottom, geom.Middle) }
func BottomRight() *InsetLegend { return insetLegend(geom.Bottom, geom.End) }
func Left() *InsetLegend        { return insetLegend(geom.Left, geom.Middle) }
func Right() *InsetLegend       { return insetLegend(geom.Right, geom.Middle) }

func (l *InsetLegend) ResolveInner(env InnerEnv) InnerResolved {
	entries := env.Entries
	if entries == nil {
		entries = reactive.Of[[]series.Entry](nil)
	}
	return &resolvedInsetLegend{legend: l, entries: entries, attr: l.Attr.Inherit(env.Attr)}
}

type resolvedInsetLegend struct {
	legend  *InsetLegend
	entries reactive.Reader[[]series.Entry]
	attr    Attr
}

func (r *resolvedInsetLegend) Render(ctx InnerContext) *scene.Node {
	entries := r.entries.Get()
	font, pad := r.attr.font(), r.attr.padding()
	vertical := !r.legend.Edge.IsHorizontal()

	w, h := legendSize(entries, font, pad, vertical)
	box := Inset(ctx.Inner, r.legend.Edge, r.legend.Anchor, w, h)
	n := scene.New("inset-legend", box).WithDebug(r.attr.debug())
	if len(entries) == 0 {
		return n
	}
	n.Add(scene.Rect{Bounds: box, Fill: "rgba(255,255,255,0.85)", Stroke: "#dddddd"})
	drawLegend(n, entries, font, pad, box, vertical)
	return n
}

// GridLine draws lines across the plotting area at the ticks of an axis.
type GridLine[T ticks.Value] struct {
	// Ticks is the tick labels component whose ticks are followed.
	Ticks  *TickLabels[T]
	Colour string
	Width  float64
	// vertical lines follow the x axis.
	vertical bool
}

// XGridLine draws vertical lines at the x ticks.
func XGridLine[T ticks.Value](t *TickLabels[T]) *GridLine[T] {
	return &GridLine[T]{Ticks: t, vertical: true}
}

// YGridLine draws horizontal lines at the y ticks.
func YGridLine[T ticks.Value](t *TickLabels[T]) *GridLine[T] {
	return &GridLine[T]{Ticks: t}
}

func (g *GridLine[T]) ResolveInner(env InnerEnv) InnerResolved {
	t := g.Ticks
	if t == nil {
		t = NewTickLabels[T]()
	}
	rng := env.YRange
	if g.vertical {
		rng = env.XRange
	}
	if rng == nil {
		rng = reactive.Of(geom.EmptyInterval)
	}
	return &resolvedGrid[T]{grid: g, ticks: t, rng: rng, attr: t.Attr.Inherit(env.Attr)}
}

type resolvedGrid[T ticks.Value] struct {
	grid  *GridLine[T]
	ticks *TickLabels[T]
	rng   reactive.Reader[geom.Interval]
	attr  Attr
}

func (r *resolvedGrid[T]) Render(ctx InnerContext) *scene.Node {
	in := ctx.Inner
	class := "grid-y"
	if r.grid.vertical {
		class = "grid-x"
	}
	n := scene.New(class, in)

	length := in.Height()
	if r.grid.vertical {
		length = in.Width()
	}
	colour := r.grid.Colour
	if colour == "" {
		colour = "#eeeeee"
	}
	set := r.ticks.generate(r.grid.vertical, length, r.rng.Get(), r.attr.font(), r.attr.padding())
	for tk := range set.All() {
		if r.grid.vertical {
			x := in.Left + tk.Position
			n.Add(scene.Line{X1: x, Y1: in.Top, X2: x, Y2: in.Bottom, Colour: colour, Width: r.grid.Width})
		} else {
			y := in.Bottom - tk.Position
			n.Add(scene.Line{X1: in.Left, Y1: y, X2: in.Right, Y2: y, Colour: colour, Width: r.grid.Width})
		}
	}
	return n
}

// Placement is where an AxisMarker is drawn.
type Placement int

const (
	// Along one inner edge.
	PlaceTop Placement = iota
	PlaceRight
	PlaceBottom
	PlaceLeft
	// At data zero, clamped to the plotting area.
	PlaceHorizontalZero
	PlaceVerticalZero
)

// AxisMarker draws a line along an inner edge or through zero.
type AxisMarker struct {
	Placement Placement
	Colour    string
	Width     float64
}

// NewAxisMarker returns a marker at p.
func NewAxisMarker(p Placement) *AxisMarker { return &AxisMarker{Placement: p} }

func (m *AxisMarker) ResolveInner(InnerEnv) InnerResolved { return m }

func (m *AxisMarker) Render(ctx InnerContext) *scene.Node {
	in := ctx.Inner
	var x1, y1, x2, y2 float64
	switch m.Placement {
	case PlaceTop:
		x1, y1, x2, y2 = in.Left, in.Top, in.Right, in.Top
	case PlaceRight:
		x1, y1, x2, y2 = in.Right, in.Top, in.Right, in.Bottom
	case PlaceLeft:
		x1, y1, x2, y2 = in.Left, in.Top, in.Left, in.Bottom
	case PlaceHorizontalZero:
		y := clampTo(ctx.Projection.Y(0), in.Top, in.Bottom)
		x1, y1, x2, y2 = in.Left, y, in.Right, y
	case PlaceVerticalZero:
		x := clampTo(ctx.Projection.X(0), in.Left, in.Right)
		x1, y1, x2, y2 = x, in.Top, x, in.Bottom
	default:
		x1, y1, x2, y2 = in.Left, in.Bottom, in.Right, in.Bottom
	}
	colour := m.Colour
	if colour == "" {
		colour = "#333333"
	}
	return scene.New("axis-marker", in).
		Add(scene.Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Colour: colour, Width: m.Width})
}

func clampTo(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return hi
	}
	return math.Max(lo, math.Min(hi, v))
}
