package layout

import (
	"math"
	"time"

	"github.com/matzehuels/chartistry/pkg/fonts"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

// TickLabels labels an axis with generated ticks.
type TickLabels[T ticks.Value] struct {
	// Generator places the ticks. Nil uses ticks.Default.
	Generator ticks.Generator[T]
	Attr      Attr
}

// NewTickLabels returns tick labels using the default generator for T.
func NewTickLabels[T ticks.Value]() *TickLabels[T] { return &TickLabels[T]{} }

// AlignedFloats returns tick labels for a numeric axis.
func AlignedFloats() *TickLabels[float64] {
	return &TickLabels[float64]{Generator: ticks.AlignedFloats{}}
}

// Timestamps returns tick labels for a time axis.
func Timestamps() *TickLabels[time.Time] {
	return &TickLabels[time.Time]{Generator: ticks.Timestamps{}}
}

// WithGenerator replaces the generator and returns t.
func (t *TickLabels[T]) WithGenerator(g ticks.Generator[T]) *TickLabels[T] {
	t.Generator = g
	return t
}

func (t *TickLabels[T]) generator() ticks.Generator[T] {
	if t.Generator == nil {
		return ticks.Default[T]()
	}
	return t.Generator
}

// generate places ticks for rng over length pixels along an edge. Horizontal
// edges measure labels by width, vertical ones by line height.
func (t *TickLabels[T]) generate(horizontal bool, length float64, rng geom.Interval, font fonts.Font, pad geom.Padding) ticks.Set[T] {
	if rng.IsEmpty() {
		return ticks.Set[T]{}
	}
	var span ticks.Span
	if horizontal {
		span = ticks.HorizontalSpan{Width: length, Metrics: font, Padding: pad.Width()}
	} else {
		span = ticks.VerticalSpan{Height: length, Metrics: font, Padding: pad.Height()}
	}
	return t.generator().Generate(ticks.FromPosition[T](rng.Min), ticks.FromPosition[T](rng.Max), span)
}

func (t *TickLabels[T]) Resolve(env Env) Resolved {
	rng := env.Range
	if rng == nil {
		rng = reactive.Of(geom.EmptyInterval)
	}
	return &resolvedTicks[T]{
		labels: t,
		scope:  env.Scope,
		edge:   env.Edge,
		rng:    rng,
		attr:   t.Attr.Inherit(env.Attr),
	}
}

type resolvedTicks[T ticks.Value] struct {
	labels *TickLabels[T]
	scope  *reactive.Scope
	edge   geom.Edge
	rng    reactive.Reader[geom.Interval]
	attr   Attr
}

// Thickness is one line plus padding on horizontal edges. On vertical edges
// ticks are generated over the available height and the widest label plus
// padding is taken.
func (r *resolvedTicks[T]) Thickness(avail reactive.Reader[float64]) reactive.Reader[float64] {
	return reactive.NewMemo(r.scope, func() float64 {
		font, pad := r.attr.font(), r.attr.padding()
		if r.edge.IsHorizontal() {
			return font.LineHeight() + pad.Height()
		}
		set := r.labels.generate(false, avail.Get(), r.rng.Get(), font, pad)
		if set.Len() == 0 {
			return 0
		}
		widest := 0.0
		for tk := range set.All() {
			widest = math.Max(widest, font.TextWidth(tk.Label))
		}
		return widest + pad.Width()
	}, reactive.WithName[float64]("thickness:ticks"))
}

func (r *resolvedTicks[T]) Render(ctx RenderContext) *scene.Node {
	b, inner := ctx.Bounds, ctx.Inner
	n := scene.New("tick-labels", b).WithDebug(r.attr.debug())
	font, pad := r.attr.font(), r.attr.padding()

	horizontal := ctx.Edge.IsHorizontal()
	length := inner.Height()
	if horizontal {
		length = inner.Width()
	}
	set := r.labels.generate(horizontal, length, r.rng.Get(), font, pad)

	for tk := range set.All() {
		op := scene.Text{Text: tk.Label, Size: font.FontSize()}
		switch ctx.Edge {
		case geom.Top, geom.Bottom:
			op.X, op.Y, op.Anchor = inner.Left+tk.Position, b.CentreY(), geom.Middle
		case geom.Left:
			op.X, op.Y, op.Anchor = b.Right-pad.Right, inner.Bottom-tk.Position, geom.End
		case geom.Right:
			op.X, op.Y, op.Anchor = b.Left+pad.Left, inner.Bottom-tk.Position, geom.Start
		}
		n.Add(op)
	}
	return n
}
