package layout

import (
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
)

// Env is what an edge component is resolved against.
type Env struct {
	Scope *reactive.Scope
	Edge  geom.Edge
	// Attr holds the chart-level attributes, already merged with the
	// library defaults.
	Attr Attr
	// Range is the data range of the axis running along the edge, in
	// position space: x for top and bottom, y for left and right.
	Range reactive.Reader[geom.Interval]
	// Entries lists the chart's lines for legends.
	Entries reactive.Reader[[]series.Entry]
}

// EdgeComponent is the declarative form of an edge decoration.
type EdgeComponent interface {
	Resolve(env Env) Resolved
}

// Resolved is an edge component bound to a chart.
type Resolved interface {
	// Thickness returns the room the component needs perpendicular to its
	// edge. avail is the span available along the edge; see the package
	// documentation for which span each edge receives. Compose calls it
	// once per component.
	Thickness(avail reactive.Reader[float64]) reactive.Reader[float64]
	// Render draws the component into its final slot.
	Render(ctx RenderContext) *scene.Node
}

// RenderContext carries the bounds a component renders into.
type RenderContext struct {
	Edge geom.Edge
	// Bounds is the component's slot.
	Bounds geom.Bounds
	// Inner is the plotting area.
	Inner geom.Bounds
}

// Custom is a user-supplied edge component.
type Custom struct {
	Class string
	// Size returns the thickness for the available span. Nil means zero.
	Size func(avail float64) float64
	// Draw returns the operations to draw inside ctx.Bounds. May be nil.
	Draw func(ctx RenderContext) []scene.Op
	Attr Attr
}

// Spacer returns a component that only reserves thickness.
func Spacer(thickness float64) *Custom {
	return &Custom{
		Class: "spacer",
		Size:  func(float64) float64 { return thickness },
	}
}

func (c *Custom) Resolve(env Env) Resolved {
	return &resolvedCustom{c: c, scope: env.Scope, attr: c.Attr.Inherit(env.Attr)}
}

type resolvedCustom struct {
	c     *Custom
	scope *reactive.Scope
	attr  Attr
}

func (r *resolvedCustom) Thickness(avail reactive.Reader[float64]) reactive.Reader[float64] {
	return reactive.NewMemo(r.scope, func() float64 {
		if r.c.Size == nil {
			return 0
		}
		return r.c.Size(avail.Get())
	}, reactive.WithName[float64]("thickness:"+r.class()))
}

func (r *resolvedCustom) Render(ctx RenderContext) *scene.Node {
	n := scene.New(r.class(), ctx.Bounds).WithDebug(r.attr.debug())
	if r.c.Draw != nil {
		n.Add(r.c.Draw(ctx)...)
	}
	return n
}

func (r *resolvedCustom) class() string {
	if r.c.Class == "" {
		return "custom"
	}
	return r.c.Class
}
