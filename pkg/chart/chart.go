package chart

import (
	"errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chartistry/pkg/aspect"
	"github.com/matzehuels/chartistry/pkg/fonts"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/projection"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

// ErrUnmounted is returned by operations on an unmounted chart.
var ErrUnmounted = errors.New("chart: unmounted")

// dims is the resolved outer size; ok is false until the container has been
// measured.
type dims struct {
	known aspect.Known
	ok    bool
}

type pointer struct {
	X, Y   float64
	Active bool
}

type callback struct {
	fn func(*scene.Node)
}

// Chart is a mounted line chart. It is not safe for concurrent use: all
// calls must come from the goroutine driving its runtime.
type Chart[T any, X, Y ticks.Value] struct {
	id     string
	scope  *reactive.Scope
	logger *log.Logger
	opts   Options[T, X, Y]

	container *reactive.Signal[aspect.Size]
	measured  *reactive.Signal[bool]
	pointer   *reactive.Signal[pointer]

	dims     *reactive.Memo[dims]
	font     reactive.Reader[fonts.Font]
	padding  reactive.Reader[geom.Padding]
	data     *series.Data[T, X, Y]
	layout   *layout.Layout
	proj     *reactive.Memo[projection.Projection]
	overlays []layout.InnerResolved
	tree     *reactive.Memo[*scene.Node]

	state     State
	callbacks []*callback
}

// New mounts a chart in a child scope of owner. Disposing owner unmounts
// the chart.
func New[T any, X, Y ticks.Value](owner *reactive.Scope, opts Options[T, X, Y]) *Chart[T, X, Y] {
	opts.setDefaults()
	s := owner.Child()
	c := &Chart[T, X, Y]{
		id:    uuid.NewString(),
		scope: s,
		opts:  opts,
	}
	c.logger = opts.Logger.With("chart", c.id[:8])

	c.container = reactive.NewSignal(s, aspect.Size{},
		reactive.WithName[aspect.Size]("container"), reactive.WithEqual(reactive.Eq[aspect.Size]))
	c.measured = reactive.NewSignal(s, false, reactive.WithName[bool]("measured"))
	c.pointer = reactive.NewSignal(s, pointer{},
		reactive.WithName[pointer]("pointer"), reactive.WithEqual(reactive.Eq[pointer]))

	c.dims = reactive.NewMemo(s, func() dims {
		k, ok := opts.AspectRatio.Get().Resolve(c.container.Get(), c.measured.Get())
		return dims{known: k, ok: ok}
	}, reactive.WithName[dims]("aspect"), reactive.WithEqual(reactive.Eq[dims]))
	outer := reactive.Map(s, c.dims, func(d dims) geom.Bounds { return d.known.Bounds() },
		reactive.WithName[geom.Bounds]("outer"), reactive.WithEqual(reactive.Eq[geom.Bounds]))

	c.font = reactive.Map(s, opts.Font, fonts.Font.OrDefault,
		reactive.WithName[fonts.Font]("font"), reactive.WithEqual(reactive.Eq[fonts.Font]))
	c.padding = opts.Padding
	if c.padding == nil {
		c.padding = reactive.Map(s, c.font, func(f fonts.Font) geom.Padding { return geom.Uniform(f.CharWidth()) },
			reactive.WithName[geom.Padding]("padding"), reactive.WithEqual(reactive.Eq[geom.Padding]))
	}
	attr := layout.Attr{Font: c.font, Padding: c.padding, Debug: opts.Debug}

	c.data = series.NewData(s, opts.Series, opts.Data)
	xRange := reactive.Map(s, c.data.PositionRange, func(e geom.Extent) geom.Interval { return e.X },
		reactive.WithName[geom.Interval]("x_interval"), reactive.WithEqual(reactive.Eq[geom.Interval]))
	yRange := reactive.Map(s, c.data.PositionRange, func(e geom.Extent) geom.Interval { return e.Y },
		reactive.WithName[geom.Interval]("y_interval"), reactive.WithEqual(reactive.Eq[geom.Interval]))

	resolve := func(edge geom.Edge, cs []layout.EdgeComponent) []layout.Resolved {
		env := layout.Env{Scope: s, Edge: edge, Attr: attr, Range: yRange, Entries: c.data.Entries}
		if edge.IsHorizontal() {
			env.Range = xRange
		}
		out := make([]layout.Resolved, 0, len(cs))
		for _, comp := range cs {
			if comp != nil {
				out = append(out, comp.Resolve(env))
			}
		}
		return out
	}
	c.layout = layout.Compose(s, outer,
		resolve(geom.Top, opts.Top),
		resolve(geom.Right, opts.Right),
		resolve(geom.Bottom, opts.Bottom),
		resolve(geom.Left, opts.Left),
	)
	c.proj = projection.Memo(s, c.layout.Inner, c.data.PositionRange)

	ienv := layout.InnerEnv{Scope: s, Attr: attr, XRange: xRange, YRange: yRange, Entries: c.data.Entries}
	for _, comp := range opts.Inner {
		if comp != nil {
			c.overlays = append(c.overlays, comp.ResolveInner(ienv))
		}
	}

	c.tree = reactive.NewMemo(s, c.draw, reactive.WithName[*scene.Node]("scene"))
	reactive.NewEffect(s, c.emit, reactive.WithName[struct{}]("render"))
	s.OnCleanup(func() {
		c.callbacks = nil
		c.logger.Debug("unmounted", "from", c.state)
		c.state = Unmounted
	})

	c.logger.Debug("mounted", "aspect", opts.AspectRatio.Peek(), "lines", len(opts.Series.Lines))
	return c
}

// ID returns the chart's instance id.
func (c *Chart[T, X, Y]) ID() string { return c.id }

// State returns the lifecycle stage.
func (c *Chart[T, X, Y]) State() State { return c.state }

// Data returns the chart's aggregated series data.
func (c *Chart[T, X, Y]) Data() *series.Data[T, X, Y] { return c.data }

// Observe records the container's measured size. The first call moves the
// chart out of Unmeasured.
func (c *Chart[T, X, Y]) Observe(width, height float64) {
	if c.state == Unmounted {
		return
	}
	c.scope.Runtime().Batch(func() {
		c.container.Set(aspect.Size{Width: width, Height: height})
		c.measured.Set(true)
	})
}

// SetPointer moves the tooltip pointer to pixel (px, py).
func (c *Chart[T, X, Y]) SetPointer(px, py float64) {
	if c.state == Unmounted {
		return
	}
	c.pointer.Set(pointer{X: px, Y: py, Active: true})
}

// ClearPointer hides the tooltip.
func (c *Chart[T, X, Y]) ClearPointer() {
	if c.state == Unmounted {
		return
	}
	c.pointer.Set(pointer{})
}

// Toggle flips the visibility of line i.
func (c *Chart[T, X, Y]) Toggle(i int) {
	if c.state == Unmounted {
		return
	}
	c.data.Toggle(i)
}

// OnRender registers fn to receive the scene. fn is called right away with
// the current scene and again after every re-render, until the returned
// cancel function is called or the chart is unmounted.
func (c *Chart[T, X, Y]) OnRender(fn func(*scene.Node)) (cancel func()) {
	if c.state == Unmounted || fn == nil {
		return func() {}
	}
	cb := &callback{fn: fn}
	c.callbacks = append(c.callbacks, cb)
	fn(c.tree.Peek())
	return func() {
		c.callbacks = slices.DeleteFunc(c.callbacks, func(x *callback) bool { return x == cb })
	}
}

// Scene returns the current scene without tracking.
func (c *Chart[T, X, Y]) Scene() *scene.Node {
	if c.state == Unmounted {
		return nil
	}
	return c.tree.Peek()
}

// Size returns the resolved outer size. ok is false while unmeasured.
func (c *Chart[T, X, Y]) Size() (width, height float64, ok bool) {
	if c.state == Unmounted {
		return 0, 0, false
	}
	d := c.dims.Peek()
	return d.known.Width, d.known.Height, d.ok
}

// Layout returns a snapshot of the composed layout. ok is false while
// unmeasured.
func (c *Chart[T, X, Y]) Layout() (layout.Snapshot, bool) {
	if c.state == Unmounted || !c.dims.Peek().ok {
		return layout.Snapshot{}, false
	}
	return c.layout.Snapshot(), true
}

// Projection returns the current data-to-pixel projection. ok is false
// while unmeasured.
func (c *Chart[T, X, Y]) Projection() (projection.Projection, bool) {
	if c.state == Unmounted || !c.dims.Peek().ok {
		return projection.Projection{}, false
	}
	return c.proj.Peek(), true
}

// WriteSVG serialises the current scene.
func (c *Chart[T, X, Y]) WriteSVG(w io.Writer, opts ...scene.SVGOption) error {
	if c.state == Unmounted {
		return ErrUnmounted
	}
	root := c.tree.Peek()
	d := c.dims.Peek()
	return scene.WriteSVG(w, root, d.known.Width, d.known.Height, opts...)
}

// Unmount disposes every reactive node of the chart. No render callback
// fires afterwards. Unmount is idempotent.
func (c *Chart[T, X, Y]) Unmount() {
	if c.state == Unmounted {
		return
	}
	c.scope.Dispose()
}

func (c *Chart[T, X, Y]) advance(to State) {
	if c.state >= to || c.state == Unmounted {
		return
	}
	c.logger.Debug("state", "from", c.state, "to", to)
	c.state = to
}

// emit is the render effect body.
func (c *Chart[T, X, Y]) emit() {
	root := c.tree.Get()
	if c.state >= LaidOut {
		c.advance(Rendering)
	}
	c.scope.Runtime().Untrack(func() {
		for _, cb := range slices.Clone(c.callbacks) {
			cb.fn(root)
		}
	})
}
