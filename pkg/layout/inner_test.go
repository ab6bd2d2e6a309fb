package layout

import (
	"testing"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/projection"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
)

func TestInset(t *testing.T) {
	inner := geom.New(700, 350)

	tests := []struct {
		name   string
		edge   geom.Edge
		anchor geom.Anchor
		w, h   float64
		want   geom.Bounds
	}{
		{"top end", geom.Top, geom.End, 120, 40, geom.Bounds{Top: 0, Right: 700, Bottom: 40, Left: 580}},
		{"top start", geom.Top, geom.Start, 120, 40, geom.FromPoints(0, 0, 120, 40)},
		{"top middle", geom.Top, geom.Middle, 120, 40, geom.FromPoints(290, 0, 410, 40)},
		{"bottom end", geom.Bottom, geom.End, 120, 40, geom.FromPoints(580, 310, 700, 350)},
		{"left middle", geom.Left, geom.Middle, 100, 50, geom.FromPoints(0, 150, 100, 200)},
		{"right start", geom.Right, geom.Start, 100, 50, geom.FromPoints(600, 0, 700, 50)},
		{"oversized", geom.Top, geom.End, 900, 500, geom.FromPoints(0, 0, 700, 350)},
		{"negative", geom.Bottom, geom.Start, -10, -10, geom.FromPoints(0, 350, 0, 350)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inset(inner, tt.edge, tt.anchor, tt.w, tt.h); got != tt.want {
				t.Errorf("Inset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsetOffsetInner(t *testing.T) {
	inner := geom.FromPoints(50, 30, 750, 380)
	got := Inset(inner, geom.Top, geom.End, 120, 40)
	if want := geom.FromPoints(630, 30, 750, 70); got != want {
		t.Errorf("Inset() = %v, want %v", got, want)
	}
}

func TestInsetLegendRender(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()

	env := InnerEnv{
		Scope: s,
		Attr:  Defaults().WithPadding(geom.Uniform(2)),
		Entries: reactive.Of([]series.Entry{
			{Name: "a", Colour: "#f00", Visible: true},
			{Name: "b", Colour: "#0f0", Visible: false},
		}),
	}
	inner := geom.New(700, 350)
	n := TopRight().ResolveInner(env).Render(InnerContext{Inner: inner})

	// Row: two entries of 20+5+10 separated by 10, plus 4 padding.
	if n.Bounds.Width() != 84 || n.Bounds.Height() != 20 {
		t.Errorf("legend box = %v, want 84x20", n.Bounds)
	}
	if n.Bounds.Right != 700 || n.Bounds.Top != 0 {
		t.Errorf("legend not pinned top right: %v", n.Bounds)
	}

	var hidden bool
	for _, op := range n.Ops {
		if l, ok := op.(scene.Line); ok && l.Colour == hiddenColour {
			hidden = true
		}
	}
	if !hidden {
		t.Error("hidden entry should be drawn with the hidden colour")
	}
}

func TestGridLineFollowsTicks(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()

	xTicks := AlignedFloats()
	env := InnerEnv{
		Scope:  s,
		Attr:   Defaults(),
		XRange: reactive.Of(geom.Interval{Min: 0, Max: 10}),
		YRange: reactive.Of(geom.Interval{Min: 0, Max: 1}),
	}
	inner := geom.FromPoints(40, 0, 440, 300)
	n := XGridLine(xTicks).ResolveInner(env).Render(InnerContext{Inner: inner})

	if len(n.Ops) != 11 {
		t.Fatalf("got %d grid lines, want 11", len(n.Ops))
	}
	first := n.Ops[0].(scene.Line)
	last := n.Ops[10].(scene.Line)
	if first.X1 != 40 || last.X1 != 440 || first.Y1 != 0 || first.Y2 != 300 {
		t.Errorf("grid lines span %v..%v", first, last)
	}

	labels := xTicks.Resolve(Env{Scope: s, Edge: geom.Bottom, Attr: Defaults(), Range: env.XRange}).
		Render(RenderContext{Edge: geom.Bottom, Bounds: geom.FromPoints(40, 300, 440, 336), Inner: inner})
	if len(labels.Ops) != len(n.Ops) {
		t.Errorf("labels (%d) and grid lines (%d) disagree", len(labels.Ops), len(n.Ops))
	}
	for i, op := range labels.Ops {
		if op.(scene.Text).X != n.Ops[i].(scene.Line).X1 {
			t.Errorf("tick %d: label at %v, grid line at %v", i, op.(scene.Text).X, n.Ops[i].(scene.Line).X1)
		}
	}
}

func TestAxisMarkerZero(t *testing.T) {
	inner := geom.New(100, 100)
	proj := projection.New(inner, geom.Extent{
		X: geom.Interval{Min: -1, Max: 1},
		Y: geom.Interval{Min: 1, Max: 2},
	})

	n := NewAxisMarker(PlaceVerticalZero).Render(InnerContext{Inner: inner, Projection: proj})
	if l := n.Ops[0].(scene.Line); l.X1 != 50 || l.X2 != 50 {
		t.Errorf("vertical zero at %v, want 50", l.X1)
	}
	// Zero is below the y range; the marker sticks to the bottom edge.
	n = NewAxisMarker(PlaceHorizontalZero).Render(InnerContext{Inner: inner, Projection: proj})
	if l := n.Ops[0].(scene.Line); l.Y1 != 100 {
		t.Errorf("horizontal zero at %v, want 100", l.Y1)
	}
}
