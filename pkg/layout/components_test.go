package layout

import (
	"testing"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
)

func TestRotatedLabelRender(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()
	b := geom.FromPoints(0, 0, 36, 200)

	tests := []struct {
		edge   geom.Edge
		anchor geom.Anchor
		rotate float64
		x, y   float64
	}{
		// The default 10px padding keeps anchored text off the slot edges.
		{geom.Left, geom.Start, 270, 18, 190},
		{geom.Left, geom.End, 270, 18, 10},
		{geom.Right, geom.Start, 90, 18, 10},
		{geom.Right, geom.Middle, 90, 18, 100},
		{geom.Top, geom.End, 0, 26, 100},
		{geom.Bottom, geom.Start, 0, 10, 100},
	}
	for _, tt := range tests {
		r := Label(tt.anchor, "title").Resolve(testEnv(s, tt.edge))
		n := r.Render(RenderContext{Edge: tt.edge, Bounds: b, Inner: b})
		if len(n.Ops) != 1 {
			t.Fatalf("%v/%v: %d ops", tt.edge, tt.anchor, len(n.Ops))
		}
		op := n.Ops[0].(scene.Text)
		if op.Rotate != tt.rotate || op.X != tt.x || op.Y != tt.y || op.Anchor != tt.anchor {
			t.Errorf("%v/%v: got %+v", tt.edge, tt.anchor, op)
		}
	}
}

func TestRotatedLabelPaddingOverride(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()
	b := geom.FromPoints(0, 0, 200, 36)

	l := Label(geom.Start, "x")
	l.Attr = Attr{}.WithPadding(geom.Padding{Left: 4})
	op := l.Resolve(testEnv(s, geom.Top)).Render(RenderContext{Edge: geom.Top, Bounds: b, Inner: b}).Ops[0].(scene.Text)
	if op.X != 4 || op.Y != 18 {
		t.Errorf("text at (%v, %v), want (4, 18)", op.X, op.Y)
	}
}

func TestRotatedLabelEmptyText(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()

	text := reactive.NewSignal(s, "")
	r := (&RotatedLabel{Text: text}).Resolve(testEnv(s, geom.Top))
	thick := r.Thickness(reactive.Of(0.0))
	if thick.Get() != 0 {
		t.Errorf("empty label thickness = %v, want 0", thick.Get())
	}
	text.Set("hello")
	if thick.Get() != 36 {
		t.Errorf("label thickness = %v, want 36", thick.Get())
	}
}

func TestAttrPrecedence(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()

	chart := Defaults().WithDebug(true).WithPadding(geom.Uniform(4))
	env := Env{Scope: s, Edge: geom.Top, Attr: chart}

	plain := Title("x").Resolve(env)
	if got := plain.Thickness(reactive.Of(0.0)).Get(); got != 24 {
		t.Errorf("chart padding: thickness = %v, want 24", got)
	}
	n := plain.Render(RenderContext{Edge: geom.Top, Bounds: geom.New(10, 10)})
	if !n.Debug {
		t.Error("chart debug flag not inherited")
	}

	own := Title("x")
	own.Attr = Attr{}.WithPadding(geom.Uniform(0)).WithDebug(false)
	r := own.Resolve(env)
	if got := r.Thickness(reactive.Of(0.0)).Get(); got != 16 {
		t.Errorf("component padding: thickness = %v, want 16", got)
	}
	if r.Render(RenderContext{Edge: geom.Top, Bounds: geom.New(10, 10)}).Debug {
		t.Error("component debug flag should win")
	}
}

func TestTickLabelsRenderLeft(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()

	env := testEnv(s, geom.Left)
	env.Range = reactive.Of(geom.Interval{Min: 0, Max: 100})
	r := AlignedFloats().Resolve(env)

	inner := geom.FromPoints(50, 0, 400, 264)
	n := r.Render(RenderContext{Edge: geom.Left, Bounds: geom.FromPoints(0, 0, 50, 264), Inner: inner})
	if len(n.Ops) != 6 {
		t.Fatalf("got %d labels, want 6", len(n.Ops))
	}
	first, last := n.Ops[0].(scene.Text), n.Ops[5].(scene.Text)
	if first.Text != "0" || first.Y != 264 || first.X != 40 || first.Anchor != geom.End {
		t.Errorf("first label = %+v", first)
	}
	if last.Text != "100" || last.Y != 0 {
		t.Errorf("last label = %+v", last)
	}
}
