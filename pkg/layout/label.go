package layout

import (
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
)

// RotatedLabel is a single line of text, such as a title or axis name. It is
// rotated to read along its edge: upright on the top and bottom, bottom-up on
// the left and top-down on the right.
type RotatedLabel struct {
	Text   reactive.Reader[string]
	Anchor geom.Anchor
	Attr   Attr
}

// Label returns a static label aligned by anchor along its edge.
func Label(anchor geom.Anchor, text string) *RotatedLabel {
	return &RotatedLabel{Text: reactive.Of(text), Anchor: anchor}
}

// Title returns a centred static label.
func Title(text string) *RotatedLabel { return Label(geom.Middle, text) }

func (l *RotatedLabel) Resolve(env Env) Resolved {
	text := l.Text
	if text == nil {
		text = reactive.Of("")
	}
	return &resolvedLabel{
		scope:  env.Scope,
		text:   text,
		anchor: l.Anchor,
		attr:   l.Attr.Inherit(env.Attr),
	}
}

type resolvedLabel struct {
	scope  *reactive.Scope
	text   reactive.Reader[string]
	anchor geom.Anchor
	attr   Attr
}

// Thickness is one line plus vertical padding, or zero without text.
func (r *resolvedLabel) Thickness(reactive.Reader[float64]) reactive.Reader[float64] {
	return reactive.NewMemo(r.scope, func() float64 {
		if r.text.Get() == "" {
			return 0
		}
		return r.attr.font().LineHeight() + r.attr.padding().Height()
	}, reactive.WithName[float64]("thickness:label"))
}

// Render places the text inside the padded slot.
func (r *resolvedLabel) Render(ctx RenderContext) *scene.Node {
	n := scene.New("label", ctx.Bounds).WithDebug(r.attr.debug())
	text := r.text.Get()
	if text == "" {
		return n
	}
	b := r.attr.padding().Apply(ctx.Bounds)

	font := r.attr.font()
	op := scene.Text{Text: text, Anchor: r.anchor, Size: font.FontSize()}
	switch ctx.Edge {
	case geom.Left:
		op.Rotate = 270
		op.X = b.CentreX()
		op.Y = r.anchor.MapPoints(b.Bottom, b.CentreY(), b.Top)
	case geom.Right:
		op.Rotate = 90
		op.X = b.CentreX()
		op.Y = r.anchor.MapPoints(b.Top, b.CentreY(), b.Bottom)
	default:
		op.X = r.anchor.MapPoints(b.Left, b.CentreX(), b.Right)
		op.Y = b.CentreY()
	}
	return n.Add(op)
}
