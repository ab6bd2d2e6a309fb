package chart

import (
	"io"

	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/projection"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
)

// Handle is a mounted chart with its type parameters erased, for callers
// that pick the axis types at run time.
type Handle interface {
	ID() string
	State() State
	Observe(width, height float64)
	SetPointer(px, py float64)
	ClearPointer()
	Toggle(i int)
	Entries() []series.Entry
	OnRender(fn func(*scene.Node)) (cancel func())
	Scene() *scene.Node
	Size() (width, height float64, ok bool)
	Layout() (layout.Snapshot, bool)
	Projection() (projection.Projection, bool)
	WriteSVG(w io.Writer, opts ...scene.SVGOption) error
	Unmount()
}

var _ Handle = (*Chart[struct{}, float64, float64])(nil)

// Entries returns the legend entries without tracking.
func (c *Chart[T, X, Y]) Entries() []series.Entry {
	if c.state == Unmounted {
		return nil
	}
	return c.data.Entries.Peek()
}
