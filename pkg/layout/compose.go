package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
)

// EdgeSlot is one composed edge component.
type EdgeSlot struct {
	Edge geom.Edge
	// Index is the component's position in its side's declared list.
	Index     int
	Component Resolved
	Thickness reactive.Reader[float64]
	// Bounds is the component's slice along its edge, spanning the inner
	// rectangle on the perpendicular axis.
	Bounds *reactive.Memo[geom.Bounds]
}

// Layout is the result of Compose.
type Layout struct {
	Outer reactive.Reader[geom.Bounds]
	Inner *reactive.Memo[geom.Bounds]
	// Edges holds the top, right, bottom and left slots in that order, each
	// side innermost first.
	Edges []EdgeSlot

	totals [4]*reactive.Memo[float64]
}

// Compose stacks the resolved components on the four sides of outer. Lists
// are given in visual reading order; see the package documentation.
func Compose(s *reactive.Scope, outer reactive.Reader[geom.Bounds], top, right, bottom, left []Resolved) *Layout {
	l := &Layout{Outer: outer}

	outerWidth := reactive.NewMemo(s, func() float64 { return outer.Get().Width() },
		reactive.WithName[float64]("outer_width"))

	sides := [4][]Resolved{
		geom.Top:    reversed(top),
		geom.Right:  right,
		geom.Bottom: bottom,
		geom.Left:   reversed(left),
	}
	declared := [4]int{len(top), len(right), len(bottom), len(left)}

	var thick [4][]reactive.Reader[float64]
	for _, e := range []geom.Edge{geom.Top, geom.Bottom} {
		for _, c := range sides[e] {
			thick[e] = append(thick[e], sanitized(s, c.Thickness(outerWidth)))
		}
		l.totals[e] = total(s, e, thick[e])
	}

	availHeight := reactive.NewMemo(s, func() float64 {
		h := outer.Get().Height() - l.totals[geom.Top].Get() - l.totals[geom.Bottom].Get()
		return math.Max(0, h)
	}, reactive.WithName[float64]("avail_height"), reactive.WithEqual(reactive.Eq[float64]))

	for _, e := range []geom.Edge{geom.Left, geom.Right} {
		for _, c := range sides[e] {
			thick[e] = append(thick[e], sanitized(s, c.Thickness(availHeight)))
		}
		l.totals[e] = total(s, e, thick[e])
	}

	l.Inner = reactive.NewMemo(s, func() geom.Bounds {
		return outer.Get().Shrink(
			l.totals[geom.Top].Get(),
			l.totals[geom.Right].Get(),
			l.totals[geom.Bottom].Get(),
			l.totals[geom.Left].Get(),
		)
	}, reactive.WithName[geom.Bounds]("inner"), reactive.WithEqual(reactive.Eq[geom.Bounds]))

	for _, e := range geom.Edges {
		for i, c := range sides[e] {
			idx := i
			if e == geom.Top || e == geom.Left {
				idx = declared[e] - 1 - i
			}
			l.Edges = append(l.Edges, EdgeSlot{
				Edge:      e,
				Index:     idx,
				Component: c,
				Thickness: thick[e][i],
				Bounds:    l.slot(s, e, thick[e], i),
			})
		}
	}
	return l
}

// slot derives the bounds of the i-th (innermost first) component on edge.
func (l *Layout) slot(s *reactive.Scope, edge geom.Edge, thick []reactive.Reader[float64], i int) *reactive.Memo[geom.Bounds] {
	return reactive.NewMemo(s, func() geom.Bounds {
		outer, inner := l.Outer.Get(), l.Inner.Get()
		before := 0.0
		for _, t := range thick[:i] {
			before += t.Get()
		}
		size := thick[i].Get()

		switch edge {
		case geom.Top:
			bottom := math.Max(outer.Top, inner.Top-before)
			top := math.Max(outer.Top, bottom-size)
			return geom.FromPoints(inner.Left, top, inner.Right, bottom)
		case geom.Bottom:
			top := math.Min(outer.Bottom, inner.Bottom+before)
			bottom := math.Min(outer.Bottom, top+size)
			return geom.FromPoints(inner.Left, top, inner.Right, bottom)
		case geom.Left:
			right := math.Max(outer.Left, inner.Left-before)
			left := math.Max(outer.Left, right-size)
			return geom.FromPoints(left, inner.Top, right, inner.Bottom)
		default:
			left := math.Min(outer.Right, inner.Right+before)
			right := math.Min(outer.Right, left+size)
			return geom.FromPoints(left, inner.Top, right, inner.Bottom)
		}
	}, reactive.WithName[geom.Bounds]("bounds:"+edge.String()), reactive.WithEqual(reactive.Eq[geom.Bounds]))
}

// Total returns the combined thickness of one side.
func (l *Layout) Total(edge geom.Edge) reactive.Reader[float64] { return l.totals[edge] }

// Side returns the slots of one edge, innermost first.
func (l *Layout) Side(edge geom.Edge) []EdgeSlot {
	var out []EdgeSlot
	for _, slot := range l.Edges {
		if slot.Edge == edge {
			out = append(out, slot)
		}
	}
	return out
}

// Render draws every edge component into its slot. Reads are tracked.
func (l *Layout) Render() []*scene.Node {
	inner := l.Inner.Get()
	nodes := make([]*scene.Node, 0, len(l.Edges))
	for _, slot := range l.Edges {
		nodes = append(nodes, slot.Component.Render(RenderContext{
			Edge:   slot.Edge,
			Bounds: slot.Bounds.Get(),
			Inner:  inner,
		}))
	}
	return nodes
}

// SlotSnapshot is a plain copy of an EdgeSlot's current values.
type SlotSnapshot struct {
	Edge      string      `json:"edge"`
	Index     int         `json:"index"`
	Thickness float64     `json:"thickness"`
	Bounds    geom.Bounds `json:"bounds"`
}

// Snapshot is a plain copy of a Layout's current values.
type Snapshot struct {
	Outer geom.Bounds    `json:"outer"`
	Inner geom.Bounds    `json:"inner"`
	Edges []SlotSnapshot `json:"edges"`
}

// Snapshot reads the current layout without tracking.
func (l *Layout) Snapshot() Snapshot {
	snap := Snapshot{Outer: l.Outer.Peek(), Inner: l.Inner.Peek()}
	for _, slot := range l.Edges {
		snap.Edges = append(snap.Edges, SlotSnapshot{
			Edge:      slot.Edge.String(),
			Index:     slot.Index,
			Thickness: slot.Thickness.Peek(),
			Bounds:    slot.Bounds.Peek(),
		})
	}
	return snap
}

func total(s *reactive.Scope, edge geom.Edge, thick []reactive.Reader[float64]) *reactive.Memo[float64] {
	return reactive.NewMemo(s, func() float64 {
		sum := 0.0
		for _, t := range thick {
			sum += t.Get()
		}
		return sum
	}, reactive.WithName[float64]("total:"+edge.String()), reactive.WithEqual(reactive.Eq[float64]))
}

// sanitized clamps a reported thickness to a finite, non-negative value.
func sanitized(s *reactive.Scope, r reactive.Reader[float64]) reactive.Reader[float64] {
	if r == nil {
		return reactive.Of(0.0)
	}
	return reactive.Map(s, r, func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0
		}
		return v
	}, reactive.WithEqual(reactive.Eq[float64]))
}

func reversed(in []Resolved) []Resolved {
	out := slices.Clone(in)
	slices.Reverse(out)
	return out
}
